package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hostel-shop-api/config"
	"hostel-shop-api/handlers"
	"hostel-shop-api/middleware"
	"hostel-shop-api/routes"
	"hostel-shop-api/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	if err := config.InitLogger(cfg.Log); err != nil {
		logrus.WithError(err).Fatal("Failed to configure logger")
	}
	gin.SetMode(cfg.Server.Mode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database
	st, err := config.OpenStore(ctx, cfg.Store)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}
	defer func() {
		if err := st.Close(); err != nil {
			logrus.WithError(err).Warn("Failed to close store")
		}
	}()

	identity := services.NewIdentityService(st, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	catalog := services.NewCatalogService(st)
	analytics := services.NewAnalyticsService(st)
	orders := services.NewOrderService(st, analytics)
	settings := services.NewSettingsService(st, cfg.Seed.WhatsAppNumber)

	boot := services.NewBootstrap(st, catalog, settings, services.SeedConfig{
		AdminEmail:    cfg.Seed.AdminEmail,
		AdminPassword: cfg.Seed.AdminPassword,
	})
	if err := boot.Run(ctx); err != nil {
		logrus.WithError(err).Fatal("Failed to bootstrap data")
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(), middleware.CORS(cfg.Server.CORSOrigins))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "🏨 Welcome to the Hostel Shop API",
			"docs":    "/api/state-machine",
			"health":  "/health",
		})
	})
	routes.SetupRoutes(r, handlers.New(identity, catalog, orders, analytics, settings))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logrus.Infof("🚀 Server running on http://localhost:%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("Failed to start server")
		}
	}()

	<-ctx.Done()
	logrus.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Server forced to shutdown")
	}
	logrus.Info("Server exited")
}
