package handlers

import (
	"hostel-shop-api/services"
)

// Handler binds the HTTP surface to the services.
type Handler struct {
	Identity  *services.IdentityService
	Catalog   *services.CatalogService
	Orders    *services.OrderService
	Analytics *services.AnalyticsService
	Settings  *services.SettingsService
}

func New(identity *services.IdentityService, catalog *services.CatalogService, orders *services.OrderService,
	analytics *services.AnalyticsService, settings *services.SettingsService) *Handler {
	return &Handler{
		Identity:  identity,
		Catalog:   catalog,
		Orders:    orders,
		Analytics: analytics,
		Settings:  settings,
	}
}
