package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"hostel-shop-api/store"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type ServerConfig struct {
	Port         string        `env:"PORT" envDefault:"8080"`
	Mode         string        `env:"GIN_MODE" envDefault:"debug"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"30s"`
	CORSOrigins  []string      `env:"CORS_ORIGINS" envDefault:"*" envSeparator:","`
}

type StoreConfig struct {
	Driver        string        `env:"STORE_DRIVER" envDefault:"sqlite"`
	SQLitePath    string        `env:"SQLITE_PATH" envDefault:"hostel_shop.db"`
	MongoURL      string        `env:"MONGO_URL" envDefault:"mongodb://localhost:27017"`
	MongoDatabase string        `env:"DB_NAME" envDefault:"hostel_shop"`
	Timeout       time.Duration `env:"STORE_TIMEOUT" envDefault:"10s"`
}

type AuthConfig struct {
	JWTSecret string        `env:"JWT_SECRET" envDefault:"hostel_shop_super_secret_2024"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"168h"`
}

// SeedConfig holds the values written by the first-start bootstrap.
type SeedConfig struct {
	AdminEmail     string `env:"ADMIN_EMAIL" envDefault:"admin@teruza.com"`
	AdminPassword  string `env:"ADMIN_PASSWORD" envDefault:"password123"`
	WhatsAppNumber string `env:"WHATSAPP_NUMBER" envDefault:"5521988760870"`
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"text"`
}

type Config struct {
	Server ServerConfig
	Store  StoreConfig
	Auth   AuthConfig
	Seed   SeedConfig
	Log    LogConfig
}

// Load reads the optional env files, then the environment. Variables
// already set in the environment win over the files.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	cfg := &Config{}
	sections := []any{&cfg.Server, &cfg.Store, &cfg.Auth, &cfg.Seed, &cfg.Log}
	for _, s := range sections {
		if err := env.Parse(s); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}
	for i, o := range cfg.Server.CORSOrigins {
		cfg.Server.CORSOrigins[i] = strings.TrimSpace(o)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Store.Driver {
	case "sqlite", "mongo":
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q (want sqlite or mongo)", c.Store.Driver)
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET must not be empty")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}
	for _, o := range c.Server.CORSOrigins {
		if o == "" || strings.Contains(o, "*") {
			continue
		}
		if !strings.HasPrefix(o, "http://") && !strings.HasPrefix(o, "https://") {
			return fmt.Errorf("CORS_ORIGINS entry %q must start with http:// or https://", o)
		}
	}
	return nil
}

// InitLogger configures the global logrus logger.
func InitLogger(cfg LogConfig) error {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	logrus.SetLevel(level)

	switch strings.ToLower(cfg.Format) {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	default:
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339})
	}
	return nil
}

// OpenStore connects the configured document store backend.
func OpenStore(ctx context.Context, cfg StoreConfig) (store.Store, error) {
	switch cfg.Driver {
	case "mongo":
		st, err := store.OpenMongo(ctx, cfg.MongoURL, cfg.MongoDatabase, cfg.Timeout)
		if err != nil {
			return nil, err
		}
		return st, nil
	default:
		st, err := store.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		logrus.WithField("path", cfg.SQLitePath).Info("✅ Database connected and migrated successfully")
		return st, nil
	}
}
