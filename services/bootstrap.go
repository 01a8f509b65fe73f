package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hostel-shop-api/models"
	"hostel-shop-api/store"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type SeedConfig struct {
	AdminEmail    string
	AdminPassword string
}

// DefaultCategories are seeded into an empty categories collection.
var DefaultCategories = []CategoryInput{
	{NamePT: "Bebidas", NameEN: "Drinks", NameES: "Bebidas"},
	{NamePT: "Snacks", NameEN: "Snacks", NameES: "Snacks"},
	{NamePT: "Refeições Rápidas", NameEN: "Quick Meals", NameES: "Comidas Rápidas"},
	{NamePT: "Higiene", NameEN: "Hygiene", NameES: "Higiene"},
	{NamePT: "Emergências", NameEN: "Essentials", NameES: "Emergencias"},
	{NamePT: "Serviços", NameEN: "Services", NameES: "Servicios"},
}

// Bootstrap seeds the admin user, default categories and settings. Every
// step checks for existing data first, so Run is safe on every start.
type Bootstrap struct {
	store    store.Store
	catalog  *CatalogService
	settings *SettingsService
	seed     SeedConfig
	now      func() time.Time
}

func NewBootstrap(st store.Store, catalog *CatalogService, settings *SettingsService, seed SeedConfig) *Bootstrap {
	return &Bootstrap{store: st, catalog: catalog, settings: settings, seed: seed, now: time.Now}
}

func (b *Bootstrap) Run(ctx context.Context) error {
	if err := b.ensureAdmin(ctx); err != nil {
		return err
	}
	if err := b.ensureCategories(ctx); err != nil {
		return err
	}
	if _, err := b.settings.Get(ctx); err != nil {
		return err
	}
	logrus.Info("✅ [INIT] Bootstrap completed")
	return nil
}

func (b *Bootstrap) ensureAdmin(ctx context.Context) error {
	email := normalizeEmail(b.seed.AdminEmail)
	var existing models.User
	err := b.store.FindOne(ctx, models.UsersCollection, store.Where(store.Eq("email", email)), &existing)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("failed to check admin user: %w", err)
	}

	hash, err := HashPassword(b.seed.AdminPassword)
	if err != nil {
		return err
	}
	admin := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      true,
		CreatedAt:    stamp(b.now),
	}
	if err := b.store.Insert(ctx, models.UsersCollection, &admin); err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}
	logrus.WithField("email", email).Info("📝 [INIT] Default admin user created")
	return nil
}

// ensureCategories only seeds an empty collection, so categories the admin
// deleted are not recreated on restart.
func (b *Bootstrap) ensureCategories(ctx context.Context) error {
	n, err := b.store.Count(ctx, models.CategoriesCollection, nil)
	if err != nil {
		return fmt.Errorf("failed to count categories: %w", err)
	}
	if n > 0 {
		return nil
	}
	for _, in := range DefaultCategories {
		if _, err := b.catalog.CreateCategory(ctx, in); err != nil {
			return fmt.Errorf("failed to seed category %q: %w", in.NamePT, err)
		}
	}
	logrus.WithField("count", len(DefaultCategories)).Info("📝 [INIT] Default categories created")
	return nil
}
