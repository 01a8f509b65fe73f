package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"hostel-shop-api/models"
	"hostel-shop-api/store"

	"github.com/sirupsen/logrus"
)

// SettingsID is the fixed id of the settings row. The id index makes a
// second default row impossible.
const SettingsID = "default"

// SettingsService manages the single settings row.
type SettingsService struct {
	store         store.Store
	defaultNumber string
	now           func() time.Time
}

func NewSettingsService(st store.Store, defaultWhatsAppNumber string) *SettingsService {
	return &SettingsService{store: st, defaultNumber: defaultWhatsAppNumber, now: time.Now}
}

// Get returns the settings row, creating it with defaults when none exists.
// The default row is inserted under SettingsID; when a concurrent caller
// inserts it first, the losing insert fails and the winner's row is returned.
func (s *SettingsService) Get(ctx context.Context) (*models.Settings, error) {
	var settings models.Settings
	err := s.store.FindOne(ctx, models.SettingsCollection, nil, &settings)
	if err == nil {
		return &settings, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	settings = models.Settings{
		ID:             SettingsID,
		WhatsAppNumber: s.defaultNumber,
		UpdatedAt:      stamp(s.now),
	}
	if err := s.store.Insert(ctx, models.SettingsCollection, &settings); err != nil {
		var existing models.Settings
		if findErr := s.store.FindOne(ctx, models.SettingsCollection, store.ByID(SettingsID), &existing); findErr == nil {
			return &existing, nil
		}
		return nil, fmt.Errorf("failed to create default settings: %w", err)
	}
	logrus.WithField("whatsapp_number", settings.WhatsAppNumber).Info("Default settings created")
	return &settings, nil
}

// normalizePhone keeps digits only: "+55 (21) 98876-0870" -> "5521988760870".
func normalizePhone(number string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, number)
}

func (s *SettingsService) UpdateWhatsAppNumber(ctx context.Context, number string) (*models.Settings, error) {
	clean := normalizePhone(number)
	if clean == "" {
		return nil, &ValidationError{Field: "whatsapp_number", Message: "is required"}
	}
	current, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{
		"whatsapp_number": clean,
		"updated_at":      nextUpdate(s.now, current.UpdatedAt),
	}
	if _, err := s.store.UpdateFields(ctx, models.SettingsCollection, store.ByID(current.ID), fields); err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}
	return s.Get(ctx)
}
