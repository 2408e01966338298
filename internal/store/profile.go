package store

import (
	"context"
	"fmt"

	"foodcost/internal/kv"
	"foodcost/models"
)

type profileStore struct {
	backend kv.Backend
}

func (p *profileStore) Profile(ctx context.Context) (models.Profile, error) {
	var profile models.Profile
	if _, err := p.backend.Get(ctx, KeyProfile, &profile); err != nil {
		return models.Profile{}, fmt.Errorf("load profile: %w", err)
	}
	return profile, nil
}

func (p *profileStore) SaveProfile(ctx context.Context, profile models.Profile) error {
	if err := p.backend.Set(ctx, KeyProfile, profile); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// Preferences returns the stored preferences, or the defaults when none
// have been saved yet.
func (p *profileStore) Preferences(ctx context.Context) (models.Preferences, error) {
	prefs := models.DefaultPreferences
	if _, err := p.backend.Get(ctx, KeyConfig, &prefs); err != nil {
		return models.Preferences{}, fmt.Errorf("load preferences: %w", err)
	}
	return prefs, nil
}

func (p *profileStore) SavePreferences(ctx context.Context, prefs models.Preferences) error {
	if err := p.backend.Set(ctx, KeyConfig, prefs); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}
