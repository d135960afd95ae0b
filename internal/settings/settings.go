// Package settings holds the process-wide store configuration: loaded
// once at startup, reloaded when an admin saves, read lock-free by every
// collaborator.
package settings

import (
	"context"
	"errors"
	"sync/atomic"
)

type Settings struct {
	StoreName       string
	ContactEmail    string
	ContactPhone    string
	Address         string
	Currency        string
	CurrencySymbol  string
	MaintenanceMode bool

	ShippingPolicy string
	ReturnPolicy   string
}

// Defaults applied when the store has never been configured.
func defaults() Settings {
	return Settings{
		StoreName:      "Amar Fresh BD",
		Currency:       "BDT",
		CurrencySymbol: "৳",
	}
}

var ErrNotLoaded = errors.New("settings not loaded")

type Repo interface {
	Load(ctx context.Context) (Settings, error)
	Save(ctx context.Context, s Settings) error
}

// Service is the at-most-one-instance accessor. There is no settings row
// coercion here; the repository owns storage and the service owns the
// process-wide snapshot.
type Service struct {
	repo     Repo
	snapshot atomic.Value // Settings
}

func NewService(repo Repo) *Service {
	return &Service{repo: repo}
}

// Load populates the snapshot at startup. A store with no saved settings
// starts from defaults.
func (s *Service) Load(ctx context.Context) error {
	loaded, err := s.repo.Load(ctx)
	if err != nil {
		if errors.Is(err, ErrNotLoaded) {
			s.snapshot.Store(defaults())
			return nil
		}
		return err
	}
	s.snapshot.Store(loaded)
	return nil
}

// Current returns the active snapshot. Safe for concurrent use.
func (s *Service) Current() Settings {
	v := s.snapshot.Load()
	if v == nil {
		return defaults()
	}
	return v.(Settings)
}

// Update is the single administrative write path: persist, then swap the
// snapshot so readers never see a half-saved state.
func (s *Service) Update(ctx context.Context, next Settings) error {
	if err := s.repo.Save(ctx, next); err != nil {
		return err
	}
	s.snapshot.Store(next)
	return nil
}
