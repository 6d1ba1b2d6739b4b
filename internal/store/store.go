// Package store persists farm profiles and recommendation history.
package store

import (
	"context"
	"errors"
	"time"

	domain "github.com/donaldgifford/crop-advisor/pkg/types"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the persistence interface for the crop advisor.
type Store interface {
	// Profiles
	CreateProfile(ctx context.Context, p *domain.FarmProfile) error
	GetProfile(ctx context.Context, id string) (*domain.FarmProfile, error)
	ListProfiles(ctx context.Context, q *ProfileQuery) ([]domain.FarmProfile, int, error)
	UpdateProfile(ctx context.Context, p *domain.FarmProfile) error
	DeleteProfile(ctx context.Context, id string) error

	// History
	InsertHistory(ctx context.Context, h *domain.HistoryEntry) error
	ListHistory(ctx context.Context, profileID string, limit int) ([]domain.HistoryEntry, error)
	PruneHistory(ctx context.Context, olderThan time.Time) (int, error)

	// Schema
	Migrate(ctx context.Context) error

	// Health
	Ping(ctx context.Context) error
}

// ProfileQuery holds filter and pagination options for listing profiles.
type ProfileQuery struct {
	SoilType        *string
	FarmingPriority *string
	Name            *string
	Limit           int
	Offset          int
}
