package store

import (
	"context"
	"database/sql"
)

// Driver is an interface for store driver.
// It contains all methods that store database driver should implement.
type Driver interface {
	GetDB() *sql.DB
	Close() error

	IsInitialized(ctx context.Context) (bool, error)

	// Preference model related methods.
	ListPreferences(ctx context.Context, find *FindPreference) ([]*Preference, error)
	UpsertPreference(ctx context.Context, upsert *UpsertPreference) (*Preference, error)
	UpdatePreference(ctx context.Context, update *UpdatePreference) (*Preference, error)
	DeletePreference(ctx context.Context, delete *DeletePreference) error
}
