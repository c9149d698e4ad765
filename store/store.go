package store

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/homematch/preferences/internal/profile"
	"github.com/homematch/preferences/store/cache"
)

// ErrNotFound is returned when an operation targets a record that
// does not exist.
var ErrNotFound = errors.New("not found")

// Store provides database access to all raw objects.
type Store struct {
	profile *profile.Profile
	driver  Driver

	// Cache settings
	cacheConfig cache.Config

	// Caches
	preferenceCache *cache.TieredCache // cache for preference lookups by user id
}

// New creates a new instance of Store.
func New(driver Driver, profile *profile.Profile) *Store {
	// Default cache settings
	cacheConfig := cache.Config{
		DefaultTTL:      10 * time.Minute,
		CleanupInterval: 5 * time.Minute,
		MaxItems:        1000,
		OnEviction:      nil,
	}

	preferenceCache := cache.NewTieredCache(cacheConfig, cache.RedisConfigFromProfile(profile))
	preferenceCache.SetDecoder(func(data []byte) (any, error) {
		preference := &Preference{}
		if err := json.Unmarshal(data, preference); err != nil {
			return nil, err
		}
		return preference, nil
	})

	store := &Store{
		driver:          driver,
		profile:         profile,
		cacheConfig:     cacheConfig,
		preferenceCache: preferenceCache,
	}

	return store
}

func (s *Store) GetDriver() Driver {
	return s.driver
}

func (s *Store) Close() error {
	// Stop cache cleanup goroutines before closing the driver.
	s.preferenceCache.Close()

	return s.driver.Close()
}
