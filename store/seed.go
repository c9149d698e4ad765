package store

import (
	"context"
	"log/slog"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/pkg/errors"
)

// seedCount is the number of demo preference records.
const seedCount = 10

// seed populates the preference table with generated records for demo
// mode. It is idempotent: an already-seeded table is left alone.
func (s *Store) seed(ctx context.Context) error {
	existing, err := s.driver.ListPreferences(ctx, &FindPreference{})
	if err != nil {
		return errors.Wrap(err, "failed to list preferences")
	}
	if len(existing) > 0 {
		return nil
	}

	gofakeit.Seed(0)
	for i := 0; i < seedCount; i++ {
		upsert := &UpsertPreference{
			UserID:            gofakeit.UUID(),
			MaxBudget:         int32(gofakeit.Number(800, 5000)),
			MinSize:           int32(gofakeit.Number(20, 200)),
			PreferredLocation: gofakeit.City(),
			NumRooms:          int32(gofakeit.Number(1, 6)),
		}
		if _, err := s.driver.UpsertPreference(ctx, upsert); err != nil {
			return errors.Wrapf(err, "failed to seed preference %d", i)
		}
	}

	slog.Info("seeded demo preferences", slog.Int("count", seedCount))
	return nil
}
