package store

import (
	"context"
	"embed"
	"fmt"
	"log/slog"

	"github.com/pkg/errors"
)

// Migration system overview:
//
// The schema lives in store/migration/{driver}/LATEST.sql and is applied
// in one transaction on first start. There is no incremental migration
// chain; the service owns a single table and re-creating it from the
// latest schema is always correct for a fresh data directory.
//
// In demo mode the table is additionally seeded with generated records
// so the API has something to serve out of the box.

//go:embed migration
var migrationFS embed.FS

// LatestSchemaFileName is the name of the latest schema file, used to
// initialize fresh installations.
const LatestSchemaFileName = "LATEST.sql"

// Migrate initializes the database schema if needed and seeds demo data
// in demo mode.
func (s *Store) Migrate(ctx context.Context) error {
	initialized, err := s.driver.IsInitialized(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to check if database is initialized")
	}

	if !initialized {
		if err := s.applyLatestSchema(ctx); err != nil {
			return errors.Wrap(err, "failed to apply latest schema")
		}
		slog.Info("database initialized", slog.String("driver", s.profile.Driver))
	}

	if s.profile.Mode == "demo" {
		if err := s.seed(ctx); err != nil {
			return errors.Wrap(err, "failed to seed demo data")
		}
	}
	return nil
}

func (s *Store) applyLatestSchema(ctx context.Context) error {
	filePath := fmt.Sprintf("migration/%s/%s", s.profile.Driver, LatestSchemaFileName)
	buf, err := migrationFS.ReadFile(filePath)
	if err != nil {
		return errors.Wrapf(err, "failed to read latest schema file %q", filePath)
	}

	tx, err := s.driver.GetDB().BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to start transaction")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, string(buf)); err != nil {
		return errors.Wrapf(err, "failed to execute statement %q", filePath)
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}
	return nil
}
