package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lithammer/shortuuid/v4"

	"github.com/homematch/preferences/store"
)

func (d *DB) ListPreferences(ctx context.Context, find *store.FindPreference) ([]*store.Preference, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "preference.id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.UID; v != nil {
		where, args = append(where, "preference.uid = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.UserID; v != nil {
		where, args = append(where, "preference.user_id = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `
		SELECT
			id, uid, user_id, max_budget, min_size, preferred_location, num_rooms,
			created_ts, updated_ts
		FROM preference
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY preference.user_id ASC`

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query preferences: %w", err)
	}
	defer rows.Close()

	list := make([]*store.Preference, 0)
	for rows.Next() {
		var preference store.Preference
		if err := rows.Scan(
			&preference.ID,
			&preference.UID,
			&preference.UserID,
			&preference.MaxBudget,
			&preference.MinSize,
			&preference.PreferredLocation,
			&preference.NumRooms,
			&preference.CreatedTs,
			&preference.UpdatedTs,
		); err != nil {
			return nil, fmt.Errorf("failed to scan preference: %w", err)
		}
		list = append(list, &preference)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate preferences: %w", err)
	}

	return list, nil
}

func (d *DB) UpsertPreference(ctx context.Context, upsert *store.UpsertPreference) (*store.Preference, error) {
	now := time.Now().Unix()

	// uid and created_ts only stick on insert; the conflict branch keeps
	// the existing identity and creation time.
	stmt := `INSERT INTO preference (
			uid, user_id, max_budget, min_size, preferred_location, num_rooms, created_ts, updated_ts
		)
		VALUES (` + placeholders(8) + `)
		ON CONFLICT (user_id) DO UPDATE SET
			max_budget = EXCLUDED.max_budget,
			min_size = EXCLUDED.min_size,
			preferred_location = EXCLUDED.preferred_location,
			num_rooms = EXCLUDED.num_rooms,
			updated_ts = EXCLUDED.updated_ts
		RETURNING id, uid, user_id, max_budget, min_size, preferred_location, num_rooms, created_ts, updated_ts`

	result := &store.Preference{}
	if err := d.db.QueryRowContext(ctx, stmt,
		shortuuid.New(), upsert.UserID, upsert.MaxBudget, upsert.MinSize,
		upsert.PreferredLocation, upsert.NumRooms, now, now,
	).Scan(
		&result.ID,
		&result.UID,
		&result.UserID,
		&result.MaxBudget,
		&result.MinSize,
		&result.PreferredLocation,
		&result.NumRooms,
		&result.CreatedTs,
		&result.UpdatedTs,
	); err != nil {
		return nil, fmt.Errorf("failed to upsert preference: %w", err)
	}

	return result, nil
}

func (d *DB) UpdatePreference(ctx context.Context, update *store.UpdatePreference) (*store.Preference, error) {
	set, args := []string{}, []any{}

	if v := update.MaxBudget; v != nil {
		set, args = append(set, "max_budget = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.MinSize; v != nil {
		set, args = append(set, "min_size = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.PreferredLocation; v != nil {
		set, args = append(set, "preferred_location = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.NumRooms; v != nil {
		set, args = append(set, "num_rooms = "+placeholder(len(args)+1)), append(args, *v)
	}

	set, args = append(set, "updated_ts = "+placeholder(len(args)+1)), append(args, time.Now().Unix())
	args = append(args, update.UserID)

	stmt := `UPDATE preference SET ` + strings.Join(set, ", ") + `
		WHERE user_id = ` + placeholder(len(args)) + `
		RETURNING id, uid, user_id, max_budget, min_size, preferred_location, num_rooms, created_ts, updated_ts`

	result := &store.Preference{}
	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(
		&result.ID,
		&result.UID,
		&result.UserID,
		&result.MaxBudget,
		&result.MinSize,
		&result.PreferredLocation,
		&result.NumRooms,
		&result.CreatedTs,
		&result.UpdatedTs,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update preference: %w", err)
	}

	return result, nil
}

func (d *DB) DeletePreference(ctx context.Context, delete *store.DeletePreference) error {
	stmt := `DELETE FROM preference WHERE user_id = ` + placeholder(1)
	result, err := d.db.ExecContext(ctx, stmt, delete.UserID)
	if err != nil {
		return fmt.Errorf("failed to delete preference: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return store.ErrNotFound
	}

	return nil
}
