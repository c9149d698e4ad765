package store

import (
	"context"
)

// Preference is the object representing a user's housing preferences.
// At most one record exists per user.
type Preference struct {
	ID        int32
	UID       string
	UserID    string
	CreatedTs int64
	UpdatedTs int64

	MaxBudget         int32
	MinSize           int32
	PreferredLocation string
	NumRooms          int32
}

// FindPreference is the find condition for preferences.
type FindPreference struct {
	ID     *int32
	UID    *string
	UserID *string
}

// UpsertPreference specifies the data for inserting or fully replacing
// a user's preferences. The replace is keyed on UserID.
type UpsertPreference struct {
	UserID            string
	MaxBudget         int32
	MinSize           int32
	PreferredLocation string
	NumRooms          int32
}

// UpdatePreference is the partial update request. Only non-nil fields
// are applied to the stored record.
type UpdatePreference struct {
	UserID            string
	MaxBudget         *int32
	MinSize           *int32
	PreferredLocation *string
	NumRooms          *int32
}

// DeletePreference is the delete request for preferences.
type DeletePreference struct {
	UserID string
}

// ListPreferences lists preferences with filter.
func (s *Store) ListPreferences(ctx context.Context, find *FindPreference) ([]*Preference, error) {
	return s.driver.ListPreferences(ctx, find)
}

// GetPreference gets the preference record for a user. Returns nil
// without error when no record exists.
func (s *Store) GetPreference(ctx context.Context, find *FindPreference) (*Preference, error) {
	if find.UserID != nil {
		if v, ok := s.preferenceCache.Get(ctx, preferenceCacheKey(*find.UserID)); ok {
			if preference, ok := v.(*Preference); ok {
				return preference, nil
			}
		}
	}

	list, err := s.driver.ListPreferences(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}

	preference := list[0]
	s.preferenceCache.Set(ctx, preferenceCacheKey(preference.UserID), preference)
	return preference, nil
}

// UpsertPreference inserts the preference record for a user, or fully
// replaces it when one already exists.
func (s *Store) UpsertPreference(ctx context.Context, upsert *UpsertPreference) (*Preference, error) {
	preference, err := s.driver.UpsertPreference(ctx, upsert)
	if err != nil {
		return nil, err
	}
	s.preferenceCache.Set(ctx, preferenceCacheKey(preference.UserID), preference)
	return preference, nil
}

// UpdatePreference applies a partial update to an existing record.
// Returns nil without error when no record exists for the user.
func (s *Store) UpdatePreference(ctx context.Context, update *UpdatePreference) (*Preference, error) {
	preference, err := s.driver.UpdatePreference(ctx, update)
	if err != nil {
		return nil, err
	}
	if preference == nil {
		return nil, nil
	}
	s.preferenceCache.Set(ctx, preferenceCacheKey(preference.UserID), preference)
	return preference, nil
}

// DeletePreference removes the preference record for a user.
// Returns ErrNotFound when no record exists.
func (s *Store) DeletePreference(ctx context.Context, delete *DeletePreference) error {
	s.preferenceCache.Delete(ctx, preferenceCacheKey(delete.UserID))
	return s.driver.DeletePreference(ctx, delete)
}

func preferenceCacheKey(userID string) string {
	return "preference:" + userID
}
