package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/homematch/preferences/store"
)

// PreferenceCreate is the payload for creating or fully replacing a
// user's preferences.
type PreferenceCreate struct {
	UserID            string `json:"userId"`
	MaxBudget         int32  `json:"maxBudget"`
	MinSize           int32  `json:"minSize"`
	PreferredLocation string `json:"preferredLocation"`
	NumRooms          int32  `json:"numRooms"`
}

// Validate checks the required create fields.
func (p *PreferenceCreate) Validate() error {
	if p.UserID == "" {
		return errors.New("userId is required")
	}
	if p.MaxBudget <= 0 {
		return errors.New("maxBudget must be positive")
	}
	if p.MinSize <= 0 {
		return errors.New("minSize must be positive")
	}
	if p.PreferredLocation == "" {
		return errors.New("preferredLocation is required")
	}
	if p.NumRooms <= 0 {
		return errors.New("numRooms must be positive")
	}
	return nil
}

// PreferenceUpdate is the partial update payload. Only supplied fields
// are applied; the user id comes from the path, not the body.
type PreferenceUpdate struct {
	MaxBudget         *int32  `json:"maxBudget"`
	MinSize           *int32  `json:"minSize"`
	PreferredLocation *string `json:"preferredLocation"`
	NumRooms          *int32  `json:"numRooms"`
}

// Validate checks that supplied fields carry valid values.
func (p *PreferenceUpdate) Validate() error {
	if p.MaxBudget == nil && p.MinSize == nil && p.PreferredLocation == nil && p.NumRooms == nil {
		return errors.New("at least one field must be supplied")
	}
	if p.MaxBudget != nil && *p.MaxBudget <= 0 {
		return errors.New("maxBudget must be positive")
	}
	if p.MinSize != nil && *p.MinSize <= 0 {
		return errors.New("minSize must be positive")
	}
	if p.PreferredLocation != nil && *p.PreferredLocation == "" {
		return errors.New("preferredLocation must not be empty")
	}
	if p.NumRooms != nil && *p.NumRooms <= 0 {
		return errors.New("numRooms must be positive")
	}
	return nil
}

// Preference is the record shape returned to clients.
type Preference struct {
	ID                string `json:"id"`
	UserID            string `json:"userId"`
	MaxBudget         int32  `json:"maxBudget"`
	MinSize           int32  `json:"minSize"`
	PreferredLocation string `json:"preferredLocation"`
	NumRooms          int32  `json:"numRooms"`
	CreatedTs         int64  `json:"createdTs"`
	UpdatedTs         int64  `json:"updatedTs"`
}

func convertPreferenceFromStore(preference *store.Preference) *Preference {
	return &Preference{
		ID:                preference.UID,
		UserID:            preference.UserID,
		MaxBudget:         preference.MaxBudget,
		MinSize:           preference.MinSize,
		PreferredLocation: preference.PreferredLocation,
		NumRooms:          preference.NumRooms,
		CreatedTs:         preference.CreatedTs,
		UpdatedTs:         preference.UpdatedTs,
	}
}

// ListPreferences returns all preference records.
//
// GET /
func (s *APIV1Service) ListPreferences(c echo.Context) error {
	ctx := c.Request().Context()

	list, err := s.Store.ListPreferences(ctx, &store.FindPreference{})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list preferences").SetInternal(err)
	}

	result := make([]*Preference, 0, len(list))
	for _, preference := range list {
		result = append(result, convertPreferenceFromStore(preference))
	}
	return c.JSON(http.StatusOK, result)
}

// UpsertPreference inserts the preferences for a user, or fully
// replaces the existing record. Responds 201 on insert and 200 on
// replace.
//
// POST /
func (s *APIV1Service) UpsertPreference(c echo.Context) error {
	ctx := c.Request().Context()

	create := &PreferenceCreate{}
	if err := c.Bind(create); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body").SetInternal(err)
	}
	if err := create.Validate(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	existing, err := s.Store.GetPreference(ctx, &store.FindPreference{UserID: &create.UserID})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to find preference").SetInternal(err)
	}

	preference, err := s.Store.UpsertPreference(ctx, &store.UpsertPreference{
		UserID:            create.UserID,
		MaxBudget:         create.MaxBudget,
		MinSize:           create.MinSize,
		PreferredLocation: create.PreferredLocation,
		NumRooms:          create.NumRooms,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to upsert preference").SetInternal(err)
	}

	status := http.StatusCreated
	if existing != nil {
		status = http.StatusOK
	}
	return c.JSON(status, convertPreferenceFromStore(preference))
}

// GetPreference returns the preference record for a user.
//
// GET /:userId
func (s *APIV1Service) GetPreference(c echo.Context) error {
	ctx := c.Request().Context()
	userID := c.Param("userId")

	preference, err := s.Store.GetPreference(ctx, &store.FindPreference{UserID: &userID})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to get preference").SetInternal(err)
	}
	if preference == nil {
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("preferences not found for user %q", userID))
	}
	return c.JSON(http.StatusOK, convertPreferenceFromStore(preference))
}

// UpdatePreference applies a partial update to an existing record.
// Unspecified fields are left unchanged.
//
// PATCH /:userId
func (s *APIV1Service) UpdatePreference(c echo.Context) error {
	ctx := c.Request().Context()
	userID := c.Param("userId")

	update := &PreferenceUpdate{}
	if err := c.Bind(update); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body").SetInternal(err)
	}
	if err := update.Validate(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	preference, err := s.Store.UpdatePreference(ctx, &store.UpdatePreference{
		UserID:            userID,
		MaxBudget:         update.MaxBudget,
		MinSize:           update.MinSize,
		PreferredLocation: update.PreferredLocation,
		NumRooms:          update.NumRooms,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to update preference").SetInternal(err)
	}
	if preference == nil {
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("preferences not found for user %q", userID))
	}
	return c.JSON(http.StatusOK, convertPreferenceFromStore(preference))
}

// DeletePreference removes the preference record for a user.
//
// DELETE /:userId
func (s *APIV1Service) DeletePreference(c echo.Context) error {
	ctx := c.Request().Context()
	userID := c.Param("userId")

	if err := s.Store.DeletePreference(ctx, &store.DeletePreference{UserID: userID}); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("preferences not found for user %q", userID))
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete preference").SetInternal(err)
	}
	return c.NoContent(http.StatusNoContent)
}
