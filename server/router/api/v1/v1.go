package v1

import (
	"github.com/labstack/echo/v4"

	"github.com/homematch/preferences/internal/profile"
	apimw "github.com/homematch/preferences/server/middleware"
	"github.com/homematch/preferences/store"
)

// APIV1Service wires the preferences HTTP surface onto an Echo instance.
type APIV1Service struct {
	Profile *profile.Profile
	Store   *store.Store

	rateLimiter *apimw.RateLimiter
}

// NewAPIV1Service creates the API service.
func NewAPIV1Service(profile *profile.Profile, store *store.Store) *APIV1Service {
	return &APIV1Service{
		Profile:     profile,
		Store:       store,
		rateLimiter: apimw.NewRateLimiter(profile.RateLimitRPS, profile.RateLimitBurst),
	}
}

// Register mounts the preference routes. The resource is rooted at "/"
// per the documented contract; Echo routes static paths (/healthz,
// /metrics) ahead of the :userId param route.
func (s *APIV1Service) Register(e *echo.Echo) {
	e.GET("/", s.ListPreferences)
	e.GET("/:userId", s.GetPreference)

	limited := s.rateLimiter.Middleware()
	e.POST("/", s.UpsertPreference, limited)
	e.PATCH("/:userId", s.UpdatePreference, limited)
	e.DELETE("/:userId", s.DeletePreference, limited)
}
