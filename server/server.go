package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/homematch/preferences/internal/profile"
	"github.com/homematch/preferences/server/internal/observability"
	apiv1 "github.com/homematch/preferences/server/router/api/v1"
	"github.com/homematch/preferences/store"
)

// Server is the HTTP server for the preferences service.
type Server struct {
	Profile *profile.Profile
	Store   *store.Store

	echoServer *echo.Echo
	logger     *slog.Logger
}

// NewServer builds the Echo instance with its middleware chain and
// registers all routes.
func NewServer(ctx context.Context, profile *profile.Profile, store *store.Store) (*Server, error) {
	e := echo.New()
	e.Debug = profile.IsDev()
	e.HideBanner = true
	e.HidePort = true

	logger := observability.NewLogger(profile.IsDev())

	s := &Server{
		Profile:    profile,
		Store:      store,
		echoServer: e,
		logger:     logger,
	}

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(s.requestLoggingMiddleware())

	e.GET("/healthz", s.healthz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	apiV1Service := apiv1.NewAPIV1Service(profile, store)
	apiV1Service.Register(e)

	// Run the schema setup before serving traffic.
	if err := s.Store.Migrate(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to migrate")
	}

	return s, nil
}

// Start begins serving and blocks until the listener fails or the
// server is shut down.
func (s *Server) Start(_ context.Context) error {
	address := fmt.Sprintf("%s:%d", s.Profile.Addr, s.Profile.Port)
	s.logger.Info("server started",
		slog.String("address", address),
		slog.String("mode", s.Profile.Mode),
		slog.String("version", s.Profile.Version),
	)
	if err := s.echoServer.Start(address); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server and closes the store.
func (s *Server) Shutdown(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := s.echoServer.Shutdown(ctx); err != nil {
		s.logger.Error("failed to shutdown server", slog.String("error", err.Error()))
	}

	if err := s.Store.Close(); err != nil {
		s.logger.Error("failed to close store", slog.String("error", err.Error()))
	}

	s.logger.Info("server stopped")
}

func (s *Server) healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"version": s.Profile.Version,
	})
}

// requestLoggingMiddleware logs every request with a generated request
// id and feeds the Prometheus collectors.
func (s *Server) requestLoggingMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			reqCtx := observability.NewRequestContext(s.logger, req.Method, req.URL.Path)
			c.SetRequest(req.WithContext(observability.WithRequestContext(req.Context(), reqCtx)))

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			status := c.Response().Status
			observability.RecordHTTPRequest(req.Method, c.Path(), status, reqCtx.Duration())

			attrs := []slog.Attr{
				slog.Int(observability.LogFieldStatus, status),
				slog.Int64(observability.LogFieldDuration, reqCtx.DurationMs()),
			}
			switch {
			case status >= http.StatusInternalServerError:
				reqCtx.Error("request failed", fmt.Errorf("status %d", status), attrs...)
			case status >= http.StatusBadRequest:
				reqCtx.Warn("request rejected", attrs...)
			default:
				reqCtx.Info("request completed", attrs...)
			}

			// Error already written through c.Error above.
			return nil
		}
	}
}
