package profile

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/homematch/preferences/internal/version"
)

// Profile is the configuration to start the main server.
type Profile struct {
	// Mode can be "prod" or "dev" or "demo"
	Mode string
	// Addr is the binding address for server
	Addr string
	// Port is the binding port for server
	Port int
	// Data is the data directory
	Data string
	// DSN points to where the service stores its own data
	DSN string
	// Driver is the database driver (sqlite or postgres)
	Driver string
	// Version is the current version of server
	Version string

	// Cache configuration
	CacheRedisAddr     string // PREFS_CACHE_REDIS_ADDR
	CacheRedisPassword string // PREFS_CACHE_REDIS_PASSWORD
	CacheRedisDB       int    // PREFS_CACHE_REDIS_DB

	// Rate limiting for write endpoints
	RateLimitRPS   int // PREFS_RATE_LIMIT_RPS (default: 10)
	RateLimitBurst int // PREFS_RATE_LIMIT_BURST (default: 20)
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// getEnvOrDefault returns the environment variable value or the default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnvOrDefault returns the environment variable parsed as int, or the default.
func getIntEnvOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

// FromEnv loads configuration from environment variables.
func (p *Profile) FromEnv() {
	p.CacheRedisAddr = os.Getenv("PREFS_CACHE_REDIS_ADDR")
	p.CacheRedisPassword = os.Getenv("PREFS_CACHE_REDIS_PASSWORD")
	p.CacheRedisDB = getIntEnvOrDefault("PREFS_CACHE_REDIS_DB", 0)

	p.RateLimitRPS = getIntEnvOrDefault("PREFS_RATE_LIMIT_RPS", 10)
	p.RateLimitBurst = getIntEnvOrDefault("PREFS_RATE_LIMIT_BURST", 20)

	// PORT is honored for managed container platforms (Cloud Run and friends).
	if port := getEnvOrDefault("PORT", ""); port != "" {
		if n, err := strconv.Atoi(port); err == nil {
			p.Port = n
		}
	}
}

func checkDataDir(dataDir string) (string, error) {
	// Convert to absolute path if relative path is supplied.
	if !filepath.IsAbs(dataDir) {
		relativeDir := filepath.Join(filepath.Dir(os.Args[0]), dataDir)
		absDir, err := filepath.Abs(relativeDir)
		if err != nil {
			return "", err
		}
		dataDir = absDir
	}

	// Trim trailing \ or / in case user supplies
	dataDir = strings.TrimRight(dataDir, "\\/")
	if _, err := os.Stat(dataDir); err != nil {
		return "", errors.Wrapf(err, "unable to access data folder %s", dataDir)
	}
	return dataDir, nil
}

func (p *Profile) Validate() error {
	if p.Mode != "demo" && p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "demo"
	}

	if p.Port <= 0 {
		p.Port = 8080
	}

	if p.Driver == "" {
		p.Driver = "sqlite"
	}
	if p.Driver != "sqlite" && p.Driver != "postgres" {
		return errors.Errorf("unsupported driver %q: only 'sqlite' and 'postgres' are supported", p.Driver)
	}

	if p.Driver == "sqlite" {
		if p.Data == "" {
			p.Data = "."
		}
		dataDir, err := checkDataDir(p.Data)
		if err != nil {
			slog.Error("failed to check data dir", slog.String("data", p.Data), slog.String("error", err.Error()))
			return err
		}
		p.Data = dataDir
		if p.DSN == "" {
			dbFile := fmt.Sprintf("preferences_%s.db", p.Mode)
			p.DSN = filepath.Join(dataDir, dbFile)
		}
	} else if p.DSN == "" {
		return errors.New("dsn is required for the postgres driver")
	}

	if p.Version == "" {
		p.Version = version.GetCurrentVersion(p.Mode)
	}

	return nil
}
