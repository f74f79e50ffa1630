package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type AppConfig struct {
	Port              string
	Timezone          string
	DBPath            string
	CatalogCSV        string
	CatalogXLSX       string
	LogLevel          string
	ProgressCacheSize int
	ProgressCacheTTL  time.Duration
	MetricsEnabled    bool
}

// Load reads .env (when present) and the process environment.
func Load() (AppConfig, error) {
	// a missing .env is fine; real environments set variables directly
	envErr := godotenv.Load()

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	cfg := AppConfig{
		Port:           get("PORT", "8080"),
		Timezone:       get("TZ", "Europe/Paris"),
		DBPath:         get("DB_PATH", "agrotrack.db"),
		CatalogCSV:     get("CATALOG_CSV", "./CropCatalog.csv"),
		CatalogXLSX:    get("CATALOG_XLSX", "./CropCatalog.xlsx"),
		LogLevel:       get("LOG_LEVEL", "info"),
		MetricsEnabled: get("METRICS_ENABLED", "true") == "true",
	}

	size, err := strconv.Atoi(get("PROGRESS_CACHE_SIZE", "1024"))
	if err != nil {
		return cfg, err
	}
	cfg.ProgressCacheSize = size

	ttl, err := time.ParseDuration(get("PROGRESS_CACHE_TTL", "1h"))
	if err != nil {
		return cfg, err
	}
	cfg.ProgressCacheTTL = ttl

	if envErr != nil && !os.IsNotExist(envErr) {
		return cfg, envErr
	}
	return cfg, nil
}

// Location resolves Timezone, falling back to UTC.
func (c AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Log writes the effective configuration.
func (c AppConfig) Log(l *zap.Logger) {
	l.Info("config loaded",
		zap.String("port", c.Port),
		zap.String("tz", c.Timezone),
		zap.String("db_path", c.DBPath),
		zap.String("catalog_csv", c.CatalogCSV),
		zap.String("catalog_xlsx", c.CatalogXLSX),
		zap.String("log_level", c.LogLevel),
		zap.Int("progress_cache_size", c.ProgressCacheSize),
		zap.Duration("progress_cache_ttl", c.ProgressCacheTTL),
		zap.Bool("metrics_enabled", c.MetricsEnabled),
	)
}
