package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	apperrors "social-demo/backend/pkg/errors"
)

// Config holds all application configuration
type Config struct {
	// App
	Host string
	Port string
	Env  string

	// HTTP
	CORSAllowOrigin string
	ShutdownTimeout time.Duration

	// Files
	StaticDir            string // front-end HTML served for unmatched GETs
	UploadDir            string // videos land here, served under /uploads
	ProfilePictureSubdir string // relative to UploadDir
	MaxUploadMB          int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	shutdownSeconds, err := getEnvInt("SHUTDOWN_TIMEOUT_SECONDS", 5)
	if err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	maxUploadMB, err := getEnvInt("MAX_UPLOAD_MB", 512)
	if err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg := &Config{
		Host:                 getEnv("HOST", "0.0.0.0"),
		Port:                 getEnv("PORT", "5000"),
		Env:                  getEnv("ENV", "development"),
		CORSAllowOrigin:      getEnv("CORS_ALLOW_ORIGIN", "*"),
		ShutdownTimeout:      time.Duration(shutdownSeconds) * time.Second,
		StaticDir:            getEnv("STATIC_DIR", "."),
		UploadDir:            getEnv("UPLOAD_DIR", "uploads"),
		ProfilePictureSubdir: getEnv("PROFILE_PICTURE_SUBDIR", "profile-pictures"),
		MaxUploadMB:          maxUploadMB,
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration values are set
func (c *Config) Validate() error {
	if c.Port == "" {
		return apperrors.NewConfigMissingRequired("PORT")
	}
	if c.UploadDir == "" {
		return apperrors.NewConfigMissingRequired("UPLOAD_DIR")
	}
	if c.ProfilePictureSubdir == "" {
		return apperrors.NewConfigMissingRequired("PROFILE_PICTURE_SUBDIR")
	}
	if filepath.IsAbs(c.ProfilePictureSubdir) {
		return apperrors.NewConfigValidationFailed("PROFILE_PICTURE_SUBDIR", "must be relative to UPLOAD_DIR")
	}
	if c.MaxUploadMB <= 0 {
		return apperrors.NewConfigValidationFailed("MAX_UPLOAD_MB", "must be positive")
	}
	if c.ShutdownTimeout <= 0 {
		return apperrors.NewConfigValidationFailed("SHUTDOWN_TIMEOUT_SECONDS", "must be positive")
	}
	return nil
}

// Addr is the listen address for the HTTP server
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

// ProfilePictureDir is the on-disk directory for profile pictures
func (c *Config) ProfilePictureDir() string {
	return filepath.Join(c.UploadDir, c.ProfilePictureSubdir)
}

// MaxUploadBytes caps the request body of an upload
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, apperrors.NewConfigValidationFailed(key, fmt.Sprintf("not an integer: %q", value))
	}
	return n, nil
}
