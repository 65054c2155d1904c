package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
)

const (
	DefaultAdminPassword = "admin123"
	LogFormatConsole     = "console"
	LogFormatJSON        = "json"
	// The interactive menu shares the terminal with stderr, so info stays opt-in.
	DefaultLogLevel      = "warn"
)

type Config struct {
	DBPath                 string
	AdminPassword          string
	AdminPasswordIsDefault bool
	CredentialMode         string
	DefaultLanguage        string
	LogLevel               zapcore.Level
	LogFormat              string
	Location               *time.Location
	LoginAttemptLimit      int
	LoginAttemptWindow     time.Duration

	// Warnings collects problems that fell back to a default. They are
	// logged once the logger exists.
	Warnings []string
}

// Load reads the optional env files (".env" when none is given) and then
// the process environment. Variables already set in the environment win.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load env file %s: %w", file, err)
		}
	}

	cfg := Config{
		DBPath:          getEnv("DB_PATH", filepath.Join("data", "nutrismart.db")),
		AdminPassword:   getEnv("ADMIN_PASSWORD", DefaultAdminPassword),
		CredentialMode:  strings.ToLower(getEnv("CREDENTIAL_MODE", "plain")),
		DefaultLanguage: strings.ToLower(getEnv("DEFAULT_LANGUAGE", "")),
		LogFormat:       strings.ToLower(getEnv("LOG_FORMAT", LogFormatConsole)),
	}
	cfg.AdminPasswordIsDefault = cfg.AdminPassword == DefaultAdminPassword
	if cfg.AdminPasswordIsDefault {
		cfg.Warnings = append(cfg.Warnings, "ADMIN_PASSWORD is not set, using the default administrator password")
	}

	switch cfg.CredentialMode {
	case "plain", "bcrypt":
	default:
		return Config{}, fmt.Errorf("invalid CREDENTIAL_MODE %q: want plain or bcrypt", cfg.CredentialMode)
	}

	// An empty language is resolved later from the process locale.
	switch cfg.DefaultLanguage {
	case "", "pt", "en":
	default:
		return Config{}, fmt.Errorf("invalid DEFAULT_LANGUAGE %q: want pt or en", cfg.DefaultLanguage)
	}

	switch cfg.LogFormat {
	case LogFormatConsole, LogFormatJSON:
	default:
		return Config{}, fmt.Errorf("invalid LOG_FORMAT %q: want console or json", cfg.LogFormat)
	}

	level, err := zapcore.ParseLevel(getEnv("LOG_LEVEL", DefaultLogLevel))
	if err != nil {
		return Config{}, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = level

	cfg.LoginAttemptLimit, err = strconv.Atoi(getEnv("LOGIN_ATTEMPT_LIMIT", "0"))
	if err != nil || cfg.LoginAttemptLimit < 0 {
		return Config{}, fmt.Errorf("invalid LOGIN_ATTEMPT_LIMIT %q: want a non-negative integer", os.Getenv("LOGIN_ATTEMPT_LIMIT"))
	}
	cfg.LoginAttemptWindow, err = time.ParseDuration(getEnv("LOGIN_ATTEMPT_WINDOW", "15m"))
	if err != nil || cfg.LoginAttemptWindow <= 0 {
		return Config{}, fmt.Errorf("invalid LOGIN_ATTEMPT_WINDOW %q: want a positive duration", os.Getenv("LOGIN_ATTEMPT_WINDOW"))
	}

	location, warning := loadLocation(os.Getenv("TZ"))
	cfg.Location = location
	if warning != "" {
		cfg.Warnings = append(cfg.Warnings, warning)
	}

	return cfg, nil
}

func loadLocation(name string) (*time.Location, string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return time.Local, ""
	}
	location, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC, fmt.Sprintf("invalid TZ %q, falling back to UTC", name)
	}
	return location, ""
}

func getEnv(key string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}
