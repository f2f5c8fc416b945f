package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig encapsulates all runtime configuration knobs.
type AppConfig struct {
	App    AppSettings
	Log    LogSettings
	MYOB   MYOBSettings
	Output OutputSettings
	Trace  TraceSettings
}

type AppSettings struct {
	Name        string
	Version     string
	Environment string
}

type LogSettings struct {
	Level string
}

type MYOBSettings struct {
	BaseURL         string        // override of the AccountRight API root, mainly for tests
	APITimeout      time.Duration // timeout for AccountRight API requests
	DownloadTimeout time.Duration // timeout for pre-signed content fetches
}

type OutputSettings struct {
	Dir string // attachment output directory; empty means the built-in default
}

type TraceSettings struct {
	LogHeaders bool // log sanitized request headers at debug level
}

// Load resolves the application configuration from environment variables.
// It first attempts to load variables from a .env file if it exists;
// variables already set in the environment take precedence.
func Load() AppConfig {
	_ = godotenv.Load()

	return AppConfig{
		App: AppSettings{
			Name:        getEnv("APP_NAME", "myob_attachments"),
			Version:     getEnv("APP_VERSION", "0.1.0"),
			Environment: getEnv("APP_ENV", "local"),
		},
		Log: LogSettings{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		MYOB: MYOBSettings{
			BaseURL:         strings.TrimSpace(os.Getenv("MYOB_BASE_URL")),
			APITimeout:      getEnvAsDuration("MYOB_API_TIMEOUT", 30*time.Second),
			DownloadTimeout: getEnvAsDuration("MYOB_DOWNLOAD_TIMEOUT", 2*time.Minute),
		},
		Output: OutputSettings{
			Dir: strings.TrimSpace(os.Getenv("OUTPUT_DIR")),
		},
		Trace: TraceSettings{
			LogHeaders: getEnvAsBool("TRACE_LOG_HEADERS", false),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}
