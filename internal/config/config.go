package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"habitkit/internal/constants"
)

// Backend selects the persistence layer.
type Backend string

const (
	// BackendAuto picks SQLite for .db paths and JSON otherwise.
	BackendAuto   Backend = "auto"
	BackendJSON   Backend = "json"
	BackendSQLite Backend = "sqlite"
)

// Config holds application configuration, sourced from the environment
// with an optional .env file.
type Config struct {
	DataPath string
	Backend  Backend
	Debug    bool
}

// Load reads configuration from HABITKIT_* environment variables,
// loading a .env file from the working directory first when one exists.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		DataPath: expandHome(getEnv("HABITKIT_DATA_PATH", constants.DefaultConfigPath)),
		Backend:  Backend(getEnv("HABITKIT_BACKEND", string(BackendAuto))),
		Debug:    getEnvBool("HABITKIT_DEBUG", false),
	}
}

// UseSQLite resolves the backend choice for the configured data path.
func (c *Config) UseSQLite() bool {
	switch c.Backend {
	case BackendSQLite:
		return true
	case BackendJSON:
		return false
	default:
		return strings.HasSuffix(c.DataPath, ".db")
	}
}

// ConfigDir returns the directory holding the data file, used for logs
// and other app-local state.
func (c *Config) ConfigDir() string {
	return filepath.Dir(c.DataPath)
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
