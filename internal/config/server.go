package config

import (
	"fmt"
	"os"
	"strconv"
)

// ServerConfig holds settings for the HTTP API.
type ServerConfig struct {
	Env        string
	ListenAddr string
	Workers    int
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

// LoadServerConfig reads APP_ENV, LISTEN_ADDR and CAPCALC_WORKERS. A
// malformed worker count keeps the default and is reported as an error.
func LoadServerConfig() (ServerConfig, error) {
	workers, err := getenvInt("CAPCALC_WORKERS", 0)
	cfg := ServerConfig{
		Env:        getenv("APP_ENV", "development"),
		ListenAddr: getenv("LISTEN_ADDR", ":8080"),
		Workers:    workers,
	}
	return cfg, err
}

// Production reports whether the server runs with production logging.
func (c ServerConfig) Production() bool {
	return c.Env == "production"
}
