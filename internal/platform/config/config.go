package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures process-level configuration so main stays lean.
type Server struct {
	Addr        string
	Env         string
	DatabaseURL string

	// Pool bounds: small fixed max, no minimum, acquire and idle timeouts.
	PoolMaxConns       int32
	PoolAcquireTimeout time.Duration
	PoolIdleTimeout    time.Duration
}

// Production reports whether 500 responses should suppress error detail.
func (s Server) Production() bool { return s.Env == "production" }

// FromEnv builds a Server config from environment variables.
func FromEnv() Server {
	return Server{
		Addr:               getenv("BOI_ADDR", ":8080"),
		Env:                getenv("APP_ENV", "development"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		PoolMaxConns:       int32(getenvInt("DB_POOL_MAX", 5)),
		PoolAcquireTimeout: 30 * time.Second,
		PoolIdleTimeout:    10 * time.Second,
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
