package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	AppPort string

	// Store
	DBDriver    string
	DatabaseURL string // overrides the DB* parts below when set
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string
	DBMaxConns  int32
	SQLitePath  string
	AutoSchema  bool

	// Logging
	LogLevel string
	LogJSON  bool

	// Rate limiting
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	APIRateLimit  int
	APIRateWindow time.Duration
}

// Load reads .env (if any) and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from the given lookup function.
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		AppPort:       get("APP_PORT", "5000"),
		DBDriver:      strings.ToLower(get("DB_DRIVER", DriverPostgres)),
		DatabaseURL:   get("DATABASE_URL", ""),
		DBHost:        get("DB_HOST", "localhost"),
		DBPort:        get("DB_PORT", "5432"),
		DBUser:        get("DB_USER", "postgres"),
		DBPassword:    getenv("DB_PASSWORD"),
		DBName:        get("DB_NAME", "todo_app"),
		DBSSLMode:     get("DB_SSLMODE", "disable"),
		SQLitePath:    get("SQLITE_PATH", "todo_app.db"),
		AutoSchema:    get("DB_AUTO_SCHEMA", "false") == "true",
		LogLevel:      strings.ToLower(get("LOG_LEVEL", "info")),
		LogJSON:       get("LOG_JSON", "false") == "true",
		RedisAddr:     get("REDIS_ADDR", ""),
		RedisPassword: getenv("REDIS_PASSWORD"),
	}

	if cfg.DBDriver != DriverPostgres && cfg.DBDriver != DriverSQLite {
		return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
	}

	maxConns, err := atoi(get("DB_MAX_CONNS", "10"), "DB_MAX_CONNS")
	if err != nil {
		return nil, err
	}
	cfg.DBMaxConns = int32(maxConns)

	if cfg.RedisDB, err = atoi(get("REDIS_DB", "0"), "REDIS_DB"); err != nil {
		return nil, err
	}
	if cfg.APIRateLimit, err = atoi(get("API_RATE_LIMIT", "120"), "API_RATE_LIMIT"); err != nil {
		return nil, err
	}
	window, err := atoi(get("API_RATE_WINDOW_SECONDS", "60"), "API_RATE_WINDOW_SECONDS")
	if err != nil {
		return nil, err
	}
	cfg.APIRateWindow = time.Duration(window) * time.Second

	return cfg, nil
}

// PostgresDSN returns DATABASE_URL or a URL assembled from the DB_* settings.
func (c *Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	u := url.URL{
		Scheme:   "postgres",
		Host:     net.JoinHostPort(c.DBHost, c.DBPort),
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(c.DBSSLMode),
	}
	if c.DBPassword != "" {
		u.User = url.UserPassword(c.DBUser, c.DBPassword)
	} else {
		u.User = url.User(c.DBUser)
	}
	return u.String()
}

func atoi(v, key string) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q", key, v)
	}
	return n, nil
}
