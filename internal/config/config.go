package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

const (
	SourceStatic   = "static"
	SourcePostgres = "postgres"
)

// Config holds runtime configuration. It is built once at startup and passed
// to whatever needs it.
type Config struct {
	HTTPAddr           string
	DefaultConnection  string
	RequireDatabase    bool
	CategorySource     string
	ShutdownTimeout    time.Duration
	DocsEnabled        bool
	CORSAllowedOrigins []string
}

// Error reports a missing or invalid configuration value.
type Error struct {
	Key    string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("config %s: %s", e.Key, e.Reason)
}

// Load reads .env (without overriding the process environment) and the
// appsettings.json connection string, then builds Config from the environment.
func Load() (Config, error) {
	if err := godotenv.Load(envOrDefault("DOTENV_PATH", ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, &Error{Key: "DOTENV_PATH", Reason: err.Error()}
	}

	fileConn, err := readAppSettings(envOrDefault("APPSETTINGS_PATH", "appsettings.json"))
	if err != nil {
		return Config{}, err
	}

	cfg := FromEnv()
	if cfg.DefaultConnection == "" {
		cfg.DefaultConnection = fileConn
	}
	return cfg, nil
}

// FromEnv builds Config with defaults, overridden by environment variables.
func FromEnv() Config {
	return Config{
		HTTPAddr:           envOrDefault("HTTP_ADDR", ":8080"),
		DefaultConnection:  envOrDefault("DEFAULT_CONNECTION", os.Getenv("ConnectionStrings__DefaultConnection")),
		RequireDatabase:    envBool("REQUIRE_DATABASE", false),
		CategorySource:     strings.ToLower(envOrDefault("CATEGORY_SOURCE", SourceStatic)),
		ShutdownTimeout:    envDuration("SHUTDOWN_TIMEOUT_SECONDS", 10*time.Second),
		DocsEnabled:        envBool("DOCS_ENABLED", true),
		CORSAllowedOrigins: envList("CORS_ALLOWED_ORIGINS"),
	}
}

// Validate checks startup policy. DefaultConnection problems are only errors
// when something actually needs the database; otherwise see CheckConnection.
func (c Config) Validate() error {
	switch c.CategorySource {
	case SourceStatic, SourcePostgres:
	default:
		return &Error{Key: "CATEGORY_SOURCE", Reason: fmt.Sprintf("unknown source %q", c.CategorySource)}
	}

	if !c.DatabaseRequired() {
		return nil
	}
	if c.DefaultConnection == "" {
		if c.RequireDatabase {
			return &Error{Key: "DefaultConnection", Reason: "required by REQUIRE_DATABASE but not set"}
		}
		return &Error{Key: "DefaultConnection", Reason: "required by CATEGORY_SOURCE=postgres but not set"}
	}
	return c.CheckConnection()
}

// CheckConnection reports whether DefaultConnection is a usable Postgres
// connection string. An empty value is not checked.
func (c Config) CheckConnection() error {
	dsn := strings.TrimSpace(c.DefaultConnection)
	if dsn == "" {
		return nil
	}
	if scheme, _, ok := strings.Cut(dsn, "://"); ok {
		if scheme != "postgres" && scheme != "postgresql" {
			return &Error{Key: "DefaultConnection", Reason: fmt.Sprintf("unsupported scheme %q", scheme)}
		}
	} else if strings.Contains(dsn, ";") {
		// ADO.NET style "Server=...;Database=..." is accepted by pgx as a single
		// runtime parameter, so reject it explicitly.
		return &Error{Key: "DefaultConnection", Reason: "not a postgres connection string"}
	}
	if _, err := pgxpool.ParseConfig(dsn); err != nil {
		return &Error{Key: "DefaultConnection", Reason: "unparseable connection string"}
	}
	return nil
}

// DatabaseRequired reports whether startup must fail when the database is unreachable.
func (c Config) DatabaseRequired() bool {
	return c.RequireDatabase || c.CategorySource == SourcePostgres
}

type appSettings struct {
	ConnectionStrings struct {
		DefaultConnection string `json:"DefaultConnection"`
	} `json:"ConnectionStrings"`
}

func readAppSettings(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", &Error{Key: "APPSETTINGS_PATH", Reason: err.Error()}
	}
	var s appSettings
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", &Error{Key: "APPSETTINGS_PATH", Reason: fmt.Sprintf("parse %s: %v", path, err)}
	}
	return s.ConnectionStrings.DefaultConnection, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		seconds, err := strconv.Atoi(v)
		if err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return def
}

func envBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func envList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
