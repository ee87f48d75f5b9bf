package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
)

const (
	defaultPort          = "8000"
	defaultDBPort        = 5432
	defaultDBName        = "postgres"
	defaultSSLMode       = "require"
	defaultUserID        = "demo"
	defaultLogFilePath   = "elite.log"
	defaultCORSOrigins   = "http://localhost:5173,http://127.0.0.1:5173"
	maxTCPPort           = 65535
	defaultVariant       = VariantPushups
	defaultBootstrapFlag = true
)

// Schema variants. Only one is active per deployment.
const (
	VariantPushups  = "pushups"
	VariantExercise = "exercise"
)

var ErrMissingEnv = errors.New("missing required env var")

// DB holds the connection parameters. When URL is set it wins over the
// discrete fields.
type DB struct {
	URL      string
	Host     string
	Port     int
	Name     string
	User     string
	Password string
	SSLMode  string
}

type Config struct {
	Port          string
	Variant       string
	CORSOrigins   []string
	DefaultUserID string
	LogFilePath   string
	Bootstrap     bool
	DB            DB
}

// Load reads the process environment. It is meant to be called once at
// startup; the result is passed down explicitly.
func Load() (*Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (*Config, error) {
	dbCfg, err := loadDB(getenv)
	if err != nil {
		return nil, err
	}

	variant := strings.ToLower(strings.TrimSpace(getenv("APP_VARIANT")))
	switch variant {
	case "":
		variant = defaultVariant
	case VariantPushups, VariantExercise:
	default:
		return nil, fmt.Errorf("invalid APP_VARIANT %q: must be %s or %s", variant, VariantPushups, VariantExercise)
	}

	bootstrap := defaultBootstrapFlag
	if raw := getenv("DB_BOOTSTRAP"); raw != "" {
		bootstrap, err = strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid DB_BOOTSTRAP %q: %w", raw, err)
		}
	}

	return &Config{
		Port:          envOr(getenv, "PORT", defaultPort),
		Variant:       variant,
		CORSOrigins:   splitList(envOr(getenv, "CORS_ORIGINS", defaultCORSOrigins)),
		DefaultUserID: envOr(getenv, "DEFAULT_USER_ID", defaultUserID),
		LogFilePath:   envOr(getenv, "LOG_FILE_PATH", defaultLogFilePath),
		Bootstrap:     bootstrap,
		DB:            *dbCfg,
	}, nil
}

func loadDB(getenv func(string) string) (*DB, error) {
	if raw := strings.TrimSpace(getenv("DATABASE_URL")); raw != "" {
		return &DB{URL: raw}, nil
	}

	host, err := requireEnv(getenv, "DB_HOST")
	if err != nil {
		return nil, err
	}
	user, err := requireEnv(getenv, "DB_USER")
	if err != nil {
		return nil, err
	}
	password, err := requireEnv(getenv, "DB_PASSWORD")
	if err != nil {
		return nil, err
	}

	port := defaultDBPort
	if raw := getenv("DB_PORT"); raw != "" {
		port, err = strconv.Atoi(raw)
		if err != nil || port < 1 || port > maxTCPPort {
			return nil, fmt.Errorf("invalid DB_PORT %q", raw)
		}
	}

	return &DB{
		Host:     host,
		Port:     port,
		Name:     envOr(getenv, "DB_NAME", defaultDBName),
		User:     user,
		Password: password,
		SSLMode:  envOr(getenv, "DB_SSLMODE", defaultSSLMode),
	}, nil
}

// DSN returns a connection string accepted by lib/pq. User info is escaped,
// so passwords may contain any character.
func (d DB) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:     "/" + d.Name,
		RawQuery: url.Values{"sslmode": {d.SSLMode}}.Encode(),
	}
	return u.String()
}

// Redacted describes the target without the password, for logs.
func (d DB) Redacted() string {
	if d.URL != "" {
		u, err := url.Parse(d.URL)
		if err != nil {
			return "DATABASE_URL (unparseable)"
		}
		return u.Redacted()
	}
	return fmt.Sprintf("host=%s port=%d dbname=%s user=%s sslmode=%s", d.Host, d.Port, d.Name, d.User, d.SSLMode)
}

func requireEnv(getenv func(string) string, name string) (string, error) {
	val := getenv(name)
	if val == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingEnv, name)
	}
	return val, nil
}

func envOr(getenv func(string) string, key, defaultValue string) string {
	if value := getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
