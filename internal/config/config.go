package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/comitanigiacomo/kanso-habit-ledger/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habit-ledger/internal/core/pathfmt"
)

const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

type Config struct {
	Port string

	DBDriver   string
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string
	SQLitePath string

	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	JWTSecret        string
	JWTIssuer        string
	TokenTTL         time.Duration
	OwnerName        string
	AuthPasswordHash string

	CORSOrigins []string
	RateLimit   int

	VaultRoot         string
	HabitsFile        string
	BaseDirectory     string
	DateFormatPattern string
	DefaultTimeSpan   string
	LookupConcurrency int
}

// Load reads the configuration from the environment, after an optional
// .env file, and validates it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	return FromEnv()
}

func FromEnv() (*Config, error) {
	tokenTTL, err := time.ParseDuration(getEnv("TOKEN_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("TOKEN_TTL: %w", err)
	}

	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}
	rateLimit, err := getEnvInt("RATE_LIMIT", 100)
	if err != nil {
		return nil, err
	}
	concurrency, err := getEnvInt("LOOKUP_CONCURRENCY", 8)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port: getEnv("PORT", "8080"),

		DBDriver:   getEnv("DB_DRIVER", DriverPostgres),
		DBUser:     getEnv("DB_USER", "kanso_user"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBName:     getEnv("DB_NAME", "kanso_db"),
		SQLitePath: getEnv("SQLITE_PATH", "habits.db"),

		RedisHost:     getEnv("REDIS_HOST", ""),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       redisDB,

		JWTSecret:        getEnv("JWT_SECRET", ""),
		JWTIssuer:        getEnv("JWT_ISSUER", "kanso-habit-ledger"),
		TokenTTL:         tokenTTL,
		OwnerName:        getEnv("AUTH_OWNER", domain.DefaultOwnerName),
		AuthPasswordHash: getEnv("AUTH_PASSWORD_HASH", ""),

		CORSOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		RateLimit:   rateLimit,

		VaultRoot:         getEnv("VAULT_ROOT", "."),
		HabitsFile:        getEnv("HABITS_FILE", ""),
		BaseDirectory:     getEnv("BASE_DIRECTORY", domain.DefaultBaseDirectory),
		DateFormatPattern: getEnv("DATE_FORMAT_PATTERN", domain.DefaultDateFormatPattern),
		DefaultTimeSpan:   getEnv("DEFAULT_TIME_SPAN", domain.DefaultTimeSpanKey),
		LookupConcurrency: concurrency,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverPostgres, DriverSQLite, DriverMemory:
	default:
		return fmt.Errorf("DB_DRIVER must be %s, %s or %s, got %q", DriverPostgres, DriverSQLite, DriverMemory, c.DBDriver)
	}

	if _, err := domain.LookupTimeSpan(c.DefaultTimeSpan); err != nil {
		return fmt.Errorf("DEFAULT_TIME_SPAN: %w", err)
	}
	if _, err := pathfmt.Compile(c.DateFormatPattern); err != nil {
		return fmt.Errorf("DATE_FORMAT_PATTERN: %w", err)
	}
	if c.LookupConcurrency < 1 {
		return fmt.Errorf("LOOKUP_CONCURRENCY must be positive, got %d", c.LookupConcurrency)
	}
	if c.AuthPasswordHash != "" && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required when AUTH_PASSWORD_HASH is set")
	}
	return nil
}

// AuthEnabled reports whether the API requires a token.
func (c *Config) AuthEnabled() bool {
	return c.AuthPasswordHash != ""
}

func (c *Config) DateSettings() domain.DateSettings {
	return domain.DateSettings{
		BaseDirectory: strings.Trim(c.BaseDirectory, "/"),
		Pattern:       c.DateFormatPattern,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
