package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jsx-dev/intramural-league/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"

	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config stores runtime configuration for the league services and tools.
type Config struct {
	AppEnv         string `validate:"oneof=dev stage prod"`
	ServiceName    string `validate:"required"`
	ServiceVersion string
	LogLevel       logging.Level

	StorageDriver     string        `validate:"oneof=memory postgres"`
	DBURL             string        `validate:"required_if=StorageDriver postgres"`
	DBMaxOpenConns    int           `validate:"gte=1"`
	DBMaxIdleConns    int           `validate:"gte=0,ltefield=DBMaxOpenConns"`
	DBConnMaxLifetime time.Duration `validate:"gte=0"`
	DBBootstrapSeed   bool

	DBCircuitEnabled        bool
	DBCircuitFailureCount   int           `validate:"gte=1"`
	DBCircuitOpenTimeout    time.Duration `validate:"gt=0"`
	DBCircuitHalfOpenMaxReq int           `validate:"gte=1"`

	CacheEnabled bool
	CacheTTL     time.Duration `validate:"gt=0"`

	UptraceEnabled bool
	UptraceDSN     string `validate:"required_if=UptraceEnabled true"`

	PyroscopeEnabled       bool
	PyroscopeServerAddress string `validate:"required_if=PyroscopeEnabled true"`
	PyroscopeAppName       string
	PyroscopeAuthToken     string
	PyroscopeUploadRate    time.Duration `validate:"gt=0"`

	BetterStackEnabled  bool
	BetterStackEndpoint string        `validate:"required_if=BetterStackEnabled true"`
	BetterStackToken    string
	BetterStackTimeout  time.Duration `validate:"gt=0"`
	BetterStackMinLevel logging.Level

	SeedWorkers int `validate:"gte=1,lte=64"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:         appEnv,
		ServiceName:    strings.TrimSpace(getEnv("APP_SERVICE_NAME", "intramural-league")),
		ServiceVersion: strings.TrimSpace(getEnv("APP_SERVICE_VERSION", "dev")),
		LogLevel:       logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")),
		StorageDriver:  strings.ToLower(strings.TrimSpace(getEnv("STORAGE_DRIVER", StorageMemory))),
		DBURL:          strings.TrimSpace(getEnv("DB_URL", "")),
	}

	if cfg.DBMaxOpenConns, err = getEnvAsInt("DB_MAX_OPEN_CONNS", 10); err != nil {
		return Config{}, fmt.Errorf("parse DB_MAX_OPEN_CONNS: %w", err)
	}
	if cfg.DBMaxIdleConns, err = getEnvAsInt("DB_MAX_IDLE_CONNS", 5); err != nil {
		return Config{}, fmt.Errorf("parse DB_MAX_IDLE_CONNS: %w", err)
	}
	if cfg.DBConnMaxLifetime, err = time.ParseDuration(getEnv("DB_CONN_MAX_LIFETIME", "30m")); err != nil {
		return Config{}, fmt.Errorf("parse DB_CONN_MAX_LIFETIME: %w", err)
	}
	if cfg.DBBootstrapSeed, err = strconv.ParseBool(getEnv("DB_BOOTSTRAP_SEED", "false")); err != nil {
		return Config{}, fmt.Errorf("parse DB_BOOTSTRAP_SEED: %w", err)
	}

	if cfg.DBCircuitEnabled, err = strconv.ParseBool(getEnv("DB_CIRCUIT_ENABLED", "true")); err != nil {
		return Config{}, fmt.Errorf("parse DB_CIRCUIT_ENABLED: %w", err)
	}
	if cfg.DBCircuitFailureCount, err = getEnvAsInt("DB_CIRCUIT_FAILURE_COUNT", 5); err != nil {
		return Config{}, fmt.Errorf("parse DB_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if cfg.DBCircuitOpenTimeout, err = time.ParseDuration(getEnv("DB_CIRCUIT_OPEN_TIMEOUT", "15s")); err != nil {
		return Config{}, fmt.Errorf("parse DB_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if cfg.DBCircuitHalfOpenMaxReq, err = getEnvAsInt("DB_CIRCUIT_HALF_OPEN_MAX_REQ", 2); err != nil {
		return Config{}, fmt.Errorf("parse DB_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}

	if cfg.CacheEnabled, err = strconv.ParseBool(getEnv("CACHE_ENABLED", "true")); err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	if cfg.CacheTTL, err = time.ParseDuration(getEnv("CACHE_TTL", "30s")); err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}

	if cfg.UptraceEnabled, err = strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false")); err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	cfg.UptraceDSN = strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if cfg.UptraceDSN == "" {
		cfg.UptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}

	if cfg.PyroscopeEnabled, err = strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false")); err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	cfg.PyroscopeServerAddress = strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	cfg.PyroscopeAuthToken = strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", ""))
	if cfg.PyroscopeUploadRate, err = time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s")); err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}

	if cfg.BetterStackEnabled, err = strconv.ParseBool(getEnv("BETTERSTACK_ENABLED", "false")); err != nil {
		return Config{}, fmt.Errorf("parse BETTERSTACK_ENABLED: %w", err)
	}
	cfg.BetterStackEndpoint = strings.TrimSpace(getEnv("BETTERSTACK_ENDPOINT", ""))
	cfg.BetterStackToken = strings.TrimSpace(getEnv("BETTERSTACK_TOKEN", ""))
	if cfg.BetterStackTimeout, err = time.ParseDuration(getEnv("BETTERSTACK_TIMEOUT", "3s")); err != nil {
		return Config{}, fmt.Errorf("parse BETTERSTACK_TIMEOUT: %w", err)
	}
	cfg.BetterStackMinLevel = logging.ParseLevel(getEnv("BETTERSTACK_MIN_LEVEL", "error"))

	if cfg.SeedWorkers, err = getEnvAsInt("SEED_WORKERS", 4); err != nil {
		return Config{}, fmt.Errorf("parse SEED_WORKERS: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the struct tags and reports every offending env key at once.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("validate config: %w", err)
	}

	problems := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		problems = append(problems, fmt.Sprintf("%s failed %q", envKeyByField[fe.Field()], fe.Tag()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
}

var envKeyByField = map[string]string{
	"AppEnv":                  "APP_ENV",
	"ServiceName":             "APP_SERVICE_NAME",
	"StorageDriver":           "STORAGE_DRIVER",
	"DBURL":                   "DB_URL",
	"DBMaxOpenConns":          "DB_MAX_OPEN_CONNS",
	"DBMaxIdleConns":          "DB_MAX_IDLE_CONNS",
	"DBConnMaxLifetime":       "DB_CONN_MAX_LIFETIME",
	"DBCircuitFailureCount":   "DB_CIRCUIT_FAILURE_COUNT",
	"DBCircuitOpenTimeout":    "DB_CIRCUIT_OPEN_TIMEOUT",
	"DBCircuitHalfOpenMaxReq": "DB_CIRCUIT_HALF_OPEN_MAX_REQ",
	"CacheTTL":                "CACHE_TTL",
	"UptraceDSN":              "UPTRACE_DSN",
	"PyroscopeServerAddress":  "PYROSCOPE_SERVER_ADDRESS",
	"PyroscopeUploadRate":     "PYROSCOPE_UPLOAD_RATE",
	"BetterStackEndpoint":     "BETTERSTACK_ENDPOINT",
	"BetterStackTimeout":      "BETTERSTACK_TIMEOUT",
	"SeedWorkers":             "SEED_WORKERS",
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	return strconv.Atoi(value)
}

// parseUptraceDSNFromOTLPHeaders accepts the DSN from the standard OTLP header
// env, e.g. `uptrace-dsn=https://token@api.uptrace.dev/1`.
func parseUptraceDSNFromOTLPHeaders(raw string) string {
	for _, item := range strings.Split(raw, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(item), "=")
		if !ok {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(key), "uptrace-dsn") {
			return strings.Trim(strings.TrimSpace(value), "\"'")
		}
	}

	return ""
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
