package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/StNick/squash-team-challenge/internal/platform/logging"
)

// Config stores runtime configuration for the service. An empty DBURL
// selects the in-memory repositories with demo seed data.
type Config struct {
	AppEnv                       string
	ServiceName                  string
	ServiceVersion               string
	HTTPAddr                     string
	DBURL                        string
	DBDisablePreparedBinary      bool
	CacheEnabled                 bool
	CacheTTL                     time.Duration
	CORSAllowedOrigins           []string
	ReadTimeout                  time.Duration
	WriteTimeout                 time.Duration
	AdminToken                   string
	RecomputeWorkers             int
	PprofEnabled                 bool
	PprofAddr                    string
	UptraceEnabled               bool
	UptraceDSN                   string
	PyroscopeEnabled             bool
	PyroscopeServerAddress       string
	PyroscopeAppName             string
	PyroscopeAuthToken           string
	PyroscopeUploadRate          time.Duration
	ScoreAPIBaseURL              string
	ScoreAPITimeout              time.Duration
	ScoreAPIMaxRetries           int
	ScoreAPICircuitEnabled       bool
	ScoreAPICircuitFailureCount  int
	ScoreAPICircuitOpenTimeout   time.Duration
	ScoreAPICircuitHalfOpenMaxRq int
	SessionDir                   string
	LogLevel                     logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}

	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	recomputeWorkers, err := getEnvAsInt("RECOMPUTE_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse RECOMPUTE_WORKERS: %w", err)
	}
	if recomputeWorkers < 1 {
		return Config{}, fmt.Errorf("RECOMPUTE_WORKERS must be >= 1")
	}

	scoreAPITimeout, err := time.ParseDuration(getEnv("SCORE_API_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SCORE_API_TIMEOUT: %w", err)
	}
	if scoreAPITimeout <= 0 {
		return Config{}, fmt.Errorf("SCORE_API_TIMEOUT must be > 0")
	}
	scoreAPIMaxRetries, err := getEnvAsInt("SCORE_API_MAX_RETRIES", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse SCORE_API_MAX_RETRIES: %w", err)
	}
	if scoreAPIMaxRetries < 0 {
		return Config{}, fmt.Errorf("SCORE_API_MAX_RETRIES must be >= 0")
	}
	scoreAPICircuitEnabled, err := strconv.ParseBool(getEnv("SCORE_API_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SCORE_API_CIRCUIT_ENABLED: %w", err)
	}
	scoreAPICircuitFailureCount, err := getEnvAsInt("SCORE_API_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse SCORE_API_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if scoreAPICircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("SCORE_API_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	scoreAPICircuitOpenTimeout, err := time.ParseDuration(getEnv("SCORE_API_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SCORE_API_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if scoreAPICircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("SCORE_API_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	scoreAPICircuitHalfOpenMaxRq, err := getEnvAsInt("SCORE_API_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse SCORE_API_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if scoreAPICircuitHalfOpenMaxRq < 1 {
		return Config{}, fmt.Errorf("SCORE_API_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	sessionDir := strings.TrimSpace(getEnv("SESSION_DIR", defaultSessionDir()))
	if sessionDir == "" {
		return Config{}, fmt.Errorf("SESSION_DIR cannot be empty")
	}

	logLevel := parseLogLevel(getEnv("APP_LOG_LEVEL", "info"))

	cfg := Config{
		AppEnv:                       appEnv,
		ServiceName:                  getEnv("APP_SERVICE_NAME", "squash-team-challenge-api"),
		ServiceVersion:               getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                     getEnv("APP_HTTP_ADDR", ":8080"),
		DBURL:                        strings.TrimSpace(getEnv("DB_URL", "")),
		DBDisablePreparedBinary:      dbDisablePreparedBinary,
		CacheEnabled:                 cacheEnabled,
		CacheTTL:                     cacheTTL,
		CORSAllowedOrigins:           splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		ReadTimeout:                  readTimeout,
		WriteTimeout:                 writeTimeout,
		AdminToken:                   strings.TrimSpace(getEnv("ADMIN_TOKEN", "")),
		RecomputeWorkers:             recomputeWorkers,
		PprofEnabled:                 pprofEnabled,
		PprofAddr:                    pprofAddr,
		UptraceEnabled:               uptraceEnabled,
		UptraceDSN:                   uptraceDSN,
		PyroscopeEnabled:             pyroscopeEnabled,
		PyroscopeServerAddress:       pyroscopeServerAddress,
		PyroscopeAuthToken:           strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeUploadRate:          pyroscopeUploadRate,
		ScoreAPIBaseURL:              strings.TrimSpace(getEnv("SCORE_API_BASE_URL", "http://localhost:8080")),
		ScoreAPITimeout:              scoreAPITimeout,
		ScoreAPIMaxRetries:           scoreAPIMaxRetries,
		ScoreAPICircuitEnabled:       scoreAPICircuitEnabled,
		ScoreAPICircuitFailureCount:  scoreAPICircuitFailureCount,
		ScoreAPICircuitOpenTimeout:   scoreAPICircuitOpenTimeout,
		ScoreAPICircuitHalfOpenMaxRq: scoreAPICircuitHalfOpenMaxRq,
		SessionDir:                   sessionDir,
		LogLevel:                     logLevel,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
}

func defaultSessionDir() string {
	home, err := os.UserHomeDir()
	if err != nil || strings.TrimSpace(home) == "" {
		return ".squash-sessions"
	}
	return home + string(os.PathSeparator) + ".squash-sessions"
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
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

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
