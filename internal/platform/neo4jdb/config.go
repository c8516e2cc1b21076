package neo4jdb

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	URI            string
	Username       string
	Password       string
	Database       string
	BatchSize      int
	ConnectTimeout time.Duration
	QueryTimeout   time.Duration
	MaxPoolSize    int
}

type ConfigErrorCode string

const (
	ConfigErrorMissingURI            ConfigErrorCode = "missing_uri"
	ConfigErrorInvalidURI            ConfigErrorCode = "invalid_uri"
	ConfigErrorMissingDatabase       ConfigErrorCode = "missing_database"
	ConfigErrorInvalidBatchSize      ConfigErrorCode = "invalid_batch_size"
	ConfigErrorInvalidConnectTimeout ConfigErrorCode = "invalid_connect_timeout"
	ConfigErrorInvalidQueryTimeout   ConfigErrorCode = "invalid_query_timeout"
	ConfigErrorInvalidPoolSize       ConfigErrorCode = "invalid_pool_size"
)

type ConfigError struct {
	Code  ConfigErrorCode
	Value string
	Cause error
}

func (e *ConfigError) Error() string {
	if e == nil {
		return "invalid neo4j config"
	}
	switch e.Code {
	case ConfigErrorMissingURI:
		return "NEO4J_URI is required"
	case ConfigErrorInvalidURI:
		return fmt.Sprintf(
			"invalid NEO4J_URI=%q; expected bolt:// or neo4j:// URI like bolt://localhost:7687",
			e.Value,
		)
	case ConfigErrorMissingDatabase:
		return "NEO4J_DATABASE is required"
	case ConfigErrorInvalidBatchSize:
		return fmt.Sprintf(
			"invalid NEO4J_BATCH_SIZE=%q; expected positive integer",
			e.Value,
		)
	case ConfigErrorInvalidConnectTimeout:
		return fmt.Sprintf(
			"invalid NEO4J_CONNECT_TIMEOUT_SECONDS=%q; expected positive integer",
			e.Value,
		)
	case ConfigErrorInvalidQueryTimeout:
		return fmt.Sprintf(
			"invalid NEO4J_QUERY_TIMEOUT_SECONDS=%q; expected positive integer",
			e.Value,
		)
	case ConfigErrorInvalidPoolSize:
		return fmt.Sprintf(
			"invalid NEO4J_MAX_POOL_SIZE=%q; expected positive integer",
			e.Value,
		)
	default:
		return "invalid neo4j config"
	}
}

func (e *ConfigError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

const (
	DefaultURI            = "bolt://localhost:7687"
	DefaultUsername       = "neo4j"
	DefaultPassword       = "password"
	DefaultDatabase       = "healthproject"
	DefaultBatchSize      = 1000
	DefaultConnectTimeout = 30 * time.Second
	DefaultQueryTimeout   = 300 * time.Second
	DefaultMaxPoolSize    = 50
)

// ResolveConfigFromEnv resolves the store configuration exactly once, at
// process start. Components receive the resolved Config by parameter and
// never read the environment themselves.
func ResolveConfigFromEnv() (Config, error) {
	cfg := Config{
		URI:            strings.TrimSpace(os.Getenv("NEO4J_URI")),
		Username:       strings.TrimSpace(os.Getenv("NEO4J_USERNAME")),
		Password:       strings.TrimSpace(os.Getenv("NEO4J_PASSWORD")),
		Database:       strings.TrimSpace(os.Getenv("NEO4J_DATABASE")),
		BatchSize:      DefaultBatchSize,
		ConnectTimeout: DefaultConnectTimeout,
		QueryTimeout:   DefaultQueryTimeout,
		MaxPoolSize:    DefaultMaxPoolSize,
	}
	if cfg.URI == "" {
		cfg.URI = DefaultURI
	}
	if cfg.Username == "" {
		cfg.Username = DefaultUsername
	}
	if cfg.Password == "" {
		cfg.Password = DefaultPassword
	}
	if cfg.Database == "" {
		cfg.Database = DefaultDatabase
	}

	if raw := strings.TrimSpace(os.Getenv("NEO4J_BATCH_SIZE")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return Config{}, &ConfigError{Code: ConfigErrorInvalidBatchSize, Value: raw, Cause: err}
		}
		cfg.BatchSize = parsed
	}
	if raw := strings.TrimSpace(os.Getenv("NEO4J_CONNECT_TIMEOUT_SECONDS")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return Config{}, &ConfigError{Code: ConfigErrorInvalidConnectTimeout, Value: raw, Cause: err}
		}
		cfg.ConnectTimeout = time.Duration(parsed) * time.Second
	}
	if raw := strings.TrimSpace(os.Getenv("NEO4J_QUERY_TIMEOUT_SECONDS")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return Config{}, &ConfigError{Code: ConfigErrorInvalidQueryTimeout, Value: raw, Cause: err}
		}
		cfg.QueryTimeout = time.Duration(parsed) * time.Second
	}
	if raw := strings.TrimSpace(os.Getenv("NEO4J_MAX_POOL_SIZE")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return Config{}, &ConfigError{Code: ConfigErrorInvalidPoolSize, Value: raw, Cause: err}
		}
		cfg.MaxPoolSize = parsed
	}

	if err := ValidateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func ValidateConfig(cfg Config) error {
	if strings.TrimSpace(cfg.URI) == "" {
		return &ConfigError{Code: ConfigErrorMissingURI}
	}
	parsed, err := url.Parse(cfg.URI)
	if err != nil || strings.TrimSpace(parsed.Host) == "" {
		return &ConfigError{Code: ConfigErrorInvalidURI, Value: cfg.URI, Cause: err}
	}
	switch parsed.Scheme {
	case "bolt", "bolt+s", "bolt+ssc", "neo4j", "neo4j+s", "neo4j+ssc":
	default:
		return &ConfigError{Code: ConfigErrorInvalidURI, Value: cfg.URI}
	}
	if strings.TrimSpace(cfg.Database) == "" {
		return &ConfigError{Code: ConfigErrorMissingDatabase}
	}
	if cfg.BatchSize <= 0 {
		return &ConfigError{Code: ConfigErrorInvalidBatchSize, Value: strconv.Itoa(cfg.BatchSize)}
	}
	if cfg.ConnectTimeout <= 0 {
		return &ConfigError{Code: ConfigErrorInvalidConnectTimeout, Value: cfg.ConnectTimeout.String()}
	}
	if cfg.QueryTimeout <= 0 {
		return &ConfigError{Code: ConfigErrorInvalidQueryTimeout, Value: cfg.QueryTimeout.String()}
	}
	if cfg.MaxPoolSize <= 0 {
		return &ConfigError{Code: ConfigErrorInvalidPoolSize, Value: strconv.Itoa(cfg.MaxPoolSize)}
	}
	return nil
}
