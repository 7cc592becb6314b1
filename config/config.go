package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Storage drivers.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	Port          string `yaml:"PORT"`
	DBUrl         string `yaml:"DATABASE_URL"`
	StorageDriver string `yaml:"STORAGE_DRIVER"`
	JWTSecret     string `yaml:"JWT_SECRET"`
	FrontendURL   string `yaml:"FRONTEND_URL"`
	// Extra allowed CORS origins besides FrontendURL
	CORSOrigins []string `yaml:"CORS_ORIGINS"`
	LogMode     string   `yaml:"LOG_MODE"`
	// Redis/Upstash Configuration
	UpstashRedisURL      string `yaml:"UPSTASH_REDIS_URL"`
	UpstashRedisPassword string `yaml:"UPSTASH_REDIS_PASSWORD"`
	// Rate Limiting Configuration
	RateLimitWindowSeconds   int `yaml:"RATE_LIMIT_WINDOW_SECONDS"`
	RateLimitGlobalThreshold int `yaml:"RATE_LIMIT_GLOBAL_THRESHOLD"`
	RateLimitApplyThreshold  int `yaml:"RATE_LIMIT_APPLY_THRESHOLD"`
	// Events
	KafkaBrokers []string `yaml:"KAFKA_BROKERS"`
	KafkaTopic   string   `yaml:"KAFKA_TOPIC"`
	// Tracing
	OTelEnabled     bool    `yaml:"OTEL_ENABLED"`
	OTelEndpoint    string  `yaml:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTelServiceName string  `yaml:"OTEL_SERVICE_NAME"`
	OTelInsecure    bool    `yaml:"OTEL_EXPORTER_OTLP_INSECURE"`
	// Fraction of traces sampled; 0 disables sampling, defaults to 1
	OTelSampleRatio float64 `yaml:"OTEL_SAMPLE_RATIO"`
	// Upper bound of applicant records resolved in parallel
	ApplicantFetchConcurrency int `yaml:"APPLICANT_FETCH_CONCURRENCY"`

	// Warnings collects non-fatal problems found while loading. They are
	// logged once the logger is up.
	Warnings []string `yaml:"-"`
}

func defaults() *Config {
	return &Config{
		Port:                      "8080",
		StorageDriver:             StoragePostgres,
		FrontendURL:               "http://localhost:3000",
		LogMode:                   "development",
		RateLimitWindowSeconds:    60,
		RateLimitGlobalThreshold:  100,
		RateLimitApplyThreshold:   10,
		KafkaTopic:                "jobboard.events",
		OTelServiceName:           "jobboard-api",
		OTelSampleRatio:           1,
		ApplicantFetchConcurrency: 8,
	}
}

// LoadConfig reads .env, then the optional YAML file named by CONFIG_FILE,
// then the process environment. Later sources win.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := defaults()
	if path := getEnv("CONFIG_FILE", ""); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}
	applyEnv(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.DBUrl = getEnv("DATABASE_URL", cfg.DBUrl)
	cfg.StorageDriver = strings.ToLower(getEnv("STORAGE_DRIVER", cfg.StorageDriver))
	cfg.JWTSecret = getEnv("JWT_SECRET", cfg.JWTSecret)
	cfg.FrontendURL = strings.TrimRight(getEnv("FRONTEND_URL", cfg.FrontendURL), "/")
	cfg.CORSOrigins = getEnvList("CORS_ORIGINS", cfg.CORSOrigins)
	cfg.LogMode = getEnv("LOG_MODE", cfg.LogMode)
	cfg.UpstashRedisURL = getEnv("UPSTASH_REDIS_URL", cfg.UpstashRedisURL)
	cfg.UpstashRedisPassword = getEnv("UPSTASH_REDIS_PASSWORD", cfg.UpstashRedisPassword)
	cfg.RateLimitWindowSeconds = getEnvInt("RATE_LIMIT_WINDOW_SECONDS", cfg.RateLimitWindowSeconds)
	cfg.RateLimitGlobalThreshold = getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", cfg.RateLimitGlobalThreshold)
	cfg.RateLimitApplyThreshold = getEnvInt("RATE_LIMIT_APPLY_THRESHOLD", cfg.RateLimitApplyThreshold)
	cfg.KafkaBrokers = getEnvList("KAFKA_BROKERS", cfg.KafkaBrokers)
	cfg.KafkaTopic = getEnv("KAFKA_TOPIC", cfg.KafkaTopic)
	cfg.OTelEnabled = getEnvBool("OTEL_ENABLED", cfg.OTelEnabled)
	cfg.OTelEndpoint = getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.OTelEndpoint)
	cfg.OTelServiceName = getEnv("OTEL_SERVICE_NAME", cfg.OTelServiceName)
	cfg.OTelInsecure = getEnvBool("OTEL_EXPORTER_OTLP_INSECURE", cfg.OTelInsecure)
	cfg.OTelSampleRatio = getEnvFloat("OTEL_SAMPLE_RATIO", cfg.OTelSampleRatio)
	cfg.ApplicantFetchConcurrency = getEnvInt("APPLICANT_FETCH_CONCURRENCY", cfg.ApplicantFetchConcurrency)
}

func (cfg *Config) validate() error {
	switch cfg.StorageDriver {
	case StoragePostgres:
		if cfg.DBUrl == "" {
			return fmt.Errorf("DATABASE_URL is required when STORAGE_DRIVER=%s", StoragePostgres)
		}
	case StorageMemory:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	if cfg.JWTSecret == "" {
		cfg.Warnings = append(cfg.Warnings, "JWT_SECRET not configured. Every authenticated route will reject requests.")
	}
	if cfg.UpstashRedisURL == "" {
		cfg.Warnings = append(cfg.Warnings, "UPSTASH_REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}
	if len(cfg.KafkaBrokers) == 0 {
		cfg.Warnings = append(cfg.Warnings, "KAFKA_BROKERS not configured. Domain events are dropped.")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

// getEnvList splits a comma separated variable, dropping empty entries.
func getEnvList(key string, fallback []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
