// BlogMinds - Blog Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blogminds

package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are searched in order when CONFIG_PATH is unset.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/blogminds/config.yaml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            5000,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    0, // training requests may block for minutes
			ShutdownTimeout: 30 * time.Second,
		},
		API: APIConfig{
			StrictParams: false,
			MaxPageSize:  500,
			TrainMode:    TrainModeBlocking,
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitDisabled: true,
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
		},
		Store: StoreConfig{
			Backend:         BackendMongo,
			Database:        "blogminds",
			BlogsCollection: "blogs",
			UsersCollection: "users",
			ConnectTimeout:  10 * time.Second,
			CircuitBreaker: CircuitBreakerConfig{
				Enabled:          false,
				MaxRequests:      1,
				Interval:         time.Minute,
				Timeout:          30 * time.Second,
				FailureThreshold: 5,
			},
		},
		Recommend: RecommendConfig{
			ModelFile:       "model.dump",
			CandidateTTL:    60 * time.Second,
			RatingMin:       0,
			RatingMax:       10,
			TestFraction:    0.2,
			Seed:            42,
			NegativeSamples: 20,
			SVD: SVDConfig{
				Factors:        100,
				Epochs:         20,
				LearningRate:   0.005,
				Regularization: 0.02,
				InitMean:       0,
				InitStdDev:     0.1,
				Biased:         true,
			},
		},
		Jobs: JobsConfig{
			QueueBuffer: 64,
			Retention:   7 * 24 * time.Hour,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load builds the configuration: defaults, then the YAML file (if any), then
// environment variables. The result is validated before it is returned.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields splits comma separated env values for slice fields.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		s, ok := k.Get(path).(string)
		if !ok || s == "" {
			continue
		}
		var parts []string
		for _, p := range strings.Split(s, ",") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		if err := k.Set(path, parts); err != nil {
			return fmt.Errorf("set %s: %w", path, err)
		}
	}
	return nil
}

var envMappings = map[string]string{
	// Server
	"http_host":             "server.host",
	"http_port":             "server.port",
	"http_read_timeout":     "server.read_timeout",
	"http_write_timeout":    "server.write_timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",

	// API
	"api_strict_params":   "api.strict_params",
	"api_max_page_size":   "api.max_page_size",
	"train_mode":          "api.train_mode",
	"train_wait_timeout":  "api.train_wait_timeout",
	"cors_origins":        "security.cors_origins",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",

	// Store
	"store_backend":           "store.backend",
	"mongo_url":               "store.mongo_url",
	"mongo_database":          "store.database",
	"mongo_blogs_collection":  "store.blogs_collection",
	"mongo_users_collection":  "store.users_collection",
	"mongo_connect_timeout":   "store.connect_timeout",
	"duckdb_path":             "store.duckdb_path",
	"store_breaker_enabled":   "store.circuit_breaker.enabled",
	"store_breaker_threshold": "store.circuit_breaker.failure_threshold",
	"store_breaker_timeout":   "store.circuit_breaker.timeout",

	// Recommend
	"model_dir":                  "recommend.model_dir",
	"model_file":                 "recommend.model_file",
	"model_cache":                "recommend.model_cache",
	"candidate_ttl":              "recommend.candidate_ttl",
	"recommend_seed":             "recommend.seed",
	"recommend_test_fraction":    "recommend.test_fraction",
	"recommend_sparse":           "recommend.sparse_synthesis",
	"recommend_negative_samples": "recommend.negative_samples",
	"train_on_startup":           "recommend.train_on_startup",
	"train_interval":             "recommend.train_interval",
	"svd_factors":                "recommend.svd.factors",
	"svd_epochs":                 "recommend.svd.epochs",
	"svd_learning_rate":          "recommend.svd.learning_rate",
	"svd_regularization":         "recommend.svd.regularization",

	// Jobs
	"jobs_data_dir":     "jobs.data_dir",
	"jobs_queue_buffer": "jobs.queue_buffer",
	"jobs_retention":    "jobs.retention",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps an environment variable name to its koanf path.
// Unknown variables map to "" and are ignored.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

func joinHostPort(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}
