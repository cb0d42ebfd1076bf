// BlogMinds - Blog Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blogminds

// Package config loads BlogMinds configuration from built-in defaults, an
// optional YAML file and environment variables, in that order of precedence
// (environment wins).
//
// Environment variables use flat legacy names which are mapped onto the
// nested koanf paths, for example MONGO_URL -> store.mongo_url and
// LOG_LEVEL -> logging.level. See envMappings for the full table.
package config

import "time"

// Config is the root configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	API       APIConfig       `koanf:"api"`
	Security  SecurityConfig  `koanf:"security"`
	Store     StoreConfig     `koanf:"store"`
	Recommend RecommendConfig `koanf:"recommend"`
	Jobs      JobsConfig      `koanf:"jobs"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"gte=0"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"gte=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
}

// Train modes for GET /train_model.
const (
	TrainModeBlocking = "blocking"
	TrainModeAsync    = "async"
)

// APIConfig holds behavior switches of the HTTP surface.
type APIConfig struct {
	// StrictParams turns unparseable page/page_size into 400 and a missing
	// model into 404. When false both surface as 500.
	StrictParams bool `koanf:"strict_params"`

	// MaxPageSize caps page_size when StrictParams is set.
	MaxPageSize int `koanf:"max_page_size" validate:"min=1"`

	// TrainMode is "blocking" (wait for the job, reply 200) or "async"
	// (reply 202 with the job id).
	TrainMode string `koanf:"train_mode" validate:"oneof=blocking async"`

	// TrainWaitTimeout bounds a blocking /train_model call. 0 waits until
	// the job finishes or the client goes away.
	TrainWaitTimeout time.Duration `koanf:"train_wait_timeout" validate:"gte=0"`
}

// SecurityConfig holds cross-origin and rate limiting settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs" validate:"min=1"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window" validate:"gt=0"`
}

// Store backends.
const (
	BackendMongo  = "mongo"
	BackendDuckDB = "duckdb"
	BackendMemory = "memory"
)

// StoreConfig selects and configures the document store.
type StoreConfig struct {
	Backend         string        `koanf:"backend" validate:"oneof=mongo duckdb memory"`
	MongoURL        string        `koanf:"mongo_url" validate:"required_if=Backend mongo"`
	Database        string        `koanf:"database" validate:"required"`
	BlogsCollection string        `koanf:"blogs_collection" validate:"required"`
	UsersCollection string        `koanf:"users_collection" validate:"required"`
	ConnectTimeout  time.Duration `koanf:"connect_timeout" validate:"gt=0"`
	DuckDBPath      string        `koanf:"duckdb_path" validate:"required_if=Backend duckdb"`

	CircuitBreaker CircuitBreakerConfig `koanf:"circuit_breaker"`
}

// CircuitBreakerConfig configures the optional breaker around store calls.
type CircuitBreakerConfig struct {
	Enabled          bool          `koanf:"enabled"`
	MaxRequests      uint32        `koanf:"max_requests"`
	Interval         time.Duration `koanf:"interval"`
	Timeout          time.Duration `koanf:"timeout"`
	FailureThreshold uint32        `koanf:"failure_threshold" validate:"min=1"`
}

// RecommendConfig configures training and serving.
type RecommendConfig struct {
	// ModelDir is the directory holding the model artifact. Empty means the
	// working directory.
	ModelDir  string `koanf:"model_dir"`
	ModelFile string `koanf:"model_file" validate:"required"`

	// CandidateTTL is the staleness window of the candidate item set.
	CandidateTTL time.Duration `koanf:"candidate_ttl" validate:"gt=0"`

	// ModelCache keeps the loaded model in memory and reloads it only when
	// a newer model generation has been written.
	ModelCache bool `koanf:"model_cache"`

	RatingMin    float64 `koanf:"rating_min"`
	RatingMax    float64 `koanf:"rating_max" validate:"gtfield=RatingMin"`
	TestFraction float64 `koanf:"test_fraction" validate:"gte=0,lt=1"`
	Seed         int64   `koanf:"seed"`

	// SparseSynthesis materializes only pairs with a firing indicator plus
	// NegativeSamples random pairs per user.
	SparseSynthesis bool `koanf:"sparse_synthesis"`
	NegativeSamples int  `koanf:"negative_samples" validate:"gte=0"`

	TrainOnStartup bool          `koanf:"train_on_startup"`
	TrainInterval  time.Duration `koanf:"train_interval" validate:"gte=0"`

	SVD SVDConfig `koanf:"svd"`
}

// SVDConfig holds matrix factorization hyperparameters.
type SVDConfig struct {
	Factors        int     `koanf:"factors" validate:"min=1"`
	Epochs         int     `koanf:"epochs" validate:"min=1"`
	LearningRate   float64 `koanf:"learning_rate" validate:"gt=0"`
	Regularization float64 `koanf:"regularization" validate:"gte=0"`
	InitMean       float64 `koanf:"init_mean"`
	InitStdDev     float64 `koanf:"init_std_dev" validate:"gte=0"`
	Biased         bool    `koanf:"biased"`
}

// JobsConfig configures the background training queue.
type JobsConfig struct {
	// DataDir holds the job status database. Empty keeps job records in
	// memory only.
	DataDir string `koanf:"data_dir"`

	// QueueBuffer is the in-process topic buffer size.
	QueueBuffer int64 `koanf:"queue_buffer" validate:"min=1"`

	// Retention is how long finished job records are kept.
	Retention time.Duration `koanf:"retention" validate:"gt=0"`
}

// LoggingConfig holds zerolog settings.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn warning error disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return joinHostPort(s.Host, s.Port)
}
