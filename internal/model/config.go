package model

import "time"

// Config holds all runtime settings for symptomatic
type Config struct {
	Engine       EngineConfig      `yaml:"engine" mapstructure:"engine"`
	Catalog      CatalogConfig     `yaml:"catalog" mapstructure:"catalog"`
	Cache        CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Concurrency  ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	RateLimiting RateLimitConfig   `yaml:"rate_limiting" mapstructure:"rate_limiting"`
	Logging      LoggingConfig     `yaml:"logging" mapstructure:"logging"`
	Output       OutputConfig      `yaml:"output" mapstructure:"output"`
}

// EngineConfig controls scoring and ranking
type EngineConfig struct {
	Threshold      float64 `yaml:"threshold" mapstructure:"threshold"`             // Conditions at or below are dropped
	MaxPredictions int     `yaml:"max_predictions" mapstructure:"max_predictions"` // Top-N kept after ranking
	Weights        Weights `yaml:"weights" mapstructure:"weights"`
}

// Weights are the composite score coefficients
type Weights struct {
	Symptom  float64 `yaml:"symptom" mapstructure:"symptom"`
	Severity float64 `yaml:"severity" mapstructure:"severity"`
	Duration float64 `yaml:"duration" mapstructure:"duration"`
}

// CatalogConfig points at optional external catalog files.
// Empty paths select the built-in reference data.
type CatalogConfig struct {
	Path         string `yaml:"path" mapstructure:"path"`
	SynonymsPath string `yaml:"synonyms_path" mapstructure:"synonyms_path"`
}

// CacheConfig controls the prediction cache
type CacheConfig struct {
	Enabled    bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir        string        `yaml:"dir" mapstructure:"dir"` // Empty keeps the cache in memory only
	MemoryTTL  time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL    time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
	MaxEntries int           `yaml:"max_entries" mapstructure:"max_entries"` // Bounds the memory layer when > 0
}

// ConcurrencyConfig controls batch parallelism
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// RateLimitConfig throttles batch submissions. Zero means unlimited.
type RateLimitConfig struct {
	RequestsPerSecond float64       `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int           `yaml:"burst_size" mapstructure:"burst_size"`
	Delay             time.Duration `yaml:"delay" mapstructure:"delay"` // Extra pause after each token
}

// LoggingConfig controls the logrus logger
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // text or json
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter bool `yaml:"include_footer" mapstructure:"include_footer"`
}

// DefaultWeights returns the 0.6 / 0.3 / 0.1 weighting the scoring is tuned for
func DefaultWeights() Weights {
	return Weights{
		Symptom:  0.6,
		Severity: 0.3,
		Duration: 0.1,
	}
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			Threshold:      0.1,
			MaxPredictions: 3,
			Weights:        DefaultWeights(),
		},
		Cache: CacheConfig{
			Enabled:   false,
			Dir:       ".symptomatic-cache",
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		RateLimiting: RateLimitConfig{
			RequestsPerSecond: 0,
			BurstSize:         10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Output: OutputConfig{
			Verbose:       false,
			IncludeFooter: true,
		},
	}
}
