package config

import (
	"runtime"

	"github.com/stacklens/stacklens/internal/configloader"
)

// Default configuration values.
const (
	defaultServiceName    = "stacklens"
	defaultServiceVersion = "1.0.0"
	defaultServicePort    = 8090
	defaultCorpusPath     = "data/threads.jsonl"
	defaultStopwordTag    = "java"
	defaultLogLevel       = "info"
	defaultLogFormat      = "json"
)

// Config holds all configuration for the stacklens service.
type Config struct {
	Service  ServiceConfig  `yaml:"service"`
	Corpus   CorpusConfig   `yaml:"corpus"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Port    int    `env:"STACKLENS_PORT" yaml:"port"`
	Debug   bool   `env:"APP_DEBUG"      yaml:"debug"`
	// RateLimitRPS caps sustained requests per second. Zero disables it.
	RateLimitRPS int `env:"STACKLENS_RATE_LIMIT_RPS" yaml:"rate_limit_rps"`
}

// CorpusConfig locates the newline-delimited JSON corpus file.
type CorpusConfig struct {
	Path string `env:"STACKLENS_CORPUS_PATH" yaml:"path"`
}

// AnalysisConfig holds aggregation settings.
type AnalysisConfig struct {
	// Workers bounds the corpus fan-out width. Zero means GOMAXPROCS.
	Workers int `env:"STACKLENS_WORKERS" yaml:"workers"`
	// StopwordTags are excluded from tag-level co-occurrence pairing.
	StopwordTags []string `env:"STACKLENS_STOPWORD_TAGS" yaml:"stopword_tags"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL"  yaml:"level"`
	Format string `env:"LOG_FORMAT" yaml:"format"`
	Output string `yaml:"output"`
}

// Load loads configuration from the specified path.
func Load(path string) (*Config, error) {
	return configloader.LoadWithDefaults[Config](path, setDefaults)
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	if cfg.Service.Name == "" {
		cfg.Service.Name = defaultServiceName
	}
	if cfg.Service.Version == "" {
		cfg.Service.Version = defaultServiceVersion
	}
	if cfg.Service.Port == 0 {
		cfg.Service.Port = defaultServicePort
	}
	if cfg.Corpus.Path == "" {
		cfg.Corpus.Path = defaultCorpusPath
	}
	if cfg.Analysis.Workers == 0 {
		cfg.Analysis.Workers = runtime.GOMAXPROCS(0)
	}
	if cfg.Analysis.StopwordTags == nil {
		cfg.Analysis.StopwordTags = []string{defaultStopwordTag}
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = defaultLogLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = defaultLogFormat
	}
}
