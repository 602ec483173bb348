package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Source types
const (
	SourceFile = "file"
	SourceUSDA = "usda"
)

// Config holds all configuration for the application
type Config struct {
	Pipeline PipelineConfig
	Synonyms SynonymsConfig
	Source   SourceConfig
	USDA     USDAConfig
	Cache    CacheConfig
	Server   ServerConfig
	Log      LogConfig
}

// PipelineConfig holds scoring pipeline configuration
type PipelineConfig struct {
	InputPath  string `mapstructure:"input_path"`
	OutputPath string `mapstructure:"output_path"`
	SampleSize int    `mapstructure:"sample_size"`
	TraceMatch string `mapstructure:"trace_match"`
}

// SynonymsConfig points at an optional synonym table file
type SynonymsConfig struct {
	Path string `mapstructure:"path"` // empty uses the built-in table
}

// SourceConfig selects where foods are loaded from
type SourceConfig struct {
	Type string `mapstructure:"type"` // "file" or "usda"
}

// USDAConfig holds USDA API configuration
type USDAConfig struct {
	APIKey  string   `mapstructure:"api_key"`
	BaseURL string   `mapstructure:"base_url"`
	FdcIDs  []string `mapstructure:"fdc_ids"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// flagKeys maps command line flags to configuration keys
var flagKeys = map[string]string{
	"input":     "pipeline.input_path",
	"output":    "pipeline.output_path",
	"synonyms":  "synonyms.path",
	"trace":     "pipeline.trace_match",
	"source":    "source.type",
	"port":      "server.port",
	"log-level": "log.level",
}

// RegisterFlags declares the command line flags understood by Load
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String("config", "", "path to a config file")
	flags.String("input", "", "Foundation Foods JSON document to score")
	flags.String("output", "", "where to write the scored foods")
	flags.String("synonyms", "", "YAML synonym table (built-in table when empty)")
	flags.String("trace", "", "trace scoring of foods whose description contains this text")
	flags.String("source", "", "dataset source: file or usda")
	flags.String("port", "", "HTTP port for serve mode")
	flags.String("log-level", "", "log level: debug, info, warn or error")
}

// Load loads configuration from a .env file, environment variables, an
// optional config file and command line flags. flags may be nil.
func Load(flags *pflag.FlagSet) (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/foodscore/")

	// Environment variable settings
	v.SetEnvPrefix("FOODSCORE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Keys without defaults are invisible to Unmarshal unless bound
	for _, key := range []string{"usda.api_key", "usda.fdc_ids"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("unable to bind %s: %w", key, err)
		}
	}

	setDefaults(v)

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return nil, err
		}
	}

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile loads .env from the working directory when present.
// Variables already set in the environment win.
func loadEnvFile() error {
	err := godotenv.Load()
	if err != nil && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	if f := flags.Lookup("config"); f != nil && f.Value.String() != "" {
		v.SetConfigFile(f.Value.String())
	}

	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("unable to bind flag --%s: %w", name, err)
		}
	}
	return nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Pipeline defaults
	v.SetDefault("pipeline.input_path", "foundationDownload.json")
	v.SetDefault("pipeline.output_path", "foods_data.json")
	v.SetDefault("pipeline.sample_size", 10)
	v.SetDefault("pipeline.trace_match", "")

	v.SetDefault("synonyms.path", "")
	v.SetDefault("source.type", SourceFile)

	// USDA defaults
	v.SetDefault("usda.base_url", "https://api.nal.usda.gov/fdc")

	v.SetDefault("cache.ttl", "720h") // 30 days

	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"chrome-extension://*"})

	v.SetDefault("log.level", "info")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Pipeline.OutputPath == "" {
		return fmt.Errorf("output path is required")
	}

	if config.Pipeline.SampleSize < 0 {
		return fmt.Errorf("sample size must not be negative, got: %d", config.Pipeline.SampleSize)
	}

	switch config.Source.Type {
	case SourceFile:
		if config.Pipeline.InputPath == "" {
			return fmt.Errorf("input path is required for the file source")
		}
	case SourceUSDA:
		if config.USDA.APIKey == "" {
			return fmt.Errorf("USDA API key is required (set FOODSCORE_USDA_API_KEY)")
		}
		if len(config.USDA.FdcIDs) == 0 {
			return fmt.Errorf("at least one FDC id is required (set FOODSCORE_USDA_FDC_IDS)")
		}
	default:
		return fmt.Errorf("source type must be 'file' or 'usda', got: %s", config.Source.Type)
	}

	return nil
}
