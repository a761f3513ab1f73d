package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. TSANALYZE_ENGINE_WORKERS.
const EnvPrefix = "TSANALYZE"

// Config is the process configuration of the tsanalyze command.
type Config struct {
	Log     LogConfig     `mapstructure:"log"`
	Engine  EngineConfig  `mapstructure:"engine"`
	Output  OutputConfig  `mapstructure:"output"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// LogConfig configures the logger built by internal/logging.
type LogConfig struct {
	Level      string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format     string `mapstructure:"format" validate:"oneof=json console"`
	Output     string `mapstructure:"output" validate:"required"`
	TimeFormat string `mapstructure:"time_format"`
}

// EngineConfig sizes the analysis engine's worker pool and lag limits.
type EngineConfig struct {
	Workers    int `mapstructure:"workers" validate:"min=1,max=64"`
	MaxLags    int `mapstructure:"max_lags" validate:"min=1,max=500"`
	MIMaxLags  int `mapstructure:"mi_max_lags" validate:"min=1,max=500"`
	MaxPeriods int `mapstructure:"max_periods" validate:"min=2,max=1000"`
}

// OutputConfig selects how results are printed.
type OutputConfig struct {
	Format string `mapstructure:"format" validate:"oneof=json yaml text"`
	Pretty bool   `mapstructure:"pretty"`
}

// MetricsConfig toggles the Prometheus collectors.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

var validate = validator.New()

// Load reads configuration from defaults, an optional YAML file and the
// environment, in increasing order of precedence. A .env file in the
// working directory is loaded into the environment first when present.
//
// When path is empty, tsanalyze.yaml is searched in "." and "./configs" and
// its absence is not an error. An explicit path must exist.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("tsanalyze")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	cfg.Output.Format = strings.ToLower(cfg.Output.Format)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stderr")
	v.SetDefault("log.time_format", "")

	v.SetDefault("engine.workers", 4)
	v.SetDefault("engine.max_lags", 50)
	v.SetDefault("engine.mi_max_lags", 30)
	v.SetDefault("engine.max_periods", 50)

	v.SetDefault("output.format", "json")
	v.SetDefault("output.pretty", true)

	v.SetDefault("metrics.enabled", false)
}
