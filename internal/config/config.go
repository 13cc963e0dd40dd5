package config

import (
	"fmt"
	"os"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "protclean/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Cleaning CleaningConfig `yaml:"cleaning" envconfig:"CLEANING"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Format      string `yaml:"format" envconfig:"FORMAT" default:"json" validate:"oneof=json text"`
	Output      string `yaml:"output" envconfig:"OUTPUT" default:"console" validate:"oneof=console file both"`
	FilePath    string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/protclean.log"`
	Development bool   `yaml:"development" envconfig:"DEVELOPMENT" default:"false"`
}

// CleaningConfig contains the identifier markers and the metagenome
// blacklist used by the pipeline stages. Defaults match the historical
// hardcoded values, so an empty environment reproduces the original
// cleaning behavior exactly.
type CleaningConfig struct {
	ContaminantMarker  string   `yaml:"contaminant_marker" envconfig:"CONTAMINANT_MARKER" default:"contam" validate:"required"`
	RepIDUnknownMarker string   `yaml:"repid_unknown_marker" envconfig:"REPID_UNKNOWN_MARKER" default:"RepID=unknown" validate:"required"`
	RewritePrefix      string   `yaml:"rewrite_prefix" envconfig:"REWRITE_PREFIX" default:"k77" validate:"required"`
	RepIDPattern       string   `yaml:"repid_pattern" envconfig:"REPID_PATTERN" default:"RepID=([^|]+)" validate:"required"`
	Blacklist          []string `yaml:"blacklist" envconfig:"BLACKLIST" default:"W1WC08_9ZZZZ,W1WM01_9ZZZZ,W1Y9K7_9ZZZZ,W1YGV0_9ZZZZ,W1YKP9_9ZZZZ,W1YP67_9ZZZZ,W1YRV8_9ZZZZ,A0A0F9P276_9ZZZZ,J9G8E8_9ZZZZ,J9GD12_9ZZZZ" validate:"min=1,dive,required"`
}

// CompileRepIDPattern compiles the RepID extraction pattern. The
// pattern must contain exactly one capture group holding the
// replacement identifier.
func (c CleaningConfig) CompileRepIDPattern() (*regexp.Regexp, error) {
	re, err := regexp.Compile(c.RepIDPattern)
	if err != nil {
		return nil, apperrors.NewConfigError(
			fmt.Sprintf("invalid RepID pattern %q", c.RepIDPattern), err)
	}
	if re.NumSubexp() < 1 {
		return nil, apperrors.NewConfigError(
			fmt.Sprintf("RepID pattern %q has no capture group", c.RepIDPattern), nil)
	}
	return re, nil
}

// Load loads configuration from environment variables and an optional
// config file named by PROTCLEAN_CONFIG_FILE.
func Load() (*Config, error) {
	var cfg Config

	// Load from environment variables first
	if err := envconfig.Process("PROTCLEAN", &cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	// Overlay from config file if one is named and exists
	if configFile := os.Getenv("PROTCLEAN_CONFIG_FILE"); configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			if err := loadFromFile(configFile, &cfg); err != nil {
				return nil, apperrors.NewConfigError("failed to load config from file", err)
			}
		}
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// loadFromFile overlays configuration from a YAML file onto cfg. Fields
// present in the file replace the current values.
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks the configuration for structural problems.
func (c *Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			first := verrs[0]
			return apperrors.NewValidationError(
				fmt.Sprintf("invalid config field %s (%s)", first.Namespace(), first.Tag()))
		}
		return apperrors.NewConfigError("config validation failed", err)
	}
	if _, err := c.Cleaning.CompileRepIDPattern(); err != nil {
		return err
	}
	return nil
}

// Default returns the configuration used when no environment or file
// overrides are present.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/protclean.log",
		},
		Cleaning: CleaningConfig{
			ContaminantMarker:  DefaultContaminantMarker,
			RepIDUnknownMarker: DefaultRepIDUnknownMarker,
			RewritePrefix:      DefaultRewritePrefix,
			RepIDPattern:       DefaultRepIDPattern,
			Blacklist:          append([]string(nil), DefaultMetagenomeBlacklist...),
		},
	}
}
