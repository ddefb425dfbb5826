// Package config loads application configuration and wires the global
// logger, following a config.yaml + UNITFLOW_* environment convention.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Units   UnitsConfig   `yaml:"units" mapstructure:"units"`
	Formats FormatsConfig `yaml:"formats" mapstructure:"formats"`
	Lineage LineageConfig `yaml:"lineage" mapstructure:"lineage"`
	Store   StoreConfig   `yaml:"store" mapstructure:"store"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// UnitsConfig configures unit-system enforcement.
type UnitsConfig struct {
	System      string `yaml:"system" mapstructure:"system"`
	Strict      bool   `yaml:"strict" mapstructure:"strict"`
	AutoConvert bool   `yaml:"auto_convert" mapstructure:"auto_convert"`
	OverlayPath string `yaml:"overlay_path" mapstructure:"overlay_path"`
}

// FormatsConfig maps semantic categories to formatting templates.
type FormatsConfig struct {
	Categories map[string]TemplateConfig `yaml:"categories" mapstructure:"categories"`
}

// TemplateConfig is one per-category formatting template.
type TemplateConfig struct {
	Precision int    `yaml:"precision" mapstructure:"precision"`
	Notation  string `yaml:"notation" mapstructure:"notation"`
	Grouping  bool   `yaml:"grouping" mapstructure:"grouping"`
}

// LineageConfig configures lineage export.
type LineageConfig struct {
	DotPath        string `yaml:"dot_path" mapstructure:"dot_path"`
	DotTimeoutSecs int    `yaml:"dot_timeout_secs" mapstructure:"dot_timeout_secs"`
}

// StoreConfig configures the audit log store.
type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("UNITFLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("units.system", "SI")
	v.SetDefault("units.strict", false)
	v.SetDefault("units.auto_convert", true)
	v.SetDefault("lineage.dot_path", "dot")
	v.SetDefault("lineage.dot_timeout_secs", 30)
	v.SetDefault("store.path", "unitflow.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
