// Package config loads application configuration and sets up logging.
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
	Notion NotionConfig `yaml:"notion" mapstructure:"notion"`
	Export ExportConfig `yaml:"export" mapstructure:"export"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// NotionConfig holds Notion API credentials and query settings.
type NotionConfig struct {
	Token      string  `yaml:"token" mapstructure:"token"`
	DatabaseID string  `yaml:"database_id" mapstructure:"database_id"`
	RateLimit  float64 `yaml:"rate_limit" mapstructure:"rate_limit"`
	PageSize   int     `yaml:"page_size" mapstructure:"page_size"`
}

// ExportConfig configures output shaping and destination.
type ExportConfig struct {
	Format       string            `yaml:"format" mapstructure:"format"`
	Out          string            `yaml:"out" mapstructure:"out"`
	Table        string            `yaml:"table" mapstructure:"table"`
	DateHandler  string            `yaml:"date_handler" mapstructure:"date_handler"`
	DateHandlers map[string]string `yaml:"date_handlers" mapstructure:"date_handlers"`
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
	v.SetEnvPrefix("NOTIONEXPORT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults. Empty defaults register the key so AutomaticEnv can
	// populate it without a config file.
	v.SetDefault("notion.token", "")
	v.SetDefault("notion.database_id", "")
	v.SetDefault("notion.rate_limit", 3.0)
	v.SetDefault("notion.page_size", 0)
	v.SetDefault("export.format", "csv")
	v.SetDefault("export.out", "")
	v.SetDefault("export.table", "notion_export")
	v.SetDefault("export.date_handler", "ignore_end")
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

// Validate checks the fields the given command mode requires.
func Validate(cfg *Config, mode string) error {
	var missing []string

	switch mode {
	case "export":
		if cfg.Notion.Token == "" {
			missing = append(missing, "notion.token is required (NOTIONEXPORT_NOTION_TOKEN)")
		}
		if cfg.Notion.DatabaseID == "" {
			missing = append(missing, "notion.database_id is required (--db or NOTIONEXPORT_NOTION_DATABASE_ID)")
		}
	case "users":
		if cfg.Notion.Token == "" {
			missing = append(missing, "notion.token is required (NOTIONEXPORT_NOTION_TOKEN)")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	switch cfg.Export.Format {
	case "csv", "xlsx", "sqlite":
	default:
		missing = append(missing, "export.format must be csv, xlsx or sqlite")
	}
	if cfg.Export.Format != "csv" && cfg.Export.Out == "" {
		missing = append(missing, "export.out is required for xlsx and sqlite output")
	}

	if len(missing) > 0 {
		return eris.New("config: " + strings.Join(missing, "; "))
	}
	return nil
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
