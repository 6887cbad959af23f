// Package config loads tool configuration from an optional config.yaml and
// MAPDATA_* environment variables, and owns the global logger setup.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full tool configuration.
type Config struct {
	Input  InputConfig  `yaml:"input" mapstructure:"input"`
	Output OutputConfig `yaml:"output" mapstructure:"output"`
	Logos  LogosConfig  `yaml:"logos" mapstructure:"logos"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// InputConfig names the source table files. The spreadsheet is preferred
// when both exist.
type InputConfig struct {
	CSVPath  string `yaml:"csv_path" mapstructure:"csv_path"`
	XLSXPath string `yaml:"xlsx_path" mapstructure:"xlsx_path"`
}

// OutputConfig names the generated JSON documents.
type OutputConfig struct {
	CompaniesV2Path string `yaml:"companies_v2_path" mapstructure:"companies_v2_path"`
	CompaniesPath   string `yaml:"companies_path" mapstructure:"companies_path"`
}

// LogosConfig configures the logo download batch.
type LogosConfig struct {
	Dir           string `yaml:"dir" mapstructure:"dir"`
	ReportPath    string `yaml:"report_path" mapstructure:"report_path"`
	BrandfetchKey string `yaml:"brandfetch_key" mapstructure:"brandfetch_key"`
	UserAgent     string `yaml:"user_agent" mapstructure:"user_agent"`
	TimeoutSecs   int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	DelayMS       int    `yaml:"delay_ms" mapstructure:"delay_ms"`
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
	v.SetEnvPrefix("MAPDATA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("input.csv_path", "map_data.csv")
	v.SetDefault("input.xlsx_path", "map_data.xlsx")
	v.SetDefault("output.companies_v2_path", "public/companiesV2.json")
	v.SetDefault("output.companies_path", "public/companies.json")
	v.SetDefault("logos.dir", "new-logos")
	v.SetDefault("logos.report_path", "failed_logos.txt")
	v.SetDefault("logos.user_agent", "mapdata-cli/1.0")
	v.SetDefault("logos.timeout_secs", 6)
	v.SetDefault("logos.delay_ms", 250)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

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
