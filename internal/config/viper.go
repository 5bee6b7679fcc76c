// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// AccountEntry is one column of the exposure matrix, in display order.
type AccountEntry struct {
	Name    string `mapstructure:"name" yaml:"name"`
	Display string `mapstructure:"display" yaml:"display"`
}

// NameEntry maps a source code to a display name. Kept as a list rather
// than a map because Viper lowercases map keys.
type NameEntry struct {
	Code    string `mapstructure:"code" yaml:"code"`
	Display string `mapstructure:"display" yaml:"display"`
}

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	Input struct {
		Path string `mapstructure:"path" yaml:"path"`
	} `mapstructure:"input" yaml:"input"`

	Report struct {
		BaseCurrency       string         `mapstructure:"base_currency" yaml:"base_currency"`
		SectorTopN         int            `mapstructure:"sector_top_n" yaml:"sector_top_n"`
		MarketIndicesLimit int            `mapstructure:"market_indices_limit" yaml:"market_indices_limit"`
		Accounts           []AccountEntry `mapstructure:"accounts" yaml:"accounts"`
		GeographyNames     []NameEntry    `mapstructure:"geography_names" yaml:"geography_names"`
	} `mapstructure:"report" yaml:"report"`

	Dates struct {
		PerformanceHistory string `mapstructure:"performance_history" yaml:"performance_history"`
		Ledger             string `mapstructure:"ledger" yaml:"ledger"`
		IncomeExpenses     string `mapstructure:"income_expenses" yaml:"income_expenses"`
	} `mapstructure:"dates" yaml:"dates"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	return LoadConfig("")
}

// LoadConfig loads the configuration. When configFile is empty the usual
// locations are searched for a config.yaml.
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.portfolio-report")
		v.AddConfigPath(".portfolio-report")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix("PORTFOLIO")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional unless given explicitly)
	if err := v.ReadInConfig(); err != nil {
		if configFile != "" {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// CSV defaults
	v.SetDefault("csv.delimiter", ",")

	// Input defaults
	v.SetDefault("input.path", "portfolio.json")

	// Report defaults
	v.SetDefault("report.base_currency", "ILS")
	v.SetDefault("report.sector_top_n", 10)
	v.SetDefault("report.market_indices_limit", 6)
	v.SetDefault("report.accounts", defaultAccounts())
	v.SetDefault("report.geography_names", defaultGeographyNames())

	// Date conventions per section
	v.SetDefault("dates.performance_history", "MDY")
	v.SetDefault("dates.ledger", "DMY")
	v.SetDefault("dates.income_expenses", "DMY")
}

func defaultAccounts() []map[string]string {
	return []map[string]string{
		{"name": `אר.בי ביטון נדל"ן ישיר`, "display": `נדל"ן ישיר`},
		{"name": "אר.בי ביטון השקעות בסטראט-אפ", "display": "סטראט-אפ"},
		{"name": "רפי ביטון החזקות בעמ SAFRA", "display": "SAFRA"},
		{"name": "אר.בי ביטון רפאל החזקות PI", "display": "PI"},
		{"name": "UBP", "display": "UBP"},
		{"name": `אר.בי ביטון רפאל החזקות בע"מ-לאומי`, "display": "לאומי"},
		{"name": `אר.בי ביטון רפאל החזקות בע"מ - תפנית`, "display": "תפנית"},
		{"name": "אר.בי ביטון החזקות בעמ - פועלים", "display": "פועלים"},
		{"name": "אר.בי ביטון רפאל החזקות בעמ - IBI", "display": "IBI"},
	}
}

func defaultGeographyNames() []map[string]string {
	return []map[string]string{
		{"code": "Israel", "display": "ישראל"},
		{"code": "USA", "display": `ארה"ב`},
		{"code": "Europe", "display": "אירופה"},
	}
}

// GeographyNameMap returns the geography table as a lookup map.
func (c *Config) GeographyNameMap() map[string]string {
	out := make(map[string]string, len(c.Report.GeographyNames))
	for _, e := range c.Report.GeographyNames {
		out[e.Code] = e.Display
	}
	return out
}

var dateConventions = map[string]bool{"DMY": true, "MDY": true, "ISO": true}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	// Validate log level
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	// Validate log format
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	// Validate CSV delimiter
	if len(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	if config.Report.SectorTopN < 0 {
		return fmt.Errorf("report.sector_top_n must not be negative, got: %d", config.Report.SectorTopN)
	}
	if config.Report.MarketIndicesLimit < 0 {
		return fmt.Errorf("report.market_indices_limit must not be negative, got: %d", config.Report.MarketIndicesLimit)
	}
	if len(config.Report.BaseCurrency) != 3 {
		return fmt.Errorf("report.base_currency must be an ISO 4217 code, got: %s", config.Report.BaseCurrency)
	}

	for i, acc := range config.Report.Accounts {
		if acc.Name == "" {
			return fmt.Errorf("report.accounts[%d] has no name", i)
		}
	}

	for key, value := range map[string]string{
		"dates.performance_history": config.Dates.PerformanceHistory,
		"dates.ledger":              config.Dates.Ledger,
		"dates.income_expenses":     config.Dates.IncomeExpenses,
	} {
		if !dateConventions[strings.ToUpper(value)] {
			return fmt.Errorf("%s must be DMY, MDY or ISO, got: %s", key, value)
		}
	}

	return nil
}

// ConfigureLoggingFromConfig configures logging based on the Config struct
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	// Parse and set log level
	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Configure log format
	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
