package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	DB       DBConfig       `mapstructure:"db"`
	Generate GenerateConfig `mapstructure:"generate"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type DBConfig struct {
	Driver       string `mapstructure:"driver"`
	DSN          string `mapstructure:"dsn"`
	MaxOpenConns int    `mapstructure:"maxOpenConns"`
}

// GenerateConfig holds the record counts for one generation run.
type GenerateConfig struct {
	Customers    int    `mapstructure:"customers"`
	Calls        int    `mapstructure:"calls"`
	UsageRecords int    `mapstructure:"usage_records"`
	Bills        int    `mapstructure:"bills"`
	Seed         uint64 `mapstructure:"seed"`
	DropFirst    bool   `mapstructure:"drop_first"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Validate rejects negative record counts.
func (g GenerateConfig) Validate() error {
	if g.Customers < 0 || g.Calls < 0 || g.UsageRecords < 0 || g.Bills < 0 {
		return fmt.Errorf("record counts must not be negative: %+v", g)
	}
	return nil
}

// SetDefaults registers the built-in values used when no config file is present.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("db.driver", "sqlite3")
	v.SetDefault("db.dsn", "telecom_data.db")
	v.SetDefault("db.maxOpenConns", 1)
	v.SetDefault("generate.customers", 1000)
	v.SetDefault("generate.calls", 1200)
	v.SetDefault("generate.usage_records", 500)
	v.SetDefault("generate.bills", 300)
	v.SetDefault("generate.seed", 0)
	v.SetDefault("generate.drop_first", false)
	v.SetDefault("log.level", "info")
}

// New returns a viper instance with search paths, env binding and defaults set.
func New(configFile string) *viper.Viper {
	v := viper.New()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./deploy/")
		v.AddConfigPath("./")
		v.AddConfigPath("$HOME/.telcodata/")
		v.AddConfigPath("/etc/telcodata/")
	}

	// TELCODATA_GENERATE_CUSTOMERS overrides generate.customers
	v.SetEnvPrefix("TELCODATA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)
	return v
}

// LoadConfig reads the config file if one exists and unmarshals the merged settings.
func LoadConfig(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Generate.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}
