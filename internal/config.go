package internal

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"
)

type MiniSqlConfig struct {
	AppName  string `mapstructure:"app_name"`
	LogLevel string `mapstructure:"log_level"`

	Storage struct {
		DataDir string `mapstructure:"data_dir"`
	} `mapstructure:"storage"`

	Shell struct {
		Prompt      string `mapstructure:"prompt"`
		HistoryFile string `mapstructure:"history_file"`
	} `mapstructure:"shell"`
}

const envPrefix = "MINISQL"

// LoadConfig reads a YAML config file. An empty path loads only defaults and
// MINISQL_* environment overrides (MINISQL_STORAGE_DATA_DIR and so on).
func LoadConfig(path string) (*MiniSqlConfig, error) {
	v := viper.New()
	v.SetDefault("app_name", "minisql")
	v.SetDefault("log_level", "info")
	v.SetDefault("storage.data_dir", "data")
	v.SetDefault("shell.prompt", "mydb> ")
	v.SetDefault("shell.history_file", "")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg MiniSqlConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

// SlogLevel maps log_level onto a slog.Level; unknown names mean info.
func (c *MiniSqlConfig) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
