package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every key when read from the environment,
// e.g. SOAPNOTE_DB.
const EnvPrefix = "SOAPNOTE"

// FileName is the config file looked up, without extension, in the working
// directory and then in ~/.soapnote.
const FileName = "soapnote"

var (
	LogLevels  = []string{"debug", "info", "warn", "error"}
	LogFormats = []string{"console", "json"}
)

type Config struct {
	DB           string `mapstructure:"DB"`
	Modules      string `mapstructure:"MODULES"`
	LogLevel     string `mapstructure:"LOG_LEVEL"`
	LogFormat    string `mapstructure:"LOG_FORMAT"`
	SuggestLimit int    `mapstructure:"SUGGEST_LIMIT"`
	Note         string `mapstructure:"NOTE"`

	// File is the config file that was read, empty when none was found.
	File string `mapstructure:"-"`
}

var keys = []string{"DB", "MODULES", "LOG_LEVEL", "LOG_FORMAT", "SUGGEST_LIMIT", "NOTE"}

// Load reads configuration from defaults, an optional config file and the
// environment, in increasing precedence. An explicit file must exist; the
// default lookup tolerates a missing file.
func Load(file string) (*Config, error) {
	home := homeDir()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	v.SetDefault("DB", filepath.Join(home, "soapnote.db"))
	v.SetDefault("MODULES", defaultModulesDir(home))
	v.SetDefault("LOG_LEVEL", "warn")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("SUGGEST_LIMIT", 8)
	v.SetDefault("NOTE", "default")

	for _, k := range keys {
		if err := v.BindEnv(k); err != nil {
			return nil, fmt.Errorf("binding %s_%s: %w", EnvPrefix, k, err)
		}
	}

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(home)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()
	return cfg, nil
}

// Validate rejects values the application cannot run with.
func (c *Config) Validate() error {
	if c.DB == "" {
		return fmt.Errorf("DB must not be empty")
	}
	if c.Modules == "" {
		return fmt.Errorf("MODULES must not be empty")
	}
	if c.SuggestLimit <= 0 {
		return fmt.Errorf("SUGGEST_LIMIT must be positive, got %d", c.SuggestLimit)
	}
	if !slices.Contains(LogLevels, c.LogLevel) {
		return fmt.Errorf("LOG_LEVEL must be one of %v, got %q", LogLevels, c.LogLevel)
	}
	if !slices.Contains(LogFormats, c.LogFormat) {
		return fmt.Errorf("LOG_FORMAT must be one of %v, got %q", LogFormats, c.LogFormat)
	}
	if c.Note == "" {
		return fmt.Errorf("NOTE must not be empty")
	}
	return nil
}

func homeDir() string {
	h, err := os.UserHomeDir()
	if err != nil {
		return ".soapnote"
	}
	return filepath.Join(h, ".soapnote")
}

func defaultModulesDir(home string) string {
	if info, err := os.Stat("modules"); err == nil && info.IsDir() {
		return "modules"
	}
	return filepath.Join(home, "modules")
}
