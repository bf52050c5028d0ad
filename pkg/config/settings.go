package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

const (
	settingsDir  = "pypisrc"
	settingsName = "config"
	settingsType = "yaml"
	envPrefix    = "PYPISRC"
)

// Settings holds the application's own options, not pip's.
type Settings struct {
	Tool           string        `mapstructure:"tool"`
	Mode           string        `mapstructure:"mode"`
	LogDir         string        `mapstructure:"log_dir"`
	CommandTimeout time.Duration `mapstructure:"command_timeout"`
	Debug          bool          `mapstructure:"debug"`
}

// DefaultSettingsPath returns <user config dir>/pypisrc/config.yaml.
func DefaultSettingsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", settingsDir, settingsName+"."+settingsType)
	}
	return filepath.Join(dir, settingsDir, settingsName+"."+settingsType)
}

// LoadSettings reads settings from path (optional) and PYPISRC_* environment
// variables. An empty path means DefaultSettingsPath. A missing file is not
// an error; defaults apply.
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()
	v.SetDefault("tool", "pip")
	v.SetDefault("mode", "shell")
	v.SetDefault("log_dir", filepath.Join("..", "logs"))
	v.SetDefault("command_timeout", 60*time.Second)
	v.SetDefault("debug", false)

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if path == "" {
		path = DefaultSettingsPath()
	}
	v.SetConfigFile(path)
	v.SetConfigType(settingsType)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read settings %s: %w", path, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	if s.Tool == "" {
		s.Tool = "pip"
	}
	if s.CommandTimeout <= 0 {
		s.CommandTimeout = 60 * time.Second
	}
	return &s, nil
}
