package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/julianstephens/moodatlas/internal/constants"
	"github.com/julianstephens/moodatlas/internal/utils"
	"github.com/julianstephens/moodatlas/internal/validation"
)

// Load reads configuration from path (or the default config file when path is
// empty), then overlays MOODATLAS_* environment variables. A missing default
// file is not an error; a missing explicit file is.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	explicit := path != ""
	if !explicit {
		path = constants.DefaultConfigFile
	}
	expanded, err := utils.ExpandPath(path)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(expanded); err == nil {
		v.SetConfigFile(expanded)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", expanded, err)
		}
	} else if explicit || !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to access config file %s: %w", expanded, err)
	}

	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if cfg.Database, err = utils.ExpandPath(cfg.Database); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cfg against its validate tags.
func (c *Config) Validate() error {
	return validation.New().Struct(c)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database", constants.DefaultConfigPath)
	v.SetDefault("user", "")
	v.SetDefault("timezone", constants.DefaultTimezone)
	v.SetDefault("debug", false)
	v.SetDefault("server.addr", constants.DefaultServerAddr)
	v.SetDefault("reminders.enabled", constants.DefaultRemindersEnabled)
}
