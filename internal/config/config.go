// Package config loads run settings from an optional YAML file and flags.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"coretemp"
	"coretemp/internal/logger"
)

// Config is the resolved configuration of a run.
type Config struct {
	LogLevel    string
	Interval    int64
	Channels    int
	OutputDir   string
	Archive     bool
	ArchivePath string
	APIPort     string
}

const (
	keyLogLevel    = "log.level"
	keyInterval    = "fit.interval"
	keyChannels    = "fit.channels"
	keyOutputDir   = "output.dir"
	keyArchive     = "archive.enabled"
	keyArchivePath = "archive.path"
	keyAPIPort     = "api.port"

	defaultConfigDir  = "configs"
	defaultConfigName = "config"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault(keyLogLevel, logger.InfoLevel)
	v.SetDefault(keyInterval, coretemp.DefaultIntervalSec)
	v.SetDefault(keyChannels, coretemp.DefaultChannels)
	v.SetDefault(keyOutputDir, ".")
	v.SetDefault(keyArchive, false)
	v.SetDefault(keyArchivePath, "coretemp.db")
	v.SetDefault(keyAPIPort, "8080")
}

// BindFlags maps command-line flags onto config keys. Only flags that were
// actually set override the file.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for key, name := range map[string]string{
		keyLogLevel:  "log-level",
		keyOutputDir: "output-dir",
		keyArchive:   "archive",
		keyAPIPort:   "port",
	} {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %q: %w", name, err)
		}
	}
	return nil
}

// Load reads path, or configs/config.yml when path is empty. A missing
// default file is not an error; a missing explicit file is.
func Load(v *viper.Viper, path string) (Config, error) {
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(defaultConfigDir)
		v.SetConfigName(defaultConfigName)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := Config{
		LogLevel:    v.GetString(keyLogLevel),
		Interval:    v.GetInt64(keyInterval),
		Channels:    v.GetInt(keyChannels),
		OutputDir:   v.GetString(keyOutputDir),
		Archive:     v.GetBool(keyArchive),
		ArchivePath: v.GetString(keyArchivePath),
		APIPort:     v.GetString(keyAPIPort),
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Interval <= 0 {
		return fmt.Errorf("%s must be positive, got %d", keyInterval, c.Interval)
	}
	if c.Channels <= 0 {
		return fmt.Errorf("%s must be positive, got %d", keyChannels, c.Channels)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("%s must not be empty", keyOutputDir)
	}
	if c.Archive && c.ArchivePath == "" {
		return fmt.Errorf("%s must be set when archiving", keyArchivePath)
	}
	return nil
}
