package store

import (
	"fmt"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/thoughts/pkg/timeutil"
)

type Config interface {
	BasePath() string
	TimeFormat() string
}

// LoadConfig reads .thoughts.yaml from $THOUGHTS_CONFIG_PATH or the working
// directory. THOUGHTS_PATH and THOUGHTS_TIME_FORMAT override the file.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetDefault("path", "~/.thoughts")
	v.SetDefault("time_format", timeutil.Format12h)
	v.SetConfigName(".thoughts") // .yaml is implicit
	v.SetEnvPrefix("THOUGHTS")
	v.AutomaticEnv()

	if override := os.Getenv("THOUGHTS_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}

	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: reading config file: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}
	format := v.GetString("time_format")
	if err := timeutil.ValidClockFormat(format); err != nil {
		return nil, err
	}
	return &fileConfig{Path: path, Format: format}, nil
}

type fileConfig struct {
	Path   string `json:"path"`
	Format string `json:"time_format"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}

func (f *fileConfig) TimeFormat() string {
	return f.Format
}

// StaticConfig is a Config with fixed values.
type StaticConfig struct {
	Path   string
	Format string
}

func (s StaticConfig) BasePath() string { return s.Path }

func (s StaticConfig) TimeFormat() string {
	if s.Format == "" {
		return timeutil.Format12h
	}
	return s.Format
}
