package config

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/heathj/gobrowse-events/events"
)

// Script configures inline event handler attributes.
type Script struct {
	Enable    bool `yaml:"enable"`
	CacheSize int  `yaml:"cache_size"`
}

// Metrics toggles dispatch counters.
type Metrics struct {
	Enable bool `yaml:"enable"`
}

type Config struct {
	File            string  `yaml:"-"`
	Debug           bool    `yaml:"debug"`
	LogLevel        string  `yaml:"log_level"`
	DuplicatePolicy string  `yaml:"duplicate_policy"`
	Script          Script  `yaml:"script"`
	Metrics         Metrics `yaml:"metrics"`
}

var defaultConfig = Config{
	LogLevel:        "info",
	DuplicatePolicy: events.DuplicateError.String(),
	Script: Script{
		Enable:    true,
		CacheSize: 128,
	},
}

func NewConfig() *Config {
	config := defaultConfig
	return &config
}

func NewConfigWithBytes(b []byte) (*Config, error) {
	config := defaultConfig
	if err := yaml.Unmarshal(b, &config); err != nil {
		return nil, errors.Wrap(err, "failed to parse config")
	}
	return &config, nil
}

func NewConfigWithFile(file string) (*Config, error) {
	b, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.Wrapf(err, "can't open file: %s", file)
	}
	config, err := NewConfigWithBytes(b)
	if err != nil {
		return nil, err
	}
	config.File = file
	return config, nil
}

func (c *Config) Verify() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if _, err := c.Policy(); err != nil {
		return err
	}
	if c.Script.Enable && c.Script.CacheSize <= 0 {
		return errors.Errorf("script cache_size must be positive, got %d", c.Script.CacheSize)
	}
	return nil
}

// Level is the logrus level to run with. Debug wins over log_level.
func (c *Config) Level() (logrus.Level, error) {
	if c.Debug {
		return logrus.DebugLevel, nil
	}
	if strings.TrimSpace(c.LogLevel) == "" {
		return logrus.InfoLevel, nil
	}
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel, errors.Wrap(err, "invalid log_level")
	}
	return lvl, nil
}

func (c *Config) Policy() (events.DuplicatePolicy, error) {
	p, err := events.ParseDuplicatePolicy(c.DuplicatePolicy)
	return p, errors.Wrap(err, "invalid duplicate_policy")
}
