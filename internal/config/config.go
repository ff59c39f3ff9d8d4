// Package config loads settings from configs/config.yml with POOL_*
// environment overrides, e.g. POOL_DEVICE_ADDRESS=10.0.0.7.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "POOL"

type Config struct {
	Port    string        `mapstructure:"port"`
	Log     LogConfig     `mapstructure:"log"`
	DB      DBConfig      `mapstructure:"db"`
	Device  DeviceConfig  `mapstructure:"device"`
	Poll    PollConfig    `mapstructure:"poll"`
	Command CommandConfig `mapstructure:"command"`
}

type LogConfig struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type DeviceConfig struct {
	Address       string        `mapstructure:"address"`
	StatusPath    string        `mapstructure:"status_path"`
	Timeout       time.Duration `mapstructure:"timeout"`
	Simulate      bool          `mapstructure:"simulate"`
	SimulatorPort string        `mapstructure:"simulator_port"`
}

type PollConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

type CommandConfig struct {
	SettleDelay time.Duration `mapstructure:"settle_delay"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("db.path", "pool.db")
	v.SetDefault("device.address", "")
	v.SetDefault("device.status_path", "/WNewSt.htm")
	v.SetDefault("device.timeout", 5*time.Second)
	v.SetDefault("device.simulate", false)
	v.SetDefault("device.simulator_port", "8081")
	v.SetDefault("poll.interval", 5*time.Second)
	v.SetDefault("command.settle_delay", 3*time.Second)
}

// Load reads config.yml from dirs (first match wins). A missing file is not
// an error: defaults and environment still apply.
func Load(dirs ...string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yml")
	for _, d := range dirs {
		v.AddConfigPath(d)
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks settings that would otherwise fail later at runtime.
func (c *Config) Validate() error {
	if !c.Device.Simulate && c.Device.Address == "" {
		return errors.New("device.address is required unless device.simulate is set")
	}
	if c.Poll.Interval <= 0 {
		return fmt.Errorf("poll.interval must be positive, got %s", c.Poll.Interval)
	}
	if c.Device.Timeout <= 0 {
		return fmt.Errorf("device.timeout must be positive, got %s", c.Device.Timeout)
	}
	if c.Command.SettleDelay < 0 {
		return fmt.Errorf("command.settle_delay must not be negative, got %s", c.Command.SettleDelay)
	}
	return nil
}
