// Package config loads and validates the rangemeter YAML configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Transport names accepted in SensorConfig.Transport
const (
	TransportI2CDev = "i2cdev"
	TransportPeriph = "periph"
)

type Config struct {
	Sensor   SensorConfig   `yaml:"sensor"`
	Sampling SamplingConfig `yaml:"sampling"`
	MQTT     MQTTConfig     `yaml:"mqtt"`
	Log      LogConfig      `yaml:"log"`
}

type SensorConfig struct {
	// Transport selects the bus implementation: "i2cdev" (default) or
	// "periph"
	Transport string `yaml:"transport"`
	// Bus is the bus path ("/dev/i2c-1") or periph bus name
	Bus     string `yaml:"bus"`
	Address uint8  `yaml:"address"`
	// IOTimeoutMs bounds every register poll; 0 waits forever
	IOTimeoutMs int  `yaml:"io_timeout_ms"`
	IO2V8       bool `yaml:"io_2v8"`
	// PeriodMs is the inter-measurement period; 0 selects back-to-back
	// continuous mode
	PeriodMs uint32 `yaml:"period_ms"`
}

type SamplingConfig struct {
	Window     int    `yaml:"window"`
	MinMM      uint16 `yaml:"min_mm"`
	MaxMM      uint16 `yaml:"max_mm"`
	IntervalMs int    `yaml:"interval_ms"`
}

type MQTTConfig struct {
	// Broker enables publishing when non-empty
	Broker   string `yaml:"broker"`
	ClientID string `yaml:"client_id"`
	Topic    string `yaml:"topic"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads and parses the configuration file, applying defaults for
// omitted values
func Load(path string) (*Config, error) {

	data, err := os.ReadFile(path)

	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := &Config{
		Sensor: SensorConfig{
			Transport:   TransportI2CDev,
			Bus:         "/dev/i2c-1",
			Address:     0x29,
			IOTimeoutMs: 500,
		},
		Sampling: SamplingConfig{
			Window:     5,
			MinMM:      50,
			MaxMM:      8000,
			IntervalMs: 100,
		},
		MQTT: MQTTConfig{
			ClientID: "rangemeter",
			Topic:    "sensors/range",
		},
		Log: LogConfig{
			Level: "info",
		},
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}

// Validate rejects configurations the rangemeter cannot run with
func Validate(cfg *Config) error {

	switch cfg.Sensor.Transport {
	case TransportI2CDev, TransportPeriph:
	default:
		return fmt.Errorf("unknown transport %q", cfg.Sensor.Transport)
	}

	if cfg.Sensor.Bus == "" {
		return fmt.Errorf("sensor bus must not be empty")
	}

	if cfg.Sensor.Address == 0 {
		return fmt.Errorf("sensor address must not be zero")
	}

	if cfg.Sampling.Window <= 0 {
		return fmt.Errorf("sampling window must be positive")
	}

	if cfg.Sampling.MinMM >= cfg.Sampling.MaxMM {
		return fmt.Errorf("sampling bounds inverted: min %d >= max %d",
			cfg.Sampling.MinMM, cfg.Sampling.MaxMM)
	}

	if cfg.Sampling.IntervalMs < 0 {
		return fmt.Errorf("sampling interval must not be negative")
	}

	if cfg.MQTT.Broker != "" && cfg.MQTT.Topic == "" {
		return fmt.Errorf("mqtt topic must be set when a broker is configured")
	}

	return nil
}
