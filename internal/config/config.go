// internal/config/config.go
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Documented defaults, applied by Normalize when the corresponding
// fields are absent.
const (
	DefaultDeviceEndpoint     = "192.168.1.87:10001"
	DefaultDownstreamEndpoint = "127.0.0.1:502"
	DefaultDownstreamProtocol = ProtocolModbus
	DefaultDownstreamTimeout  = 2000 // ms
)

// Downstream protocol names.
const (
	ProtocolModbus = "modbus"
	ProtocolIngest = "ingest"
)

type Config struct {
	Bridge BridgeConfig `yaml:"bridge"`
}

type BridgeConfig struct {
	Device     DeviceConfig     `yaml:"device"`
	Downstream DownstreamConfig `yaml:"downstream"`

	// Status block (optional, opt-in)
	Status *StatusConfig `yaml:"status"`
}

// ---- DEVICE ----

type DeviceConfig struct {
	Endpoint  string `yaml:"endpoint"`
	TimeoutMs int    `yaml:"timeout_ms"` // 0 = no deadline

	// Reconnect policy. Zero values reproduce immediate unbounded retry.
	ReconnectBackoffMs int `yaml:"reconnect_backoff_ms"`
	MaxBackoffMs       int `yaml:"max_backoff_ms"`
}

// ---- DOWNSTREAM ----

type DownstreamConfig struct {
	Protocol  string `yaml:"protocol"` // modbus | ingest
	Endpoint  string `yaml:"endpoint"`
	UnitID    uint8  `yaml:"unit_id"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

// ---- STATUS ----

type StatusConfig struct {
	BaseSlot   uint16 `yaml:"base_slot"`
	BridgeName string `yaml:"bridge_name"`
}

// Load reads and parses a YAML config file.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return &cfg, nil
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	return &Config{}
}
