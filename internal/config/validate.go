// internal/config/validate.go
package config

import (
	"fmt"
	"net"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	b := cfg.Bridge

	// ------------------------------------------------------------
	// DEVICE
	// ------------------------------------------------------------

	if b.Device.Endpoint != "" {
		if _, _, err := net.SplitHostPort(b.Device.Endpoint); err != nil {
			return fmt.Errorf("config: device endpoint %q: %w", b.Device.Endpoint, err)
		}
	}
	if b.Device.TimeoutMs < 0 {
		return fmt.Errorf("config: device timeout_ms must be >= 0")
	}
	if b.Device.ReconnectBackoffMs < 0 {
		return fmt.Errorf("config: device reconnect_backoff_ms must be >= 0")
	}
	if b.Device.MaxBackoffMs < 0 {
		return fmt.Errorf("config: device max_backoff_ms must be >= 0")
	}
	if b.Device.MaxBackoffMs > 0 && b.Device.MaxBackoffMs < b.Device.ReconnectBackoffMs {
		return fmt.Errorf(
			"config: device max_backoff_ms (%d) must be >= reconnect_backoff_ms (%d)",
			b.Device.MaxBackoffMs, b.Device.ReconnectBackoffMs,
		)
	}

	// ------------------------------------------------------------
	// DOWNSTREAM
	// ------------------------------------------------------------

	switch b.Downstream.Protocol {
	case "", ProtocolModbus, ProtocolIngest:
	default:
		return fmt.Errorf("config: unsupported downstream protocol %q", b.Downstream.Protocol)
	}

	if b.Downstream.Endpoint != "" {
		if _, _, err := net.SplitHostPort(b.Downstream.Endpoint); err != nil {
			return fmt.Errorf("config: downstream endpoint %q: %w", b.Downstream.Endpoint, err)
		}
	}
	if b.Downstream.TimeoutMs < 0 {
		return fmt.Errorf("config: downstream timeout_ms must be >= 0")
	}

	// ------------------------------------------------------------
	// STATUS BLOCK (OPT-IN)
	// ------------------------------------------------------------

	if b.Status != nil {
		// bridge_name sanity (ASCII only)
		for i := 0; i < len(b.Status.BridgeName); i++ {
			if b.Status.BridgeName[i] > 0x7F {
				return fmt.Errorf("config: bridge_name must contain ASCII characters only")
			}
		}
	}

	return nil
}
