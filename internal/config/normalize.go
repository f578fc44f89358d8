// internal/config/normalize.go
package config

import "github.com/tamzrod/sensor-modbus-bridge/internal/status"

// Normalize applies post-validation defaults and normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	b := &cfg.Bridge

	if b.Device.Endpoint == "" {
		b.Device.Endpoint = DefaultDeviceEndpoint
	}

	if b.Downstream.Protocol == "" {
		b.Downstream.Protocol = DefaultDownstreamProtocol
	}
	if b.Downstream.Endpoint == "" {
		b.Downstream.Endpoint = DefaultDownstreamEndpoint
	}
	if b.Downstream.TimeoutMs == 0 {
		b.Downstream.TimeoutMs = DefaultDownstreamTimeout
	}

	// ------------------------------------------------------------
	// STATUS BLOCK NORMALIZATION (OPT-IN)
	// ------------------------------------------------------------

	if b.Status == nil {
		return
	}

	// ASCII already validated; truncate to the block limit.
	if len(b.Status.BridgeName) > status.BridgeNameMaxChars {
		b.Status.BridgeName = b.Status.BridgeName[:status.BridgeNameMaxChars]
	}
}
