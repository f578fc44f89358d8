// internal/forward/builder.go
package forward

import (
	"fmt"
	"time"

	cfg "github.com/tamzrod/sensor-modbus-bridge/internal/config"
	fingest "github.com/tamzrod/sensor-modbus-bridge/internal/forward/ingest"
	fmodbus "github.com/tamzrod/sensor-modbus-bridge/internal/forward/modbus"
)

// BuildClient creates the downstream register client for the configured
// protocol. The connection (where the protocol holds one) is opened
// once here and reused across all device reconnect cycles.
func BuildClient(dc cfg.DownstreamConfig) (RegisterClient, func() error, error) {
	timeout := time.Duration(dc.TimeoutMs) * time.Millisecond

	switch dc.Protocol {
	case cfg.ProtocolModbus:
		c, err := fmodbus.New(fmodbus.Config{
			Endpoint: dc.Endpoint,
			UnitID:   dc.UnitID,
			Timeout:  timeout,
		})
		if err != nil {
			return nil, nil, err
		}
		return c, c.Close, nil

	case cfg.ProtocolIngest:
		c, err := fingest.New(fingest.Config{
			Endpoint: dc.Endpoint,
			UnitID:   dc.UnitID,
			Timeout:  timeout,
		})
		if err != nil {
			return nil, nil, err
		}
		return c, c.Close, nil

	default:
		return nil, nil, fmt.Errorf("forward: unsupported downstream protocol %q", dc.Protocol)
	}
}
