// cmd/bridge/main.go
package main

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/tamzrod/sensor-modbus-bridge/internal/bridge"
	"github.com/tamzrod/sensor-modbus-bridge/internal/config"
	"github.com/tamzrod/sensor-modbus-bridge/internal/forward"
	"github.com/tamzrod/sensor-modbus-bridge/internal/logging"
)

func main() {
	logger := logging.Init("bridge")

	// --------------------
	// Arguments: optional config file, optional device address.
	// usage: bridge [config.yaml] [device-host:port]
	// --------------------

	var cfgPath, deviceOverride string
	for _, arg := range os.Args[1:] {
		switch {
		case strings.HasSuffix(arg, ".yaml"), strings.HasSuffix(arg, ".yml"):
			cfgPath = arg
		default:
			deviceOverride = arg
		}
	}

	// --------------------
	// Load + validate config
	// --------------------

	cfg := config.Default()
	if cfgPath != "" {
		loaded, err := config.Load(cfgPath)
		if err != nil {
			logger.Fatal().Err(err).Msg("config load failed")
		}
		cfg = loaded
	}

	if deviceOverride != "" {
		cfg.Bridge.Device.Endpoint = deviceOverride
		logger.Info().Str("device", deviceOverride).Msg("device endpoint from argument")
	}

	if err := config.Validate(cfg); err != nil {
		logger.Fatal().Err(err).Msg("config validation failed")
	}
	config.Normalize(cfg)

	// --------------------
	// Downstream register client (built once, reused across device
	// reconnect cycles)
	// --------------------

	cli, closeClient, err := forward.BuildClient(cfg.Bridge.Downstream)
	if err != nil {
		logger.Fatal().
			Err(err).
			Str("downstream", cfg.Bridge.Downstream.Endpoint).
			Msg("downstream client build failed")
	}
	defer closeClient()

	fwd := forward.New(cli)

	// --------------------
	// Supervisor
	// --------------------

	dev := cfg.Bridge.Device

	sup := bridge.New(
		bridge.Config{
			DeviceEndpoint: dev.Endpoint,
			Backoff: bridge.BackoffConfig{
				Initial:    time.Duration(dev.ReconnectBackoffMs) * time.Millisecond,
				Max:        time.Duration(dev.MaxBackoffMs) * time.Millisecond,
				Multiplier: 2.0,
			},
		},
		bridge.NewDeviceDialer(dev.Endpoint, time.Duration(dev.TimeoutMs)*time.Millisecond),
		fwd,
		logger,
	)

	// Status block (optional)
	if sc := cfg.Bridge.Status; sc != nil {
		sw, enabled := forward.NewStatusWriter(&forward.StatusPlan{
			BaseSlot:   sc.BaseSlot,
			BridgeName: sc.BridgeName,
		}, cli)
		if enabled {
			sup.EnableStatus(sw)
		}
	}

	if err := sup.Run(context.Background()); err != nil {
		logger.Fatal().Err(err).Msg("bridge stopped")
	}
}
