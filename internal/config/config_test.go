// internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleYAML = `
bridge:
  device:
    endpoint: "10.0.0.5:10001"
    reconnect_backoff_ms: 250
    max_backoff_ms: 5000
  downstream:
    protocol: ingest
    endpoint: "127.0.0.1:9100"
    unit_id: 3
    timeout_ms: 1500
  status:
    base_slot: 2
    bridge_name: "PUMP-HOUSE"
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bridge.yaml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() err=%v", err)
	}

	b := cfg.Bridge
	if b.Device.Endpoint != "10.0.0.5:10001" {
		t.Fatalf("device endpoint: got=%q", b.Device.Endpoint)
	}
	if b.Device.ReconnectBackoffMs != 250 || b.Device.MaxBackoffMs != 5000 {
		t.Fatalf("backoff: got=%d/%d", b.Device.ReconnectBackoffMs, b.Device.MaxBackoffMs)
	}
	if b.Downstream.Protocol != ProtocolIngest || b.Downstream.UnitID != 3 {
		t.Fatalf("downstream: got=%+v", b.Downstream)
	}
	if b.Status == nil || b.Status.BaseSlot != 2 || b.Status.BridgeName != "PUMP-HOUSE" {
		t.Fatalf("status: got=%+v", b.Status)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
