// internal/forward/forwarder_test.go
package forward

import (
	"errors"
	"testing"

	"github.com/tamzrod/sensor-modbus-bridge/internal/frame"
)

// ---- fake register client ----

type writeCall struct {
	addr   uint16
	values []uint16
	multi  bool
}

type fakeRegisterClient struct {
	writes  []writeCall
	failAt  int // 1-based call index to fail at; 0 = never
	failErr error
}

func (f *fakeRegisterClient) WriteSingleRegister(addr, value uint16) error {
	return f.record(writeCall{addr: addr, values: []uint16{value}})
}

func (f *fakeRegisterClient) WriteMultipleRegisters(addr uint16, values []uint16) error {
	return f.record(writeCall{addr: addr, values: append([]uint16(nil), values...), multi: true})
}

func (f *fakeRegisterClient) record(c writeCall) error {
	f.writes = append(f.writes, c)
	if f.failAt != 0 && len(f.writes) == f.failAt {
		if f.failErr == nil {
			f.failErr = errors.New("write failed")
		}
		return f.failErr
	}
	return nil
}

// ---- tests ----

var testMsg = frame.Message{
	BattID: 1, BattValue: 0,
	TempID: 2, TempValue: 84,
	VibID: 3, VibX: 62206, VibY: 602, VibZ: 1914,
	MsgNumID: 5, MsgNum: 33850,
	VersionID: 11, VersionValue: 2,
	RSSIID: 6, RSSIValue: 189,
}

func TestForward_SixWritesInFixedOrder(t *testing.T) {
	cli := &fakeRegisterClient{}

	if err := New(cli).Forward(testMsg); err != nil {
		t.Fatalf("Forward() err=%v", err)
	}

	want := []writeCall{
		{addr: 1, values: []uint16{0}},
		{addr: 2, values: []uint16{84}},
		{addr: 3, values: []uint16{62206, 602, 1914}, multi: true},
		{addr: 5, values: []uint16{33850}},
		{addr: 11, values: []uint16{2}},
		{addr: 6, values: []uint16{189}},
	}

	if len(cli.writes) != len(want) {
		t.Fatalf("expected %d writes, got %d", len(want), len(cli.writes))
	}

	for i, w := range want {
		got := cli.writes[i]
		if got.addr != w.addr || got.multi != w.multi {
			t.Fatalf("write %d: got addr=%d multi=%v, want addr=%d multi=%v",
				i, got.addr, got.multi, w.addr, w.multi)
		}
		if len(got.values) != len(w.values) {
			t.Fatalf("write %d: got %d values, want %d", i, len(got.values), len(w.values))
		}
		for j := range w.values {
			if got.values[j] != w.values[j] {
				t.Fatalf("write %d value %d: got=%d want=%d", i, j, got.values[j], w.values[j])
			}
		}
	}
}

func TestForward_VibrationIsOneContiguousBlock(t *testing.T) {
	cli := &fakeRegisterClient{}

	if err := New(cli).Forward(testMsg); err != nil {
		t.Fatalf("Forward() err=%v", err)
	}

	vib := cli.writes[2]
	if !vib.multi {
		t.Fatalf("vibration must be a multiple-register write")
	}
	if vib.addr != uint16(testMsg.VibID) {
		t.Fatalf("vibration block addr got=%d want=%d", vib.addr, testMsg.VibID)
	}
	if len(vib.values) != 3 {
		t.Fatalf("vibration block length got=%d want=3", len(vib.values))
	}
}

func TestForward_AbortsOnFirstFailure(t *testing.T) {
	sentinel := errors.New("register server down")
	cli := &fakeRegisterClient{failAt: 4, failErr: sentinel}

	err := New(cli).Forward(testMsg)
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if !errors.Is(err, sentinel) {
		t.Fatalf("error chain lost: got %v", err)
	}

	// Calls 5 and 6 must not be issued.
	if len(cli.writes) != 4 {
		t.Fatalf("expected 4 writes before abort, got %d", len(cli.writes))
	}
}

func TestForward_WidensWithoutSignExtension(t *testing.T) {
	cli := &fakeRegisterClient{}

	msg := frame.Message{
		BattID: 0xFF, BattValue: 0xFF,
		TempID: 0x80, TempValue: 0x80,
	}

	if err := New(cli).Forward(msg); err != nil {
		t.Fatalf("Forward() err=%v", err)
	}

	if cli.writes[0].addr != 0x00FF || cli.writes[0].values[0] != 0x00FF {
		t.Fatalf("battery widened wrong: addr=%#x value=%#x",
			cli.writes[0].addr, cli.writes[0].values[0])
	}
	if cli.writes[1].addr != 0x0080 || cli.writes[1].values[0] != 0x0080 {
		t.Fatalf("temperature widened wrong: addr=%#x value=%#x",
			cli.writes[1].addr, cli.writes[1].values[0])
	}
}
