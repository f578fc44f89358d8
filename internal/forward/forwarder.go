// internal/forward/forwarder.go
package forward

import (
	"fmt"

	"github.com/tamzrod/sensor-modbus-bridge/internal/frame"
)

// RegisterClient is the exact contract the forwarder uses against the
// downstream register server.
// IMPORTANT: There must be NO other version of this interface anywhere.
type RegisterClient interface {
	WriteSingleRegister(addr, value uint16) error
	WriteMultipleRegisters(addr uint16, values []uint16) error
}

// Forwarder translates one decoded message into register writes.
type Forwarder struct {
	cli RegisterClient
}

func New(cli RegisterClient) *Forwarder {
	return &Forwarder{cli: cli}
}

// Forward issues the register writes for one message, in fixed order.
// Point identifiers become destination addresses; byte values widen to
// uint16 without sign extension. The first failed write aborts the
// rest: a partially-forwarded message is an accepted failure mode and
// is never rolled back or retried here.
func (f *Forwarder) Forward(m frame.Message) error {
	if err := f.cli.WriteSingleRegister(uint16(m.BattID), uint16(m.BattValue)); err != nil {
		return fmt.Errorf("forward: battery: %w", err)
	}
	if err := f.cli.WriteSingleRegister(uint16(m.TempID), uint16(m.TempValue)); err != nil {
		return fmt.Errorf("forward: temperature: %w", err)
	}

	// Vibration axes land in one contiguous 3-register block.
	vib := []uint16{m.VibX, m.VibY, m.VibZ}
	if err := f.cli.WriteMultipleRegisters(uint16(m.VibID), vib); err != nil {
		return fmt.Errorf("forward: vibration: %w", err)
	}

	if err := f.cli.WriteSingleRegister(uint16(m.MsgNumID), m.MsgNum); err != nil {
		return fmt.Errorf("forward: message number: %w", err)
	}
	if err := f.cli.WriteSingleRegister(uint16(m.VersionID), uint16(m.VersionValue)); err != nil {
		return fmt.Errorf("forward: version: %w", err)
	}
	if err := f.cli.WriteSingleRegister(uint16(m.RSSIID), uint16(m.RSSIValue)); err != nil {
		return fmt.Errorf("forward: rssi: %w", err)
	}

	return nil
}
