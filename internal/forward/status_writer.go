// internal/forward/status_writer.go
package forward

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tamzrod/sensor-modbus-bridge/internal/status"
)

// StatusPlan locates the bridge's status block on the downstream server.
type StatusPlan struct {
	BaseSlot   uint16
	BridgeName string
}

// StatusWriter is the delivery-only contract for bridge status.
// It receives a snapshot and writes it verbatim.
// No logic, no state, no interpretation.
type StatusWriter interface {
	WriteStatus(s status.Snapshot) error
}

// statusWriter is the concrete implementation used by the bridge.
type statusWriter struct {
	plan StatusPlan
	cli  RegisterClient

	needFull bool
	last     status.Snapshot
	nameRegs []uint16
}

// NewStatusWriter builds a status writer if the status block is enabled.
// A nil plan disables status publishing.
func NewStatusWriter(plan *StatusPlan, cli RegisterClient) (*statusWriter, bool) {
	if plan == nil {
		return nil, false
	}

	return &statusWriter{
		plan:     *plan,
		cli:      cli,
		needFull: true, // full re-assert on first successful write
		last: status.Snapshot{
			Health:        status.HealthUnknown,
			LastErrorCode: 0,
			FailedCycles:  0,
		},
		nameRegs: encodeBridgeNameRegs(plan.BridgeName),
	}, true
}

// WriteStatus delivers a bridge status snapshot into the status block.
// On any write failure, the next successful call re-asserts the full block.
func (sw *statusWriter) WriteStatus(s status.Snapshot) error {
	if sw == nil {
		return errors.New("status writer: disabled")
	}
	if sw.cli == nil {
		return errors.New("status writer: missing register client")
	}

	baseAddr := sw.baseAddr()

	// ------------------------------------------------------------
	// Full block write (identity re-assert)
	// ------------------------------------------------------------
	if sw.needFull {
		regs := sw.fullBlockRegs(s)

		if err := sw.cli.WriteMultipleRegisters(baseAddr, regs); err != nil {
			sw.needFull = true
			return fmt.Errorf("status writer: full block write failed: %w", err)
		}

		sw.needFull = false
		sw.last = s
		return nil
	}

	var errs []string

	// Slot 0 — health_code
	if sw.last.Health != s.Health {
		if err := sw.cli.WriteSingleRegister(baseAddr+status.SlotHealthCode, s.Health); err != nil {
			errs = append(errs, fmt.Sprintf("slot0 health write failed: %v", err))
		} else {
			sw.last.Health = s.Health
		}
	}

	// Slot 1 — last_error_code
	if sw.last.LastErrorCode != s.LastErrorCode {
		if err := sw.cli.WriteSingleRegister(baseAddr+status.SlotLastErrorCode, s.LastErrorCode); err != nil {
			errs = append(errs, fmt.Sprintf("slot1 last_error write failed: %v", err))
		} else {
			sw.last.LastErrorCode = s.LastErrorCode
		}
	}

	// Slot 2 — failed_cycles
	if sw.last.FailedCycles != s.FailedCycles {
		if err := sw.cli.WriteSingleRegister(baseAddr+status.SlotFailedCycles, s.FailedCycles); err != nil {
			errs = append(errs, fmt.Sprintf("slot2 failed_cycles write failed: %v", err))
		} else {
			sw.last.FailedCycles = s.FailedCycles
		}
	}

	if len(errs) > 0 {
		// Any partial failure introduces doubt — re-assert on next success.
		sw.needFull = true
		return errors.New("status writer: " + strings.Join(errs, " | "))
	}

	return nil
}

func (sw *statusWriter) baseAddr() uint16 {
	// Each bridge owns a fixed SlotsPerBridge block.
	return sw.plan.BaseSlot * status.SlotsPerBridge
}

func (sw *statusWriter) fullBlockRegs(s status.Snapshot) []uint16 {
	regs := status.Encode(s)

	// Slots 3..(name start - 1) are RESERVED → left as zero

	// Bridge name always lives at the end of the block
	for i := 0; i < status.SlotBridgeNameSlots; i++ {
		dst := status.SlotBridgeNameStart + i
		if dst < len(regs) && i < len(sw.nameRegs) {
			regs[dst] = sw.nameRegs[i]
		}
	}

	return regs
}

// encodeBridgeNameRegs packs up to 16 ASCII characters into 8 uint16
// registers, two ASCII bytes per register in big-endian order.
func encodeBridgeNameRegs(name string) []uint16 {
	out := make([]uint16, status.SlotBridgeNameSlots)

	b := []byte(name)
	if len(b) > status.BridgeNameMaxChars {
		b = b[:status.BridgeNameMaxChars]
	}

	// sanitize to printable ASCII
	for i := 0; i < len(b); i++ {
		if b[i] < 0x20 || b[i] > 0x7E {
			b[i] = '?'
		}
	}

	for i := 0; i < status.BridgeNameMaxChars; i += 2 {
		var hi, lo byte
		if i < len(b) {
			hi = b[i]
		}
		if i+1 < len(b) {
			lo = b[i+1]
		}
		out[i/2] = uint16(hi)<<8 | uint16(lo)
	}

	return out
}
