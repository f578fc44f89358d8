// internal/status/encode.go
package status

// Encode converts a Snapshot into a full bridge status block.
// Layout is protocol-locked. No IO. No side effects.
func Encode(s Snapshot) []uint16 {
	regs := make([]uint16, SlotsPerBridge)

	regs[SlotHealthCode] = s.Health
	regs[SlotLastErrorCode] = s.LastErrorCode
	regs[SlotFailedCycles] = s.FailedCycles

	return regs
}
