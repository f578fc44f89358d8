// internal/status/encode_test.go
package status

import "testing"

func TestEncode_BlockLayout(t *testing.T) {
	s := Snapshot{
		Health:        HealthError,
		LastErrorCode: ErrCodeForward,
		FailedCycles:  9,
	}

	regs := Encode(s)

	if len(regs) != SlotsPerBridge {
		t.Fatalf("block size got=%d want=%d", len(regs), SlotsPerBridge)
	}
	if regs[SlotHealthCode] != HealthError {
		t.Fatalf("health slot got=%d", regs[SlotHealthCode])
	}
	if regs[SlotLastErrorCode] != ErrCodeForward {
		t.Fatalf("error code slot got=%d", regs[SlotLastErrorCode])
	}
	if regs[SlotFailedCycles] != 9 {
		t.Fatalf("failed cycles slot got=%d", regs[SlotFailedCycles])
	}

	// Reserved range stays zero.
	for i := SlotReservedStart; i <= SlotReservedEnd; i++ {
		if regs[i] != 0 {
			t.Fatalf("reserved slot %d not zero: %d", i, regs[i])
		}
	}
}
