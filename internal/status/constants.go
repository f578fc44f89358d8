// internal/status/constants.go
package status

// Bridge Status Block layout constants.
// These values define the block protocol and MUST NOT be configurable.

// ---- BLOCK GEOMETRY ----

// SlotsPerBridge is the fixed number of logical slots per bridge.
const SlotsPerBridge = 20

// ---- SLOT INDICES ----

// SlotHealthCode holds the bridge health state.
const SlotHealthCode = 0

// SlotLastErrorCode holds the last cycle error code.
const SlotLastErrorCode = 1

// SlotFailedCycles holds the count of consecutive failed connection cycles.
const SlotFailedCycles = 2

// ---- RESERVED RANGE ----

// Slots 3–10 are reserved for future use.
const SlotReservedStart = 3
const SlotReservedEnd = 10

// ---- BRIDGE NAME ----

// SlotBridgeNameStart is the first slot used for the bridge name.
// The name is always placed at the END of the status block.
const SlotBridgeNameStart = 11

// SlotBridgeNameSlots is the number of slots reserved for the bridge name.
const SlotBridgeNameSlots = 8

// SlotBridgeNameEnd is the last slot used for the bridge name (inclusive).
const SlotBridgeNameEnd = SlotBridgeNameStart + SlotBridgeNameSlots - 1

// ---- LIMITS ----

// BridgeNameMaxChars is the maximum number of ASCII characters stored for the name.
const BridgeNameMaxChars = 16

// ---- HEALTH CODES ----

// HealthUnknown represents the boot state before the first cycle.
const HealthUnknown uint16 = 0

// HealthOK represents a healthy bridge: frames flowing end to end.
const HealthOK uint16 = 1

// HealthError represents a failed cycle awaiting reconnect.
const HealthError uint16 = 2

// ---- ERROR CODES ----

// Cycle error codes published in SlotLastErrorCode.
const (
	ErrCodeNone          uint16 = 0
	ErrCodeGeneric       uint16 = 1
	ErrCodeConnect       uint16 = 2
	ErrCodeStream        uint16 = 3
	ErrCodeStartSequence uint16 = 4
	ErrCodeDeviceID      uint16 = 5
	ErrCodePayloadLength uint16 = 6
	ErrCodeForward       uint16 = 7
)
