// internal/bridge/errors.go
package bridge

import (
	"errors"

	"github.com/tamzrod/sensor-modbus-bridge/internal/frame"
	"github.com/tamzrod/sensor-modbus-bridge/internal/status"
)

// cycleError tags a cycle failure with the status code it publishes.
type cycleError struct {
	code uint16
	err  error
}

func (e *cycleError) Error() string { return e.err.Error() }
func (e *cycleError) Unwrap() error { return e.err }
func (e *cycleError) Code() uint16  { return e.code }

// errorCode extracts a status code from an error without assuming
// concrete types. Errors that expose no code map to the generic code.
func errorCode(err error) uint16 {
	if err == nil {
		return status.ErrCodeNone
	}

	type coder interface{ Code() uint16 }

	var c coder
	if errors.As(err, &c) {
		return c.Code()
	}

	return status.ErrCodeGeneric
}

// decodeCode maps a decoder error onto the closed set of cycle codes.
// Validation failures and stream failures are distinct codes but the
// recovery is identical: drop the connection.
func decodeCode(err error) uint16 {
	switch {
	case errors.Is(err, frame.ErrStartSequence):
		return status.ErrCodeStartSequence
	case errors.Is(err, frame.ErrDeviceID):
		return status.ErrCodeDeviceID
	case errors.Is(err, frame.ErrPayloadLength):
		return status.ErrCodePayloadLength
	default:
		return status.ErrCodeStream
	}
}
