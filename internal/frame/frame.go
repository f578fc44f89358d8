// internal/frame/frame.go
package frame

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Wire layout constants. These values define the device protocol and
// MUST NOT be configurable.

// Size is the fixed frame size in bytes: 9-byte header + 18-byte payload.
const Size = 27

// PayloadLen is the only payload length the device emits.
const PayloadLen = 0x12

// StartSequence marks the beginning of every frame.
var StartSequence = [2]byte{0x19, 0x00}

// DeviceID is the fixed identifier of the sensor peer.
var DeviceID = [6]byte{0xD0, 0xCF, 0x5E, 0x82, 0x93, 0x7B}

// ---- DECODE ERRORS ----

// Validation failures form a closed set. All of them desynchronize the
// byte stream: the caller must drop the connection, not resynchronize.
var (
	ErrStartSequence = errors.New("frame: unrecognised start sequence")
	ErrDeviceID      = errors.New("frame: unexpected device id")
	ErrPayloadLength = errors.New("frame: payload length must be 0x12 (18 bytes)")
)

// Message is the validated, typed result of decoding one frame.
// Each *ID field is a point identifier: the destination register
// address for the paired value. VibID addresses the first of three
// consecutive vibration registers.
type Message struct {
	BattID    byte
	BattValue byte

	TempID    byte
	TempValue byte

	VibID byte
	VibX  uint16
	VibY  uint16
	VibZ  uint16

	// MsgNum is assigned monotonically by the device. Forwarded
	// verbatim, never enforced here.
	MsgNumID byte
	MsgNum   uint16

	VersionID    byte
	VersionValue byte

	RSSIID    byte
	RSSIValue byte
}

// Decode reads exactly one frame from r and returns the decoded
// message. Reads are accumulated until the full frame has been
// collected; a short read is not an error, end of stream is.
//
// On any return, successful or not, exactly Size bytes have been
// consumed (or the stream failed mid-frame). The stream is never
// rewound.
func Decode(r io.Reader) (Message, error) {
	var buf [Size]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return Message{}, fmt.Errorf("frame: read: %w", err)
	}

	// Header checks, in order, first failure wins.
	if !bytes.Equal(buf[0:2], StartSequence[:]) {
		return Message{}, ErrStartSequence
	}
	if !bytes.Equal(buf[2:8], DeviceID[:]) {
		return Message{}, ErrDeviceID
	}
	if buf[8] != PayloadLen {
		return Message{}, ErrPayloadLength
	}

	// Payload is positional. Cannot fail past this point: the buffer
	// is always exactly Size bytes.
	return Message{
		BattID:    buf[9],
		BattValue: buf[10],

		TempID:    buf[11],
		TempValue: buf[12],

		VibID: buf[13],
		VibX:  binary.LittleEndian.Uint16(buf[14:16]),
		VibY:  binary.LittleEndian.Uint16(buf[16:18]),
		VibZ:  binary.LittleEndian.Uint16(buf[18:20]),

		MsgNumID: buf[20],
		MsgNum:   binary.LittleEndian.Uint16(buf[21:23]),

		VersionID:    buf[23],
		VersionValue: buf[24],

		RSSIID:    buf[25],
		RSSIValue: buf[26],
	}, nil
}

// Encode is the inverse of Decode: it produces the wire frame for m.
// Used by the device simulator and round-trip tests.
func Encode(m Message) []byte {
	buf := make([]byte, Size)

	copy(buf[0:2], StartSequence[:])
	copy(buf[2:8], DeviceID[:])
	buf[8] = PayloadLen

	buf[9] = m.BattID
	buf[10] = m.BattValue

	buf[11] = m.TempID
	buf[12] = m.TempValue

	buf[13] = m.VibID
	binary.LittleEndian.PutUint16(buf[14:16], m.VibX)
	binary.LittleEndian.PutUint16(buf[16:18], m.VibY)
	binary.LittleEndian.PutUint16(buf[18:20], m.VibZ)

	buf[20] = m.MsgNumID
	binary.LittleEndian.PutUint16(buf[21:23], m.MsgNum)

	buf[23] = m.VersionID
	buf[24] = m.VersionValue

	buf[25] = m.RSSIID
	buf[26] = m.RSSIValue

	return buf
}
