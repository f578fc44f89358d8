// internal/bridge/supervisor.go
package bridge

import (
	"context"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/rs/zerolog"

	"github.com/tamzrod/sensor-modbus-bridge/internal/forward"
	"github.com/tamzrod/sensor-modbus-bridge/internal/frame"
	"github.com/tamzrod/sensor-modbus-bridge/internal/status"
)

// DialFunc opens one connection to the device. ONE attempt per call.
// No retries, no loops, no semantics.
type DialFunc func() (io.ReadCloser, error)

// NewDeviceDialer returns a DialFunc for a TCP device endpoint.
// A zero timeout dials without a deadline.
func NewDeviceDialer(endpoint string, timeout time.Duration) DialFunc {
	return func() (io.ReadCloser, error) {
		if timeout > 0 {
			return net.DialTimeout("tcp", endpoint, timeout)
		}
		return net.Dial("tcp", endpoint)
	}
}

// forwarder is the exact contract the supervisor drives per decoded message.
type forwarder interface {
	Forward(m frame.Message) error
}

// Config is the minimal runtime config the supervisor needs.
type Config struct {
	DeviceEndpoint string
	Backoff        BackoffConfig
}

// Supervisor owns the device connection lifecycle: connect, decode and
// forward frames until the cycle fails, drop the connection, reconnect.
//
// The downstream register client lives OUTSIDE the supervisor and is
// never rebuilt on device reconnect. A forward failure still tears
// down the device connection even though the downstream side caused
// it; the source system couples the two and compatibility keeps it.
type Supervisor struct {
	cfg  Config
	dial DialFunc
	fwd  forwarder
	log  zerolog.Logger

	sw        forward.StatusWriter
	swEnabled bool

	snap         status.Snapshot
	failedCycles uint16
}

func New(cfg Config, dial DialFunc, fwd forwarder, log zerolog.Logger) *Supervisor {
	return &Supervisor{
		cfg:  cfg,
		dial: dial,
		fwd:  fwd,
		log:  log,
		snap: status.Snapshot{Health: status.HealthUnknown},
	}
}

// EnableStatus attaches an optional status writer. Must be called
// before Run.
func (s *Supervisor) EnableStatus(sw forward.StatusWriter) {
	s.sw = sw
	s.swEnabled = sw != nil
}

// Run drives the two-state machine until ctx is cancelled or a device
// connect attempt fails. Decode and forward errors are recovered here:
// the connection is dropped without a handshake and a fresh one is
// dialed, immediately unless a backoff policy is configured.
//
// A failed connect attempt is fatal: Run returns the dial error.
func (s *Supervisor) Run(ctx context.Context) error {
	// Boot snapshot (full block assert) if status is enabled.
	s.publish(s.snap)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.log.Info().Str("device", s.cfg.DeviceEndpoint).Msg("connecting")

		conn, err := s.dial()
		if err != nil {
			s.bumpFailure(status.ErrCodeConnect)
			return fmt.Errorf("bridge: connect %s: %w", s.cfg.DeviceEndpoint, err)
		}

		s.log.Info().Str("device", s.cfg.DeviceEndpoint).Msg("connected")

		err = s.serve(ctx, conn)

		// Dropped, not gracefully closed: the stream is desynchronized
		// and a handshake would be meaningless.
		_ = conn.Close()

		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}

		code := errorCode(err)
		s.bumpFailure(code)
		s.log.Error().Err(err).Uint16("code", code).Msg("cycle failed, reconnecting")

		if !s.wait(ctx) {
			return ctx.Err()
		}
	}
}

// serve is the inner Connected loop: decode one frame, forward it,
// repeat. Returns the first error; the caller abandons the connection.
func (s *Supervisor) serve(ctx context.Context, conn io.Reader) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		msg, err := frame.Decode(conn)
		if err != nil {
			return &cycleError{code: decodeCode(err), err: err}
		}

		s.log.Debug().
			Uint16("msg_num", msg.MsgNum).
			Uint16("vib_x", msg.VibX).
			Uint16("vib_y", msg.VibY).
			Uint16("vib_z", msg.VibZ).
			Msg("frame decoded")

		if err := s.fwd.Forward(msg); err != nil {
			return &cycleError{code: status.ErrCodeForward, err: err}
		}

		s.markHealthy()
	}
}

// ---- status bookkeeping ----

func (s *Supervisor) markHealthy() {
	next := status.Snapshot{
		Health:        status.HealthOK,
		LastErrorCode: status.ErrCodeNone,
		FailedCycles:  0,
	}
	s.failedCycles = 0
	if next != s.snap {
		s.snap = next
		s.publish(next)
	}
}

func (s *Supervisor) bumpFailure(code uint16) {
	if s.failedCycles < 65535 {
		s.failedCycles++
	}
	next := status.Snapshot{
		Health:        status.HealthError,
		LastErrorCode: code,
		FailedCycles:  s.failedCycles,
	}
	if next != s.snap {
		s.snap = next
		s.publish(next)
	}
}

func (s *Supervisor) publish(snap status.Snapshot) {
	if !s.swEnabled {
		return
	}
	if err := s.sw.WriteStatus(snap); err != nil {
		s.log.Warn().Err(err).Msg("status write failed")
	}
}

// wait sleeps for the backoff delay, if any. Returns false when ctx
// was cancelled while waiting.
func (s *Supervisor) wait(ctx context.Context) bool {
	delay := NextBackoffDelay(s.cfg.Backoff, int(s.failedCycles))
	if delay <= 0 {
		return ctx.Err() == nil
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
