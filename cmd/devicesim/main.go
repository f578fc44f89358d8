// cmd/devicesim/main.go
//
// devicesim emulates the vibration sensor: it listens on TCP and
// streams well-formed 27-byte frames to whoever connects. Intended for
// exercising the bridge without hardware.
package main

import (
	"flag"
	"math/rand"
	"net"
	"time"

	"github.com/rs/zerolog"

	"github.com/tamzrod/sensor-modbus-bridge/internal/frame"
	"github.com/tamzrod/sensor-modbus-bridge/internal/logging"
)

func main() {
	listen := flag.String("listen", "127.0.0.1:10001", "address to listen on")
	interval := flag.Duration("interval", time.Second, "delay between frames")
	corruptEvery := flag.Int("corrupt-every", 0, "corrupt every Nth frame (0 = never)")
	flag.Parse()

	logger := logging.Init("devicesim")

	ln, err := net.Listen("tcp", *listen)
	if err != nil {
		logger.Fatal().Err(err).Str("listen", *listen).Msg("listen failed")
	}
	logger.Info().Str("listen", *listen).Msg("waiting for bridge")

	// One connection at a time: the real device has a single peer.
	var msgNum uint16
	for {
		conn, err := ln.Accept()
		if err != nil {
			logger.Fatal().Err(err).Msg("accept failed")
		}
		logger.Info().Str("remote", conn.RemoteAddr().String()).Msg("bridge connected")

		msgNum = serve(conn, *interval, *corruptEvery, msgNum, logger)

		_ = conn.Close()
		logger.Info().Msg("bridge disconnected")
	}
}

// serve streams frames until the peer goes away. Returns the next
// message number so the counter survives reconnects, like the device's
// does.
func serve(conn net.Conn, interval time.Duration, corruptEvery int, msgNum uint16, logger zerolog.Logger) uint16 {
	sent := 0
	for {
		wire := frame.Encode(nextMessage(msgNum))
		msgNum++
		sent++

		if corruptEvery > 0 && sent%corruptEvery == 0 {
			wire[0] ^= 0xFF
			logger.Warn().Uint16("msg_num", msgNum-1).Msg("emitting corrupted frame")
		}

		if _, err := conn.Write(wire); err != nil {
			logger.Warn().Err(err).Msg("write failed")
			return msgNum
		}
		logger.Debug().Uint16("msg_num", msgNum-1).Msg("frame sent")

		time.Sleep(interval)
	}
}

// nextMessage produces plausible drifting readings.
func nextMessage(msgNum uint16) frame.Message {
	return frame.Message{
		BattID:    1,
		BattValue: byte(90 + rand.Intn(10)),

		TempID:    2,
		TempValue: byte(80 + rand.Intn(8)),

		VibID: 3,
		VibX:  uint16(62000 + rand.Intn(400)),
		VibY:  uint16(550 + rand.Intn(100)),
		VibZ:  uint16(1850 + rand.Intn(120)),

		MsgNumID: 5,
		MsgNum:   msgNum,

		VersionID:    11,
		VersionValue: 2,

		RSSIID:    6,
		RSSIValue: byte(180 + rand.Intn(20)),
	}
}
