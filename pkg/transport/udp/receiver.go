// Package udp receives raw sample packets from the headset bridge.
package udp

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/RyanBlaney/latency-benchmark-common/logging"

	"github.com/brainflux/eeg-stream/pkg/eeg"
)

const (
	// maxPacketSize fits 4 channels at one second of 250 Hz float64
	// samples with headroom for denser headsets.
	maxPacketSize = 65536

	readTimeout = 500 * time.Millisecond
)

// Receiver reads datagrams off a UDP socket and hands each one to a
// sink. One datagram is one packet; framing is the sender's problem.
type Receiver struct {
	addr   string
	sink   func([]byte)
	logger logging.Logger
}

func NewReceiver(addr string, sink func([]byte), logger logging.Logger) (*Receiver, error) {
	if addr == "" {
		return nil, eeg.NewError(eeg.ErrCodeBadConfig, "udp listen address is required", nil)
	}
	if sink == nil {
		return nil, eeg.NewError(eeg.ErrCodeBadConfig, "udp sink is required", nil)
	}
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	return &Receiver{
		addr:   addr,
		sink:   sink,
		logger: logger.WithFields(logging.Fields{"component": "udp", "addr": addr}),
	}, nil
}

// Run listens until the context is cancelled. Read deadlines keep the
// loop responsive to cancellation without a second goroutine.
func (r *Receiver) Run(ctx context.Context) error {
	conn, err := net.ListenPacket("udp", r.addr)
	if err != nil {
		return eeg.NewError(eeg.ErrCodeBadConfig, "listening on udp socket", err)
	}
	defer conn.Close()

	r.logger.Info("UDP receiver listening")

	buf := make([]byte, maxPacketSize)
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
		n, _, err := conn.ReadFrom(buf)
		if err != nil {
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				continue
			}
			if ctx.Err() != nil {
				return nil
			}
			r.logger.Error(err, "UDP read failed")
			continue
		}

		packet := make([]byte, n)
		copy(packet, buf[:n])
		r.sink(packet)
	}
}
