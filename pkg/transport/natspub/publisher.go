// Package natspub relays analysis results onto a NATS subject for
// downstream consumers that are not connected to the websocket hub.
package natspub

import (
	"context"
	"encoding/json"
	"time"

	"github.com/RyanBlaney/latency-benchmark-common/logging"
	"github.com/nats-io/nats.go"

	"github.com/brainflux/eeg-stream/pkg/eeg"
)

// Publisher writes each result as JSON to a fixed subject.
type Publisher struct {
	conn    *nats.Conn
	subject string
	logger  logging.Logger
}

// Connect dials the NATS server with aggressive reconnection: the
// pipeline keeps running through broker restarts.
func Connect(url, subject string, logger logging.Logger) (*Publisher, error) {
	if url == "" || subject == "" {
		return nil, eeg.NewError(eeg.ErrCodeBadConfig, "nats url and subject are required", nil)
	}
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}

	conn, err := nats.Connect(
		url,
		nats.Name("eeg-stream"),
		nats.Timeout(3*time.Second),
		nats.ReconnectWait(500*time.Millisecond),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, eeg.NewError(eeg.ErrCodeBadConfig, "connecting to nats", err)
	}

	return &Publisher{
		conn:    conn,
		subject: subject,
		logger:  logger.WithFields(logging.Fields{"component": "natspub", "subject": subject}),
	}, nil
}

// Name implements the session publisher interface.
func (p *Publisher) Name() string { return "nats" }

// Publish serializes and fires the result without waiting for an ack.
func (p *Publisher) Publish(ctx context.Context, result *eeg.AnalysisResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return eeg.NewError(eeg.ErrCodeBadPacket, "encoding analysis result", err)
	}
	return p.conn.Publish(p.subject, payload)
}

// Close drains pending messages before disconnecting.
func (p *Publisher) Close() {
	if err := p.conn.Drain(); err != nil {
		p.logger.Error(err, "Draining nats connection")
	}
}
