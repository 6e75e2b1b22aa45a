package session

import (
	"context"

	"github.com/brainflux/eeg-stream/pkg/eeg"
)

// Publisher delivers one analysis result to a sink. Delivery is
// fire-and-forget from the session's point of view: a failing sink is
// logged and counted, never allowed to stall the analysis loop or the
// other sinks.
type Publisher interface {
	Name() string
	Publish(ctx context.Context, result *eeg.AnalysisResult) error
}
