package notifier

import (
	"context"

	"SignalSentry/internal/model"
)

// Notifier receives a batch of actionable signal records. Delivery failure
// is logged by callers, never fatal to a scan.
type Notifier interface {
	NotifySignals(ctx context.Context, records []model.SignalRecord) error
}

// NoopNotifier is used when no notification channel is configured.
type NoopNotifier struct{}

func NewNoopNotifier() *NoopNotifier { return &NoopNotifier{} }

func (n *NoopNotifier) NotifySignals(_ context.Context, _ []model.SignalRecord) error { return nil }
