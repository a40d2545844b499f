package provider

import (
	"context"
	"time"

	"SignalSentry/internal/model"
)

// PriceProvider fetches historical price bars. Any failure is treated as
// retryable by the scanner.
type PriceProvider interface {
	FetchDailyBars(ctx context.Context, symbol string, days int) ([]model.PriceBar, error)
	Name() string
}

// CalendarProvider resolves upcoming corporate-calendar dates. The second
// return value reports whether a date is known at all; failures degrade to
// "no event" at the call site and never abort a scan.
type CalendarProvider interface {
	NextExDividendDate(ctx context.Context, symbol string) (time.Time, bool, error)
	NextEarningsDate(ctx context.Context, symbol string) (time.Time, bool, error)
}
