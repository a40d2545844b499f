package store

import (
	"errors"
	"time"

	"SignalSentry/internal/model"
)

// ErrDuplicate indicates an append for a (symbol, timestamp) pair that
// already exists. Callers treat it as an idempotent no-op on retried
// scans, not a hard error.
var ErrDuplicate = errors.New("signal record already exists")

// Stats holds aggregate counts for health reporting.
type Stats struct {
	TotalRecords    int64
	BySignal        map[model.Signal]int64
	DistinctSymbols int64
	SizeBytes       int64
}

// Query narrows a record lookup. Zero values mean "no constraint".
// Results are always ordered by timestamp descending.
type Query struct {
	Symbol string
	Since  time.Time
	Limit  int
}

// Store is the durable append-only record of signal snapshots.
type Store interface {
	Append(rec *model.SignalRecord) error
	Cleanup(retentionDays int) (int64, error)
	Stats() (*Stats, error)
	Query(q Query) ([]model.SignalRecord, error)
	Close() error
}
