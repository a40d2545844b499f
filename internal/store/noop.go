package store

import "SignalSentry/internal/model"

// NoopStore is a no-op implementation used when SQLite is not configured.
type NoopStore struct{}

func NewNoopStore() *NoopStore { return &NoopStore{} }

func (n *NoopStore) Append(_ *model.SignalRecord) error      { return nil }
func (n *NoopStore) Cleanup(_ int) (int64, error)            { return 0, nil }
func (n *NoopStore) Stats() (*Stats, error)                  { return &Stats{BySignal: map[model.Signal]int64{}}, nil }
func (n *NoopStore) Query(_ Query) ([]model.SignalRecord, error) { return nil, nil }
func (n *NoopStore) Close() error                            { return nil }
