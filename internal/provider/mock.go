package provider

import (
	"context"
	"time"

	"SignalSentry/internal/model"
)

// MockProvider returns controllable fixed data for development and testing.
type MockProvider struct {
	Bars          map[string][]model.PriceBar
	FetchErrs     map[string]error
	FailuresLeft  map[string]int // transient failures before a fetch succeeds
	ExDividend    map[string]time.Time
	Earnings      map[string]time.Time
	CalendarErr   error
	FetchAttempts map[string]int
}

// NewMockProvider creates an empty mock.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		Bars:          make(map[string][]model.PriceBar),
		FetchErrs:     make(map[string]error),
		FailuresLeft:  make(map[string]int),
		ExDividend:    make(map[string]time.Time),
		Earnings:      make(map[string]time.Time),
		FetchAttempts: make(map[string]int),
	}
}

func (m *MockProvider) Name() string { return "mock" }

func (m *MockProvider) FetchDailyBars(_ context.Context, symbol string, days int) ([]model.PriceBar, error) {
	m.FetchAttempts[symbol]++
	if err, ok := m.FetchErrs[symbol]; ok {
		if left := m.FailuresLeft[symbol]; left > 0 {
			m.FailuresLeft[symbol] = left - 1
			return nil, err
		}
		if _, transient := m.FailuresLeft[symbol]; !transient {
			return nil, err
		}
	}
	if bars, ok := m.Bars[symbol]; ok {
		return bars, nil
	}
	return GenerateBars(100.0, days), nil
}

func (m *MockProvider) NextExDividendDate(_ context.Context, symbol string) (time.Time, bool, error) {
	if m.CalendarErr != nil {
		return time.Time{}, false, m.CalendarErr
	}
	d, ok := m.ExDividend[symbol]
	return d, ok, nil
}

func (m *MockProvider) NextEarningsDate(_ context.Context, symbol string) (time.Time, bool, error) {
	if m.CalendarErr != nil {
		return time.Time{}, false, m.CalendarErr
	}
	d, ok := m.Earnings[symbol]
	return d, ok, nil
}

// FailNTimes makes fetches for symbol fail n times before succeeding.
func (m *MockProvider) FailNTimes(symbol string, n int, err error) {
	m.FetchErrs[symbol] = err
	m.FailuresLeft[symbol] = n
}

// GenerateBars produces a gently trending synthetic daily series ending today.
func GenerateBars(basePrice float64, count int) []model.PriceBar {
	bars := make([]model.PriceBar, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.PriceBar{
			Date:   time.Now().AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}
