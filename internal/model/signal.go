package model

import "time"

// Signal is the discrete trading signal for a symbol.
type Signal string

const (
	SignalBuy        Signal = "BUY"
	SignalSell       Signal = "SELL"
	SignalHold       Signal = "HOLD"
	SignalStrongBuy  Signal = "STRONG_BUY"
	SignalStrongSell Signal = "STRONG_SELL"
)

// Actionable reports whether the signal should be handed to the notifier.
// HOLD is never notified.
func (s Signal) Actionable() bool {
	return s != SignalHold && s != ""
}

// IsBuy reports whether the signal is on the buy side.
func (s Signal) IsBuy() bool { return s == SignalBuy || s == SignalStrongBuy }

// IsSell reports whether the signal is on the sell side.
func (s Signal) IsSell() bool { return s == SignalSell || s == SignalStrongSell }

// Strength indicates whether RSI and MACD corroborate each other.
type Strength string

const (
	StrengthNormal Strength = "NORMAL"
	StrengthStrong Strength = "STRONG"
)

// MACDPosition categorizes the MACD line relative to its signal line
// and the zero line.
type MACDPosition string

const (
	PositionGoldenCross MACDPosition = "GOLDEN_CROSS"
	PositionDeadCross   MACDPosition = "DEAD_CROSS"
	PositionUpTrend     MACDPosition = "UP_TREND"
	PositionDownTrend   MACDPosition = "DOWN_TREND"
	PositionNeutral     MACDPosition = "NEUTRAL"
)

// CalendarFlags marks corporate-calendar events falling one day ahead.
// Computed fresh per scan, folded into the SignalRecord, never persisted
// on its own.
type CalendarFlags struct {
	ExDividendTomorrow bool
	EarningsTomorrow   bool
	Reasons            []string
}

// Any reports whether at least one calendar event triggers tomorrow.
func (f CalendarFlags) Any() bool {
	return f.ExDividendTomorrow || f.EarningsTomorrow
}

// SignalRecord is one immutable signal snapshot for a (symbol, timestamp)
// pair. Corrections are new records; retention cleanup deletes old ones.
type SignalRecord struct {
	Symbol            string
	Timestamp         time.Time
	Price             float64
	RSI               float64
	MACDLine          float64
	MACDSignal        float64
	MACDHistogram     float64
	MACDPosition      MACDPosition
	Signal            Signal
	Strength          Strength
	CalendarReasons   []string
	RecentBuyCount30  int
	RecentSellCount30 int
}

// ScanRun summarizes one orchestration cycle. It is transient: logged and
// surfaced by the health check, never persisted as a first-class entity.
type ScanRun struct {
	StartedAt        time.Time
	FinishedAt       time.Time
	SymbolsRequested int
	Succeeded        []string
	Failed           map[string]error
}

// Duration returns the wall time the scan took.
func (r *ScanRun) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
