package indicator

import (
	"fmt"

	"SignalSentry/internal/model"
)

// Config holds the indicator periods. Zero values fall back to the
// conventional defaults (RSI 14, MACD 12/26/9).
type Config struct {
	RSIPeriod  int
	MACDFast   int
	MACDSlow   int
	MACDSignal int
}

// DefaultConfig returns the standard indicator periods.
func DefaultConfig() Config {
	return Config{RSIPeriod: 14, MACDFast: 12, MACDSlow: 26, MACDSignal: 9}
}

// InsufficientHistoryError indicates a bar sequence shorter than the
// required computation window. It is non-retryable for that symbol in
// that run.
type InsufficientHistoryError struct {
	Required int
	Got      int
}

func (e *InsufficientHistoryError) Error() string {
	return fmt.Sprintf("insufficient history: need %d bars, got %d", e.Required, e.Got)
}

// Engine derives RSI and MACD series from a price series. It holds no
// mutable state between calls: identical input always yields identical
// output.
type Engine struct {
	cfg Config
}

// NewEngine validates the configuration and returns an Engine.
func NewEngine(cfg Config) (*Engine, error) {
	if cfg.RSIPeriod == 0 && cfg.MACDFast == 0 && cfg.MACDSlow == 0 && cfg.MACDSignal == 0 {
		cfg = DefaultConfig()
	}
	if cfg.RSIPeriod < 2 {
		return nil, fmt.Errorf("rsi period must be >= 2, got %d", cfg.RSIPeriod)
	}
	if cfg.MACDFast <= 0 || cfg.MACDSlow <= 0 || cfg.MACDSignal <= 0 {
		return nil, fmt.Errorf("macd periods must be positive (%d/%d/%d)", cfg.MACDFast, cfg.MACDSlow, cfg.MACDSignal)
	}
	if cfg.MACDFast >= cfg.MACDSlow {
		return nil, fmt.Errorf("macd fast period %d must be shorter than slow period %d", cfg.MACDFast, cfg.MACDSlow)
	}
	return &Engine{cfg: cfg}, nil
}

// RequiredBars returns the minimum bar count for a full computation.
func (e *Engine) RequiredBars() int {
	macdWindow := e.cfg.MACDSlow + e.cfg.MACDSignal
	if e.cfg.RSIPeriod > macdWindow {
		return e.cfg.RSIPeriod + 1
	}
	return macdWindow + 1
}

// Compute produces an IndicatorPoint per bar. It returns an
// InsufficientHistoryError when fewer bars than RequiredBars are given.
func (e *Engine) Compute(bars []model.PriceBar) (*model.IndicatorSeries, error) {
	if len(bars) < e.RequiredBars() {
		return nil, &InsufficientHistoryError{Required: e.RequiredBars(), Got: len(bars)}
	}

	closes := model.Closes(bars)

	rsi, rsiValid, err := RSISeries(closes, e.cfg.RSIPeriod)
	if err != nil {
		return nil, fmt.Errorf("rsi: %w", err)
	}
	line, signal, hist, macdValid, err := MACDSeries(closes, e.cfg.MACDFast, e.cfg.MACDSlow, e.cfg.MACDSignal)
	if err != nil {
		return nil, fmt.Errorf("macd: %w", err)
	}

	points := make([]model.IndicatorPoint, len(bars))
	for i := range bars {
		points[i] = model.IndicatorPoint{
			RSI:           rsi[i],
			RSIValid:      rsiValid[i],
			MACDLine:      line[i],
			MACDSignal:    signal[i],
			MACDHistogram: hist[i],
			MACDValid:     macdValid[i],
		}
	}

	return &model.IndicatorSeries{Bars: bars, Points: points}, nil
}
