package model

import "time"

// PriceBar represents a single daily OHLCV bar. Bars are ordered ascending
// by date, one per trading session, and never mutated after fetching.
type PriceBar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// Closes extracts the closing prices from a bar sequence.
func Closes(bars []PriceBar) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}
