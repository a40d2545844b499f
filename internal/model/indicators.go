package model

// IndicatorPoint holds the derived indicator values for one bar.
// RSI is undefined for the first rsiPeriod bars; the MACD triplet is
// undefined until enough history exists for the slow EMA and signal EMA.
type IndicatorPoint struct {
	RSI           float64
	RSIValid      bool
	MACDLine      float64
	MACDSignal    float64
	MACDHistogram float64
	MACDValid     bool
}

// IndicatorSeries pairs each input bar with its computed indicator point.
// It is recomputed fresh from the bar sequence on every scan.
type IndicatorSeries struct {
	Bars   []PriceBar
	Points []IndicatorPoint
}

// Latest returns the final indicator point, which drives classification.
func (s *IndicatorSeries) Latest() IndicatorPoint {
	return s.Points[len(s.Points)-1]
}

// Previous returns the point before the latest one, used for crossover
// detection. ok is false when the series has fewer than two points.
func (s *IndicatorSeries) Previous() (IndicatorPoint, bool) {
	if len(s.Points) < 2 {
		return IndicatorPoint{}, false
	}
	return s.Points[len(s.Points)-2], true
}
