package indicator

import "errors"

// EMASeries computes an exponential moving average over values.
// The EMA is seeded with a simple average of the first `period` values and
// then follows EMA_t = value_t*k + EMA_{t-1}*(1-k) with k = 2/(period+1).
// Entries before index period-1 are undefined.
func EMASeries(values []float64, period int) (ema []float64, valid []bool) {
	n := len(values)
	ema = make([]float64, n)
	valid = make([]bool, n)
	if period <= 0 || n < period {
		return ema, valid
	}

	var sum float64
	for i := 0; i < period; i++ {
		sum += values[i]
	}
	ema[period-1] = sum / float64(period)
	valid[period-1] = true

	k := 2.0 / float64(period+1)
	for i := period; i < n; i++ {
		ema[i] = values[i]*k + ema[i-1]*(1-k)
		valid[i] = true
	}
	return ema, valid
}

// MACDSeries computes the MACD line (fast EMA minus slow EMA), its signal
// line (EMA of the MACD line) and the histogram for each close. All three
// share a single validity mask: a point is defined only once the signal
// line is, at index slow+signalPeriod-2 and later.
func MACDSeries(closes []float64, fast, slow, signalPeriod int) (line, signal, hist []float64, valid []bool, err error) {
	if fast <= 0 || slow <= 0 || signalPeriod <= 0 {
		return nil, nil, nil, nil, errors.New("macd periods must be positive")
	}
	if fast >= slow {
		return nil, nil, nil, nil, errors.New("macd fast period must be shorter than slow period")
	}

	n := len(closes)
	line = make([]float64, n)
	signal = make([]float64, n)
	hist = make([]float64, n)
	valid = make([]bool, n)

	fastEMA, _ := EMASeries(closes, fast)
	slowEMA, _ := EMASeries(closes, slow)
	if n < slow {
		return line, signal, hist, valid, nil
	}

	// MACD line exists wherever the slow EMA does; the signal EMA runs
	// over that defined tail only.
	macdTail := make([]float64, 0, n-slow+1)
	for i := slow - 1; i < n; i++ {
		line[i] = fastEMA[i] - slowEMA[i]
		macdTail = append(macdTail, line[i])
	}

	sigTail, sigValid := EMASeries(macdTail, signalPeriod)
	for j, ok := range sigValid {
		if !ok {
			continue
		}
		i := slow - 1 + j
		signal[i] = sigTail[j]
		hist[i] = line[i] - signal[i]
		valid[i] = true
	}

	return line, signal, hist, valid, nil
}
