package indicator

import "errors"

// RSISeries computes the Wilder-smoothed RSI for each close.
// The first `period` entries are undefined: the initial average gain/loss is
// a simple average over the first `period` price changes, then smoothed with
// weight 1/period for every later bar. RSI is 100 when the average loss is
// exactly zero and 0 when the average gain is exactly zero.
func RSISeries(closes []float64, period int) (values []float64, valid []bool, err error) {
	if period < 2 {
		return nil, nil, errors.New("rsi period must be at least 2")
	}

	n := len(closes)
	values = make([]float64, n)
	valid = make([]bool, n)
	if n < period+1 {
		return values, valid, nil
	}

	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	values[period] = rsiFrom(avgGain, avgLoss)
	valid[period] = true

	for i := period + 1; i < n; i++ {
		change := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)

		values[i] = rsiFrom(avgGain, avgLoss)
		valid[i] = true
	}

	return values, valid, nil
}

func rsiFrom(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100.0
	}
	if avgGain == 0 {
		return 0.0
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs)
}
