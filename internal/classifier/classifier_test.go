package classifier

import (
	"testing"
	"time"

	"SignalSentry/internal/model"
)

func point(rsi, line, signal float64) model.IndicatorPoint {
	return model.IndicatorPoint{
		RSI: rsi, RSIValid: true,
		MACDLine: line, MACDSignal: signal, MACDHistogram: line - signal, MACDValid: true,
	}
}

func TestClassifyPosition(t *testing.T) {
	tests := []struct {
		name   string
		line   float64
		signal float64
		want   model.MACDPosition
	}{
		{"golden cross", 2, 1, model.PositionGoldenCross},
		{"dead cross", -2, -1, model.PositionDeadCross},
		{"up trend", 1, 2, model.PositionUpTrend},
		{"up trend at zero", 0, 0, model.PositionUpTrend},
		{"down trend", -1, -2, model.PositionDownTrend},
		{"mixed", 1, -1, model.PositionNeutral},
		{"mixed negative line", -1, 1, model.PositionNeutral},
	}
	for _, tt := range tests {
		if got := ClassifyPosition(tt.line, tt.signal); got != tt.want {
			t.Errorf("%s: ClassifyPosition(%v, %v) = %s, want %s", tt.name, tt.line, tt.signal, got, tt.want)
		}
	}
}

func TestClassify_CalendarOverride(t *testing.T) {
	// Deeply oversold with a golden cross would normally be STRONG_BUY;
	// a calendar event forces SELL regardless.
	flags := model.CalendarFlags{
		ExDividendTomorrow: true,
		Reasons:            []string{"Ex-dividend date tomorrow"},
	}
	res := Classify(point(20, 2, 1), model.IndicatorPoint{}, false, DefaultThresholds(), flags)

	if res.Signal != model.SignalSell {
		t.Fatalf("signal = %s, want SELL", res.Signal)
	}
	if res.Strength != model.StrengthNormal {
		t.Errorf("strength = %s, want NORMAL", res.Strength)
	}
	if len(res.Reasons) != 1 || res.Reasons[0] != "Ex-dividend date tomorrow" {
		t.Errorf("reasons = %v", res.Reasons)
	}
}

func TestClassify_StrongBuy(t *testing.T) {
	res := Classify(point(25, 2, 1), model.IndicatorPoint{}, false, DefaultThresholds(), model.CalendarFlags{})
	if res.Signal != model.SignalStrongBuy {
		t.Fatalf("signal = %s, want STRONG_BUY", res.Signal)
	}
	if res.Strength != model.StrengthStrong {
		t.Errorf("strength = %s, want STRONG", res.Strength)
	}
	if res.Position != model.PositionGoldenCross {
		t.Errorf("position = %s, want GOLDEN_CROSS", res.Position)
	}
}

func TestClassify_StrongSell(t *testing.T) {
	res := Classify(point(75, -2, -1), model.IndicatorPoint{}, false, DefaultThresholds(), model.CalendarFlags{})
	if res.Signal != model.SignalStrongSell {
		t.Fatalf("signal = %s, want STRONG_SELL", res.Signal)
	}
	if res.Strength != model.StrengthStrong {
		t.Errorf("strength = %s, want STRONG", res.Strength)
	}
}

func TestClassify_CrossoverRules(t *testing.T) {
	tests := []struct {
		name string
		prev model.IndicatorPoint
		cur  model.IndicatorPoint
		want model.Signal
	}{
		// Bullish crossover with neutral RSI: rule 4.
		{"bullish crossover", point(50, -0.5, 0.5), point(50, 0.5, -0.1), model.SignalBuy},
		// Bearish crossover with neutral RSI: rule 5.
		{"bearish crossover", point(50, 0.5, -0.5), point(50, -0.5, 0.1), model.SignalSell},
		// No crossover, neutral RSI: hold.
		{"no crossover", point(50, 1, 0.5), point(50, 1.2, 0.8), model.SignalHold},
	}
	for _, tt := range tests {
		res := Classify(tt.cur, tt.prev, true, DefaultThresholds(), model.CalendarFlags{})
		if res.Signal != tt.want {
			t.Errorf("%s: signal = %s, want %s", tt.name, res.Signal, tt.want)
		}
	}
}

func TestClassify_FirstBarHasNoCrossover(t *testing.T) {
	// Same values would be a bullish crossover if a prior bar existed.
	res := Classify(point(50, 0.5, -0.1), model.IndicatorPoint{}, false, DefaultThresholds(), model.CalendarFlags{})
	if res.Signal != model.SignalHold {
		t.Errorf("signal = %s, want HOLD when no prior bar exists", res.Signal)
	}
}

func TestClassify_OversoldWithoutCross(t *testing.T) {
	// Oversold alone is a plain BUY (rule 4), not STRONG_BUY.
	res := Classify(point(28, -1, -0.5), model.IndicatorPoint{}, false, DefaultThresholds(), model.CalendarFlags{})
	if res.Signal != model.SignalBuy {
		t.Fatalf("signal = %s, want BUY", res.Signal)
	}
	if res.Strength != model.StrengthNormal {
		t.Errorf("strength = %s, want NORMAL", res.Strength)
	}
}

func TestCountRecentSignals(t *testing.T) {
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	// 60 daily bars; the last 30 days alternate oversold and overbought
	// points, the older half is outside the window.
	var bars []model.PriceBar
	var points []model.IndicatorPoint
	for i := 0; i < 60; i++ {
		bars = append(bars, model.PriceBar{Date: start.AddDate(0, 0, i), Close: 100})
		switch {
		case i < 31:
			points = append(points, point(50, 1, 0.5)) // HOLD, outside window anyway
		case i%2 == 0:
			points = append(points, point(25, -1, -0.5)) // oversold -> BUY
		default:
			points = append(points, point(75, 0.4, 0.5)) // overbought -> SELL
		}
	}
	series := &model.IndicatorSeries{Bars: bars, Points: points}

	buys, sells := CountRecentSignals(series, DefaultThresholds(), 30)
	if buys != 14 || sells != 15 {
		t.Errorf("counts = (%d buys, %d sells), want (14, 15)", buys, sells)
	}
}
