package classifier

import (
	"fmt"

	"SignalSentry/internal/model"
)

// Thresholds holds the RSI bands used for classification.
type Thresholds struct {
	Oversold   float64
	Overbought float64
}

// DefaultThresholds returns the conventional 30/70 RSI bands.
func DefaultThresholds() Thresholds {
	return Thresholds{Oversold: 30, Overbought: 70}
}

// Result is the classification outcome for a single bar.
type Result struct {
	Signal   model.Signal
	Strength model.Strength
	Position model.MACDPosition
	Reasons  []string
}

// ClassifyPosition maps the MACD line and signal line values to a
// position category.
func ClassifyPosition(line, signal float64) model.MACDPosition {
	switch {
	case line > signal && line > 0 && signal > 0:
		return model.PositionGoldenCross
	case line < signal && line < 0 && signal < 0:
		return model.PositionDeadCross
	case line >= 0 && signal >= 0:
		return model.PositionUpTrend
	case line <= 0 && signal <= 0:
		return model.PositionDownTrend
	default:
		return model.PositionNeutral
	}
}

// Classify maps the latest indicator point plus calendar flags to a signal.
// Rules are evaluated top to bottom, first match wins:
//
//  1. any calendar flag            -> SELL (documented precedence override)
//  2. oversold + golden cross      -> STRONG_BUY
//  3. overbought + dead cross      -> STRONG_SELL
//  4. oversold or bullish crossover -> BUY
//  5. overbought or bearish crossover -> SELL
//  6. otherwise                    -> HOLD
//
// Crossover detection needs the prior bar's point; with hasPrev false the
// crossover terms are treated as absent.
func Classify(cur, prev model.IndicatorPoint, hasPrev bool, th Thresholds, flags model.CalendarFlags) Result {
	pos := ClassifyPosition(cur.MACDLine, cur.MACDSignal)

	if flags.Any() {
		return Result{
			Signal:   model.SignalSell,
			Strength: model.StrengthNormal,
			Position: pos,
			Reasons:  flags.Reasons,
		}
	}

	bullishCross := false
	bearishCross := false
	if hasPrev && prev.MACDValid && cur.MACDValid {
		bullishCross = prev.MACDLine <= prev.MACDSignal && cur.MACDLine > cur.MACDSignal
		bearishCross = prev.MACDLine >= prev.MACDSignal && cur.MACDLine < cur.MACDSignal
	}

	oversold := cur.RSIValid && cur.RSI <= th.Oversold
	overbought := cur.RSIValid && cur.RSI >= th.Overbought

	switch {
	case oversold && pos == model.PositionGoldenCross:
		return Result{
			Signal:   model.SignalStrongBuy,
			Strength: model.StrengthStrong,
			Position: pos,
			Reasons:  []string{fmt.Sprintf("RSI %.1f <= %.0f with golden cross", cur.RSI, th.Oversold)},
		}
	case overbought && pos == model.PositionDeadCross:
		return Result{
			Signal:   model.SignalStrongSell,
			Strength: model.StrengthStrong,
			Position: pos,
			Reasons:  []string{fmt.Sprintf("RSI %.1f >= %.0f with dead cross", cur.RSI, th.Overbought)},
		}
	case oversold || bullishCross:
		reason := fmt.Sprintf("RSI %.1f <= %.0f", cur.RSI, th.Oversold)
		if !oversold {
			reason = "bullish MACD crossover"
		}
		return Result{Signal: model.SignalBuy, Strength: model.StrengthNormal, Position: pos, Reasons: []string{reason}}
	case overbought || bearishCross:
		reason := fmt.Sprintf("RSI %.1f >= %.0f", cur.RSI, th.Overbought)
		if !overbought {
			reason = "bearish MACD crossover"
		}
		return Result{Signal: model.SignalSell, Strength: model.StrengthNormal, Position: pos, Reasons: []string{reason}}
	default:
		return Result{Signal: model.SignalHold, Strength: model.StrengthNormal, Position: pos}
	}
}

// CountRecentSignals classifies every defined point whose bar date falls
// within the trailing windowDays of the series and counts buy-side and
// sell-side outcomes. This is a derived statistic over the freshly
// computed series for the current batch, not a store query.
func CountRecentSignals(s *model.IndicatorSeries, th Thresholds, windowDays int) (buys, sells int) {
	if len(s.Points) == 0 {
		return 0, 0
	}
	cutoff := s.Bars[len(s.Bars)-1].Date.AddDate(0, 0, -windowDays)

	for i, p := range s.Points {
		if !p.RSIValid || !p.MACDValid {
			continue
		}
		if s.Bars[i].Date.Before(cutoff) {
			continue
		}
		var prev model.IndicatorPoint
		hasPrev := false
		if i > 0 {
			prev = s.Points[i-1]
			hasPrev = true
		}
		res := Classify(p, prev, hasPrev, th, model.CalendarFlags{})
		if res.Signal.IsBuy() {
			buys++
		} else if res.Signal.IsSell() {
			sells++
		}
	}
	return buys, sells
}
