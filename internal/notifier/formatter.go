package notifier

import (
	"fmt"
	"strings"
	"time"

	"SignalSentry/internal/model"
)

// FormatSignalAlert renders actionable records as a short scan alert.
// It returns "" when no record is actionable, in which case nothing
// should be sent.
func FormatSignalAlert(records []model.SignalRecord) string {
	var buys, sells []string
	var scannedAt time.Time
	for _, r := range records {
		if r.Timestamp.After(scannedAt) {
			scannedAt = r.Timestamp
		}
		line := fmt.Sprintf("%s (RSI: %.1f, %s)", r.Symbol, r.RSI, positionLabel(r.MACDPosition))
		switch {
		case r.Signal.IsBuy():
			if r.Strength == model.StrengthStrong {
				line += " ⚡"
			}
			buys = append(buys, line)
		case r.Signal.IsSell():
			if len(r.CalendarReasons) > 0 {
				line += " (Calendar)"
			} else if r.Strength == model.StrengthStrong {
				line += " ⚡"
			}
			sells = append(sells, line)
		}
	}

	if len(buys) == 0 && len(sells) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("🔍 <b>Market Scan Alert</b>\n\n")

	if len(buys) > 0 {
		b.WriteString("🟢 <b>Buy Signals:</b>\n")
		for _, s := range buys {
			b.WriteString("• " + s + "\n")
		}
		b.WriteString("\n")
	}
	if len(sells) > 0 {
		b.WriteString("🔴 <b>Sell Signals:</b>\n")
		for _, s := range sells {
			b.WriteString("• " + s + "\n")
		}
		b.WriteString("\n")
	}

	// The stamp comes from the records themselves, keeping the output
	// deterministic for a given batch.
	b.WriteString(fmt.Sprintf("📅 Scanned: %s\n", scannedAt.Format("2006-01-02 15:04:05")))
	b.WriteString("⚠️ Educational purposes only. Not financial advice.")
	return b.String()
}

func positionLabel(p model.MACDPosition) string {
	switch p {
	case model.PositionGoldenCross:
		return "Golden Cross"
	case model.PositionDeadCross:
		return "Dead Cross"
	case model.PositionUpTrend:
		return "Up Trend"
	case model.PositionDownTrend:
		return "Down Trend"
	default:
		return "Neutral"
	}
}
