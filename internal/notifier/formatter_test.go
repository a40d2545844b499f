package notifier

import (
	"strings"
	"testing"
	"time"

	"SignalSentry/internal/model"
)

func rec(symbol string, sig model.Signal, strength model.Strength) model.SignalRecord {
	return model.SignalRecord{
		Symbol:       symbol,
		Timestamp:    time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC),
		RSI:          42.0,
		MACDPosition: model.PositionNeutral,
		Signal:       sig,
		Strength:     strength,
	}
}

func TestFormatSignalAlert_EmptyWhenNothingActionable(t *testing.T) {
	if got := FormatSignalAlert(nil); got != "" {
		t.Errorf("nil records produced %q", got)
	}

	holds := []model.SignalRecord{
		rec("AAPL", model.SignalHold, model.StrengthNormal),
		rec("MSFT", model.SignalHold, model.StrengthNormal),
	}
	if got := FormatSignalAlert(holds); got != "" {
		t.Errorf("HOLD-only records produced %q", got)
	}
}

func TestFormatSignalAlert_Sections(t *testing.T) {
	records := []model.SignalRecord{
		rec("AAPL", model.SignalBuy, model.StrengthNormal),
		rec("MSFT", model.SignalSell, model.StrengthNormal),
		rec("NVDA", model.SignalHold, model.StrengthNormal),
	}

	got := FormatSignalAlert(records)

	if !strings.Contains(got, "Buy Signals") || !strings.Contains(got, "Sell Signals") {
		t.Errorf("missing section headers:\n%s", got)
	}
	if !strings.Contains(got, "AAPL (RSI: 42.0, Neutral)") {
		t.Errorf("buy line malformed:\n%s", got)
	}
	if strings.Contains(got, "NVDA") {
		t.Errorf("HOLD record leaked into alert:\n%s", got)
	}
	if !strings.Contains(got, "Not financial advice") {
		t.Errorf("disclaimer missing:\n%s", got)
	}
	if !strings.Contains(got, "Scanned: 2026-03-02 12:00:00") {
		t.Errorf("scan stamp not taken from the records:\n%s", got)
	}
}

func TestFormatSignalAlert_StrongMarker(t *testing.T) {
	records := []model.SignalRecord{
		rec("AAPL", model.SignalStrongBuy, model.StrengthStrong),
		rec("MSFT", model.SignalBuy, model.StrengthNormal),
	}

	got := FormatSignalAlert(records)

	if !strings.Contains(got, "AAPL (RSI: 42.0, Neutral) ⚡") {
		t.Errorf("strong buy not marked:\n%s", got)
	}
	if strings.Contains(got, "MSFT (RSI: 42.0, Neutral) ⚡") {
		t.Errorf("normal buy marked strong:\n%s", got)
	}
}

func TestFormatSignalAlert_CalendarTag(t *testing.T) {
	r := rec("KO", model.SignalSell, model.StrengthNormal)
	r.CalendarReasons = []string{"Ex-dividend date tomorrow"}

	got := FormatSignalAlert([]model.SignalRecord{r})

	if !strings.Contains(got, "KO (RSI: 42.0, Neutral) (Calendar)") {
		t.Errorf("calendar sell not tagged:\n%s", got)
	}
}

func TestPositionLabel(t *testing.T) {
	cases := map[model.MACDPosition]string{
		model.PositionGoldenCross: "Golden Cross",
		model.PositionDeadCross:   "Dead Cross",
		model.PositionUpTrend:     "Up Trend",
		model.PositionDownTrend:   "Down Trend",
		model.PositionNeutral:     "Neutral",
	}
	for pos, want := range cases {
		if got := positionLabel(pos); got != want {
			t.Errorf("positionLabel(%s) = %q, want %q", pos, got, want)
		}
	}
}
