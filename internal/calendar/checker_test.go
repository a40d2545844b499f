package calendar

import (
	"context"
	"errors"
	"testing"
	"time"

	"SignalSentry/internal/provider"
)

// Fixed "now": Tuesday 2026-03-03 17:00 UTC, a regular NYSE trading week.
var testNow = time.Date(2026, 3, 3, 17, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return testNow }

func newTestChecker(mock *provider.MockProvider) *Checker {
	return NewChecker(mock, "xnys", fixedNow)
}

func TestCheck_ExDividendTomorrow(t *testing.T) {
	mock := provider.NewMockProvider()
	mock.ExDividend["KO"] = testNow.Add(24 * time.Hour)

	flags := newTestChecker(mock).Check(context.Background(), "KO")

	if !flags.ExDividendTomorrow {
		t.Error("ex-dividend tomorrow not flagged")
	}
	if flags.EarningsTomorrow {
		t.Error("earnings flagged without an earnings date")
	}
	if len(flags.Reasons) != 1 || flags.Reasons[0] != "Ex-dividend date tomorrow" {
		t.Errorf("reasons = %v", flags.Reasons)
	}
}

func TestCheck_MidnightUTCStampIsTomorrow(t *testing.T) {
	// Yahoo encodes event dates as midnight UTC of the civil date. For a
	// US exchange that instant is still the prior evening local time; the
	// event must flag by its UTC date, not the shifted market-local one.
	mock := provider.NewMockProvider()
	mock.ExDividend["KO"] = time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
	mock.Earnings["KO"] = time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)

	flags := newTestChecker(mock).Check(context.Background(), "KO")

	if !flags.ExDividendTomorrow {
		t.Error("ex-dividend dated tomorrow (midnight UTC) not flagged")
	}
	if !flags.EarningsTomorrow {
		t.Error("earnings dated tomorrow (midnight UTC) not flagged")
	}
}

func TestCheck_EarningsTomorrow(t *testing.T) {
	mock := provider.NewMockProvider()
	mock.Earnings["NVDA"] = testNow.Add(24 * time.Hour)

	flags := newTestChecker(mock).Check(context.Background(), "NVDA")

	if !flags.EarningsTomorrow || flags.ExDividendTomorrow {
		t.Errorf("flags = %+v, want earnings only", flags)
	}
	if !flags.Any() {
		t.Error("Any() = false with an earnings flag set")
	}
}

func TestCheck_BothEvents(t *testing.T) {
	mock := provider.NewMockProvider()
	mock.ExDividend["XOM"] = testNow.Add(24 * time.Hour)
	mock.Earnings["XOM"] = testNow.Add(24 * time.Hour)

	flags := newTestChecker(mock).Check(context.Background(), "XOM")

	if !flags.ExDividendTomorrow || !flags.EarningsTomorrow {
		t.Errorf("flags = %+v, want both set", flags)
	}
	if len(flags.Reasons) != 2 {
		t.Errorf("reasons = %v, want 2 entries", flags.Reasons)
	}
}

func TestCheck_EventNotTomorrow(t *testing.T) {
	mock := provider.NewMockProvider()
	mock.ExDividend["TODAY"] = testNow
	mock.ExDividend["NEXTWEEK"] = testNow.AddDate(0, 0, 7)

	c := newTestChecker(mock)
	for _, sym := range []string{"TODAY", "NEXTWEEK"} {
		if flags := c.Check(context.Background(), sym); flags.Any() {
			t.Errorf("%s: flags = %+v, want none", sym, flags)
		}
	}
}

func TestCheck_NoEventData(t *testing.T) {
	mock := provider.NewMockProvider()

	if flags := newTestChecker(mock).Check(context.Background(), "AAPL"); flags.Any() {
		t.Errorf("flags = %+v, want none without calendar data", flags)
	}
}

func TestCheck_ProviderErrorDegrades(t *testing.T) {
	mock := provider.NewMockProvider()
	mock.ExDividend["KO"] = testNow.Add(24 * time.Hour)
	mock.CalendarErr = errors.New("quote summary unavailable")

	flags := newTestChecker(mock).Check(context.Background(), "KO")

	if flags.Any() {
		t.Errorf("flags = %+v, want none when the provider fails", flags)
	}
	if flags.Reasons != nil {
		t.Errorf("reasons = %v, want none", flags.Reasons)
	}
}

func TestNewChecker_UnknownMICFallsBack(t *testing.T) {
	c := NewChecker(provider.NewMockProvider(), "zzzz", fixedNow)
	if c.loc == nil {
		t.Fatal("no location resolved")
	}
}

func TestSameDate(t *testing.T) {
	a := time.Date(2026, 3, 4, 0, 30, 0, 0, time.UTC)
	b := time.Date(2026, 3, 4, 23, 59, 0, 0, time.UTC)
	if !sameDate(a, b) {
		t.Error("same calendar day compared unequal")
	}
	if sameDate(a, b.AddDate(0, 0, 1)) {
		t.Error("different days compared equal")
	}
}
