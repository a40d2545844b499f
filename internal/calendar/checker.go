package calendar

import (
	"context"
	"log"
	"time"

	"SignalSentry/internal/model"
	"SignalSentry/internal/provider"

	"github.com/scmhub/calendar"
)

// Checker resolves whether a symbol has an ex-dividend or earnings date
// falling exactly one day ahead. Calendar data is advisory: provider
// failures and missing data degrade to "no event" and never propagate.
type Checker struct {
	provider provider.CalendarProvider
	market   *calendar.Calendar
	loc      *time.Location
	now      func() time.Time
}

// NewChecker builds a Checker for the exchange identified by mic (ISO 10383,
// e.g. "xnys"). The exchange calendar supplies the market timezone; when the
// MIC is unknown the checker falls back to America/New_York, then UTC.
func NewChecker(p provider.CalendarProvider, mic string, now func() time.Time) *Checker {
	if mic == "" {
		mic = "xnys"
	}
	if now == nil {
		now = time.Now
	}

	cal := calendar.GetCalendar(mic)
	if cal == nil {
		cal = calendar.GetCalendar("xnys")
	}

	loc := time.UTC
	if cal != nil {
		loc = cal.Loc
	} else {
		if ny, err := time.LoadLocation("America/New_York"); err == nil {
			loc = ny
		} else {
			log.Printf("[WARN] no exchange calendar for %q and America/New_York unavailable, using UTC", mic)
		}
	}

	return &Checker{provider: p, market: cal, loc: loc, now: now}
}

// Check returns the calendar flags for symbol. "Tomorrow" is the next
// calendar date in the market timezone.
func (c *Checker) Check(ctx context.Context, symbol string) model.CalendarFlags {
	tomorrow := c.now().In(c.loc).AddDate(0, 0, 1)

	var flags model.CalendarFlags

	// Yahoo stamps event dates at midnight UTC. Converting that instant
	// into the market timezone shifts the civil date back a day for US
	// exchanges, so the comparison uses the UTC calendar date.
	if ex, ok, err := c.provider.NextExDividendDate(ctx, symbol); err != nil {
		log.Printf("[WARN] ex-dividend lookup failed for %s: %v", symbol, err)
	} else if ok && sameDate(ex.UTC(), tomorrow) {
		flags.ExDividendTomorrow = true
		flags.Reasons = append(flags.Reasons, "Ex-dividend date tomorrow")
	}

	if earn, ok, err := c.provider.NextEarningsDate(ctx, symbol); err != nil {
		log.Printf("[WARN] earnings lookup failed for %s: %v", symbol, err)
	} else if ok && sameDate(earn.UTC(), tomorrow) {
		flags.EarningsTomorrow = true
		flags.Reasons = append(flags.Reasons, "Earnings report tomorrow")
	}

	if flags.Any() && !c.isBusinessDay(tomorrow) {
		log.Printf("[WARN] %s: calendar event dated %s falls on a non-trading day", symbol, tomorrow.Format("2006-01-02"))
	}

	return flags
}

func (c *Checker) isBusinessDay(t time.Time) bool {
	if c.market != nil {
		return c.market.IsBusinessDay(t)
	}
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
