package scanner

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"SignalSentry/internal/calendar"
	"SignalSentry/internal/classifier"
	"SignalSentry/internal/indicator"
	"SignalSentry/internal/metrics"
	"SignalSentry/internal/model"
	"SignalSentry/internal/notifier"
	"SignalSentry/internal/provider"
	"SignalSentry/internal/store"
)

// Scanner runs one batch scan over a symbol list: fetch history with
// retries, compute indicators, check calendar events, classify, persist.
// One symbol's failure never aborts the batch.
type Scanner struct {
	Prices     provider.PriceProvider
	Calendar   *calendar.Checker
	Engine     *indicator.Engine
	Store      store.Store
	Notifier   notifier.Notifier
	Thresholds classifier.Thresholds

	HistoryDays   int
	RetryAttempts int
	FetchTimeout  time.Duration
	RecentWindow  int

	// Sleep and Now are injectable for deterministic tests.
	Sleep func(ctx context.Context, d time.Duration) error
	Now   func() time.Time
}

// New creates a Scanner with the default retry policy (3 attempts, 1s/2s/4s
// backoff, 30s per-attempt timeout) and a one-year history window.
func New(prices provider.PriceProvider, cal *calendar.Checker, eng *indicator.Engine, st store.Store, nt notifier.Notifier, th classifier.Thresholds) *Scanner {
	return &Scanner{
		Prices:        prices,
		Calendar:      cal,
		Engine:        eng,
		Store:         st,
		Notifier:      nt,
		Thresholds:    th,
		HistoryDays:   365,
		RetryAttempts: 3,
		FetchTimeout:  30 * time.Second,
		RecentWindow:  30,
		Sleep:         sleepCtx,
		Now:           time.Now,
	}
}

// Scan processes every symbol sequentially and returns the run summary.
// Cancellation is honored between symbols, never mid-write.
func (s *Scanner) Scan(ctx context.Context, syms []string) *model.ScanRun {
	run := &model.ScanRun{
		StartedAt:        s.Now(),
		SymbolsRequested: len(syms),
		Failed:           make(map[string]error),
	}

	var actionable []model.SignalRecord
	for _, symbol := range syms {
		if ctx.Err() != nil {
			log.Printf("[WARN] scan cancelled after %d/%d symbols", len(run.Succeeded)+len(run.Failed), len(syms))
			break
		}

		rec, err := s.scanSymbol(ctx, symbol)
		if err != nil {
			log.Printf("[ERROR] %s: %v", symbol, err)
			run.Failed[symbol] = err
			metrics.SymbolFailures.Inc()
			continue
		}

		run.Succeeded = append(run.Succeeded, symbol)
		metrics.SignalsGenerated.WithLabelValues(string(rec.Signal)).Inc()
		if rec.Signal.Actionable() {
			actionable = append(actionable, *rec)
		}
	}
	run.FinishedAt = s.Now()

	metrics.ScansTotal.Inc()
	metrics.ScanDuration.Observe(run.Duration().Seconds())
	metrics.LastScanTime.Set(float64(run.FinishedAt.Unix()))

	log.Printf("[INFO] scan finished in %v: %d requested, %d succeeded, %d failed",
		run.Duration().Round(time.Millisecond), run.SymbolsRequested, len(run.Succeeded), len(run.Failed))
	for symbol, err := range run.Failed {
		log.Printf("[WARN]   %s failed: %v", symbol, err)
	}

	if len(actionable) > 0 {
		if err := s.Notifier.NotifySignals(ctx, actionable); err != nil {
			log.Printf("[ERROR] notify signals: %v", err)
		}
	}
	return run
}

// Analyze runs the full indicator/classifier path for one symbol without
// persisting, for on-demand lookups.
func (s *Scanner) Analyze(ctx context.Context, symbol string) (*model.SignalRecord, error) {
	bars, err := s.fetchWithRetry(ctx, symbol)
	if err != nil {
		return nil, err
	}
	return s.buildRecord(ctx, symbol, bars)
}

func (s *Scanner) scanSymbol(ctx context.Context, symbol string) (*model.SignalRecord, error) {
	bars, err := s.fetchWithRetry(ctx, symbol)
	if err != nil {
		return nil, err
	}

	rec, err := s.buildRecord(ctx, symbol, bars)
	if err != nil {
		return nil, err
	}

	if err := s.Store.Append(rec); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			// Retried scan hitting an existing (symbol, timestamp) key.
			log.Printf("[INFO] %s: record already stored, skipping append", symbol)
			return rec, nil
		}
		return nil, fmt.Errorf("persist signal: %w", err)
	}
	return rec, nil
}

func (s *Scanner) buildRecord(ctx context.Context, symbol string, bars []model.PriceBar) (*model.SignalRecord, error) {
	series, err := s.Engine.Compute(bars)
	if err != nil {
		return nil, err
	}

	flags := s.Calendar.Check(ctx, symbol)

	prev, hasPrev := series.Previous()
	res := classifier.Classify(series.Latest(), prev, hasPrev, s.Thresholds, flags)
	buys, sells := classifier.CountRecentSignals(series, s.Thresholds, s.RecentWindow)

	latest := series.Latest()
	return &model.SignalRecord{
		Symbol: symbol,
		// Keyed on the scan hour: a retried scan within the same hour
		// collides with the existing record instead of inserting a
		// near-duplicate seconds apart.
		Timestamp:         s.Now().Truncate(time.Hour),
		Price:             bars[len(bars)-1].Close,
		RSI:               latest.RSI,
		MACDLine:          latest.MACDLine,
		MACDSignal:        latest.MACDSignal,
		MACDHistogram:     latest.MACDHistogram,
		MACDPosition:      res.Position,
		Signal:            res.Signal,
		Strength:          res.Strength,
		CalendarReasons:   flags.Reasons,
		RecentBuyCount30:  buys,
		RecentSellCount30: sells,
	}, nil
}

// fetchWithRetry attempts the price fetch up to RetryAttempts times with
// exponential backoff (1s, 2s, 4s). Each attempt is bounded by FetchTimeout.
func (s *Scanner) fetchWithRetry(ctx context.Context, symbol string) ([]model.PriceBar, error) {
	var lastErr error
	for attempt := 0; attempt < s.RetryAttempts; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<uint(attempt-1)) * time.Second
			log.Printf("[WARN] fetch %s failed (attempt %d/%d): %v, retrying in %v",
				symbol, attempt, s.RetryAttempts, lastErr, backoff)
			if err := s.Sleep(ctx, backoff); err != nil {
				return nil, err
			}
		}

		attemptCtx, cancel := context.WithTimeout(ctx, s.FetchTimeout)
		bars, err := s.Prices.FetchDailyBars(attemptCtx, symbol, s.HistoryDays)
		cancel()
		if err == nil {
			return bars, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("fetch %s: %d attempts exhausted: %w", symbol, s.RetryAttempts, lastErr)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
