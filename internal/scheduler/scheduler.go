package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"SignalSentry/internal/metrics"
	"SignalSentry/internal/scanner"
	"SignalSentry/internal/store"
	"SignalSentry/internal/symbols"

	"github.com/robfig/cron/v3"
)

// State is the scheduler's coarse lifecycle state.
type State string

const (
	StateIdle     State = "IDLE"
	StateSleeping State = "SLEEPING"
	StateScanning State = "SCANNING"
)

// Config holds the scheduling cadences and file locations.
type Config struct {
	ScanCron      string // default "0 * * * *"  (hourly)
	CleanupCron   string // default "0 2 * * *"  (daily at 02:00)
	HealthCron    string // default "0 */6 * * *" (every 6 hours)
	RetentionDays int
	PortfolioPath string
	ScanListPath  string
}

// Scheduler owns a single cooperative loop: each timer callback runs to
// completion before the next is considered, so scans never overlap each
// other or a cleanup. A trigger that fires while a job is still running
// is skipped with a logged warning.
type Scheduler struct {
	scanner *scanner.Scanner
	store   store.Store
	clock   Clock
	cfg     Config

	scanSched    cron.Schedule
	cleanupSched cron.Schedule
	healthSched  cron.Schedule
	scanInterval time.Duration

	mu         sync.Mutex
	state      State
	lastScanOK time.Time
}

// New parses the cron expressions and builds a Scheduler. Malformed
// expressions are a startup error.
func New(sc *scanner.Scanner, st store.Store, clk Clock, cfg Config) (*Scheduler, error) {
	if cfg.ScanCron == "" {
		cfg.ScanCron = "0 * * * *"
	}
	if cfg.CleanupCron == "" {
		cfg.CleanupCron = "0 2 * * *"
	}
	if cfg.HealthCron == "" {
		cfg.HealthCron = "0 */6 * * *"
	}
	if cfg.RetentionDays <= 0 {
		cfg.RetentionDays = 30
	}
	if clk == nil {
		clk = NewRealClock()
	}

	scanSched, err := cron.ParseStandard(cfg.ScanCron)
	if err != nil {
		return nil, fmt.Errorf("parse scan cron %q: %w", cfg.ScanCron, err)
	}
	cleanupSched, err := cron.ParseStandard(cfg.CleanupCron)
	if err != nil {
		return nil, fmt.Errorf("parse cleanup cron %q: %w", cfg.CleanupCron, err)
	}
	healthSched, err := cron.ParseStandard(cfg.HealthCron)
	if err != nil {
		return nil, fmt.Errorf("parse health cron %q: %w", cfg.HealthCron, err)
	}

	s := &Scheduler{
		scanner:      sc,
		store:        st,
		clock:        clk,
		cfg:          cfg,
		scanSched:    scanSched,
		cleanupSched: cleanupSched,
		healthSched:  healthSched,
		state:        StateIdle,
	}

	// Derive the nominal scan interval from the schedule itself; the
	// health check flags a last scan older than twice this.
	n1 := scanSched.Next(clk.Now())
	s.scanInterval = scanSched.Next(n1).Sub(n1)

	return s, nil
}

// State returns the current lifecycle state.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Scheduler) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

// Run drives the timer loop until ctx is cancelled. Jobs due at the same
// wakeup run sequentially, scan first.
func (s *Scheduler) Run(ctx context.Context) {
	log.Printf("[INFO] scheduler started: scan %q, cleanup %q, health %q",
		s.cfg.ScanCron, s.cfg.CleanupCron, s.cfg.HealthCron)

	now := s.clock.Now()
	nextScan := s.scanSched.Next(now)
	nextCleanup := s.cleanupSched.Next(now)
	nextHealth := s.healthSched.Next(now)

	for {
		s.setState(StateSleeping)

		next := earliest(nextScan, nextCleanup, nextHealth)
		if wait := next.Sub(s.clock.Now()); wait > 0 {
			select {
			case <-ctx.Done():
				s.setState(StateIdle)
				log.Println("[INFO] scheduler stopped")
				return
			case <-s.clock.After(wait):
			}
		}

		now = s.clock.Now()
		if !now.Before(nextScan) {
			s.RunScanNow(ctx)
			nextScan = s.advance(s.scanSched, nextScan, "scan")
		}
		if !now.Before(nextCleanup) {
			s.runCleanup()
			nextCleanup = s.advance(s.cleanupSched, nextCleanup, "cleanup")
		}
		if !now.Before(nextHealth) {
			if err := s.HealthCheck(); err != nil {
				log.Printf("[WARN] health check failed: %v", err)
			}
			nextHealth = s.advance(s.healthSched, nextHealth, "health check")
		}

		if ctx.Err() != nil {
			s.setState(StateIdle)
			log.Println("[INFO] scheduler stopped")
			return
		}
	}
}

// advance computes the fire time after the one just handled. Fire times
// that passed while the job ran are dropped, not queued.
func (s *Scheduler) advance(sched cron.Schedule, fired time.Time, name string) time.Time {
	now := s.clock.Now()
	next := sched.Next(fired)
	skipped := 0
	for !next.After(now) {
		skipped++
		next = sched.Next(next)
	}
	if skipped > 0 {
		log.Printf("[WARN] %d %s trigger(s) skipped: previous job was still running", skipped, name)
	}
	return next
}

// RunScanNow executes one full scan over the portfolio plus scan list.
func (s *Scheduler) RunScanNow(ctx context.Context) {
	s.setState(StateScanning)
	defer s.setState(StateIdle)

	syms, err := s.loadSymbols()
	if err != nil {
		log.Printf("[ERROR] load symbol lists: %v", err)
		return
	}
	if len(syms) == 0 {
		log.Println("[WARN] no symbols to scan")
		return
	}

	run := s.scanner.Scan(ctx, syms)
	if ctx.Err() == nil {
		s.mu.Lock()
		s.lastScanOK = run.FinishedAt
		s.mu.Unlock()
	}
}

func (s *Scheduler) loadSymbols() ([]string, error) {
	portfolio, err := symbols.LoadPortfolio(s.cfg.PortfolioPath)
	if err != nil {
		return nil, fmt.Errorf("portfolio: %w", err)
	}
	scanList, err := symbols.LoadScanList(s.cfg.ScanListPath, portfolio)
	if err != nil {
		return nil, fmt.Errorf("scan list: %w", err)
	}
	return append(portfolio, scanList...), nil
}

func (s *Scheduler) runCleanup() {
	deleted, err := s.store.Cleanup(s.cfg.RetentionDays)
	if err != nil {
		log.Printf("[ERROR] retention cleanup: %v", err)
		return
	}
	log.Printf("[INFO] retention cleanup: %d records older than %d days deleted", deleted, s.cfg.RetentionDays)
}

// HealthCheck verifies the store is reachable, the symbol list is usable,
// and the last successful scan is not older than twice the scan interval.
// A failure is reported, never fatal.
func (s *Scheduler) HealthCheck() error {
	stats, err := s.store.Stats()
	if err != nil {
		metrics.HealthCheckFailures.Inc()
		return fmt.Errorf("store unreachable: %w", err)
	}
	metrics.StoreRecords.Set(float64(stats.TotalRecords))

	syms, err := s.loadSymbols()
	if err != nil {
		metrics.HealthCheckFailures.Inc()
		return fmt.Errorf("symbol list: %w", err)
	}
	if len(syms) == 0 {
		metrics.HealthCheckFailures.Inc()
		return fmt.Errorf("symbol list is empty")
	}

	s.mu.Lock()
	lastScan := s.lastScanOK
	s.mu.Unlock()
	if !lastScan.IsZero() {
		if age := s.clock.Now().Sub(lastScan); age > 2*s.scanInterval {
			metrics.HealthCheckFailures.Inc()
			return fmt.Errorf("last successful scan is %v old (limit %v)", age.Round(time.Second), 2*s.scanInterval)
		}
	}

	log.Printf("[INFO] health check ok: %d records, %d distinct symbols, %d symbols configured, store %.2f MB",
		stats.TotalRecords, stats.DistinctSymbols, len(syms), float64(stats.SizeBytes)/(1024*1024))
	return nil
}

func earliest(ts ...time.Time) time.Time {
	min := ts[0]
	for _, t := range ts[1:] {
		if t.Before(min) {
			min = t
		}
	}
	return min
}
