package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"SignalSentry/internal/calendar"
	"SignalSentry/internal/classifier"
	"SignalSentry/internal/config"
	"SignalSentry/internal/indicator"
	"SignalSentry/internal/metrics"
	"SignalSentry/internal/notifier"
	"SignalSentry/internal/provider"
	"SignalSentry/internal/scanner"
	"SignalSentry/internal/scheduler"
	"SignalSentry/internal/store"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] SignalSentry starting...")

	once := flag.Bool("once", false, "run a single scan and exit")
	flag.Parse()

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init providers
	yahoo := provider.NewYahooProvider(cfg.Proxy)
	log.Printf("[INFO] data source: %s", yahoo.Name())
	checker := calendar.NewChecker(yahoo, cfg.Market.MIC, nil)

	// Init indicator engine
	eng, err := indicator.NewEngine(indicator.Config{
		RSIPeriod:  cfg.Indicators.RSIPeriod,
		MACDFast:   cfg.Indicators.MACDFast,
		MACDSlow:   cfg.Indicators.MACDSlow,
		MACDSignal: cfg.Indicators.MACDSignal,
	})
	if err != nil {
		log.Fatalf("[FATAL] init indicator engine: %v", err)
	}

	// Init store
	var st store.Store
	if cfg.Database.SQLitePath != "" {
		ss, err := store.NewSQLiteStore(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite store failed, using noop: %v", err)
			st = store.NewNoopStore()
		} else {
			st = ss
			defer ss.Close()
		}
	} else {
		st = store.NewNoopStore()
	}

	// Init notifier
	var nt notifier.Notifier
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != "" {
		nt = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		log.Println("[INFO] Telegram notifications enabled")
	} else {
		nt = notifier.NewNoopNotifier()
		log.Println("[INFO] Telegram not configured, notifications disabled")
	}

	// Init scanner
	sc := scanner.New(yahoo, checker, eng, st, nt, classifier.Thresholds{
		Oversold:   cfg.Indicators.Oversold,
		Overbought: cfg.Indicators.Overbought,
	})
	sc.HistoryDays = cfg.Market.HistoryDays

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched, err := scheduler.New(sc, st, nil, scheduler.Config{
		ScanCron:      cfg.Schedule.ScanCron,
		CleanupCron:   cfg.Schedule.CleanupCron,
		HealthCron:    cfg.Schedule.HealthCron,
		RetentionDays: cfg.Database.RetentionDays,
		PortfolioPath: cfg.Symbols.PortfolioFile,
		ScanListPath:  cfg.Symbols.ScanFile,
	})
	if err != nil {
		log.Fatalf("[FATAL] init scheduler: %v", err)
	}

	if *once {
		log.Println("[INFO] running single scan")
		sched.RunScanNow(ctx)
		return
	}

	metrics.Register()
	if cfg.Metrics.Addr != "" {
		metrics.Serve(cfg.Metrics.Addr)
	}

	// Initial health check (non-fatal, matches the periodic behavior)
	if err := sched.HealthCheck(); err != nil {
		log.Printf("[WARN] initial health check failed: %v", err)
	}

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing scan now")
		sched.RunScanNow(ctx)
	}

	go sched.Run(ctx)
	log.Println("[INFO] SignalSentry is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] SignalSentry stopped")
}
