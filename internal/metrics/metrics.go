package metrics

import (
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ScansTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "signalsentry_scans_total",
		Help: "Number of completed scan runs.",
	})

	SymbolFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "signalsentry_symbol_failures_total",
		Help: "Number of per-symbol scan failures.",
	})

	SignalsGenerated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "signalsentry_signals_total",
		Help: "Number of signal records generated, by signal kind.",
	}, []string{"signal"})

	ScanDuration = prometheus.NewSummary(prometheus.SummaryOpts{
		Name: "signalsentry_scan_duration_seconds",
		Help: "Wall time of scan runs.",
	})

	LastScanTime = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "signalsentry_last_scan_timestamp_seconds",
		Help: "Unix time of the last successful scan run.",
	})

	StoreRecords = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "signalsentry_store_records",
		Help: "Total signal records currently in the store.",
	})

	HealthCheckFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "signalsentry_health_check_failures_total",
		Help: "Number of failed health checks.",
	})
)

// Register registers all collectors with the default registry.
func Register() {
	prometheus.MustRegister(ScansTotal)
	prometheus.MustRegister(SymbolFailures)
	prometheus.MustRegister(SignalsGenerated)
	prometheus.MustRegister(ScanDuration)
	prometheus.MustRegister(LastScanTime)
	prometheus.MustRegister(StoreRecords)
	prometheus.MustRegister(HealthCheckFailures)
}

// Serve exposes /metrics on addr in a background goroutine.
func Serve(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Printf("[ERROR] metrics server: %v", err)
		}
	}()
	log.Printf("[INFO] metrics available at %s/metrics", addr)
}
