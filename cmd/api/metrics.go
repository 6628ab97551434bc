package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/telcoshield/simswap-risk-engine/internal/infrastructure/config"
)

// Prometheus scrape surface for the risk engine. Domain metrics flow through
// the OTel registry; this endpoint carries process-level metrics and build
// identity for fleet dashboards.

var (
	buildInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "ssre",
			Subsystem: "api",
			Name:      "build_info",
			Help:      "Build metadata, value is always 1",
		},
		[]string{"version", "environment"},
	)

	startTime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "ssre",
			Subsystem: "api",
			Name:      "start_time_seconds",
			Help:      "Unix time the process started",
		},
	)
)

// startMetricsServer serves /metrics on the metrics port
func startMetricsServer(cfg *config.Config, logger *slog.Logger) {
	buildInfo.WithLabelValues(cfg.Version, cfg.Environment).Set(1)
	startTime.Set(float64(time.Now().Unix()))

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	addr := fmt.Sprintf(":%d", cfg.Server.MetricsPort)
	go func() {
		logger.Info("starting metrics server", slog.String("address", addr))
		if err := http.ListenAndServe(addr, mux); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server failed", slog.String("error", err.Error()))
		}
	}()
}
