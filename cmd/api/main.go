package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"go.uber.org/zap"

	"github.com/telcoshield/simswap-risk-engine/internal/api/rest"
	"github.com/telcoshield/simswap-risk-engine/internal/infrastructure/carrier"
	"github.com/telcoshield/simswap-risk-engine/internal/infrastructure/config"
	"github.com/telcoshield/simswap-risk-engine/internal/infrastructure/telemetry"
	"github.com/telcoshield/simswap-risk-engine/internal/metrics"
	"github.com/telcoshield/simswap-risk-engine/internal/service/assessment"
)

func main() {
	var configPath = flag.String("config", "", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := telemetry.SetupLogger(cfg.LogLevel)

	ctx := context.Background()
	telConfig := &telemetry.Config{
		ServiceName:    "simswap-risk-engine",
		ServiceVersion: cfg.Version,
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.Telemetry.OTLPEndpoint,
		Enabled:        cfg.Telemetry.Enabled,
		SamplingRate:   cfg.Telemetry.SamplingRate,
		ExportTimeout:  cfg.Telemetry.ExportTimeout,
		BatchTimeout:   cfg.Telemetry.BatchTimeout,
	}

	provider, err := telemetry.InitializeOpenTelemetry(ctx, telConfig)
	if err != nil {
		log.Fatalf("Failed to initialize telemetry: %v", err)
	}
	defer func() {
		if err := provider.Shutdown(ctx); err != nil {
			log.Printf("Failed to shutdown telemetry: %v", err)
		}
	}()

	registry, err := metrics.NewRegistry("simswap-risk-engine")
	if err != nil {
		log.Fatalf("Failed to create metrics registry: %v", err)
	}

	gateway, err := buildGateway(cfg)
	if err != nil {
		log.Fatalf("Failed to create carrier gateway: %v", err)
	}
	gateway = carrier.NewInstrumentedGateway(gateway, registry, cfg.Carrier.Mode)

	svc := assessment.NewService(gateway, assessment.Config{
		EvaluatorTimeout: cfg.Assessment.EvaluatorTimeout,
		HomeCountry:      cfg.Assessment.HomeCountry,
		HomeIPPrefix:     cfg.Assessment.HomeIPPrefix,
	}, logger, registry)

	startMetricsServer(cfg, logger)

	server := rest.NewServer(cfg, svc, registry, logger)
	if err := server.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// buildGateway selects the carrier intelligence source from configuration
func buildGateway(cfg *config.Config) (carrier.Gateway, error) {
	zapLogger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}

	switch cfg.Carrier.Mode {
	case "http":
		return carrier.NewHTTPGateway(&cfg.Carrier, zapLogger)
	case "redis":
		return carrier.NewRedisStore(&cfg.Carrier.Redis, zapLogger)
	case "static":
		return carrier.NewStaticStore(), nil
	default:
		return nil, fmt.Errorf("unknown carrier mode %q", cfg.Carrier.Mode)
	}
}
