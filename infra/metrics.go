package infra

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"

	"github.com/tranvu/cinesync/config"
)

// InitMetrics wires Go runtime metrics into an OTLP periodic exporter.
// Returns nil when no OTLP endpoint is configured.
func InitMetrics(cfg *config.EnvConfig) (*sdkmetric.MeterProvider, error) {
	if cfg.OTLP.Endpoint == "" {
		return nil, nil
	}

	exporter, err := otlpmetrichttp.New(context.Background(),
		otlpmetrichttp.WithEndpoint(cfg.OTLP.Endpoint),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OTLP metric exporter: %w", err)
	}

	res := resource.NewSchemaless(
		attribute.String("service.name", cfg.OTLP.ServiceName),
		attribute.String("deployment.environment", cfg.Environment.Mode),
	)

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(provider)

	if err := runtime.Start(runtime.WithMinimumReadMemStatsInterval(15 * time.Second)); err != nil {
		return nil, fmt.Errorf("failed to start runtime instrumentation: %w", err)
	}

	return provider, nil
}
