package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/smallbiznis/kstore/internal/observability/metrics"
	"github.com/smallbiznis/kstore/internal/observability/tracing"
	"go.uber.org/fx"
)

var Module = fx.Module("observability",
	fx.Provide(
		LoadConfig,
		provideMetricsConfig,
		metrics.NewRegistry,
		func(r *prometheus.Registry) prometheus.Registerer { return r },
		func(r *prometheus.Registry) prometheus.Gatherer { return r },
		metrics.New,
		metrics.NewHTTPMetrics,
	),
	tracing.Module,
)

func provideMetricsConfig(cfg Config) metrics.Config {
	return metrics.Config{
		ServiceName: cfg.ServiceName,
		Environment: cfg.Environment,
	}
}
