package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Muzammil2410/fiver-sub001/internal/platform/logger"
)

// MetricsManager holds the service's Prometheus metrics.
type MetricsManager struct {
	Registry                *prometheus.Registry
	GigSearchesTotal        prometheus.Counter
	GigWritesTotal          *prometheus.CounterVec
	OrdersCreatedTotal      prometheus.Counter
	ReviewsCreatedTotal     prometheus.Counter
	EnrichmentFailuresTotal prometheus.Counter
	SearchLatency           prometheus.Histogram
	APIErrorsTotal          *prometheus.CounterVec
}

// NewMetricsManager initializes and registers the custom metrics on a private
// registry so tests can construct managers independently.
func NewMetricsManager(serviceName string) *MetricsManager {
	registry := prometheus.NewRegistry()

	gigSearchesTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "gig_searches_total",
		Help:      "Total number of gig search requests served.",
	})
	gigWritesTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "gig_writes_total",
		Help:      "Total number of gig mutations by operation.",
	}, []string{"operation"})
	ordersCreatedTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "orders_created_total",
		Help:      "Total number of orders created.",
	})
	reviewsCreatedTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "reviews_created_total",
		Help:      "Total number of reviews created.",
	})
	enrichmentFailuresTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "order_count_enrichment_failures_total",
		Help:      "Order-count lookups that failed and defaulted to zero.",
	})
	searchLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: serviceName,
		Name:      "gig_search_latency_seconds",
		Help:      "Latency of the gig search pipeline.",
		Buckets:   prometheus.DefBuckets,
	})
	apiErrorsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "api_errors_total",
		Help:      "Total number of error responses by route and status code.",
	}, []string{"route", "status"})

	registry.MustRegister(
		gigSearchesTotal,
		gigWritesTotal,
		ordersCreatedTotal,
		reviewsCreatedTotal,
		enrichmentFailuresTotal,
		searchLatency,
		apiErrorsTotal,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)

	return &MetricsManager{
		Registry:                registry,
		GigSearchesTotal:        gigSearchesTotal,
		GigWritesTotal:          gigWritesTotal,
		OrdersCreatedTotal:      ordersCreatedTotal,
		ReviewsCreatedTotal:     reviewsCreatedTotal,
		EnrichmentFailuresTotal: enrichmentFailuresTotal,
		SearchLatency:           searchLatency,
		APIErrorsTotal:          apiErrorsTotal,
	}
}

// StartMetricsServer exposes /metrics on its own port. Returns when the
// server stops.
func StartMetricsServer(port string, appLogger *logger.Logger, registry *prometheus.Registry) error {
	if port == "" {
		appLogger.Info("Prometheus metrics server port not configured, server will not start")
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	appLogger.Info("Prometheus metrics server starting", zap.String("port", port), zap.String("path", "/metrics"))

	server := &http.Server{
		Addr:    ":" + port,
		Handler: mux,
	}

	return server.ListenAndServe()
}
