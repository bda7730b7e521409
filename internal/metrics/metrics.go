// Package metrics exposes Prometheus instrumentation for catalog fetches.
package metrics

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "bestiary"

// Metrics holds the collectors on a private registry.
// It satisfies catalog.Observer.
type Metrics struct {
	Registry *prometheus.Registry

	pageFetches   *prometheus.CounterVec
	detailFetches *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	itemsLoaded   prometheus.Gauge
}

// New creates and registers all collectors, plus the Go runtime collectors.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		pageFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "page_fetch_total",
			Help:      "Catalog page fetches by result.",
		}, []string{"result"}),
		detailFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "detail_fetch_total",
			Help:      "Item detail fetches by result.",
		}, []string{"result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Fetch latency by operation.",
			Buckets:   prometheus.ExponentialBuckets(0.025, 2, 10),
		}, []string{"op"}),
		itemsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "items_loaded",
			Help:      "Items accumulated in the current session.",
		}),
	}

	m.Registry.MustRegister(
		m.pageFetches,
		m.detailFetches,
		m.duration,
		m.itemsLoaded,
		collectors.NewGoCollector(),
	)
	return m
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// PageFetched records a page fetch.
func (m *Metrics) PageFetched(ref string, items int, dur time.Duration, err error) {
	m.pageFetches.WithLabelValues(result(err)).Inc()
	m.duration.WithLabelValues("page").Observe(dur.Seconds())
}

// DetailFetched records a detail fetch.
func (m *Metrics) DetailFetched(url string, dur time.Duration, err error) {
	m.detailFetches.WithLabelValues(result(err)).Inc()
	m.duration.WithLabelValues("detail").Observe(dur.Seconds())
}

// SetItemsLoaded publishes the accumulated item count.
func (m *Metrics) SetItemsLoaded(n int) {
	m.itemsLoaded.Set(float64(n))
}

// Handler serves the registry at /metrics.
func (m *Metrics) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	return r
}

// Serve listens on addr until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	srv := &http.Server{Handler: m.Handler(), ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
