// Package metrics exposes Prometheus collectors for the URL shortener service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tinyurl"

// Metrics holds the collectors updated by the HTTP layer.
type Metrics struct {
	ShortURLsCreated prometheus.Counter
	ShortURLsDeleted prometheus.Counter
	Redirects        prometheus.Counter
	RedirectMisses   prometheus.Counter

	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	gatherer prometheus.Gatherer
}

// New registers the service collectors on reg. entries is sampled on every
// scrape to report the registry size.
func New(reg *prometheus.Registry, entries func() int) (*Metrics, error) {
	m := &Metrics{
		ShortURLsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shorturls_created_total",
			Help:      "Short URLs created.",
		}),
		ShortURLsDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shorturls_deleted_total",
			Help:      "Short URLs deleted.",
		}),
		Redirects: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "redirects_total",
			Help:      "Successful redirects.",
		}),
		RedirectMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "redirect_misses_total",
			Help:      "Redirect requests for unknown codes.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		gatherer: reg,
	}

	collectors := []prometheus.Collector{
		m.ShortURLsCreated,
		m.ShortURLsDeleted,
		m.Redirects,
		m.RedirectMisses,
		m.requests,
		m.duration,
	}
	if entries != nil {
		collectors = append(collectors, prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "registry_entries",
			Help:      "Short codes currently registered.",
		}, func() float64 { return float64(entries()) }))
	}

	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Middleware records request count and latency per matched route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		m.requests.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.duration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
