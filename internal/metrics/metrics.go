package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds the service's metric set on a dedicated prometheus registry.
type Registry struct {
	reg *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	MRPRunsTotal    *prometheus.CounterVec
	MRPRunDuration  prometheus.Histogram
	PlannedOrders   prometheus.Counter
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "plm_http_requests_total",
		Help: "HTTP requests by method, path and status.",
	}, []string{"method", "path", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "plm_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})
	mrpRuns := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "plm_mrp_runs_total",
		Help: "MRP runs by outcome.",
	}, []string{"status"})
	mrpDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "plm_mrp_run_duration_seconds",
		Help:    "MRP run execution time.",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 15, 60},
	})
	plannedOrders := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "plm_mrp_planned_orders_total",
		Help: "Planned orders generated across all runs.",
	})

	r.MustRegister(requests, duration, mrpRuns, mrpDuration, plannedOrders)
	return &Registry{
		reg:             r,
		RequestsTotal:   requests,
		RequestDuration: duration,
		MRPRunsTotal:    mrpRuns,
		MRPRunDuration:  mrpDuration,
		PlannedOrders:   plannedOrders,
	}
}

func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

// Middleware records per-request counters and latency. The route template is
// used as the path label so IDs do not explode cardinality.
func (r *Registry) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		r.RequestsTotal.WithLabelValues(
			c.Request.Method, path, strconv.Itoa(c.Writer.Status()),
		).Inc()
		r.RequestDuration.WithLabelValues(c.Request.Method, path).
			Observe(time.Since(start).Seconds())
	}
}

// ObserveMRPRun records the outcome of one planning run.
func (r *Registry) ObserveMRPRun(status string, durationMS int64, orders int) {
	r.MRPRunsTotal.WithLabelValues(status).Inc()
	r.MRPRunDuration.Observe(float64(durationMS) / 1000)
	r.PlannedOrders.Add(float64(orders))
}
