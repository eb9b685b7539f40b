package blueroute

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsStartKey = "blueroute.metrics.start"

// Metrics records resolution counts and durations. Labels carry only the
// outcome; controllers come from request paths and are not bounded.
type Metrics struct {
	resolutions *prometheus.CounterVec
	duration    prometheus.Histogram
	args        prometheus.Histogram
}

// NewMetrics creates and registers the collectors under namespace.
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resolutions_total",
			Help:      "Requests routed, by outcome (resolved or halted).",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "resolution_duration_seconds",
			Help:      "Time spent in hooks and scheme evaluation.",
			Buckets:   []float64{.000001, .000005, .00001, .00005, .0001, .0005, .001, .005},
		}),
		args: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "resolution_args",
			Help:      "Positional arguments per resolved route.",
			Buckets:   prometheus.LinearBuckets(0, 1, 8),
		}),
	}

	reg.MustRegister(m.resolutions, m.duration, m.args)
	return m
}

// Attach installs the metrics hooks on r. The start hook runs before every
// Use middleware, including ones added earlier, so halted requests are
// timed too.
func (m *Metrics) Attach(r *Router) {
	r.useFirst(func(c *Context) bool {
		c.Set(metricsStartKey, time.Now())
		return true
	})

	r.Must(func(c *Context) bool {
		outcome := "halted"
		if c.Resolved() {
			outcome = "resolved"
			m.args.Observe(float64(len(c.route.args)))
		}
		m.resolutions.WithLabelValues(outcome).Inc()

		if start, ok := c.Get(metricsStartKey).(time.Time); ok {
			m.duration.Observe(time.Since(start).Seconds())
		}
		return true
	})
}
