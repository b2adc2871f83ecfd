package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics of the publish job. A nil *Metrics
// is valid and records nothing.
type Metrics struct {
	PostsTotal  *prometheus.CounterVec
	RunsTotal   *prometheus.CounterVec
	RunDuration prometheus.Histogram
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		PostsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pagepost_posts_processed_total",
			Help: "The total number of due posts processed by the publish job",
		}, []string{"result"}), // published, failed, skipped
		RunsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pagepost_publish_runs_total",
			Help: "The total number of publish job runs",
		}, []string{"result"}), // ok, error
		RunDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "pagepost_publish_run_duration_seconds",
			Help:    "Duration of publish job runs",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) IncPosts(result string) {
	if m == nil {
		return
	}
	m.PostsTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveRun(result string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.RunsTotal.WithLabelValues(result).Inc()
	m.RunDuration.Observe(elapsed.Seconds())
}
