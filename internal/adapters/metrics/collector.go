package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bnema/platform-intake/internal/domain"
	"github.com/bnema/platform-intake/internal/ports"
)

const namespace = "intake"

type Collector struct {
	registerer prometheus.Registerer

	RecordsTotal    *prometheus.CounterVec
	PublishTotal    *prometheus.CounterVec
	PublishDuration *prometheus.HistogramVec

	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge
}

var _ ports.IntakeMetrics = (*Collector)(nil)

func NewWithRegistry(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		registerer: reg,
		RecordsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "records_total",
				Help:      "Records submitted, by kind and result",
			},
			[]string{"kind", "result", "reason"},
		),
		PublishTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "publish_total",
				Help:      "Publish attempts by outcome and failing stage",
			},
			[]string{"outcome", "stage", "category"},
		),
		PublishDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "publish_duration_seconds",
				Help:      "Publish transaction duration in seconds",
				Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"outcome"},
		),
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "HTTP requests by method, route and status",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"method", "route"},
		),
		RequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "http_requests_in_flight",
				Help:      "HTTP requests currently being served",
			},
		),
	}
}

func (c *Collector) RecordAccepted(kind domain.Kind) {
	c.RecordsTotal.WithLabelValues(string(kind), "accepted", "").Inc()
}

func (c *Collector) RecordRejected(kind domain.Kind, reason string) {
	c.RecordsTotal.WithLabelValues(string(kind), "rejected", reason).Inc()
}

func (c *Collector) PublishFinished(result domain.PublishResult, elapsed time.Duration) {
	stage := ""
	if result.Outcome == domain.OutcomeFailed {
		stage = string(result.Stage)
	}
	c.PublishTotal.WithLabelValues(string(result.Outcome), stage, string(result.Category)).Inc()
	c.PublishDuration.WithLabelValues(string(result.Outcome)).Observe(elapsed.Seconds())
}

func (c *Collector) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	c.RequestsTotal.WithLabelValues(method, route, statusClass(status)).Inc()
	c.RequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// TrackSessions exports the live session count reported by fn.
func (c *Collector) TrackSessions(fn func() int) {
	promauto.With(c.registerer).NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Conversations currently holding state",
		},
		func() float64 { return float64(fn()) },
	)
}

func statusClass(status int) string {
	if status < 100 || status > 599 {
		return strconv.Itoa(status)
	}
	return strconv.Itoa(status/100) + "xx"
}
