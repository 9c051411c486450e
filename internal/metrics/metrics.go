package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "teambuilder"

// Result label values.
const (
	ResultOK        = "ok"
	ResultInvalid   = "invalid"
	ResultNotFound  = "not_found"
	ResultExhausted = "exhausted"
	ResultError     = "error"
)

// Recorder owns a private prometheus registry. All methods are safe on a nil
// receiver so components can run without telemetry.
type Recorder struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	teamSaves    *prometheus.CounterVec
	collisions   prometheus.Counter
	teamLoads    *prometheus.CounterVec
	listings     *prometheus.CounterVec
	missingIcons prometheus.Gauge
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		teamSaves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "team_saves_total",
			Help:      "Team save attempts by result.",
		}, []string{"result"}),
		collisions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "team_id_collisions_total",
			Help:      "Generated team ids that already existed.",
		}),
		teamLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "team_loads_total",
			Help:      "Team loads by result.",
		}, []string{"result"}),
		listings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_listings_total",
			Help:      "Hero catalog listings by sort mode.",
		}, []string{"sort"}),
		missingIcons: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_missing_icons",
			Help:      "Heroes without an icon in the most recent listing.",
		}),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.httpRequests,
		r.httpDuration,
		r.teamSaves,
		r.collisions,
		r.teamLoads,
		r.listings,
		r.missingIcons,
	)

	return r
}

// Handler serves the registry in the prometheus text format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

func (r *Recorder) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	if r == nil {
		return
	}
	r.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (r *Recorder) RecordTeamSave(result string) {
	if r == nil {
		return
	}
	r.teamSaves.WithLabelValues(result).Inc()
}

func (r *Recorder) RecordIDCollision() {
	if r == nil {
		return
	}
	r.collisions.Inc()
}

func (r *Recorder) RecordTeamLoad(result string) {
	if r == nil {
		return
	}
	r.teamLoads.WithLabelValues(result).Inc()
}

func (r *Recorder) RecordCatalogListing(sort string, missing int) {
	if r == nil {
		return
	}
	r.listings.WithLabelValues(sort).Inc()
	r.missingIcons.Set(float64(missing))
}
