package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Submission outcomes.
const (
	OutcomeSaved    = "saved"
	OutcomeInvalid  = "invalid"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

type Metrics struct {
	TreeSubmissions    *prometheus.CounterVec
	ValidationFailures *prometheus.CounterVec
	SaveSeconds        prometheus.Histogram
	GeocodeSeconds     *prometheus.HistogramVec
	GeocodeAPIErrors   *prometheus.CounterVec
	GeocodeCache       *prometheus.CounterVec
	EventsPublished    *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		TreeSubmissions: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "treemap_tree_submissions_total",
			Help: "Total number of tree submissions by outcome.",
		}, []string{"outcome"}),
		ValidationFailures: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "treemap_validation_failures_total",
			Help: "Total number of cross-field validation failures by kind.",
		}, []string{"kind"}),
		SaveSeconds: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "treemap_tree_save_duration_seconds",
			Help:    "Duration of assembling and persisting a tree record.",
			Buckets: prometheus.DefBuckets,
		}),
		GeocodeSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "treemap_geocode_request_duration_seconds",
			Help:    "Duration of requests to the geocoding provider.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		GeocodeAPIErrors: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "treemap_geocode_api_errors_total",
			Help: "Total number of errors received from the geocoding provider.",
		}, []string{"provider"}),
		GeocodeCache: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "treemap_geocode_cache_lookups_total",
			Help: "Geocode cache lookups by result.",
		}, []string{"result"}),
		EventsPublished: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "treemap_events_published_total",
			Help: "Tree events handed to the broker by status.",
		}, []string{"status"}),
	}
}

// RecordGeocodeCache counts a geocode cache lookup.
func (m *Metrics) RecordGeocodeCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.GeocodeCache.WithLabelValues(result).Inc()
}
