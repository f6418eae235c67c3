package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Geocoder call outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeNoResult = "no_result"
	OutcomeError    = "error"
)

// Metrics holds the Prometheus collectors of the server. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	GeocoderCalls       *prometheus.CounterVec
	GeocoderDuration    *prometheus.HistogramVec
	GeocodeCacheLookups *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "georegions_http_requests_total",
			Help: "Total number of HTTP requests by route, method and status code",
		}, []string{"route", "method", "code"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "georegions_http_request_duration_seconds",
			Help:    "HTTP request latency by route and method",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		GeocoderCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "georegions_geocoder_calls_total",
			Help: "Total number of geocoding provider calls by direction and outcome",
		}, []string{"direction", "outcome"}),
		GeocoderDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "georegions_geocoder_call_duration_seconds",
			Help:    "Geocoding provider latency including retries",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"direction"}),
		GeocodeCacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "georegions_geocode_cache_lookups_total",
			Help: "Geocode cache lookups by result",
		}, []string{"result"}),
	}
}

// ObserveHTTPRequest records one served request.
func (m *Metrics) ObserveHTTPRequest(route, method string, code int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(route, method, strconv.Itoa(code)).Inc()
	m.HTTPRequestDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// ObserveGeocoderCall records one provider lookup.
func (m *Metrics) ObserveGeocoderCall(direction, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.GeocoderCalls.WithLabelValues(direction, outcome).Inc()
	m.GeocoderDuration.WithLabelValues(direction).Observe(elapsed.Seconds())
}

// IncrementCacheHit counts a geocode cache hit.
func (m *Metrics) IncrementCacheHit() {
	if m == nil {
		return
	}
	m.GeocodeCacheLookups.WithLabelValues("hit").Inc()
}

// IncrementCacheMiss counts a geocode cache miss.
func (m *Metrics) IncrementCacheMiss() {
	if m == nil {
		return
	}
	m.GeocodeCacheLookups.WithLabelValues("miss").Inc()
}
