package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry served on /metrics.
	Registry = prometheus.NewRegistry()

	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)

	// Generations counts itinerary generations by outcome (ok, no_venues, invalid).
	Generations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "tripgen_itinerary_generations_total", Help: "Itinerary generations by outcome."},
		[]string{"outcome"},
	)
	GenerationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "tripgen_itinerary_generation_seconds", Help: "End-to-end itinerary generation latency.", Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20}},
	)
	// PlaceSearches counts itinerary place queries by status (ok, error),
	// however they were served.
	PlaceSearches = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "tripgen_place_searches_total", Help: "Places searches by status."},
		[]string{"status"},
	)
	// PlacesCacheLookups counts search cache reads by result (hit, miss).
	PlacesCacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "tripgen_places_cache_lookups_total", Help: "Places search cache lookups by result."},
		[]string{"result"},
	)
	PartitionFallbacks = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "tripgen_partition_fallbacks_total", Help: "Times clustering fell back to round-robin."},
	)
)

var regOnce sync.Once

// RegisterDefault registers every collector on Registry. Safe to call more
// than once.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(Generations)
		Registry.MustRegister(GenerationSeconds)
		Registry.MustRegister(PlaceSearches)
		Registry.MustRegister(PlacesCacheLookups)
		Registry.MustRegister(PartitionFallbacks)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}
