package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	Generations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rihla_generations_total",
			Help: "Itinerary generations by path (external or fallback)",
		},
		[]string{"path"},
	)
	ExternalFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rihla_external_failures_total",
			Help: "Failed external generation calls by reason",
		},
		[]string{"reason"},
	)
	GenerationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "rihla_generation_seconds",
			Help:    "Time spent producing a plan, catalog reads included",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 20, 45, 60},
		},
	)
	SweptItineraries = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rihla_swept_itineraries_total",
			Help: "Expired temporary itineraries deleted by the sweeper",
		},
	)
)

func init() {
	prometheus.MustRegister(Generations)
	prometheus.MustRegister(ExternalFailures)
	prometheus.MustRegister(GenerationSeconds)
	prometheus.MustRegister(SweptItineraries)
}
