package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of a single scenario simulation
	SimulationLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "pricing_simulation_latency_seconds",
		Help:    "Latency of scenario simulations",
		Buckets: prometheus.DefBuckets,
	})

	// Total simulations served, by kind (scenario / optimal)
	SimulationRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pricing_simulation_requests_total",
		Help: "Total number of simulation requests",
	}, []string{"kind"})

	// Duration of a full model-pair training run
	TrainingDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "pricing_training_duration_seconds",
		Help:    "Duration of demand+churn training runs",
		Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
	})

	// Total training runs, by outcome
	TrainingRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pricing_training_runs_total",
		Help: "Total number of training runs",
	}, []string{"outcome"})
)

func Init() {
	prometheus.MustRegister(
		SimulationLatency,
		SimulationRequests,
		TrainingDuration,
		TrainingRuns,
	)
}
