package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TriggerBuildDuration tracks the latency of call-trigger builds
	TriggerBuildDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "call_trigger_build_duration_seconds",
			Help: "Duration of call trigger build requests in seconds",
			Buckets: []float64{
				0.001, // 1ms
				0.005, // 5ms
				0.01,  // 10ms
				0.05,  // 50ms
				0.1,   // 100ms
				0.25,  // 250ms
				0.5,   // 500ms
				1.0,   // 1s
				2.5,   // 2.5s
				5.0,   // 5s
			},
		},
		[]string{"trigger_type", "status"}, // status: success or failure
	)

	// PriceDropBatches counts price-drop batch dispatches
	PriceDropBatches = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "price_drop_batches_total",
			Help: "Number of price drop batches dispatched",
		},
	)

	// PriceDropCalls counts per-customer call builds inside price-drop batches
	PriceDropCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "price_drop_calls_total",
			Help: "Per-customer call builds within price drop batches",
		},
		[]string{"status"}, // success or failure
	)
)

// RecordTriggerBuild records one call-trigger build attempt
func RecordTriggerBuild(triggerType, status string, duration float64) {
	TriggerBuildDuration.WithLabelValues(triggerType, status).Observe(duration)
}
