// Package metrics provides Prometheus collectors for the serialization
// runtime: batches built by the component codecs, codec failures by error
// code, and messages and bytes written by the log encoder.
//
// # Basic Usage
//
//	// Count a serialized component batch
//	metrics.BatchesSerialized.WithLabelValues("rerun.components.Blob").Inc()
//
//	// Time an encode
//	timer := metrics.NewTimer("arrow_msg")
//	payload, err := encodeArrow(record)
//	timer.ObserveDuration()
//
// Metrics are registered on the default Prometheus registry at package
// init, so importing the package is enough to expose them through Handler.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "rerun"

var (
	// BatchesSerialized counts component batches built by a codec.
	// Labels: component (component type identifier)
	BatchesSerialized = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batches_serialized_total",
			Help:      "Total number of component batches serialized to arrow arrays",
		},
		[]string{"component"},
	)

	// InstancesSerialized counts component instances written into batches.
	// Labels: component
	InstancesSerialized = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "instances_serialized_total",
			Help:      "Total number of component instances serialized",
		},
		[]string{"component"},
	)

	// SerializationErrors counts failed codec and assembly operations.
	// Labels: code (error type, e.g. partition_length_mismatch)
	SerializationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "serialization_errors_total",
			Help:      "Total number of serialization failures by error code",
		},
		[]string{"code"},
	)

	// MessagesEncoded counts log messages written by the encoder.
	// Labels: kind (set_store_info, arrow_msg, blueprint_activation_command, end)
	MessagesEncoded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_encoded_total",
			Help:      "Total number of log messages encoded",
		},
		[]string{"kind"},
	)

	// MessagesDecoded counts log messages read by the decoders.
	// Labels: kind
	MessagesDecoded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_decoded_total",
			Help:      "Total number of log messages decoded",
		},
		[]string{"kind"},
	)

	// EncodedBytes counts payload bytes written after compression.
	// Labels: compression (off, lz4, zstd)
	EncodedBytes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "encoded_bytes_total",
			Help:      "Total number of encoded payload bytes written",
		},
		[]string{"compression"},
	)

	// EncodeDuration tracks the time spent serializing one message payload.
	// Labels: kind
	EncodeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "encode_duration_seconds",
			Help:      "Time spent encoding a single log message",
			Buckets: []float64{
				1e-6, // 1μs - Small control messages
				1e-5, // 10μs
				1e-4, // 100μs - Small chunks
				1e-3, // 1ms
				1e-2, // 10ms - Large chunks
				1e-1, // 100ms - Compressed video blobs
				1,
			},
		},
		[]string{"kind"},
	)
)

// Timer provides a simple timing mechanism for measuring operation durations.
// It captures the start time on creation and reports elapsed time on stop.
type Timer struct {
	start time.Time
	kind  string
}

// NewTimer creates a new timer for the given message kind and starts timing
// immediately.
func NewTimer(kind string) *Timer {
	return &Timer{
		start: time.Now(),
		kind:  kind,
	}
}

// Stop returns the elapsed duration since creation.
func (t *Timer) Stop() time.Duration {
	return time.Since(t.start)
}

// ObserveDuration records the elapsed time in EncodeDuration and returns it.
func (t *Timer) ObserveDuration() time.Duration {
	d := t.Stop()
	EncodeDuration.WithLabelValues(t.kind).Observe(d.Seconds())
	return d
}

// Handler returns an HTTP handler exposing the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
