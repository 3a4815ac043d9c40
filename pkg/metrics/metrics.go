package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	KafkaMessagesConsumed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_consumed_total",
			Help: "Number of messages fetched from Kafka",
		},
		[]string{"topic"},
	)
	KafkaMessagesProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_processed_total",
			Help: "Number of messages processed successfully",
		},
		[]string{"topic"},
	)
	KafkaMessagesFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_failed_total",
			Help: "Number of messages failed to process",
		},
		[]string{"topic"},
	)
	KafkaOffsetsCommitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_offsets_committed_total",
			Help: "Number of per-message offset commits",
		},
		[]string{"topic"},
	)
)

var (
	DispatcherQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "dispatcher_queue_depth",
			Help: "Records waiting in the dispatcher queue",
		},
	)
	DispatcherInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "dispatcher_in_flight",
			Help: "Records currently being processed by workers",
		},
	)
	FailureRecordsPersisted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "failure_records_persisted_total",
			Help: "FailureRecords written to the error sink",
		},
	)
)

var (
	// HealthState: 0 — healthy, 1 — degraded, 2 — down.
	HealthState = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "dependency_health_state",
			Help: "Dependency health state (0 healthy, 1 degraded, 2 down)",
		},
	)
	ConsumersPaused = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "consumers_paused",
			Help: "Number of currently paused consumers",
		},
	)
	HealthProbeFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "health_probe_failures_total",
			Help: "Failed dependency health probes",
		},
	)
)

var (
	CacheOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Cache operations",
		},
		[]string{"op"}, // hit|miss|evicted|expired
	)
	CacheSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Number of items currently in cache",
		},
	)
)

// MustRegister — регистрирует все метрики; повторный вызов безопасен
// (повторная регистрация того же коллектора — не ошибка).
func MustRegister() {
	collectors := []prometheus.Collector{
		KafkaMessagesConsumed, KafkaMessagesProcessed, KafkaMessagesFailed, KafkaOffsetsCommitted,
		DispatcherQueueDepth, DispatcherInFlight, FailureRecordsPersisted,
		HealthState, ConsumersPaused, HealthProbeFailures,
		CacheOps, CacheSize,
	}
	for _, c := range collectors {
		if err := prometheus.Register(c); err != nil {
			var already prometheus.AlreadyRegisteredError
			if errors.As(err, &already) {
				continue
			}
			panic(err)
		}
	}
}
