package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var namespaceQueryFailuresTotal = promauto.With(prometheus.DefaultRegisterer).NewCounterVec(
	prometheus.CounterOpts{
		Name: "computeinfo_namespace_query_failures_total",
		Help: "Total number of namespace pod list queries that failed and were excluded from the inventory.",
	},
	[]string{"namespace"},
)

var podNormalizationFailuresTotal = promauto.With(prometheus.DefaultRegisterer).NewCounterVec(
	prometheus.CounterOpts{
		Name: "computeinfo_pod_normalization_failures_total",
		Help: "Total number of pods skipped because a required field could not be extracted.",
	},
	[]string{"namespace", "reason"},
)

var collectDurationSeconds = promauto.With(prometheus.DefaultRegisterer).NewHistogram(
	prometheus.HistogramOpts{
		Name:    "computeinfo_collect_duration_seconds",
		Help:    "Duration of a full multi-namespace inventory collection.",
		Buckets: prometheus.DefBuckets,
	},
)

var requestedCPUCores = promauto.With(prometheus.DefaultRegisterer).NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "computeinfo_requested_cpu_cores",
		Help: "Requested CPU cores of running pods at the last scheduled snapshot.",
	},
	[]string{"namespace", "maintainer"},
)

var requestedMemoryBytes = promauto.With(prometheus.DefaultRegisterer).NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "computeinfo_requested_memory_bytes",
		Help: "Requested memory bytes of running pods at the last scheduled snapshot.",
	},
	[]string{"namespace", "maintainer"},
)

var snapshotLastSuccessTimestamp = promauto.With(prometheus.DefaultRegisterer).NewGauge(
	prometheus.GaugeOpts{
		Name: "computeinfo_snapshot_last_success_timestamp_seconds",
		Help: "Unix time of the last successful scheduled snapshot.",
	},
)

// RecordNamespaceQueryFailure increments the counter when a namespace could not be listed.
func RecordNamespaceQueryFailure(namespace string) {
	namespaceQueryFailuresTotal.WithLabelValues(namespace).Inc()
}

// RecordPodNormalizationFailure increments the counter when a pod is skipped during normalization.
func RecordPodNormalizationFailure(namespace, reason string) {
	podNormalizationFailuresTotal.WithLabelValues(namespace, reason).Inc()
}

// ObserveCollectDuration records how long a collection took.
func ObserveCollectDuration(d time.Duration) {
	collectDurationSeconds.Observe(d.Seconds())
}

// ResetRequestedResources drops all requested resource series so that
// namespace/maintainer pairs that disappeared are not reported anymore.
func ResetRequestedResources() {
	requestedCPUCores.Reset()
	requestedMemoryBytes.Reset()
}

// SetRequestedResources publishes the requested resources of one namespace/maintainer pair.
func SetRequestedResources(namespace, maintainer string, cpuCores, memoryBytes float64) {
	requestedCPUCores.WithLabelValues(namespace, maintainer).Set(cpuCores)
	requestedMemoryBytes.WithLabelValues(namespace, maintainer).Set(memoryBytes)
}

// RecordSnapshotSuccess stores the completion time of a successful snapshot.
func RecordSnapshotSuccess(t time.Time) {
	snapshotLastSuccessTimestamp.Set(float64(t.Unix()))
}
