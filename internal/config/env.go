package config

import "time"

// Env key constants. All service configuration env vars use COMPUTEINFO_ prefix;
// duration values support explicit units (e.g. 5m, 40s, 2h).

// Path to kubeconfig file. If unset, KUBECONFIG is used as fallback.
const envKeyKubeConfig = "COMPUTEINFO_KUBECONFIG"

// Kubernetes API server URL. If unset, KUBERNETES_MASTER is used as fallback.
const envKeyKubeMaster = "COMPUTEINFO_KUBE_MASTER"

// Log level: debug, info, warn, error.
const envKeyLogLevel = "COMPUTEINFO_LOG_LEVEL"

// Log format: json or text.
const envKeyLogFormat = "COMPUTEINFO_LOG_FORMAT"

// Port for the inventory API and health endpoints.
const envKeyHTTPPort = "COMPUTEINFO_HTTP_PORT"

// Max time to write an inventory API response. Units: s, m (e.g. 60s).
const envKeyHTTPWriteTimeout = "COMPUTEINFO_HTTP_WRITE_TIMEOUT"

// File whose presence makes the service terminate right after start.
const envKeyTerminationFile = "COMPUTEINFO_TERMINATION_FILE"

// Port for Prometheus metrics (GET /metrics).
const envKeyMetricsPort = "COMPUTEINFO_METRICS_PORT"

// Pod label holding the maintainer (e.g. maintainer, team.example.com/owner).
const envKeyMaintainerLabel = "COMPUTEINFO_MAINTAINER_LABEL"

// Apply the request "maintainers" list to the result: true or false.
const envKeyMaintainerFilterEnabled = "COMPUTEINFO_MAINTAINER_FILTER_ENABLED"

// Max namespaces queried in parallel; 0 starts one query per namespace.
const envKeyMaxConcurrentNamespaces = "COMPUTEINFO_MAX_CONCURRENT_NAMESPACES"

// Timeout of a single namespace query; 0 disables it. Units: s, m (e.g. 10s).
const envKeyNamespaceQueryTimeout = "COMPUTEINFO_NAMESPACE_QUERY_TIMEOUT"

// Inventory API requests per second; 0 disables rate limiting.
const envKeyRateLimit = "COMPUTEINFO_RATE_LIMIT"

// Inventory API rate limiter burst size.
const envKeyRateLimitBurst = "COMPUTEINFO_RATE_LIMIT_BURST"

// Cron expression for the scheduled snapshot (e.g. */15 * * * *); empty disables it.
const envKeySnapshotSchedule = "COMPUTEINFO_SNAPSHOT_SCHEDULE"

// Snapshot schedule timezone (IANA, e.g. Europe/Berlin). Defaults to UTC.
const envKeySnapshotTZ = "COMPUTEINFO_SNAPSHOT_TZ"

// Comma-separated namespaces covered by the scheduled snapshot.
const envKeySnapshotNamespaces = "COMPUTEINFO_SNAPSHOT_NAMESPACES"

// Pinger check interval. Units: s, m, h (e.g. 10s, 1m).
const (
	envKeyPingerInterval = "COMPUTEINFO_PINGER_INTERVAL"
	envMinPingerInterval = time.Second
)

// Standard k8s env keys used as fallback when COMPUTEINFO_* are unset.
const (
	envKeyKubeConfigFallback = "KUBECONFIG"
	envKeyKubeMasterFallback = "KUBERNETES_MASTER"
)
