package inventory

const (
	// DefaultMaintainerLabelKey is the pod label used to attribute ownership.
	DefaultMaintainerLabelKey = "maintainer"

	// PodPhaseRunning is the only phase included in the inventory.
	PodPhaseRunning = "Running"

	ResourceCPU    = "cpu"
	ResourceMemory = "memory"
)

// Normalization failure reasons used as metric label values.
const (
	reasonIdentityMissing      = "identity_missing"
	reasonPhaseMissing         = "phase_missing"
	reasonRequestsMissing      = "requests_missing"
	reasonCPURequestMissing    = "cpu_request_missing"
	reasonMemoryRequestMissing = "memory_request_missing"
	reasonUnknown              = "unknown"
)
