package snapshot

// Key identifies one aggregation bucket.
type Key struct {
	Namespace  string
	Maintainer string
}

// Requests is the sum of requested resources of the running pods in a bucket.
type Requests struct {
	CPUCores    float64
	MemoryBytes float64
	Pods        int
}
