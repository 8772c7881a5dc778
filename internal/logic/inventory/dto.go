package inventory

import "k8s.io/apimachinery/pkg/api/resource"

// Pod is a pod as returned by the cluster, before normalization.
// Nil pointers and maps mean the field was absent on the source object.
type Pod struct {
	Name       string
	Namespace  string
	Phase      *string
	NodeName   *string
	Labels     map[string]string
	Containers []PodContainer
}

// PodContainer is a container declared in a pod spec.
type PodContainer struct {
	Name  string
	Image *string
	// Requests is nil when the container declares no resource requests.
	Requests map[string]resource.Quantity
}

// PodComputeInfo is one entry of the compute inventory.
type PodComputeInfo struct {
	Name       string      `json:"name" yaml:"name"`
	Namespace  string      `json:"namespace" yaml:"namespace"`
	NodeName   string      `json:"node_name" yaml:"node_name"`
	Maintainer string      `json:"maintainer" yaml:"maintainer"`
	Containers []Container `json:"containers" yaml:"containers"`
	Metadata   *Metadata   `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Container holds the requested compute resources of a single container.
type Container struct {
	Name             string           `json:"name" yaml:"name"`
	Image            *string          `json:"image" yaml:"image"`
	ComputeResources ComputeResources `json:"compute_resources" yaml:"compute_resources"`
}

// ComputeResources are resource requests in Kubernetes quantity notation (e.g. 500m, 256Mi).
type ComputeResources struct {
	RequestedCPU    string `json:"requested_cpu" yaml:"requested_cpu"`
	RequestedMemory string `json:"requested_memory" yaml:"requested_memory"`
}

// Metadata carries the full label set of a pod.
type Metadata struct {
	Labels map[string]string `json:"labels" yaml:"labels"`
}

// CollectRequest is the inventory request payload.
type CollectRequest struct {
	Namespaces  []string `json:"namespaces"`
	Maintainers []string `json:"maintainers,omitempty"`
}
