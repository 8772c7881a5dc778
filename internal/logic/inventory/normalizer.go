package inventory

import (
	"fmt"
	"maps"

	"k8s.io/utils/ptr"
)

// Normalize converts a running pod into an inventory entry.
//
// Name and namespace are always set by the API server, so their absence is reported as
// ErrPodIdentityMissing. Node name, labels and the maintainer label fall back to empty
// values. Every container must declare both a cpu and a memory request; otherwise a
// *NormalizeError naming the container is returned and the pod must be skipped.
func Normalize(pod Pod, maintainerKey string) (PodComputeInfo, error) {
	if pod.Name == "" || pod.Namespace == "" {
		return PodComputeInfo{}, ErrPodIdentityMissing
	}

	labels := maps.Clone(pod.Labels)
	if labels == nil {
		labels = make(map[string]string)
	}

	containers := make([]Container, 0, len(pod.Containers))

	for i := range pod.Containers {
		container, err := normalizeContainer(&pod.Containers[i])
		if err != nil {
			return PodComputeInfo{}, fmt.Errorf("normalize pod %s/%s: %w", pod.Namespace, pod.Name, err)
		}

		containers = append(containers, container)
	}

	return PodComputeInfo{
		Name:       pod.Name,
		Namespace:  pod.Namespace,
		NodeName:   ptr.Deref(pod.NodeName, ""),
		Maintainer: labels[maintainerKey],
		Containers: containers,
		Metadata: &Metadata{
			Labels: labels,
		},
	}, nil
}

func normalizeContainer(c *PodContainer) (Container, error) {
	if c.Requests == nil {
		return Container{}, &NormalizeError{Container: c.Name, Err: ErrContainerRequestsMissing}
	}

	cpu, ok := c.Requests[ResourceCPU]
	if !ok {
		return Container{}, &NormalizeError{Container: c.Name, Err: ErrContainerCPURequestMissing}
	}

	memory, ok := c.Requests[ResourceMemory]
	if !ok {
		return Container{}, &NormalizeError{Container: c.Name, Err: ErrContainerMemoryRequestMissing}
	}

	var image *string
	if c.Image != nil {
		image = ptr.To(*c.Image)
	}

	return Container{
		Name:  c.Name,
		Image: image,
		ComputeResources: ComputeResources{
			RequestedCPU:    cpu.String(),
			RequestedMemory: memory.String(),
		},
	}, nil
}

// isRunning reports whether the pod is in the Running phase.
// A pod without a status phase cannot be classified and yields ErrPodPhaseMissing.
func isRunning(pod *Pod) (bool, error) {
	if pod.Phase == nil {
		return false, ErrPodPhaseMissing
	}

	return *pod.Phase == PodPhaseRunning, nil
}
