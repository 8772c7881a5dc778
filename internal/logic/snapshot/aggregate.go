package snapshot

import (
	"fmt"

	"k8s.io/apimachinery/pkg/api/resource"

	"github.com/skillcoder/computeinfo-api/internal/logic/inventory"
)

// Aggregate sums requested CPU cores and memory bytes per namespace and maintainer.
func Aggregate(pods []inventory.PodComputeInfo) (map[Key]Requests, error) {
	out := make(map[Key]Requests)

	for i := range pods {
		key := Key{Namespace: pods[i].Namespace, Maintainer: pods[i].Maintainer}
		acc := out[key]
		acc.Pods++

		for _, c := range pods[i].Containers {
			cpu, err := parseQuantity(c.ComputeResources.RequestedCPU)
			if err != nil {
				return nil, fmt.Errorf("pod %s/%s container %s cpu: %w", pods[i].Namespace, pods[i].Name, c.Name, err)
			}

			memory, err := parseQuantity(c.ComputeResources.RequestedMemory)
			if err != nil {
				return nil, fmt.Errorf("pod %s/%s container %s memory: %w", pods[i].Namespace, pods[i].Name, c.Name, err)
			}

			acc.CPUCores += cpu
			acc.MemoryBytes += memory
		}

		out[key] = acc
	}

	return out, nil
}

func parseQuantity(s string) (float64, error) {
	q, err := resource.ParseQuantity(s)
	if err != nil {
		return 0, fmt.Errorf("%w %q: %w", ErrParseQuantity, s, err)
	}

	return q.AsApproximateFloat64(), nil
}
