package inventory

import "github.com/samber/lo"

// FilterByMaintainers keeps only pods whose maintainer is listed.
// An empty list keeps every pod.
func FilterByMaintainers(pods []PodComputeInfo, maintainers []string) []PodComputeInfo {
	if len(maintainers) == 0 {
		return pods
	}

	return lo.Filter(pods, func(pod PodComputeInfo, _ int) bool {
		return lo.Contains(maintainers, pod.Maintainer)
	})
}
