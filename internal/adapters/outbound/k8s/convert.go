package k8s

import (
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	"k8s.io/utils/ptr"

	"github.com/skillcoder/computeinfo-api/internal/logic/inventory"
)

// toDomainPod maps a pod to the raw inventory record. Unset fields become nil so the
// normalizer can tell "absent" from "empty".
func toDomainPod(pod *corev1.Pod) inventory.Pod {
	out := inventory.Pod{
		Name:       pod.Name,
		Namespace:  pod.Namespace,
		Labels:     pod.Labels,
		Containers: make([]inventory.PodContainer, 0, len(pod.Spec.Containers)),
	}

	if pod.Status.Phase != "" {
		out.Phase = ptr.To(string(pod.Status.Phase))
	}

	if pod.Spec.NodeName != "" {
		out.NodeName = ptr.To(pod.Spec.NodeName)
	}

	for i := range pod.Spec.Containers {
		out.Containers = append(out.Containers, toDomainContainer(&pod.Spec.Containers[i]))
	}

	return out
}

func toDomainContainer(container *corev1.Container) inventory.PodContainer {
	out := inventory.PodContainer{
		Name: container.Name,
	}

	if container.Image != "" {
		out.Image = ptr.To(container.Image)
	}

	if container.Resources.Requests != nil {
		out.Requests = make(map[string]resource.Quantity, len(container.Resources.Requests))
		for name, quantity := range container.Resources.Requests {
			out.Requests[string(name)] = quantity.DeepCopy()
		}
	}

	return out
}
