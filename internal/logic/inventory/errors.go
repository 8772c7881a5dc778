package inventory

import (
	"errors"
	"fmt"
)

var (
	ErrClusterUnavailable = errors.New("cluster unavailable")
	ErrListPods           = errors.New("list pods")

	ErrPodIdentityMissing            = errors.New("pod name or namespace missing")
	ErrPodPhaseMissing               = errors.New("pod status phase missing")
	ErrContainerRequestsMissing      = errors.New("container resource requests missing")
	ErrContainerCPURequestMissing    = errors.New("container cpu request missing")
	ErrContainerMemoryRequestMissing = errors.New("container memory request missing")
)

// NormalizeError reports which container of a pod could not be normalized.
type NormalizeError struct {
	Container string
	Err       error
}

func (e *NormalizeError) Error() string {
	return fmt.Sprintf("container %q: %s", e.Container, e.Err)
}

func (e *NormalizeError) Unwrap() error {
	return e.Err
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, ErrPodIdentityMissing):
		return reasonIdentityMissing
	case errors.Is(err, ErrPodPhaseMissing):
		return reasonPhaseMissing
	case errors.Is(err, ErrContainerRequestsMissing):
		return reasonRequestsMissing
	case errors.Is(err, ErrContainerCPURequestMissing):
		return reasonCPURequestMissing
	case errors.Is(err, ErrContainerMemoryRequestMissing):
		return reasonMemoryRequestMissing
	default:
		return reasonUnknown
	}
}
