package k8s

import "fmt"

// ClientUnavailableError is returned when no Kubernetes client could be established.
type ClientUnavailableError struct {
	Err error
}

func (e *ClientUnavailableError) Error() string {
	return fmt.Sprintf("kubernetes client unavailable: %s", e.Err)
}

func (e *ClientUnavailableError) Unwrap() error {
	return e.Err
}

func (e *ClientUnavailableError) IsClientUnavailable() {}

// ForbiddenError is returned when the service account may not list pods in a namespace.
type ForbiddenError struct {
	Namespace string
	Err       error
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("list pods in namespace %q forbidden: %s", e.Namespace, e.Err)
}

func (e *ForbiddenError) Unwrap() error {
	return e.Err
}

func (e *ForbiddenError) IsForbidden() {}

// NotFoundError is returned when the namespace or its pod collection does not exist.
type NotFoundError struct {
	Namespace string
	Err       error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("list pods in namespace %q not found: %s", e.Namespace, e.Err)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

func (e *NotFoundError) IsNotFound() {}

// TooManyRequestsError is returned when the API server throttles the pod list.
type TooManyRequestsError struct {
	Namespace string
	Err       error
}

func (e *TooManyRequestsError) Error() string {
	return fmt.Sprintf("list pods in namespace %q throttled: %s", e.Namespace, e.Err)
}

func (e *TooManyRequestsError) Unwrap() error {
	return e.Err
}

func (e *TooManyRequestsError) IsTooManyRequests() {}
