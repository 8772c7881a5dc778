package inventory

import "context"

// Repository is the port interface for cluster queries.
// Implementations are provided by adapters in the outbound layer.
type Repository interface {
	// ConnectCommand makes sure a cluster client can be established.
	ConnectCommand(ctx context.Context) error

	ListPodsQuery(
		ctx context.Context,
		namespace string,
	) ([]Pod, error)
}

// clientUnavailable is a private interface for checking client bootstrap errors
// without importing the adapter package.
type clientUnavailable interface {
	IsClientUnavailable()
}

// forbidden is a private interface for checking authorization errors
// without importing the adapter package.
type forbidden interface {
	IsForbidden()
}

// notFound is a private interface for checking missing namespace errors
// without importing the adapter package.
type notFound interface {
	IsNotFound()
}

// tooManyRequests is a private interface for checking API throttling errors
// without importing the adapter package.
type tooManyRequests interface {
	IsTooManyRequests()
}
