package k8s

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"

	"github.com/skillcoder/computeinfo-api/internal/logic/inventory"
)

const pingTimeout = 3 * time.Second

type configBuilder func(masterURL, kubeconfigPath string) (*rest.Config, error)

// Adapter lists pods through client-go. The clientset is built on first use so that a
// cluster that is unreachable at startup only fails the requests that need it.
type Adapter struct {
	logger      *slog.Logger
	kubeMaster  string
	kubeConfig  string
	buildConfig configBuilder

	mu        sync.Mutex
	clientset kubernetes.Interface
}

// New creates a new K8s adapter that discovers its client from kubeMaster/kubeConfig,
// falling back to the in-cluster configuration when both are empty.
func New(
	logger *slog.Logger,
	kubeMaster,
	kubeConfig string,
) *Adapter {
	return &Adapter{
		logger:      logger,
		kubeMaster:  kubeMaster,
		kubeConfig:  kubeConfig,
		buildConfig: clientcmd.BuildConfigFromFlags,
	}
}

// NewWithClientset creates a K8s adapter around an existing clientset.
func NewWithClientset(
	logger *slog.Logger,
	clientset kubernetes.Interface,
) *Adapter {
	return &Adapter{
		logger:    logger,
		clientset: clientset,
	}
}

var _ inventory.Repository = (*Adapter)(nil)

func (a *Adapter) ConnectCommand(ctx context.Context) error {
	_, err := a.client(ctx)

	return err
}

func (a *Adapter) ListPodsQuery(
	ctx context.Context,
	namespace string,
) ([]inventory.Pod, error) {
	clientset, err := a.client(ctx)
	if err != nil {
		return nil, err
	}

	podList, err := clientset.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		switch {
		case apierrors.IsForbidden(err):
			return nil, &ForbiddenError{Namespace: namespace, Err: err}
		case apierrors.IsNotFound(err):
			return nil, &NotFoundError{Namespace: namespace, Err: err}
		case apierrors.IsTooManyRequests(err):
			return nil, &TooManyRequestsError{Namespace: namespace, Err: err}
		}

		return nil, fmt.Errorf("list pods: %w", err)
	}

	pods := make([]inventory.Pod, 0, len(podList.Items))
	for i := range podList.Items {
		pods = append(pods, toDomainPod(&podList.Items[i]))
	}

	return pods, nil
}

// Name returns the name of the adapter pinger.
func (a *Adapter) Name() string {
	return "kube-api"
}

// Ping checks that the API server answers the version endpoint within ctx.
func (a *Adapter) Ping(ctx context.Context) error {
	clientset, err := a.client(ctx)
	if err != nil {
		return err
	}

	discovery := clientset.Discovery()

	restClient := discovery.RESTClient()
	if restClient == nil {
		// fake clientsets carry no transport
		_, err = discovery.ServerVersion()
	} else {
		err = restClient.Get().AbsPath("/version").Do(ctx).Error()
	}

	if err != nil {
		return fmt.Errorf("get server version: %w", err)
	}

	return nil
}

// PingerCritical reports that an unreachable API server must not fail liveness.
func (a *Adapter) PingerCritical() bool {
	return false
}

func (a *Adapter) PingerTimeout() time.Duration {
	return pingTimeout
}

func (a *Adapter) client(ctx context.Context) (kubernetes.Interface, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.clientset != nil {
		return a.clientset, nil
	}

	kubeConfig, err := a.buildConfig(a.kubeMaster, a.kubeConfig)
	if err != nil {
		return nil, &ClientUnavailableError{Err: fmt.Errorf("build k8s config: %w", err)}
	}

	clientset, err := kubernetes.NewForConfig(kubeConfig)
	if err != nil {
		return nil, &ClientUnavailableError{Err: fmt.Errorf("create clientset: %w", err)}
	}

	a.logger.InfoContext(ctx, "kubernetes client established", "host", kubeConfig.Host)
	a.clientset = clientset

	return clientset, nil
}
