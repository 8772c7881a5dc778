package inventory_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/skillcoder/computeinfo-api/internal/logic/inventory"
	"github.com/skillcoder/computeinfo-api/internal/logic/inventory/mocks"
)

// testClientUnavailableError and testForbiddenError implement the service's private error
// interfaces so the mock can return them and the service recognizes them.
type testClientUnavailableError struct{}

func (testClientUnavailableError) Error() string        { return "no kubeconfig" }
func (testClientUnavailableError) IsClientUnavailable() {}

type testForbiddenError struct{}

func (testForbiddenError) Error() string { return "forbidden" }
func (testForbiddenError) IsForbidden()  {}

type testNotFoundError struct{}

func (testNotFoundError) Error() string { return "namespace not found" }
func (testNotFoundError) IsNotFound()   {}

type testTooManyRequestsError struct{}

func (testTooManyRequestsError) Error() string      { return "too many requests" }
func (testTooManyRequestsError) IsTooManyRequests() {}

func podNames(pods []inventory.PodComputeInfo) []string {
	names := make([]string, 0, len(pods))
	for i := range pods {
		names = append(names, pods[i].Namespace+"/"+pods[i].Name)
	}

	return names
}

func newService(repo inventory.Repository) *inventory.Service {
	return inventory.New(slog.Default(), repo, inventory.Settings{})
}

func TestService_CollectQuery(t *testing.T) {
	t.Parallel()

	t.Run("empty namespace list returns empty result", func(t *testing.T) {
		t.Parallel()

		repo := mocks.NewMockRepository(t)
		repo.EXPECT().ConnectCommand(mock.Anything).Return(nil).Once()

		got, err := newService(repo).CollectQuery(t.Context(), nil)
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Empty(t, got)
	})

	t.Run("client unavailable fails the whole call", func(t *testing.T) {
		t.Parallel()

		repo := mocks.NewMockRepository(t)
		repo.EXPECT().ConnectCommand(mock.Anything).Return(testClientUnavailableError{}).Once()

		got, err := newService(repo).CollectQuery(t.Context(), []string{"team-a"})
		require.ErrorIs(t, err, inventory.ErrClusterUnavailable)
		require.Nil(t, got)
	})

	t.Run("connect error without marker is not reported as unavailable", func(t *testing.T) {
		t.Parallel()

		repo := mocks.NewMockRepository(t)
		repo.EXPECT().ConnectCommand(mock.Anything).Return(context.Canceled).Once()

		_, err := newService(repo).CollectQuery(t.Context(), []string{"team-a"})
		require.ErrorIs(t, err, context.Canceled)
		require.NotErrorIs(t, err, inventory.ErrClusterUnavailable)
	})

	t.Run("running pods kept and failed namespace isolated", func(t *testing.T) {
		t.Parallel()

		repo := mocks.NewMockRepository(t)
		repo.EXPECT().ConnectCommand(mock.Anything).Return(nil).Once()
		repo.EXPECT().
			ListPodsQuery(mock.Anything, "a").
			Return([]inventory.Pod{
				testPod("a", "web-0", inventory.PodPhaseRunning, nil, testContainer("web", "500m", "256Mi")),
				testPod("a", "web-1", "Pending", nil, testContainer("web", "500m", "256Mi")),
				testPod("a", "web-2", inventory.PodPhaseRunning, nil, testContainer("web", "500m", "256Mi")),
			}, nil).
			Once()
		repo.EXPECT().
			ListPodsQuery(mock.Anything, "b").
			Return(nil, errors.New("connection refused")).
			Once()

		got, err := newService(repo).CollectQuery(t.Context(), []string{"a", "b"})
		require.NoError(t, err)
		require.ElementsMatch(t, []string{"a/web-0", "a/web-2"}, podNames(got))
	})

	t.Run("forbidden namespace contributes nothing", func(t *testing.T) {
		t.Parallel()

		repo := mocks.NewMockRepository(t)
		repo.EXPECT().ConnectCommand(mock.Anything).Return(nil).Once()
		repo.EXPECT().
			ListPodsQuery(mock.Anything, "a").
			Return([]inventory.Pod{
				testPod("a", "web-0", inventory.PodPhaseRunning, nil, testContainer("web", "1", "1Gi")),
			}, nil).
			Once()
		repo.EXPECT().
			ListPodsQuery(mock.Anything, "secret").
			Return(nil, testForbiddenError{}).
			Once()

		got, err := newService(repo).CollectQuery(t.Context(), []string{"secret", "a"})
		require.NoError(t, err)
		require.Equal(t, []string{"a/web-0"}, podNames(got))
	})

	t.Run("missing and throttled namespaces contribute nothing", func(t *testing.T) {
		t.Parallel()

		repo := mocks.NewMockRepository(t)
		repo.EXPECT().ConnectCommand(mock.Anything).Return(nil).Once()
		repo.EXPECT().
			ListPodsQuery(mock.Anything, "gone").
			Return(nil, testNotFoundError{}).
			Once()
		repo.EXPECT().
			ListPodsQuery(mock.Anything, "busy").
			Return(nil, testTooManyRequestsError{}).
			Once()
		repo.EXPECT().
			ListPodsQuery(mock.Anything, "a").
			Return([]inventory.Pod{
				testPod("a", "web-0", inventory.PodPhaseRunning, nil, testContainer("web", "1", "1Gi")),
			}, nil).
			Once()

		got, err := newService(repo).CollectQuery(t.Context(), []string{"gone", "busy", "a"})
		require.NoError(t, err)
		require.Equal(t, []string{"a/web-0"}, podNames(got))
	})

	t.Run("all namespaces failing yields empty result", func(t *testing.T) {
		t.Parallel()

		repo := mocks.NewMockRepository(t)
		repo.EXPECT().ConnectCommand(mock.Anything).Return(nil).Once()
		repo.EXPECT().
			ListPodsQuery(mock.Anything, mock.Anything).
			Return(nil, context.DeadlineExceeded).
			Twice()

		got, err := newService(repo).CollectQuery(t.Context(), []string{"a", "b"})
		require.NoError(t, err)
		require.Empty(t, got)
	})

	t.Run("invalid pods skipped without affecting siblings", func(t *testing.T) {
		t.Parallel()

		noPhase := testPod("a", "no-phase", inventory.PodPhaseRunning, nil, testContainer("c", "1", "1Gi"))
		noPhase.Phase = nil

		repo := mocks.NewMockRepository(t)
		repo.EXPECT().ConnectCommand(mock.Anything).Return(nil).Once()
		repo.EXPECT().
			ListPodsQuery(mock.Anything, "a").
			Return([]inventory.Pod{
				testPod("a", "no-requests", inventory.PodPhaseRunning, nil, testContainer("c", "", "")),
				noPhase,
				testPod("a", "ok", inventory.PodPhaseRunning, nil, testContainer("c", "1", "1Gi")),
			}, nil).
			Once()
		repo.EXPECT().
			ListPodsQuery(mock.Anything, "b").
			Return([]inventory.Pod{
				testPod("b", "ok", inventory.PodPhaseRunning, nil, testContainer("c", "1", "1Gi")),
			}, nil).
			Once()

		got, err := newService(repo).CollectQuery(t.Context(), []string{"a", "b"})
		require.NoError(t, err)
		require.Equal(t, []string{"a/ok", "b/ok"}, podNames(got))
	})

	t.Run("duplicate namespaces are queried independently", func(t *testing.T) {
		t.Parallel()

		repo := mocks.NewMockRepository(t)
		repo.EXPECT().ConnectCommand(mock.Anything).Return(nil).Once()
		repo.EXPECT().
			ListPodsQuery(mock.Anything, "a").
			Return([]inventory.Pod{
				testPod("a", "web-0", inventory.PodPhaseRunning, nil, testContainer("web", "1", "1Gi")),
			}, nil).
			Twice()

		got, err := newService(repo).CollectQuery(t.Context(), []string{"a", "a"})
		require.NoError(t, err)
		require.Equal(t, []string{"a/web-0", "a/web-0"}, podNames(got))
	})

	t.Run("results merged in request order", func(t *testing.T) {
		t.Parallel()

		repo := mocks.NewMockRepository(t)
		repo.EXPECT().ConnectCommand(mock.Anything).Return(nil).Once()
		repo.EXPECT().
			ListPodsQuery(mock.Anything, "slow").
			RunAndReturn(func(_ context.Context, ns string) ([]inventory.Pod, error) {
				time.Sleep(50 * time.Millisecond)

				return []inventory.Pod{
					testPod(ns, "p", inventory.PodPhaseRunning, nil, testContainer("c", "1", "1Gi")),
				}, nil
			}).
			Once()
		repo.EXPECT().
			ListPodsQuery(mock.Anything, "fast").
			Return([]inventory.Pod{
				testPod("fast", "p", inventory.PodPhaseRunning, nil, testContainer("c", "1", "1Gi")),
			}, nil).
			Once()

		got, err := newService(repo).CollectQuery(t.Context(), []string{"slow", "fast"})
		require.NoError(t, err)
		require.Equal(t, []string{"slow/p", "fast/p"}, podNames(got))
	})
}

func TestService_CollectQuery_Concurrency(t *testing.T) {
	t.Parallel()

	t.Run("unbounded queries run in parallel", func(t *testing.T) {
		t.Parallel()

		namespaces := []string{"a", "b", "c", "d"}

		var inflight sync.WaitGroup

		inflight.Add(len(namespaces))

		allStarted := make(chan struct{})

		go func() {
			inflight.Wait()
			close(allStarted)
		}()

		repo := mocks.NewMockRepository(t)
		repo.EXPECT().ConnectCommand(mock.Anything).Return(nil).Once()
		repo.EXPECT().
			ListPodsQuery(mock.Anything, mock.Anything).
			RunAndReturn(func(_ context.Context, ns string) ([]inventory.Pod, error) {
				inflight.Done()

				select {
				case <-allStarted:
				case <-time.After(2 * time.Second):
					return nil, errors.New("query blocked behind another")
				}

				return []inventory.Pod{
					testPod(ns, "p", inventory.PodPhaseRunning, nil, testContainer("c", "1", "1Gi")),
				}, nil
			}).
			Times(len(namespaces))

		got, err := newService(repo).CollectQuery(t.Context(), namespaces)
		require.NoError(t, err)
		require.Len(t, got, len(namespaces))
	})

	t.Run("bounded concurrency never exceeds the limit", func(t *testing.T) {
		t.Parallel()

		var (
			current atomic.Int32
			peak    atomic.Int32
		)

		repo := mocks.NewMockRepository(t)
		repo.EXPECT().ConnectCommand(mock.Anything).Return(nil).Once()
		repo.EXPECT().
			ListPodsQuery(mock.Anything, mock.Anything).
			RunAndReturn(func(_ context.Context, _ string) ([]inventory.Pod, error) {
				n := current.Add(1)
				defer current.Add(-1)

				for {
					old := peak.Load()
					if n <= old || peak.CompareAndSwap(old, n) {
						break
					}
				}

				time.Sleep(10 * time.Millisecond)

				return []inventory.Pod{}, nil
			}).
			Times(6)

		svc := inventory.New(slog.Default(), repo, inventory.Settings{MaxConcurrentNamespaces: 2})

		_, err := svc.CollectQuery(t.Context(), []string{"a", "b", "c", "d", "e", "f"})
		require.NoError(t, err)
		require.LessOrEqual(t, peak.Load(), int32(2))
	})

	t.Run("namespace timeout is applied to each query", func(t *testing.T) {
		t.Parallel()

		var hasDeadline atomic.Bool

		repo := mocks.NewMockRepository(t)
		repo.EXPECT().ConnectCommand(mock.Anything).Return(nil).Once()
		repo.EXPECT().
			ListPodsQuery(mock.Anything, "a").
			RunAndReturn(func(ctx context.Context, _ string) ([]inventory.Pod, error) {
				_, ok := ctx.Deadline()
				hasDeadline.Store(ok)

				return []inventory.Pod{}, nil
			}).
			Once()

		svc := inventory.New(slog.Default(), repo, inventory.Settings{NamespaceQueryTimeout: time.Second})

		_, err := svc.CollectQuery(t.Context(), []string{"a"})
		require.NoError(t, err)
		require.True(t, hasDeadline.Load())
	})
}

func TestService_InventoryQuery(t *testing.T) {
	t.Parallel()

	pods := []inventory.Pod{
		testPod("a", "alice-pod", inventory.PodPhaseRunning,
			map[string]string{"maintainer": "alice"}, testContainer("c", "1", "1Gi")),
		testPod("a", "bob-pod", inventory.PodPhaseRunning,
			map[string]string{"maintainer": "bob"}, testContainer("c", "1", "1Gi")),
	}

	t.Run("maintainers ignored when filter disabled", func(t *testing.T) {
		t.Parallel()

		repo := mocks.NewMockRepository(t)
		repo.EXPECT().ConnectCommand(mock.Anything).Return(nil).Once()
		repo.EXPECT().ListPodsQuery(mock.Anything, "a").Return(pods, nil).Once()

		got, err := newService(repo).InventoryQuery(t.Context(), inventory.CollectRequest{
			Namespaces:  []string{"a"},
			Maintainers: []string{"alice"},
		})
		require.NoError(t, err)
		require.Len(t, got, 2)
	})

	t.Run("maintainers applied when filter enabled", func(t *testing.T) {
		t.Parallel()

		repo := mocks.NewMockRepository(t)
		repo.EXPECT().ConnectCommand(mock.Anything).Return(nil).Once()
		repo.EXPECT().ListPodsQuery(mock.Anything, "a").Return(pods, nil).Once()

		svc := inventory.New(slog.Default(), repo, inventory.Settings{MaintainerFilterEnabled: true})

		got, err := svc.InventoryQuery(t.Context(), inventory.CollectRequest{
			Namespaces:  []string{"a"},
			Maintainers: []string{"alice"},
		})
		require.NoError(t, err)
		require.Equal(t, []string{"a/alice-pod"}, podNames(got))
	})

	t.Run("collect error is returned", func(t *testing.T) {
		t.Parallel()

		repo := mocks.NewMockRepository(t)
		repo.EXPECT().ConnectCommand(mock.Anything).Return(testClientUnavailableError{}).Once()

		_, err := newService(repo).InventoryQuery(t.Context(), inventory.CollectRequest{Namespaces: []string{"a"}})
		require.ErrorIs(t, err, inventory.ErrClusterUnavailable)
	})
}
