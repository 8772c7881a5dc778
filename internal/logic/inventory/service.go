package inventory

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/samber/lo"
	"github.com/sourcegraph/conc/pool"

	"github.com/skillcoder/computeinfo-api/internal/infra/metrics"
)

// Settings tunes the collector.
type Settings struct {
	// MaintainerLabelKey is the pod label read into PodComputeInfo.Maintainer.
	MaintainerLabelKey string
	// MaintainerFilterEnabled applies CollectRequest.Maintainers to the result.
	MaintainerFilterEnabled bool
	// MaxConcurrentNamespaces bounds parallel namespace queries; 0 means one task per namespace.
	MaxConcurrentNamespaces int
	// NamespaceQueryTimeout bounds a single namespace query; 0 disables the timeout.
	NamespaceQueryTimeout time.Duration
}

type Service struct {
	logger   *slog.Logger
	repo     Repository
	settings Settings
}

// namespaceResult is the local outcome of one namespace task.
type namespaceResult struct {
	index     int
	namespace string
	pods      []PodComputeInfo
	err       error
}

// New creates a new inventory service.
func New(
	logger *slog.Logger,
	repo Repository,
	settings Settings,
) *Service {
	if settings.MaintainerLabelKey == "" {
		settings.MaintainerLabelKey = DefaultMaintainerLabelKey
	}

	return &Service{
		logger:   logger,
		repo:     repo,
		settings: settings,
	}
}

// InventoryQuery collects the inventory for the requested namespaces and applies the
// maintainer filter when it is enabled.
func (s *Service) InventoryQuery(ctx context.Context, req CollectRequest) ([]PodComputeInfo, error) {
	pods, err := s.CollectQuery(ctx, req.Namespaces)
	if err != nil {
		return nil, err
	}

	if !s.settings.MaintainerFilterEnabled {
		if len(req.Maintainers) > 0 {
			s.logger.DebugContext(ctx, "maintainer filter disabled, ignoring requested maintainers",
				"maintainers", req.Maintainers,
			)
		}

		return pods, nil
	}

	return FilterByMaintainers(pods, req.Maintainers), nil
}

// CollectQuery lists pods of every namespace concurrently and returns the normalized
// running pods. A failed namespace is logged and contributes no entries; only a cluster
// client that cannot be established fails the whole call.
func (s *Service) CollectQuery(ctx context.Context, namespaces []string) ([]PodComputeInfo, error) {
	logger := s.logger.With("inventory", "CollectQuery")

	err := s.repo.ConnectCommand(ctx)
	if err != nil {
		var target clientUnavailable
		if errors.As(err, &target) {
			return nil, fmt.Errorf("%w: %w", ErrClusterUnavailable, err)
		}

		return nil, fmt.Errorf("connect: %w", err)
	}

	if len(namespaces) == 0 {
		return []PodComputeInfo{}, nil
	}

	start := time.Now()

	p := pool.NewWithResults[namespaceResult]()
	if s.settings.MaxConcurrentNamespaces > 0 {
		p = p.WithMaxGoroutines(s.settings.MaxConcurrentNamespaces)
	}

	for i, namespace := range namespaces {
		p.Go(func() namespaceResult {
			return s.collectNamespace(ctx, logger, i, namespace)
		})
	}

	results := p.Wait()

	slices.SortFunc(results, func(a, b namespaceResult) int {
		return cmp.Compare(a.index, b.index)
	})

	total := lo.SumBy(results, func(r namespaceResult) int {
		return len(r.pods)
	})

	out := make([]PodComputeInfo, 0, total)
	failed := 0

	for i := range results {
		if results[i].err != nil {
			failed++

			continue
		}

		out = append(out, results[i].pods...)
	}

	metrics.ObserveCollectDuration(time.Since(start))

	logger.InfoContext(ctx, "inventory collected",
		"namespaces", len(namespaces),
		"failedNamespaces", failed,
		"count", len(out),
		"duration", time.Since(start),
	)

	return out, nil
}

func (s *Service) collectNamespace(
	ctx context.Context,
	logger *slog.Logger,
	index int,
	namespace string,
) namespaceResult {
	logger = logger.With("namespace", namespace)
	result := namespaceResult{
		index:     index,
		namespace: namespace,
	}

	queryCtx := ctx

	if s.settings.NamespaceQueryTimeout > 0 {
		var cancel context.CancelFunc

		queryCtx, cancel = context.WithTimeout(ctx, s.settings.NamespaceQueryTimeout)
		defer cancel()
	}

	pods, err := s.repo.ListPodsQuery(queryCtx, namespace)
	if err != nil {
		metrics.RecordNamespaceQueryFailure(namespace)

		logger.Log(ctx, queryFailureLevel(err), "namespace query failed, skipping namespace", "reason", err)

		result.err = fmt.Errorf("%w: %w", ErrListPods, err)

		return result
	}

	result.pods = make([]PodComputeInfo, 0, len(pods))

	for i := range pods {
		info, ok, err := s.processPod(&pods[i])
		if err != nil {
			metrics.RecordPodNormalizationFailure(namespace, failureReason(err))
			logger.WarnContext(ctx, "pod skipped",
				"pod", pods[i].Name,
				"reason", err,
			)

			continue
		}

		if !ok {
			logger.DebugContext(ctx, "pod not running, skipping",
				"pod", pods[i].Name,
				"phase", *pods[i].Phase,
			)

			continue
		}

		result.pods = append(result.pods, info)
	}

	logger.DebugContext(ctx, "namespace collected", "count", len(result.pods), "listed", len(pods))

	return result
}

func (s *Service) processPod(pod *Pod) (PodComputeInfo, bool, error) {
	running, err := isRunning(pod)
	if err != nil {
		return PodComputeInfo{}, false, err
	}

	if !running {
		return PodComputeInfo{}, false, nil
	}

	info, err := Normalize(*pod, s.settings.MaintainerLabelKey)
	if err != nil {
		return PodComputeInfo{}, false, err
	}

	return info, true, nil
}

// queryFailureLevel keeps expected per-namespace outcomes (RBAC, deleted namespace,
// throttling) at warn level and everything else at error level.
func queryFailureLevel(err error) slog.Level {
	var (
		forbiddenErr       forbidden
		notFoundErr        notFound
		tooManyRequestsErr tooManyRequests
	)

	switch {
	case errors.As(err, &forbiddenErr),
		errors.As(err, &notFoundErr),
		errors.As(err, &tooManyRequestsErr):
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
