package snapshot

import (
	"context"
	"time"

	"github.com/skillcoder/computeinfo-api/internal/logic/inventory"
)

type collector interface {
	CollectQuery(ctx context.Context, namespaces []string) ([]inventory.PodComputeInfo, error)
}

type schedule interface {
	NextAfter(after time.Time) (time.Time, error)
}
