package httpapi

import (
	"context"

	"github.com/skillcoder/computeinfo-api/internal/logic/inventory"
)

type inventoryQuerier interface {
	InventoryQuery(ctx context.Context, req inventory.CollectRequest) ([]inventory.PodComputeInfo, error)
}
