package material

import (
	"context"

	"github.com/fekuna/omnipos-cafe-service/internal/material/dto"
	"github.com/fekuna/omnipos-cafe-service/internal/model"
)

// Ledger owns stock_quantity. It must be called with a transactional ctx so
// a failed line rolls back every line before it.
type Ledger interface {
	AdjustStock(ctx context.Context, adj dto.StockAdjustment) (*model.Material, error)
	SetStock(ctx context.Context, set dto.StockSetting) (*model.Material, error)
}

type UseCase interface {
	CreateMaterial(ctx context.Context, input *dto.CreateMaterialInput) (*model.Material, error)
	GetMaterial(ctx context.Context, id int64) (*model.Material, error)
	ListMaterials(ctx context.Context, filters *dto.MaterialFilters) ([]model.Material, int, error)
	UpdateMaterial(ctx context.Context, input *dto.UpdateMaterialInput) (*model.Material, error)
	ListLowStock(ctx context.Context) ([]model.Material, error)
	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.MaterialMovement, int, error)

	ListUnits(ctx context.Context) ([]model.Unit, error)
	CreateUnit(ctx context.Context, input *dto.CreateUnitInput) (*model.Unit, error)
	DeleteUnit(ctx context.Context, id int64) error
}
