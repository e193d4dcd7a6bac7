package material

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-cafe-service/internal/material/dto"
	"github.com/fekuna/omnipos-cafe-service/internal/model"
)

// StockRepository is the slice of storage the ledger needs. Calls made with a
// transactional ctx run inside that transaction.
type StockRepository interface {
	// LockForUpdate returns nil, nil when the material does not exist.
	LockForUpdate(ctx context.Context, id int64) (*model.Material, error)
	ApplyStockDelta(ctx context.Context, id, delta int64, direction string, at time.Time) (int64, error)
	LogMovement(ctx context.Context, m *model.MaterialMovement) error
}

type Repository interface {
	StockRepository

	Create(ctx context.Context, m *model.Material) error
	FindByID(ctx context.Context, id int64) (*model.Material, error)
	FindByName(ctx context.Context, name string) (*model.Material, error)
	FindAll(ctx context.Context, filters *dto.MaterialFilters) ([]model.Material, int, error)
	Update(ctx context.Context, m *model.Material) error
	ListLowStock(ctx context.Context) ([]model.Material, error)
	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.MaterialMovement, int, error)

	ListUnits(ctx context.Context) ([]model.Unit, error)
	FindUnitByID(ctx context.Context, id int64) (*model.Unit, error)
	FindUnitByName(ctx context.Context, name string) (*model.Unit, error)
	CreateUnit(ctx context.Context, u *model.Unit) error
	DeleteUnit(ctx context.Context, id int64) error
	CountByUnit(ctx context.Context, unitID int64) (int, error)
}
