package usecase

import (
	"context"
	"fmt"

	"github.com/fekuna/omnipos-cafe-service/internal/material"
	"github.com/fekuna/omnipos-cafe-service/internal/material/dto"
	"github.com/fekuna/omnipos-cafe-service/internal/model"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/apperr"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/clock"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ledger struct {
	repo   material.StockRepository
	clock  clock.Clock
	logger logger.ZapLogger
}

func NewLedger(repo material.StockRepository, clk clock.Clock, log logger.ZapLogger) material.Ledger {
	return &ledger{
		repo:   repo,
		clock:  clk,
		logger: log,
	}
}

func (l *ledger) AdjustStock(ctx context.Context, adj dto.StockAdjustment) (*model.Material, error) {
	if err := validateAdjustment(adj); err != nil {
		return nil, err
	}

	m, err := l.lock(ctx, adj.MaterialID)
	if err != nil {
		return nil, err
	}
	return l.apply(ctx, m, adj)
}

// SetStock moves the material to an absolute quantity. The difference is
// taken against the locked row, so movements committed while waiting for
// the lock are not overwritten.
func (l *ledger) SetStock(ctx context.Context, set dto.StockSetting) (*model.Material, error) {
	if set.Quantity < 0 {
		return nil, apperr.Validation("stock quantity must not be negative")
	}

	m, err := l.lock(ctx, set.MaterialID)
	if err != nil {
		return nil, err
	}
	delta := set.Quantity - m.StockQuantity
	if delta == 0 {
		return m, nil
	}
	return l.apply(ctx, m, dto.StockAdjustment{
		MaterialID:    m.ID,
		Delta:         delta,
		Direction:     model.DirectionAdjust,
		ReferenceType: set.ReferenceType,
		ReferenceID:   set.ReferenceID,
		UserID:        set.UserID,
	})
}

// lock takes the row lock, held until the caller's transaction ends.
func (l *ledger) lock(ctx context.Context, id int64) (*model.Material, error) {
	m, err := l.repo.LockForUpdate(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("lock material %d: %w", id, err)
	}
	if m == nil {
		return nil, apperr.NotFound("material", id)
	}
	return m, nil
}

func (l *ledger) apply(ctx context.Context, m *model.Material, adj dto.StockAdjustment) (*model.Material, error) {
	before := m.StockQuantity
	remaining := before + adj.Delta
	if remaining < 0 {
		l.logger.Warn("stock would go negative",
			zap.Int64("material_id", m.ID),
			zap.String("material", m.Name),
			zap.String("direction", adj.Direction),
			zap.Int64("available", before),
			zap.Int64("remaining", remaining),
		)
		return nil, &apperr.InsufficientStockError{
			MaterialID:   m.ID,
			MaterialName: m.Name,
			Direction:    adj.Direction,
			Available:    before,
			Remaining:    remaining,
		}
	}

	now := l.clock.Now()
	after, err := l.repo.ApplyStockDelta(ctx, m.ID, adj.Delta, adj.Direction, now)
	if err != nil {
		return nil, err
	}

	movement := &model.MaterialMovement{
		ID:             uuid.New().String(),
		MaterialID:     m.ID,
		Direction:      adj.Direction,
		QuantityChange: adj.Delta,
		QuantityAfter:  after,
		CreatedAt:      now,
	}
	if adj.ReferenceType != "" {
		refType, refID := adj.ReferenceType, adj.ReferenceID
		movement.ReferenceType = &refType
		movement.ReferenceID = &refID
	}
	if adj.UserID != "" {
		by := adj.UserID
		movement.CreatedBy = &by
	}
	if err := l.repo.LogMovement(ctx, movement); err != nil {
		return nil, err
	}

	m.StockQuantity = after
	switch adj.Direction {
	case model.DirectionImport:
		m.LatestImportDate = &now
	case model.DirectionExport:
		m.LatestExportDate = &now
	}
	return m, nil
}

func validateAdjustment(adj dto.StockAdjustment) error {
	if adj.Delta == 0 {
		return apperr.Validation("quantity must not be zero")
	}
	switch adj.Direction {
	case model.DirectionImport:
		if adj.Delta < 0 {
			return apperr.Validation("import quantity must be positive")
		}
	case model.DirectionExport:
		if adj.Delta > 0 {
			return apperr.Validation("export quantity must be negative")
		}
	case model.DirectionAdjust:
	default:
		return apperr.Validation(fmt.Sprintf("unknown direction %q", adj.Direction))
	}
	return nil
}
