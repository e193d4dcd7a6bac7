package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/omnipos-cafe-service/internal/material"
	"github.com/fekuna/omnipos-cafe-service/internal/material/dto"
	"github.com/fekuna/omnipos-cafe-service/internal/model"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/apperr"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/clock"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/postgres"
	"go.uber.org/zap"
)

type materialUseCase struct {
	repo   material.Repository
	ledger material.Ledger
	tx     postgres.Transactor
	clock  clock.Clock
	logger logger.ZapLogger
}

func NewMaterialUseCase(repo material.Repository, ledger material.Ledger, tx postgres.Transactor, clk clock.Clock, log logger.ZapLogger) material.UseCase {
	return &materialUseCase{
		repo:   repo,
		ledger: ledger,
		tx:     tx,
		clock:  clk,
		logger: log,
	}
}

func (uc *materialUseCase) CreateMaterial(ctx context.Context, input *dto.CreateMaterialInput) (*model.Material, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperr.Validation("name is required")
	}
	expiration, err := parseOptionalDate(input.ExpirationDate)
	if err != nil {
		return nil, err
	}

	unit, err := uc.repo.FindUnitByID(ctx, input.UnitID)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, apperr.NotFound("unit", input.UnitID)
	}

	existing, err := uc.repo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("material", name)
	}

	var by *string
	if input.UserID != "" {
		by = &input.UserID
	}
	m := &model.Material{
		Name:           name,
		StockQuantity:  input.StockQuantity,
		MinStock:       input.MinStock,
		UnitID:         unit.ID,
		UnitName:       unit.Name,
		ExpirationDate: expiration,
		Active:         true,
		CreatedBy:      by,
		LastUpdatedBy:  by,
	}
	if err := uc.repo.Create(ctx, m); err != nil {
		if postgres.IsUniqueViolation(err) {
			return nil, apperr.Conflict("material", name)
		}
		return nil, err
	}

	uc.logger.Info("material created", zap.Int64("material_id", m.ID), zap.String("name", m.Name))
	return m, nil
}

func (uc *materialUseCase) GetMaterial(ctx context.Context, id int64) (*model.Material, error) {
	m, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, apperr.NotFound("material", id)
	}
	return m, nil
}

func (uc *materialUseCase) ListMaterials(ctx context.Context, filters *dto.MaterialFilters) ([]model.Material, int, error) {
	if err := filters.Validate(); err != nil {
		return nil, 0, err
	}
	return uc.repo.FindAll(ctx, filters)
}

// UpdateMaterial edits the descriptive fields. The row is locked first and a
// requested stock_quantity is booked through the ledger as an adjustment in
// the same transaction.
func (uc *materialUseCase) UpdateMaterial(ctx context.Context, input *dto.UpdateMaterialInput) (*model.Material, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperr.Validation("name is required")
	}
	expiration, err := parseOptionalDate(input.ExpirationDate)
	if err != nil {
		return nil, err
	}

	var updated *model.Material
	err = uc.tx.WithinTransaction(ctx, postgres.ReadCommitted, func(ctx context.Context) error {
		m, err := uc.repo.LockForUpdate(ctx, input.ID)
		if err != nil {
			return err
		}
		if m == nil {
			return apperr.NotFound("material", input.ID)
		}

		if !strings.EqualFold(m.Name, name) {
			other, err := uc.repo.FindByName(ctx, name)
			if err != nil {
				return err
			}
			if other != nil && other.ID != m.ID {
				return apperr.Conflict("material", name)
			}
		}

		if m.UnitID != input.UnitID {
			unit, err := uc.repo.FindUnitByID(ctx, input.UnitID)
			if err != nil {
				return err
			}
			if unit == nil {
				return apperr.NotFound("unit", input.UnitID)
			}
			m.UnitName = unit.Name
		}

		if input.StockQuantity != nil {
			adjusted, err := uc.ledger.SetStock(ctx, dto.StockSetting{
				MaterialID:    m.ID,
				Quantity:      *input.StockQuantity,
				ReferenceType: "material_edit",
				ReferenceID:   m.ID,
				UserID:        input.UserID,
			})
			if err != nil {
				return err
			}
			m.StockQuantity = adjusted.StockQuantity
		}

		m.Name = name
		m.MinStock = input.MinStock
		m.UnitID = input.UnitID
		m.ExpirationDate = expiration
		m.Active = input.Active
		if input.UserID != "" {
			by := input.UserID
			m.LastUpdatedBy = &by
		}
		m.UpdatedAt = uc.clock.Now()

		if err := uc.repo.Update(ctx, m); err != nil {
			if postgres.IsUniqueViolation(err) {
				return apperr.Conflict("material", name)
			}
			return err
		}
		updated = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (uc *materialUseCase) ListLowStock(ctx context.Context) ([]model.Material, error) {
	return uc.repo.ListLowStock(ctx)
}

func (uc *materialUseCase) ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.MaterialMovement, int, error) {
	if err := filters.Validate(); err != nil {
		return nil, 0, err
	}
	return uc.repo.ListMovements(ctx, filters)
}

func (uc *materialUseCase) ListUnits(ctx context.Context) ([]model.Unit, error) {
	return uc.repo.ListUnits(ctx)
}

func (uc *materialUseCase) CreateUnit(ctx context.Context, input *dto.CreateUnitInput) (*model.Unit, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperr.Validation("name is required")
	}
	existing, err := uc.repo.FindUnitByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("unit", name)
	}

	u := &model.Unit{Name: name, Short: input.Short}
	if err := uc.repo.CreateUnit(ctx, u); err != nil {
		if postgres.IsUniqueViolation(err) {
			return nil, apperr.Conflict("unit", name)
		}
		return nil, err
	}
	return u, nil
}

func (uc *materialUseCase) DeleteUnit(ctx context.Context, id int64) error {
	u, err := uc.repo.FindUnitByID(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return apperr.NotFound("unit", id)
	}
	used, err := uc.repo.CountByUnit(ctx, id)
	if err != nil {
		return err
	}
	if used > 0 {
		return apperr.Conflictf("UnitInUse", "unit %s is used by %d materials", u.Name, used)
	}
	if err := uc.repo.DeleteUnit(ctx, id); err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return apperr.Conflictf("UnitInUse", "unit %s is in use", u.Name)
		}
		return err
	}
	return nil
}

func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	d, err := clock.ParseDate(*s)
	if err != nil {
		return nil, apperr.Validation(fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", *s))
	}
	return &d, nil
}
