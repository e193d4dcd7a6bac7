package usecase

import (
	"context"
	"strings"

	"github.com/fekuna/omnipos-cafe-service/internal/model"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/apperr"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/clock"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/postgres"
	"github.com/fekuna/omnipos-cafe-service/internal/provider"
	"github.com/fekuna/omnipos-cafe-service/internal/provider/dto"
	"go.uber.org/zap"
)

type providerUseCase struct {
	repo   provider.Repository
	clock  clock.Clock
	logger logger.ZapLogger
}

func NewProviderUseCase(repo provider.Repository, clk clock.Clock, log logger.ZapLogger) provider.UseCase {
	return &providerUseCase{
		repo:   repo,
		clock:  clk,
		logger: log,
	}
}

func (uc *providerUseCase) CreateProvider(ctx context.Context, input *dto.CreateProviderInput) (*model.Provider, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperr.Validation("name is required")
	}

	existing, err := uc.repo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("provider", name)
	}

	var by *string
	if input.UserID != "" {
		by = &input.UserID
	}
	now := uc.clock.Now()
	p := &model.Provider{
		Name:          name,
		Address:       input.Address,
		Phone:         input.Phone,
		Email:         input.Email,
		Active:        true,
		CreatedBy:     by,
		LastUpdatedBy: by,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		if postgres.IsUniqueViolation(err) {
			return nil, apperr.Conflict("provider", name)
		}
		return nil, err
	}

	uc.logger.Info("provider created", zap.Int64("provider_id", p.ID), zap.String("name", p.Name))
	return p, nil
}

func (uc *providerUseCase) GetProvider(ctx context.Context, id int64) (*model.Provider, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.NotFound("provider", id)
	}
	return p, nil
}

func (uc *providerUseCase) ListProviders(ctx context.Context, filters *dto.ProviderFilters) ([]model.Provider, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *providerUseCase) UpdateProvider(ctx context.Context, input *dto.UpdateProviderInput) (*model.Provider, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperr.Validation("name is required")
	}

	p, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.NotFound("provider", input.ID)
	}

	if !strings.EqualFold(p.Name, name) {
		other, err := uc.repo.FindByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != p.ID {
			return nil, apperr.Conflict("provider", name)
		}
	}

	p.Name = name
	p.Address = input.Address
	p.Phone = input.Phone
	p.Email = input.Email
	p.Active = input.Active
	if input.UserID != "" {
		by := input.UserID
		p.LastUpdatedBy = &by
	}
	p.UpdatedAt = uc.clock.Now()

	if err := uc.repo.Update(ctx, p); err != nil {
		if postgres.IsUniqueViolation(err) {
			return nil, apperr.Conflict("provider", name)
		}
		return nil, err
	}
	return p, nil
}
