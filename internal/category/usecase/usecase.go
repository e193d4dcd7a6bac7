package usecase

import (
	"context"
	"strings"

	"github.com/fekuna/omnipos-cafe-service/internal/category"
	"github.com/fekuna/omnipos-cafe-service/internal/category/dto"
	"github.com/fekuna/omnipos-cafe-service/internal/model"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/apperr"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/cache"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/postgres"
	"github.com/fekuna/omnipos-cafe-service/internal/product"
	"go.uber.org/zap"
)

type categoryUseCase struct {
	repo   category.Repository
	tx     postgres.Transactor
	cache  cache.Cache
	logger logger.ZapLogger
}

func NewCategoryUseCase(repo category.Repository, tx postgres.Transactor, c cache.Cache, log logger.ZapLogger) category.UseCase {
	return &categoryUseCase{
		repo:   repo,
		tx:     tx,
		cache:  c,
		logger: log,
	}
}

func (uc *categoryUseCase) CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperr.Validation("name is required")
	}

	existing, err := uc.repo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("category", name)
	}

	cat := &model.Category{Name: name}
	if err := uc.repo.Create(ctx, cat); err != nil {
		if postgres.IsUniqueViolation(err) {
			return nil, apperr.Conflict("category", name)
		}
		return nil, err
	}
	return cat, nil
}

func (uc *categoryUseCase) ListCategories(ctx context.Context, filters *dto.CategoryFilters) ([]model.Category, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *categoryUseCase) UpdateCategory(ctx context.Context, input *dto.UpdateCategoryInput) (*model.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperr.Validation("name is required")
	}

	cat, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, apperr.NotFound("category", input.ID)
	}

	if !strings.EqualFold(cat.Name, name) {
		other, err := uc.repo.FindByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != cat.ID {
			return nil, apperr.Conflict("category", name)
		}
	}

	cat.Name = name
	if err := uc.repo.Update(ctx, cat); err != nil {
		if postgres.IsUniqueViolation(err) {
			return nil, apperr.Conflict("category", name)
		}
		return nil, err
	}

	// Listings carry the category name.
	uc.dropProductListings(ctx)
	return cat, nil
}

// DeleteCategory detaches the category's products and removes it in one
// transaction.
func (uc *categoryUseCase) DeleteCategory(ctx context.Context, id int64) error {
	var detached int64
	err := uc.tx.WithinTransaction(ctx, postgres.ReadCommitted, func(ctx context.Context) error {
		cat, err := uc.repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if cat == nil {
			return apperr.NotFound("category", id)
		}
		if detached, err = uc.repo.DetachProducts(ctx, id); err != nil {
			return err
		}
		ok, err := uc.repo.Delete(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.NotFound("category", id)
		}
		return nil
	})
	if err != nil {
		return err
	}

	uc.dropProductListings(ctx)
	uc.logger.Info("category deleted", zap.Int64("category_id", id), zap.Int64("detached_products", detached))
	return nil
}

func (uc *categoryUseCase) dropProductListings(ctx context.Context) {
	if err := uc.cache.DeletePattern(ctx, product.ListCachePattern); err != nil {
		uc.logger.Warn("failed to invalidate product cache", zap.Error(err))
	}
}
