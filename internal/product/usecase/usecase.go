package usecase

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/omnipos-cafe-service/internal/model"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/apperr"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/cache"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/clock"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/postgres"
	"github.com/fekuna/omnipos-cafe-service/internal/product"
	"github.com/fekuna/omnipos-cafe-service/internal/product/dto"
	"go.uber.org/zap"
)

const listTTL = 5 * time.Minute

type productUseCase struct {
	repo   product.Repository
	cache  cache.Cache
	clock  clock.Clock
	logger logger.ZapLogger
}

func NewProductUseCase(repo product.Repository, c cache.Cache, clk clock.Clock, log logger.ZapLogger) product.UseCase {
	return &productUseCase{
		repo:   repo,
		cache:  c,
		clock:  clk,
		logger: log,
	}
}

type cachedList struct {
	Products []model.Product
	Count    int
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperr.Validation("name is required")
	}
	if err := uc.checkCategory(ctx, input.CategoryID); err != nil {
		return nil, err
	}
	if err := uc.checkType(ctx, input.TypeID); err != nil {
		return nil, err
	}

	existing, err := uc.repo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("product", name)
	}

	p := &model.Product{
		Name:        name,
		Price:       input.Price,
		CategoryID:  input.CategoryID,
		TypeID:      input.TypeID,
		Description: input.Description,
		Note:        input.Note,
		Image:       input.Image,
		Active:      true,
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		if postgres.IsUniqueViolation(err) {
			return nil, apperr.Conflict("product", name)
		}
		return nil, err
	}

	uc.invalidateListCache(ctx)
	uc.logger.Info("product created", zap.Int64("product_id", p.ID), zap.String("name", p.Name))
	return p, nil
}

func (uc *productUseCase) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.NotFound("product", id)
	}
	return p, nil
}

func (uc *productUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	if err := filters.Validate(); err != nil {
		return nil, 0, err
	}

	cacheKey, err := generateCacheKey(filters)
	if err == nil {
		var hit cachedList
		found, err := uc.cache.GetJSON(ctx, cacheKey, &hit)
		if err != nil {
			uc.logger.Warn("product cache read failed", zap.String("key", cacheKey), zap.Error(err))
		} else if found {
			return hit.Products, hit.Count, nil
		}
	}

	products, count, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, 0, err
	}

	if cacheKey != "" {
		if err := uc.cache.SetJSON(ctx, cacheKey, cachedList{Products: products, Count: count}, listTTL); err != nil {
			uc.logger.Warn("product cache write failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}
	return products, count, nil
}

func generateCacheKey(filters *dto.ProductFilters) (string, error) {
	data, err := json.Marshal(filters)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("products:list:%x", md5.Sum(data)), nil
}

func (uc *productUseCase) invalidateListCache(ctx context.Context) {
	if err := uc.cache.DeletePattern(ctx, product.ListCachePattern); err != nil {
		uc.logger.Warn("failed to invalidate product cache", zap.Error(err))
	}
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperr.Validation("name is required")
	}

	p, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.NotFound("product", input.ID)
	}

	if !strings.EqualFold(p.Name, name) {
		other, err := uc.repo.FindByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != p.ID {
			return nil, apperr.Conflict("product", name)
		}
	}
	if err := uc.checkCategory(ctx, input.CategoryID); err != nil {
		return nil, err
	}
	if err := uc.checkType(ctx, input.TypeID); err != nil {
		return nil, err
	}

	p.Name = name
	p.Price = input.Price
	p.CategoryID = input.CategoryID
	p.TypeID = input.TypeID
	p.Description = input.Description
	p.Note = input.Note
	p.Image = input.Image
	p.Active = input.Active
	p.UpdatedAt = uc.clock.Now()

	if err := uc.repo.Update(ctx, p); err != nil {
		if postgres.IsUniqueViolation(err) {
			return nil, apperr.Conflict("product", name)
		}
		return nil, err
	}

	uc.invalidateListCache(ctx)
	return p, nil
}

func (uc *productUseCase) checkCategory(ctx context.Context, id *int64) error {
	if id == nil {
		return nil
	}
	ok, err := uc.repo.CategoryExists(ctx, *id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("category", *id)
	}
	return nil
}

func (uc *productUseCase) checkType(ctx context.Context, id *int64) error {
	if id == nil {
		return nil
	}
	ok, err := uc.repo.TypeExists(ctx, *id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("product type", *id)
	}
	return nil
}
