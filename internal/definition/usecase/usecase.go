package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-cafe-service/internal/definition"
	"github.com/fekuna/omnipos-cafe-service/internal/definition/dto"
	"github.com/fekuna/omnipos-cafe-service/internal/model"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/apperr"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/cache"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/postgres"
	"github.com/fekuna/omnipos-cafe-service/internal/product"
	"go.uber.org/zap"
)

type definitionUseCase struct {
	repo   definition.Repository
	tx     postgres.Transactor
	cache  cache.Cache
	logger logger.ZapLogger
}

func NewDefinitionUseCase(repo definition.Repository, tx postgres.Transactor, c cache.Cache, log logger.ZapLogger) definition.UseCase {
	return &definitionUseCase{
		repo:   repo,
		tx:     tx,
		cache:  c,
		logger: log,
	}
}

func (uc *definitionUseCase) ListTypes(ctx context.Context, keyword string) ([]model.ProductType, error) {
	return uc.repo.ListTypes(ctx, strings.TrimSpace(keyword))
}

func (uc *definitionUseCase) CreateType(ctx context.Context, input *dto.TypeInput) (*model.ProductType, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperr.Validation("name is required")
	}

	existing, err := uc.repo.FindTypeByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("product type", name)
	}

	t := &model.ProductType{Name: name}
	if err := uc.repo.CreateType(ctx, t); err != nil {
		if postgres.IsUniqueViolation(err) {
			return nil, apperr.Conflict("product type", name)
		}
		return nil, err
	}
	return t, nil
}

func (uc *definitionUseCase) UpdateType(ctx context.Context, input *dto.TypeInput) (*model.ProductType, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperr.Validation("name is required")
	}

	t, err := uc.repo.FindTypeByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, apperr.NotFound("product type", input.ID)
	}
	if !strings.EqualFold(t.Name, name) {
		other, err := uc.repo.FindTypeByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != t.ID {
			return nil, apperr.Conflict("product type", name)
		}
	}

	t.Name = name
	if err := uc.repo.UpdateType(ctx, t); err != nil {
		if postgres.IsUniqueViolation(err) {
			return nil, apperr.Conflict("product type", name)
		}
		return nil, err
	}

	// Listings carry the type name.
	uc.dropProductListings(ctx)
	return t, nil
}

// DeleteType refuses while any product still uses the type.
func (uc *definitionUseCase) DeleteType(ctx context.Context, id int64) error {
	err := uc.tx.WithinTransaction(ctx, postgres.ReadCommitted, func(ctx context.Context) error {
		t, err := uc.repo.FindTypeByID(ctx, id)
		if err != nil {
			return err
		}
		if t == nil {
			return apperr.NotFound("product type", id)
		}
		n, err := uc.repo.CountTypeProducts(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return apperr.Conflictf("TypeInUse", "product type %s is used by %d products", t.Name, n)
		}
		ok, err := uc.repo.DeleteType(ctx, id)
		if err != nil {
			if postgres.IsForeignKeyViolation(err) {
				return apperr.Conflictf("TypeInUse", "product type %s is still in use", t.Name)
			}
			return err
		}
		if !ok {
			return apperr.NotFound("product type", id)
		}
		return nil
	})
	if err != nil {
		return err
	}

	uc.logger.Info("product type deleted", zap.Int64("type_id", id))
	return nil
}

func (uc *definitionUseCase) ListOptions(ctx context.Context, keyword string) ([]model.OptionDefinition, error) {
	return uc.repo.ListOptions(ctx, strings.TrimSpace(keyword))
}

func (uc *definitionUseCase) GetOption(ctx context.Context, id int64) (*model.OptionDefinition, error) {
	o, err := uc.repo.FindOptionByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, apperr.NotFound("option", id)
	}
	return o, nil
}

func (uc *definitionUseCase) CreateOption(ctx context.Context, input *dto.CreateOptionInput) (*model.OptionDefinition, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperr.Validation("title is required")
	}
	if len(input.Values) == 0 {
		return nil, apperr.Validation("option needs at least one value")
	}
	for i, v := range input.Values {
		if strings.TrimSpace(v.Name) == "" {
			return nil, apperr.Validation(fmt.Sprintf("value %d: name is required", i))
		}
		if v.Price < 0 {
			return nil, apperr.Validation(fmt.Sprintf("value %d: price must not be negative", i))
		}
	}

	var created *model.OptionDefinition
	err := uc.tx.WithinTransaction(ctx, postgres.ReadCommitted, func(ctx context.Context) error {
		o := &model.OptionDefinition{
			Title:          title,
			Required:       input.Required,
			AllowsMultiple: input.AllowsMultiple,
		}
		if err := uc.repo.CreateOption(ctx, o); err != nil {
			return fmt.Errorf("insert option: %w", err)
		}

		values := make([]model.OptionValue, 0, len(input.Values))
		for _, v := range input.Values {
			values = append(values, model.OptionValue{OptionID: o.ID, Name: strings.TrimSpace(v.Name), Price: v.Price})
		}
		if err := uc.repo.CreateOptionValues(ctx, values); err != nil {
			return fmt.Errorf("insert option values: %w", err)
		}

		var err error
		created, err = uc.repo.FindOptionByID(ctx, o.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("option created", zap.Int64("option_id", created.ID), zap.Int("values", len(created.Values)))
	return created, nil
}

func (uc *definitionUseCase) UpdateOption(ctx context.Context, input *dto.UpdateOptionInput) (*model.OptionDefinition, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperr.Validation("title is required")
	}

	o, err := uc.repo.FindOptionByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, apperr.NotFound("option", input.ID)
	}

	o.Title = title
	o.Required = input.Required
	o.AllowsMultiple = input.AllowsMultiple
	if err := uc.repo.UpdateOption(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (uc *definitionUseCase) GetProductOptions(ctx context.Context, productID int64) ([]model.ProductOption, error) {
	if err := uc.checkProduct(ctx, productID); err != nil {
		return nil, err
	}
	return uc.repo.FindProductOptions(ctx, productID)
}

// SetProductOptions replaces the product's options in one transaction. Every
// value must belong to the option it is listed under.
func (uc *definitionUseCase) SetProductOptions(ctx context.Context, input *dto.ProductOptionsInput) ([]model.ProductOption, error) {
	seen := make(map[int64]struct{}, len(input.Options))
	for _, opt := range input.Options {
		if _, dup := seen[opt.OptionID]; dup {
			return nil, apperr.Validation(fmt.Sprintf("option %d is listed twice", opt.OptionID))
		}
		seen[opt.OptionID] = struct{}{}
		if len(opt.Values) == 0 {
			return nil, apperr.Validation(fmt.Sprintf("option %d needs at least one value", opt.OptionID))
		}
	}

	var options []model.ProductOption
	err := uc.tx.WithinTransaction(ctx, postgres.ReadCommitted, func(ctx context.Context) error {
		if err := uc.checkProduct(ctx, input.ProductID); err != nil {
			return err
		}
		if err := uc.repo.DeleteProductOptions(ctx, input.ProductID); err != nil {
			return fmt.Errorf("clear product options: %w", err)
		}

		for _, in := range input.Options {
			def, err := uc.repo.FindOptionByID(ctx, in.OptionID)
			if err != nil {
				return err
			}
			if def == nil {
				return apperr.NotFound("option", in.OptionID)
			}
			valueIDs, err := pickValues(def, in.Values)
			if err != nil {
				return err
			}

			po := &model.ProductOption{ProductID: input.ProductID, OptionID: def.ID}
			if err := uc.repo.CreateProductOption(ctx, po); err != nil {
				return fmt.Errorf("insert product option: %w", err)
			}
			if err := uc.repo.AddProductOptionValues(ctx, po.ID, valueIDs); err != nil {
				return fmt.Errorf("insert product option values: %w", err)
			}
		}

		var err error
		options, err = uc.repo.FindProductOptions(ctx, input.ProductID)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("product options replaced", zap.Int64("product_id", input.ProductID), zap.Int("options", len(options)))
	return options, nil
}

// pickValues checks ids against the option's values and drops repeats.
func pickValues(def *model.OptionDefinition, ids []int64) ([]int64, error) {
	known := make(map[int64]struct{}, len(def.Values))
	for _, v := range def.Values {
		known[v.ID] = struct{}{}
	}
	out := make([]int64, 0, len(ids))
	picked := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			return nil, apperr.Validation(fmt.Sprintf("value %d does not belong to option %s", id, def.Title))
		}
		if _, dup := picked[id]; dup {
			continue
		}
		picked[id] = struct{}{}
		out = append(out, id)
	}
	return out, nil
}

func (uc *definitionUseCase) checkProduct(ctx context.Context, id int64) error {
	ok, err := uc.repo.ProductExists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("product", id)
	}
	return nil
}

func (uc *definitionUseCase) dropProductListings(ctx context.Context) {
	if err := uc.cache.DeletePattern(ctx, product.ListCachePattern); err != nil {
		uc.logger.Warn("failed to invalidate product cache", zap.Error(err))
	}
}
