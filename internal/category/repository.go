package category

import (
	"context"

	"github.com/fekuna/omnipos-cafe-service/internal/category/dto"
	"github.com/fekuna/omnipos-cafe-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, category *model.Category) error
	FindByID(ctx context.Context, id int64) (*model.Category, error)
	FindByName(ctx context.Context, name string) (*model.Category, error)
	FindAll(ctx context.Context, filters *dto.CategoryFilters) ([]model.Category, error)
	Update(ctx context.Context, category *model.Category) error
	// DetachProducts clears category_id on every product of the category.
	DetachProducts(ctx context.Context, id int64) (int64, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
