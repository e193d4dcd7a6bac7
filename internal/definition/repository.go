package definition

import (
	"context"

	"github.com/fekuna/omnipos-cafe-service/internal/model"
)

type Repository interface {
	ListTypes(ctx context.Context, keyword string) ([]model.ProductType, error)
	FindTypeByID(ctx context.Context, id int64) (*model.ProductType, error)
	FindTypeByName(ctx context.Context, name string) (*model.ProductType, error)
	CreateType(ctx context.Context, t *model.ProductType) error
	UpdateType(ctx context.Context, t *model.ProductType) error
	// CountTypeProducts counts the products still pointing at the type.
	CountTypeProducts(ctx context.Context, id int64) (int64, error)
	DeleteType(ctx context.Context, id int64) (bool, error)

	// ListOptions and FindOptionByID load each option with its values
	// ordered by price.
	ListOptions(ctx context.Context, keyword string) ([]model.OptionDefinition, error)
	FindOptionByID(ctx context.Context, id int64) (*model.OptionDefinition, error)
	CreateOption(ctx context.Context, o *model.OptionDefinition) error
	CreateOptionValues(ctx context.Context, values []model.OptionValue) error
	UpdateOption(ctx context.Context, o *model.OptionDefinition) error

	ProductExists(ctx context.Context, id int64) (bool, error)
	// FindProductOptions returns required options first, each with the
	// values the product allows ordered by price.
	FindProductOptions(ctx context.Context, productID int64) ([]model.ProductOption, error)
	DeleteProductOptions(ctx context.Context, productID int64) error
	CreateProductOption(ctx context.Context, po *model.ProductOption) error
	AddProductOptionValues(ctx context.Context, productOptionID int64, valueIDs []int64) error
}
