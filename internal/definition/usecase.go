package definition

import (
	"context"

	"github.com/fekuna/omnipos-cafe-service/internal/definition/dto"
	"github.com/fekuna/omnipos-cafe-service/internal/model"
)

type UseCase interface {
	ListTypes(ctx context.Context, keyword string) ([]model.ProductType, error)
	CreateType(ctx context.Context, input *dto.TypeInput) (*model.ProductType, error)
	UpdateType(ctx context.Context, input *dto.TypeInput) (*model.ProductType, error)
	DeleteType(ctx context.Context, id int64) error

	ListOptions(ctx context.Context, keyword string) ([]model.OptionDefinition, error)
	GetOption(ctx context.Context, id int64) (*model.OptionDefinition, error)
	CreateOption(ctx context.Context, input *dto.CreateOptionInput) (*model.OptionDefinition, error)
	UpdateOption(ctx context.Context, input *dto.UpdateOptionInput) (*model.OptionDefinition, error)

	GetProductOptions(ctx context.Context, productID int64) ([]model.ProductOption, error)
	SetProductOptions(ctx context.Context, input *dto.ProductOptionsInput) ([]model.ProductOption, error)
}
