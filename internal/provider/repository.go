package provider

import (
	"context"

	"github.com/fekuna/omnipos-cafe-service/internal/model"
	"github.com/fekuna/omnipos-cafe-service/internal/provider/dto"
)

type Repository interface {
	Create(ctx context.Context, p *model.Provider) error
	FindByID(ctx context.Context, id int64) (*model.Provider, error)
	FindByName(ctx context.Context, name string) (*model.Provider, error)
	FindAll(ctx context.Context, filters *dto.ProviderFilters) ([]model.Provider, error)
	Update(ctx context.Context, p *model.Provider) error
}
