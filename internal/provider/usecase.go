package provider

import (
	"context"

	"github.com/fekuna/omnipos-cafe-service/internal/model"
	"github.com/fekuna/omnipos-cafe-service/internal/provider/dto"
)

type UseCase interface {
	CreateProvider(ctx context.Context, input *dto.CreateProviderInput) (*model.Provider, error)
	GetProvider(ctx context.Context, id int64) (*model.Provider, error)
	ListProviders(ctx context.Context, filters *dto.ProviderFilters) ([]model.Provider, error)
	UpdateProvider(ctx context.Context, input *dto.UpdateProviderInput) (*model.Provider, error)
}
