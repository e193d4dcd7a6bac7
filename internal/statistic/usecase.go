package statistic

import (
	"context"

	"github.com/fekuna/omnipos-cafe-service/internal/statistic/dto"
)

type UseCase interface {
	RevenueChart(ctx context.Context, q *dto.RevenueChartQuery) ([]dto.ChartPoint, error)
	RevenueOverview(ctx context.Context) (*dto.Overview, error)
	OrderTypeChart(ctx context.Context) (*dto.ShareChart, error)
	PaymentTypeChart(ctx context.Context) (*dto.ShareChart, error)
	SaleByCategoryChart(ctx context.Context) (*dto.ShareChart, error)
	TopSaleProducts(ctx context.Context) ([]dto.TopProduct, error)

	// InvalidateCache drops every cached dashboard.
	InvalidateCache(ctx context.Context) error
}
