package statistic

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-cafe-service/internal/model"
	"github.com/fekuna/omnipos-cafe-service/internal/statistic/dto"
)

// RollupRepository accumulates paid sales into the per-product and per-day
// buckets, creating a bucket on first use. Days are business dates.
type RollupRepository interface {
	AddProductSale(ctx context.Context, productID int64, day time.Time, sold, revenue int64) error
	AddDailySale(ctx context.Context, day time.Time, revenue, orders int64) error
}

type Repository interface {
	RollupRepository

	// ListDaily returns the existing day buckets in [from, to], both inclusive.
	ListDaily(ctx context.Context, from, to time.Time) ([]model.StatisticsByDay, error)
	// CountPaidByType and CountPaidByPayment group paid orders created in [from, to].
	CountPaidByType(ctx context.Context, from, to time.Time) ([]dto.LabelCount, error)
	CountPaidByPayment(ctx context.Context, from, to time.Time) ([]dto.LabelCount, error)
	// SoldByCategory lists every category with its total sold quantity.
	SoldByCategory(ctx context.Context) ([]dto.LabelCount, error)
	TopProducts(ctx context.Context, from, to time.Time, limit int) ([]dto.TopProduct, error)
}
