package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-cafe-service/internal/pkg/cache"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/clock"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-cafe-service/internal/statistic"
	"github.com/fekuna/omnipos-cafe-service/internal/statistic/dto"
	"go.uber.org/zap"
)

const (
	cachePrefix = "statistic:"
	cacheTTL    = 5 * time.Minute
	topLimit    = 10
)

var (
	weekdayLabels = []string{"Thứ 2", "Thứ 3", "Thứ 4", "Thứ 5", "Thứ 6", "Thứ 7", "Chủ nhật"}
	monthLabels   = []string{"Tháng 1", "Tháng 2", "Tháng 3", "Tháng 4", "Tháng 5", "Tháng 6", "Tháng 7", "Tháng 8", "Tháng 9", "Tháng 10", "Tháng 11", "Tháng 12"}
)

type statisticUseCase struct {
	repo   statistic.Repository
	cache  cache.Cache
	clock  clock.Clock
	logger logger.ZapLogger
}

func NewStatisticUseCase(repo statistic.Repository, c cache.Cache, clk clock.Clock, log logger.ZapLogger) statistic.UseCase {
	return &statisticUseCase{
		repo:   repo,
		cache:  c,
		clock:  clk,
		logger: log,
	}
}

// cached serves key from the cache or computes it with load. Cache errors
// are logged and otherwise ignored.
func cached[T any](ctx context.Context, uc *statisticUseCase, key string, load func() (T, error)) (T, error) {
	var out T
	if uc.cache != nil {
		hit, err := uc.cache.GetJSON(ctx, key, &out)
		if err != nil {
			uc.logger.Warn("statistic cache read failed", zap.String("key", key), zap.Error(err))
		} else if hit {
			return out, nil
		}
	}

	out, err := load()
	if err != nil {
		return out, err
	}

	if uc.cache != nil {
		if err := uc.cache.SetJSON(ctx, key, out, cacheTTL); err != nil {
			uc.logger.Warn("statistic cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return out, nil
}

// key scopes a dashboard to the current business day so a new day never
// serves yesterday's numbers.
func (uc *statisticUseCase) key(name string) string {
	return fmt.Sprintf("%s%s:%s", cachePrefix, name, clock.Format(clock.Today(uc.clock)))
}

func (uc *statisticUseCase) RevenueChart(ctx context.Context, q *dto.RevenueChartQuery) ([]dto.ChartPoint, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return cached(ctx, uc, uc.key("revenue:"+q.Type), func() ([]dto.ChartPoint, error) {
		today := clock.Today(uc.clock)
		switch q.Type {
		case dto.ChartWeek:
			return uc.dailyPoints(ctx, clock.Monday(today), weekdayLabels)
		case dto.ChartMonth:
			return uc.monthPoints(ctx, today.Year())
		default:
			return uc.dailyPoints(ctx, today.AddDate(0, 0, -7), nil)
		}
	})
}

// dailyPoints builds seven consecutive days from start. Without labels each
// point is labelled with its date.
func (uc *statisticUseCase) dailyPoints(ctx context.Context, start time.Time, labels []string) ([]dto.ChartPoint, error) {
	end := start.AddDate(0, 0, 6)
	rows, err := uc.repo.ListDaily(ctx, start, end)
	if err != nil {
		return nil, err
	}
	byDay := make(map[string]dto.PointValue, len(rows))
	for _, r := range rows {
		byDay[clock.Format(r.StatisticsDate)] = dto.PointValue{Revenue: r.Revenue, NumberOfOrder: r.NumberOfOrder}
	}

	points := make([]dto.ChartPoint, 0, 7)
	for i := 0; i < 7; i++ {
		day := clock.Format(start.AddDate(0, 0, i))
		label := day
		if labels != nil {
			label = labels[i]
		}
		points = append(points, dto.ChartPoint{Label: label, Value: byDay[day]})
	}
	return points, nil
}

func (uc *statisticUseCase) monthPoints(ctx context.Context, year int) ([]dto.ChartPoint, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	rows, err := uc.repo.ListDaily(ctx, from, to)
	if err != nil {
		return nil, err
	}

	points := make([]dto.ChartPoint, 12)
	for i := range points {
		points[i].Label = monthLabels[i]
	}
	for _, r := range rows {
		m := int(r.StatisticsDate.Month()) - 1
		points[m].Value.Revenue += r.Revenue
		points[m].Value.NumberOfOrder += r.NumberOfOrder
	}
	return points, nil
}

func (uc *statisticUseCase) RevenueOverview(ctx context.Context) (*dto.Overview, error) {
	return cached(ctx, uc, uc.key("overview"), func() (*dto.Overview, error) {
		today := clock.Today(uc.clock)
		rows, err := uc.repo.ListDaily(ctx, today, today)
		if err != nil {
			return nil, err
		}
		out := &dto.Overview{}
		for _, r := range rows {
			out.Revenue += r.Revenue
			out.NumberOfOrder += r.NumberOfOrder
		}
		return out, nil
	})
}

func (uc *statisticUseCase) OrderTypeChart(ctx context.Context) (*dto.ShareChart, error) {
	return cached(ctx, uc, uc.key("order-type"), func() (*dto.ShareChart, error) {
		first, last := clock.MonthBounds(clock.Today(uc.clock))
		rows, err := uc.repo.CountPaidByType(ctx, first, last)
		if err != nil {
			return nil, err
		}
		chart := dto.NewShareChart(rows)
		return &chart, nil
	})
}

func (uc *statisticUseCase) PaymentTypeChart(ctx context.Context) (*dto.ShareChart, error) {
	return cached(ctx, uc, uc.key("payment-type"), func() (*dto.ShareChart, error) {
		first, last := clock.MonthBounds(clock.Today(uc.clock))
		rows, err := uc.repo.CountPaidByPayment(ctx, first, last)
		if err != nil {
			return nil, err
		}
		chart := dto.NewShareChart(rows)
		return &chart, nil
	})
}

func (uc *statisticUseCase) SaleByCategoryChart(ctx context.Context) (*dto.ShareChart, error) {
	return cached(ctx, uc, uc.key("category"), func() (*dto.ShareChart, error) {
		rows, err := uc.repo.SoldByCategory(ctx)
		if err != nil {
			return nil, err
		}
		chart := dto.NewShareChart(rows)
		return &chart, nil
	})
}

func (uc *statisticUseCase) TopSaleProducts(ctx context.Context) ([]dto.TopProduct, error) {
	return cached(ctx, uc, uc.key("top-products"), func() ([]dto.TopProduct, error) {
		first, last := clock.MonthBounds(clock.Today(uc.clock))
		products, err := uc.repo.TopProducts(ctx, first, last, topLimit)
		if err != nil {
			return nil, err
		}
		if products == nil {
			products = []dto.TopProduct{}
		}
		return products, nil
	})
}

func (uc *statisticUseCase) InvalidateCache(ctx context.Context) error {
	if uc.cache == nil {
		return nil
	}
	return uc.cache.DeletePattern(ctx, cachePrefix+"*")
}
