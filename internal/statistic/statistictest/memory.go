// Package statistictest holds an in-memory statistic store for usecase tests.
package statistictest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/fekuna/omnipos-cafe-service/internal/model"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/clock"
	"github.com/fekuna/omnipos-cafe-service/internal/statistic/dto"
)

type productKey struct {
	productID int64
	day       string
}

type Memory struct {
	mu       sync.Mutex
	products map[productKey]model.ProductStatistics
	days     map[string]model.StatisticsByDay

	// Canned answers for the grouped queries.
	ByType     []dto.LabelCount
	ByPayment  []dto.LabelCount
	ByCategory []dto.LabelCount
	Top        []dto.TopProduct

	Calls int
}

func NewMemory() *Memory {
	return &Memory{
		products: make(map[productKey]model.ProductStatistics),
		days:     make(map[string]model.StatisticsByDay),
	}
}

func (s *Memory) Snapshot() func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	products := make(map[productKey]model.ProductStatistics, len(s.products))
	for k, v := range s.products {
		products[k] = v
	}
	days := make(map[string]model.StatisticsByDay, len(s.days))
	for k, v := range s.days {
		days[k] = v
	}
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.products = products
		s.days = days
	}
}

// Product returns the bucket of productID on day, if any.
func (s *Memory) Product(productID int64, day time.Time) (model.ProductStatistics, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[productKey{productID, clock.Format(day)}]
	return p, ok
}

func (s *Memory) Day(day time.Time) (model.StatisticsByDay, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.days[clock.Format(day)]
	return d, ok
}

func (s *Memory) ProductBuckets() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.products)
}

func (s *Memory) AddProductSale(_ context.Context, productID int64, day time.Time, sold, revenue int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := productKey{productID, clock.Format(day)}
	p := s.products[k]
	p.ProductID = productID
	p.SaleDate = day
	p.Sold += sold
	p.Revenue += revenue
	s.products[k] = p
	return nil
}

func (s *Memory) AddDailySale(_ context.Context, day time.Time, revenue, orders int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := clock.Format(day)
	d := s.days[k]
	d.StatisticsDate = day
	d.Revenue += revenue
	d.NumberOfOrder += orders
	s.days[k] = d
	return nil
}

func (s *Memory) ListDaily(_ context.Context, from, to time.Time) ([]model.StatisticsByDay, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls++
	var out []model.StatisticsByDay
	for _, d := range s.days {
		if d.StatisticsDate.Before(from) || d.StatisticsDate.After(to) {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StatisticsDate.Before(out[j].StatisticsDate) })
	return out, nil
}

func (s *Memory) CountPaidByType(context.Context, time.Time, time.Time) ([]dto.LabelCount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls++
	return s.ByType, nil
}

func (s *Memory) CountPaidByPayment(context.Context, time.Time, time.Time) ([]dto.LabelCount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls++
	return s.ByPayment, nil
}

func (s *Memory) SoldByCategory(context.Context) ([]dto.LabelCount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls++
	return s.ByCategory, nil
}

func (s *Memory) TopProducts(_ context.Context, _, _ time.Time, limit int) ([]dto.TopProduct, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls++
	out := append([]dto.TopProduct(nil), s.Top...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Revenue > out[j].Revenue })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
