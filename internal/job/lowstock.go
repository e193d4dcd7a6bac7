// Package job holds the scheduled background work.
package job

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-cafe-service/internal/model"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/broker"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/cache"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/clock"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/metrics"
	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

const (
	EventLowStock = "warehouse.low_stock"

	lowStockLockKey = "jobs:low-stock"
	lowStockLockTTL = 5 * time.Minute
)

// LowStockLister is satisfied by the material usecase and repository.
type LowStockLister interface {
	ListLowStock(ctx context.Context) ([]model.Material, error)
}

type LowStockItem struct {
	MaterialID    int64  `json:"material_id"`
	Name          string `json:"name"`
	StockQuantity int64  `json:"stock_quantity"`
	MinStock      int64  `json:"min_stock"`
}

type LowStockPayload struct {
	BusinessDate string         `json:"business_date"`
	Materials    []LowStockItem `json:"materials"`
}

type LowStockJob struct {
	materials LowStockLister
	locker    cache.Locker
	publisher broker.Publisher
	topic     string
	clock     clock.Clock
	logger    logger.ZapLogger
}

func NewLowStockJob(materials LowStockLister, locker cache.Locker, publisher broker.Publisher, topic string, clk clock.Clock, log logger.ZapLogger) *LowStockJob {
	return &LowStockJob{
		materials: materials,
		locker:    locker,
		publisher: publisher,
		topic:     topic,
		clock:     clk,
		logger:    log,
	}
}

// Schedule registers the scan to run daily at "HH:MM" business time.
func (j *LowStockJob) Schedule(s *gocron.Scheduler, at string) error {
	_, err := s.Every(1).Day().At(at).Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), lowStockLockTTL)
		defer cancel()
		if err := j.Run(ctx); err != nil {
			j.logger.Error("low stock scan failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("schedule low stock scan: %w", err)
	}
	return nil
}

// Run scans once. Another replica holding the lock makes it a no-op.
func (j *LowStockJob) Run(ctx context.Context) error {
	lock, err := j.locker.Obtain(ctx, lowStockLockKey, lowStockLockTTL)
	if errors.Is(err, cache.ErrLockNotObtained) {
		j.logger.Info("low stock scan already running elsewhere")
		return nil
	}
	if err != nil {
		return fmt.Errorf("obtain lock: %w", err)
	}
	defer func() {
		if err := lock.Release(context.Background()); err != nil {
			j.logger.Warn("release low stock lock", zap.Error(err))
		}
	}()

	items, err := j.materials.ListLowStock(ctx)
	if err != nil {
		return fmt.Errorf("list low stock: %w", err)
	}
	metrics.LowStockMaterials.Set(float64(len(items)))
	if len(items) == 0 {
		j.logger.Info("low stock scan: nothing below minimum")
		return nil
	}

	payload := LowStockPayload{
		BusinessDate: clock.Format(clock.Today(j.clock)),
		Materials:    make([]LowStockItem, 0, len(items)),
	}
	for _, m := range items {
		j.logger.Warn("material below minimum stock",
			zap.Int64("material_id", m.ID),
			zap.String("name", m.Name),
			zap.Int64("stock", m.StockQuantity),
			zap.Int64("min_stock", m.MinStock),
		)
		payload.Materials = append(payload.Materials, LowStockItem{
			MaterialID:    m.ID,
			Name:          m.Name,
			StockQuantity: m.StockQuantity,
			MinStock:      m.MinStock,
		})
	}

	event, err := broker.NewEvent(EventLowStock, payload, j.clock.Now())
	if err != nil {
		return fmt.Errorf("build event: %w", err)
	}
	if err := j.publisher.Publish(ctx, j.topic, payload.BusinessDate, event); err != nil {
		return fmt.Errorf("publish low stock: %w", err)
	}
	return nil
}
