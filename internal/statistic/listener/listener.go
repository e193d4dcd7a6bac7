package listener

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fekuna/omnipos-cafe-service/internal/pkg/broker"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-cafe-service/internal/statistic"
	"go.uber.org/zap"
)

// EventOrderPaid is the event type that makes cached dashboards stale.
const EventOrderPaid = "order.paid"

type StatisticListener struct {
	consumer broker.MessageReader
	uc       statistic.UseCase
	logger   logger.ZapLogger
}

func NewStatisticListener(consumer broker.MessageReader, uc statistic.UseCase, logger logger.ZapLogger) *StatisticListener {
	return &StatisticListener{
		consumer: consumer,
		uc:       uc,
		logger:   logger,
	}
}

func (l *StatisticListener) Start(ctx context.Context) {
	l.logger.Info("Starting Statistic Kafka Listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping Statistic Kafka Listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("Failed to read kafka message", zap.Error(err))
				time.Sleep(1 * time.Second)
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

type orderPaidPayload struct {
	OrderID      int64  `json:"order_id"`
	BusinessDate string `json:"business_date"`
}

func (l *StatisticListener) processMessage(ctx context.Context, value []byte) {
	var event broker.Event
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("Failed to unmarshal event", zap.Error(err))
		return
	}

	if event.EventType != EventOrderPaid {
		return
	}

	var payload orderPaidPayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		l.logger.Error("Failed to unmarshal order.paid payload", zap.String("event_id", event.EventID), zap.Error(err))
		return
	}

	if err := l.uc.InvalidateCache(ctx); err != nil {
		l.logger.Error("Failed to invalidate statistic cache",
			zap.Int64("order_id", payload.OrderID),
			zap.Error(err),
		)
		return
	}
	l.logger.Debug("Statistic cache invalidated", zap.Int64("order_id", payload.OrderID), zap.String("business_date", payload.BusinessDate))
}
