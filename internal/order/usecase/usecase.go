package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/fekuna/omnipos-cafe-service/internal/model"
	"github.com/fekuna/omnipos-cafe-service/internal/order"
	"github.com/fekuna/omnipos-cafe-service/internal/order/dto"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/apperr"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/broker"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/clock"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/metrics"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/postgres"
	"github.com/fekuna/omnipos-cafe-service/internal/statistic"
	"go.uber.org/zap"
)

const EventOrderPaid = "order.paid"

type OrderPaidPayload struct {
	OrderID      int64  `json:"order_id"`
	Total        int64  `json:"total"`
	PaymentID    int64  `json:"payment_id"`
	BusinessDate string `json:"business_date"`
}

type orderUseCase struct {
	repo      order.Repository
	stats     statistic.RollupRepository
	tx        postgres.Transactor
	publisher broker.Publisher
	topic     string
	clock     clock.Clock
	logger    logger.ZapLogger
}

func NewOrderUseCase(
	repo order.Repository,
	stats statistic.RollupRepository,
	tx postgres.Transactor,
	publisher broker.Publisher,
	topic string,
	clk clock.Clock,
	log logger.ZapLogger,
) order.UseCase {
	return &orderUseCase{
		repo:      repo,
		stats:     stats,
		tx:        tx,
		publisher: publisher,
		topic:     topic,
		clock:     clk,
		logger:    log,
	}
}

func (uc *orderUseCase) CreateOrder(ctx context.Context, input *dto.CreateOrderInput) (int64, error) {
	if strings.TrimSpace(input.Type) == "" {
		return 0, apperr.Validation("type is required")
	}
	if len(input.Items) == 0 {
		return 0, apperr.Validation("order needs at least one item")
	}
	if err := validateItems(input.Items); err != nil {
		return 0, err
	}

	o := &model.Order{
		Type:      input.Type,
		Note:      input.Note,
		Total:     input.Total,
		Status:    model.OrderStatusUnpaid,
		CreatedAt: uc.clock.Now(),
	}
	if input.UserID != "" {
		by := input.UserID
		o.CreatedBy = &by
	}

	err := uc.tx.WithinTransaction(ctx, postgres.ReadCommitted, func(ctx context.Context) error {
		if err := uc.repo.Create(ctx, o); err != nil {
			return fmt.Errorf("insert order: %w", err)
		}
		for _, item := range input.Items {
			if err := uc.insertItem(ctx, o.ID, item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	uc.logger.Info("order created", zap.Int64("order_id", o.ID), zap.Int("items", len(input.Items)), zap.Int64("total", o.Total))
	return o.ID, nil
}

// insertItem writes one line with its option and value snapshots.
func (uc *orderUseCase) insertItem(ctx context.Context, orderID int64, in dto.ItemInput) error {
	item := &model.OrderItem{
		OrderID:   orderID,
		ProductID: in.ProductID,
		Name:      in.Name,
		Quantity:  in.Quantity,
		Price:     in.Price,
		Discount:  in.Discount,
		IsGift:    in.IsGift,
	}
	if err := uc.repo.CreateItem(ctx, item); err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return apperr.NotFound("product", in.ProductID)
		}
		return fmt.Errorf("insert order item: %w", err)
	}

	for _, optIn := range in.Options {
		opt := &model.OrderItemOption{
			OrderItemID: item.ID,
			OptionID:    optIn.ID,
			Title:       optIn.Title,
		}
		if err := uc.repo.CreateItemOption(ctx, opt); err != nil {
			return fmt.Errorf("insert order item option: %w", err)
		}

		values := make([]model.OrderItemOptionValue, 0, len(optIn.Values))
		for _, v := range optIn.Values {
			values = append(values, model.OrderItemOptionValue{
				OrderItemOptionID: opt.ID,
				ValueID:           v.ID,
				Name:              v.Name,
				Price:             v.Price,
			})
		}
		if err := uc.repo.CreateOptionValues(ctx, values); err != nil {
			return fmt.Errorf("insert order option values: %w", err)
		}
	}
	return nil
}

// UpdateOrder rewrites the header, then applies the line changes: lines with
// an id get the new quantity, lines without one are inserted and the ids in
// DeleteItems are removed. Other lines are left alone.
func (uc *orderUseCase) UpdateOrder(ctx context.Context, input *dto.UpdateOrderInput) error {
	if strings.TrimSpace(input.Type) == "" {
		return apperr.Validation("type is required")
	}
	if err := validateItems(input.Items); err != nil {
		return err
	}

	err := uc.tx.WithinTransaction(ctx, postgres.ReadCommitted, func(ctx context.Context) error {
		o, err := uc.repo.FindByID(ctx, input.ID)
		if err != nil {
			return err
		}
		if o == nil || o.Void {
			return apperr.NotFound("order", input.ID)
		}
		if o.Status == model.OrderStatusPaid {
			return apperr.Conflictf("OrderNotEditable", "order %d is already paid", o.ID)
		}

		o.Type = input.Type
		o.Note = input.Note
		o.Total = input.Total
		if err := uc.repo.UpdateHeader(ctx, o); err != nil {
			return fmt.Errorf("update order: %w", err)
		}

		for _, item := range input.Items {
			if item.ID == nil {
				if err := uc.insertItem(ctx, o.ID, item); err != nil {
					return err
				}
				continue
			}
			ok, err := uc.repo.UpdateItemQuantity(ctx, o.ID, *item.ID, item.Quantity)
			if err != nil {
				return fmt.Errorf("update order item: %w", err)
			}
			if !ok {
				return apperr.NotFound("order item", *item.ID)
			}
		}

		ids := uniqueIDs(input.DeleteItems)
		if len(ids) > 0 {
			n, err := uc.repo.DeleteItems(ctx, o.ID, ids)
			if err != nil {
				return fmt.Errorf("delete order items: %w", err)
			}
			if n != int64(len(ids)) {
				return apperr.NotFound("order item", ids)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	uc.logger.Info("order updated", zap.Int64("order_id", input.ID), zap.Int("items", len(input.Items)), zap.Int("deleted", len(input.DeleteItems)))
	return nil
}

// VoidOrder removes an unpaid order from every listing. Paid orders are
// already part of the statistics and stay.
func (uc *orderUseCase) VoidOrder(ctx context.Context, id int64) error {
	err := uc.tx.WithinTransaction(ctx, postgres.ReadCommitted, func(ctx context.Context) error {
		o, err := uc.repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if o == nil || o.Void {
			return apperr.NotFound("order", id)
		}
		if o.Status == model.OrderStatusPaid {
			return apperr.Conflictf("OrderNotEditable", "order %d is already paid", o.ID)
		}
		ok, err := uc.repo.Void(ctx, id)
		if err != nil {
			return fmt.Errorf("void order: %w", err)
		}
		if !ok {
			return apperr.Conflictf("OrderNotEditable", "order %d is already paid", o.ID)
		}
		return nil
	})
	if err != nil {
		return err
	}

	uc.logger.Info("order voided", zap.Int64("order_id", id))
	return nil
}

func (uc *orderUseCase) GetOrderByFilter(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, error) {
	if err := filters.Validate(); err != nil {
		return nil, err
	}
	orders, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []model.Order{}
	}
	return orders, nil
}

func (uc *orderUseCase) GetOrderDetailByID(ctx context.Context, id int64) (*model.OrderDetail, error) {
	d, err := uc.repo.FindDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, apperr.NotFound("order", id)
	}
	return d, nil
}

func (uc *orderUseCase) ListPaymentMethods(ctx context.Context) ([]model.Payment, error) {
	return uc.repo.ListPaymentMethods(ctx)
}

// PayOrder moves an order from UNPAID to PAID and rolls its sale into the
// statistics of the current business day, all in one transaction. Paying
// twice is a Conflict and leaves the statistics alone.
func (uc *orderUseCase) PayOrder(ctx context.Context, input *dto.PayOrderInput) (*model.Order, error) {
	now := uc.clock.Now()
	paidAt := now
	if input.PaymentAt != nil {
		paidAt = *input.PaymentAt
	}
	businessDay := clock.Day(now)

	var paid *model.Order
	err := uc.tx.WithinTransaction(ctx, postgres.ReadCommitted, func(ctx context.Context) error {
		method, err := uc.repo.FindPaymentMethod(ctx, input.PaymentMethodID)
		if err != nil {
			return err
		}
		if method == nil {
			return apperr.NotFound("payment method", input.PaymentMethodID)
		}

		o, err := uc.repo.MarkPaid(ctx, input.OrderID, method.ID, paidAt)
		if err != nil {
			return fmt.Errorf("mark order paid: %w", err)
		}
		if o == nil {
			existing, err := uc.repo.FindByID(ctx, input.OrderID)
			if err != nil {
				return err
			}
			if existing == nil || existing.Void {
				return apperr.NotFound("order", input.OrderID)
			}
			return apperr.Conflictf("OrderAlreadyPaid", "order %d is already paid", input.OrderID)
		}

		items, err := uc.repo.ListItems(ctx, o.ID)
		if err != nil {
			return err
		}
		for _, item := range items {
			if item.IsGift {
				continue
			}
			if err := uc.stats.AddProductSale(ctx, item.ProductID, businessDay, item.Quantity, item.Price*item.Quantity); err != nil {
				return fmt.Errorf("roll up product %d: %w", item.ProductID, err)
			}
		}
		if err := uc.stats.AddDailySale(ctx, businessDay, o.Total, 1); err != nil {
			return fmt.Errorf("roll up day: %w", err)
		}

		paid = o
		return nil
	})
	if err != nil {
		uc.logger.Warn("payment rejected", zap.Int64("order_id", input.OrderID), zap.Error(err))
		return nil, err
	}

	metrics.OrdersPaidTotal.Inc()
	metrics.RevenueTotal.Add(float64(paid.Total))
	uc.logger.Info("order paid",
		zap.Int64("order_id", paid.ID),
		zap.Int64("total", paid.Total),
		zap.String("business_date", clock.Format(businessDay)),
	)
	uc.publish(ctx, OrderPaidPayload{
		OrderID:      paid.ID,
		Total:        paid.Total,
		PaymentID:    input.PaymentMethodID,
		BusinessDate: clock.Format(businessDay),
	})
	return paid, nil
}

func (uc *orderUseCase) publish(ctx context.Context, payload OrderPaidPayload) {
	if uc.publisher == nil {
		return
	}
	event, err := broker.NewEvent(EventOrderPaid, payload, uc.clock.Now())
	if err != nil {
		uc.logger.Error("failed to build order event", zap.Error(err))
		return
	}
	if err := uc.publisher.Publish(ctx, uc.topic, strconv.FormatInt(payload.OrderID, 10), event); err != nil {
		uc.logger.Error("failed to publish order event", zap.Int64("order_id", payload.OrderID), zap.Error(err))
	}
}

func validateItems(items []dto.ItemInput) error {
	for i, item := range items {
		if item.Quantity <= 0 {
			return apperr.Validation(fmt.Sprintf("item %d: quantity must be positive", i))
		}
		if item.ID == nil && item.ProductID <= 0 {
			return apperr.Validation(fmt.Sprintf("item %d: product_id is required for a new line", i))
		}
		if item.Price < 0 || item.Discount < 0 {
			return apperr.Validation(fmt.Sprintf("item %d: price and discount must not be negative", i))
		}
	}
	return nil
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
