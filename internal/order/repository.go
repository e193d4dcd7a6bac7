package order

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-cafe-service/internal/model"
	"github.com/fekuna/omnipos-cafe-service/internal/order/dto"
)

type Repository interface {
	Create(ctx context.Context, o *model.Order) error
	CreateItem(ctx context.Context, item *model.OrderItem) error
	CreateItemOption(ctx context.Context, opt *model.OrderItemOption) error
	CreateOptionValues(ctx context.Context, values []model.OrderItemOptionValue) error

	FindByID(ctx context.Context, id int64) (*model.Order, error)
	FindAll(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, error)
	FindDetail(ctx context.Context, id int64) (*model.OrderDetail, error)
	ListItems(ctx context.Context, orderID int64) ([]model.OrderItem, error)

	UpdateHeader(ctx context.Context, o *model.Order) error
	// UpdateItemQuantity and DeleteItems only touch lines of orderID.
	UpdateItemQuantity(ctx context.Context, orderID, itemID, quantity int64) (bool, error)
	DeleteItems(ctx context.Context, orderID int64, itemIDs []int64) (int64, error)
	// Void hides an UNPAID order. It reports false when no such row exists.
	Void(ctx context.Context, id int64) (bool, error)

	// MarkPaid flips an UNPAID, non-void order to PAID. It returns nil when
	// no such row exists.
	MarkPaid(ctx context.Context, id, paymentID int64, paidAt time.Time) (*model.Order, error)

	ListPaymentMethods(ctx context.Context) ([]model.Payment, error)
	FindPaymentMethod(ctx context.Context, id int64) (*model.Payment, error)
}
