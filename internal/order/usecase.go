package order

import (
	"context"

	"github.com/fekuna/omnipos-cafe-service/internal/model"
	"github.com/fekuna/omnipos-cafe-service/internal/order/dto"
)

type UseCase interface {
	CreateOrder(ctx context.Context, input *dto.CreateOrderInput) (int64, error)
	UpdateOrder(ctx context.Context, input *dto.UpdateOrderInput) error
	VoidOrder(ctx context.Context, id int64) error
	GetOrderByFilter(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, error)
	GetOrderDetailByID(ctx context.Context, id int64) (*model.OrderDetail, error)
	ListPaymentMethods(ctx context.Context) ([]model.Payment, error)
	PayOrder(ctx context.Context, input *dto.PayOrderInput) (*model.Order, error)
}
