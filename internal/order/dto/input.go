package dto

import "time"

type OptionValueInput struct {
	ID    int64  `json:"id"`
	Name  string `json:"name" binding:"required"`
	Price int64  `json:"price" binding:"min=0"`
}

type OptionInput struct {
	ID     int64              `json:"id"`
	Title  string             `json:"title" binding:"required"`
	Values []OptionValueInput `json:"values" binding:"dive"`
}

// ItemInput is one order line. ID is set only when updating an existing line,
// in which case only Quantity is read.
type ItemInput struct {
	ID        *int64        `json:"id"`
	ProductID int64         `json:"product_id" binding:"required_without=ID"`
	Name      string        `json:"name"`
	Quantity  int64         `json:"quantity" binding:"required,gt=0"`
	Price     int64         `json:"price" binding:"min=0"`
	Discount  int64         `json:"discount" binding:"min=0"`
	IsGift    bool          `json:"is_gift"`
	Options   []OptionInput `json:"options" binding:"dive"`
}

type CreateOrderInput struct {
	Type   string      `json:"type" binding:"required"`
	Note   string      `json:"note"`
	Total  int64       `json:"total" binding:"min=0"`
	Items  []ItemInput `json:"items" binding:"required,min=1,dive"`
	UserID string      `json:"-"`
}

type UpdateOrderInput struct {
	ID          int64       `json:"-"`
	Type        string      `json:"type" binding:"required"`
	Note        string      `json:"note"`
	Total       int64       `json:"total" binding:"min=0"`
	Items       []ItemInput `json:"items" binding:"dive"`
	DeleteItems []int64     `json:"deleteItems"`
}

type PayOrderInput struct {
	OrderID         int64      `json:"-"`
	PaymentMethodID int64      `json:"paymentMethod" binding:"required"`
	PaymentAt       *time.Time `json:"paymentAt"`
}
