package model

import "time"

const (
	OrderStatusUnpaid = "UNPAID"
	OrderStatusPaid   = "PAID"
)

type Order struct {
	ID        int64      `db:"id" json:"id"`
	Type      string     `db:"type" json:"type"`
	Note      string     `db:"note" json:"note"`
	Total     int64      `db:"total" json:"total"`
	Status    string     `db:"status" json:"status"`
	Void      bool       `db:"void" json:"void"`
	CreatedBy *string    `db:"created_by" json:"created_by"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	PaymentID *int64     `db:"payment_id" json:"payment_id"`
	PaymentAt *time.Time `db:"payment_at" json:"payment_at"`
}

type OrderItem struct {
	ID        int64  `db:"id" json:"id"`
	OrderID   int64  `db:"order_id" json:"order_id"`
	ProductID int64  `db:"product_id" json:"product_id"`
	Name      string `db:"name" json:"name"`
	Quantity  int64  `db:"quantity" json:"quantity"`
	Price     int64  `db:"price" json:"price"`
	Discount  int64  `db:"discount" json:"discount"`
	IsGift    bool   `db:"is_gift" json:"is_gift"`
}

type OrderItemOption struct {
	ID          int64  `db:"id" json:"id"`
	OrderItemID int64  `db:"order_item_id" json:"order_item_id"`
	OptionID    int64  `db:"option_id" json:"option_id"`
	Title       string `db:"title" json:"title"`
}

type OrderItemOptionValue struct {
	ID                int64  `db:"id" json:"id"`
	OrderItemOptionID int64  `db:"order_item_option_id" json:"order_item_option_id"`
	ValueID           int64  `db:"value_id" json:"value_id"`
	Name              string `db:"name" json:"name"`
	Price             int64  `db:"price" json:"price"`
}

type Payment struct {
	ID   int64  `db:"id" json:"id"`
	Type string `db:"type" json:"type"`
}

// OrderDetail is the deep read of one order, owned top-down.
type OrderDetail struct {
	Order
	Items []OrderItemDetail `json:"items"`
}

type OrderItemDetail struct {
	OrderItem
	Product ProductSummary          `json:"product"`
	Options []OrderItemOptionDetail `json:"options"`
}

type OrderItemOptionDetail struct {
	OrderItemOption
	Values []OrderItemOptionValue `json:"values"`
}
