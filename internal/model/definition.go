package model

import "time"

type ProductType struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// OptionDefinition is a reusable product option such as "Size" or "Sugar".
type OptionDefinition struct {
	ID             int64         `db:"id" json:"id"`
	Title          string        `db:"title" json:"title"`
	Required       bool          `db:"required" json:"required"`
	AllowsMultiple bool          `db:"allows_multiple" json:"allows_multiple"`
	CreatedAt      time.Time     `db:"created_at" json:"created_at"`
	Values         []OptionValue `db:"-" json:"values"`
}

type OptionValue struct {
	ID       int64  `db:"id" json:"id"`
	OptionID int64  `db:"option_id" json:"option_id"`
	Name     string `db:"name" json:"name"`
	Price    int64  `db:"price" json:"price"`
}

// ProductOption is an option offered on one product with the subset of
// values the product allows.
type ProductOption struct {
	ID             int64         `db:"id" json:"id"`
	ProductID      int64         `db:"product_id" json:"product_id"`
	OptionID       int64         `db:"option_id" json:"option_id"`
	Title          string        `db:"title" json:"title"`
	Required       bool          `db:"required" json:"required"`
	AllowsMultiple bool          `db:"allows_multiple" json:"allows_multiple"`
	Values         []OptionValue `db:"-" json:"values"`
}
