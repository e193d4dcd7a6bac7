package model

import "time"

type Product struct {
	ID           int64     `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Price        int64     `db:"price" json:"price"`
	CategoryID   *int64    `db:"category_id" json:"category_id"`
	CategoryName *string   `db:"category_name" json:"category_name,omitempty"` // Joined
	TypeID       *int64    `db:"type_id" json:"type_id"`
	TypeName     *string   `db:"type_name" json:"type_name,omitempty"` // Joined
	Description  string    `db:"description" json:"description"`
	Note         string    `db:"note" json:"note"`
	Image        *string   `db:"image" json:"image"`
	Active       bool      `db:"active" json:"active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// ProductSummary is the projection embedded in order details.
type ProductSummary struct {
	ID    int64   `db:"id" json:"id"`
	Name  string  `db:"name" json:"name"`
	Image *string `db:"image" json:"image"`
}
