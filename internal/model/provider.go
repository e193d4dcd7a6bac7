package model

import "time"

type Provider struct {
	ID            int64     `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	Address       string    `db:"address" json:"address"`
	Phone         *string   `db:"phone" json:"phone"`
	Email         *string   `db:"email" json:"email"`
	Active        bool      `db:"active" json:"active"`
	CreatedBy     *string   `db:"created_by" json:"created_by"`
	LastUpdatedBy *string   `db:"last_updated_by" json:"last_updated_by"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}
