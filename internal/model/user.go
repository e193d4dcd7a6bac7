package model

import "time"

type User struct {
	ID           string    `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"full_name"`
	Active       bool      `db:"active" json:"active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type Role struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Color     string    `db:"color" json:"color"`
	CreatedBy *string   `db:"created_by" json:"created_by"`
	UpdatedBy *string   `db:"updated_by" json:"updated_by"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
	UserCount int       `db:"user_count" json:"user_count"` // Aggregated
}

type Permission struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// UserRole is one role badge of a user.
type UserRole struct {
	UserID string `db:"user_id" json:"-"`
	RoleID int64  `db:"role_id" json:"id"`
	Name   string `db:"name" json:"name"`
	Color  string `db:"color" json:"color"`
}

// Account is a user together with its roles sorted by name.
type Account struct {
	User
	Roles []UserRole `json:"roles"`
}
