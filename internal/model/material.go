package model

import "time"

type Unit struct {
	ID    int64   `db:"id" json:"id"`
	Name  string  `db:"name" json:"name"`
	Short *string `db:"short" json:"short"`
}

type Material struct {
	ID               int64      `db:"id" json:"id"`
	Name             string     `db:"name" json:"name"`
	StockQuantity    int64      `db:"stock_quantity" json:"stock_quantity"`
	MinStock         int64      `db:"min_stock" json:"min_stock"`
	UnitID           int64      `db:"unit_id" json:"unit_id"`
	UnitName         string     `db:"unit_name" json:"unit_name"` // Joined
	ExpirationDate   *time.Time `db:"expiration_date" json:"expiration_date"`
	LatestImportDate *time.Time `db:"latest_import_date" json:"latest_import_date"`
	LatestExportDate *time.Time `db:"latest_export_date" json:"latest_export_date"`
	Active           bool       `db:"active" json:"active"`
	CreatedBy        *string    `db:"created_by" json:"created_by"`
	LastUpdatedBy    *string    `db:"last_updated_by" json:"last_updated_by"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updated_at"`
}

const (
	DirectionImport = "import"
	DirectionExport = "export"
	DirectionAdjust = "adjust"
)

type MaterialMovement struct {
	ID             string    `db:"id" json:"id"`
	MaterialID     int64     `db:"material_id" json:"material_id"`
	Direction      string    `db:"direction" json:"direction"`
	QuantityChange int64     `db:"quantity_change" json:"quantity_change"`
	QuantityAfter  int64     `db:"quantity_after" json:"quantity_after"`
	ReferenceType  *string   `db:"reference_type" json:"reference_type"`
	ReferenceID    *int64    `db:"reference_id" json:"reference_id"`
	CreatedBy      *string   `db:"created_by" json:"created_by"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
