package dto

type CreateMaterialInput struct {
	Name           string  `json:"name" binding:"required"`
	StockQuantity  int64   `json:"stock_quantity" binding:"gte=0"`
	MinStock       int64   `json:"min_stock" binding:"gte=0"`
	UnitID         int64   `json:"unit_id" binding:"required,gt=0"`
	ExpirationDate *string `json:"expiration_date"` // YYYY-MM-DD
	UserID         string  `json:"-"`
}

type UpdateMaterialInput struct {
	ID             int64   `json:"-"`
	Name           string  `json:"name" binding:"required"`
	StockQuantity  *int64  `json:"stock_quantity" binding:"omitempty,gte=0"`
	MinStock       int64   `json:"min_stock" binding:"gte=0"`
	UnitID         int64   `json:"unit_id" binding:"required,gt=0"`
	ExpirationDate *string `json:"expiration_date"`
	Active         bool    `json:"active"`
	UserID         string  `json:"-"`
}

type CreateUnitInput struct {
	Name  string  `json:"name" binding:"required"`
	Short *string `json:"short"`
}

// StockAdjustment is one ledger entry. Delta is positive for imports and
// negative for exports.
type StockAdjustment struct {
	MaterialID    int64
	Delta         int64
	Direction     string
	ReferenceType string
	ReferenceID   int64
	UserID        string
}

// StockSetting books the difference between Quantity and the locked stock
// as an adjustment.
type StockSetting struct {
	MaterialID    int64
	Quantity      int64
	ReferenceType string
	ReferenceID   int64
	UserID        string
}
