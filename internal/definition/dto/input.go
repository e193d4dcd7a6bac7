package dto

type TypeInput struct {
	ID   int64  `json:"-"`
	Name string `json:"name" binding:"required,max=255"`
}

type OptionValueInput struct {
	Name  string `json:"name" binding:"required,max=255"`
	Price int64  `json:"price" binding:"min=0"`
}

type CreateOptionInput struct {
	Title          string             `json:"title" binding:"required,max=255"`
	Required       bool               `json:"required"`
	AllowsMultiple bool               `json:"allows_multiple"`
	Values         []OptionValueInput `json:"values" binding:"required,min=1,dive"`
}

// UpdateOptionInput edits the option header; values are kept.
type UpdateOptionInput struct {
	ID             int64  `json:"-"`
	Title          string `json:"title" binding:"required,max=255"`
	Required       bool   `json:"required"`
	AllowsMultiple bool   `json:"allows_multiple"`
}

type ProductOptionInput struct {
	OptionID int64   `json:"option_id" binding:"required,gt=0"`
	Values   []int64 `json:"values" binding:"required,min=1"`
}

// ProductOptionsInput replaces every option of a product.
type ProductOptionsInput struct {
	ProductID int64                `json:"-"`
	Options   []ProductOptionInput `json:"options" binding:"dive"`
}
