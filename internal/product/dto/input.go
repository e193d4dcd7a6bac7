package dto

type CreateProductInput struct {
	Name        string  `json:"name" binding:"required,max=255"`
	Price       int64   `json:"price" binding:"min=0"`
	CategoryID  *int64  `json:"category_id"`
	TypeID      *int64  `json:"type_id"`
	Description string  `json:"description"`
	Note        string  `json:"note"`
	Image       *string `json:"image" binding:"omitempty,url"`
}

type UpdateProductInput struct {
	ID          int64   `json:"-"`
	Name        string  `json:"name" binding:"required,max=255"`
	Price       int64   `json:"price" binding:"min=0"`
	CategoryID  *int64  `json:"category_id"`
	TypeID      *int64  `json:"type_id"`
	Description string  `json:"description"`
	Note        string  `json:"note"`
	Image       *string `json:"image" binding:"omitempty,url"`
	Active      bool    `json:"active"`
}
