package dto

type CreateProviderInput struct {
	Name    string  `json:"name" binding:"required"`
	Address string  `json:"address"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email" binding:"omitempty,email"`
	UserID  string  `json:"-"`
}

type UpdateProviderInput struct {
	ID      int64   `json:"-"`
	Name    string  `json:"name" binding:"required"`
	Address string  `json:"address"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Active  bool    `json:"active"`
	UserID  string  `json:"-"`
}
