package dto

type CreateCategoryInput struct {
	Name string `json:"name" binding:"required,max=255"`
}

type UpdateCategoryInput struct {
	ID   int64  `json:"-"`
	Name string `json:"name" binding:"required,max=255"`
}
