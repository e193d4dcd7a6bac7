package dto

type CreateAccountInput struct {
	Username string  `json:"username" binding:"required,max=100"`
	Password string  `json:"password" binding:"required,min=6,max=72"`
	FullName string  `json:"name" binding:"required,max=255"`
	Roles    []int64 `json:"roles"`
}

type UpdateAccountInput struct {
	ID       string  `json:"-"`
	FullName string  `json:"name" binding:"required,max=255"`
	Roles    []int64 `json:"roles"`
}

type ResetPasswordResult struct {
	ID       string `json:"id"`
	Password string `json:"password"`
}

type RoleInput struct {
	ID          int64   `json:"-"`
	Name        string  `json:"name" binding:"required,max=100"`
	Color       string  `json:"color" binding:"required,hexcolor,max=7"`
	Permissions []int64 `json:"perms"`
	UserID      string  `json:"-"`
}
