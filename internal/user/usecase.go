package user

import (
	"context"

	"github.com/fekuna/omnipos-cafe-service/internal/model"
	"github.com/fekuna/omnipos-cafe-service/internal/user/dto"
)

// PermissionSource resolves the effective permission names of a user.
type PermissionSource interface {
	Permissions(ctx context.Context, userID string) ([]string, error)
}

type UseCase interface {
	ListAccounts(ctx context.Context) ([]model.Account, error)
	GetAccount(ctx context.Context, id string) (*model.Account, error)
	AccountPermissions(ctx context.Context, id string) ([]string, error)
	CreateAccount(ctx context.Context, input *dto.CreateAccountInput) (*model.Account, error)
	UpdateAccount(ctx context.Context, input *dto.UpdateAccountInput) (*model.Account, error)
	DeleteAccount(ctx context.Context, id, actorID string) error
	ResetPassword(ctx context.Context, id string) (*dto.ResetPasswordResult, error)

	ListRoles(ctx context.Context) ([]model.Role, error)
	RolePermissions(ctx context.Context, roleID int64) ([]model.Permission, error)
	ListPermissions(ctx context.Context) ([]model.Permission, error)
	CreateRole(ctx context.Context, input *dto.RoleInput) (*model.Role, error)
	UpdateRole(ctx context.Context, input *dto.RoleInput) (*model.Role, error)
	DeleteRole(ctx context.Context, id int64) error
}
