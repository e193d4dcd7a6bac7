package user

import (
	"context"

	"github.com/fekuna/omnipos-cafe-service/internal/model"
)

type Repository interface {
	// ListAccounts returns active users ordered by username.
	ListAccounts(ctx context.Context) ([]model.User, error)
	FindAccount(ctx context.Context, id string) (*model.User, error)
	FindAccountByUsername(ctx context.Context, username string) (*model.User, error)
	CreateAccount(ctx context.Context, u *model.User) error
	UpdateFullName(ctx context.Context, id, fullName string) (bool, error)
	UpdatePassword(ctx context.Context, id, hash string) (bool, error)
	Deactivate(ctx context.Context, id string) (bool, error)

	// ListUserRoles returns the role badges of the given users sorted by
	// role name.
	ListUserRoles(ctx context.Context, userIDs []string) ([]model.UserRole, error)
	ReplaceUserRoles(ctx context.Context, userID string, roleIDs []int64) error

	ListRoles(ctx context.Context) ([]model.Role, error)
	FindRole(ctx context.Context, id int64) (*model.Role, error)
	FindRoleByName(ctx context.Context, name string) (*model.Role, error)
	CreateRole(ctx context.Context, r *model.Role) error
	UpdateRole(ctx context.Context, r *model.Role) error
	DeleteRole(ctx context.Context, id int64) (bool, error)
	CountRoles(ctx context.Context, ids []int64) (int, error)

	ListPermissions(ctx context.Context) ([]model.Permission, error)
	ListRolePermissions(ctx context.Context, roleID int64) ([]model.Permission, error)
	ReplaceRolePermissions(ctx context.Context, roleID int64, permissionIDs []int64) error
	CountPermissions(ctx context.Context, ids []int64) (int, error)
}
