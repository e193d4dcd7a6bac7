package auth

import (
	"context"

	"github.com/fekuna/omnipos-cafe-service/internal/model"
)

type Repository interface {
	FindUserByUsername(ctx context.Context, username string) (*model.User, error)
	FindUserByID(ctx context.Context, id string) (*model.User, error)
	CreateUser(ctx context.Context, user *model.User) error
	// AssignRole links the user to the named role; unknown roles are ignored.
	AssignRole(ctx context.Context, userID, role string) error
	ListPermissionNames(ctx context.Context, userID string) ([]string, error)
}
