package auth

import (
	"context"

	"github.com/fekuna/omnipos-cafe-service/internal/auth/dto"
)

type UseCase interface {
	Login(ctx context.Context, input *dto.LoginInput) (*dto.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.TokenPair, error)
	Me(ctx context.Context, userID string) (*dto.MeResponse, error)
	// Permissions returns the user's permission names, cached briefly.
	Permissions(ctx context.Context, userID string) ([]string, error)
	// EnsureAdmin creates the bootstrap administrator when it is missing.
	EnsureAdmin(ctx context.Context, username, password string) error
}
