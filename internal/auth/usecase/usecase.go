package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/omnipos-cafe-service/internal/auth"
	"github.com/fekuna/omnipos-cafe-service/internal/auth/dto"
	"github.com/fekuna/omnipos-cafe-service/internal/model"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/apperr"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/cache"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const permissionTTL = 5 * time.Minute

type authUseCase struct {
	repo   auth.Repository
	tokens *auth.TokenManager
	cache  cache.Cache
	logger logger.ZapLogger
}

func NewAuthUseCase(repo auth.Repository, tokens *auth.TokenManager, c cache.Cache, log logger.ZapLogger) auth.UseCase {
	return &authUseCase{
		repo:   repo,
		tokens: tokens,
		cache:  c,
		logger: log,
	}
}

func (uc *authUseCase) Login(ctx context.Context, input *dto.LoginInput) (*dto.TokenPair, error) {
	u, err := uc.repo.FindUserByUsername(ctx, strings.TrimSpace(input.Username))
	if err != nil {
		return nil, err
	}
	if u == nil || !u.Active {
		return nil, apperr.Unauthorized("invalid username or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(input.Password)); err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			uc.logger.Error("password hash check failed", zap.String("user_id", u.ID), zap.Error(err))
		}
		return nil, apperr.Unauthorized("invalid username or password")
	}

	pair := &dto.TokenPair{}
	if pair.AccessToken, pair.AccessExpiresAt, err = uc.tokens.Issue(u.ID, u.Username, auth.TokenAccess); err != nil {
		return nil, err
	}
	if pair.RefreshToken, pair.RefreshExpiresAt, err = uc.tokens.Issue(u.ID, u.Username, auth.TokenRefresh); err != nil {
		return nil, err
	}

	uc.logger.Info("user logged in", zap.String("user_id", u.ID), zap.String("username", u.Username))
	return pair, nil
}

func (uc *authUseCase) Refresh(ctx context.Context, refreshToken string) (*dto.TokenPair, error) {
	claims, err := uc.tokens.Parse(refreshToken, auth.TokenRefresh)
	if err != nil {
		return nil, apperr.Unauthorized("invalid refresh token")
	}

	u, err := uc.repo.FindUserByID(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}
	if u == nil || !u.Active {
		return nil, apperr.Unauthorized("user is no longer active")
	}

	pair := &dto.TokenPair{}
	if pair.AccessToken, pair.AccessExpiresAt, err = uc.tokens.Issue(u.ID, u.Username, auth.TokenAccess); err != nil {
		return nil, err
	}
	return pair, nil
}

func (uc *authUseCase) Me(ctx context.Context, userID string) (*dto.MeResponse, error) {
	u, err := uc.repo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.Unauthorized("unknown user")
	}
	perms, err := uc.Permissions(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.MeResponse{User: *u, Permissions: perms}, nil
}

func (uc *authUseCase) Permissions(ctx context.Context, userID string) ([]string, error) {
	key := auth.PermissionCacheKey(userID)

	var perms []string
	found, err := uc.cache.GetJSON(ctx, key, &perms)
	if err != nil {
		uc.logger.Warn("permission cache read failed", zap.String("user_id", userID), zap.Error(err))
	} else if found {
		return perms, nil
	}

	perms, err = uc.repo.ListPermissionNames(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load permissions: %w", err)
	}
	if err := uc.cache.SetJSON(ctx, key, perms, permissionTTL); err != nil {
		uc.logger.Warn("permission cache write failed", zap.String("user_id", userID), zap.Error(err))
	}
	return perms, nil
}

func (uc *authUseCase) EnsureAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return nil
	}
	existing, err := uc.repo.FindUserByUsername(ctx, username)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	u := &model.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
		FullName:     "Administrator",
		Active:       true,
	}
	if err := uc.repo.CreateUser(ctx, u); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	if err := uc.repo.AssignRole(ctx, u.ID, auth.AdminRole); err != nil {
		return fmt.Errorf("assign admin role: %w", err)
	}

	uc.logger.Info("bootstrap admin created", zap.String("username", username))
	return nil
}
