package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/fekuna/omnipos-cafe-service/internal/auth"
	"github.com/fekuna/omnipos-cafe-service/internal/model"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/apperr"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/cache"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/postgres"
	"github.com/fekuna/omnipos-cafe-service/internal/user"
	"github.com/fekuna/omnipos-cafe-service/internal/user/dto"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var colorPattern = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

const tempPasswordLength = 12

type userUseCase struct {
	repo   user.Repository
	tx     postgres.Transactor
	cache  cache.Cache
	perms  user.PermissionSource
	logger logger.ZapLogger
	cost   int
}

func NewUserUseCase(repo user.Repository, tx postgres.Transactor, c cache.Cache, perms user.PermissionSource, log logger.ZapLogger) user.UseCase {
	return &userUseCase{
		repo:   repo,
		tx:     tx,
		cache:  c,
		perms:  perms,
		logger: log,
		cost:   bcrypt.DefaultCost,
	}
}

func (uc *userUseCase) ListAccounts(ctx context.Context) ([]model.Account, error) {
	users, err := uc.repo.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	roles, err := uc.repo.ListUserRoles(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load user roles: %w", err)
	}

	byUser := make(map[string][]model.UserRole, len(users))
	for _, r := range roles {
		byUser[r.UserID] = append(byUser[r.UserID], r)
	}
	accounts := make([]model.Account, 0, len(users))
	for _, u := range users {
		a := model.Account{User: u, Roles: byUser[u.ID]}
		if a.Roles == nil {
			a.Roles = []model.UserRole{}
		}
		accounts = append(accounts, a)
	}
	return accounts, nil
}

func (uc *userUseCase) GetAccount(ctx context.Context, id string) (*model.Account, error) {
	u, err := uc.repo.FindAccount(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil || !u.Active {
		return nil, apperr.NotFound("account", id)
	}
	roles, err := uc.repo.ListUserRoles(ctx, []string{id})
	if err != nil {
		return nil, fmt.Errorf("load user roles: %w", err)
	}
	return &model.Account{User: *u, Roles: roles}, nil
}

func (uc *userUseCase) AccountPermissions(ctx context.Context, id string) ([]string, error) {
	if _, err := uc.GetAccount(ctx, id); err != nil {
		return nil, err
	}
	return uc.perms.Permissions(ctx, id)
}

func (uc *userUseCase) CreateAccount(ctx context.Context, input *dto.CreateAccountInput) (*model.Account, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || strings.ContainsAny(username, " \t") {
		return nil, apperr.Validation("username must be a single word")
	}
	fullName := strings.TrimSpace(input.FullName)
	if fullName == "" {
		return nil, apperr.Validation("name is required")
	}
	if len(input.Password) < 6 {
		return nil, apperr.Validation("password must have at least 6 characters")
	}
	roleIDs, err := uc.checkRoles(ctx, input.Roles)
	if err != nil {
		return nil, err
	}

	existing, err := uc.repo.FindAccountByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("account", username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), uc.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &model.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
		FullName:     fullName,
		Active:       true,
	}
	err = uc.tx.WithinTransaction(ctx, postgres.ReadCommitted, func(ctx context.Context) error {
		if err := uc.repo.CreateAccount(ctx, u); err != nil {
			if postgres.IsUniqueViolation(err) {
				return apperr.Conflict("account", username)
			}
			return fmt.Errorf("insert account: %w", err)
		}
		return uc.repo.ReplaceUserRoles(ctx, u.ID, roleIDs)
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("account created", zap.String("user_id", u.ID), zap.String("username", username))
	return uc.GetAccount(ctx, u.ID)
}

func (uc *userUseCase) UpdateAccount(ctx context.Context, input *dto.UpdateAccountInput) (*model.Account, error) {
	fullName := strings.TrimSpace(input.FullName)
	if fullName == "" {
		return nil, apperr.Validation("name is required")
	}
	roleIDs, err := uc.checkRoles(ctx, input.Roles)
	if err != nil {
		return nil, err
	}

	err = uc.tx.WithinTransaction(ctx, postgres.ReadCommitted, func(ctx context.Context) error {
		ok, err := uc.repo.UpdateFullName(ctx, input.ID, fullName)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.NotFound("account", input.ID)
		}
		return uc.repo.ReplaceUserRoles(ctx, input.ID, roleIDs)
	})
	if err != nil {
		return nil, err
	}

	uc.dropPermissions(ctx, input.ID)
	return uc.GetAccount(ctx, input.ID)
}

// DeleteAccount deactivates the user and strips its roles. The username
// stays taken.
func (uc *userUseCase) DeleteAccount(ctx context.Context, id, actorID string) error {
	if id == actorID {
		return apperr.Conflictf("CannotDeleteSelf", "cannot delete your own account")
	}
	err := uc.tx.WithinTransaction(ctx, postgres.ReadCommitted, func(ctx context.Context) error {
		ok, err := uc.repo.Deactivate(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.NotFound("account", id)
		}
		return uc.repo.ReplaceUserRoles(ctx, id, nil)
	})
	if err != nil {
		return err
	}

	uc.dropPermissions(ctx, id)
	uc.logger.Info("account deactivated", zap.String("user_id", id), zap.String("actor_id", actorID))
	return nil
}

func (uc *userUseCase) ResetPassword(ctx context.Context, id string) (*dto.ResetPasswordResult, error) {
	password := strings.ReplaceAll(uuid.NewString(), "-", "")[:tempPasswordLength]
	hash, err := bcrypt.GenerateFromPassword([]byte(password), uc.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	ok, err := uc.repo.UpdatePassword(ctx, id, string(hash))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound("account", id)
	}

	uc.logger.Info("password reset", zap.String("user_id", id))
	return &dto.ResetPasswordResult{ID: id, Password: password}, nil
}

func (uc *userUseCase) ListRoles(ctx context.Context) ([]model.Role, error) {
	return uc.repo.ListRoles(ctx)
}

func (uc *userUseCase) RolePermissions(ctx context.Context, roleID int64) ([]model.Permission, error) {
	if _, err := uc.findRole(ctx, roleID); err != nil {
		return nil, err
	}
	return uc.repo.ListRolePermissions(ctx, roleID)
}

func (uc *userUseCase) ListPermissions(ctx context.Context) ([]model.Permission, error) {
	return uc.repo.ListPermissions(ctx)
}

func (uc *userUseCase) CreateRole(ctx context.Context, input *dto.RoleInput) (*model.Role, error) {
	name, color, err := validateRole(input)
	if err != nil {
		return nil, err
	}
	permIDs, err := uc.checkPermissions(ctx, input.Permissions)
	if err != nil {
		return nil, err
	}
	existing, err := uc.repo.FindRoleByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("role", name)
	}

	r := &model.Role{Name: name, Color: color, CreatedBy: actor(input.UserID), UpdatedBy: actor(input.UserID)}
	var created *model.Role
	err = uc.tx.WithinTransaction(ctx, postgres.ReadCommitted, func(ctx context.Context) error {
		if err := uc.repo.CreateRole(ctx, r); err != nil {
			if postgres.IsUniqueViolation(err) {
				return apperr.Conflict("role", name)
			}
			return fmt.Errorf("insert role: %w", err)
		}
		if err := uc.repo.ReplaceRolePermissions(ctx, r.ID, permIDs); err != nil {
			return err
		}
		var err error
		created, err = uc.repo.FindRole(ctx, r.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("role created", zap.Int64("role_id", created.ID), zap.Int("permissions", len(permIDs)))
	return created, nil
}

func (uc *userUseCase) UpdateRole(ctx context.Context, input *dto.RoleInput) (*model.Role, error) {
	name, color, err := validateRole(input)
	if err != nil {
		return nil, err
	}
	permIDs, err := uc.checkPermissions(ctx, input.Permissions)
	if err != nil {
		return nil, err
	}
	r, err := uc.findRole(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if r.Name == auth.AdminRole && name != r.Name {
		return nil, apperr.Conflictf("RoleProtected", "role %s cannot be renamed or deleted", r.Name)
	}
	if !strings.EqualFold(r.Name, name) {
		other, err := uc.repo.FindRoleByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != r.ID {
			return nil, apperr.Conflict("role", name)
		}
	}

	r.Name = name
	r.Color = color
	r.UpdatedBy = actor(input.UserID)
	var updated *model.Role
	err = uc.tx.WithinTransaction(ctx, postgres.ReadCommitted, func(ctx context.Context) error {
		if err := uc.repo.UpdateRole(ctx, r); err != nil {
			if postgres.IsUniqueViolation(err) {
				return apperr.Conflict("role", name)
			}
			return fmt.Errorf("update role: %w", err)
		}
		if err := uc.repo.ReplaceRolePermissions(ctx, r.ID, permIDs); err != nil {
			return err
		}
		var err error
		updated, err = uc.repo.FindRole(ctx, r.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.dropAllPermissions(ctx)
	return updated, nil
}

func (uc *userUseCase) DeleteRole(ctx context.Context, id int64) error {
	r, err := uc.findRole(ctx, id)
	if err != nil {
		return err
	}
	if r.Name == auth.AdminRole {
		return apperr.Conflictf("RoleProtected", "role %s cannot be renamed or deleted", r.Name)
	}
	ok, err := uc.repo.DeleteRole(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("role", id)
	}

	uc.dropAllPermissions(ctx)
	uc.logger.Info("role deleted", zap.Int64("role_id", id), zap.String("name", r.Name))
	return nil
}

func (uc *userUseCase) findRole(ctx context.Context, id int64) (*model.Role, error) {
	r, err := uc.repo.FindRole(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, apperr.NotFound("role", id)
	}
	return r, nil
}

func (uc *userUseCase) checkRoles(ctx context.Context, ids []int64) ([]int64, error) {
	ids, err := distinctIDs("role", ids)
	if err != nil || len(ids) == 0 {
		return ids, err
	}
	n, err := uc.repo.CountRoles(ctx, ids)
	if err != nil {
		return nil, err
	}
	if n != len(ids) {
		return nil, apperr.Validation("unknown role")
	}
	return ids, nil
}

func (uc *userUseCase) checkPermissions(ctx context.Context, ids []int64) ([]int64, error) {
	ids, err := distinctIDs("permission", ids)
	if err != nil || len(ids) == 0 {
		return ids, err
	}
	n, err := uc.repo.CountPermissions(ctx, ids)
	if err != nil {
		return nil, err
	}
	if n != len(ids) {
		return nil, apperr.Validation("unknown permission")
	}
	return ids, nil
}

func (uc *userUseCase) dropPermissions(ctx context.Context, userID string) {
	if err := uc.cache.Delete(ctx, auth.PermissionCacheKey(userID)); err != nil {
		uc.logger.Warn("failed to invalidate permission cache", zap.String("user_id", userID), zap.Error(err))
	}
}

func (uc *userUseCase) dropAllPermissions(ctx context.Context) {
	if err := uc.cache.DeletePattern(ctx, auth.PermissionCachePattern); err != nil {
		uc.logger.Warn("failed to invalidate permission cache", zap.Error(err))
	}
}

func validateRole(input *dto.RoleInput) (string, string, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return "", "", apperr.Validation("name is required")
	}
	if !colorPattern.MatchString(input.Color) {
		return "", "", apperr.Validation("color must be a hex color like #1f2937")
	}
	return name, strings.ToLower(input.Color), nil
}

func distinctIDs(entity string, ids []int64) ([]int64, error) {
	out := make([]int64, 0, len(ids))
	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if id <= 0 {
			return nil, apperr.Validation(fmt.Sprintf("invalid %s id %d", entity, id))
		}
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out, nil
}

func actor(userID string) *string {
	if userID == "" {
		return nil
	}
	return &userID
}
