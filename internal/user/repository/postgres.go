package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fekuna/omnipos-cafe-service/internal/model"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/postgres"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) ListAccounts(ctx context.Context) ([]model.User, error) {
	users := []model.User{}
	err := postgres.Ext(ctx, r.DB).SelectContext(ctx, &users, `SELECT * FROM users WHERE active ORDER BY username ASC`)
	return users, err
}

func (r *PGRepository) FindAccount(ctx context.Context, id string) (*model.User, error) {
	return r.findUser(ctx, `SELECT * FROM users WHERE id = $1`, id)
}

func (r *PGRepository) FindAccountByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.findUser(ctx, `SELECT * FROM users WHERE lower(username) = lower($1)`, username)
}

func (r *PGRepository) findUser(ctx context.Context, query, arg string) (*model.User, error) {
	var u model.User
	err := postgres.Ext(ctx, r.DB).GetContext(ctx, &u, query, arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *PGRepository) CreateAccount(ctx context.Context, u *model.User) error {
	query := `
        INSERT INTO users (id, username, password_hash, full_name, active)
        VALUES (:id, :username, :password_hash, :full_name, :active)
        RETURNING created_at
    `
	return postgres.NamedGet(ctx, postgres.Ext(ctx, r.DB), &u.CreatedAt, query, u)
}

func (r *PGRepository) UpdateFullName(ctx context.Context, id, fullName string) (bool, error) {
	return r.execOne(ctx, `UPDATE users SET full_name = $2 WHERE id = $1 AND active`, id, fullName)
}

func (r *PGRepository) UpdatePassword(ctx context.Context, id, hash string) (bool, error) {
	return r.execOne(ctx, `UPDATE users SET password_hash = $2 WHERE id = $1 AND active`, id, hash)
}

func (r *PGRepository) Deactivate(ctx context.Context, id string) (bool, error) {
	return r.execOne(ctx, `UPDATE users SET active = FALSE WHERE id = $1 AND active`, id)
}

func (r *PGRepository) execOne(ctx context.Context, query string, args ...interface{}) (bool, error) {
	res, err := postgres.Ext(ctx, r.DB).ExecContext(ctx, query, args...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *PGRepository) ListUserRoles(ctx context.Context, userIDs []string) ([]model.UserRole, error) {
	roles := []model.UserRole{}
	if len(userIDs) == 0 {
		return roles, nil
	}
	q := postgres.Ext(ctx, r.DB)
	query, args, err := sqlx.In(`
        SELECT ur.user_id, r.id AS role_id, r.name, r.color
        FROM user_roles ur
        JOIN roles r ON r.id = ur.role_id
        WHERE ur.user_id IN (?)
        ORDER BY r.name ASC`, userIDs)
	if err != nil {
		return nil, err
	}
	if err := q.SelectContext(ctx, &roles, q.Rebind(query), args...); err != nil {
		return nil, err
	}
	return roles, nil
}

type userRoleLink struct {
	UserID string `db:"user_id"`
	RoleID int64  `db:"role_id"`
}

func (r *PGRepository) ReplaceUserRoles(ctx context.Context, userID string, roleIDs []int64) error {
	q := postgres.Ext(ctx, r.DB)
	if _, err := q.ExecContext(ctx, `DELETE FROM user_roles WHERE user_id = $1`, userID); err != nil {
		return err
	}
	if len(roleIDs) == 0 {
		return nil
	}
	links := make([]userRoleLink, 0, len(roleIDs))
	for _, id := range roleIDs {
		links = append(links, userRoleLink{UserID: userID, RoleID: id})
	}
	_, err := q.NamedExecContext(ctx, `INSERT INTO user_roles (user_id, role_id) VALUES (:user_id, :role_id)`, links)
	return err
}

const selectRole = `
        SELECT r.*, (SELECT count(*) FROM user_roles ur JOIN users u ON u.id = ur.user_id AND u.active
                     WHERE ur.role_id = r.id) AS user_count
        FROM roles r`

func (r *PGRepository) ListRoles(ctx context.Context) ([]model.Role, error) {
	roles := []model.Role{}
	err := postgres.Ext(ctx, r.DB).SelectContext(ctx, &roles, selectRole+` ORDER BY r.name ASC`)
	return roles, err
}

func (r *PGRepository) FindRole(ctx context.Context, id int64) (*model.Role, error) {
	return r.findRole(ctx, selectRole+` WHERE r.id = $1`, id)
}

func (r *PGRepository) FindRoleByName(ctx context.Context, name string) (*model.Role, error) {
	return r.findRole(ctx, selectRole+` WHERE lower(r.name) = lower($1)`, name)
}

func (r *PGRepository) findRole(ctx context.Context, query string, arg interface{}) (*model.Role, error) {
	var role model.Role
	err := postgres.Ext(ctx, r.DB).GetContext(ctx, &role, query, arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &role, nil
}

func (r *PGRepository) CreateRole(ctx context.Context, role *model.Role) error {
	query := `
        INSERT INTO roles (name, color, created_by, updated_by)
        VALUES (:name, :color, :created_by, :updated_by)
        RETURNING id, created_at, updated_at
    `
	return postgres.NamedGet(ctx, postgres.Ext(ctx, r.DB), role, query, role)
}

func (r *PGRepository) UpdateRole(ctx context.Context, role *model.Role) error {
	query := `
        UPDATE roles SET name = :name, color = :color, updated_by = :updated_by, updated_at = NOW()
        WHERE id = :id
        RETURNING updated_at
    `
	return postgres.NamedGet(ctx, postgres.Ext(ctx, r.DB), &role.UpdatedAt, query, role)
}

// DeleteRole relies on ON DELETE CASCADE for user_roles and role_permissions.
func (r *PGRepository) DeleteRole(ctx context.Context, id int64) (bool, error) {
	return r.execOne(ctx, `DELETE FROM roles WHERE id = $1`, id)
}

func (r *PGRepository) CountRoles(ctx context.Context, ids []int64) (int, error) {
	return r.countIn(ctx, `SELECT count(*) FROM roles WHERE id IN (?)`, ids)
}

func (r *PGRepository) ListPermissions(ctx context.Context) ([]model.Permission, error) {
	perms := []model.Permission{}
	err := postgres.Ext(ctx, r.DB).SelectContext(ctx, &perms, `SELECT id, name FROM permissions ORDER BY id ASC`)
	return perms, err
}

func (r *PGRepository) ListRolePermissions(ctx context.Context, roleID int64) ([]model.Permission, error) {
	perms := []model.Permission{}
	query := `
        SELECT p.id, p.name
        FROM permissions p
        JOIN role_permissions rp ON rp.permission_id = p.id
        WHERE rp.role_id = $1
        ORDER BY p.id ASC
    `
	err := postgres.Ext(ctx, r.DB).SelectContext(ctx, &perms, query, roleID)
	return perms, err
}

type rolePermissionLink struct {
	RoleID       int64 `db:"role_id"`
	PermissionID int64 `db:"permission_id"`
}

func (r *PGRepository) ReplaceRolePermissions(ctx context.Context, roleID int64, permissionIDs []int64) error {
	q := postgres.Ext(ctx, r.DB)
	if _, err := q.ExecContext(ctx, `DELETE FROM role_permissions WHERE role_id = $1`, roleID); err != nil {
		return err
	}
	if len(permissionIDs) == 0 {
		return nil
	}
	links := make([]rolePermissionLink, 0, len(permissionIDs))
	for _, id := range permissionIDs {
		links = append(links, rolePermissionLink{RoleID: roleID, PermissionID: id})
	}
	_, err := q.NamedExecContext(ctx, `INSERT INTO role_permissions (role_id, permission_id) VALUES (:role_id, :permission_id)`, links)
	return err
}

func (r *PGRepository) CountPermissions(ctx context.Context, ids []int64) (int, error) {
	return r.countIn(ctx, `SELECT count(*) FROM permissions WHERE id IN (?)`, ids)
}

func (r *PGRepository) countIn(ctx context.Context, query string, ids []int64) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	q := postgres.Ext(ctx, r.DB)
	bound, args, err := sqlx.In(query, ids)
	if err != nil {
		return 0, err
	}
	var n int
	err = q.GetContext(ctx, &n, q.Rebind(bound), args...)
	return n, err
}
