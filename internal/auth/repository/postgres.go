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

func (r *PGRepository) FindUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.findUser(ctx, `SELECT * FROM users WHERE username = $1`, username)
}

func (r *PGRepository) FindUserByID(ctx context.Context, id string) (*model.User, error) {
	return r.findUser(ctx, `SELECT * FROM users WHERE id = $1`, id)
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

func (r *PGRepository) CreateUser(ctx context.Context, u *model.User) error {
	query := `
        INSERT INTO users (id, username, password_hash, full_name, active)
        VALUES (:id, :username, :password_hash, :full_name, :active)
        RETURNING created_at
    `
	return postgres.NamedGet(ctx, postgres.Ext(ctx, r.DB), &u.CreatedAt, query, u)
}

func (r *PGRepository) AssignRole(ctx context.Context, userID, role string) error {
	query := `
        INSERT INTO user_roles (user_id, role_id)
        SELECT $1, id FROM roles WHERE name = $2
        ON CONFLICT DO NOTHING
    `
	_, err := postgres.Ext(ctx, r.DB).ExecContext(ctx, query, userID, role)
	return err
}

func (r *PGRepository) ListPermissionNames(ctx context.Context, userID string) ([]string, error) {
	names := []string{}
	query := `
        SELECT DISTINCT p.name
        FROM permissions p
        JOIN role_permissions rp ON rp.permission_id = p.id
        JOIN user_roles ur ON ur.role_id = rp.role_id
        JOIN users u ON u.id = ur.user_id AND u.active
        WHERE ur.user_id = $1
        ORDER BY p.name
    `
	if err := postgres.Ext(ctx, r.DB).SelectContext(ctx, &names, query, userID); err != nil {
		return nil, err
	}
	return names, nil
}
