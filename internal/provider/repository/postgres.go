package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/fekuna/omnipos-cafe-service/internal/model"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/postgres"
	"github.com/fekuna/omnipos-cafe-service/internal/provider/dto"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, p *model.Provider) error {
	query := `
        INSERT INTO providers (name, address, phone, email, active, created_by, last_updated_by)
        VALUES (:name, :address, :phone, :email, :active, :created_by, :last_updated_by)
        RETURNING id, created_at, updated_at
    `
	return postgres.NamedGet(ctx, postgres.Ext(ctx, r.DB), p, query, p)
}

func (r *PGRepository) FindByID(ctx context.Context, id int64) (*model.Provider, error) {
	var p model.Provider
	err := postgres.Ext(ctx, r.DB).GetContext(ctx, &p, `SELECT * FROM providers WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *PGRepository) FindByName(ctx context.Context, name string) (*model.Provider, error) {
	var p model.Provider
	err := postgres.Ext(ctx, r.DB).GetContext(ctx, &p, `SELECT * FROM providers WHERE lower(name) = lower($1)`, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.ProviderFilters) ([]model.Provider, error) {
	var items []model.Provider

	conditions := []string{}
	args := map[string]interface{}{}

	if f.Keyword != "" {
		conditions = append(conditions, "name ILIKE :keyword")
		args["keyword"] = "%" + f.Keyword + "%"
	}
	if f.Active != nil {
		conditions = append(conditions, "active = :active")
		args["active"] = *f.Active
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	query := "SELECT * FROM providers" + whereClause + " ORDER BY name ASC"
	err := postgres.NamedSelect(ctx, postgres.Ext(ctx, r.DB), &items, query, args)
	return items, err
}

func (r *PGRepository) Update(ctx context.Context, p *model.Provider) error {
	query := `
        UPDATE providers SET
            name = :name,
            address = :address,
            phone = :phone,
            email = :email,
            active = :active,
            last_updated_by = :last_updated_by,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := postgres.Ext(ctx, r.DB).NamedExecContext(ctx, query, p)
	return err
}
