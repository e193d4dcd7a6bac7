package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/fekuna/omnipos-cafe-service/internal/category/dto"
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

func (r *PGRepository) Create(ctx context.Context, c *model.Category) error {
	query := `INSERT INTO categories (name) VALUES (:name) RETURNING id, created_at`
	return postgres.NamedGet(ctx, postgres.Ext(ctx, r.DB), c, query, c)
}

func (r *PGRepository) FindByID(ctx context.Context, id int64) (*model.Category, error) {
	return r.findOne(ctx, `SELECT * FROM categories WHERE id = $1`, id)
}

func (r *PGRepository) FindByName(ctx context.Context, name string) (*model.Category, error) {
	return r.findOne(ctx, `SELECT * FROM categories WHERE lower(name) = lower($1)`, name)
}

func (r *PGRepository) findOne(ctx context.Context, query string, arg interface{}) (*model.Category, error) {
	var category model.Category
	err := postgres.Ext(ctx, r.DB).GetContext(ctx, &category, query, arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.CategoryFilters) ([]model.Category, error) {
	categories := []model.Category{}

	conditions := []string{}
	args := map[string]interface{}{}

	if f.Keyword != "" {
		conditions = append(conditions, "name ILIKE :keyword")
		args["keyword"] = "%" + f.Keyword + "%"
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	query := "SELECT * FROM categories" + whereClause + " ORDER BY name ASC"
	if err := postgres.NamedSelect(ctx, postgres.Ext(ctx, r.DB), &categories, query, args); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *PGRepository) Update(ctx context.Context, c *model.Category) error {
	_, err := postgres.Ext(ctx, r.DB).NamedExecContext(ctx, `UPDATE categories SET name = :name WHERE id = :id`, c)
	return err
}

func (r *PGRepository) DetachProducts(ctx context.Context, id int64) (int64, error) {
	res, err := postgres.Ext(ctx, r.DB).ExecContext(ctx, `UPDATE products SET category_id = NULL, updated_at = NOW() WHERE category_id = $1`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *PGRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := postgres.Ext(ctx, r.DB).ExecContext(ctx, "DELETE FROM categories WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
