package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/fekuna/omnipos-cafe-service/internal/model"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/postgres"
	"github.com/fekuna/omnipos-cafe-service/internal/product/dto"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

const selectProduct = `
        SELECT p.*, t.name AS type_name, c.name AS category_name
        FROM products p
        LEFT JOIN product_types t ON t.id = p.type_id
        LEFT JOIN categories c ON c.id = p.category_id`

func (r *PGRepository) Create(ctx context.Context, p *model.Product) error {
	query := `
        INSERT INTO products (name, price, category_id, type_id, description, note, image, active)
        VALUES (:name, :price, :category_id, :type_id, :description, :note, :image, :active)
        RETURNING id, created_at, updated_at
    `
	return postgres.NamedGet(ctx, postgres.Ext(ctx, r.DB), p, query, p)
}

func (r *PGRepository) FindByID(ctx context.Context, id int64) (*model.Product, error) {
	return r.findOne(ctx, selectProduct+` WHERE p.id = $1`, id)
}

func (r *PGRepository) FindByName(ctx context.Context, name string) (*model.Product, error) {
	return r.findOne(ctx, selectProduct+` WHERE lower(p.name) = lower($1)`, name)
}

func (r *PGRepository) findOne(ctx context.Context, query string, arg interface{}) (*model.Product, error) {
	var product model.Product
	err := postgres.Ext(ctx, r.DB).GetContext(ctx, &product, query, arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	products := []model.Product{}
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.Keyword != "" {
		conditions = append(conditions, "p.name ILIKE :keyword")
		args["keyword"] = "%" + f.Keyword + "%"
	}
	if f.CategoryID != nil {
		conditions = append(conditions, "p.category_id = :category_id")
		args["category_id"] = *f.CategoryID
	}
	if f.TypeID != nil {
		conditions = append(conditions, "p.type_id = :type_id")
		args["type_id"] = *f.TypeID
	}
	if f.Active != nil {
		conditions = append(conditions, "p.active = :active")
		args["active"] = *f.Active
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	q := postgres.Ext(ctx, r.DB)
	if err := postgres.NamedGet(ctx, q, &count, "SELECT count(*) FROM products p"+whereClause, args); err != nil {
		return nil, 0, err
	}

	query := selectProduct + whereClause + " ORDER BY p.created_at DESC, p.id DESC" + postgres.PageClause(f.Page, f.PageSize)
	if err := postgres.NamedSelect(ctx, q, &products, query, args); err != nil {
		return nil, 0, err
	}
	return products, count, nil
}

func (r *PGRepository) Update(ctx context.Context, p *model.Product) error {
	query := `
        UPDATE products SET
            name = :name,
            price = :price,
            category_id = :category_id,
            type_id = :type_id,
            description = :description,
            note = :note,
            image = :image,
            active = :active,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := postgres.Ext(ctx, r.DB).NamedExecContext(ctx, query, p)
	return err
}

func (r *PGRepository) CategoryExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := postgres.Ext(ctx, r.DB).GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM categories WHERE id = $1)`, id)
	return exists, err
}

func (r *PGRepository) TypeExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := postgres.Ext(ctx, r.DB).GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM product_types WHERE id = $1)`, id)
	return exists, err
}
