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

func (r *PGRepository) ListTypes(ctx context.Context, keyword string) ([]model.ProductType, error) {
	types := []model.ProductType{}
	query := `SELECT * FROM product_types`
	args := []interface{}{}
	if keyword != "" {
		query += ` WHERE name ILIKE $1`
		args = append(args, "%"+keyword+"%")
	}
	query += ` ORDER BY name ASC`
	if err := postgres.Ext(ctx, r.DB).SelectContext(ctx, &types, query, args...); err != nil {
		return nil, err
	}
	return types, nil
}

func (r *PGRepository) FindTypeByID(ctx context.Context, id int64) (*model.ProductType, error) {
	return r.findType(ctx, `SELECT * FROM product_types WHERE id = $1`, id)
}

func (r *PGRepository) FindTypeByName(ctx context.Context, name string) (*model.ProductType, error) {
	return r.findType(ctx, `SELECT * FROM product_types WHERE lower(name) = lower($1)`, name)
}

func (r *PGRepository) findType(ctx context.Context, query string, arg interface{}) (*model.ProductType, error) {
	var t model.ProductType
	err := postgres.Ext(ctx, r.DB).GetContext(ctx, &t, query, arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *PGRepository) CreateType(ctx context.Context, t *model.ProductType) error {
	query := `INSERT INTO product_types (name) VALUES (:name) RETURNING id, created_at`
	return postgres.NamedGet(ctx, postgres.Ext(ctx, r.DB), t, query, t)
}

func (r *PGRepository) UpdateType(ctx context.Context, t *model.ProductType) error {
	_, err := postgres.Ext(ctx, r.DB).NamedExecContext(ctx, `UPDATE product_types SET name = :name WHERE id = :id`, t)
	return err
}

func (r *PGRepository) CountTypeProducts(ctx context.Context, id int64) (int64, error) {
	var n int64
	err := postgres.Ext(ctx, r.DB).GetContext(ctx, &n, `SELECT count(*) FROM products WHERE type_id = $1`, id)
	return n, err
}

func (r *PGRepository) DeleteType(ctx context.Context, id int64) (bool, error) {
	res, err := postgres.Ext(ctx, r.DB).ExecContext(ctx, `DELETE FROM product_types WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *PGRepository) ListOptions(ctx context.Context, keyword string) ([]model.OptionDefinition, error) {
	options := []model.OptionDefinition{}
	query := `SELECT * FROM option_definitions`
	args := []interface{}{}
	if keyword != "" {
		query += ` WHERE title ILIKE $1`
		args = append(args, "%"+keyword+"%")
	}
	query += ` ORDER BY title ASC, id ASC`

	q := postgres.Ext(ctx, r.DB)
	if err := q.SelectContext(ctx, &options, query, args...); err != nil {
		return nil, err
	}
	if err := r.attachValues(ctx, q, options); err != nil {
		return nil, err
	}
	return options, nil
}

func (r *PGRepository) FindOptionByID(ctx context.Context, id int64) (*model.OptionDefinition, error) {
	q := postgres.Ext(ctx, r.DB)
	var o model.OptionDefinition
	if err := q.GetContext(ctx, &o, `SELECT * FROM option_definitions WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	options := []model.OptionDefinition{o}
	if err := r.attachValues(ctx, q, options); err != nil {
		return nil, err
	}
	return &options[0], nil
}

func (r *PGRepository) attachValues(ctx context.Context, q postgres.Querier, options []model.OptionDefinition) error {
	if len(options) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(options))
	index := make(map[int64]int, len(options))
	for i := range options {
		options[i].Values = []model.OptionValue{}
		ids = append(ids, options[i].ID)
		index[options[i].ID] = i
	}

	query, args, err := sqlx.In(`SELECT * FROM option_values WHERE option_id IN (?) ORDER BY price ASC, id ASC`, ids)
	if err != nil {
		return err
	}
	var values []model.OptionValue
	if err := q.SelectContext(ctx, &values, q.Rebind(query), args...); err != nil {
		return err
	}
	for _, v := range values {
		if i, ok := index[v.OptionID]; ok {
			options[i].Values = append(options[i].Values, v)
		}
	}
	return nil
}

func (r *PGRepository) CreateOption(ctx context.Context, o *model.OptionDefinition) error {
	query := `
        INSERT INTO option_definitions (title, required, allows_multiple)
        VALUES (:title, :required, :allows_multiple)
        RETURNING id, created_at
    `
	return postgres.NamedGet(ctx, postgres.Ext(ctx, r.DB), o, query, o)
}

func (r *PGRepository) CreateOptionValues(ctx context.Context, values []model.OptionValue) error {
	if len(values) == 0 {
		return nil
	}
	query := `INSERT INTO option_values (option_id, name, price) VALUES (:option_id, :name, :price)`
	_, err := postgres.Ext(ctx, r.DB).NamedExecContext(ctx, query, values)
	return err
}

func (r *PGRepository) UpdateOption(ctx context.Context, o *model.OptionDefinition) error {
	query := `
        UPDATE option_definitions
        SET title = :title, required = :required, allows_multiple = :allows_multiple
        WHERE id = :id
    `
	_, err := postgres.Ext(ctx, r.DB).NamedExecContext(ctx, query, o)
	return err
}

func (r *PGRepository) ProductExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := postgres.Ext(ctx, r.DB).GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, id)
	return exists, err
}

type productValueRow struct {
	ProductOptionID int64 `db:"product_option_id"`
	model.OptionValue
}

func (r *PGRepository) FindProductOptions(ctx context.Context, productID int64) ([]model.ProductOption, error) {
	q := postgres.Ext(ctx, r.DB)
	options := []model.ProductOption{}
	query := `
        SELECT po.id, po.product_id, po.option_id, o.title, o.required, o.allows_multiple
        FROM product_options po
        JOIN option_definitions o ON o.id = po.option_id
        WHERE po.product_id = $1
        ORDER BY o.required DESC, o.title ASC, po.id ASC
    `
	if err := q.SelectContext(ctx, &options, query, productID); err != nil {
		return nil, err
	}
	if len(options) == 0 {
		return options, nil
	}

	ids := make([]int64, 0, len(options))
	index := make(map[int64]int, len(options))
	for i := range options {
		options[i].Values = []model.OptionValue{}
		ids = append(ids, options[i].ID)
		index[options[i].ID] = i
	}
	valuesQuery, args, err := sqlx.In(`
        SELECT pov.product_option_id, v.*
        FROM product_option_values pov
        JOIN option_values v ON v.id = pov.option_value_id
        WHERE pov.product_option_id IN (?)
        ORDER BY v.price ASC, v.id ASC`, ids)
	if err != nil {
		return nil, err
	}
	var rows []productValueRow
	if err := q.SelectContext(ctx, &rows, q.Rebind(valuesQuery), args...); err != nil {
		return nil, err
	}
	for _, row := range rows {
		if i, ok := index[row.ProductOptionID]; ok {
			options[i].Values = append(options[i].Values, row.OptionValue)
		}
	}
	return options, nil
}

func (r *PGRepository) DeleteProductOptions(ctx context.Context, productID int64) error {
	_, err := postgres.Ext(ctx, r.DB).ExecContext(ctx, `DELETE FROM product_options WHERE product_id = $1`, productID)
	return err
}

func (r *PGRepository) CreateProductOption(ctx context.Context, po *model.ProductOption) error {
	query := `INSERT INTO product_options (product_id, option_id) VALUES (:product_id, :option_id) RETURNING id`
	return postgres.NamedGet(ctx, postgres.Ext(ctx, r.DB), &po.ID, query, po)
}

type productValueLink struct {
	ProductOptionID int64 `db:"product_option_id"`
	OptionValueID   int64 `db:"option_value_id"`
}

func (r *PGRepository) AddProductOptionValues(ctx context.Context, productOptionID int64, valueIDs []int64) error {
	if len(valueIDs) == 0 {
		return nil
	}
	links := make([]productValueLink, 0, len(valueIDs))
	for _, id := range valueIDs {
		links = append(links, productValueLink{ProductOptionID: productOptionID, OptionValueID: id})
	}
	query := `
        INSERT INTO product_option_values (product_option_id, option_value_id)
        VALUES (:product_option_id, :option_value_id)
    `
	_, err := postgres.Ext(ctx, r.DB).NamedExecContext(ctx, query, links)
	return err
}
