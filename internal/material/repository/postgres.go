package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/omnipos-cafe-service/internal/material/dto"
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

const selectMaterial = `
        SELECT m.*, u.name AS unit_name
        FROM materials m
        JOIN units u ON u.id = m.unit_id`

func (r *PGRepository) LockForUpdate(ctx context.Context, id int64) (*model.Material, error) {
	var m model.Material
	err := postgres.Ext(ctx, r.DB).GetContext(ctx, &m, selectMaterial+` WHERE m.id = $1 FOR UPDATE OF m`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *PGRepository) ApplyStockDelta(ctx context.Context, id, delta int64, direction string, at time.Time) (int64, error) {
	stamp := ""
	switch direction {
	case model.DirectionImport:
		stamp = ", latest_import_date = $3"
	case model.DirectionExport:
		stamp = ", latest_export_date = $3"
	}
	query := `UPDATE materials SET stock_quantity = stock_quantity + $2` + stamp + `, updated_at = $3
        WHERE id = $1 RETURNING stock_quantity`

	var qty int64
	if err := postgres.Ext(ctx, r.DB).GetContext(ctx, &qty, query, id, delta, at); err != nil {
		return 0, fmt.Errorf("failed to update stock: %w", err)
	}
	return qty, nil
}

func (r *PGRepository) LogMovement(ctx context.Context, m *model.MaterialMovement) error {
	query := `
        INSERT INTO material_movements (
            id, material_id, direction, quantity_change, quantity_after,
            reference_type, reference_id, created_by, created_at
        )
        VALUES (
            :id, :material_id, :direction, :quantity_change, :quantity_after,
            :reference_type, :reference_id, :created_by, :created_at
        )
    `
	_, err := postgres.Ext(ctx, r.DB).NamedExecContext(ctx, query, m)
	if err != nil {
		return fmt.Errorf("failed to log movement: %w", err)
	}
	return nil
}

func (r *PGRepository) Create(ctx context.Context, m *model.Material) error {
	query := `
        INSERT INTO materials (
            name, stock_quantity, min_stock, unit_id, expiration_date,
            active, created_by, last_updated_by
        )
        VALUES (
            :name, :stock_quantity, :min_stock, :unit_id, :expiration_date,
            :active, :created_by, :last_updated_by
        )
        RETURNING id, created_at, updated_at
    `
	return postgres.NamedGet(ctx, postgres.Ext(ctx, r.DB), m, query, m)
}

func (r *PGRepository) FindByID(ctx context.Context, id int64) (*model.Material, error) {
	var m model.Material
	err := postgres.Ext(ctx, r.DB).GetContext(ctx, &m, selectMaterial+` WHERE m.id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *PGRepository) FindByName(ctx context.Context, name string) (*model.Material, error) {
	var m model.Material
	err := postgres.Ext(ctx, r.DB).GetContext(ctx, &m, selectMaterial+` WHERE lower(m.name) = lower($1)`, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.MaterialFilters) ([]model.Material, int, error) {
	var items []model.Material
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.Keyword != "" {
		conditions = append(conditions, "m.name ILIKE :keyword")
		args["keyword"] = "%" + f.Keyword + "%"
	}
	if f.Active != nil {
		conditions = append(conditions, "m.active = :active")
		args["active"] = *f.Active
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	q := postgres.Ext(ctx, r.DB)
	if err := postgres.NamedGet(ctx, q, &count, "SELECT count(*) FROM materials m"+whereClause, args); err != nil {
		return nil, 0, err
	}

	query := selectMaterial + whereClause + " ORDER BY m.name ASC" + postgres.PageClause(f.Page, f.PageSize)
	if err := postgres.NamedSelect(ctx, q, &items, query, args); err != nil {
		return nil, 0, err
	}
	return items, count, nil
}

func (r *PGRepository) Update(ctx context.Context, m *model.Material) error {
	query := `
        UPDATE materials SET
            name = :name,
            min_stock = :min_stock,
            unit_id = :unit_id,
            expiration_date = :expiration_date,
            active = :active,
            last_updated_by = :last_updated_by,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := postgres.Ext(ctx, r.DB).NamedExecContext(ctx, query, m)
	return err
}

func (r *PGRepository) ListLowStock(ctx context.Context) ([]model.Material, error) {
	var items []model.Material
	query := selectMaterial + ` WHERE m.active AND m.stock_quantity <= m.min_stock ORDER BY m.stock_quantity ASC, m.name ASC`
	err := postgres.Ext(ctx, r.DB).SelectContext(ctx, &items, query)
	return items, err
}

func (r *PGRepository) ListMovements(ctx context.Context, f *dto.MovementFilters) ([]model.MaterialMovement, int, error) {
	var items []model.MaterialMovement
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.MaterialID != 0 {
		conditions = append(conditions, "material_id = :material_id")
		args["material_id"] = f.MaterialID
	}
	if f.Direction != "" {
		conditions = append(conditions, "direction = :direction")
		args["direction"] = f.Direction
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	q := postgres.Ext(ctx, r.DB)
	if err := postgres.NamedGet(ctx, q, &count, "SELECT count(*) FROM material_movements"+whereClause, args); err != nil {
		return nil, 0, err
	}

	query := "SELECT * FROM material_movements" + whereClause + " ORDER BY created_at DESC" + postgres.PageClause(f.Page, f.PageSize)
	if err := postgres.NamedSelect(ctx, q, &items, query, args); err != nil {
		return nil, 0, err
	}
	return items, count, nil
}

func (r *PGRepository) ListUnits(ctx context.Context) ([]model.Unit, error) {
	var units []model.Unit
	err := postgres.Ext(ctx, r.DB).SelectContext(ctx, &units, `SELECT * FROM units ORDER BY name ASC`)
	return units, err
}

func (r *PGRepository) FindUnitByID(ctx context.Context, id int64) (*model.Unit, error) {
	var u model.Unit
	err := postgres.Ext(ctx, r.DB).GetContext(ctx, &u, `SELECT * FROM units WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *PGRepository) FindUnitByName(ctx context.Context, name string) (*model.Unit, error) {
	var u model.Unit
	err := postgres.Ext(ctx, r.DB).GetContext(ctx, &u, `SELECT * FROM units WHERE lower(name) = lower($1)`, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *PGRepository) CreateUnit(ctx context.Context, u *model.Unit) error {
	return postgres.NamedGet(ctx, postgres.Ext(ctx, r.DB), &u.ID,
		`INSERT INTO units (name, short) VALUES (:name, :short) RETURNING id`, u)
}

func (r *PGRepository) DeleteUnit(ctx context.Context, id int64) error {
	_, err := postgres.Ext(ctx, r.DB).ExecContext(ctx, `DELETE FROM units WHERE id = $1`, id)
	return err
}

func (r *PGRepository) CountByUnit(ctx context.Context, unitID int64) (int, error) {
	var count int
	err := postgres.Ext(ctx, r.DB).GetContext(ctx, &count, `SELECT count(*) FROM materials WHERE unit_id = $1`, unitID)
	return count, err
}
