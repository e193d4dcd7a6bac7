package repository

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-cafe-service/internal/model"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/clock"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/postgres"
	"github.com/fekuna/omnipos-cafe-service/internal/statistic/dto"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

// Days are sent as YYYY-MM-DD text so the session time zone cannot shift them.

func (r *PGRepository) AddProductSale(ctx context.Context, productID int64, day time.Time, sold, revenue int64) error {
	query := `
        INSERT INTO product_statistics (product_id, sale_date, sold, revenue)
        VALUES ($1, $2::date, $3, $4)
        ON CONFLICT (product_id, sale_date) DO UPDATE SET
            sold = product_statistics.sold + EXCLUDED.sold,
            revenue = product_statistics.revenue + EXCLUDED.revenue
    `
	_, err := postgres.Ext(ctx, r.DB).ExecContext(ctx, query, productID, clock.Format(day), sold, revenue)
	return err
}

func (r *PGRepository) AddDailySale(ctx context.Context, day time.Time, revenue, orders int64) error {
	query := `
        INSERT INTO statistics_by_day (statistics_date, revenue, number_of_order)
        VALUES ($1::date, $2, $3)
        ON CONFLICT (statistics_date) DO UPDATE SET
            revenue = statistics_by_day.revenue + EXCLUDED.revenue,
            number_of_order = statistics_by_day.number_of_order + EXCLUDED.number_of_order
    `
	_, err := postgres.Ext(ctx, r.DB).ExecContext(ctx, query, clock.Format(day), revenue, orders)
	return err
}

func (r *PGRepository) ListDaily(ctx context.Context, from, to time.Time) ([]model.StatisticsByDay, error) {
	var rows []model.StatisticsByDay
	query := `
        SELECT * FROM statistics_by_day
        WHERE statistics_date BETWEEN $1::date AND $2::date
        ORDER BY statistics_date
    `
	err := postgres.Ext(ctx, r.DB).SelectContext(ctx, &rows, query, clock.Format(from), clock.Format(to))
	return rows, err
}

func (r *PGRepository) CountPaidByType(ctx context.Context, from, to time.Time) ([]dto.LabelCount, error) {
	var rows []dto.LabelCount
	query := `
        SELECT type AS label, count(*) AS value
        FROM orders
        WHERE status = 'PAID' AND void = FALSE AND created_at BETWEEN $1 AND $2
        GROUP BY type
        ORDER BY value DESC, type
    `
	err := postgres.Ext(ctx, r.DB).SelectContext(ctx, &rows, query, clock.StartOfDay(from), clock.EndOfDay(to))
	return rows, err
}

func (r *PGRepository) CountPaidByPayment(ctx context.Context, from, to time.Time) ([]dto.LabelCount, error) {
	var rows []dto.LabelCount
	query := `
        SELECT p.type AS label, count(*) AS value
        FROM orders o
        JOIN payments p ON p.id = o.payment_id
        WHERE o.status = 'PAID' AND o.void = FALSE AND o.created_at BETWEEN $1 AND $2
        GROUP BY p.id, p.type
        ORDER BY p.id
    `
	err := postgres.Ext(ctx, r.DB).SelectContext(ctx, &rows, query, clock.StartOfDay(from), clock.EndOfDay(to))
	return rows, err
}

func (r *PGRepository) SoldByCategory(ctx context.Context) ([]dto.LabelCount, error) {
	var rows []dto.LabelCount
	query := `
        SELECT c.name AS label, COALESCE(SUM(ps.sold), 0) AS value
        FROM categories c
        LEFT JOIN products p ON p.category_id = c.id
        LEFT JOIN product_statistics ps ON ps.product_id = p.id
        GROUP BY c.id, c.name
        ORDER BY c.id
    `
	err := postgres.Ext(ctx, r.DB).SelectContext(ctx, &rows, query)
	return rows, err
}

func (r *PGRepository) TopProducts(ctx context.Context, from, to time.Time, limit int) ([]dto.TopProduct, error) {
	var rows []dto.TopProduct
	query := `
        SELECT p.id, p.name, SUM(ps.sold) AS sales, SUM(ps.revenue) AS revenue
        FROM product_statistics ps
        JOIN products p ON p.id = ps.product_id
        WHERE ps.sale_date BETWEEN $1::date AND $2::date
        GROUP BY p.id, p.name
        ORDER BY revenue DESC, p.id
        LIMIT $3
    `
	err := postgres.Ext(ctx, r.DB).SelectContext(ctx, &rows, query, clock.Format(from), clock.Format(to), limit)
	return rows, err
}
