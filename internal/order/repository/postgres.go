package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fekuna/omnipos-cafe-service/internal/model"
	"github.com/fekuna/omnipos-cafe-service/internal/order/dto"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/postgres"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, o *model.Order) error {
	query := `
        INSERT INTO orders (type, note, total, status, void, created_by, created_at)
        VALUES (:type, :note, :total, :status, FALSE, :created_by, :created_at)
        RETURNING id
    `
	return postgres.NamedGet(ctx, postgres.Ext(ctx, r.DB), &o.ID, query, o)
}

func (r *PGRepository) CreateItem(ctx context.Context, item *model.OrderItem) error {
	query := `
        INSERT INTO order_items (order_id, product_id, name, quantity, price, discount, is_gift)
        VALUES (:order_id, :product_id, :name, :quantity, :price, :discount, :is_gift)
        RETURNING id
    `
	return postgres.NamedGet(ctx, postgres.Ext(ctx, r.DB), &item.ID, query, item)
}

func (r *PGRepository) CreateItemOption(ctx context.Context, opt *model.OrderItemOption) error {
	query := `
        INSERT INTO order_item_options (order_item_id, option_id, title)
        VALUES (:order_item_id, :option_id, :title)
        RETURNING id
    `
	return postgres.NamedGet(ctx, postgres.Ext(ctx, r.DB), &opt.ID, query, opt)
}

func (r *PGRepository) CreateOptionValues(ctx context.Context, values []model.OrderItemOptionValue) error {
	if len(values) == 0 {
		return nil
	}
	query := `
        INSERT INTO order_item_option_values (order_item_option_id, value_id, name, price)
        VALUES (:order_item_option_id, :value_id, :name, :price)
    `
	_, err := postgres.Ext(ctx, r.DB).NamedExecContext(ctx, query, values)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id int64) (*model.Order, error) {
	var o model.Order
	err := postgres.Ext(ctx, r.DB).GetContext(ctx, &o, `SELECT * FROM orders WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.OrderFilters) ([]model.Order, error) {
	var orders []model.Order

	conditions := []string{"void = FALSE"}
	args := map[string]interface{}{}

	if f.From != nil {
		conditions = append(conditions, "created_at >= :from")
		args["from"] = *f.From
	}
	if f.To != nil {
		conditions = append(conditions, "created_at <= :to")
		args["to"] = *f.To
	}
	if f.ID != nil {
		conditions = append(conditions, "id = :id")
		args["id"] = *f.ID
	}
	if f.Type != "" {
		conditions = append(conditions, "type = :type")
		args["type"] = f.Type
	}
	if f.Status != "" {
		conditions = append(conditions, "status = :status")
		args["status"] = f.Status
	}

	query := "SELECT * FROM orders WHERE " + strings.Join(conditions, " AND ") + " ORDER BY created_at DESC, id DESC"
	if err := postgres.NamedSelect(ctx, postgres.Ext(ctx, r.DB), &orders, query, args); err != nil {
		return nil, err
	}
	return orders, nil
}

type itemRow struct {
	model.OrderItem
	ProductName  string  `db:"product_name"`
	ProductImage *string `db:"product_image"`
}

// FindDetail loads the order tree level by level: items with their product,
// then options, then option values.
func (r *PGRepository) FindDetail(ctx context.Context, id int64) (*model.OrderDetail, error) {
	o, err := r.FindByID(ctx, id)
	if err != nil || o == nil || o.Void {
		return nil, err
	}
	q := postgres.Ext(ctx, r.DB)
	detail := &model.OrderDetail{Order: *o, Items: []model.OrderItemDetail{}}

	var items []itemRow
	itemsQuery := `
        SELECT oi.*, p.name AS product_name, p.image AS product_image
        FROM order_items oi
        JOIN products p ON p.id = oi.product_id
        WHERE oi.order_id = $1
        ORDER BY oi.id
    `
	if err := q.SelectContext(ctx, &items, itemsQuery, id); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return detail, nil
	}

	itemIDs := make([]int64, 0, len(items))
	for _, it := range items {
		itemIDs = append(itemIDs, it.ID)
	}
	var options []model.OrderItemOption
	if err := selectIn(ctx, q, &options, `SELECT * FROM order_item_options WHERE order_item_id IN (?) ORDER BY id`, itemIDs); err != nil {
		return nil, err
	}

	var values []model.OrderItemOptionValue
	if len(options) > 0 {
		optionIDs := make([]int64, 0, len(options))
		for _, opt := range options {
			optionIDs = append(optionIDs, opt.ID)
		}
		if err := selectIn(ctx, q, &values, `SELECT * FROM order_item_option_values WHERE order_item_option_id IN (?) ORDER BY id`, optionIDs); err != nil {
			return nil, err
		}
	}

	valuesByOption := make(map[int64][]model.OrderItemOptionValue)
	for _, v := range values {
		valuesByOption[v.OrderItemOptionID] = append(valuesByOption[v.OrderItemOptionID], v)
	}
	optionsByItem := make(map[int64][]model.OrderItemOptionDetail)
	for _, opt := range options {
		vs := valuesByOption[opt.ID]
		if vs == nil {
			vs = []model.OrderItemOptionValue{}
		}
		optionsByItem[opt.OrderItemID] = append(optionsByItem[opt.OrderItemID], model.OrderItemOptionDetail{OrderItemOption: opt, Values: vs})
	}

	for _, it := range items {
		opts := optionsByItem[it.ID]
		if opts == nil {
			opts = []model.OrderItemOptionDetail{}
		}
		detail.Items = append(detail.Items, model.OrderItemDetail{
			OrderItem: it.OrderItem,
			Product:   model.ProductSummary{ID: it.ProductID, Name: it.ProductName, Image: it.ProductImage},
			Options:   opts,
		})
	}
	return detail, nil
}

func selectIn(ctx context.Context, q postgres.Querier, dest interface{}, query string, ids []int64) error {
	query, args, err := sqlx.In(query, ids)
	if err != nil {
		return err
	}
	return q.SelectContext(ctx, dest, q.Rebind(query), args...)
}

func (r *PGRepository) ListItems(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	var items []model.OrderItem
	err := postgres.Ext(ctx, r.DB).SelectContext(ctx, &items, `SELECT * FROM order_items WHERE order_id = $1 ORDER BY id`, orderID)
	return items, err
}

func (r *PGRepository) UpdateHeader(ctx context.Context, o *model.Order) error {
	query := `UPDATE orders SET type = :type, note = :note, total = :total WHERE id = :id`
	_, err := postgres.Ext(ctx, r.DB).NamedExecContext(ctx, query, o)
	return err
}

func (r *PGRepository) UpdateItemQuantity(ctx context.Context, orderID, itemID, quantity int64) (bool, error) {
	res, err := postgres.Ext(ctx, r.DB).ExecContext(ctx,
		`UPDATE order_items SET quantity = $3 WHERE id = $2 AND order_id = $1`,
		orderID, itemID, quantity)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *PGRepository) DeleteItems(ctx context.Context, orderID int64, itemIDs []int64) (int64, error) {
	if len(itemIDs) == 0 {
		return 0, nil
	}
	q := postgres.Ext(ctx, r.DB)
	query, args, err := sqlx.In(`DELETE FROM order_items WHERE order_id = ? AND id IN (?)`, orderID, itemIDs)
	if err != nil {
		return 0, err
	}
	res, err := q.ExecContext(ctx, q.Rebind(query), args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *PGRepository) Void(ctx context.Context, id int64) (bool, error) {
	res, err := postgres.Ext(ctx, r.DB).ExecContext(ctx,
		`UPDATE orders SET void = TRUE WHERE id = $1 AND status = 'UNPAID' AND void = FALSE`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *PGRepository) MarkPaid(ctx context.Context, id, paymentID int64, paidAt time.Time) (*model.Order, error) {
	query := `
        UPDATE orders
        SET payment_id = $2, payment_at = $3, status = 'PAID'
        WHERE id = $1 AND status = 'UNPAID' AND void = FALSE
        RETURNING *
    `
	var o model.Order
	if err := postgres.Ext(ctx, r.DB).GetContext(ctx, &o, query, id, paymentID, paidAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *PGRepository) ListPaymentMethods(ctx context.Context) ([]model.Payment, error) {
	var methods []model.Payment
	err := postgres.Ext(ctx, r.DB).SelectContext(ctx, &methods, `SELECT id, type FROM payments ORDER BY id`)
	return methods, err
}

func (r *PGRepository) FindPaymentMethod(ctx context.Context, id int64) (*model.Payment, error) {
	var p model.Payment
	if err := postgres.Ext(ctx, r.DB).GetContext(ctx, &p, `SELECT id, type FROM payments WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}
