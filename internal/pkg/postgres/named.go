package postgres

import (
	"context"
	"fmt"
)

// NamedSelect runs a :name query through q and scans all rows into dest.
func NamedSelect(ctx context.Context, q Querier, dest interface{}, query string, arg interface{}) error {
	bound, args, err := q.BindNamed(query, arg)
	if err != nil {
		return err
	}
	return q.SelectContext(ctx, dest, bound, args...)
}

// NamedGet runs a :name query through q and scans one row into dest.
func NamedGet(ctx context.Context, q Querier, dest interface{}, query string, arg interface{}) error {
	bound, args, err := q.BindNamed(query, arg)
	if err != nil {
		return err
	}
	return q.GetContext(ctx, dest, bound, args...)
}

// PageClause renders LIMIT/OFFSET for a 1-based page; empty when pageSize <= 0.
func PageClause(page, pageSize int) string {
	if pageSize <= 0 {
		return ""
	}
	if page < 1 {
		page = 1
	}
	return fmt.Sprintf(" LIMIT %d OFFSET %d", pageSize, (page-1)*pageSize)
}
