package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fekuna/omnipos-cafe-service/internal/product/dto"
	"github.com/jmoiron/sqlx"
)

func newRepo(t *testing.T) (*PGRepository, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { raw.Close() })
	return NewPGRepository(sqlx.NewDb(raw, "pgx")), mock
}

func TestFindAllJoinsCategory(t *testing.T) {
	repo, mock := newRepo(t)
	cat := int64(2)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM products p WHERE p.category_id = $1")).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("LEFT JOIN categories c ON c.id = p.category_id WHERE p.category_id = $1 ORDER BY p.created_at DESC, p.id DESC LIMIT 20 OFFSET 0")).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "category_id", "category_name"}).
			AddRow(int64(1), "Bạc xỉu", int64(29000), int64(2), "Cà phê"))

	items, count, err := repo.FindAll(context.Background(), &dto.ProductFilters{CategoryID: &cat, Page: 1, PageSize: 20})
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 || len(items) != 1 || *items[0].CategoryName != "Cà phê" {
		t.Errorf("count=%d items=%+v", count, items)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestFindByIDMissingReturnsNil(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE p.id = $1")).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	p, err := repo.FindByID(context.Background(), 9)
	if err != nil || p != nil {
		t.Errorf("p=%v err=%v", p, err)
	}
}

func TestFindAllFiltersByType(t *testing.T) {
	repo, mock := newRepo(t)
	typeID := int64(4)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM products p WHERE p.type_id = $1")).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("LEFT JOIN product_types t ON t.id = p.type_id")).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "type_id", "type_name"}).
			AddRow(int64(1), "Bạc xỉu", int64(4), "Đồ uống"))

	items, _, err := repo.FindAll(context.Background(), &dto.ProductFilters{TypeID: &typeID})
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || *items[0].TypeName != "Đồ uống" {
		t.Errorf("items = %+v", items)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
