package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
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

func TestListUserRolesBindsAllUsers(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE ur.user_id IN ($1, $2)")).
		WithArgs("u1", "u2").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "role_id", "name", "color"}).
			AddRow("u1", int64(1), "ADMIN", "#ef4444").
			AddRow("u2", int64(2), "Barista", "#10b981"))

	roles, err := repo.ListUserRoles(context.Background(), []string{"u1", "u2"})
	if err != nil {
		t.Fatal(err)
	}
	if len(roles) != 2 || roles[1].UserID != "u2" || roles[1].RoleID != 2 {
		t.Errorf("roles = %+v", roles)
	}

	empty, err := repo.ListUserRoles(context.Background(), nil)
	if err != nil || empty == nil || len(empty) != 0 {
		t.Errorf("empty = %v err=%v", empty, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestReplaceUserRoles(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM user_roles WHERE user_id = $1")).
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO user_roles (user_id, role_id)")).
		WithArgs("u1", int64(2), "u1", int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM user_roles WHERE user_id = $1")).
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 2))

	if err := repo.ReplaceUserRoles(context.Background(), "u1", []int64{2, 3}); err != nil {
		t.Fatal(err)
	}
	if err := repo.ReplaceUserRoles(context.Background(), "u1", nil); err != nil {
		t.Fatal(err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestDeactivateReportsMissingUser(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET active = FALSE WHERE id = $1 AND active")).
		WithArgs("gone").
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.Deactivate(context.Background(), "gone")
	if err != nil || ok {
		t.Errorf("ok=%v err=%v", ok, err)
	}
}

func TestFindRoleCountsActiveUsers(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("JOIN users u ON u.id = ur.user_id AND u.active")).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "color", "user_count"}).
			AddRow(int64(2), "Barista", "#10b981", 4))

	role, err := repo.FindRole(context.Background(), 2)
	if err != nil {
		t.Fatal(err)
	}
	if role == nil || role.UserCount != 4 || role.Color != "#10b981" {
		t.Errorf("role = %+v", role)
	}
}

func TestCountPermissions(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM permissions WHERE id IN ($1, $2, $3)")).
		WithArgs(int64(1), int64(2), int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	n, err := repo.CountPermissions(context.Background(), []int64{1, 2, 3})
	if err != nil || n != 2 {
		t.Errorf("n=%d err=%v", n, err)
	}

	n, err = repo.CountPermissions(context.Background(), nil)
	if err != nil || n != 0 {
		t.Errorf("empty n=%d err=%v", n, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
