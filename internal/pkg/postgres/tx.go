package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-cafe-service/internal/pkg/apperr"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/logger"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// Querier is satisfied by both *sqlx.DB and *sqlx.Tx.
type Querier interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
	PrepareNamedContext(ctx context.Context, query string) (*sqlx.NamedStmt, error)
}

type TxOptions struct {
	Isolation sql.IsolationLevel
}

var (
	Serializable  = TxOptions{Isolation: sql.LevelSerializable}
	ReadCommitted = TxOptions{Isolation: sql.LevelReadCommitted}
)

// Transactor runs fn inside one database transaction. Repositories called
// with the ctx passed to fn join that transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, opts TxOptions, fn func(ctx context.Context) error) error
}

type txKey struct{}

type TxManager struct {
	db          *sqlx.DB
	lockTimeout time.Duration
	timeout     time.Duration
	logger      logger.ZapLogger
}

func NewTxManager(db *sqlx.DB, lockTimeout, timeout time.Duration, log logger.ZapLogger) *TxManager {
	return &TxManager{
		db:          db,
		lockTimeout: lockTimeout,
		timeout:     timeout,
		logger:      log,
	}
}

func (m *TxManager) WithinTransaction(ctx context.Context, opts TxOptions, fn func(ctx context.Context) error) error {
	// Nested calls join the outer transaction.
	if _, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok {
		return fn(ctx)
	}

	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	tx, err := m.db.BeginTxx(ctx, &sql.TxOptions{Isolation: opts.Isolation})
	if err != nil {
		return apperr.TransactionFailure(fmt.Errorf("begin: %w", err))
	}
	defer tx.Rollback()

	if m.lockTimeout > 0 {
		stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", m.lockTimeout.Milliseconds())
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return apperr.TransactionFailure(fmt.Errorf("set lock timeout: %w", err))
		}
	}

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return m.classify(ctx, err)
	}

	if err := tx.Commit(); err != nil {
		return m.classify(ctx, fmt.Errorf("commit: %w", err))
	}
	return nil
}

// classify turns timeouts, lock waits and serialization failures into
// TransactionFailure and leaves domain errors untouched.
func (m *TxManager) classify(ctx context.Context, err error) error {
	if apperr.KindOf(err) != apperr.KindInternal {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) || IsTransient(err) {
		m.logger.Warn("transaction aborted", zap.Error(err))
		return apperr.TransactionFailure(err)
	}
	return err
}

// Ext returns the transaction bound to ctx, or db when there is none.
func Ext(ctx context.Context, db *sqlx.DB) Querier {
	if tx, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok {
		return tx
	}
	return db
}

// InTransaction reports whether ctx carries a transaction.
func InTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(txKey{}).(*sqlx.Tx)
	return ok
}
