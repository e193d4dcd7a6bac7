// Package txtest provides an in-memory Transactor whose rollback restores
// the state of registered fake stores.
package txtest

import (
	"context"
	"sync"

	"github.com/fekuna/omnipos-cafe-service/internal/pkg/postgres"
)

// Snapshotter is implemented by fake stores. Snapshot captures the current
// state and returns a func that puts it back.
type Snapshotter interface {
	Snapshot() (restore func())
}

type txKey struct{}

type Transactor struct {
	mu       sync.Mutex
	stores   []Snapshotter
	Begun    int
	Commits  int
	Rollback int
	LastOpts postgres.TxOptions
}

func New(stores ...Snapshotter) *Transactor {
	return &Transactor{stores: stores}
}

func (t *Transactor) WithinTransaction(ctx context.Context, opts postgres.TxOptions, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	// One transaction at a time, like a serializable schedule.
	t.mu.Lock()
	defer t.mu.Unlock()

	t.Begun++
	t.LastOpts = opts

	restores := make([]func(), 0, len(t.stores))
	for _, s := range t.stores {
		restores = append(restores, s.Snapshot())
	}

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		for i := len(restores) - 1; i >= 0; i-- {
			restores[i]()
		}
		t.Rollback++
		return err
	}
	t.Commits++
	return nil
}

// InTx reports whether ctx was handed out by a Transactor.
func InTx(ctx context.Context) bool {
	return ctx.Value(txKey{}) != nil
}
