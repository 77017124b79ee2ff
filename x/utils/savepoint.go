package utils

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

// Savepoint will isolate all data inside of the call,
// and commit/rollback to savepoint based on if error.
//
// Events emitted by the wrapped handler are collected separately and merged
// into the context event log only when the call succeeds.
type Savepoint struct{}

var _ quorum.Decorator = Savepoint{}

// NewSavepoint creates a Savepoint decorator.
func NewSavepoint() Savepoint {
	return Savepoint{}
}

// Deliver sets a savepoint and rolls back to it if the handler fails.
func (Savepoint) Deliver(ctx quorum.Context, store quorum.KVStore, tx quorum.Tx, next quorum.Handler) (*quorum.DeliverResult, error) {
	cstore, ok := store.(quorum.CacheableKVStore)
	if !ok {
		return next.Deliver(ctx, store, tx)
	}

	parent, hasLog := quorum.GetEventLog(ctx)
	child := quorum.NewEventLog()
	if hasLog {
		ctx = quorum.WithEventLog(ctx, child)
	}

	cache := cstore.CacheWrap()
	res, err := next.Deliver(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "writing savepoint")
	}
	if hasLog {
		parent.Merge(child)
	}
	return res, nil
}
