package utils

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

// Recovery converts a panic raised while handling an invocation into an
// ErrPanic error. The panic value is logged.
type Recovery struct{}

var _ quorum.Decorator = Recovery{}

func NewRecovery() Recovery {
	return Recovery{}
}

func (Recovery) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx, next quorum.Handler) (res *quorum.DeliverResult, err error) {
	defer func() {
		if errors.ErrPanic.Is(err) {
			quorum.GetLogger(ctx).Error("invocation panicked", "action", quorum.GetPath(tx), "err", err)
		}
	}()
	defer errors.Recover(&err)
	return next.Deliver(ctx, db, tx)
}
