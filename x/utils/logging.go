package utils

import (
	"time"

	"github.com/iov-one/quorum"
)

// Logging reports every invocation passing through it together with the
// time it took. Failed invocations are logged at error level.
type Logging struct{}

var _ quorum.Decorator = Logging{}

func NewLogging() Logging {
	return Logging{}
}

func (Logging) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx, next quorum.Handler) (*quorum.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)

	logger := quorum.GetLogger(ctx).With(
		"action", quorum.GetPath(tx),
		"duration", time.Since(start)/time.Microsecond,
	)
	switch {
	case err != nil:
		logger.Error("invocation failed", "err", err)
	case res != nil && res.Log != "":
		logger.Info("invocation done", "log", res.Log)
	default:
		logger.Info("invocation done")
	}
	return res, err
}
