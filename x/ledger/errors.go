package ledger

import (
	"github.com/iov-one/quorum/errors"
)

// ledger errors are in the 1120~1129 range
var (
	ErrCallDepth = errors.Register(1120, "call depth exceeded")
	ErrReverted  = errors.Register(1121, "call reverted")
)
