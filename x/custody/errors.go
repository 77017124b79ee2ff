package custody

import (
	"github.com/iov-one/quorum/errors"
)

// custody errors are in the 1130~1139 range
var (
	ErrOnlyAdmin      = errors.Register(1130, "only admin")
	ErrWithdrawFailed = errors.Register(1131, "withdraw failed")
)
