package token

import (
	"github.com/iov-one/quorum/errors"
)

// token errors are in the 1140~1149 range
var (
	ErrInsufficientBalance = errors.Register(1140, "insufficient token balance")
)
