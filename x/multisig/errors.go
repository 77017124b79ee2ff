package multisig

import (
	"github.com/iov-one/quorum/errors"
)

// multisig errors are in the 1100~1119 range
var (
	ErrOnlyOwner              = errors.Register(1100, "only an owner")
	ErrOnlyWallet             = errors.Register(1101, "only this address")
	ErrTxNotFound             = errors.Register(1102, "transaction does not exist")
	ErrAlreadyConfirmed       = errors.Register(1103, "only not confirmed")
	ErrNotConfirmed           = errors.Register(1104, "only confirmed")
	ErrAlreadyExecuted        = errors.Register(1105, "only not executed")
	ErrNotEnoughConfirmations = errors.Register(1106, "not enough confirmations")
	ErrInvalidLengths         = errors.Register(1107, "invalid lengths")
	ErrInvalidTarget          = errors.Register(1108, "invalid target address")
	ErrInvalidAction          = errors.Register(1109, "invalid action")
	ErrTransactionFailure     = errors.Register(1110, "transaction failure")
	ErrInvalidOwner           = errors.Register(1111, "invalid owner")
	ErrInvalidRequirement     = errors.Register(1112, "invalid _required or ownerCount")
)
