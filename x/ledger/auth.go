package ledger

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/x"
)

// CallerAuth authenticates the immediate caller of the current call. A
// contract calling another contract is authenticated as itself.
type CallerAuth struct{}

var _ x.Authenticator = CallerAuth{}

// GetAddresses returns the immediate caller, if any.
func (CallerAuth) GetAddresses(ctx quorum.Context) []quorum.Address {
	caller, ok := quorum.GetCaller(ctx)
	if !ok {
		return nil
	}
	return []quorum.Address{caller}
}

// HasAddress returns true if given address is the immediate caller.
func (CallerAuth) HasAddress(ctx quorum.Context, addr quorum.Address) bool {
	caller, ok := quorum.GetCaller(ctx)
	return ok && caller.Equals(addr)
}
