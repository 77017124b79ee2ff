package x

import (
	"github.com/iov-one/quorum"
)

// Authenticator tells a handler who is calling it. Handlers receive one in
// their constructor, so the ledger caller can be replaced in tests.
type Authenticator interface {
	// GetAddresses returns all authenticated addresses, main signer
	// first.
	GetAddresses(quorum.Context) []quorum.Address
	// HasAddress reports whether addr is authenticated.
	HasAddress(quorum.Context, quorum.Address) bool
}

// MainSigner returns the first authenticated address, or nil when the call
// is not authenticated.
func MainSigner(ctx quorum.Context, auth Authenticator) quorum.Address {
	if addrs := auth.GetAddresses(ctx); len(addrs) > 0 {
		return addrs[0]
	}
	return nil
}
