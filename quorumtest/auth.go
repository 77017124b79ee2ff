package quorumtest

import (
	"github.com/iov-one/quorum"
)

// Auth authenticates a fixed set of addresses, regardless of the context.
// Signers come first, followed by Signer when it is set.
type Auth struct {
	Signer  quorum.Address
	Signers []quorum.Address
}

func (a *Auth) GetAddresses(quorum.Context) []quorum.Address {
	if a.Signer == nil {
		return a.Signers
	}
	addrs := make([]quorum.Address, 0, len(a.Signers)+1)
	addrs = append(addrs, a.Signers...)
	return append(addrs, a.Signer)
}

func (a *Auth) HasAddress(ctx quorum.Context, addr quorum.Address) bool {
	for _, s := range a.GetAddresses(ctx) {
		if addr.Equals(s) {
			return true
		}
	}
	return false
}
