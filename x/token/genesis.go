package token

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

// Initializer fulfils the Initializer interface to load data from the genesis
// file
type Initializer struct{}

var _ quorum.Initializer = (*Initializer)(nil)

// FromGenesis issues initial holdings. Token is referenced by its name, see
// Address.
func (*Initializer) FromGenesis(opts quorum.Options, db quorum.KVStore) error {
	var holdings []struct {
		Token  string         `json:"token"`
		Holder quorum.Address `json:"holder"`
		Amount uint64         `json:"amount"`
	}
	if err := opts.ReadOptions("token", &holdings); err != nil {
		return err
	}
	for i, h := range holdings {
		if h.Token == "" {
			return errors.Wrapf(errors.ErrEmpty, "holding %d: token name", i)
		}
		// Return mode does not matter when issuing.
		t := NewToken(Address(h.Token), ReturnBool)
		if err := t.Issue(db, h.Holder, h.Amount); err != nil {
			return errors.Wrapf(err, "holding %d", i)
		}
	}
	return nil
}
