package token

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/orm"
)

// ReturnMode selects what a successful transfer returns.
type ReturnMode int

const (
	// ReturnBool returns a single byte holding true.
	ReturnBool ReturnMode = iota
	// ReturnNothing returns no data.
	ReturnNothing
)

// True is the return data of a successful transfer of a ReturnBool token.
var True = []byte{1}

// Address returns the address of the token with given name.
func Address(name string) quorum.Address {
	return quorum.NewCondition("token", "fungible", []byte(name)).Address()
}

// Token keeps balances of a single token.
type Token struct {
	addr     quorum.Address
	mode     ReturnMode
	holdings orm.ModelBucket
}

// NewToken returns the token deployed at given address.
func NewToken(addr quorum.Address, mode ReturnMode) *Token {
	return &Token{
		addr:     addr,
		mode:     mode,
		holdings: NewHoldingBucket(),
	}
}

// Address returns the address the token is deployed at.
func (t *Token) Address() quorum.Address {
	return t.addr
}

// Balance returns the amount of tokens held by given account.
func (t *Token) Balance(db quorum.ReadOnlyKVStore, holder quorum.Address) (uint64, error) {
	var h Holding
	switch err := t.holdings.One(db, holdingKey(t.addr, holder), &h); {
	case err == nil:
		return h.Amount, nil
	case errors.ErrNotFound.Is(err):
		return 0, nil
	default:
		return 0, err
	}
}

// Issue creates new tokens on given account.
func (t *Token) Issue(db quorum.KVStore, holder quorum.Address, amount uint64) error {
	if err := holder.Validate(); err != nil {
		return errors.Wrap(err, "holder")
	}
	have, err := t.Balance(db, holder)
	if err != nil {
		return err
	}
	if have+amount < have {
		return errors.Wrapf(errors.ErrOverflow, "holding of %s", holder)
	}
	return t.holdings.Put(db, holdingKey(t.addr, holder), &Holding{Amount: have + amount})
}

// Transfer moves tokens between two accounts.
func (t *Token) Transfer(db quorum.KVStore, from, to quorum.Address, amount uint64) error {
	have, err := t.Balance(db, from)
	if err != nil {
		return err
	}
	if have < amount {
		return errors.Wrapf(ErrInsufficientBalance, "%s has %d, %d required", from, have, amount)
	}
	if err := t.holdings.Put(db, holdingKey(t.addr, from), &Holding{Amount: have - amount}); err != nil {
		return err
	}
	return t.Issue(db, to, amount)
}

// result returns the data of a successful transfer.
func (t *Token) result() []byte {
	if t.mode == ReturnNothing {
		return nil
	}
	return True
}
