package token

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/codec"
	"github.com/iov-one/quorum/orm"
)

// Holding is the amount of a token held by an account.
type Holding struct {
	Amount uint64 `json:"amount"`
}

var _ orm.Model = (*Holding)(nil)

func (h *Holding) Marshal() ([]byte, error) {
	e := codec.NewEncoder()
	e.Uint64(1, h.Amount)
	return e.Result()
}

func (h *Holding) Unmarshal(raw []byte) error {
	*h = Holding{}
	return codec.Decode(raw, func(field int, d *codec.Decoder) (err error) {
		if field != 1 {
			return d.Skip()
		}
		h.Amount, err = d.Uint64()
		return err
	})
}

func (h *Holding) Validate() error {
	return nil
}

// NewHoldingBucket returns a bucket storing holdings of all tokens.
func NewHoldingBucket() orm.ModelBucket {
	return orm.NewModelBucket("tokenbal", &Holding{})
}

func holdingKey(token, holder quorum.Address) []byte {
	key := make([]byte, 0, len(token)+len(holder))
	key = append(key, token...)
	return append(key, holder...)
}

// Tokens returns the addresses of all tokens that have at least one holding,
// in key order.
func Tokens(db quorum.ReadOnlyKVStore) ([]quorum.Address, error) {
	keys, err := NewHoldingBucket().Keys(db, nil)
	if err != nil {
		return nil, err
	}
	var tokens []quorum.Address
	for _, k := range keys {
		t := quorum.Address(k[:quorum.AddressLength])
		if n := len(tokens); n == 0 || !tokens[n-1].Equals(t) {
			tokens = append(tokens, t.Clone())
		}
	}
	return tokens, nil
}
