package ledger

import (
	"github.com/iov-one/quorum/codec"
	"github.com/iov-one/quorum/orm"
)

// Balance is the native value held by an account.
type Balance struct {
	Amount uint64 `json:"amount"`
}

var _ orm.Model = (*Balance)(nil)

func (b *Balance) Marshal() ([]byte, error) {
	e := codec.NewEncoder()
	e.Uint64(1, b.Amount)
	return e.Result()
}

func (b *Balance) Unmarshal(raw []byte) error {
	*b = Balance{}
	return codec.Decode(raw, func(field int, d *codec.Decoder) (err error) {
		switch field {
		case 1:
			b.Amount, err = d.Uint64()
		default:
			err = d.Skip()
		}
		return err
	})
}

// Validate accepts any balance.
func (b *Balance) Validate() error {
	return nil
}

// NewBalanceBucket returns a bucket storing balances under the account
// address.
func NewBalanceBucket() orm.ModelBucket {
	return orm.NewModelBucket("balance", &Balance{})
}
