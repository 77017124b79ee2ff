package multisig

import (
	"encoding/binary"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/codec"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/orm"
)

// Wallet is the state of a single multisig wallet, stored under the wallet
// address.
type Wallet struct {
	// Owners is the ordered list of addresses allowed to manage
	// transactions of this wallet.
	Owners []quorum.Address
	// Required is the number of owner confirmations a transaction must
	// collect before it can be executed.
	Required uint32
	// Executed is the number of executed transactions.
	Executed uint64
}

var _ orm.Model = (*Wallet)(nil)

func (w *Wallet) Marshal() ([]byte, error) {
	e := codec.NewEncoder()
	e.RepeatedBytes(1, addressesToBytes(w.Owners))
	e.Uint64(2, uint64(w.Required))
	e.Uint64(3, w.Executed)
	return e.Result()
}

func (w *Wallet) Unmarshal(raw []byte) error {
	*w = Wallet{}
	return codec.Decode(raw, func(field int, d *codec.Decoder) error {
		switch field {
		case 1:
			b, err := d.Bytes()
			w.Owners = append(w.Owners, b)
			return err
		case 2:
			v, err := d.Uint32()
			w.Required = v
			return err
		case 3:
			v, err := d.Uint64()
			w.Executed = v
			return err
		default:
			return d.Skip()
		}
	})
}

// Validate ensures the owner set is unique and the requirement can be
// fulfilled.
func (w *Wallet) Validate() error {
	if w.Required == 0 || int(w.Required) > len(w.Owners) {
		return errors.Wrapf(errors.ErrModel, "%d of %d owners required", w.Required, len(w.Owners))
	}
	seen := make(map[string]struct{}, len(w.Owners))
	for i, o := range w.Owners {
		if err := o.Validate(); err != nil {
			return errors.Wrapf(errors.ErrModel, "owner %d: %s", i, err)
		}
		if _, ok := seen[string(o)]; ok {
			return errors.Wrapf(errors.ErrModel, "owner %d: duplicate", i)
		}
		seen[string(o)] = struct{}{}
	}
	return nil
}

// IsOwner returns true if given address is one of the wallet owners.
func (w *Wallet) IsOwner(addr quorum.Address) bool {
	return w.ownerIndex(addr) >= 0
}

func (w *Wallet) ownerIndex(addr quorum.Address) int {
	if len(addr) == 0 {
		return -1
	}
	for i, o := range w.Owners {
		if o.Equals(addr) {
			return i
		}
	}
	return -1
}

// Transaction is a submitted list of actions. Only the commitments of the
// actions are stored.
type Transaction struct {
	ActionHashes [][]byte
	Executed     bool
}

var _ orm.Model = (*Transaction)(nil)

func (t *Transaction) Marshal() ([]byte, error) {
	e := codec.NewEncoder()
	e.RepeatedBytes(1, t.ActionHashes)
	e.Bool(2, t.Executed)
	return e.Result()
}

func (t *Transaction) Unmarshal(raw []byte) error {
	*t = Transaction{}
	return codec.Decode(raw, func(field int, d *codec.Decoder) error {
		switch field {
		case 1:
			b, err := d.Bytes()
			t.ActionHashes = append(t.ActionHashes, b)
			return err
		case 2:
			v, err := d.Bool()
			t.Executed = v
			return err
		default:
			return d.Skip()
		}
	})
}

func (t *Transaction) Validate() error {
	if len(t.ActionHashes) == 0 {
		return errors.Wrap(errors.ErrModel, "no actions")
	}
	for i, h := range t.ActionHashes {
		if len(h) != word {
			return errors.Wrapf(errors.ErrModel, "action %d: invalid hash length", i)
		}
	}
	return nil
}

// Confirmation records an approval of a transaction by an owner. It is
// removed on revocation.
type Confirmation struct {
	Owner quorum.Address
}

var _ orm.Model = (*Confirmation)(nil)

func (c *Confirmation) Marshal() ([]byte, error) {
	e := codec.NewEncoder()
	e.Bytes(1, c.Owner)
	return e.Result()
}

func (c *Confirmation) Unmarshal(raw []byte) error {
	*c = Confirmation{}
	return codec.Decode(raw, func(field int, d *codec.Decoder) error {
		if field != 1 {
			return d.Skip()
		}
		b, err := d.Bytes()
		c.Owner = b
		return err
	})
}

func (c *Confirmation) Validate() error {
	return errors.Wrap(c.Owner.Validate(), "owner")
}

// NewWalletBucket returns a bucket storing wallets under their address.
func NewWalletBucket() orm.ModelBucket {
	return orm.NewModelBucket("msigwallet", &Wallet{})
}

// NewTransactionBucket returns a bucket storing transactions under
// txKey.
func NewTransactionBucket() orm.ModelBucket {
	return orm.NewModelBucket("msigtx", &Transaction{})
}

// NewConfirmationBucket returns a bucket storing confirmations under
// confKey.
func NewConfirmationBucket() orm.ModelBucket {
	return orm.NewModelBucket("msigconf", &Confirmation{})
}

// txKey returns the key of the transaction with given id. Keys of a wallet
// share the wallet address prefix and are ordered by id.
func txKey(wallet quorum.Address, id uint64) []byte {
	key := make([]byte, len(wallet)+8)
	copy(key, wallet)
	binary.BigEndian.PutUint64(key[len(wallet):], id)
	return key
}

func confKey(wallet quorum.Address, id uint64, owner quorum.Address) []byte {
	return append(txKey(wallet, id), owner...)
}

func addressesToBytes(addrs []quorum.Address) [][]byte {
	if addrs == nil {
		return nil
	}
	raw := make([][]byte, len(addrs))
	for i, a := range addrs {
		raw[i] = a
	}
	return raw
}
