package custody

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/codec"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/orm"
)

// Vault is stored under the vault address.
type Vault struct {
	Admin quorum.Address `json:"admin"`
}

var _ orm.Model = (*Vault)(nil)

func (v *Vault) Marshal() ([]byte, error) {
	e := codec.NewEncoder()
	e.Bytes(1, v.Admin)
	return e.Result()
}

func (v *Vault) Unmarshal(raw []byte) error {
	*v = Vault{}
	return codec.Decode(raw, func(field int, d *codec.Decoder) error {
		if field != 1 {
			return d.Skip()
		}
		b, err := d.Bytes()
		v.Admin = b
		return err
	})
}

func (v *Vault) Validate() error {
	return errors.AppendField(nil, "Admin", v.Admin.Validate())
}

// NewVaultBucket returns a bucket storing vaults under their address.
func NewVaultBucket() orm.ModelBucket {
	return orm.NewModelBucket("custody", &Vault{})
}

// VaultAddress returns the address of the vault with given name.
func VaultAddress(name string) quorum.Address {
	return quorum.NewCondition("custody", "vault", []byte(name)).Address()
}

// CreateVault stores a vault with given admin at given address.
func CreateVault(db quorum.KVStore, vault, admin quorum.Address) error {
	if err := vault.Validate(); err != nil {
		return errors.Wrap(err, "vault address")
	}
	b := NewVaultBucket()
	switch err := b.Has(db, vault); {
	case err == nil:
		return errors.Wrapf(errors.ErrDuplicate, "vault %s", vault)
	case !errors.ErrNotFound.Is(err):
		return err
	}
	return b.Put(db, vault, &Vault{Admin: admin})
}
