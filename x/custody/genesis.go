package custody

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

// Initializer fulfils the Initializer interface to load data from the genesis
// file
type Initializer struct{}

var _ quorum.Initializer = (*Initializer)(nil)

// FromGenesis creates vaults. Vault address is derived from its name, see
// VaultAddress.
func (*Initializer) FromGenesis(opts quorum.Options, db quorum.KVStore) error {
	var vaults []struct {
		Name  string         `json:"name"`
		Admin quorum.Address `json:"admin"`
	}
	if err := opts.ReadOptions("custody", &vaults); err != nil {
		return err
	}
	for _, v := range vaults {
		if v.Name == "" {
			return errors.Wrap(errors.ErrEmpty, "vault name")
		}
		if err := CreateVault(db, VaultAddress(v.Name), v.Admin); err != nil {
			return errors.Wrapf(err, "vault %q", v.Name)
		}
	}
	return nil
}

// Vaults returns the addresses of all vaults, in key order.
func Vaults(db quorum.ReadOnlyKVStore) ([]quorum.Address, error) {
	keys, err := NewVaultBucket().Keys(db, nil)
	if err != nil {
		return nil, err
	}
	addrs := make([]quorum.Address, len(keys))
	for i, k := range keys {
		addrs[i] = k
	}
	return addrs, nil
}
