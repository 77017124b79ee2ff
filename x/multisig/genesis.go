package multisig

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/gconf"
)

// Initializer fulfils the Initializer interface to load data from the genesis
// file
type Initializer struct {
	Controller *Controller
}

var _ quorum.Initializer = (*Initializer)(nil)

// FromGenesis will parse initial wallets from genesis and save them in the
// database. Wallet address is derived from its name, see WalletAddress.
func (i *Initializer) FromGenesis(opts quorum.Options, db quorum.KVStore) error {
	// Configuration must be stored first, because it limits the wallets.
	var conf Configuration
	if err := gconf.InitConfig(db, opts, confPkg, &conf); err != nil {
		return errors.Wrap(err, "init config")
	}

	var wallets []struct {
		Name     string           `json:"name"`
		Owners   []quorum.Address `json:"owners"`
		Required uint32           `json:"required"`
	}
	if err := opts.ReadOptions("multisig", &wallets); err != nil {
		return err
	}
	for _, w := range wallets {
		if w.Name == "" {
			return errors.Wrap(errors.ErrEmpty, "wallet name")
		}
		if err := i.Controller.Init(db, WalletAddress(w.Name), w.Owners, w.Required); err != nil {
			return errors.Wrapf(err, "wallet %q", w.Name)
		}
	}
	return nil
}
