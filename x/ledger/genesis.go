package ledger

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/gconf"
)

// Initializer fulfils the Initializer interface to load data from the
// genesis file
type Initializer struct {
	Ledger *Ledger
}

var _ quorum.Initializer = (*Initializer)(nil)

// FromGenesis will parse initial balances from genesis and save them to the
// database. Configuration is loaded if present.
func (i *Initializer) FromGenesis(opts quorum.Options, db quorum.KVStore) error {
	var accounts []struct {
		Address quorum.Address `json:"address"`
		Amount  uint64         `json:"amount"`
	}
	if err := opts.ReadOptions("ledger", &accounts); err != nil {
		return err
	}
	for _, acc := range accounts {
		if err := i.Ledger.Issue(db, acc.Address, acc.Amount); err != nil {
			return errors.Wrapf(err, "issue to %s", acc.Address)
		}
	}

	var conf Configuration
	if err := gconf.InitConfig(db, opts, confPkg, &conf); err != nil {
		return errors.Wrap(err, "init config")
	}
	return nil
}
