package main

import (
	"context"
	"flag"
	"os"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/app"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/store/iavl"
	"github.com/iov-one/quorum/x/custody"
	"github.com/iov-one/quorum/x/ledger"
	"github.com/iov-one/quorum/x/multisig"
	"github.com/iov-one/quorum/x/token"
	"github.com/tendermint/tendermint/libs/log"
)

// node is the application state loaded from the home directory together
// with all contracts found in it.
type node struct {
	db      iavl.CommitStore
	commit  *app.CommitStore
	ledger  *ledger.Ledger
	wallets *multisig.Controller
	logger  log.Logger
}

// nodeFlags registers flags common to all commands accessing the state.
func nodeFlags(fl *flag.FlagSet) (home, logLevel *string) {
	home = fl.String("home", env("MSIGCLI_HOME", "msigdata"), "Directory the state is stored in.")
	logLevel = fl.String("log", env("MSIGCLI_LOG", "error"), `Log level, for example "info" or "*:error,multisig:debug".`)
	return home, logLevel
}

// newLogger returns a logger writing to stderr, filtered by given level
// description.
func newLogger(level string) (log.Logger, error) {
	allow, err := log.AllowLevel(level)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "log level: %s", err)
	}
	return log.NewFilter(log.NewTMLogger(log.NewSyncWriter(os.Stderr)), allow), nil
}

// openNode loads the state from given directory. Contracts of all wallets,
// tokens and vaults found in the state are deployed. Call close once done.
func openNode(home, logLevel string) (*node, error) {
	logger, err := newLogger(logLevel)
	if err != nil {
		return nil, err
	}
	db, err := iavl.NewCommitStore(home, "quorum")
	if err != nil {
		return nil, err
	}
	commit, err := app.NewCommitStore(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	l := ledger.NewLedger()
	n := &node{
		db:      db,
		commit:  commit,
		ledger:  l,
		wallets: multisig.NewController(l),
		logger:  logger,
	}
	if err := n.deploy(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "deploy contracts")
	}
	return n, nil
}

// deploy binds contracts to all addresses that the state describes.
func (n *node) deploy() error {
	db := n.commit.DeliverStore()

	wallets, err := n.wallets.Wallets(db)
	if err != nil {
		return errors.Wrap(err, "wallets")
	}
	for _, w := range wallets {
		n.ledger.Deploy(w, multisig.NewContract(ledger.CallerAuth{}, n.wallets, w))
	}

	tokens, err := token.Tokens(db)
	if err != nil {
		return errors.Wrap(err, "tokens")
	}
	for _, t := range tokens {
		n.ledger.Deploy(t, token.NewContract(ledger.CallerAuth{}, token.NewToken(t, token.ReturnBool)))
	}

	vaults, err := custody.Vaults(db)
	if err != nil {
		return errors.Wrap(err, "vaults")
	}
	for _, v := range vaults {
		n.ledger.Deploy(v, custody.NewContract(ledger.CallerAuth{}, n.ledger, v))
	}
	return nil
}

// initializer returns the genesis initializer of all extensions.
func (n *node) initializer() quorum.Initializer {
	return app.ChainInitializers(
		&ledger.Initializer{Ledger: n.ledger},
		&token.Initializer{},
		&custody.Initializer{},
		&multisig.Initializer{Controller: n.wallets},
	)
}

// invoke executes a single top level call and commits its result.
func (n *node) invoke(from, to quorum.Address, value uint64, data []byte) (*ledger.Receipt, error) {
	ctx := quorum.WithLogger(context.Background(), n.logger)
	receipt, err := n.ledger.Invoke(ctx, n.commit.DeliverStore(), from, to, value, data)
	if err != nil {
		return nil, err
	}
	if _, err := n.commit.Commit(); err != nil {
		return nil, errors.Wrap(err, "commit")
	}
	return receipt, nil
}

// store returns the current state for reading.
func (n *node) store() quorum.ReadOnlyKVStore {
	return n.commit.DeliverStore()
}

func (n *node) close() {
	n.db.Close()
}
