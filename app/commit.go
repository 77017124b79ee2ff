package app

import (
	"regexp"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

// CommitStore handles loading from a CommitKVStore, maintaining the cache
// wrap all invocations are delivered to, and returning useful state info.
type CommitStore struct {
	committed quorum.CommitKVStore
	deliver   quorum.KVCacheWrap
}

// NewCommitStore loads the latest version of the store and sets up the
// deliver cache.
func NewCommitStore(store quorum.CommitKVStore) (*CommitStore, error) {
	if err := store.LoadLatestVersion(); err != nil {
		return nil, errors.Wrap(err, "load latest version")
	}
	return &CommitStore{
		committed: store,
		deliver:   store.CacheWrap(),
	}, nil
}

// CommitInfo returns the current version and hash
func (cs *CommitStore) CommitInfo() (quorum.CommitID, error) {
	return cs.committed.LatestVersion()
}

// Commit will flush deliver to the underlying store and commit it
// to disk. It then regenerates a new deliver cache.
func (cs *CommitStore) Commit() (quorum.CommitID, error) {
	if err := cs.deliver.Write(); err != nil {
		return quorum.CommitID{}, err
	}
	res, err := cs.committed.Commit()
	if err != nil {
		return res, err
	}
	cs.deliver = cs.committed.CacheWrap()
	return res, nil
}

// DeliverStore returns a store implementation that must be used to
// process invocations. Changes are persisted by Commit.
func (cs *CommitStore) DeliverStore() quorum.CacheableKVStore {
	return cs.deliver
}

// InitChain stores the chain id and runs the initializer on the genesis
// state. It can be done only once.
func (cs *CommitStore) InitChain(gen Genesis, init quorum.Initializer) error {
	if err := saveChainID(cs.deliver, gen.ChainID); err != nil {
		return err
	}
	if err := init.FromGenesis(gen.AppState, cs.deliver); err != nil {
		return errors.Wrap(err, "genesis")
	}
	return nil
}

// ChainID returns the chain id stored at genesis or an empty string.
func (cs *CommitStore) ChainID() (string, error) {
	v, err := cs.deliver.Get([]byte(chainIDKey))
	return string(v), err
}

// _q: is a prefix for internal data
const chainIDKey = "_q:chainID"

var isChainID = regexp.MustCompile(`^[a-zA-Z0-9_\-]{6,25}$`).MatchString

// saveChainID stores a chain id in the kv store.
// Returns error if already set, or invalid name
func saveChainID(kv quorum.KVStore, chainID string) error {
	if !isChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id: %q", chainID)
	}
	k := []byte(chainIDKey)
	exists, err := kv.Has(k)
	if err != nil {
		return errors.Wrap(err, "load chain id")
	}
	if exists {
		return errors.Wrap(errors.ErrUnauthorized, "can't modify chain id after genesis init")
	}
	if err := kv.Set(k, []byte(chainID)); err != nil {
		return errors.Wrap(err, "save chain id")
	}
	return nil
}
