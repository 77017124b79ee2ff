package gconf

import (
	"encoding/json"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

// ReadStore is the part of quorum.ReadOnlyKVStore needed to load a
// configuration.
type ReadStore interface {
	Get([]byte) ([]byte, error)
}

// Store is the part of quorum.KVStore needed to save a configuration.
type Store interface {
	ReadStore
	Set([]byte, []byte) error
}

// Configuration is implemented by the configuration model of an extension.
type Configuration interface {
	quorum.Persistent
	Validate() error
}

func key(pkg string) []byte {
	return []byte("_c:" + pkg)
}

// Save validates conf and stores it as the configuration of pkg,
// replacing any previous one.
func Save(db Store, pkg string, conf Configuration) error {
	if err := conf.Validate(); err != nil {
		return errors.Wrapf(err, "%s configuration", pkg)
	}
	raw, err := conf.Marshal()
	if err != nil {
		return errors.Wrapf(err, "marshal %s configuration", pkg)
	}
	return db.Set(key(pkg), raw)
}

// Load reads the configuration of pkg into dst. ErrNotFound is returned
// when none was saved, in which case extensions use their defaults.
func Load(db ReadStore, pkg string, dst Configuration) error {
	raw, err := db.Get(key(pkg))
	if err != nil {
		return errors.Wrapf(err, "load %s configuration", pkg)
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s configuration", pkg)
	}
	if err := dst.Unmarshal(raw); err != nil {
		return errors.Wrapf(err, "unmarshal %s configuration", pkg)
	}
	return nil
}

// InitConfig saves the configuration of pkg found in the "conf" section of
// the genesis, for example
//
//	{"conf": {"multisig": {"max_owners": 20, "max_actions": 10}}}
//
// Nothing is saved when the genesis does not configure pkg.
func InitConfig(db Store, opts quorum.Options, pkg string, conf Configuration) error {
	var sections map[string]json.RawMessage
	if err := opts.ReadOptions("conf", &sections); err != nil {
		return err
	}
	raw, ok := sections[pkg]
	if !ok {
		return nil
	}
	if err := json.Unmarshal(raw, conf); err != nil {
		return errors.Wrapf(errors.ErrInput, "%s configuration: %s", pkg, err)
	}
	return Save(db, pkg, conf)
}
