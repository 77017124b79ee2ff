package multisig

import (
	"github.com/iov-one/quorum/codec"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/gconf"
)

const (
	confPkg = "multisig"

	// DefaultMaxOwners is the owner set limit used when no configuration
	// is stored.
	DefaultMaxOwners = 50
	// DefaultMaxActions is the limit of actions in a single transaction
	// used when no configuration is stored.
	DefaultMaxActions = 100
)

// Configuration of the multisig extension.
type Configuration struct {
	MaxOwners  uint32 `json:"max_owners"`
	MaxActions uint32 `json:"max_actions"`
}

func (c *Configuration) Marshal() ([]byte, error) {
	e := codec.NewEncoder()
	e.Uint64(1, uint64(c.MaxOwners))
	e.Uint64(2, uint64(c.MaxActions))
	return e.Result()
}

func (c *Configuration) Unmarshal(raw []byte) error {
	*c = Configuration{}
	return codec.Decode(raw, func(field int, d *codec.Decoder) (err error) {
		switch field {
		case 1:
			c.MaxOwners, err = d.Uint32()
		case 2:
			c.MaxActions, err = d.Uint32()
		default:
			err = d.Skip()
		}
		return err
	})
}

func (c *Configuration) Validate() error {
	var errs error
	if c.MaxOwners == 0 {
		errs = errors.AppendField(errs, "MaxOwners", errors.ErrEmpty)
	}
	if c.MaxActions == 0 {
		errs = errors.AppendField(errs, "MaxActions", errors.ErrEmpty)
	}
	return errs
}

func loadConf(db gconf.ReadStore) (Configuration, error) {
	var conf Configuration
	switch err := gconf.Load(db, confPkg, &conf); {
	case err == nil:
		return conf, nil
	case errors.ErrNotFound.Is(err):
		return Configuration{
			MaxOwners:  DefaultMaxOwners,
			MaxActions: DefaultMaxActions,
		}, nil
	default:
		return conf, err
	}
}
