package ledger

import (
	"github.com/iov-one/quorum/codec"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/gconf"
)

const (
	confPkg = "ledger"

	// DefaultMaxCallDepth is used when no configuration is stored.
	DefaultMaxCallDepth = 64
)

// Configuration of the ledger.
type Configuration struct {
	MaxCallDepth uint32 `json:"max_call_depth"`
}

func (c *Configuration) Marshal() ([]byte, error) {
	e := codec.NewEncoder()
	e.Uint64(1, uint64(c.MaxCallDepth))
	return e.Result()
}

func (c *Configuration) Unmarshal(raw []byte) error {
	*c = Configuration{}
	return codec.Decode(raw, func(field int, d *codec.Decoder) (err error) {
		switch field {
		case 1:
			c.MaxCallDepth, err = d.Uint32()
		default:
			err = d.Skip()
		}
		return err
	})
}

func (c *Configuration) Validate() error {
	if c.MaxCallDepth == 0 {
		return errors.Field("MaxCallDepth", errors.ErrEmpty, "must be positive")
	}
	return nil
}

// loadConf returns the stored configuration or the defaults.
func loadConf(db gconf.ReadStore) (Configuration, error) {
	var conf Configuration
	switch err := gconf.Load(db, confPkg, &conf); {
	case err == nil:
		return conf, nil
	case errors.ErrNotFound.Is(err):
		return Configuration{MaxCallDepth: DefaultMaxCallDepth}, nil
	default:
		return conf, err
	}
}
