package orm

import (
	"github.com/iov-one/quorum/codec"
	"github.com/iov-one/quorum/errors"
)

// counter is a minimal model used by the tests.
type counter struct {
	Count int64
}

func (c *counter) Marshal() ([]byte, error) {
	e := codec.NewEncoder()
	e.Uint64(1, uint64(c.Count))
	return e.Result()
}

func (c *counter) Unmarshal(raw []byte) error {
	*c = counter{}
	return codec.Decode(raw, func(field int, d *codec.Decoder) error {
		if field != 1 {
			return d.Skip()
		}
		v, err := d.Uint64()
		c.Count = int64(v)
		return err
	})
}

func (c *counter) Validate() error {
	if c.Count < 0 {
		return errors.Wrap(errors.ErrModel, "negative count")
	}
	return nil
}
