package orm

import (
	"encoding/binary"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

// Sequence is a counter persisted in the store, used to allocate
// identifiers. Values are encoded as 8 bytes big endian so that the byte
// order of encoded values follows their numeric order.
type Sequence struct {
	key []byte
}

// NewSequence returns the sequence with given name that belongs to given
// bucket. It is stored under the "_s.<bucket>:<name>" key.
func NewSequence(bucket, name string) Sequence {
	return Sequence{key: []byte("_s." + bucket + ":" + name)}
}

// NextInt increments the sequence and returns the new value. The first
// value returned is 1.
func (s Sequence) NextInt(db quorum.KVStore) (int64, error) {
	val, err := s.Latest(db)
	if err != nil {
		return 0, err
	}
	val++
	if err := db.Set(s.key, EncodeSequence(val)); err != nil {
		return 0, err
	}
	return val, nil
}

// Latest returns the last value returned by NextInt or zero if NextInt was
// never called.
func (s Sequence) Latest(db quorum.ReadOnlyKVStore) (int64, error) {
	raw, err := db.Get(s.key)
	if err != nil {
		return 0, err
	}
	return DecodeSequence(raw)
}

// EncodeSequence returns the binary representation of a sequence value.
func EncodeSequence(val int64) []byte {
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, uint64(val))
	return raw
}

// DecodeSequence parses the binary representation of a sequence value. Nil
// is zero.
func DecodeSequence(raw []byte) (int64, error) {
	switch len(raw) {
	case 0:
		if raw == nil {
			return 0, nil
		}
		return 0, errors.Wrap(errors.ErrEmpty, "sequence")
	case 8:
		return int64(binary.BigEndian.Uint64(raw)), nil
	default:
		return 0, errors.Wrapf(errors.ErrInput, "sequence must be 8 bytes, got %d", len(raw))
	}
}
