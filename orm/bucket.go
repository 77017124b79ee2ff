/*
Package orm organizes the key value store into buckets.

Each bucket holds models of a single type under a key prefixed with the
bucket name. Buckets also hold sequences used to allocate identifiers.
*/
package orm

import (
	"fmt"
	"regexp"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

// Model is implemented by any entity that can be stored in a bucket.
type Model interface {
	quorum.Persistent
	Validate() error
}

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// Bucket maps model keys to store keys. All keys of a bucket share the
// "<name>:" prefix.
type Bucket struct {
	name   string
	prefix []byte
}

// NewBucket returns a bucket with given name. This function panics if the
// name is not 3 to 10 lower case letters or underscores.
func NewBucket(name string) Bucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("invalid bucket name: %q", name))
	}
	return Bucket{name: name, prefix: []byte(name + ":")}
}

// Name returns the bucket name.
func (b Bucket) Name() string {
	return b.name
}

// DBKey returns the store key for given model key. The result never shares
// memory with the arguments.
func (b Bucket) DBKey(key []byte) []byte {
	out := make([]byte, 0, len(b.prefix)+len(key))
	out = append(out, b.prefix...)
	return append(out, key...)
}

// Keys returns, in ascending order, all model keys of this bucket that
// start with given prefix.
func (b Bucket) Keys(db quorum.ReadOnlyKVStore, prefix []byte) ([][]byte, error) {
	start := b.DBKey(prefix)
	it, err := db.Iterator(start, prefixEnd(start))
	if err != nil {
		return nil, err
	}
	defer it.Release()

	var keys [][]byte
	for {
		key, _, err := it.Next()
		switch {
		case errors.ErrIteratorDone.Is(err):
			return keys, nil
		case err != nil:
			return nil, errors.Wrapf(err, "bucket %s", b.name)
		}
		keys = append(keys, append([]byte(nil), key[len(b.prefix):]...))
	}
}

// Sequence returns the sequence with given name kept by this bucket.
func (b Bucket) Sequence(name string) Sequence {
	return NewSequence(b.name, name)
}

// prefixEnd returns the smallest key that is greater than all keys with
// given prefix, or nil if there is no such key.
func prefixEnd(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
