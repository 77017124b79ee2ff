package orm

import (
	"reflect"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

// ModelBucket stores models of a single type.
type ModelBucket interface {
	// One loads the model stored under given key into dest. It returns
	// ErrNotFound if there is no such model and ErrType if dest is not of
	// the bucket model type.
	One(db quorum.ReadOnlyKVStore, key []byte, dest Model) error

	// Has returns nil if a model is stored under given key and
	// ErrNotFound otherwise.
	Has(db quorum.ReadOnlyKVStore, key []byte) error

	// Put validates and stores given model.
	Put(db quorum.KVStore, key []byte, m Model) error

	// Delete removes the model stored under given key. It returns
	// ErrNotFound if there is no such model.
	Delete(db quorum.KVStore, key []byte) error

	// Keys returns keys of all stored models that start with given
	// prefix, in ascending order.
	Keys(db quorum.ReadOnlyKVStore, prefix []byte) ([][]byte, error)

	// Sequence returns a sequence stored along with the models.
	Sequence(name string) Sequence
}

// NewModelBucket returns a bucket storing models of the same type as m.
func NewModelBucket(name string, m Model) ModelBucket {
	return &modelBucket{
		b:     NewBucket(name),
		model: reflect.TypeOf(m),
	}
}

type modelBucket struct {
	b     Bucket
	model reflect.Type
}

var _ ModelBucket = (*modelBucket)(nil)

func (mb *modelBucket) One(db quorum.ReadOnlyKVStore, key []byte, dest Model) error {
	if t := reflect.TypeOf(dest); t != mb.model {
		return errors.Wrapf(errors.ErrType, "%s bucket cannot load into %s", mb.model, t)
	}
	raw, err := db.Get(mb.b.DBKey(key))
	if err != nil {
		return err
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", mb.model, key)
	}
	if err := dest.Unmarshal(raw); err != nil {
		return errors.Wrapf(err, "bucket %s", mb.b.Name())
	}
	return nil
}

func (mb *modelBucket) Has(db quorum.ReadOnlyKVStore, key []byte) error {
	ok, err := db.Has(mb.b.DBKey(key))
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", mb.model, key)
	}
	return nil
}

func (mb *modelBucket) Put(db quorum.KVStore, key []byte, m Model) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	raw, err := m.Marshal()
	if err != nil {
		return errors.Wrap(err, "marshal")
	}
	return db.Set(mb.b.DBKey(key), raw)
}

func (mb *modelBucket) Delete(db quorum.KVStore, key []byte) error {
	if err := mb.Has(db, key); err != nil {
		return err
	}
	return db.Delete(mb.b.DBKey(key))
}

func (mb *modelBucket) Keys(db quorum.ReadOnlyKVStore, prefix []byte) ([][]byte, error) {
	return mb.b.Keys(db, prefix)
}

func (mb *modelBucket) Sequence(name string) Sequence {
	return mb.b.Sequence(name)
}
