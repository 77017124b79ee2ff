package store

import (
	"github.com/iov-one/quorum/errors"
)

// SliceIterator walks over a fixed list of key/value pairs, such as the
// results of a range query that were loaded eagerly.
type SliceIterator struct {
	pairs []Model
	pos   int
}

var _ Iterator = (*SliceIterator)(nil)

// NewSliceIterator returns an iterator over pairs in the given order.
func NewSliceIterator(pairs []Model) *SliceIterator {
	return &SliceIterator{pairs: pairs}
}

func (s *SliceIterator) Next() (key, value []byte, err error) {
	if s.pos >= len(s.pairs) {
		return nil, nil, errors.ErrIteratorDone
	}
	p := s.pairs[s.pos]
	s.pos++
	return p.Key, p.Value, nil
}

func (s *SliceIterator) Release() {
	s.pairs = nil
	s.pos = 0
}

// EmptyKVStore is a read only store without content. It is the bottom
// layer of MemStore.
type EmptyKVStore struct{}

var _ KVStore = EmptyKVStore{}

func (EmptyKVStore) Get(key []byte) ([]byte, error) { return nil, nil }
func (EmptyKVStore) Has(key []byte) (bool, error)   { return false, nil }
func (EmptyKVStore) Set(key, value []byte) error    { return nil }
func (EmptyKVStore) Delete(key []byte) error        { return nil }
func (e EmptyKVStore) NewBatch() Batch              { return NewNonAtomicBatch(e) }
func (EmptyKVStore) Iterator(start, end []byte) (Iterator, error) {
	return NewSliceIterator(nil), nil
}
func (EmptyKVStore) ReverseIterator(start, end []byte) (Iterator, error) {
	return NewSliceIterator(nil), nil
}

// Op is a single pending write or delete.
type Op struct {
	key    []byte
	value  []byte
	delete bool
}

// SetOp records a write of value under key.
func SetOp(key, value []byte) Op {
	return Op{key: key, value: value}
}

// DelOp records the removal of key.
func DelOp(key []byte) Op {
	return Op{key: key, delete: true}
}

// Apply writes the operation to out.
func (o Op) Apply(out SetDeleter) error {
	if o.delete {
		return out.Delete(o.key)
	}
	return out.Set(o.key, o.value)
}

// NonAtomicBatch queues writes and applies them one by one on Write. A
// failure half way leaves the earlier writes in place, so it is only used
// on top of stores that cannot fail partially, like the btree cache and
// the iavl tree.
type NonAtomicBatch struct {
	out SetDeleter
	ops []Op
}

var _ Batch = (*NonAtomicBatch)(nil)

func NewNonAtomicBatch(out SetDeleter) *NonAtomicBatch {
	return &NonAtomicBatch{out: out}
}

func (b *NonAtomicBatch) Set(key, value []byte) error {
	b.ops = append(b.ops, SetOp(key, value))
	return nil
}

func (b *NonAtomicBatch) Delete(key []byte) error {
	b.ops = append(b.ops, DelOp(key))
	return nil
}

// Write applies all queued operations in order and empties the queue.
func (b *NonAtomicBatch) Write() error {
	for i, op := range b.ops {
		if err := op.Apply(b.out); err != nil {
			b.ops = b.ops[i:]
			return err
		}
	}
	b.ops = nil
	return nil
}

func (b *NonAtomicBatch) Reset() {
	b.ops = nil
}

// ShowOps returns the queued operations.
func (b *NonAtomicBatch) ShowOps() []Op {
	return b.ops
}
