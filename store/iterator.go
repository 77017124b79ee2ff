package store

import (
	"bytes"

	"github.com/iov-one/quorum/errors"
)

// itemIter merges the cached items with the parent iterator. Cached items
// take precedence over parent items with the same key and deleted items
// hide them.
type itemIter struct {
	items   []entry
	idx     int
	reverse bool

	parent     Iterator
	parentKey  []byte
	parentVal  []byte
	parentRead bool
	parentDone bool
}

var _ Iterator = (*itemIter)(nil)

func newItemIter(items []entry, parent Iterator, reverse bool) *itemIter {
	return &itemIter{
		items:   items,
		parent:  parent,
		reverse: reverse,
	}
}

func (i *itemIter) Next() (key, value []byte, err error) {
	for {
		if err := i.readParent(); err != nil {
			return nil, nil, err
		}

		hasOwn := i.idx < len(i.items)
		var own entry
		if hasOwn {
			own = i.items[i.idx]
		}

		switch {
		case !hasOwn && i.parentDone:
			return nil, nil, errors.ErrIteratorDone
		case !hasOwn:
			return i.takeParent()
		case i.parentDone:
			i.idx++
		default:
			cmp := bytes.Compare(own.key, i.parentKey)
			if i.reverse {
				cmp = -cmp
			}
			if cmp > 0 {
				return i.takeParent()
			}
			if cmp == 0 {
				// Cached value overwrites the parent value.
				i.parentRead = false
			}
			i.idx++
		}

		if !own.deleted {
			return own.key, own.value, nil
		}
	}
}

func (i *itemIter) readParent() error {
	if i.parentRead || i.parentDone {
		return nil
	}
	key, value, err := i.parent.Next()
	if errors.ErrIteratorDone.Is(err) {
		i.parentDone = true
		return nil
	}
	if err != nil {
		return err
	}
	i.parentKey, i.parentVal, i.parentRead = key, value, true
	return nil
}

func (i *itemIter) takeParent() ([]byte, []byte, error) {
	i.parentRead = false
	return i.parentKey, i.parentVal, nil
}

func (i *itemIter) Release() {
	i.parent.Release()
	i.items = nil
}
