package store

import (
	"fmt"
	"testing"

	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/quorumtest/assert"
)

// TestSuite runs the same checks against any CacheableKVStore
// implementation. It is shared by btree_test.go and iavl/adapter_test.go.
type TestSuite struct {
	makeBase TestStoreConstructor
}

// TestStoreConstructor returns an empty store and a function releasing it.
type TestStoreConstructor func() (base CacheableKVStore, cleanup func())

func NewTestSuite(constructor TestStoreConstructor) *TestSuite {
	return &TestSuite{makeBase: constructor}
}

// GetSet checks that writes are visible in the store they were made to and
// reach the parent only when the cache wrap is written.
func (s *TestSuite) GetSet(t *testing.T) {
	base, cleanup := s.makeBase()
	defer cleanup()

	assert.Nil(t, base.Set([]byte("owner"), []byte("alice")))
	s.AssertGetHas(t, base, []byte("owner"), []byte("alice"), true)
	s.AssertGetHas(t, base, []byte("missing"), nil, false)

	cache := base.CacheWrap()
	assert.Nil(t, cache.Set([]byte("owner"), []byte("bob")))
	assert.Nil(t, cache.Set([]byte("required"), []byte{2}))
	s.AssertGetHas(t, cache, []byte("owner"), []byte("bob"), true)
	s.AssertGetHas(t, base, []byte("owner"), []byte("alice"), true)
	s.AssertGetHas(t, base, []byte("required"), nil, false)

	assert.Nil(t, cache.Write())
	s.AssertGetHas(t, base, []byte("owner"), []byte("bob"), true)
	s.AssertGetHas(t, base, []byte("required"), []byte{2}, true)

	cache = base.CacheWrap()
	assert.Nil(t, cache.Delete([]byte("owner")))
	s.AssertGetHas(t, cache, []byte("owner"), nil, false)
	assert.Nil(t, cache.Write())
	s.AssertGetHas(t, base, []byte("owner"), nil, false)
}

// Savepoints checks nested cache wraps, as used by nested calls. A discarded
// savepoint leaves no trace, a written one is visible only to its parent.
func (s *TestSuite) Savepoints(t *testing.T) {
	base, cleanup := s.makeBase()
	defer cleanup()

	assert.Nil(t, base.Set([]byte("balance"), []byte{10}))

	outer := base.CacheWrap()
	assert.Nil(t, outer.Set([]byte("balance"), []byte{7}))

	failed := outer.CacheWrap()
	assert.Nil(t, failed.Set([]byte("balance"), []byte{0}))
	assert.Nil(t, failed.Set([]byte("executed"), []byte{1}))
	failed.Discard()
	s.AssertGetHas(t, outer, []byte("balance"), []byte{7}, true)
	s.AssertGetHas(t, outer, []byte("executed"), nil, false)

	ok := outer.CacheWrap()
	assert.Nil(t, ok.Set([]byte("executed"), []byte{1}))
	assert.Nil(t, ok.Write())
	s.AssertGetHas(t, outer, []byte("executed"), []byte{1}, true)
	s.AssertGetHas(t, base, []byte("executed"), nil, false)

	assert.Nil(t, outer.Write())
	s.AssertGetHas(t, base, []byte("balance"), []byte{7}, true)
	s.AssertGetHas(t, base, []byte("executed"), []byte{1}, true)
}

// Iteration checks that iterators merge the cache and the parent state, in
// both directions and for any range.
func (s *TestSuite) Iteration(t *testing.T) {
	base, cleanup := s.makeBase()
	defer cleanup()

	for i := 0; i < 6; i++ {
		assert.Nil(t, base.Set(key(i), []byte{byte(i)}))
	}
	cache := base.CacheWrap()
	assert.Nil(t, cache.Delete(key(1)))
	assert.Nil(t, cache.Set(key(3), []byte("updated")))
	assert.Nil(t, cache.Set(key(6), []byte{6}))

	cases := map[string]struct {
		start, end []byte
		reverse    bool
		want       []Model
	}{
		"full range": {
			want: []Model{
				Pair(key(0), []byte{0}),
				Pair(key(2), []byte{2}),
				Pair(key(3), []byte("updated")),
				Pair(key(4), []byte{4}),
				Pair(key(5), []byte{5}),
				Pair(key(6), []byte{6}),
			},
		},
		"end is exclusive": {
			start: key(1),
			end:   key(4),
			want: []Model{
				Pair(key(2), []byte{2}),
				Pair(key(3), []byte("updated")),
			},
		},
		"reverse": {
			start:   key(3),
			reverse: true,
			want: []Model{
				Pair(key(6), []byte{6}),
				Pair(key(5), []byte{5}),
				Pair(key(4), []byte{4}),
				Pair(key(3), []byte("updated")),
			},
		},
		"empty range": {
			start: key(7),
			end:   key(9),
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var (
				it  Iterator
				err error
			)
			if tc.reverse {
				it, err = cache.ReverseIterator(tc.start, tc.end)
			} else {
				it, err = cache.Iterator(tc.start, tc.end)
			}
			assert.Nil(t, err)
			defer it.Release()

			for i, want := range tc.want {
				k, v, err := it.Next()
				assert.Nil(t, err)
				if string(k) != string(want.Key) {
					t.Fatalf("entry %d: want key %q, got %q", i, want.Key, k)
				}
				assert.Equal(t, want.Value, v)
			}
			_, _, err = it.Next()
			assert.IsErr(t, errors.ErrIteratorDone, err)
		})
	}
}

// AssertGetHas checks both Get and Has results for given key.
func (s *TestSuite) AssertGetHas(t testing.TB, kv ReadOnlyKVStore, key, val []byte, has bool) {
	t.Helper()
	got, err := kv.Get(key)
	assert.Nil(t, err)
	assert.Equal(t, val, got)
	exists, err := kv.Has(key)
	assert.Nil(t, err)
	assert.Equal(t, has, exists)
}

func key(n int) []byte {
	return []byte(fmt.Sprintf("k%02d", n))
}
