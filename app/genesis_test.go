package app

import (
	"testing"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/quorumtest/assert"
	"github.com/iov-one/quorum/store/iavl"
)

const dummyKey = "dummy"

type dummyInit struct{}

func (dummyInit) FromGenesis(opts quorum.Options, kv quorum.KVStore) error {
	var value string
	if err := opts.ReadOptions(dummyKey, &value); err != nil {
		return err
	}
	return kv.Set([]byte(dummyKey), []byte(value))
}

type countInit struct {
	called int
}

func (c *countInit) FromGenesis(opts quorum.Options, kv quorum.KVStore) error {
	c.called++
	return nil
}

func TestLoadGenesis(t *testing.T) {
	cases := map[string]struct {
		file         string
		parseErr     *errors.Error
		initErr      *errors.Error
		wantChain    string
		wantCalled   int
		wantValue    []byte
		wantCommitID int64
	}{
		"no such file": {
			file:     "testdata/missing.json",
			parseErr: errors.ErrInput,
		},
		"proper genesis": {
			file:         "testdata/genesis.json",
			wantChain:    "test-chain-67",
			wantCalled:   1,
			wantValue:    []byte("secret"),
			wantCommitID: 1,
		},
		"bad initializer data": {
			file:    "testdata/bad_genesis.json",
			initErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			gen, err := LoadGenesis(tc.file)
			if !tc.parseErr.Is(err) {
				t.Fatalf("unexpected parse error: %+v", err)
			}
			if tc.parseErr != nil {
				return
			}

			cs, err := NewCommitStore(iavl.NewMemCommitStore())
			assert.Nil(t, err)
			chainID, err := cs.ChainID()
			assert.Nil(t, err)
			assert.Equal(t, "", chainID)

			c := &countInit{}
			err = cs.InitChain(gen, ChainInitializers(dummyInit{}, c))
			if !tc.initErr.Is(err) {
				t.Fatalf("unexpected init error: %+v", err)
			}
			if tc.initErr != nil {
				return
			}
			assert.Equal(t, tc.wantCalled, c.called)

			id, err := cs.Commit()
			assert.Nil(t, err)
			assert.Equal(t, tc.wantCommitID, id.Version)

			chainID, err = cs.ChainID()
			assert.Nil(t, err)
			assert.Equal(t, tc.wantChain, chainID)
			val, err := cs.DeliverStore().Get([]byte(dummyKey))
			assert.Nil(t, err)
			assert.Equal(t, tc.wantValue, val)

			// genesis can be loaded only once
			err = cs.InitChain(gen, c)
			assert.IsErr(t, errors.ErrUnauthorized, err)
		})
	}
}
