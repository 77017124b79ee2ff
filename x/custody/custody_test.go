package custody

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/app"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/quorumtest"
	"github.com/iov-one/quorum/quorumtest/assert"
	"github.com/iov-one/quorum/store"
	"github.com/iov-one/quorum/x/ledger"
	"github.com/iov-one/quorum/x/token"
)

type contractFunc func(quorum.Context, quorum.KVStore, []byte) ([]byte, error)

func (fn contractFunc) Call(ctx quorum.Context, db quorum.KVStore, data []byte) ([]byte, error) {
	return fn(ctx, db, data)
}

func newVault(t testing.TB, l *ledger.Ledger, db quorum.KVStore, admin quorum.Address) quorum.Address {
	t.Helper()
	vault := VaultAddress("test")
	assert.Nil(t, CreateVault(db, vault, admin))
	l.Deploy(vault, NewContract(ledger.CallerAuth{}, l, vault))
	return vault
}

func TestWithdrawNative(t *testing.T) {
	admin := quorumtest.NewAddress()
	recipient := quorumtest.NewAddress()
	l := ledger.NewLedger()
	db := store.MemStore()
	vault := newVault(t, l, db, admin)
	assert.Nil(t, l.Issue(db, admin, 100))

	// Deposit is a plain call.
	_, err := l.Invoke(context.Background(), db, admin, vault, 60, nil)
	assert.Nil(t, err)
	assertBalance(t, l, db, vault, 60)

	withdraw := app.MustEncodeCall(&WithdrawNativeMsg{Amount: 25, Recipient: recipient})

	_, err = l.Invoke(context.Background(), db, recipient, vault, 0, withdraw)
	assert.IsErr(t, ErrOnlyAdmin, err)
	assertBalance(t, l, db, vault, 60)

	_, err = l.Invoke(context.Background(), db, admin, vault, 0, withdraw)
	assert.Nil(t, err)
	assertBalance(t, l, db, vault, 35)
	assertBalance(t, l, db, recipient, 25)

	tooMuch := app.MustEncodeCall(&WithdrawNativeMsg{Amount: 36, Recipient: recipient})
	_, err = l.Invoke(context.Background(), db, admin, vault, 0, tooMuch)
	assert.IsErr(t, ErrWithdrawFailed, err)
	assertBalance(t, l, db, vault, 35)

	noRecipient := app.MustEncodeCall(&WithdrawNativeMsg{Amount: 1})
	_, err = l.Invoke(context.Background(), db, admin, vault, 0, noRecipient)
	assert.FieldError(t, err, "Recipient", errors.ErrInput)
}

func TestWithdrawToken(t *testing.T) {
	cases := map[string]struct {
		mode token.ReturnMode
	}{
		"token returning a boolean": {mode: token.ReturnBool},
		"token returning nothing":   {mode: token.ReturnNothing},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			admin := quorumtest.NewAddress()
			recipient := quorumtest.NewAddress()
			l := ledger.NewLedger()
			db := store.MemStore()
			vault := newVault(t, l, db, admin)

			tok := token.NewToken(token.Address("tst"), tc.mode)
			l.Deploy(tok.Address(), token.NewContract(ledger.CallerAuth{}, tok))
			assert.Nil(t, tok.Issue(db, vault, 10))

			withdraw := func(from quorum.Address, amount uint64) error {
				data := app.MustEncodeCall(&WithdrawTokenMsg{
					Token:     tok.Address(),
					Amount:    amount,
					Recipient: recipient,
				})
				_, err := l.Invoke(context.Background(), db, from, vault, 0, data)
				return err
			}

			assert.IsErr(t, ErrOnlyAdmin, withdraw(recipient, 1))
			assert.Nil(t, withdraw(admin, 4))
			assertHolding(t, tok, db, vault, 6)
			assertHolding(t, tok, db, recipient, 4)

			assert.IsErr(t, ErrWithdrawFailed, withdraw(admin, 7))
			assertHolding(t, tok, db, vault, 6)
		})
	}
}

func TestWithdrawTokenReturningFalse(t *testing.T) {
	admin := quorumtest.NewAddress()
	l := ledger.NewLedger()
	db := store.MemStore()
	vault := newVault(t, l, db, admin)

	tok := quorumtest.NewAddress()
	l.Deploy(tok, contractFunc(func(quorum.Context, quorum.KVStore, []byte) ([]byte, error) {
		return []byte{0}, nil
	}))

	data := app.MustEncodeCall(&WithdrawTokenMsg{
		Token:     tok,
		Amount:    1,
		Recipient: quorumtest.NewAddress(),
	})
	_, err := l.Invoke(context.Background(), db, admin, vault, 0, data)
	assert.IsErr(t, ErrWithdrawFailed, err)
}

func TestIsTransferSuccess(t *testing.T) {
	cases := map[string]struct {
		ret  []byte
		want bool
	}{
		"no data":       {ret: nil, want: true},
		"true":          {ret: []byte{1}, want: true},
		"false":         {ret: []byte{0}, want: false},
		"unknown value": {ret: []byte{1, 0}, want: false},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := isTransferSuccess(tc.ret); got != tc.want {
				t.Fatalf("want %v, got %v", tc.want, got)
			}
		})
	}
}

func TestGenesis(t *testing.T) {
	admin := quorumtest.NewAddress()
	genesis := `{
		"custody": [
			{"name": "treasury", "admin": "` + admin.String() + `"}
		]
	}`
	var opts quorum.Options
	if err := json.Unmarshal([]byte(genesis), &opts); err != nil {
		t.Fatalf("cannot unmarshal genesis: %s", err)
	}
	db := store.MemStore()
	var init Initializer
	assert.Nil(t, init.FromGenesis(opts, db))

	var v Vault
	assert.Nil(t, NewVaultBucket().One(db, VaultAddress("treasury"), &v))
	assert.Equal(t, admin, v.Admin)

	vaults, err := Vaults(db)
	assert.Nil(t, err)
	assert.Equal(t, []quorum.Address{VaultAddress("treasury")}, vaults)

	// Loading the same vault twice is not allowed.
	assert.IsErr(t, errors.ErrDuplicate, init.FromGenesis(opts, db))
}

func assertBalance(t testing.TB, l *ledger.Ledger, db quorum.ReadOnlyKVStore, addr quorum.Address, want uint64) {
	t.Helper()
	got, err := l.Balance(db, addr)
	assert.Nil(t, err)
	if got != want {
		t.Fatalf("%s: want %d, got %d", addr, want, got)
	}
}

func assertHolding(t testing.TB, tok *token.Token, db quorum.ReadOnlyKVStore, holder quorum.Address, want uint64) {
	t.Helper()
	got, err := tok.Balance(db, holder)
	assert.Nil(t, err)
	if got != want {
		t.Fatalf("%s: want %d tokens, got %d", holder, want, got)
	}
}
