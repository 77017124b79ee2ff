package multisig

import (
	"context"
	"testing"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/gconf"
	"github.com/iov-one/quorum/quorumtest"
	"github.com/iov-one/quorum/quorumtest/assert"
	"github.com/iov-one/quorum/store"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/mock"
	amino "github.com/tendermint/go-amino"
)

type callerMock struct {
	mock.Mock
}

func (m *callerMock) Call(ctx quorum.Context, db quorum.KVStore, from, to quorum.Address, value uint64, data []byte) (*quorum.CallResult, error) {
	args := m.Called(from, to, value, data)
	return args.Get(0).(*quorum.CallResult), args.Error(1)
}

func TestTransactionLifecycle(t *testing.T) {
	Convey("Given a wallet of three owners requiring two confirmations", t, func() {
		caller := &callerMock{}
		ctrl := NewController(caller)
		db := store.MemStore()
		events := quorum.NewEventLog()
		ctx := quorum.WithEventLog(context.Background(), events)

		wallet := WalletAddress("lifecycle")
		a, b, c := quorumtest.NewAddress(), quorumtest.NewAddress(), quorumtest.NewAddress()
		So(ctrl.Init(db, wallet, []quorum.Address{a, b, c}, 2), ShouldBeNil)

		target := quorumtest.NewAddress()
		list := NewActionList(
			Action{Target: target, Value: 0, Data: []byte("first")},
			Action{Target: target, Value: 3, Data: []byte("second")},
		)

		Convey("When an owner submits a transaction", func() {
			id, res, err := ctrl.Submit(ctx, db, wallet, a, list)
			So(err, ShouldBeNil)
			So(id, ShouldEqual, uint64(0))
			So(res, ShouldBeNil)

			Convey("Then it is pending and confirmed by the submitter", func() {
				tx, err := ctrl.Transaction(db, wallet, id)
				So(err, ShouldBeNil)
				So(tx.Executed, ShouldBeFalse)
				So(tx.ActionHashes, ShouldResemble, [][]byte{
					ActionHash(target, 0, []byte("first"), 0),
					ActionHash(target, 3, []byte("second"), 0),
				})
				confirmed, err := ctrl.Confirmations(db, wallet, id)
				So(err, ShouldBeNil)
				So(confirmed, ShouldResemble, []quorum.Address{a})
				counts, err := ctrl.Counts(db, wallet)
				So(err, ShouldBeNil)
				So(counts, ShouldResemble, Counts{Total: 1, Executed: 0, Pending: 1})
				So(eventKinds(events.Events()), ShouldResemble, []string{"Submission", "Confirmation"})
			})

			Convey("Then the next transaction gets the next id", func() {
				id, _, err := ctrl.Submit(ctx, db, wallet, b, list)
				So(err, ShouldBeNil)
				So(id, ShouldEqual, uint64(1))
				counts, _ := ctrl.Counts(db, wallet)
				So(counts, ShouldResemble, Counts{Total: 2, Executed: 0, Pending: 2})
			})

			Convey("Then it cannot be executed with a single confirmation", func() {
				_, err := ctrl.Execute(ctx, db, wallet, a, id, list)
				So(ErrNotEnoughConfirmations.Is(err), ShouldBeTrue)
			})

			Convey("Then the submitter cannot confirm again", func() {
				err := ctrl.Confirm(ctx, db, wallet, a, id)
				So(ErrAlreadyConfirmed.Is(err), ShouldBeTrue)
			})

			Convey("When a second owner confirms", func() {
				So(ctrl.Confirm(ctx, db, wallet, b, id), ShouldBeNil)

				Convey("Then the transaction is still not executed", func() {
					tx, err := ctrl.Transaction(db, wallet, id)
					So(err, ShouldBeNil)
					So(tx.Executed, ShouldBeFalse)
					confirmed, _ := ctrl.Confirmations(db, wallet, id)
					So(confirmed, ShouldResemble, []quorum.Address{a, b})
				})

				Convey("Then an owner that did not confirm cannot execute", func() {
					_, err := ctrl.Execute(ctx, db, wallet, c, id, list)
					So(ErrNotConfirmed.Is(err), ShouldBeTrue)
				})

				Convey("Then modified actions are rejected", func() {
					_, err := ctrl.Execute(ctx, db, wallet, b, id, NewActionList(
						Action{Target: target, Value: 0, Data: []byte("first")},
						Action{Target: target, Value: 4, Data: []byte("second")},
					))
					So(ErrInvalidAction.Is(err), ShouldBeTrue)

					_, err = ctrl.Execute(ctx, db, wallet, b, id, ActionList{})
					So(ErrInvalidLengths.Is(err), ShouldBeTrue)
				})

				Convey("Then executing runs every action in order, once", func() {
					caller.On("Call", wallet, target, uint64(0), []byte("first")).
						Return(&quorum.CallResult{Success: true, ReturnData: []byte("one")}, nil).Once()
					caller.On("Call", wallet, target, uint64(3), []byte("second")).
						Return(&quorum.CallResult{Success: true}, nil).Once()

					res, err := ctrl.Execute(ctx, db, wallet, b, id, list)
					So(err, ShouldBeNil)
					caller.AssertExpectations(t)

					var results [][]byte
					So(amino.UnmarshalBinaryLengthPrefixed(res, &results), ShouldBeNil)
					So(len(results), ShouldEqual, 2)
					So(string(results[0]), ShouldEqual, "one")
					So(len(results[1]), ShouldEqual, 0)

					tx, _ := ctrl.Transaction(db, wallet, id)
					So(tx.Executed, ShouldBeTrue)
					counts, _ := ctrl.Counts(db, wallet)
					So(counts, ShouldResemble, Counts{Total: 1, Executed: 1, Pending: 0})
					So(eventKinds(events.Events()), ShouldResemble, []string{
						"Submission", "Confirmation", "Confirmation", "Execution", "Execution",
					})

					_, err = ctrl.Execute(ctx, db, wallet, a, id, list)
					So(ErrAlreadyExecuted.Is(err), ShouldBeTrue)
					_, err = ctrl.ConfirmWithData(ctx, db, wallet, c, id, list)
					So(ErrAlreadyExecuted.Is(err), ShouldBeTrue)
					So(ErrAlreadyExecuted.Is(ctrl.Revoke(ctx, db, wallet, a, id)), ShouldBeTrue)
				})

				Convey("Then an action calling back into the wallet cannot execute it again", func() {
					var reentry error
					caller.On("Call", wallet, target, uint64(0), []byte("first")).
						Run(func(mock.Arguments) {
							tx, err := ctrl.Transaction(db, wallet, id)
							So(err, ShouldBeNil)
							So(tx.Executed, ShouldBeTrue)
							_, reentry = ctrl.Execute(ctx, db, wallet, a, id, list)
						}).
						Return(&quorum.CallResult{Success: true}, nil).Once()
					caller.On("Call", wallet, target, uint64(3), []byte("second")).
						Return(&quorum.CallResult{Success: true}, nil).Once()

					_, err := ctrl.Execute(ctx, db, wallet, b, id, list)
					So(err, ShouldBeNil)
					So(ErrAlreadyExecuted.Is(reentry), ShouldBeTrue)
					caller.AssertExpectations(t)
				})

				Convey("Then a failing action fails the execution", func() {
					caller.On("Call", wallet, target, uint64(0), []byte("first")).
						Return(&quorum.CallResult{Success: false, ReturnData: []byte("nope")}, nil).Once()

					_, err := ctrl.Execute(ctx, db, wallet, b, id, list)
					So(ErrTransactionFailure.Is(err), ShouldBeTrue)
					caller.AssertExpectations(t)
					caller.AssertNotCalled(t, "Call", wallet, target, uint64(3), []byte("second"))
				})

				Convey("Then a revoked confirmation stops counting", func() {
					So(ctrl.Revoke(ctx, db, wallet, b, id), ShouldBeNil)
					confirmed, _ := ctrl.Confirmations(db, wallet, id)
					So(confirmed, ShouldResemble, []quorum.Address{a})
					So(ErrNotConfirmed.Is(ctrl.Revoke(ctx, db, wallet, b, id)), ShouldBeTrue)

					_, err := ctrl.Execute(ctx, db, wallet, a, id, list)
					So(ErrNotEnoughConfirmations.Is(err), ShouldBeTrue)
				})
			})
		})
	})
}

func TestInit(t *testing.T) {
	a, b, c := quorumtest.NewAddress(), quorumtest.NewAddress(), quorumtest.NewAddress()
	zero := make(quorum.Address, quorum.AddressLength)
	many := make([]quorum.Address, DefaultMaxOwners+1)
	for i := range many {
		many[i] = quorumtest.NewAddress()
	}

	cases := map[string]struct {
		owners   []quorum.Address
		required uint32
		wantErr  *errors.Error
	}{
		"valid": {
			owners:   []quorum.Address{a, b, c},
			required: 2,
		},
		"all required": {
			owners:   []quorum.Address{a, b},
			required: 2,
		},
		"no owners": {
			owners:   nil,
			required: 1,
			wantErr:  ErrInvalidRequirement,
		},
		"zero required": {
			owners:   []quorum.Address{a},
			required: 0,
			wantErr:  ErrInvalidRequirement,
		},
		"required greater than owner count": {
			owners:   []quorum.Address{a, b},
			required: 3,
			wantErr:  ErrInvalidRequirement,
		},
		"too many owners": {
			owners:   many,
			required: 1,
			wantErr:  ErrInvalidRequirement,
		},
		"duplicated owner": {
			owners:   []quorum.Address{a, b, a},
			required: 1,
			wantErr:  ErrInvalidOwner,
		},
		"zero owner": {
			owners:   []quorum.Address{a, zero},
			required: 1,
			wantErr:  ErrInvalidOwner,
		},
		"count is checked before owners": {
			owners:   []quorum.Address{a, a},
			required: 3,
			wantErr:  ErrInvalidRequirement,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			ctrl := NewController(&callerMock{})
			db := store.MemStore()
			wallet := WalletAddress("init")

			err := ctrl.Init(db, wallet, tc.owners, tc.required)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				_, err := ctrl.Wallet(db, wallet)
				assert.IsErr(t, errors.ErrNotFound, err)
				return
			}
			assert.Nil(t, err)
			w, err := ctrl.Wallet(db, wallet)
			assert.Nil(t, err)
			assert.Equal(t, tc.owners, w.Owners)
			assert.Equal(t, tc.required, w.Required)

			assert.IsErr(t, errors.ErrDuplicate, ctrl.Init(db, wallet, tc.owners, tc.required))
		})
	}
}

func TestSubmitValidationOrder(t *testing.T) {
	a := quorumtest.NewAddress()
	stranger := quorumtest.NewAddress()
	target := quorumtest.NewAddress()
	zero := make(quorum.Address, quorum.AddressLength)

	cases := map[string]struct {
		sender  quorum.Address
		list    ActionList
		wantErr *errors.Error
	}{
		"not an owner with invalid lengths": {
			sender:  stranger,
			list:    ActionList{Targets: []quorum.Address{target}},
			wantErr: ErrOnlyOwner,
		},
		"no sender": {
			sender:  nil,
			list:    NewActionList(Action{Target: target}),
			wantErr: ErrOnlyOwner,
		},
		"empty lists": {
			sender:  a,
			list:    ActionList{},
			wantErr: ErrInvalidLengths,
		},
		"missing value": {
			sender: a,
			list: ActionList{
				Targets:   []quorum.Address{target},
				CallDatas: [][]byte{nil},
			},
			wantErr: ErrInvalidLengths,
		},
		"missing call data": {
			sender: a,
			list: ActionList{
				Targets: []quorum.Address{target},
				Values:  []uint64{1},
			},
			wantErr: ErrInvalidLengths,
		},
		"invalid lengths with zero target": {
			sender: a,
			list: ActionList{
				Targets: []quorum.Address{zero},
				Values:  []uint64{1, 2},
			},
			wantErr: ErrInvalidLengths,
		},
		"zero target": {
			sender:  a,
			list:    NewActionList(Action{Target: target}, Action{Target: zero}),
			wantErr: ErrInvalidTarget,
		},
		"missing target": {
			sender:  a,
			list:    NewActionList(Action{Target: nil}),
			wantErr: ErrInvalidTarget,
		},
		"too many actions": {
			sender: a,
			list: NewActionList(
				Action{Target: target}, Action{Target: target},
				Action{Target: target}, Action{Target: target},
			),
			wantErr: ErrInvalidLengths,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			ctrl := NewController(&callerMock{})
			db := store.MemStore()
			assert.Nil(t, gconf.Save(db, confPkg, &Configuration{MaxOwners: 5, MaxActions: 3}))
			wallet := WalletAddress("submit")
			assert.Nil(t, ctrl.Init(db, wallet, []quorum.Address{a, quorumtest.NewAddress()}, 2))

			_, _, err := ctrl.Submit(context.Background(), db, wallet, tc.sender, tc.list)
			assert.IsErr(t, tc.wantErr, err)

			counts, err := ctrl.Counts(db, wallet)
			assert.Nil(t, err)
			assert.Equal(t, Counts{}, counts)
		})
	}
}

func TestStickyConfirmations(t *testing.T) {
	caller := &callerMock{}
	ctrl := NewController(caller)
	db := store.MemStore()
	ctx := context.Background()
	wallet := WalletAddress("sticky")
	a, b, c := quorumtest.NewAddress(), quorumtest.NewAddress(), quorumtest.NewAddress()
	assert.Nil(t, ctrl.Init(db, wallet, []quorum.Address{a, b, c}, 3))

	list := NewActionList(Action{Target: quorumtest.NewAddress()})
	id, _, err := ctrl.Submit(ctx, db, wallet, a, list)
	assert.Nil(t, err)
	assert.Nil(t, ctrl.Confirm(ctx, db, wallet, c, id))
	assert.Nil(t, ctrl.Confirm(ctx, db, wallet, b, id))

	// Confirmations are listed in the owner order.
	confirmed, err := ctrl.Confirmations(db, wallet, id)
	assert.Nil(t, err)
	assert.Equal(t, []quorum.Address{a, b, c}, confirmed)

	// Removed owner confirmation is kept but does not count.
	assert.Nil(t, ctrl.RemoveOwner(ctx, db, wallet, wallet, b))
	confirmed, err = ctrl.Confirmations(db, wallet, id)
	assert.Nil(t, err)
	assert.Equal(t, []quorum.Address{a, c}, confirmed)
	ok, err := ctrl.IsConfirmed(db, wallet, id, b)
	assert.Nil(t, err)
	assert.True(t, ok, "confirmation of a removed owner is kept")

	// Adding the owner back makes the confirmation count again.
	assert.Nil(t, ctrl.AddOwner(ctx, db, wallet, wallet, b))
	confirmed, err = ctrl.Confirmations(db, wallet, id)
	assert.Nil(t, err)
	assert.Equal(t, []quorum.Address{a, c, b}, confirmed)

	// Lowering the requirement does not invalidate confirmations.
	assert.Nil(t, ctrl.ChangeRequirement(ctx, db, wallet, wallet, 1))
	caller.On("Call", wallet, list.Targets[0], uint64(0), list.CallDatas[0]).
		Return(&quorum.CallResult{Success: true}, nil).Once()
	_, err = ctrl.Execute(ctx, db, wallet, c, id, list)
	assert.Nil(t, err)
	caller.AssertExpectations(t)
}

func TestWallets(t *testing.T) {
	ctrl := NewController(&callerMock{})
	db := store.MemStore()
	owners := []quorum.Address{quorumtest.NewAddress(), quorumtest.NewAddress()}

	got, err := ctrl.Wallets(db)
	assert.Nil(t, err)
	assert.Equal(t, 0, len(got))

	first, second := WalletAddress("first"), WalletAddress("second")
	assert.Nil(t, ctrl.Init(db, first, owners, 2))
	assert.Nil(t, ctrl.Init(db, second, owners, 2))

	// Transactions of a wallet must not be listed as wallets.
	_, _, err = ctrl.Submit(context.Background(), db, first, owners[0], NewActionList(Action{Target: owners[1]}))
	assert.Nil(t, err)

	got, err = ctrl.Wallets(db)
	assert.Nil(t, err)
	assert.Equal(t, 2, len(got))
	for _, addr := range got {
		if !addr.Equals(first) && !addr.Equals(second) {
			t.Fatalf("unexpected wallet %s", addr)
		}
	}
}

func eventKinds(events []quorum.Event) []string {
	kinds := make([]string, len(events))
	for i, e := range events {
		kinds[i] = e.Kind()
	}
	return kinds
}
