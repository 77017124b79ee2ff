package ledger

import (
	"fmt"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/app"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/orm"
	"github.com/iov-one/quorum/x/utils"
)

// Contract is code deployed at an address. Call is executed each time the
// address is called with the caller and the transferred value available
// from the context.
type Contract interface {
	Call(ctx quorum.Context, db quorum.KVStore, data []byte) ([]byte, error)
}

// Ledger keeps track of balances and deployed contracts and executes calls
// between accounts.
type Ledger struct {
	contracts map[string]Contract
	balances  orm.ModelBucket
	invoke    quorum.Handler
}

// NewLedger returns a ledger without any contract deployed.
func NewLedger() *Ledger {
	l := &Ledger{
		contracts: make(map[string]Contract),
		balances:  NewBalanceBucket(),
	}
	l.invoke = app.ChainDecorators(
		utils.NewRecovery(),
		utils.NewLogging(),
		utils.NewActionTagger(),
		utils.NewSavepoint(),
	).WithHandler(invokeHandler{ledger: l})
	return l
}

// Deploy binds the contract to given address. This function panics if the
// address is not valid or a contract is already deployed there.
func (l *Ledger) Deploy(addr quorum.Address, c Contract) {
	if err := addr.Validate(); err != nil {
		panic(fmt.Sprintf("invalid contract address: %s", err))
	}
	if _, ok := l.contracts[string(addr)]; ok {
		panic(fmt.Sprintf("contract already deployed at %s", addr))
	}
	l.contracts[string(addr)] = c
}

// IsContract returns true if a contract is deployed at given address.
func (l *Ledger) IsContract(addr quorum.Address) bool {
	_, ok := l.contracts[string(addr)]
	return ok
}

// Balance returns the native value held by given account.
func (l *Ledger) Balance(db quorum.ReadOnlyKVStore, addr quorum.Address) (uint64, error) {
	var b Balance
	switch err := l.balances.One(db, addr, &b); {
	case err == nil:
		return b.Amount, nil
	case errors.ErrNotFound.Is(err):
		return 0, nil
	default:
		return 0, err
	}
}

// Issue creates new value on given account.
func (l *Ledger) Issue(db quorum.KVStore, addr quorum.Address, amount uint64) error {
	if err := addr.Validate(); err != nil {
		return errors.Wrap(err, "account")
	}
	have, err := l.Balance(db, addr)
	if err != nil {
		return err
	}
	if have+amount < have {
		return errors.Wrapf(errors.ErrOverflow, "balance of %s", addr)
	}
	return l.balances.Put(db, addr, &Balance{Amount: have + amount})
}

// move transfers value between two accounts.
func (l *Ledger) move(db quorum.KVStore, from, to quorum.Address, amount uint64) error {
	if amount == 0 {
		return nil
	}
	have, err := l.Balance(db, from)
	if err != nil {
		return err
	}
	if have < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "%s has %d, %d required", from, have, amount)
	}
	if err := l.balances.Put(db, from, &Balance{Amount: have - amount}); err != nil {
		return err
	}
	return l.Issue(db, to, amount)
}

var _ quorum.Caller = (*Ledger)(nil)

// Call moves value from one account to another and runs the contract
// deployed at the destination address, if any. All changes and events of
// the call are discarded if it fails.
//
// Failure of the call is reported by the result. Returned error is
// reserved for failures of the storage.
func (l *Ledger) Call(ctx quorum.Context, db quorum.KVStore, from, to quorum.Address, value uint64, data []byte) (*quorum.CallResult, error) {
	cstore, ok := db.(quorum.CacheableKVStore)
	if !ok {
		return nil, errors.Wrapf(errors.ErrDatabase, "%T does not support savepoints", db)
	}

	depth := quorum.GetCallDepth(ctx) + 1
	conf, err := loadConf(db)
	if err != nil {
		return nil, errors.Wrap(err, "configuration")
	}
	if depth > int(conf.MaxCallDepth) {
		return failed(errors.Wrapf(ErrCallDepth, "depth %d", depth)), nil
	}

	log := quorum.GetLogger(ctx).With("from", from, "to", to, "depth", depth)
	cache := cstore.CacheWrap()

	if err := l.move(cache, from, to, value); err != nil {
		cache.Discard()
		if !errors.ErrInsufficientAmount.Is(err) {
			return nil, err
		}
		log.Debug("call rejected", "err", err)
		return failed(err), nil
	}

	var ret []byte
	events := quorum.NewEventLog()
	if c, ok := l.contracts[string(to)]; ok {
		cctx := quorum.WithEventLog(ctx, events)
		cctx = quorum.WithCaller(cctx, from)
		cctx = quorum.WithCallValue(cctx, value)
		cctx = quorum.WithCallDepth(cctx, depth)
		ret, err = c.Call(cctx, cache, data)
		if err != nil {
			cache.Discard()
			log.Debug("call reverted", "err", err)
			return failed(err), nil
		}
	}

	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "write call state")
	}
	if parent, ok := quorum.GetEventLog(ctx); ok {
		parent.Merge(events)
	}
	return &quorum.CallResult{Success: true, ReturnData: ret}, nil
}

func failed(err error) *quorum.CallResult {
	return &quorum.CallResult{
		Success:    false,
		ReturnData: []byte(err.Error()),
		Err:        err,
	}
}
