package multisig

import (
	"bytes"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/orm"
	amino "github.com/tendermint/go-amino"
)

// WalletAddress returns the address of the wallet with given name.
func WalletAddress(name string) quorum.Address {
	return quorum.NewCondition("multisig", "wallet", []byte(name)).Address()
}

// Controller implements the state machine of multisig wallets. Each method
// operates on the wallet with given address.
type Controller struct {
	caller  quorum.Caller
	wallets orm.ModelBucket
	txs     orm.ModelBucket
	confs   orm.ModelBucket
}

// NewController returns a controller executing actions using given caller.
func NewController(caller quorum.Caller) *Controller {
	return &Controller{
		caller:  caller,
		wallets: NewWalletBucket(),
		txs:     NewTransactionBucket(),
		confs:   NewConfirmationBucket(),
	}
}

// Init creates a new wallet.
func (c *Controller) Init(db quorum.KVStore, wallet quorum.Address, owners []quorum.Address, required uint32) error {
	if err := wallet.Validate(); err != nil {
		return errors.Wrap(err, "wallet")
	}
	conf, err := loadConf(db)
	if err != nil {
		return errors.Wrap(err, "configuration")
	}
	if len(owners) == 0 || len(owners) > int(conf.MaxOwners) || required == 0 || int(required) > len(owners) {
		return ErrInvalidRequirement.Newf("%d of %d owners required", required, len(owners))
	}
	w := Wallet{Required: required}
	for i, o := range owners {
		if o.IsZero() || o.Validate() != nil || w.IsOwner(o) {
			return ErrInvalidOwner.Newf("owner %d: %s", i, o)
		}
		w.Owners = append(w.Owners, o.Clone())
	}

	switch err := c.wallets.Has(db, wallet); {
	case err == nil:
		return errors.Wrapf(errors.ErrDuplicate, "wallet %s", wallet)
	case !errors.ErrNotFound.Is(err):
		return err
	}
	return c.wallets.Put(db, wallet, &w)
}

// Wallet returns the state of given wallet.
func (c *Controller) Wallet(db quorum.ReadOnlyKVStore, wallet quorum.Address) (*Wallet, error) {
	var w Wallet
	if err := c.wallets.One(db, wallet, &w); err != nil {
		return nil, errors.Wrapf(err, "wallet %s", wallet)
	}
	return &w, nil
}

// Transaction returns the transaction with given id. ErrTxNotFound is
// returned if it was never submitted.
func (c *Controller) Transaction(db quorum.ReadOnlyKVStore, wallet quorum.Address, id uint64) (*Transaction, error) {
	var tx Transaction
	switch err := c.txs.One(db, txKey(wallet, id), &tx); {
	case err == nil:
		return &tx, nil
	case errors.ErrNotFound.Is(err):
		return nil, ErrTxNotFound.Newf("%d", id)
	default:
		return nil, err
	}
}

// IsConfirmed returns true if given owner confirmed the transaction. The
// confirmation is recorded even if the owner was removed since.
func (c *Controller) IsConfirmed(db quorum.ReadOnlyKVStore, wallet quorum.Address, id uint64, owner quorum.Address) (bool, error) {
	switch err := c.confs.Has(db, confKey(wallet, id, owner)); {
	case err == nil:
		return true, nil
	case errors.ErrNotFound.Is(err):
		return false, nil
	default:
		return false, err
	}
}

// Confirmations returns all current owners that confirmed given
// transaction, in the owner list order.
func (c *Controller) Confirmations(db quorum.ReadOnlyKVStore, wallet quorum.Address, id uint64) ([]quorum.Address, error) {
	w, err := c.Wallet(db, wallet)
	if err != nil {
		return nil, err
	}
	return c.confirmations(db, w, wallet, id)
}

func (c *Controller) confirmations(db quorum.ReadOnlyKVStore, w *Wallet, wallet quorum.Address, id uint64) ([]quorum.Address, error) {
	var confirmed []quorum.Address
	for _, o := range w.Owners {
		ok, err := c.IsConfirmed(db, wallet, id, o)
		if err != nil {
			return nil, err
		}
		if ok {
			confirmed = append(confirmed, o)
		}
	}
	return confirmed, nil
}

// Wallets returns the addresses of all wallets, in key order.
func (c *Controller) Wallets(db quorum.ReadOnlyKVStore) ([]quorum.Address, error) {
	keys, err := c.wallets.Keys(db, nil)
	if err != nil {
		return nil, err
	}
	addrs := make([]quorum.Address, len(keys))
	for i, k := range keys {
		addrs[i] = k
	}
	return addrs, nil
}

// Counts holds the number of transactions of a wallet.
type Counts struct {
	Total    uint64 `json:"total"`
	Executed uint64 `json:"executed"`
	Pending  uint64 `json:"pending"`
}

// Counts returns the number of submitted, executed and pending
// transactions.
func (c *Controller) Counts(db quorum.ReadOnlyKVStore, wallet quorum.Address) (Counts, error) {
	w, err := c.Wallet(db, wallet)
	if err != nil {
		return Counts{}, err
	}
	seq := c.txs.Sequence(wallet.String())
	total, err := seq.Latest(db)
	if err != nil {
		return Counts{}, errors.Wrap(err, "transaction sequence")
	}
	return Counts{
		Total:    uint64(total),
		Executed: w.Executed,
		Pending:  uint64(total) - w.Executed,
	}, nil
}

// Submit creates a new transaction confirmed by the sender. If a single
// confirmation is required, the transaction is executed immediately and
// the combined result of all actions is returned.
func (c *Controller) Submit(ctx quorum.Context, db quorum.KVStore, wallet, sender quorum.Address, list ActionList) (uint64, []byte, error) {
	w, err := c.Wallet(db, wallet)
	if err != nil {
		return 0, nil, err
	}
	if !w.IsOwner(sender) {
		return 0, nil, errors.Wrap(ErrOnlyOwner, sender.String())
	}
	actions, err := requireActions(db, list)
	if err != nil {
		return 0, nil, err
	}
	for i, a := range actions {
		if a.Target.IsZero() || a.Target.Validate() != nil {
			return 0, nil, ErrInvalidTarget.Newf("action %d: %s", i, a.Target)
		}
	}

	seq := c.txs.Sequence(wallet.String())
	next, err := seq.NextInt(db)
	if err != nil {
		return 0, nil, errors.Wrap(err, "transaction sequence")
	}
	id := uint64(next - 1)
	tx := Transaction{ActionHashes: ActionHashes(actions, id)}
	if err := c.txs.Put(db, txKey(wallet, id), &tx); err != nil {
		return 0, nil, errors.Wrap(err, "save transaction")
	}
	quorum.Emit(ctx, SubmissionEvent{
		TransactionID: id,
		ActionHashes:  tx.ActionHashes,
		ActionList:    list,
	})
	quorum.GetLogger(ctx).Debug("transaction submitted", "transaction_id", id, "actions", len(actions))

	if err := c.confirm(ctx, db, wallet, id, sender); err != nil {
		return 0, nil, err
	}
	ready, err := c.isReady(db, w, wallet, id)
	if err != nil || !ready {
		return id, nil, err
	}
	res, err := c.execute(ctx, db, wallet, id, &tx, actions)
	return id, res, err
}

// Confirm records the confirmation of the sender. The transaction is not
// executed, even if enough confirmations are collected.
func (c *Controller) Confirm(ctx quorum.Context, db quorum.KVStore, wallet, sender quorum.Address, id uint64) error {
	if _, _, err := c.checkConfirm(db, wallet, sender, id); err != nil {
		return err
	}
	return c.confirm(ctx, db, wallet, id, sender)
}

// ConfirmWithData records the confirmation of the sender. Provided actions
// are verified against the transaction commitments. If the confirmation
// threshold is reached, the transaction is executed and the combined
// result of all actions is returned. Actions can be omitted only if the
// transaction is not executed by this confirmation.
func (c *Controller) ConfirmWithData(ctx quorum.Context, db quorum.KVStore, wallet, sender quorum.Address, id uint64, list ActionList) ([]byte, error) {
	w, tx, err := c.checkConfirm(db, wallet, sender, id)
	if err != nil {
		return nil, err
	}
	if err := c.confirm(ctx, db, wallet, id, sender); err != nil {
		return nil, err
	}
	ready, err := c.isReady(db, w, wallet, id)
	if err != nil {
		return nil, err
	}
	if !ready && list.IsEmpty() {
		return nil, nil
	}
	actions, err := verifyActions(list, tx, id)
	if err != nil {
		return nil, err
	}
	if !ready {
		return nil, nil
	}
	return c.execute(ctx, db, wallet, id, tx, actions)
}

// checkConfirm ensures that the sender can confirm the transaction.
func (c *Controller) checkConfirm(db quorum.KVStore, wallet, sender quorum.Address, id uint64) (*Wallet, *Transaction, error) {
	w, err := c.Wallet(db, wallet)
	if err != nil {
		return nil, nil, err
	}
	if !w.IsOwner(sender) {
		return nil, nil, errors.Wrap(ErrOnlyOwner, sender.String())
	}
	tx, err := c.Transaction(db, wallet, id)
	if err != nil {
		return nil, nil, err
	}
	if tx.Executed {
		return nil, nil, ErrAlreadyExecuted.Newf("%d", id)
	}
	switch ok, err := c.IsConfirmed(db, wallet, id, sender); {
	case err != nil:
		return nil, nil, err
	case ok:
		return nil, nil, ErrAlreadyConfirmed.Newf("%d by %s", id, sender)
	}
	return w, tx, nil
}

func (c *Controller) confirm(ctx quorum.Context, db quorum.KVStore, wallet quorum.Address, id uint64, sender quorum.Address) error {
	if err := c.confs.Put(db, confKey(wallet, id, sender), &Confirmation{Owner: sender}); err != nil {
		return errors.Wrap(err, "save confirmation")
	}
	quorum.Emit(ctx, ConfirmationEvent{Sender: sender, TransactionID: id})
	quorum.GetLogger(ctx).Debug("transaction confirmed", "transaction_id", id, "sender", sender)
	return nil
}

// Revoke withdraws the confirmation of the sender.
func (c *Controller) Revoke(ctx quorum.Context, db quorum.KVStore, wallet, sender quorum.Address, id uint64) error {
	w, err := c.Wallet(db, wallet)
	if err != nil {
		return err
	}
	if !w.IsOwner(sender) {
		return errors.Wrap(ErrOnlyOwner, sender.String())
	}
	tx, err := c.Transaction(db, wallet, id)
	if err != nil {
		return err
	}
	switch ok, err := c.IsConfirmed(db, wallet, id, sender); {
	case err != nil:
		return err
	case !ok:
		return ErrNotConfirmed.Newf("%d by %s", id, sender)
	}
	if tx.Executed {
		return ErrAlreadyExecuted.Newf("%d", id)
	}
	if err := c.confs.Delete(db, confKey(wallet, id, sender)); err != nil {
		return errors.Wrap(err, "delete confirmation")
	}
	quorum.Emit(ctx, RevocationEvent{Sender: sender, TransactionID: id})
	quorum.GetLogger(ctx).Debug("confirmation revoked", "transaction_id", id, "sender", sender)
	return nil
}

// Execute runs all actions of a transaction that collected enough
// confirmations. The sender must be one of the confirming owners.
func (c *Controller) Execute(ctx quorum.Context, db quorum.KVStore, wallet, sender quorum.Address, id uint64, list ActionList) ([]byte, error) {
	w, err := c.Wallet(db, wallet)
	if err != nil {
		return nil, err
	}
	if !w.IsOwner(sender) {
		return nil, errors.Wrap(ErrOnlyOwner, sender.String())
	}
	tx, err := c.Transaction(db, wallet, id)
	if err != nil {
		return nil, err
	}
	if tx.Executed {
		return nil, ErrAlreadyExecuted.Newf("%d", id)
	}
	switch ok, err := c.IsConfirmed(db, wallet, id, sender); {
	case err != nil:
		return nil, err
	case !ok:
		return nil, ErrNotConfirmed.Newf("%d by %s", id, sender)
	}
	confirmed, err := c.confirmations(db, w, wallet, id)
	if err != nil {
		return nil, err
	}
	if len(confirmed) < int(w.Required) {
		return nil, ErrNotEnoughConfirmations.Newf("%d of %d", len(confirmed), w.Required)
	}
	actions, err := verifyActions(list, tx, id)
	if err != nil {
		return nil, err
	}
	return c.execute(ctx, db, wallet, id, tx, actions)
}

// isReady returns true if the transaction is confirmed by the required
// number of current owners.
func (c *Controller) isReady(db quorum.ReadOnlyKVStore, w *Wallet, wallet quorum.Address, id uint64) (bool, error) {
	confirmed, err := c.confirmations(db, w, wallet, id)
	if err != nil {
		return false, err
	}
	return len(confirmed) >= int(w.Required), nil
}

// execute marks the transaction as executed and runs all its actions in
// order. The transaction is marked before any action is run, so that an
// action calling back into the wallet cannot execute it again.
func (c *Controller) execute(ctx quorum.Context, db quorum.KVStore, wallet quorum.Address, id uint64, tx *Transaction, actions []Action) ([]byte, error) {
	tx.Executed = true
	if err := c.txs.Put(db, txKey(wallet, id), tx); err != nil {
		return nil, errors.Wrap(err, "save transaction")
	}
	w, err := c.Wallet(db, wallet)
	if err != nil {
		return nil, err
	}
	w.Executed++
	if err := c.wallets.Put(db, wallet, w); err != nil {
		return nil, errors.Wrap(err, "save wallet")
	}

	log := quorum.GetLogger(ctx).With("transaction_id", id)
	results := make([][]byte, len(actions))
	for i, a := range actions {
		res, err := c.caller.Call(ctx, db, wallet, a.Target, a.Value, a.Data)
		if err != nil {
			return nil, errors.Wrapf(err, "action %d", i)
		}
		if !res.Success {
			log.Info("transaction failed", "action", i, "reason", string(res.ReturnData))
			return nil, errors.Wrapf(ErrTransactionFailure, "action %d: %s", i, res.ReturnData)
		}
		quorum.Emit(ctx, ExecutionEvent{
			TransactionID: id,
			Target:        a.Target,
			Value:         a.Value,
			CallData:      a.Data,
		})
		results[i] = res.ReturnData
	}
	log.Info("transaction executed", "actions", len(actions))

	// Combine all results as a go-amino array.
	combined, err := amino.MarshalBinaryLengthPrefixed(results)
	if err != nil {
		return nil, errors.Wrap(errors.ErrHuman, err.Error())
	}
	return combined, nil
}

// requireActions returns the actions of a new transaction.
func requireActions(db quorum.ReadOnlyKVStore, list ActionList) ([]Action, error) {
	actions, err := list.Actions()
	if err != nil {
		return nil, err
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, errors.Wrap(err, "configuration")
	}
	switch n := len(actions); {
	case n == 0:
		return nil, errors.Wrap(ErrInvalidLengths, "no actions")
	case n > int(conf.MaxActions):
		return nil, ErrInvalidLengths.Newf("%d actions, %d allowed", n, conf.MaxActions)
	}
	return actions, nil
}

// verifyActions returns the actions if they match the transaction
// commitments.
func verifyActions(list ActionList, tx *Transaction, id uint64) ([]Action, error) {
	actions, err := list.Actions()
	if err != nil {
		return nil, err
	}
	if len(actions) != len(tx.ActionHashes) {
		return nil, ErrInvalidLengths.Newf("%d actions, %d submitted", len(actions), len(tx.ActionHashes))
	}
	for i, a := range actions {
		if a.Target.Validate() != nil {
			return nil, ErrInvalidAction.Newf("action %d: target %s", i, a.Target)
		}
		h := ActionHash(a.Target, a.Value, a.Data, id)
		if !bytes.Equal(h, tx.ActionHashes[i]) {
			return nil, ErrInvalidAction.Newf("action %d", i)
		}
	}
	return actions, nil
}
