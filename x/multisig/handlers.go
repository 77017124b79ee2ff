package multisig

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/app"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/orm"
	"github.com/iov-one/quorum/x"
)

// RegisterMessages registers all message types of this package.
func RegisterMessages(c *app.Codec) {
	c.Register(func() quorum.Msg { return &SubmitMsg{} })
	c.Register(func() quorum.Msg { return &ConfirmMsg{} })
	c.Register(func() quorum.Msg { return &ConfirmWithDataMsg{} })
	c.Register(func() quorum.Msg { return &RevokeMsg{} })
	c.Register(func() quorum.Msg { return &ExecuteMsg{} })
	c.Register(func() quorum.Msg { return &AddOwnerMsg{} })
	c.Register(func() quorum.Msg { return &RemoveOwnerMsg{} })
	c.Register(func() quorum.Msg { return &ReplaceOwnerMsg{} })
	c.Register(func() quorum.Msg { return &ChangeRequirementMsg{} })
}

// RegisterRoutes will instantiate and register all handlers of the wallet
// with given address.
func RegisterRoutes(r quorum.Registry, auth x.Authenticator, ctrl *Controller, wallet quorum.Address) {
	h := walletHandler{auth: auth, ctrl: ctrl, wallet: wallet}
	r.Handle(pathSubmit, SubmitHandler{h})
	r.Handle(pathConfirm, ConfirmHandler{h})
	r.Handle(pathConfirmWithData, ConfirmWithDataHandler{h})
	r.Handle(pathRevoke, RevokeHandler{h})
	r.Handle(pathExecute, ExecuteHandler{h})
	r.Handle(pathAddOwner, AddOwnerHandler{h})
	r.Handle(pathRemoveOwner, RemoveOwnerHandler{h})
	r.Handle(pathReplaceOwner, ReplaceOwnerHandler{h})
	r.Handle(pathChangeRequirement, ChangeRequirementHandler{h})
}

// NewContract returns the contract that must be deployed at the wallet
// address. Calls without data are accepted as deposits.
func NewContract(auth x.Authenticator, ctrl *Controller, wallet quorum.Address) *app.Contract {
	codec := app.NewCodec()
	RegisterMessages(codec)
	r := app.NewRouter()
	RegisterRoutes(r, auth, ctrl, wallet)
	return app.NewContract(codec, r).WithReceive(DepositHandler{})
}

// walletHandler holds what all handlers of a wallet share.
type walletHandler struct {
	auth   x.Authenticator
	ctrl   *Controller
	wallet quorum.Address
}

// sender returns the authenticated caller. Missing sender is nil, which
// never passes authorization checks.
func (h walletHandler) sender(ctx quorum.Context) quorum.Address {
	return x.MainSigner(ctx, h.auth)
}

type SubmitHandler struct {
	walletHandler
}

var _ quorum.Handler = SubmitHandler{}

// Deliver creates the transaction. Result data is the transaction id as
// 8 bytes big endian.
func (h SubmitHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	m, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	msg, ok := m.(*SubmitMsg)
	if !ok {
		return nil, errors.WithType(errors.ErrMsg, m)
	}
	id, _, err := h.ctrl.Submit(ctx, db, h.wallet, h.sender(ctx), msg.ActionList)
	if err != nil {
		return nil, err
	}
	return &quorum.DeliverResult{Data: orm.EncodeSequence(int64(id))}, nil
}

type ConfirmHandler struct {
	walletHandler
}

var _ quorum.Handler = ConfirmHandler{}

func (h ConfirmHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	m, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	msg, ok := m.(*ConfirmMsg)
	if !ok {
		return nil, errors.WithType(errors.ErrMsg, m)
	}
	if err := h.ctrl.Confirm(ctx, db, h.wallet, h.sender(ctx), msg.TransactionID); err != nil {
		return nil, err
	}
	return &quorum.DeliverResult{}, nil
}

type ConfirmWithDataHandler struct {
	walletHandler
}

var _ quorum.Handler = ConfirmWithDataHandler{}

// Deliver confirms the transaction. If it was executed, result data are
// the combined results of all actions.
func (h ConfirmWithDataHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	m, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	msg, ok := m.(*ConfirmWithDataMsg)
	if !ok {
		return nil, errors.WithType(errors.ErrMsg, m)
	}
	res, err := h.ctrl.ConfirmWithData(ctx, db, h.wallet, h.sender(ctx), msg.TransactionID, msg.ActionList)
	if err != nil {
		return nil, err
	}
	return &quorum.DeliverResult{Data: res}, nil
}

type RevokeHandler struct {
	walletHandler
}

var _ quorum.Handler = RevokeHandler{}

func (h RevokeHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	m, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	msg, ok := m.(*RevokeMsg)
	if !ok {
		return nil, errors.WithType(errors.ErrMsg, m)
	}
	if err := h.ctrl.Revoke(ctx, db, h.wallet, h.sender(ctx), msg.TransactionID); err != nil {
		return nil, err
	}
	return &quorum.DeliverResult{}, nil
}

type ExecuteHandler struct {
	walletHandler
}

var _ quorum.Handler = ExecuteHandler{}

// Deliver executes the transaction. Result data are the combined results
// of all actions.
func (h ExecuteHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	m, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	msg, ok := m.(*ExecuteMsg)
	if !ok {
		return nil, errors.WithType(errors.ErrMsg, m)
	}
	res, err := h.ctrl.Execute(ctx, db, h.wallet, h.sender(ctx), msg.TransactionID, msg.ActionList)
	if err != nil {
		return nil, err
	}
	return &quorum.DeliverResult{Data: res}, nil
}

type AddOwnerHandler struct {
	walletHandler
}

var _ quorum.Handler = AddOwnerHandler{}

func (h AddOwnerHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	m, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	msg, ok := m.(*AddOwnerMsg)
	if !ok {
		return nil, errors.WithType(errors.ErrMsg, m)
	}
	if err := h.ctrl.AddOwner(ctx, db, h.wallet, h.sender(ctx), msg.Owner); err != nil {
		return nil, err
	}
	return &quorum.DeliverResult{}, nil
}

type RemoveOwnerHandler struct {
	walletHandler
}

var _ quorum.Handler = RemoveOwnerHandler{}

func (h RemoveOwnerHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	m, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	msg, ok := m.(*RemoveOwnerMsg)
	if !ok {
		return nil, errors.WithType(errors.ErrMsg, m)
	}
	if err := h.ctrl.RemoveOwner(ctx, db, h.wallet, h.sender(ctx), msg.Owner); err != nil {
		return nil, err
	}
	return &quorum.DeliverResult{}, nil
}

type ReplaceOwnerHandler struct {
	walletHandler
}

var _ quorum.Handler = ReplaceOwnerHandler{}

func (h ReplaceOwnerHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	m, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	msg, ok := m.(*ReplaceOwnerMsg)
	if !ok {
		return nil, errors.WithType(errors.ErrMsg, m)
	}
	if err := h.ctrl.ReplaceOwner(ctx, db, h.wallet, h.sender(ctx), msg.Owner, msg.NewOwner); err != nil {
		return nil, err
	}
	return &quorum.DeliverResult{}, nil
}

type ChangeRequirementHandler struct {
	walletHandler
}

var _ quorum.Handler = ChangeRequirementHandler{}

func (h ChangeRequirementHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	m, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	msg, ok := m.(*ChangeRequirementMsg)
	if !ok {
		return nil, errors.WithType(errors.ErrMsg, m)
	}
	if err := h.ctrl.ChangeRequirement(ctx, db, h.wallet, h.sender(ctx), msg.Required); err != nil {
		return nil, err
	}
	return &quorum.DeliverResult{}, nil
}

// DepositHandler accepts plain value transfers to the wallet.
type DepositHandler struct{}

var _ quorum.Handler = DepositHandler{}

func (DepositHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	if value := quorum.GetCallValue(ctx); value > 0 {
		sender, _ := quorum.GetCaller(ctx)
		quorum.Emit(ctx, DepositEvent{Sender: sender, Value: value})
	}
	return &quorum.DeliverResult{}, nil
}
