package custody

import (
	"bytes"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/app"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/orm"
	"github.com/iov-one/quorum/x"
	"github.com/iov-one/quorum/x/token"
)

// RegisterRoutes will instantiate and register all handlers of the vault
// with given address.
func RegisterRoutes(r quorum.Registry, auth x.Authenticator, caller quorum.Caller, vault quorum.Address) {
	h := vaultHandler{auth: auth, caller: caller, vault: vault, vaults: NewVaultBucket()}
	r.Handle(pathWithdrawNative, WithdrawNativeHandler{h})
	r.Handle(pathWithdrawToken, WithdrawTokenHandler{h})
}

// NewContract returns the contract that must be deployed at the vault
// address. Calls without data are accepted as deposits.
func NewContract(auth x.Authenticator, caller quorum.Caller, vault quorum.Address) *app.Contract {
	codec := app.NewCodec()
	codec.Register(func() quorum.Msg { return &WithdrawNativeMsg{} })
	codec.Register(func() quorum.Msg { return &WithdrawTokenMsg{} })
	r := app.NewRouter()
	RegisterRoutes(r, auth, caller, vault)
	return app.NewContract(codec, r).WithReceive(depositHandler{})
}

type vaultHandler struct {
	auth   x.Authenticator
	caller quorum.Caller
	vault  quorum.Address
	vaults orm.ModelBucket
}

// requireAdmin returns an error if the caller is not the vault admin.
func (h vaultHandler) requireAdmin(ctx quorum.Context, db quorum.ReadOnlyKVStore) error {
	var v Vault
	if err := h.vaults.One(db, h.vault, &v); err != nil {
		return errors.Wrapf(err, "vault %s", h.vault)
	}
	if !h.auth.HasAddress(ctx, v.Admin) {
		return errors.Wrap(ErrOnlyAdmin, x.MainSigner(ctx, h.auth).String())
	}
	return nil
}

// call executes a call on behalf of the vault and returns its data.
func (h vaultHandler) call(ctx quorum.Context, db quorum.KVStore, to quorum.Address, value uint64, data []byte) ([]byte, error) {
	res, err := h.caller.Call(ctx, db, h.vault, to, value, data)
	if err != nil {
		return nil, err
	}
	if !res.Success {
		return nil, errors.Wrapf(ErrWithdrawFailed, "call to %s: %s", to, res.ReturnData)
	}
	return res.ReturnData, nil
}

type WithdrawNativeHandler struct {
	vaultHandler
}

var _ quorum.Handler = WithdrawNativeHandler{}

func (h WithdrawNativeHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	m, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	msg, ok := m.(*WithdrawNativeMsg)
	if !ok {
		return nil, errors.WithType(errors.ErrMsg, m)
	}
	if err := h.requireAdmin(ctx, db); err != nil {
		return nil, err
	}
	if err := msg.Recipient.Validate(); err != nil {
		return nil, errors.Field("Recipient", err, "invalid recipient")
	}
	if _, err := h.call(ctx, db, msg.Recipient, msg.Amount, nil); err != nil {
		return nil, err
	}
	return &quorum.DeliverResult{}, nil
}

type WithdrawTokenHandler struct {
	vaultHandler
}

var _ quorum.Handler = WithdrawTokenHandler{}

func (h WithdrawTokenHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	m, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	msg, ok := m.(*WithdrawTokenMsg)
	if !ok {
		return nil, errors.WithType(errors.ErrMsg, m)
	}
	if err := h.requireAdmin(ctx, db); err != nil {
		return nil, err
	}
	var errs error
	errs = errors.AppendField(errs, "Token", msg.Token.Validate())
	errs = errors.AppendField(errs, "Recipient", msg.Recipient.Validate())
	if errs != nil {
		return nil, errs
	}

	transfer, err := app.EncodeCall(&token.TransferMsg{Recipient: msg.Recipient, Amount: msg.Amount})
	if err != nil {
		return nil, err
	}
	ret, err := h.call(ctx, db, msg.Token, 0, transfer)
	if err != nil {
		return nil, err
	}
	if !isTransferSuccess(ret) {
		return nil, errors.Wrapf(ErrWithdrawFailed, "token %s returned %X", msg.Token, ret)
	}
	return &quorum.DeliverResult{}, nil
}

// isTransferSuccess returns true if the data returned by a successful token
// transfer call does not report a failure. Tokens that return no data are
// trusted.
func isTransferSuccess(ret []byte) bool {
	if len(ret) == 0 {
		return true
	}
	return bytes.Equal(ret, token.True)
}

// depositHandler accepts plain value transfers to the vault.
type depositHandler struct{}

func (depositHandler) Deliver(quorum.Context, quorum.KVStore, quorum.Tx) (*quorum.DeliverResult, error) {
	return &quorum.DeliverResult{}, nil
}
