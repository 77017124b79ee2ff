package token

import (
	"strconv"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/app"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/x"
	"github.com/tendermint/tendermint/libs/common"
)

// RegisterRoutes will instantiate and register all handlers of given
// token.
func RegisterRoutes(r quorum.Registry, auth x.Authenticator, t *Token) {
	r.Handle(pathTransfer, NewTransferHandler(auth, t))
}

// NewContract returns the contract that must be deployed at the token
// address.
func NewContract(auth x.Authenticator, t *Token) *app.Contract {
	codec := app.NewCodec()
	codec.Register(func() quorum.Msg { return &TransferMsg{} })
	r := app.NewRouter()
	RegisterRoutes(r, auth, t)
	return app.NewContract(codec, r)
}

func NewTransferHandler(auth x.Authenticator, t *Token) quorum.Handler {
	return &TransferHandler{auth: auth, token: t}
}

type TransferHandler struct {
	auth  x.Authenticator
	token *Token
}

func (h *TransferHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	msg, sender, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.token.Transfer(db, sender, msg.Recipient, msg.Amount); err != nil {
		return nil, err
	}
	quorum.Emit(ctx, TransferEvent{
		Token:  h.token.Address(),
		From:   sender,
		To:     msg.Recipient,
		Amount: msg.Amount,
	})
	return &quorum.DeliverResult{Data: h.token.result()}, nil
}

func (h *TransferHandler) validate(ctx quorum.Context, tx quorum.Tx) (*TransferMsg, quorum.Address, error) {
	sender := x.MainSigner(ctx, h.auth)
	if sender == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "no sender")
	}
	rmsg, err := tx.GetMsg()
	if err != nil {
		return nil, nil, err
	}
	msg, ok := rmsg.(*TransferMsg)
	if !ok {
		return nil, nil, errors.WithType(errors.ErrMsg, rmsg)
	}
	if err := msg.Validate(); err != nil {
		return nil, nil, err
	}
	return msg, sender, nil
}

// TransferEvent is emitted by every successful transfer.
type TransferEvent struct {
	Token  quorum.Address
	From   quorum.Address
	To     quorum.Address
	Amount uint64
}

func (TransferEvent) Kind() string { return "Transfer" }

func (e TransferEvent) Tags() []common.KVPair {
	return []common.KVPair{
		{Key: []byte("token"), Value: []byte(e.Token.String())},
		{Key: []byte("from"), Value: []byte(e.From.String())},
		{Key: []byte("to"), Value: []byte(e.To.String())},
		{Key: []byte("amount"), Value: []byte(strconv.FormatUint(e.Amount, 10))},
	}
}
