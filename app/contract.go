package app

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

// ReceivePath is the path of the message delivered for calls without data.
const ReceivePath = "receive"

// ReceiveMsg is delivered to the receive handler of a contract when it is
// called without data, which is a plain value transfer.
type ReceiveMsg struct{}

var _ quorum.Msg = (*ReceiveMsg)(nil)

func (ReceiveMsg) Path() string                { return ReceivePath }
func (ReceiveMsg) Validate() error             { return nil }
func (ReceiveMsg) Marshal() ([]byte, error)    { return nil, nil }
func (*ReceiveMsg) Unmarshal(raw []byte) error { return nil }

// Contract exposes a set of handlers as a single call entry point. Call
// data is decoded by the codec and dispatched by the handler, usually a
// Router.
type Contract struct {
	codec   *Codec
	handler quorum.Handler
	receive quorum.Handler
}

// NewContract returns a contract that decodes call data with given codec
// and processes the result with given handler.
func NewContract(codec *Codec, handler quorum.Handler) *Contract {
	return &Contract{codec: codec, handler: handler}
}

// WithReceive sets the handler processing calls without data. Without it
// such calls fail.
func (c *Contract) WithReceive(h quorum.Handler) *Contract {
	c.receive = h
	return c
}

// Call decodes and processes the call data. Returned bytes are the return
// data of the call.
func (c *Contract) Call(ctx quorum.Context, db quorum.KVStore, data []byte) ([]byte, error) {
	if len(data) == 0 {
		if c.receive == nil {
			return nil, errors.Wrap(errors.ErrInput, "contract does not accept plain transfers")
		}
		res, err := c.receive.Deliver(ctx, db, &quorum.MsgTx{Msg: &ReceiveMsg{}})
		if err != nil {
			return nil, err
		}
		return res.Data, nil
	}

	msg, err := c.codec.Decode(data)
	if err != nil {
		return nil, err
	}
	res, err := c.handler.Deliver(ctx, db, &quorum.MsgTx{Msg: msg})
	if err != nil {
		return nil, err
	}
	return res.Data, nil
}
