package ledger

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/app"
	"github.com/iov-one/quorum/codec"
	"github.com/iov-one/quorum/errors"
	"github.com/tendermint/tendermint/libs/common"
)

// InvokeMsg is a top level invocation issued by an external account.
type InvokeMsg struct {
	Sender quorum.Address
	To     quorum.Address
	Value  uint64
	Data   []byte
}

var (
	_ quorum.Msg      = (*InvokeMsg)(nil)
	_ quorum.Actioner = (*InvokeMsg)(nil)
)

// Path returns the routing path of this message.
func (InvokeMsg) Path() string {
	return "ledger/invoke"
}

// Action returns the path of the contract message carried by the call
// data. Data that is not a call envelope is reported as (raw).
func (m *InvokeMsg) Action() string {
	path, err := app.CallPath(m.Data)
	if err != nil {
		return "(raw)"
	}
	return path
}

func (m *InvokeMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Sender", m.Sender.Validate())
	errs = errors.AppendField(errs, "To", m.To.Validate())
	return errs
}

func (m *InvokeMsg) Marshal() ([]byte, error) {
	e := codec.NewEncoder()
	e.Bytes(1, m.Sender)
	e.Bytes(2, m.To)
	e.Uint64(3, m.Value)
	e.Bytes(4, m.Data)
	return e.Result()
}

func (m *InvokeMsg) Unmarshal(raw []byte) error {
	*m = InvokeMsg{}
	return codec.Decode(raw, func(field int, d *codec.Decoder) (err error) {
		switch field {
		case 1:
			m.Sender, err = d.Bytes()
		case 2:
			m.To, err = d.Bytes()
		case 3:
			m.Value, err = d.Uint64()
		case 4:
			m.Data, err = d.Bytes()
		default:
			err = d.Skip()
		}
		return err
	})
}

// Receipt describes a successful invocation.
type Receipt struct {
	// ReturnData is the data returned by the called contract.
	ReturnData []byte
	// Events are all events emitted by the invocation and its nested
	// calls, in emission order.
	Events []quorum.Event
	// Tags describe the invocation.
	Tags []common.KVPair
}

// Invoke executes a top level call. Either the whole invocation succeeds,
// or none of its changes is applied and the reason of the failure is
// returned.
func (l *Ledger) Invoke(ctx quorum.Context, db quorum.KVStore, sender, to quorum.Address, value uint64, data []byte) (*Receipt, error) {
	msg := &InvokeMsg{Sender: sender, To: to, Value: value, Data: data}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	events := quorum.NewEventLog()
	ctx = quorum.WithEventLog(ctx, events)
	res, err := l.invoke.Deliver(ctx, db, &quorum.MsgTx{Msg: msg})
	if err != nil {
		return nil, err
	}
	return &Receipt{
		ReturnData: res.Data,
		Events:     events.Events(),
		Tags:       res.Tags,
	}, nil
}

// invokeHandler executes the top level call of an invocation.
type invokeHandler struct {
	ledger *Ledger
}

func (h invokeHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	m, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	msg, ok := m.(*InvokeMsg)
	if !ok {
		return nil, errors.WithType(errors.ErrMsg, m)
	}

	ctx = quorum.WithLogInfo(ctx, "sender", msg.Sender, "to", msg.To)
	res, err := h.ledger.Call(ctx, db, msg.Sender, msg.To, msg.Value, msg.Data)
	if err != nil {
		return nil, err
	}
	if !res.Success {
		if res.Err != nil {
			return nil, res.Err
		}
		return nil, errors.Wrap(ErrReverted, string(res.ReturnData))
	}
	return &quorum.DeliverResult{Data: res.ReturnData}, nil
}
