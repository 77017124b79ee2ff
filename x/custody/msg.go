package custody

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/codec"
)

const (
	pathWithdrawNative = "custody/withdraw_native"
	pathWithdrawToken  = "custody/withdraw_token"
)

// WithdrawNativeMsg sends native value held by the vault.
type WithdrawNativeMsg struct {
	Amount    uint64
	Recipient quorum.Address
}

var _ quorum.Msg = (*WithdrawNativeMsg)(nil)

func (WithdrawNativeMsg) Path() string { return pathWithdrawNative }

// Validate accepts any content, the handler checks the caller first.
func (*WithdrawNativeMsg) Validate() error { return nil }

func (m *WithdrawNativeMsg) Marshal() ([]byte, error) {
	e := codec.NewEncoder()
	e.Uint64(1, m.Amount)
	e.Bytes(2, m.Recipient)
	return e.Result()
}

func (m *WithdrawNativeMsg) Unmarshal(raw []byte) error {
	*m = WithdrawNativeMsg{}
	return codec.Decode(raw, func(field int, d *codec.Decoder) (err error) {
		switch field {
		case 1:
			m.Amount, err = d.Uint64()
		case 2:
			m.Recipient, err = d.Bytes()
		default:
			err = d.Skip()
		}
		return err
	})
}

// WithdrawTokenMsg sends tokens held by the vault.
type WithdrawTokenMsg struct {
	Token     quorum.Address
	Amount    uint64
	Recipient quorum.Address
}

var _ quorum.Msg = (*WithdrawTokenMsg)(nil)

func (WithdrawTokenMsg) Path() string { return pathWithdrawToken }

// Validate accepts any content, the handler checks the caller first.
func (*WithdrawTokenMsg) Validate() error { return nil }

func (m *WithdrawTokenMsg) Marshal() ([]byte, error) {
	e := codec.NewEncoder()
	e.Bytes(1, m.Token)
	e.Uint64(2, m.Amount)
	e.Bytes(3, m.Recipient)
	return e.Result()
}

func (m *WithdrawTokenMsg) Unmarshal(raw []byte) error {
	*m = WithdrawTokenMsg{}
	return codec.Decode(raw, func(field int, d *codec.Decoder) (err error) {
		switch field {
		case 1:
			m.Token, err = d.Bytes()
		case 2:
			m.Amount, err = d.Uint64()
		case 3:
			m.Recipient, err = d.Bytes()
		default:
			err = d.Skip()
		}
		return err
	})
}
