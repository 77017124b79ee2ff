package token

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/codec"
	"github.com/iov-one/quorum/errors"
)

const pathTransfer = "token/transfer"

// TransferMsg moves tokens from the caller to the recipient.
type TransferMsg struct {
	Recipient quorum.Address
	Amount    uint64
}

var _ quorum.Msg = (*TransferMsg)(nil)

func (TransferMsg) Path() string {
	return pathTransfer
}

func (m *TransferMsg) Validate() error {
	return errors.AppendField(nil, "Recipient", m.Recipient.Validate())
}

func (m *TransferMsg) Marshal() ([]byte, error) {
	e := codec.NewEncoder()
	e.Bytes(1, m.Recipient)
	e.Uint64(2, m.Amount)
	return e.Result()
}

func (m *TransferMsg) Unmarshal(raw []byte) error {
	*m = TransferMsg{}
	return codec.Decode(raw, func(field int, d *codec.Decoder) (err error) {
		switch field {
		case 1:
			m.Recipient, err = d.Bytes()
		case 2:
			m.Amount, err = d.Uint64()
		default:
			err = d.Skip()
		}
		return err
	})
}
