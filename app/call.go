package app

import (
	"fmt"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/codec"
	"github.com/iov-one/quorum/errors"
)

// CallMsg is the envelope of a contract call. Path selects the message
// type and the handler, Payload is the serialized message.
type CallMsg struct {
	Path    string
	Payload []byte
}

// Marshal serializes the envelope.
func (m *CallMsg) Marshal() ([]byte, error) {
	e := codec.NewEncoder()
	e.String(1, m.Path)
	e.Bytes(2, m.Payload)
	return e.Result()
}

// Unmarshal loads the envelope from its serialized form.
func (m *CallMsg) Unmarshal(raw []byte) error {
	*m = CallMsg{}
	return codec.Decode(raw, func(field int, d *codec.Decoder) (err error) {
		switch field {
		case 1:
			m.Path, err = d.String()
		case 2:
			m.Payload, err = d.Bytes()
		default:
			err = d.Skip()
		}
		return err
	})
}

// EncodeCall returns the call data that delivers given message to a
// contract.
func EncodeCall(msg quorum.Msg) ([]byte, error) {
	payload, err := msg.Marshal()
	if err != nil {
		return nil, errors.Wrapf(err, "marshal %s", msg.Path())
	}
	env := CallMsg{Path: msg.Path(), Payload: payload}
	return env.Marshal()
}

// CallPath returns the path of the message carried by given call data.
// Empty data is a plain transfer delivered to the receive handler.
func CallPath(data []byte) (string, error) {
	if len(data) == 0 {
		return ReceivePath, nil
	}
	var env CallMsg
	if err := env.Unmarshal(data); err != nil {
		return "", errors.Wrap(err, "call envelope")
	}
	if env.Path == "" {
		return "", errors.Wrap(errors.ErrEmpty, "call path")
	}
	return env.Path, nil
}

// MustEncodeCall is EncodeCall that panics on failure.
func MustEncodeCall(msg quorum.Msg) []byte {
	raw, err := EncodeCall(msg)
	if err != nil {
		panic(err)
	}
	return raw
}

// Codec maps message paths to message types.
type Codec struct {
	msgs map[string]func() quorum.Msg
}

// NewCodec returns a codec with no messages registered.
func NewCodec() *Codec {
	return &Codec{msgs: make(map[string]func() quorum.Msg)}
}

// Register adds a message type. The factory must return a new, empty
// instance of the message. This function panics if given path is already
// registered.
func (c *Codec) Register(factory func() quorum.Msg) {
	path := factory().Path()
	if !isPath(path) {
		panic(fmt.Sprintf("invalid path: %s", path))
	}
	if _, ok := c.msgs[path]; ok {
		panic(fmt.Sprintf("re-registering message: %s", path))
	}
	c.msgs[path] = factory
}

// Decode reads call data and returns the validated message it carries.
func (c *Codec) Decode(data []byte) (quorum.Msg, error) {
	var env CallMsg
	if err := env.Unmarshal(data); err != nil {
		return nil, errors.Wrap(err, "call envelope")
	}
	factory, ok := c.msgs[env.Path]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "unknown message path %q", env.Path)
	}
	msg := factory()
	if err := msg.Unmarshal(env.Payload); err != nil {
		return nil, errors.Wrapf(err, "decode %s", env.Path)
	}
	if err := msg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "validate %s", env.Path)
	}
	return msg, nil
}
