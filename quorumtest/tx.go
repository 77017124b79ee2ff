package quorumtest

import "github.com/iov-one/quorum"

// Tx hands Msg to a handler. When Err is set GetMsg fails with it, which
// is how a malformed invocation looks to decorators.
type Tx struct {
	Msg quorum.Msg
	Err error
}

var _ quorum.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (quorum.Msg, error) {
	if tx.Err != nil {
		return nil, tx.Err
	}
	return tx.Msg, nil
}

// Msg is a message with a configurable route. Unmarshal stores the raw
// payload in Serialized and Marshal returns it, so a Msg can stand in for
// any contract message when testing routing and call encoding. When Err is
// set every method except Path fails with it.
type Msg struct {
	RoutePath  string
	Serialized []byte
	Err        error
}

var _ quorum.Msg = (*Msg)(nil)

func (m *Msg) Path() string { return m.RoutePath }

func (m *Msg) Validate() error { return m.Err }

func (m *Msg) Marshal() ([]byte, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Serialized, nil
}

func (m *Msg) Unmarshal(raw []byte) error {
	if m.Err != nil {
		return m.Err
	}
	m.Serialized = raw
	return nil
}
