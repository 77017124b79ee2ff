package quorum

// Msg is a request to perform a state transition. It is just the request
// and must be validated by the Handlers. The sender is not part of the
// message, it is provided by the context.
type Msg interface {
	Persistent

	// Path returns the message path.
	// This is used by the Router to locate the proper Handler.
	//
	// Must be alphanumeric [0-9A-Za-z_\-/]+
	Path() string

	// Validate returns an error if the message content is not valid.
	Validate() error
}

// Marshaller is anything that can be represented in binary.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Persistent supports Marshal and Unmarshal.
//
// This is separated from Marshal, as this almost always requires a pointer,
// and functions that only need to marshal bytes can use the Marshaller
// interface to access non-pointers.
type Persistent interface {
	Marshaller
	Unmarshal([]byte) error
}

// Tx represent the data handed to a Handler. It wraps the decoded message.
type Tx interface {
	// GetMsg returns the action we wish to communicate.
	GetMsg() (Msg, error)
}

// Actioner is implemented by messages that only carry another action,
// like a top level invocation carrying a contract call.
type Actioner interface {
	// Action returns the path of the carried action.
	Action() string
}

// GetPath returns the path of the action performed by the transaction, or
// (missing) if there is no message. For messages implementing Actioner
// the carried action is returned.
func GetPath(tx Tx) string {
	if tx == nil {
		return "(missing)"
	}
	msg, err := tx.GetMsg()
	if err != nil || msg == nil {
		return "(missing)"
	}
	if a, ok := msg.(Actioner); ok {
		return a.Action()
	}
	return msg.Path()
}

// MsgTx is the simplest Tx implementation, carrying a single message.
type MsgTx struct {
	Msg Msg
}

var _ Tx = (*MsgTx)(nil)

// GetMsg returns the wrapped message.
func (tx *MsgTx) GetMsg() (Msg, error) {
	return tx.Msg, nil
}
