package multisig

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/codec"
)

const (
	pathSubmit            = "multisig/submit"
	pathConfirm           = "multisig/confirm"
	pathConfirmWithData   = "multisig/confirm_with_data"
	pathRevoke            = "multisig/revoke"
	pathExecute           = "multisig/execute"
	pathAddOwner          = "multisig/add_owner"
	pathRemoveOwner       = "multisig/remove_owner"
	pathReplaceOwner      = "multisig/replace_owner"
	pathChangeRequirement = "multisig/change_requirement"
)

// Action is a single call made by the wallet when a transaction is
// executed.
type Action struct {
	Target quorum.Address
	Value  uint64
	Data   []byte
}

// ActionList is the column representation of a list of actions, as
// provided by the caller. Lists are not required to be of the same length.
type ActionList struct {
	Targets   []quorum.Address
	Values    []uint64
	CallDatas [][]byte
}

// NewActionList returns the column representation of given actions.
func NewActionList(actions ...Action) ActionList {
	var l ActionList
	for _, a := range actions {
		l.Targets = append(l.Targets, a.Target)
		l.Values = append(l.Values, a.Value)
		l.CallDatas = append(l.CallDatas, a.Data)
	}
	return l
}

// IsEmpty returns true if none of the lists contains an element.
func (l ActionList) IsEmpty() bool {
	return len(l.Targets) == 0 && len(l.Values) == 0 && len(l.CallDatas) == 0
}

// Actions returns the list of actions. It returns ErrInvalidLengths if the
// lists are of different length.
func (l ActionList) Actions() ([]Action, error) {
	n := len(l.Targets)
	if len(l.Values) != n || len(l.CallDatas) != n {
		return nil, ErrInvalidLengths.Newf("%d targets, %d values, %d call datas",
			len(l.Targets), len(l.Values), len(l.CallDatas))
	}
	actions := make([]Action, n)
	for i := range actions {
		actions[i] = Action{
			Target: l.Targets[i],
			Value:  l.Values[i],
			Data:   l.CallDatas[i],
		}
	}
	return actions, nil
}

func (l ActionList) encode(e *codec.Encoder, first int) {
	e.RepeatedBytes(first, addressesToBytes(l.Targets))
	e.PackedUint64(first+1, l.Values)
	e.RepeatedBytes(first+2, l.CallDatas)
}

// decode reads a field of the action list. It returns false if the field
// does not belong to the list.
func (l *ActionList) decode(field, first int, d *codec.Decoder) (bool, error) {
	switch field {
	case first:
		b, err := d.Bytes()
		l.Targets = append(l.Targets, b)
		return true, err
	case first + 1:
		vs, err := d.PackedUint64()
		l.Values = append(l.Values, vs...)
		return true, err
	case first + 2:
		b, err := d.Bytes()
		l.CallDatas = append(l.CallDatas, b)
		return true, err
	}
	return false, nil
}

// Messages of this package accept any content in Validate. All checks
// depend on the wallet state and the caller and are done by the handlers
// in a well defined order.

// SubmitMsg creates a new transaction.
type SubmitMsg struct {
	ActionList
}

var _ quorum.Msg = (*SubmitMsg)(nil)

func (SubmitMsg) Path() string     { return pathSubmit }
func (*SubmitMsg) Validate() error { return nil }

func (m *SubmitMsg) Marshal() ([]byte, error) {
	e := codec.NewEncoder()
	m.encode(e, 1)
	return e.Result()
}

func (m *SubmitMsg) Unmarshal(raw []byte) error {
	*m = SubmitMsg{}
	return codec.Decode(raw, func(field int, d *codec.Decoder) error {
		if ok, err := m.decode(field, 1, d); ok {
			return err
		}
		return d.Skip()
	})
}

// ConfirmMsg confirms a transaction without executing it.
type ConfirmMsg struct {
	TransactionID uint64
}

var _ quorum.Msg = (*ConfirmMsg)(nil)

func (ConfirmMsg) Path() string     { return pathConfirm }
func (*ConfirmMsg) Validate() error { return nil }

func (m *ConfirmMsg) Marshal() ([]byte, error) {
	return marshalID(m.TransactionID)
}

func (m *ConfirmMsg) Unmarshal(raw []byte) error {
	return unmarshalID(raw, &m.TransactionID)
}

// ConfirmWithDataMsg confirms a transaction and executes it if the
// confirmation threshold is reached.
type ConfirmWithDataMsg struct {
	TransactionID uint64
	ActionList
}

var _ quorum.Msg = (*ConfirmWithDataMsg)(nil)

func (ConfirmWithDataMsg) Path() string     { return pathConfirmWithData }
func (*ConfirmWithDataMsg) Validate() error { return nil }

func (m *ConfirmWithDataMsg) Marshal() ([]byte, error) {
	e := codec.NewEncoder()
	e.Uint64(1, m.TransactionID)
	m.encode(e, 2)
	return e.Result()
}

func (m *ConfirmWithDataMsg) Unmarshal(raw []byte) error {
	*m = ConfirmWithDataMsg{}
	return codec.Decode(raw, func(field int, d *codec.Decoder) (err error) {
		if field == 1 {
			m.TransactionID, err = d.Uint64()
			return err
		}
		if ok, err := m.decode(field, 2, d); ok {
			return err
		}
		return d.Skip()
	})
}

// RevokeMsg withdraws the confirmation of the caller.
type RevokeMsg struct {
	TransactionID uint64
}

var _ quorum.Msg = (*RevokeMsg)(nil)

func (RevokeMsg) Path() string     { return pathRevoke }
func (*RevokeMsg) Validate() error { return nil }

func (m *RevokeMsg) Marshal() ([]byte, error) {
	return marshalID(m.TransactionID)
}

func (m *RevokeMsg) Unmarshal(raw []byte) error {
	return unmarshalID(raw, &m.TransactionID)
}

// ExecuteMsg executes a confirmed transaction.
type ExecuteMsg struct {
	TransactionID uint64
	ActionList
}

var _ quorum.Msg = (*ExecuteMsg)(nil)

func (ExecuteMsg) Path() string     { return pathExecute }
func (*ExecuteMsg) Validate() error { return nil }

func (m *ExecuteMsg) Marshal() ([]byte, error) {
	e := codec.NewEncoder()
	e.Uint64(1, m.TransactionID)
	m.encode(e, 2)
	return e.Result()
}

func (m *ExecuteMsg) Unmarshal(raw []byte) error {
	*m = ExecuteMsg{}
	return codec.Decode(raw, func(field int, d *codec.Decoder) (err error) {
		if field == 1 {
			m.TransactionID, err = d.Uint64()
			return err
		}
		if ok, err := m.decode(field, 2, d); ok {
			return err
		}
		return d.Skip()
	})
}

// AddOwnerMsg appends an owner to the wallet.
type AddOwnerMsg struct {
	Owner quorum.Address
}

var _ quorum.Msg = (*AddOwnerMsg)(nil)

func (AddOwnerMsg) Path() string     { return pathAddOwner }
func (*AddOwnerMsg) Validate() error { return nil }

func (m *AddOwnerMsg) Marshal() ([]byte, error) {
	return marshalAddr(m.Owner)
}

func (m *AddOwnerMsg) Unmarshal(raw []byte) error {
	return unmarshalAddr(raw, &m.Owner)
}

// RemoveOwnerMsg removes an owner from the wallet.
type RemoveOwnerMsg struct {
	Owner quorum.Address
}

var _ quorum.Msg = (*RemoveOwnerMsg)(nil)

func (RemoveOwnerMsg) Path() string     { return pathRemoveOwner }
func (*RemoveOwnerMsg) Validate() error { return nil }

func (m *RemoveOwnerMsg) Marshal() ([]byte, error) {
	return marshalAddr(m.Owner)
}

func (m *RemoveOwnerMsg) Unmarshal(raw []byte) error {
	return unmarshalAddr(raw, &m.Owner)
}

// ReplaceOwnerMsg replaces an owner, keeping its position in the owner
// list.
type ReplaceOwnerMsg struct {
	Owner    quorum.Address
	NewOwner quorum.Address
}

var _ quorum.Msg = (*ReplaceOwnerMsg)(nil)

func (ReplaceOwnerMsg) Path() string     { return pathReplaceOwner }
func (*ReplaceOwnerMsg) Validate() error { return nil }

func (m *ReplaceOwnerMsg) Marshal() ([]byte, error) {
	e := codec.NewEncoder()
	e.Bytes(1, m.Owner)
	e.Bytes(2, m.NewOwner)
	return e.Result()
}

func (m *ReplaceOwnerMsg) Unmarshal(raw []byte) error {
	*m = ReplaceOwnerMsg{}
	return codec.Decode(raw, func(field int, d *codec.Decoder) error {
		switch field {
		case 1:
			b, err := d.Bytes()
			m.Owner = b
			return err
		case 2:
			b, err := d.Bytes()
			m.NewOwner = b
			return err
		default:
			return d.Skip()
		}
	})
}

// ChangeRequirementMsg sets the number of confirmations required to
// execute a transaction.
type ChangeRequirementMsg struct {
	Required uint32
}

var _ quorum.Msg = (*ChangeRequirementMsg)(nil)

func (ChangeRequirementMsg) Path() string     { return pathChangeRequirement }
func (*ChangeRequirementMsg) Validate() error { return nil }

func (m *ChangeRequirementMsg) Marshal() ([]byte, error) {
	e := codec.NewEncoder()
	e.Uint64(1, uint64(m.Required))
	return e.Result()
}

func (m *ChangeRequirementMsg) Unmarshal(raw []byte) error {
	*m = ChangeRequirementMsg{}
	return codec.Decode(raw, func(field int, d *codec.Decoder) (err error) {
		if field != 1 {
			return d.Skip()
		}
		m.Required, err = d.Uint32()
		return err
	})
}

func marshalID(id uint64) ([]byte, error) {
	e := codec.NewEncoder()
	e.Uint64(1, id)
	return e.Result()
}

func unmarshalID(raw []byte, id *uint64) error {
	*id = 0
	return codec.Decode(raw, func(field int, d *codec.Decoder) (err error) {
		if field != 1 {
			return d.Skip()
		}
		*id, err = d.Uint64()
		return err
	})
}

func marshalAddr(a quorum.Address) ([]byte, error) {
	e := codec.NewEncoder()
	e.Bytes(1, a)
	return e.Result()
}

func unmarshalAddr(raw []byte, a *quorum.Address) error {
	*a = nil
	return codec.Decode(raw, func(field int, d *codec.Decoder) error {
		if field != 1 {
			return d.Skip()
		}
		b, err := d.Bytes()
		*a = b
		return err
	})
}
