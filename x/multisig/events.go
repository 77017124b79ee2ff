package multisig

import (
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/iov-one/quorum"
	"github.com/tendermint/tendermint/libs/common"
)

// SubmissionEvent is emitted when a transaction is created.
type SubmissionEvent struct {
	TransactionID uint64
	ActionHashes  [][]byte
	ActionList
}

func (SubmissionEvent) Kind() string { return "Submission" }

func (e SubmissionEvent) Tags() []common.KVPair {
	return []common.KVPair{
		tag("transaction_id", formatID(e.TransactionID)),
		tag("action_hashes", joinHex(e.ActionHashes)),
		tag("targets", joinHex(addressesToBytes(e.Targets))),
		tag("values", joinUint(e.Values)),
		tag("call_datas", joinHex(e.CallDatas)),
	}
}

// ConfirmationEvent is emitted when an owner confirms a transaction. This
// includes the implicit confirmation of the submitter.
type ConfirmationEvent struct {
	Sender        quorum.Address
	TransactionID uint64
}

func (ConfirmationEvent) Kind() string { return "Confirmation" }

func (e ConfirmationEvent) Tags() []common.KVPair {
	return []common.KVPair{
		tag("sender", e.Sender.String()),
		tag("transaction_id", formatID(e.TransactionID)),
	}
}

// RevocationEvent is emitted when an owner withdraws a confirmation.
type RevocationEvent struct {
	Sender        quorum.Address
	TransactionID uint64
}

func (RevocationEvent) Kind() string { return "Revocation" }

func (e RevocationEvent) Tags() []common.KVPair {
	return []common.KVPair{
		tag("sender", e.Sender.String()),
		tag("transaction_id", formatID(e.TransactionID)),
	}
}

// ExecutionEvent is emitted for every successfully executed action, in
// action order.
type ExecutionEvent struct {
	TransactionID uint64
	Target        quorum.Address
	Value         uint64
	CallData      []byte
}

func (ExecutionEvent) Kind() string { return "Execution" }

func (e ExecutionEvent) Tags() []common.KVPair {
	return []common.KVPair{
		tag("transaction_id", formatID(e.TransactionID)),
		tag("target", e.Target.String()),
		tag("value", strconv.FormatUint(e.Value, 10)),
		tag("call_data", strings.ToUpper(hex.EncodeToString(e.CallData))),
	}
}

type OwnerAdditionEvent struct {
	Owner quorum.Address
}

func (OwnerAdditionEvent) Kind() string { return "OwnerAddition" }

func (e OwnerAdditionEvent) Tags() []common.KVPair {
	return []common.KVPair{tag("owner", e.Owner.String())}
}

type OwnerRemovalEvent struct {
	Owner quorum.Address
}

func (OwnerRemovalEvent) Kind() string { return "OwnerRemoval" }

func (e OwnerRemovalEvent) Tags() []common.KVPair {
	return []common.KVPair{tag("owner", e.Owner.String())}
}

type RequirementChangeEvent struct {
	Required uint32
}

func (RequirementChangeEvent) Kind() string { return "RequirementChange" }

func (e RequirementChangeEvent) Tags() []common.KVPair {
	return []common.KVPair{tag("required", strconv.FormatUint(uint64(e.Required), 10))}
}

// DepositEvent is emitted when the wallet receives value without call
// data.
type DepositEvent struct {
	Sender quorum.Address
	Value  uint64
}

func (DepositEvent) Kind() string { return "Deposit" }

func (e DepositEvent) Tags() []common.KVPair {
	return []common.KVPair{
		tag("sender", e.Sender.String()),
		tag("value", strconv.FormatUint(e.Value, 10)),
	}
}

func tag(key, value string) common.KVPair {
	return common.KVPair{Key: []byte(key), Value: []byte(value)}
}

func formatID(id uint64) string {
	return strconv.FormatUint(id, 10)
}

func joinHex(bs [][]byte) string {
	enc := make([]string, len(bs))
	for i, b := range bs {
		enc[i] = strings.ToUpper(hex.EncodeToString(b))
	}
	return strings.Join(enc, ",")
}

func joinUint(vs []uint64) string {
	enc := make([]string, len(vs))
	for i, v := range vs {
		enc[i] = strconv.FormatUint(v, 10)
	}
	return strings.Join(enc, ",")
}
