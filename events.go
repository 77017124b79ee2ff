package quorum

import (
	"github.com/tendermint/tendermint/libs/common"
)

// Event is a notification emitted by a successful state transition.
type Event interface {
	// Kind returns the name of the event, for example "Submission".
	Kind() string
	// Tags returns the event attributes.
	Tags() []common.KVPair
}

// EventLog collects events in emission order. Events of a nested call
// are collected in a child log and merged only when that call succeeds.
//
// EventLog is not safe for concurrent use.
type EventLog struct {
	events []Event
}

// NewEventLog returns an empty log.
func NewEventLog() *EventLog {
	return &EventLog{}
}

// Emit appends given event.
func (l *EventLog) Emit(e Event) {
	l.events = append(l.events, e)
}

// Merge appends all events of the child log.
func (l *EventLog) Merge(child *EventLog) {
	l.events = append(l.events, child.events...)
}

// Events returns all collected events in emission order.
func (l *EventLog) Events() []Event {
	return l.events
}

// CallResult is the outcome of a call to another account. A failed call
// does not change the state. ReturnData of a failed call contains the
// failure reason.
type CallResult struct {
	Success    bool
	ReturnData []byte
	Err        error
}

// Caller executes a call from one account to another. Failure of the call
// is reported by the result, returned error is reserved for failures that
// must abort the whole invocation.
type Caller interface {
	Call(ctx Context, db KVStore, from, to Address, value uint64, data []byte) (*CallResult, error)
}
