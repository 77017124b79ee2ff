/*
Package quorum defines the interfaces shared by all packages of the
authorization engine and its execution substrate: storage, messages,
handlers, events and the context values passed between them.

We pass context through context.Context between the ledger, decorators and
handlers. There should exist two functions for every XYZ of type T that we
want to support in Context:

	WithXYZ(Context, T) Context
	GetXYZ(Context) (val T, ok bool)

Unlike the logger, the call values (caller, value, depth) are replaced by
every nested call, so a handler always sees its immediate caller.
*/
package quorum

import (
	"context"

	"github.com/tendermint/tendermint/libs/log"
)

// Context is just an alias for the standard implementation.
// We use functions to extend it to our domain.
type Context = context.Context

type contextKey int // local to the quorum module

const (
	contextKeyLogger contextKey = iota
	contextKeyCaller
	contextKeyValue
	contextKeyDepth
	contextKeyEvents
)

// DefaultLogger is used for all context that have not set anything
// themselves.
var DefaultLogger = log.NewNopLogger()

// WithLogger sets the logger for this context.
func WithLogger(ctx Context, logger log.Logger) Context {
	return context.WithValue(ctx, contextKeyLogger, logger)
}

// WithLogInfo accepts keyvalue pairs, and returns another context like this,
// after passing all the keyvals to the Logger.
func WithLogInfo(ctx Context, keyvals ...interface{}) Context {
	logger := GetLogger(ctx).With(keyvals...)
	return WithLogger(ctx, logger)
}

// GetLogger returns the currently set logger, or DefaultLogger if none was
// set.
func GetLogger(ctx Context) log.Logger {
	val, ok := ctx.Value(contextKeyLogger).(log.Logger)
	if !ok {
		return DefaultLogger
	}
	return val
}

// WithCaller sets the address of the account that issued the current call.
// Every nested call replaces the value.
func WithCaller(ctx Context, caller Address) Context {
	return context.WithValue(ctx, contextKeyCaller, caller)
}

// GetCaller returns the address of the immediate caller.
func GetCaller(ctx Context) (Address, bool) {
	val, ok := ctx.Value(contextKeyCaller).(Address)
	return val, ok && len(val) != 0
}

// WithCallValue sets the native value transferred with the current call.
func WithCallValue(ctx Context, value uint64) Context {
	return context.WithValue(ctx, contextKeyValue, value)
}

// GetCallValue returns the native value transferred with the current call.
func GetCallValue(ctx Context) uint64 {
	val, _ := ctx.Value(contextKeyValue).(uint64)
	return val
}

// WithCallDepth sets how deep the current call is nested. The top level
// invocation is at depth 1.
func WithCallDepth(ctx Context, depth int) Context {
	return context.WithValue(ctx, contextKeyDepth, depth)
}

// GetCallDepth returns how deep the current call is nested, 0 if no call
// is being processed.
func GetCallDepth(ctx Context) int {
	val, _ := ctx.Value(contextKeyDepth).(int)
	return val
}

// WithEventLog attaches the log that collects events emitted by the current
// call.
func WithEventLog(ctx Context, events *EventLog) Context {
	return context.WithValue(ctx, contextKeyEvents, events)
}

// GetEventLog returns the log attached to the context, if any.
func GetEventLog(ctx Context) (*EventLog, bool) {
	val, ok := ctx.Value(contextKeyEvents).(*EventLog)
	return val, ok
}

// Emit records an event in the log attached to the context. Without a log
// the event is dropped.
func Emit(ctx Context, e Event) {
	if events, ok := GetEventLog(ctx); ok {
		events.Emit(e)
	}
}
