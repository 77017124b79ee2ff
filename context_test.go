package quorum

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tendermint/tendermint/libs/log"
)

func TestContext(t *testing.T) {
	bg := context.Background()

	// try logger with default
	newLogger := log.NewTMLogger(os.Stdout)
	ctx := WithLogger(bg, newLogger)
	assert.Equal(t, DefaultLogger, GetLogger(bg))
	assert.Equal(t, newLogger, GetLogger(ctx))

	// changing the info, should modify the logger
	ctx2 := WithLogInfo(ctx, "foo", "bar")
	assert.NotEqual(t, GetLogger(ctx), GetLogger(ctx2))

	// caller is replaced by every nested call
	_, ok := GetCaller(ctx)
	assert.False(t, ok)
	first := NewAddress([]byte("first"))
	second := NewAddress([]byte("second"))
	ctx = WithCaller(ctx, first)
	got, ok := GetCaller(ctx)
	assert.True(t, ok)
	assert.Equal(t, first, got)
	nested := WithCaller(ctx, second)
	got, _ = GetCaller(nested)
	assert.Equal(t, second, got)
	got, _ = GetCaller(ctx)
	assert.Equal(t, first, got)

	assert.Equal(t, uint64(0), GetCallValue(ctx))
	assert.Equal(t, uint64(42), GetCallValue(WithCallValue(ctx, 42)))

	assert.Equal(t, 0, GetCallDepth(ctx))
	assert.Equal(t, 3, GetCallDepth(WithCallDepth(ctx, 3)))
}

func TestEventLog(t *testing.T) {
	ctx := context.Background()

	// without a log events are dropped
	Emit(ctx, testEvent("dropped"))

	events := NewEventLog()
	ctx = WithEventLog(ctx, events)
	Emit(ctx, testEvent("a"))

	child := NewEventLog()
	Emit(WithEventLog(ctx, child), testEvent("b"))
	assert.Len(t, events.Events(), 1)

	events.Merge(child)
	assert.Equal(t, []Event{testEvent("a"), testEvent("b")}, events.Events())
}
