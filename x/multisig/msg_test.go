package multisig

import (
	"testing"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/quorumtest"
	"github.com/iov-one/quorum/quorumtest/assert"
)

func TestActionListKeepsEmptyElements(t *testing.T) {
	target := quorumtest.NewAddress()
	msg := &ExecuteMsg{
		TransactionID: 3,
		ActionList: NewActionList(
			Action{Target: target, Value: 0, Data: nil},
			Action{Target: target, Value: 5, Data: []byte{1}},
			Action{Target: nil, Value: 0, Data: []byte{}},
		),
	}
	raw, err := msg.Marshal()
	assert.Nil(t, err)

	var got ExecuteMsg
	assert.Nil(t, got.Unmarshal(raw))
	assert.Equal(t, uint64(3), got.TransactionID)
	assert.Equal(t, []uint64{0, 5, 0}, got.Values)
	assert.Equal(t, 3, len(got.Targets))
	assert.Equal(t, 3, len(got.CallDatas))
	assert.Equal(t, 0, len(got.Targets[2]))

	actions, err := got.Actions()
	assert.Nil(t, err)
	assert.Equal(t, []byte{1}, actions[1].Data)
}

func TestActionListLengths(t *testing.T) {
	l := ActionList{
		Targets: []quorum.Address{quorumtest.NewAddress()},
		Values:  []uint64{1, 2},
	}
	_, err := l.Actions()
	assert.IsErr(t, ErrInvalidLengths, err)
	assert.True(t, !l.IsEmpty(), "list is not empty")
	assert.True(t, ActionList{}.IsEmpty(), "zero list is empty")
}
