package utils

import (
	"github.com/iov-one/quorum"
	"github.com/tendermint/tendermint/libs/common"
)

// ActionKey is the tag key under which ActionTagger stores the action.
const ActionKey = "action"

// ActionTagger adds an action tag to the result of every successful
// invocation, so receipts can be searched by the kind of action. For a
// top level invocation the action is the path of the contract message,
// for example multisig/submit.
type ActionTagger struct{}

var _ quorum.Decorator = ActionTagger{}

func NewActionTagger() ActionTagger {
	return ActionTagger{}
}

func (ActionTagger) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx, next quorum.Handler) (*quorum.DeliverResult, error) {
	// A transaction without a message cannot be tagged and is not
	// dispatched.
	if _, err := tx.GetMsg(); err != nil {
		return nil, err
	}
	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res.Tags = append(res.Tags, common.KVPair{
		Key:   []byte(ActionKey),
		Value: []byte(quorum.GetPath(tx)),
	})
	return res, nil
}
