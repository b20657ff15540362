package utils

import (
	"github.com/iov-one/multivault"
)

// ActionKey is the attribute added by ActionTagger to every collected event.
const ActionKey = "action"

// ActionTagger collects all events emitted while delivering a message into
// the DeliverResult. Each event is tagged with `action = msg.Path()` so
// clients have a standard way to search for them.
//
// Events emitted by a failed delivery are dropped together with its state
// changes.
type ActionTagger struct{}

var _ weave.Decorator = ActionTagger{}

// NewActionTagger creates a ActionTagger decorator
func NewActionTagger() ActionTagger {
	return ActionTagger{}
}

// Check just passes the request along
func (ActionTagger) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Checker) (*weave.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

// Deliver appends the emitted events on the result if there is a success.
func (ActionTagger) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Deliverer) (*weave.DeliverResult, error) {
	// if we error in reporting, let's do so early before dispatching
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}

	var log weave.EventLog
	res, err := next.Deliver(weave.WithEventSink(ctx, &log), db, tx)
	if err != nil {
		return nil, err
	}
	for _, e := range log.Events() {
		e.Attributes = append(e.Attributes, weave.Attribute{Key: ActionKey, Value: msg.Path()})
		res.Events = append(res.Events, e)
	}
	return res, nil
}
