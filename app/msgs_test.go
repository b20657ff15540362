package app

import (
	"github.com/iov-one/multivault"
	"github.com/iov-one/multivault/errors"
)

// setMsg requests the value to be stored under the key.
type setMsg struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (*setMsg) Path() string { return "test/set" }

func (m *setMsg) Validate() error {
	if m.Key == "" {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	return nil
}

// setHandler stores the value of a setMsg and emits an event. It fails
// after writing when the value is "fail".
type setHandler struct{}

func (setHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	var msg setMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	return &weave.CheckResult{}, nil
}

func (setHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	var msg setMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	if err := db.Set([]byte(msg.Key), []byte(msg.Value)); err != nil {
		return nil, err
	}
	if msg.Value == "fail" {
		return nil, errors.Wrap(errors.ErrState, "requested failure")
	}
	weave.EmitEvent(ctx, weave.NewEvent("Set", "key", msg.Key))
	return &weave.DeliverResult{Data: []byte(msg.Key)}, nil
}

// genesisInit writes all "test" genesis entries into the store.
type genesisInit struct{}

func (genesisInit) FromGenesis(opts weave.Options, db weave.KVStore) error {
	var entries map[string]string
	if err := opts.ReadOptions("test", &entries); err != nil {
		return err
	}
	for k, v := range entries {
		if err := db.Set([]byte(k), []byte(v)); err != nil {
			return err
		}
	}
	return nil
}
