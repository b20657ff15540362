package collectible

import (
	"github.com/iov-one/multivault"
	"github.com/iov-one/multivault/errors"
	"github.com/iov-one/multivault/orm"
	"github.com/iov-one/multivault/x"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r weave.Registry, auth x.Authenticator, control Controller) {
	r.Handle(CreateMsg{}.Path(), createHandler{auth: auth, control: control})
	r.Handle(TransferMsg{}.Path(), transferHandler{auth: auth, control: control})
}

type createHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ weave.Handler = createHandler{}

func (h createHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	var msg CreateMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := x.RequireMainSigner(ctx, h.auth); err != nil {
		return nil, err
	}
	return &weave.CheckResult{}, nil
}

// Deliver creates the collectible and returns its id as the result data.
func (h createHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	var msg CreateMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	signer, err := x.RequireMainSigner(ctx, h.auth)
	if err != nil {
		return nil, err
	}
	id, err := h.control.Create(db, msg.Name, signer.Address(), msg.Supply)
	if err != nil {
		return nil, err
	}
	return &weave.DeliverResult{Data: orm.EncodeSequence(id)}, nil
}

type transferHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ weave.Handler = transferHandler{}

func (h transferHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{}, nil
}

func (h transferHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, signer, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.Transfer(db, signer, msg.CollectibleID, msg.Recipient, msg.Amount); err != nil {
		return nil, err
	}
	return &weave.DeliverResult{}, nil
}

func (h transferHandler) validate(ctx weave.Context, tx weave.Tx) (*TransferMsg, weave.Condition, error) {
	var msg TransferMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	signer, err := x.RequireMainSigner(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	return &msg, signer, nil
}
