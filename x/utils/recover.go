package utils

import (
	"github.com/iov-one/multivault"
	"github.com/iov-one/multivault/errors"
)

// Recovery turns a panic raised by any handler below it into an ErrPanic
// result. The panic value is logged with the message path, while the
// returned error exposes it only in debug responses.
type Recovery struct{}

var _ weave.Decorator = Recovery{}

func NewRecovery() Recovery {
	return Recovery{}
}

func (r Recovery) Check(ctx weave.Context, store weave.KVStore, tx weave.Tx, next weave.Checker) (_ *weave.CheckResult, err error) {
	defer recovered(ctx, tx, &err)
	return next.Check(ctx, store, tx)
}

func (r Recovery) Deliver(ctx weave.Context, store weave.KVStore, tx weave.Tx, next weave.Deliverer) (_ *weave.DeliverResult, err error) {
	defer recovered(ctx, tx, &err)
	return next.Deliver(ctx, store, tx)
}

// recovered must be deferred directly, recover only works there.
func recovered(ctx weave.Context, tx weave.Tx, err *error) {
	r := recover()
	if r == nil {
		return
	}
	path := "(missing)"
	if tx != nil {
		path = weave.GetPath(tx)
	}
	*err = errors.Wrapf(errors.ErrPanic, "%s: %v", path, r)
	weave.GetLogger(ctx).Error("handler panic", "path", path, "panic", r)
}
