package app

import (
	"context"
	"testing"

	"github.com/iov-one/multivault"
	"github.com/iov-one/multivault/errors"
	"github.com/iov-one/multivault/weavetest"
	"github.com/iov-one/multivault/x/utils"
	"github.com/stretchr/testify/assert"
)

// panicDecorator panics if the context height is at least the given value.
type panicDecorator int64

func (p panicDecorator) Check(ctx weave.Context, store weave.KVStore, tx weave.Tx, next weave.Checker) (*weave.CheckResult, error) {
	if h, _ := weave.GetHeight(ctx); h >= int64(p) {
		panic("too high")
	}
	return next.Check(ctx, store, tx)
}

func (p panicDecorator) Deliver(ctx weave.Context, store weave.KVStore, tx weave.Tx, next weave.Deliverer) (*weave.DeliverResult, error) {
	if h, _ := weave.GetHeight(ctx); h >= int64(p) {
		panic("too high")
	}
	return next.Deliver(ctx, store, tx)
}

func TestChain(t *testing.T) {
	var (
		c1, c2, c3 weavetest.Decorator
		h          weavetest.Handler
	)
	tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "test/chain"}}

	stack := ChainDecorators(
		&c1,
		utils.NewLogging(),
		utils.NewRecovery(),
		&c2,
		panicDecorator(6),
		&c3,
	).WithHandler(&h)

	bg := context.Background()

	// make some calls, make sure it is fine
	_, err := stack.Check(bg, nil, tx)
	assert.NoError(t, err)
	_, err = stack.Deliver(weave.WithHeight(bg, 4), nil, tx)
	assert.NoError(t, err)

	assert.Equal(t, 2, c1.CallCount())
	assert.Equal(t, 2, c2.CallCount())
	assert.Equal(t, 2, c3.CallCount())
	assert.Equal(t, 2, h.CallCount())

	// now, let's trigger a panic
	ctx := weave.WithHeight(bg, 8)
	_, err = stack.Check(ctx, nil, tx)
	assert.True(t, errors.ErrPanic.Is(err))
	_, err = stack.Deliver(ctx, nil, tx)
	assert.True(t, errors.ErrPanic.Is(err))

	assert.Equal(t, 4, c1.CallCount())
	assert.Equal(t, 4, c2.CallCount())
	// the panic happens before c3 is reached
	assert.Equal(t, 2, c3.CallCount())
	assert.Equal(t, 2, h.CallCount())
}

func TestChainSkipsNil(t *testing.T) {
	var (
		d *weavetest.Decorator
		h weavetest.Handler
	)
	stack := ChainDecorators(nil, d).WithHandler(&h)
	_, err := stack.Deliver(context.Background(), nil, nil)
	assert.NoError(t, err)
	assert.Equal(t, 1, h.DeliverCallCount())
}
