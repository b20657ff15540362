package app

import (
	"context"
	"testing"

	"github.com/iov-one/multivault/errors"
	"github.com/iov-one/multivault/store"
	"github.com/iov-one/multivault/weavetest"
	"github.com/iov-one/multivault/weavetest/assert"
)

func TestRouter(t *testing.T) {
	var (
		r     = NewRouter()
		vault weavetest.Handler
		cash  = weavetest.Handler{DeliverErr: errors.ErrInsufficientAmount}
	)
	r.Handle("vault/create", &vault)
	r.Handle("cash/send", &cash)

	ctx := context.Background()
	db := store.MemStore()

	_, err := r.Deliver(ctx, db, &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "vault/create"}})
	assert.Nil(t, err)
	assert.Equal(t, 1, vault.DeliverCallCount())

	_, err = r.Check(ctx, db, &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "cash/send"}})
	assert.Nil(t, err)
	_, err = r.Deliver(ctx, db, &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "cash/send"}})
	assert.IsErr(t, errors.ErrInsufficientAmount, err)
	assert.Equal(t, 2, cash.CallCount())

	_, err = r.Deliver(ctx, db, &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "unknown/path"}})
	assert.IsErr(t, errors.ErrNotFound, err)

	_, err = r.Deliver(ctx, db, &weavetest.Tx{Err: errors.ErrEmpty})
	assert.IsErr(t, errors.ErrEmpty, err)
}

func TestRouterRegistration(t *testing.T) {
	r := NewRouter()
	r.Handle("vault/vote", &weavetest.Handler{})

	assert.Panics(t, func() { r.Handle("vault/vote", &weavetest.Handler{}) })
	assert.Panics(t, func() { r.Handle("bad path!", &weavetest.Handler{}) })
}
