package auth

import (
	"context"
	"testing"

	"github.com/iov-one/multivault"
	"github.com/iov-one/multivault/weavetest"
	"github.com/iov-one/multivault/weavetest/assert"
	"github.com/iov-one/multivault/x"
)

func TestAuthenticator(t *testing.T) {
	a := weavetest.NewCondition()
	b := weavetest.NewCondition()

	var auth Authenticator

	ctx := context.Background()
	assert.Nil(t, auth.GetConditions(ctx))
	assert.Nil(t, x.MainSigner(ctx, auth))

	ctx = WithSigners(ctx, a, b)
	assert.Equal(t, []weave.Condition{a, b}, auth.GetConditions(ctx))
	assert.Equal(t, a, x.MainSigner(ctx, auth))
	if !auth.HasAddress(ctx, b.Address()) {
		t.Fatal("b must be authenticated")
	}
	if auth.HasAddress(ctx, weavetest.NewCondition().Address()) {
		t.Fatal("random condition must not be authenticated")
	}
}
