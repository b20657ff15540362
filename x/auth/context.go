package auth

import (
	"context"

	"github.com/iov-one/multivault"
	"github.com/iov-one/multivault/x"
)

type contextKey int // local to the auth module

const (
	contextKeySigners contextKey = iota
)

// WithSigners returns a context authenticated by given conditions. The first
// condition is the main signer.
//
// Only the outermost layer of the application, that verified the identity of
// the caller, is expected to call this function.
func WithSigners(ctx weave.Context, signers ...weave.Condition) weave.Context {
	return context.WithValue(ctx, contextKeySigners, signers)
}

// Authenticator reads the signers set via WithSigners.
type Authenticator struct{}

var _ x.Authenticator = Authenticator{}

// GetConditions returns who signed the current context. May be empty.
func (Authenticator) GetConditions(ctx weave.Context) []weave.Condition {
	// (val, ok) form to return nil instead of panic if unset
	val, _ := ctx.Value(contextKeySigners).([]weave.Condition)
	return val
}

// HasAddress returns true if the given address is in the signers.
func (a Authenticator) HasAddress(ctx weave.Context, addr weave.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
