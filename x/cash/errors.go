package cash

import "github.com/iov-one/multivault/errors"

// ABCI Response Codes
// cash reserves 30 ~ 39.
var (
	ErrNotRegistered = errors.Register(30, "asset kind not registered")
	ErrInvalidKind   = errors.Register(31, "invalid asset kind")
)
