package object

import "github.com/iov-one/multivault/errors"

// ABCI Response Codes
// object reserves 60 ~ 69.
var (
	ErrNotOwner = errors.Register(60, "not the object owner")
)
