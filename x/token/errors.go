package token

import "github.com/iov-one/multivault/errors"

// ABCI Response Codes
// token reserves 40 ~ 49.
var (
	ErrInvalidAssetID = errors.Register(40, "invalid asset id")
)
