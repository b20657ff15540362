package collectible

import "github.com/iov-one/multivault/errors"

// ABCI Response Codes
// collectible reserves 50 ~ 59.
var (
	ErrUnknownCollectible = errors.Register(50, "unknown collectible")
)
