package token

import (
	"github.com/iov-one/multivault"
	"github.com/iov-one/multivault/errors"
)

const optKey = "token"

// Initializer mints the holdings declared in the genesis file.
type Initializer struct{}

var _ weave.Initializer = Initializer{}

func (Initializer) FromGenesis(opts weave.Options, kv weave.KVStore) error {
	var holdings []Holding
	if err := opts.ReadOptions(optKey, &holdings); err != nil {
		return err
	}
	control := NewController(NewBucket())
	for i, h := range holdings {
		if err := h.Validate(); err != nil {
			return errors.Wrapf(err, "holding %d", i)
		}
		if err := control.Mint(kv, h.AssetID, h.Holder, h.Amount); err != nil {
			return errors.Wrapf(err, "holding %d", i)
		}
	}
	return nil
}
