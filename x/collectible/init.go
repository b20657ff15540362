package collectible

import (
	"github.com/iov-one/multivault"
	"github.com/iov-one/multivault/errors"
)

const optKey = "collectible"

// GenesisCollectible declares a collectible created at genesis. Ids are
// assigned in the declaration order, starting at 1.
type GenesisCollectible struct {
	Name   string        `json:"name"`
	Owner  weave.Address `json:"owner"`
	Supply uint64        `json:"supply"`
}

// Initializer creates the collectibles declared in the genesis file.
type Initializer struct{}

var _ weave.Initializer = Initializer{}

func (Initializer) FromGenesis(opts weave.Options, kv weave.KVStore) error {
	var cols []GenesisCollectible
	if err := opts.ReadOptions(optKey, &cols); err != nil {
		return err
	}
	control := NewController()
	for i, c := range cols {
		if err := (&Collectible{Name: c.Name}).Validate(); err != nil {
			return errors.Wrapf(err, "collectible %d", i)
		}
		if _, err := control.Create(kv, c.Name, c.Owner, c.Supply); err != nil {
			return errors.Wrapf(err, "collectible %d", i)
		}
	}
	return nil
}
