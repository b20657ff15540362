package object

import (
	"github.com/iov-one/multivault"
	"github.com/iov-one/multivault/errors"
)

const optKey = "object"

// Initializer creates the objects declared in the genesis file. Ids are
// assigned in the declaration order, starting at 1.
type Initializer struct{}

var _ weave.Initializer = Initializer{}

func (Initializer) FromGenesis(opts weave.Options, kv weave.KVStore) error {
	var objs []Object
	if err := opts.ReadOptions(optKey, &objs); err != nil {
		return err
	}
	control := NewController(NewBucket())
	for i, o := range objs {
		if _, err := control.Create(kv, o.Owner, o.URI); err != nil {
			return errors.Wrapf(err, "object %d", i)
		}
	}
	return nil
}
