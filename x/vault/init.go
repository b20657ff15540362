package vault

import (
	"github.com/iov-one/multivault"
	"github.com/iov-one/multivault/errors"
	"github.com/iov-one/multivault/gconf"
)

// Initializer stores the vault configuration declared in the genesis
// file, under conf.vault. A genesis without it runs with no admin and no
// creation fee.
type Initializer struct{}

var _ weave.Initializer = Initializer{}

func (Initializer) FromGenesis(opts weave.Options, kv weave.KVStore) error {
	var conf Configuration
	err := gconf.InitConfig(kv, opts, configPkg, &conf)
	if errors.ErrNotFound.Is(err) {
		return nil
	}
	return err
}
