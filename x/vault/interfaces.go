package vault

import "github.com/iov-one/multivault"

// TreasuryProvisioner creates the identity custodying the assets of a new
// vault. The returned condition is the authority used to move them.
type TreasuryProvisioner interface {
	Provision(db weave.KVStore, seed []byte) (weave.Address, weave.Condition, error)
}

// ConditionProvisioner derives the treasury from a condition owned by this
// extension, so that no key can sign on behalf of a treasury.
type ConditionProvisioner struct{}

var _ TreasuryProvisioner = ConditionProvisioner{}

func (ConditionProvisioner) Provision(db weave.KVStore, seed []byte) (weave.Address, weave.Condition, error) {
	cond := TreasuryCondition(seed)
	return cond.Address(), cond, nil
}

// TreasuryCondition returns the condition of the treasury created with
// given seed.
func TreasuryCondition(seed []byte) weave.Condition {
	return weave.NewCondition("vault", "treasury", seed)
}

// NativeAssets moves registration gated native assets.
type NativeAssets interface {
	Register(db weave.KVStore, addr weave.Address, kind string) error
	IsRegistered(db weave.ReadOnlyKVStore, addr weave.Address, kind string) (bool, error)
	Balance(db weave.ReadOnlyKVStore, addr weave.Address, kind string) (uint64, error)
	Transfer(db weave.KVStore, from weave.Condition, kind string, to weave.Address, amount uint64) error
}

// FungibleAssets moves fungible assets identified by an asset id.
type FungibleAssets interface {
	Balance(db weave.ReadOnlyKVStore, assetID string, holder weave.Address) (uint64, error)
	Transfer(db weave.KVStore, from weave.Condition, assetID string, to weave.Address, amount uint64) error
}

// Collectibles moves amounts of collectibles.
type Collectibles interface {
	Balance(db weave.ReadOnlyKVStore, id uint64, holder weave.Address) (uint64, error)
	Transfer(db weave.KVStore, from weave.Condition, id uint64, to weave.Address, amount uint64) error
}

// DigitalObjects passes single owner objects on.
type DigitalObjects interface {
	OwnerOf(db weave.ReadOnlyKVStore, id uint64) (weave.Address, error)
	Transfer(db weave.KVStore, from weave.Condition, id uint64, to weave.Address) error
}

// Collaborators bundles the extensions a vault relies on.
type Collaborators struct {
	Treasury     TreasuryProvisioner
	Native       NativeAssets
	Fungible     FungibleAssets
	Collectibles Collectibles
	Objects      DigitalObjects
}
