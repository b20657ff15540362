package vault

import (
	"github.com/iov-one/multivault"
	"github.com/iov-one/multivault/errors"
	"github.com/iov-one/multivault/gconf"
)

// configPkg is the key the configuration is stored under.
const configPkg = "vault"

// Configuration is the process wide setup of the vault extension.
type Configuration struct {
	// Admin is the only address allowed to change the configuration. It
	// receives the vault creation fees.
	Admin weave.Address `json:"admin"`
	// CreationFee is charged for every vault created. Zero disables it.
	CreationFee  uint64 `json:"creation_fee"`
	FeeAssetKind string `json:"fee_asset_kind"`
}

var _ gconf.Configuration = (*Configuration)(nil)

func (c *Configuration) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(c)
}

func (c *Configuration) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, c)
}

func (c *Configuration) Validate() error {
	if err := c.Admin.Validate(); err != nil {
		return errors.Wrap(err, "admin")
	}
	if c.CreationFee != 0 {
		if err := validateAssetKind(c.FeeAssetKind); err != nil {
			return errors.Wrap(err, "fee asset kind")
		}
	}
	return nil
}

// loadConfig returns the stored configuration. Without one no fee is
// charged and no admin exists.
func loadConfig(db weave.ReadOnlyKVStore) (*Configuration, error) {
	var conf Configuration
	switch err := gconf.Load(db, configPkg, &conf); {
	case err == nil:
		return &conf, nil
	case errors.ErrNotFound.Is(err):
		return &Configuration{}, nil
	default:
		return nil, errors.Wrap(err, "load configuration")
	}
}

// requireAdmin loads the configuration and ensures the caller is its
// admin.
func requireAdmin(db weave.ReadOnlyKVStore, caller weave.Condition) (*Configuration, error) {
	conf, err := loadConfig(db)
	if err != nil {
		return nil, err
	}
	if len(conf.Admin) == 0 || !conf.Admin.Equals(caller.Address()) {
		return nil, errors.Wrapf(ErrNotAdmin, "%s", caller.Address())
	}
	return conf, nil
}

// SetCreationFee changes the fee charged for creating a vault.
func (c *Controller) SetCreationFee(ctx weave.Context, db weave.KVStore, caller weave.Condition, fee uint64) error {
	conf, err := requireAdmin(db, caller)
	if err != nil {
		return err
	}
	before := conf.CreationFee
	conf.CreationFee = fee
	if err := gconf.Save(db, configPkg, conf); err != nil {
		return err
	}
	weave.EmitEvent(ctx, weave.NewEvent("CreationFeeChanged", "before", before, "after", fee))
	return nil
}

// TransferAdmin hands the configuration over to a new admin.
func (c *Controller) TransferAdmin(ctx weave.Context, db weave.KVStore, caller weave.Condition, admin weave.Address) error {
	conf, err := requireAdmin(db, caller)
	if err != nil {
		return err
	}
	before := conf.Admin
	conf.Admin = admin
	if err := gconf.Save(db, configPkg, conf); err != nil {
		return err
	}
	weave.EmitEvent(ctx, weave.NewEvent("AdminChanged", "before", before, "after", admin))
	return nil
}

// Config returns the current configuration.
func (c *Controller) Config(db weave.ReadOnlyKVStore) (*Configuration, error) {
	return loadConfig(db)
}
