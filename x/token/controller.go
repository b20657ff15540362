package token

import (
	"github.com/iov-one/multivault"
	"github.com/iov-one/multivault/errors"
	"github.com/iov-one/multivault/orm"
)

// Controller moves fungible assets between holders.
type Controller interface {
	// Balance returns the amount of the asset held by the address.
	Balance(db weave.ReadOnlyKVStore, assetID string, holder weave.Address) (uint64, error)
	// Transfer moves amount of the asset from the address of the condition
	// to the recipient.
	Transfer(db weave.KVStore, from weave.Condition, assetID string, to weave.Address, amount uint64) error
	// Mint creates new units of the asset owned by the recipient.
	Mint(db weave.KVStore, assetID string, to weave.Address, amount uint64) error
	// Holdings returns all assets owned by the address, ordered by the
	// asset id.
	Holdings(db weave.ReadOnlyKVStore, holder weave.Address) ([]Holding, error)
}

// BaseController is the default implementation of the Controller.
type BaseController struct {
	bucket orm.ModelBucket
}

var _ Controller = BaseController{}

// NewController returns a controller using given bucket to store holdings.
func NewController(bucket orm.ModelBucket) BaseController {
	return BaseController{bucket: bucket}
}

func (c BaseController) Balance(db weave.ReadOnlyKVStore, assetID string, holder weave.Address) (uint64, error) {
	h, err := c.holding(db, assetID, holder)
	if err != nil {
		return 0, err
	}
	return h.Amount, nil
}

// holding returns the stored holding, or an empty one.
func (c BaseController) holding(db weave.ReadOnlyKVStore, assetID string, holder weave.Address) (*Holding, error) {
	if err := ValidateAssetID(assetID); err != nil {
		return nil, err
	}
	if err := holder.Validate(); err != nil {
		return nil, errors.Wrap(err, "holder")
	}
	h := Holding{AssetID: assetID, Holder: holder}
	switch err := c.bucket.One(db, holdingKey(assetID, holder), &h); {
	case err == nil, errors.ErrNotFound.Is(err):
		return &h, nil
	default:
		return nil, errors.Wrap(err, "load holding")
	}
}

// save stores the holding, removing it when nothing is left.
func (c BaseController) save(db weave.KVStore, h *Holding) error {
	key := holdingKey(h.AssetID, h.Holder)
	if h.Amount == 0 {
		err := c.bucket.Delete(db, key)
		if errors.ErrNotFound.Is(err) {
			return nil
		}
		return errors.Wrap(err, "delete holding")
	}
	_, err := c.bucket.Put(db, key, h)
	return errors.Wrap(err, "save holding")
}

func (c BaseController) Transfer(db weave.KVStore, from weave.Condition, assetID string, to weave.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "non-positive transfer")
	}
	src, err := c.holding(db, assetID, from.Address())
	if err != nil {
		return errors.Wrap(err, "source")
	}
	if src.Amount < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "%s: have %d, need %d", assetID, src.Amount, amount)
	}
	dst, err := c.holding(db, assetID, to)
	if err != nil {
		return errors.Wrap(err, "destination")
	}
	if src.Holder.Equals(dst.Holder) {
		return nil
	}
	if dst.Amount+amount < amount {
		return errors.Wrap(errors.ErrOverflow, assetID)
	}
	src.Amount -= amount
	dst.Amount += amount
	if err := c.save(db, src); err != nil {
		return err
	}
	return c.save(db, dst)
}

func (c BaseController) Mint(db weave.KVStore, assetID string, to weave.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "non-positive mint")
	}
	h, err := c.holding(db, assetID, to)
	if err != nil {
		return err
	}
	if h.Amount+amount < amount {
		return errors.Wrap(errors.ErrOverflow, assetID)
	}
	h.Amount += amount
	return c.save(db, h)
}

func (c BaseController) Holdings(db weave.ReadOnlyKVStore, holder weave.Address) ([]Holding, error) {
	var hs []Holding
	if _, err := c.bucket.ByIndex(db, "holder", holder, &hs); err != nil {
		return nil, err
	}
	return hs, nil
}
