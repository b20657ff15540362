package collectible

import (
	"github.com/iov-one/multivault"
	"github.com/iov-one/multivault/errors"
	"github.com/iov-one/multivault/orm"
)

// Controller manages collectibles and their balances.
type Controller interface {
	// Create declares a new collectible with the whole supply owned by
	// given address. It returns the id of the collectible.
	Create(db weave.KVStore, name string, owner weave.Address, supply uint64) (uint64, error)
	// Mint increases the supply of an existing collectible.
	Mint(db weave.KVStore, id uint64, to weave.Address, amount uint64) error
	Balance(db weave.ReadOnlyKVStore, id uint64, holder weave.Address) (uint64, error)
	// Transfer moves amount of the collectible owned by the address of
	// the condition to the recipient.
	Transfer(db weave.KVStore, from weave.Condition, id uint64, to weave.Address, amount uint64) error
	// Details returns the collectible description.
	Details(db weave.ReadOnlyKVStore, id uint64) (*Collectible, error)
}

// BaseController is the default implementation of the Controller.
type BaseController struct {
	collectibles orm.ModelBucket
	holdings     orm.ModelBucket
}

var _ Controller = BaseController{}

func NewController() BaseController {
	return BaseController{
		collectibles: NewCollectibleBucket(),
		holdings:     NewHoldingBucket(),
	}
}

func (c BaseController) Details(db weave.ReadOnlyKVStore, id uint64) (*Collectible, error) {
	var col Collectible
	if err := c.collectibles.One(db, orm.EncodeSequence(id), &col); err != nil {
		if errors.ErrNotFound.Is(err) {
			return nil, errors.Wrapf(ErrUnknownCollectible, "id %d", id)
		}
		return nil, err
	}
	return &col, nil
}

func (c BaseController) Create(db weave.KVStore, name string, owner weave.Address, supply uint64) (uint64, error) {
	if supply == 0 {
		return 0, errors.Wrap(errors.ErrAmount, "empty supply")
	}
	if err := owner.Validate(); err != nil {
		return 0, errors.Wrap(err, "owner")
	}
	key, err := c.collectibles.Put(db, nil, &Collectible{Name: name, Supply: supply})
	if err != nil {
		return 0, err
	}
	id, err := orm.DecodeSequence(key)
	if err != nil {
		return 0, err
	}
	if err := c.save(db, &Holding{CollectibleID: id, Holder: owner, Amount: supply}); err != nil {
		return 0, err
	}
	return id, nil
}

func (c BaseController) Mint(db weave.KVStore, id uint64, to weave.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "non-positive mint")
	}
	col, err := c.Details(db, id)
	if err != nil {
		return err
	}
	h, err := c.holding(db, id, to)
	if err != nil {
		return err
	}
	if col.Supply+amount < amount {
		return errors.Wrap(errors.ErrOverflow, "supply")
	}
	col.Supply += amount
	h.Amount += amount
	if _, err := c.collectibles.Put(db, orm.EncodeSequence(id), col); err != nil {
		return err
	}
	return c.save(db, h)
}

func (c BaseController) Balance(db weave.ReadOnlyKVStore, id uint64, holder weave.Address) (uint64, error) {
	h, err := c.holding(db, id, holder)
	if err != nil {
		return 0, err
	}
	return h.Amount, nil
}

func (c BaseController) holding(db weave.ReadOnlyKVStore, id uint64, holder weave.Address) (*Holding, error) {
	if err := holder.Validate(); err != nil {
		return nil, errors.Wrap(err, "holder")
	}
	h := Holding{CollectibleID: id, Holder: holder}
	switch err := c.holdings.One(db, holdingKey(id, holder), &h); {
	case err == nil, errors.ErrNotFound.Is(err):
		return &h, nil
	default:
		return nil, errors.Wrap(err, "load holding")
	}
}

func (c BaseController) save(db weave.KVStore, h *Holding) error {
	key := holdingKey(h.CollectibleID, h.Holder)
	if h.Amount == 0 {
		err := c.holdings.Delete(db, key)
		if errors.ErrNotFound.Is(err) {
			return nil
		}
		return err
	}
	_, err := c.holdings.Put(db, key, h)
	return err
}

func (c BaseController) Transfer(db weave.KVStore, from weave.Condition, id uint64, to weave.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "non-positive transfer")
	}
	if _, err := c.Details(db, id); err != nil {
		return err
	}
	src, err := c.holding(db, id, from.Address())
	if err != nil {
		return errors.Wrap(err, "source")
	}
	if src.Amount < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "collectible %d: have %d, need %d", id, src.Amount, amount)
	}
	dst, err := c.holding(db, id, to)
	if err != nil {
		return errors.Wrap(err, "destination")
	}
	if src.Holder.Equals(dst.Holder) {
		return nil
	}
	// The total supply bounds every balance, so this cannot overflow.
	src.Amount -= amount
	dst.Amount += amount
	if err := c.save(db, src); err != nil {
		return err
	}
	return c.save(db, dst)
}
