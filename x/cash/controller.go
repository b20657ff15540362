package cash

import (
	"github.com/iov-one/multivault"
	"github.com/iov-one/multivault/errors"
	"github.com/iov-one/multivault/orm"
)

// Controller is the functionality needed by cash.Handler and other
// extensions that move native assets.
type Controller interface {
	// Register enables the wallet to receive given kind. Registering an
	// already registered kind is a no-op.
	Register(db weave.KVStore, addr weave.Address, kind string) error
	// IsRegistered returns true if the wallet can receive given kind.
	IsRegistered(db weave.ReadOnlyKVStore, addr weave.Address, kind string) (bool, error)
	// Balance returns the amount of kind held by the wallet.
	Balance(db weave.ReadOnlyKVStore, addr weave.Address, kind string) (uint64, error)
	// Transfer moves amount of kind from the wallet owned by the
	// condition to the destination wallet, that must be registered for
	// the kind.
	Transfer(db weave.KVStore, from weave.Condition, kind string, to weave.Address, amount uint64) error
	// Issue creates new assets in the destination wallet, registering it
	// for the kind if needed.
	Issue(db weave.KVStore, to weave.Address, kind string, amount uint64) error
}

// BaseController is the default implementation of the Controller.
type BaseController struct {
	bucket orm.ModelBucket
}

var _ Controller = BaseController{}

// NewController returns a controller using given bucket to store wallets.
func NewController(bucket orm.ModelBucket) BaseController {
	return BaseController{bucket: bucket}
}

// wallet loads the wallet of given address. A missing wallet is returned
// empty.
func (c BaseController) wallet(db weave.ReadOnlyKVStore, addr weave.Address) (*Wallet, error) {
	if err := addr.Validate(); err != nil {
		return nil, errors.Wrap(err, "address")
	}
	var w Wallet
	switch err := c.bucket.One(db, addr, &w); {
	case err == nil:
		return &w, nil
	case errors.ErrNotFound.Is(err):
		return &Wallet{}, nil
	default:
		return nil, errors.Wrap(err, "load wallet")
	}
}

func (c BaseController) save(db weave.KVStore, addr weave.Address, w *Wallet) error {
	_, err := c.bucket.Put(db, addr, w)
	return errors.Wrap(err, "save wallet")
}

func (c BaseController) Register(db weave.KVStore, addr weave.Address, kind string) error {
	if err := ValidateKind(kind); err != nil {
		return err
	}
	w, err := c.wallet(db, addr)
	if err != nil {
		return err
	}
	if w.Has(kind) {
		return nil
	}
	w.register(kind)
	return c.save(db, addr, w)
}

func (c BaseController) IsRegistered(db weave.ReadOnlyKVStore, addr weave.Address, kind string) (bool, error) {
	w, err := c.wallet(db, addr)
	if err != nil {
		return false, err
	}
	return w.Has(kind), nil
}

func (c BaseController) Balance(db weave.ReadOnlyKVStore, addr weave.Address, kind string) (uint64, error) {
	w, err := c.wallet(db, addr)
	if err != nil {
		return 0, err
	}
	return w.Amount(kind), nil
}

func (c BaseController) Transfer(db weave.KVStore, from weave.Condition, kind string, to weave.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "non-positive transfer")
	}
	src := from.Address()
	sender, err := c.wallet(db, src)
	if err != nil {
		return errors.Wrap(err, "source")
	}
	if err := sender.subtract(kind, amount); err != nil {
		return err
	}
	if src.Equals(to) {
		// The balance covers the amount, nothing moves.
		return nil
	}
	recipient, err := c.wallet(db, to)
	if err != nil {
		return errors.Wrap(err, "destination")
	}
	if err := recipient.add(kind, amount); err != nil {
		return errors.Wrapf(err, "destination %s", to)
	}
	if err := c.save(db, src, sender); err != nil {
		return err
	}
	return c.save(db, to, recipient)
}

func (c BaseController) Issue(db weave.KVStore, to weave.Address, kind string, amount uint64) error {
	if err := ValidateKind(kind); err != nil {
		return err
	}
	w, err := c.wallet(db, to)
	if err != nil {
		return err
	}
	w.register(kind)
	if err := w.add(kind, amount); err != nil {
		return err
	}
	return c.save(db, to, w)
}
