package object

import (
	"github.com/iov-one/multivault"
	"github.com/iov-one/multivault/errors"
	"github.com/iov-one/multivault/orm"
)

// Controller manages digital objects.
type Controller interface {
	// Create stores a new object and returns its id.
	Create(db weave.KVStore, owner weave.Address, uri string) (uint64, error)
	// OwnerOf returns the address owning the object.
	OwnerOf(db weave.ReadOnlyKVStore, id uint64) (weave.Address, error)
	// Transfer passes the object to the recipient. The address of the
	// condition must own it.
	Transfer(db weave.KVStore, from weave.Condition, id uint64, to weave.Address) error
	// ObjectsOf returns the ids of all objects owned by the address.
	ObjectsOf(db weave.ReadOnlyKVStore, owner weave.Address) ([]uint64, error)
}

// BaseController is the default implementation of the Controller.
type BaseController struct {
	bucket orm.ModelBucket
}

var _ Controller = BaseController{}

func NewController(bucket orm.ModelBucket) BaseController {
	return BaseController{bucket: bucket}
}

func (c BaseController) Create(db weave.KVStore, owner weave.Address, uri string) (uint64, error) {
	key, err := c.bucket.Put(db, nil, &Object{Owner: owner, URI: uri})
	if err != nil {
		return 0, err
	}
	return orm.DecodeSequence(key)
}

func (c BaseController) load(db weave.ReadOnlyKVStore, id uint64) (*Object, error) {
	var o Object
	if err := c.bucket.One(db, orm.EncodeSequence(id), &o); err != nil {
		return nil, errors.Wrapf(err, "object %d", id)
	}
	return &o, nil
}

func (c BaseController) OwnerOf(db weave.ReadOnlyKVStore, id uint64) (weave.Address, error) {
	o, err := c.load(db, id)
	if err != nil {
		return nil, err
	}
	return o.Owner, nil
}

func (c BaseController) Transfer(db weave.KVStore, from weave.Condition, id uint64, to weave.Address) error {
	if err := to.Validate(); err != nil {
		return errors.Wrap(err, "recipient")
	}
	o, err := c.load(db, id)
	if err != nil {
		return err
	}
	if !o.Owner.Equals(from.Address()) {
		return errors.Wrapf(ErrNotOwner, "object %d", id)
	}
	o.Owner = to
	_, err = c.bucket.Put(db, orm.EncodeSequence(id), o)
	return err
}

func (c BaseController) ObjectsOf(db weave.ReadOnlyKVStore, owner weave.Address) ([]uint64, error) {
	keys, err := c.bucket.ByIndex(db, "owner", owner, nil)
	if err != nil {
		return nil, err
	}
	ids := make([]uint64, len(keys))
	for i, k := range keys {
		if ids[i], err = orm.DecodeSequence(k); err != nil {
			return nil, err
		}
	}
	return ids, nil
}
