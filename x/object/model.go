package object

import (
	"github.com/iov-one/multivault"
	"github.com/iov-one/multivault/errors"
	"github.com/iov-one/multivault/orm"
)

const maxURILength = 256

// Object is a unique digital asset.
type Object struct {
	Owner weave.Address `json:"owner"`
	URI   string        `json:"uri,omitempty"`
}

var _ orm.Model = (*Object)(nil)

func (o *Object) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(o)
}

func (o *Object) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, o)
}

func (o *Object) Validate() error {
	if err := o.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if len(o.URI) > maxURILength {
		return errors.Wrap(errors.ErrModel, "uri too long")
	}
	return nil
}

func ownerIndexer(m orm.Model) ([]byte, error) {
	o, ok := m.(*Object)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", m)
	}
	return o.Owner, nil
}

// NewBucket returns a bucket storing objects under sequential ids, indexed
// by the owner.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket("object", &Object{},
		orm.WithIDSequence(orm.NewSequence("object", "id")),
		orm.WithIndex("owner", ownerIndexer, false))
}
