package collectible

import (
	"github.com/iov-one/multivault"
	"github.com/iov-one/multivault/errors"
	"github.com/iov-one/multivault/orm"
)

const maxNameLength = 64

// Collectible describes a single collectible series.
type Collectible struct {
	Name   string `json:"name"`
	Supply uint64 `json:"supply"`
}

var _ orm.Model = (*Collectible)(nil)

func (c *Collectible) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(c)
}

func (c *Collectible) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, c)
}

func (c *Collectible) Validate() error {
	if len(c.Name) == 0 || len(c.Name) > maxNameLength {
		return errors.Wrapf(errors.ErrModel, "name length %d", len(c.Name))
	}
	return nil
}

// Holding is the amount of a collectible owned by an address.
type Holding struct {
	CollectibleID uint64        `json:"collectible_id"`
	Holder        weave.Address `json:"holder"`
	Amount        uint64        `json:"amount"`
}

var _ orm.Model = (*Holding)(nil)

func (h *Holding) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(h)
}

func (h *Holding) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, h)
}

func (h *Holding) Validate() error {
	var err error
	if h.CollectibleID == 0 {
		err = errors.Append(err, errors.Wrap(ErrUnknownCollectible, "missing id"))
	}
	err = errors.Append(err, errors.Wrap(h.Holder.Validate(), "holder"))
	if h.Amount == 0 {
		err = errors.Append(err, errors.Wrap(errors.ErrAmount, "empty holding"))
	}
	return err
}

func holdingKey(id uint64, holder weave.Address) []byte {
	return append(orm.EncodeSequence(id), holder...)
}

// NewCollectibleBucket returns a bucket storing collectibles under
// sequential ids starting at 1.
func NewCollectibleBucket() orm.ModelBucket {
	return orm.NewModelBucket("collect", &Collectible{},
		orm.WithIDSequence(orm.NewSequence("collect", "id")))
}

// NewHoldingBucket returns a bucket storing collectible balances.
func NewHoldingBucket() orm.ModelBucket {
	return orm.NewModelBucket("collect_h", &Holding{})
}
