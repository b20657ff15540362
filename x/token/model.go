package token

import (
	"regexp"

	"github.com/iov-one/multivault"
	"github.com/iov-one/multivault/errors"
	"github.com/iov-one/multivault/orm"
)

// BucketName is where we store the holdings
const BucketName = "token"

var isAssetID = regexp.MustCompile(`^[a-zA-Z0-9_.\-]{3,32}$`).MatchString

// ValidateAssetID returns an error if the asset id is not valid.
func ValidateAssetID(id string) error {
	if !isAssetID(id) {
		return errors.Wrapf(ErrInvalidAssetID, "%q", id)
	}
	return nil
}

// Holding is the amount of a single asset owned by an address.
type Holding struct {
	AssetID string        `json:"asset_id"`
	Holder  weave.Address `json:"holder"`
	Amount  uint64        `json:"amount"`
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
	err = errors.Append(err, ValidateAssetID(h.AssetID))
	err = errors.Append(err, errors.Wrap(h.Holder.Validate(), "holder"))
	if h.Amount == 0 {
		err = errors.Append(err, errors.Wrap(errors.ErrAmount, "empty holding"))
	}
	return err
}

// holdingKey is the primary key of a holding. Asset ids never contain a
// slash, so all holdings of an asset share the "<asset>/" prefix.
func holdingKey(assetID string, holder weave.Address) []byte {
	key := make([]byte, 0, len(assetID)+1+len(holder))
	key = append(key, assetID...)
	key = append(key, '/')
	return append(key, holder...)
}

func holderIndexer(m orm.Model) ([]byte, error) {
	h, ok := m.(*Holding)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", m)
	}
	return h.Holder, nil
}

// NewBucket returns a bucket storing holdings, indexed by the holder.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Holding{},
		orm.WithIndex("holder", holderIndexer, false))
}
