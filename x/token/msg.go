package token

import (
	"github.com/iov-one/multivault"
	"github.com/iov-one/multivault/errors"
)

var _ weave.Msg = (*TransferMsg)(nil)

// TransferMsg moves a fungible asset from the signer to the recipient.
type TransferMsg struct {
	AssetID   string        `json:"asset_id"`
	Amount    uint64        `json:"amount"`
	Recipient weave.Address `json:"recipient"`
}

// Path returns the routing path for this message
func (TransferMsg) Path() string {
	return "token/transfer"
}

func (m *TransferMsg) Validate() error {
	var err error
	err = errors.Append(err, ValidateAssetID(m.AssetID))
	if m.Amount == 0 {
		err = errors.Append(err, errors.Wrap(errors.ErrAmount, "non-positive amount"))
	}
	err = errors.Append(err, errors.Wrap(m.Recipient.Validate(), "recipient"))
	return err
}

// Msgs returns all messages processed by this extension.
func Msgs() []weave.Msg {
	return []weave.Msg{&TransferMsg{}}
}
