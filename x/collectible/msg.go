package collectible

import (
	"github.com/iov-one/multivault"
	"github.com/iov-one/multivault/errors"
)

var _ weave.Msg = (*CreateMsg)(nil)
var _ weave.Msg = (*TransferMsg)(nil)

// CreateMsg declares a new collectible owned by the signer.
type CreateMsg struct {
	Name   string `json:"name"`
	Supply uint64 `json:"supply"`
}

func (CreateMsg) Path() string {
	return "collectible/create"
}

func (m *CreateMsg) Validate() error {
	var err error
	err = errors.Append(err, (&Collectible{Name: m.Name}).Validate())
	if m.Supply == 0 {
		err = errors.Append(err, errors.Wrap(errors.ErrAmount, "empty supply"))
	}
	return err
}

// TransferMsg moves an amount of a collectible from the signer to the
// recipient.
type TransferMsg struct {
	CollectibleID uint64        `json:"collectible_id"`
	Amount        uint64        `json:"amount"`
	Recipient     weave.Address `json:"recipient"`
}

func (TransferMsg) Path() string {
	return "collectible/transfer"
}

func (m *TransferMsg) Validate() error {
	var err error
	if m.CollectibleID == 0 {
		err = errors.Append(err, errors.Wrap(ErrUnknownCollectible, "missing id"))
	}
	if m.Amount == 0 {
		err = errors.Append(err, errors.Wrap(errors.ErrAmount, "non-positive amount"))
	}
	err = errors.Append(err, errors.Wrap(m.Recipient.Validate(), "recipient"))
	return err
}

// Msgs returns all messages processed by this extension.
func Msgs() []weave.Msg {
	return []weave.Msg{&CreateMsg{}, &TransferMsg{}}
}
