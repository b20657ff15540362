package object

import (
	"github.com/iov-one/multivault"
	"github.com/iov-one/multivault/errors"
)

var _ weave.Msg = (*CreateMsg)(nil)
var _ weave.Msg = (*TransferMsg)(nil)

// CreateMsg creates an object owned by the signer.
type CreateMsg struct {
	URI string `json:"uri,omitempty"`
}

func (CreateMsg) Path() string {
	return "object/create"
}

func (m *CreateMsg) Validate() error {
	if len(m.URI) > maxURILength {
		return errors.Wrap(errors.ErrMsg, "uri too long")
	}
	return nil
}

// TransferMsg passes an object owned by the signer to the recipient.
type TransferMsg struct {
	ObjectID  uint64        `json:"object_id"`
	Recipient weave.Address `json:"recipient"`
}

func (TransferMsg) Path() string {
	return "object/transfer"
}

func (m *TransferMsg) Validate() error {
	var err error
	if m.ObjectID == 0 {
		err = errors.Append(err, errors.Wrap(errors.ErrInput, "missing object id"))
	}
	err = errors.Append(err, errors.Wrap(m.Recipient.Validate(), "recipient"))
	return err
}

// Msgs returns all messages processed by this extension.
func Msgs() []weave.Msg {
	return []weave.Msg{&CreateMsg{}, &TransferMsg{}}
}
