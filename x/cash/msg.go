package cash

import (
	"github.com/iov-one/multivault"
	"github.com/iov-one/multivault/errors"
)

const maxMemoSize int = 128

var _ weave.Msg = (*SendMsg)(nil)
var _ weave.Msg = (*RegisterMsg)(nil)

// SendMsg moves assets from the signer wallet to the destination.
type SendMsg struct {
	Kind        string        `json:"kind"`
	Amount      uint64        `json:"amount"`
	Destination weave.Address `json:"destination"`
	Memo        string        `json:"memo,omitempty"`
}

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return "cash/send"
}

// Validate makes sure that this is sensible
func (m *SendMsg) Validate() error {
	var err error
	if m.Amount == 0 {
		err = errors.Append(err, errors.Wrap(errors.ErrAmount, "non-positive amount"))
	}
	err = errors.Append(err, errors.Wrap(ValidateKind(m.Kind), "kind"))
	err = errors.Append(err, errors.Wrap(m.Destination.Validate(), "destination"))
	if len(m.Memo) > maxMemoSize {
		err = errors.Append(err, errors.Wrap(errors.ErrInput, "memo too long"))
	}
	return err
}

// RegisterMsg enables the signer wallet to receive an asset kind.
type RegisterMsg struct {
	Kind string `json:"kind"`
}

// Path returns the routing path for this message
func (RegisterMsg) Path() string {
	return "cash/register"
}

// Validate makes sure that this is sensible
func (m *RegisterMsg) Validate() error {
	return errors.Wrap(ValidateKind(m.Kind), "kind")
}

// Msgs returns all messages processed by this extension.
func Msgs() []weave.Msg {
	return []weave.Msg{&SendMsg{}, &RegisterMsg{}}
}
