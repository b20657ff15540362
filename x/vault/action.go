package vault

import (
	"github.com/iov-one/multivault"
	"github.com/iov-one/multivault/errors"
)

// ActionKind names the type of action carried by a proposal.
type ActionKind string

const (
	AddParticipantsKind     ActionKind = "add_participants"
	RemoveParticipantsKind  ActionKind = "remove_participants"
	WithdrawNativeKind      ActionKind = "withdraw_native"
	WithdrawFungibleKind    ActionKind = "withdraw_fungible"
	WithdrawCollectibleKind ActionKind = "withdraw_collectible"
	WithdrawObjectKind      ActionKind = "withdraw_object"
)

// Action is the payload of a proposal. The set of implementations is
// closed, each proposal carries exactly one of them.
type Action interface {
	Kind() ActionKind
	Validate() error
	isAction()
}

var (
	_ Action = AddParticipantsAction{}
	_ Action = RemoveParticipantsAction{}
	_ Action = WithdrawNativeAction{}
	_ Action = WithdrawFungibleAction{}
	_ Action = WithdrawCollectibleAction{}
	_ Action = WithdrawObjectAction{}
)

// AddParticipantsAction activates or appends the listed addresses.
type AddParticipantsAction struct {
	Participants []weave.Address `json:"participants"`
}

func (AddParticipantsAction) Kind() ActionKind { return AddParticipantsKind }
func (AddParticipantsAction) isAction()        {}

func (a AddParticipantsAction) Validate() error {
	return validateAddresses(a.Participants)
}

// RemoveParticipantsAction deactivates the listed addresses.
type RemoveParticipantsAction struct {
	Participants []weave.Address `json:"participants"`
}

func (RemoveParticipantsAction) Kind() ActionKind { return RemoveParticipantsKind }
func (RemoveParticipantsAction) isAction()        {}

func (a RemoveParticipantsAction) Validate() error {
	return validateAddresses(a.Participants)
}

func validateAddresses(addrs []weave.Address) error {
	for i, a := range addrs {
		if err := a.Validate(); err != nil {
			return errors.Wrapf(err, "participant %d", i)
		}
		for _, b := range addrs[:i] {
			if a.Equals(b) {
				return errors.Wrapf(ErrDuplicateParticipants, "%s", a)
			}
		}
	}
	return nil
}

// NativeTransfer moves a native asset kind out of the treasury.
type NativeTransfer struct {
	AssetKind string        `json:"asset_kind"`
	Amount    uint64        `json:"amount"`
	Recipient weave.Address `json:"recipient"`
}

func (t NativeTransfer) empty() bool {
	return t.AssetKind == "" && t.Amount == 0 && len(t.Recipient) == 0
}

func (t NativeTransfer) Validate() error {
	var err error
	err = errors.Append(err, validateAssetKind(t.AssetKind))
	err = errors.Append(err, validateTransfer(t.Amount, t.Recipient))
	return err
}

// WithdrawNativeAction lists the native transfers of a proposal that
// were not executed yet. The amount and recipient that are executed are
// always taken from the pending transfer ledger.
type WithdrawNativeAction struct {
	Transfers []NativeTransfer `json:"transfers"`
}

func (WithdrawNativeAction) Kind() ActionKind { return WithdrawNativeKind }
func (WithdrawNativeAction) isAction()        {}

func (a WithdrawNativeAction) Validate() error {
	for i, t := range a.Transfers {
		if err := t.Validate(); err != nil {
			return errors.Wrapf(err, "transfer %d", i)
		}
	}
	return nil
}

// FungibleTransfer moves an amount of a fungible asset out of the treasury.
type FungibleTransfer struct {
	AssetID   string        `json:"asset_id"`
	Amount    uint64        `json:"amount"`
	Recipient weave.Address `json:"recipient"`
}

func (t FungibleTransfer) Validate() error {
	var err error
	if t.AssetID == "" {
		err = errors.Append(err, errors.Wrap(errors.ErrEmpty, "asset id"))
	}
	err = errors.Append(err, validateTransfer(t.Amount, t.Recipient))
	return err
}

type WithdrawFungibleAction struct {
	Transfers []FungibleTransfer `json:"transfers"`
}

func (WithdrawFungibleAction) Kind() ActionKind { return WithdrawFungibleKind }
func (WithdrawFungibleAction) isAction()        {}

func (a WithdrawFungibleAction) Validate() error {
	for i, t := range a.Transfers {
		if err := t.Validate(); err != nil {
			return errors.Wrapf(err, "transfer %d", i)
		}
	}
	return nil
}

// CollectibleTransfer moves an amount of a collectible out of the treasury.
type CollectibleTransfer struct {
	CollectibleID uint64        `json:"collectible_id"`
	Amount        uint64        `json:"amount"`
	Recipient     weave.Address `json:"recipient"`
}

func (t CollectibleTransfer) Validate() error {
	var err error
	if t.CollectibleID == 0 {
		err = errors.Append(err, errors.Wrap(errors.ErrEmpty, "collectible id"))
	}
	err = errors.Append(err, validateTransfer(t.Amount, t.Recipient))
	return err
}

type WithdrawCollectibleAction struct {
	Transfers []CollectibleTransfer `json:"transfers"`
}

func (WithdrawCollectibleAction) Kind() ActionKind { return WithdrawCollectibleKind }
func (WithdrawCollectibleAction) isAction()        {}

func (a WithdrawCollectibleAction) Validate() error {
	for i, t := range a.Transfers {
		if err := t.Validate(); err != nil {
			return errors.Wrapf(err, "transfer %d", i)
		}
	}
	return nil
}

// ObjectTransfer passes a digital object owned by the treasury on.
type ObjectTransfer struct {
	ObjectID  uint64        `json:"object_id"`
	Recipient weave.Address `json:"recipient"`
}

func (t ObjectTransfer) Validate() error {
	var err error
	if t.ObjectID == 0 {
		err = errors.Append(err, errors.Wrap(errors.ErrEmpty, "object id"))
	}
	err = errors.Append(err, errors.Wrap(t.Recipient.Validate(), "recipient"))
	return err
}

type WithdrawObjectAction struct {
	Transfers []ObjectTransfer `json:"transfers"`
}

func (WithdrawObjectAction) Kind() ActionKind { return WithdrawObjectKind }
func (WithdrawObjectAction) isAction()        {}

func (a WithdrawObjectAction) Validate() error {
	for i, t := range a.Transfers {
		if err := t.Validate(); err != nil {
			return errors.Wrapf(err, "transfer %d", i)
		}
	}
	return nil
}

func validateTransfer(amount uint64, recipient weave.Address) error {
	var err error
	if amount == 0 {
		err = errors.Append(err, errors.Wrap(errors.ErrAmount, "non-positive amount"))
	}
	err = errors.Append(err, errors.Wrap(recipient.Validate(), "recipient"))
	return err
}
