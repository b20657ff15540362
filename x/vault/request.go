package vault

import (
	"github.com/iov-one/multivault"
	"github.com/iov-one/multivault/errors"
)

// ProposalRequest is the wire form of a proposal action. Exactly one of
// the containers must be populated. Lists of transfers can be given either
// as a list of items or as parallel lists of their attributes.
type ProposalRequest struct {
	AddParticipants     []weave.Address    `json:"add_participants,omitempty"`
	RemoveParticipants  []weave.Address    `json:"remove_participants,omitempty"`
	WithdrawNative      NativeTransfer     `json:"withdraw_native"`
	WithdrawFungible    FungibleRequest    `json:"withdraw_fungible"`
	WithdrawCollectible CollectibleRequest `json:"withdraw_collectible"`
	WithdrawObject      ObjectRequest      `json:"withdraw_object"`
}

// FungibleRequest declares fungible asset transfers.
type FungibleRequest struct {
	Transfers  []FungibleTransfer `json:"transfers,omitempty"`
	AssetIDs   []string           `json:"asset_ids,omitempty"`
	Amounts    []uint64           `json:"amounts,omitempty"`
	Recipients []weave.Address    `json:"recipients,omitempty"`
}

func (r FungibleRequest) empty() bool {
	return len(r.Transfers)+len(r.AssetIDs)+len(r.Amounts)+len(r.Recipients) == 0
}

func (r FungibleRequest) transfers() ([]FungibleTransfer, error) {
	n := len(r.AssetIDs)
	if len(r.Amounts) != n || len(r.Recipients) != n {
		return nil, errors.Wrapf(ErrLengthMismatch, "%d asset ids, %d amounts, %d recipients",
			n, len(r.Amounts), len(r.Recipients))
	}
	out := append([]FungibleTransfer(nil), r.Transfers...)
	for i := 0; i < n; i++ {
		out = append(out, FungibleTransfer{AssetID: r.AssetIDs[i], Amount: r.Amounts[i], Recipient: r.Recipients[i]})
	}
	return out, nil
}

// CollectibleRequest declares collectible transfers.
type CollectibleRequest struct {
	Transfers      []CollectibleTransfer `json:"transfers,omitempty"`
	CollectibleIDs []uint64              `json:"collectible_ids,omitempty"`
	Amounts        []uint64              `json:"amounts,omitempty"`
	Recipients     []weave.Address       `json:"recipients,omitempty"`
}

func (r CollectibleRequest) empty() bool {
	return len(r.Transfers)+len(r.CollectibleIDs)+len(r.Amounts)+len(r.Recipients) == 0
}

func (r CollectibleRequest) transfers() ([]CollectibleTransfer, error) {
	n := len(r.CollectibleIDs)
	if len(r.Amounts) != n || len(r.Recipients) != n {
		return nil, errors.Wrapf(ErrLengthMismatch, "%d collectible ids, %d amounts, %d recipients",
			n, len(r.Amounts), len(r.Recipients))
	}
	out := append([]CollectibleTransfer(nil), r.Transfers...)
	for i := 0; i < n; i++ {
		out = append(out, CollectibleTransfer{CollectibleID: r.CollectibleIDs[i], Amount: r.Amounts[i], Recipient: r.Recipients[i]})
	}
	return out, nil
}

// ObjectRequest declares digital object transfers.
type ObjectRequest struct {
	Transfers  []ObjectTransfer `json:"transfers,omitempty"`
	ObjectIDs  []uint64         `json:"object_ids,omitempty"`
	Recipients []weave.Address  `json:"recipients,omitempty"`
}

func (r ObjectRequest) empty() bool {
	return len(r.Transfers)+len(r.ObjectIDs)+len(r.Recipients) == 0
}

func (r ObjectRequest) transfers() ([]ObjectTransfer, error) {
	n := len(r.ObjectIDs)
	if len(r.Recipients) != n {
		return nil, errors.Wrapf(ErrLengthMismatch, "%d object ids, %d recipients", n, len(r.Recipients))
	}
	out := append([]ObjectTransfer(nil), r.Transfers...)
	for i := 0; i < n; i++ {
		out = append(out, ObjectTransfer{ObjectID: r.ObjectIDs[i], Recipient: r.Recipients[i]})
	}
	return out, nil
}

// Action returns the single action described by the request. It fails
// with ErrOneActionPerProposal unless exactly one container is populated.
func (r ProposalRequest) Action() (Action, error) {
	var kinds []ActionKind
	if len(r.AddParticipants) != 0 {
		kinds = append(kinds, AddParticipantsKind)
	}
	if len(r.RemoveParticipants) != 0 {
		kinds = append(kinds, RemoveParticipantsKind)
	}
	if !r.WithdrawNative.empty() {
		kinds = append(kinds, WithdrawNativeKind)
	}
	if !r.WithdrawFungible.empty() {
		kinds = append(kinds, WithdrawFungibleKind)
	}
	if !r.WithdrawCollectible.empty() {
		kinds = append(kinds, WithdrawCollectibleKind)
	}
	if !r.WithdrawObject.empty() {
		kinds = append(kinds, WithdrawObjectKind)
	}
	if len(kinds) != 1 {
		return nil, errors.Wrapf(ErrOneActionPerProposal, "got %v", kinds)
	}

	var (
		action Action
		err    error
	)
	switch kinds[0] {
	case AddParticipantsKind:
		action = AddParticipantsAction{Participants: r.AddParticipants}
	case RemoveParticipantsKind:
		action = RemoveParticipantsAction{Participants: r.RemoveParticipants}
	case WithdrawNativeKind:
		action = WithdrawNativeAction{Transfers: []NativeTransfer{r.WithdrawNative}}
	case WithdrawFungibleKind:
		var ts []FungibleTransfer
		ts, err = r.WithdrawFungible.transfers()
		action = WithdrawFungibleAction{Transfers: ts}
	case WithdrawCollectibleKind:
		var ts []CollectibleTransfer
		ts, err = r.WithdrawCollectible.transfers()
		action = WithdrawCollectibleAction{Transfers: ts}
	case WithdrawObjectKind:
		var ts []ObjectTransfer
		ts, err = r.WithdrawObject.transfers()
		action = WithdrawObjectAction{Transfers: ts}
	}
	if err != nil {
		return nil, err
	}
	if err := action.Validate(); err != nil {
		return nil, errors.Wrap(err, string(action.Kind()))
	}
	return action, nil
}
