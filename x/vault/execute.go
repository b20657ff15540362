package vault

import (
	"github.com/iov-one/multivault"
	"github.com/iov-one/multivault/errors"
)

// resolved loads a proposal that the caller may execute now. The decision
// is recomputed from the votes on every call.
func (c *Controller) resolved(db weave.ReadOnlyKVStore, caller weave.Condition, vaultID, proposalID uint64, kinds ...ActionKind) (*Vault, *Proposal, error) {
	v, err := c.participantVault(db, caller, vaultID)
	if err != nil {
		return nil, nil, err
	}
	p, err := c.Proposal(db, vaultID, proposalID)
	if err != nil {
		return nil, nil, err
	}
	switch {
	case !p.Posted:
		return nil, nil, errors.Wrapf(ErrProposalNotPosted, "vault %d proposal %d", vaultID, proposalID)
	case p.Executed:
		return nil, nil, errors.Wrapf(ErrProposalAlreadyExecuted, "vault %d proposal %d", vaultID, proposalID)
	case p.Cancelled(v):
		return nil, nil, errors.Wrapf(ErrProposalCancelled, "%d of %d cancellations", p.Cancellations, v.CancellationThreshold)
	case p.Approvals < v.ApprovalThreshold:
		return nil, nil, errors.Wrapf(ErrNotEnoughApprovals, "%d of %d approvals", p.Approvals, v.ApprovalThreshold)
	}
	for _, k := range kinds {
		if p.Action.Kind() == k {
			return v, p, nil
		}
	}
	return nil, nil, errors.Wrapf(ErrWrongActionKind, "proposal carries %s", p.Action.Kind())
}

func (c *Controller) markExecuted(ctx weave.Context, db weave.KVStore, p *Proposal) error {
	p.Executed = true
	if _, err := c.proposals.Put(db, proposalKey(p.VaultID, p.ID), p); err != nil {
		return errors.Wrap(err, "save proposal")
	}
	weave.GetLogger(ctx).Info("proposal executed", "vault", p.VaultID, "proposal", p.ID, "kind", p.Action.Kind())
	weave.EmitEvent(ctx, weave.NewEvent("ProposalExecuted",
		"vault_id", p.VaultID,
		"proposal_id", p.ID,
		"kind", p.Action.Kind()))
	return nil
}

// ExecuteMembershipChange applies an approved participant addition or
// removal. The change is rejected as a whole if it could leave fewer
// active participants than a threshold requires.
func (c *Controller) ExecuteMembershipChange(ctx weave.Context, db weave.KVStore, caller weave.Condition, vaultID, proposalID uint64) error {
	v, p, err := c.resolved(db, caller, vaultID, proposalID, AddParticipantsKind, RemoveParticipantsKind)
	if err != nil {
		return err
	}
	var add, remove []weave.Address
	switch a := p.Action.(type) {
	case AddParticipantsAction:
		add = a.Participants
	case RemoveParticipantsAction:
		remove = a.Participants
	}
	if len(add) == 0 && len(remove) == 0 {
		return errors.Wrapf(ErrNoPendingParticipantChanges, "vault %d proposal %d", vaultID, proposalID)
	}
	active := v.ActiveCount()
	if active+uint64(len(add)) < uint64(len(remove)) {
		return errors.Wrapf(ErrParticipantsBelowThreshold, "removing %d of %d participants", len(remove), active)
	}
	projected := active + uint64(len(add)) - uint64(len(remove))
	if projected < v.ApprovalThreshold || projected < v.CancellationThreshold {
		return errors.Wrapf(ErrParticipantsBelowThreshold, "%d participants left, approval threshold %d, cancellation threshold %d",
			projected, v.ApprovalThreshold, v.CancellationThreshold)
	}

	for _, a := range remove {
		v.deactivate(a)
	}
	for _, a := range add {
		v.activate(a)
	}
	if _, err := c.vaults.Put(db, vaultKey(vaultID), v); err != nil {
		return errors.Wrap(err, "save vault")
	}
	for _, a := range remove {
		weave.EmitEvent(ctx, weave.NewEvent("ParticipantRemoved", "vault_id", vaultID, "participant", a))
	}
	for _, a := range add {
		weave.EmitEvent(ctx, weave.NewEvent("ParticipantAdded", "vault_id", vaultID, "participant", a))
	}
	return c.markExecuted(ctx, db, p)
}

// ExecuteNativeWithdrawal transfers the native asset declared in the
// ledger for the proposal out of the treasury. The proposal is executed
// once no native transfer remains.
func (c *Controller) ExecuteNativeWithdrawal(ctx weave.Context, db weave.KVStore, caller weave.Condition, vaultID, proposalID uint64, kind string) error {
	_, p, err := c.resolved(db, caller, vaultID, proposalID, WithdrawNativeKind)
	if err != nil {
		return err
	}
	pending, err := c.ledger.Lookup(db, kind, vaultID, proposalID)
	if err != nil {
		return err
	}
	t, err := c.Treasury(db, vaultID)
	if err != nil {
		return err
	}
	balance, err := c.collab.Native.Balance(db, t.Address, kind)
	if err != nil {
		return err
	}
	if balance < pending.Amount {
		return errors.Wrapf(ErrInsufficientFunds, "treasury holds %d %s, need %d", balance, kind, pending.Amount)
	}

	if err := c.collab.Native.Transfer(db, t.Authority, kind, pending.Recipient, pending.Amount); err != nil {
		return errors.Wrap(err, "transfer")
	}
	if err := c.ledger.Commit(db, kind, vaultID, proposalID); err != nil {
		return err
	}
	action := p.Action.(WithdrawNativeAction)
	left := action.Transfers[:0]
	for _, tr := range action.Transfers {
		if tr.AssetKind != kind {
			left = append(left, tr)
		}
	}
	action.Transfers = left
	p.Action = action
	weave.EmitEvent(ctx, weave.NewEvent("NativeWithdrawn",
		"vault_id", vaultID,
		"proposal_id", proposalID,
		"asset_kind", kind,
		"recipient", pending.Recipient,
		"amount", pending.Amount))

	if len(action.Transfers) == 0 {
		return c.markExecuted(ctx, db, p)
	}
	if _, err := c.proposals.Put(db, proposalKey(vaultID, proposalID), p); err != nil {
		return errors.Wrap(err, "save proposal")
	}
	return nil
}

// ExecuteFungibleWithdrawal transfers all fungible assets listed by the
// proposal out of the treasury.
func (c *Controller) ExecuteFungibleWithdrawal(ctx weave.Context, db weave.KVStore, caller weave.Condition, vaultID, proposalID uint64) error {
	_, p, err := c.resolved(db, caller, vaultID, proposalID, WithdrawFungibleKind)
	if err != nil {
		return err
	}
	t, err := c.Treasury(db, vaultID)
	if err != nil {
		return err
	}
	action := p.Action.(WithdrawFungibleAction)
	if err := c.coverFungible(db, t.Address, action.Transfers); err != nil {
		return err
	}
	for i, tr := range action.Transfers {
		if err := c.collab.Fungible.Transfer(db, t.Authority, tr.AssetID, tr.Recipient, tr.Amount); err != nil {
			return errors.Wrapf(err, "transfer %d", i)
		}
		weave.EmitEvent(ctx, weave.NewEvent("FungibleWithdrawn",
			"vault_id", vaultID,
			"proposal_id", proposalID,
			"asset_id", tr.AssetID,
			"recipient", tr.Recipient,
			"amount", tr.Amount))
	}
	p.Action = WithdrawFungibleAction{}
	return c.markExecuted(ctx, db, p)
}

// ExecuteCollectibleWithdrawal transfers all collectibles listed by the
// proposal out of the treasury.
func (c *Controller) ExecuteCollectibleWithdrawal(ctx weave.Context, db weave.KVStore, caller weave.Condition, vaultID, proposalID uint64) error {
	_, p, err := c.resolved(db, caller, vaultID, proposalID, WithdrawCollectibleKind)
	if err != nil {
		return err
	}
	t, err := c.Treasury(db, vaultID)
	if err != nil {
		return err
	}
	action := p.Action.(WithdrawCollectibleAction)
	if err := c.coverCollectibles(db, t.Address, action.Transfers); err != nil {
		return err
	}
	for i, tr := range action.Transfers {
		if err := c.collab.Collectibles.Transfer(db, t.Authority, tr.CollectibleID, tr.Recipient, tr.Amount); err != nil {
			return errors.Wrapf(err, "transfer %d", i)
		}
		weave.EmitEvent(ctx, weave.NewEvent("CollectibleWithdrawn",
			"vault_id", vaultID,
			"proposal_id", proposalID,
			"collectible_id", tr.CollectibleID,
			"recipient", tr.Recipient,
			"amount", tr.Amount))
	}
	p.Action = WithdrawCollectibleAction{}
	return c.markExecuted(ctx, db, p)
}

// ExecuteObjectWithdrawal passes all digital objects listed by the
// proposal from the treasury to their recipients.
func (c *Controller) ExecuteObjectWithdrawal(ctx weave.Context, db weave.KVStore, caller weave.Condition, vaultID, proposalID uint64) error {
	_, p, err := c.resolved(db, caller, vaultID, proposalID, WithdrawObjectKind)
	if err != nil {
		return err
	}
	t, err := c.Treasury(db, vaultID)
	if err != nil {
		return err
	}
	action := p.Action.(WithdrawObjectAction)
	if err := c.coverObjects(db, t.Address, action.Transfers); err != nil {
		return err
	}
	for i, tr := range action.Transfers {
		if err := c.collab.Objects.Transfer(db, t.Authority, tr.ObjectID, tr.Recipient); err != nil {
			return errors.Wrapf(err, "transfer %d", i)
		}
		weave.EmitEvent(ctx, weave.NewEvent("ObjectWithdrawn",
			"vault_id", vaultID,
			"proposal_id", proposalID,
			"object_id", tr.ObjectID,
			"recipient", tr.Recipient))
	}
	p.Action = WithdrawObjectAction{}
	return c.markExecuted(ctx, db, p)
}

// coverFungible fails unless the treasury holds every listed amount. Amounts
// of the same asset are summed, so nothing moves when any item is short.
func (c *Controller) coverFungible(db weave.ReadOnlyKVStore, treasury weave.Address, transfers []FungibleTransfer) error {
	need := make(map[string]uint64)
	var order []string
	for _, tr := range transfers {
		if _, ok := need[tr.AssetID]; !ok {
			order = append(order, tr.AssetID)
		}
		sum := need[tr.AssetID] + tr.Amount
		if sum < tr.Amount {
			return errors.Wrapf(errors.ErrOverflow, "asset %s", tr.AssetID)
		}
		need[tr.AssetID] = sum
	}
	for _, id := range order {
		have, err := c.collab.Fungible.Balance(db, id, treasury)
		if err != nil {
			return errors.Wrapf(err, "asset %s", id)
		}
		if have < need[id] {
			return errors.Wrapf(ErrInsufficientFunds, "treasury holds %d %s, need %d", have, id, need[id])
		}
	}
	return nil
}

// coverCollectibles is coverFungible for collectible holdings.
func (c *Controller) coverCollectibles(db weave.ReadOnlyKVStore, treasury weave.Address, transfers []CollectibleTransfer) error {
	need := make(map[uint64]uint64)
	var order []uint64
	for _, tr := range transfers {
		if _, ok := need[tr.CollectibleID]; !ok {
			order = append(order, tr.CollectibleID)
		}
		sum := need[tr.CollectibleID] + tr.Amount
		if sum < tr.Amount {
			return errors.Wrapf(errors.ErrOverflow, "collectible %d", tr.CollectibleID)
		}
		need[tr.CollectibleID] = sum
	}
	for _, id := range order {
		have, err := c.collab.Collectibles.Balance(db, id, treasury)
		if err != nil {
			return errors.Wrapf(err, "collectible %d", id)
		}
		if have < need[id] {
			return errors.Wrapf(ErrInsufficientFunds, "treasury holds %d of collectible %d, need %d", have, id, need[id])
		}
	}
	return nil
}

// coverObjects fails unless the treasury owns every listed object, each
// listed once.
func (c *Controller) coverObjects(db weave.ReadOnlyKVStore, treasury weave.Address, transfers []ObjectTransfer) error {
	seen := make(map[uint64]struct{}, len(transfers))
	for _, tr := range transfers {
		if _, ok := seen[tr.ObjectID]; ok {
			return errors.Wrapf(ErrInsufficientFunds, "object %d listed twice", tr.ObjectID)
		}
		seen[tr.ObjectID] = struct{}{}
		owner, err := c.collab.Objects.OwnerOf(db, tr.ObjectID)
		if err != nil {
			return errors.Wrapf(err, "object %d", tr.ObjectID)
		}
		if !owner.Equals(treasury) {
			return errors.Wrapf(ErrInsufficientFunds, "treasury does not own object %d", tr.ObjectID)
		}
	}
	return nil
}
