package vault

import (
	"github.com/iov-one/multivault"
	"github.com/iov-one/multivault/errors"
	"github.com/iov-one/multivault/orm"
)

// AuthToken proves that a proposal was posted.
type AuthToken struct {
	VaultID    uint64 `json:"vault_id"`
	ProposalID uint64 `json:"proposal_id"`
}

// Bytes returns the binary form of the token, the vault id followed by the
// proposal id.
func (t AuthToken) Bytes() []byte {
	return proposalKey(t.VaultID, t.ProposalID)
}

// Controller implements all vault operations. Every operation validates
// its preconditions before writing to the store.
type Controller struct {
	vaults     orm.ModelBucket
	proposals  orm.ModelBucket
	treasuries orm.ModelBucket
	ledger     Ledger
	collab     Collaborators
}

// NewController returns a controller using the default buckets. A nil
// treasury provisioner defaults to ConditionProvisioner.
func NewController(collab Collaborators) *Controller {
	if collab.Treasury == nil {
		collab.Treasury = ConditionProvisioner{}
	}
	return &Controller{
		vaults:     NewVaultBucket(),
		proposals:  NewProposalBucket(),
		treasuries: NewTreasuryBucket(),
		ledger:     NewLedger(),
		collab:     collab,
	}
}

// Vault returns the vault with given id.
func (c *Controller) Vault(db weave.ReadOnlyKVStore, id uint64) (*Vault, error) {
	var v Vault
	if err := c.vaults.One(db, vaultKey(id), &v); err != nil {
		if errors.ErrNotFound.Is(err) {
			return nil, errors.Wrapf(ErrVaultNotFound, "id %d", id)
		}
		return nil, err
	}
	return &v, nil
}

// Proposal returns the proposal with given id.
func (c *Controller) Proposal(db weave.ReadOnlyKVStore, vaultID, proposalID uint64) (*Proposal, error) {
	var p Proposal
	if err := c.proposals.One(db, proposalKey(vaultID, proposalID), &p); err != nil {
		if errors.ErrNotFound.Is(err) {
			return nil, errors.Wrapf(ErrProposalNotFound, "vault %d proposal %d", vaultID, proposalID)
		}
		return nil, err
	}
	return &p, nil
}

// Treasury returns the treasury of the vault.
func (c *Controller) Treasury(db weave.ReadOnlyKVStore, vaultID uint64) (*Treasury, error) {
	var t Treasury
	if err := c.treasuries.One(db, vaultKey(vaultID), &t); err != nil {
		if errors.ErrNotFound.Is(err) {
			return nil, errors.Wrapf(ErrVaultNotFound, "no treasury for vault %d", vaultID)
		}
		return nil, err
	}
	return &t, nil
}

// CreateVault registers a new vault. The requester becomes its first
// participant and pays the creation fee, if any.
func (c *Controller) CreateVault(
	ctx weave.Context,
	db weave.KVStore,
	requester weave.Condition,
	name string,
	participants []weave.Address,
	approvalThreshold, cancellationThreshold uint64,
) (uint64, error) {
	if len(name) > MaxNameLength {
		return 0, errors.Wrapf(ErrNameTooLong, "%d bytes", len(name))
	}
	if len(participants) == 0 {
		return 0, errors.Wrap(ErrParticipantsEmpty, "no participant besides the requester")
	}
	members := append([]weave.Address{requester.Address()}, participants...)
	if err := validateAddresses(members); err != nil {
		return 0, err
	}
	n := uint64(len(members))
	if approvalThreshold == 0 || approvalThreshold > n {
		return 0, errors.Wrapf(ErrInvalidThreshold, "approval threshold %d for %d participants", approvalThreshold, n)
	}
	if cancellationThreshold == 0 || cancellationThreshold > n {
		return 0, errors.Wrapf(ErrInvalidThreshold, "cancellation threshold %d for %d participants", cancellationThreshold, n)
	}
	conf, err := loadConfig(db)
	if err != nil {
		return 0, err
	}

	if conf.CreationFee > 0 {
		if err := c.collab.Native.Transfer(db, requester, conf.FeeAssetKind, conf.Admin, conf.CreationFee); err != nil {
			return 0, errors.Wrap(err, "creation fee")
		}
	}

	id, err := vaultSequence.NextInt(db)
	if err != nil {
		return 0, err
	}
	v := Vault{
		ID:                    id,
		Name:                  name,
		ApprovalThreshold:     approvalThreshold,
		CancellationThreshold: cancellationThreshold,
	}
	for _, m := range members {
		v.activate(m)
	}
	if _, err := c.vaults.Put(db, vaultKey(id), &v); err != nil {
		return 0, errors.Wrap(err, "save vault")
	}

	addr, authority, err := c.collab.Treasury.Provision(db, vaultKey(id))
	if err != nil {
		return 0, errors.Wrap(err, "provision treasury")
	}
	if _, err := c.treasuries.Put(db, vaultKey(id), &Treasury{Address: addr, Authority: authority}); err != nil {
		return 0, errors.Wrap(err, "save treasury")
	}

	weave.GetLogger(ctx).Info("vault created", "vault", id, "participants", n)
	weave.EmitEvent(ctx, weave.NewEvent("VaultCreated",
		"vault_id", id,
		"name", name,
		"creator", requester.Address(),
		"treasury", addr))
	return id, nil
}

// participantVault loads the vault and ensures the caller is one of its
// active participants.
func (c *Controller) participantVault(db weave.ReadOnlyKVStore, caller weave.Condition, vaultID uint64) (*Vault, error) {
	v, err := c.Vault(db, vaultID)
	if err != nil {
		return nil, err
	}
	if !v.IsActive(caller.Address()) {
		return nil, errors.Wrapf(ErrSenderNotAuthorized, "%s is not a participant of vault %d", caller.Address(), vaultID)
	}
	return v, nil
}

// CreateProposal appends a new draft proposal to the vault. A native
// withdrawal is declared in the pending transfer ledger as well.
func (c *Controller) CreateProposal(ctx weave.Context, db weave.KVStore, creator weave.Condition, vaultID uint64, req ProposalRequest) (uint64, error) {
	v, err := c.participantVault(db, creator, vaultID)
	if err != nil {
		return 0, err
	}
	action, err := req.Action()
	if err != nil {
		return 0, err
	}

	p := Proposal{
		VaultID: vaultID,
		ID:      v.ProposalCount,
		Creator: creator.Address(),
		Action:  action,
	}
	v.ProposalCount++
	if _, err := c.proposals.Put(db, proposalKey(vaultID, p.ID), &p); err != nil {
		return 0, errors.Wrap(err, "save proposal")
	}
	if _, err := c.vaults.Put(db, vaultKey(vaultID), v); err != nil {
		return 0, errors.Wrap(err, "save vault")
	}
	if action.Kind() == WithdrawNativeKind {
		if err := c.declare(ctx, db, vaultID, p.ID, req.WithdrawNative); err != nil {
			return 0, err
		}
	}

	weave.GetLogger(ctx).Debug("proposal created", "vault", vaultID, "proposal", p.ID, "kind", action.Kind())
	weave.EmitEvent(ctx, weave.NewEvent("ProposalCreated",
		"vault_id", vaultID,
		"proposal_id", p.ID,
		"creator", p.Creator,
		"kind", action.Kind()))
	return p.ID, nil
}

// PostProposal opens the proposal for voting. Only its creator can post
// it, exactly once.
func (c *Controller) PostProposal(ctx weave.Context, db weave.KVStore, caller weave.Condition, vaultID, proposalID uint64) (*AuthToken, error) {
	p, err := c.Proposal(db, vaultID, proposalID)
	if err != nil {
		return nil, err
	}
	if !p.Creator.Equals(caller.Address()) {
		return nil, errors.Wrapf(ErrNotProposalCreator, "%s", caller.Address())
	}
	if p.Posted {
		return nil, errors.Wrapf(ErrProposalAlreadyPosted, "vault %d proposal %d", vaultID, proposalID)
	}
	p.Posted = true
	if _, err := c.proposals.Put(db, proposalKey(vaultID, proposalID), p); err != nil {
		return nil, errors.Wrap(err, "save proposal")
	}
	weave.EmitEvent(ctx, weave.NewEvent("ProposalPosted", "vault_id", vaultID, "proposal_id", proposalID))
	return &AuthToken{VaultID: vaultID, ProposalID: proposalID}, nil
}

// CastVote records the vote of an active participant on a posted
// proposal. Voting in the opposite direction replaces the previous vote.
func (c *Controller) CastVote(ctx weave.Context, db weave.KVStore, voter weave.Condition, vaultID, proposalID uint64, approve bool) error {
	v, err := c.participantVault(db, voter, vaultID)
	if err != nil {
		return err
	}
	p, err := c.Proposal(db, vaultID, proposalID)
	if err != nil {
		return err
	}
	switch {
	case !p.Posted:
		return errors.Wrapf(ErrProposalNotPosted, "vault %d proposal %d", vaultID, proposalID)
	case p.Executed:
		return errors.Wrapf(ErrProposalAlreadyExecuted, "vault %d proposal %d", vaultID, proposalID)
	case p.Cancelled(v):
		return errors.Wrapf(ErrProposalCancelled, "vault %d proposal %d", vaultID, proposalID)
	}
	if err := p.castVote(voter.Address(), approve); err != nil {
		return err
	}
	if _, err := c.proposals.Put(db, proposalKey(vaultID, proposalID), p); err != nil {
		return errors.Wrap(err, "save proposal")
	}
	weave.EmitEvent(ctx, weave.NewEvent("VoteCast",
		"vault_id", vaultID,
		"proposal_id", proposalID,
		"voter", voter.Address(),
		"approve", approve))
	return nil
}

// EnableAsset allows the vault treasury to hold a native asset kind. It
// is a no-op for an already enabled kind.
func (c *Controller) EnableAsset(ctx weave.Context, db weave.KVStore, caller weave.Condition, vaultID uint64, kind string) error {
	if _, err := c.participantVault(db, caller, vaultID); err != nil {
		return err
	}
	return c.enableAsset(ctx, db, vaultID, kind)
}

func (c *Controller) enableAsset(ctx weave.Context, db weave.KVStore, vaultID uint64, kind string) error {
	if err := validateAssetKind(kind); err != nil {
		return err
	}
	t, err := c.Treasury(db, vaultID)
	if err != nil {
		return err
	}
	if t.HasAsset(kind) {
		return nil
	}
	ok, err := c.collab.Native.IsRegistered(db, t.Address, kind)
	if err != nil {
		return err
	}
	if !ok {
		if err := c.collab.Native.Register(db, t.Address, kind); err != nil {
			return errors.Wrapf(err, "register treasury for %s", kind)
		}
	}
	t.enable(kind)
	if _, err := c.treasuries.Put(db, vaultKey(vaultID), t); err != nil {
		return errors.Wrap(err, "save treasury")
	}
	weave.EmitEvent(ctx, weave.NewEvent("AssetEnabled", "vault_id", vaultID, "asset_kind", kind))
	return nil
}

// declare records a native transfer in the ledger, enabling the asset
// kind for the treasury first if needed.
func (c *Controller) declare(ctx weave.Context, db weave.KVStore, vaultID, proposalID uint64, t NativeTransfer) error {
	if err := c.enableAsset(ctx, db, vaultID, t.AssetKind); err != nil {
		return err
	}
	pending := PendingTransfer{Recipient: t.Recipient, Amount: t.Amount}
	if err := c.ledger.Declare(db, t.AssetKind, vaultID, proposalID, pending); err != nil {
		return errors.Wrap(err, "declare transfer")
	}
	weave.EmitEvent(ctx, weave.NewEvent("TransferRequested",
		"vault_id", vaultID,
		"proposal_id", proposalID,
		"asset_kind", t.AssetKind,
		"recipient", t.Recipient,
		"amount", t.Amount))
	return nil
}

// RequestTransfer declares a new native transfer for a draft withdrawal
// proposal. It supersedes the transfer of the same asset kind declared
// before.
func (c *Controller) RequestTransfer(ctx weave.Context, db weave.KVStore, caller weave.Condition, vaultID, proposalID uint64, t NativeTransfer) error {
	if err := t.Validate(); err != nil {
		return err
	}
	p, err := c.Proposal(db, vaultID, proposalID)
	if err != nil {
		return err
	}
	if !p.Creator.Equals(caller.Address()) {
		return errors.Wrapf(ErrNotProposalCreator, "%s", caller.Address())
	}
	if p.Posted {
		return errors.Wrapf(ErrProposalAlreadyPosted, "vault %d proposal %d", vaultID, proposalID)
	}
	action, ok := p.Action.(WithdrawNativeAction)
	if !ok {
		return errors.Wrapf(ErrWrongActionKind, "proposal carries %s", p.Action.Kind())
	}

	replaced := false
	for i, prev := range action.Transfers {
		if prev.AssetKind == t.AssetKind {
			action.Transfers[i] = t
			replaced = true
		}
	}
	if !replaced {
		action.Transfers = append(action.Transfers, t)
	}
	p.Action = action
	if _, err := c.proposals.Put(db, proposalKey(vaultID, proposalID), p); err != nil {
		return errors.Wrap(err, "save proposal")
	}
	return c.declare(ctx, db, vaultID, proposalID, t)
}
