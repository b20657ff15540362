package vault

import (
	"github.com/iov-one/multivault"
	"github.com/iov-one/multivault/errors"
	"github.com/iov-one/multivault/orm"
)

// VaultView is the public projection of a vault.
type VaultView struct {
	ID                    uint64          `json:"id"`
	Name                  string          `json:"name"`
	Treasury              weave.Address   `json:"treasury"`
	Participants          []weave.Address `json:"participants"`
	ApprovalThreshold     uint64          `json:"approval_threshold"`
	CancellationThreshold uint64          `json:"cancellation_threshold"`
	ProposalCount         uint64          `json:"proposal_count"`
	Assets                []string        `json:"assets,omitempty"`
}

// ProposalView is the public projection of a proposal, including the
// decision computed from its votes.
type ProposalView struct {
	VaultID       uint64        `json:"vault_id"`
	ID            uint64        `json:"id"`
	Creator       weave.Address `json:"creator"`
	Posted        bool          `json:"posted"`
	Executed      bool          `json:"executed"`
	Approved      bool          `json:"approved"`
	Cancelled     bool          `json:"cancelled"`
	Approvals     uint64        `json:"approvals"`
	Cancellations uint64        `json:"cancellations"`
	Votes         []Vote        `json:"votes,omitempty"`
	Kind          ActionKind    `json:"kind"`
	Action        Action        `json:"action"`
}

// VaultIDsFor returns the ids of all vaults the address actively
// participates in, in ascending order.
func (c *Controller) VaultIDsFor(db weave.ReadOnlyKVStore, addr weave.Address) ([]uint64, error) {
	if err := addr.Validate(); err != nil {
		return nil, err
	}
	keys, err := c.vaults.ByIndex(db, "participant", addr, nil)
	if err != nil {
		return nil, err
	}
	ids := make([]uint64, len(keys))
	for i, k := range keys {
		if ids[i], err = orm.DecodeSequence(k); err != nil {
			return nil, errors.Wrap(err, "vault key")
		}
	}
	return ids, nil
}

// VaultDetails returns the vault with its active participants and
// treasury.
func (c *Controller) VaultDetails(db weave.ReadOnlyKVStore, vaultID uint64) (*VaultView, error) {
	v, err := c.Vault(db, vaultID)
	if err != nil {
		return nil, err
	}
	t, err := c.Treasury(db, vaultID)
	if err != nil {
		return nil, err
	}
	return &VaultView{
		ID:                    v.ID,
		Name:                  v.Name,
		Treasury:              t.Address,
		Participants:          v.ActiveParticipants(),
		ApprovalThreshold:     v.ApprovalThreshold,
		CancellationThreshold: v.CancellationThreshold,
		ProposalCount:         v.ProposalCount,
		Assets:                t.Assets,
	}, nil
}

// ProposalDetails returns a proposal with its current decision.
func (c *Controller) ProposalDetails(db weave.ReadOnlyKVStore, vaultID, proposalID uint64) (*ProposalView, error) {
	v, err := c.Vault(db, vaultID)
	if err != nil {
		return nil, err
	}
	p, err := c.Proposal(db, vaultID, proposalID)
	if err != nil {
		return nil, err
	}
	return proposalView(v, p), nil
}

func proposalView(v *Vault, p *Proposal) *ProposalView {
	return &ProposalView{
		VaultID:       p.VaultID,
		ID:            p.ID,
		Creator:       p.Creator,
		Posted:        p.Posted,
		Executed:      p.Executed,
		Approved:      p.Posted && p.Approved(v),
		Cancelled:     p.Cancelled(v),
		Approvals:     p.Approvals,
		Cancellations: p.Cancellations,
		Votes:         p.Votes,
		Kind:          p.Action.Kind(),
		Action:        p.Action,
	}
}

// PendingProposals returns the ids of all proposals of the vault that are
// open for voting.
func (c *Controller) PendingProposals(db weave.ReadOnlyKVStore, vaultID uint64) ([]uint64, error) {
	return c.filterProposals(db, vaultID, func(v *Vault, p *Proposal) bool {
		return p.Pending(v)
	})
}

// ApprovedProposals returns the ids of all proposals of the vault that can
// be executed.
func (c *Controller) ApprovedProposals(db weave.ReadOnlyKVStore, vaultID uint64) ([]uint64, error) {
	return c.filterProposals(db, vaultID, func(v *Vault, p *Proposal) bool {
		return p.Posted && !p.Executed && p.Approved(v)
	})
}

func (c *Controller) filterProposals(db weave.ReadOnlyKVStore, vaultID uint64, match func(*Vault, *Proposal) bool) ([]uint64, error) {
	v, err := c.Vault(db, vaultID)
	if err != nil {
		return nil, err
	}
	var proposals []Proposal
	if _, err := c.proposals.PrefixScan(db, vaultKey(vaultID), &proposals); err != nil {
		return nil, err
	}
	ids := make([]uint64, 0, len(proposals))
	for i := range proposals {
		if match(v, &proposals[i]) {
			ids = append(ids, proposals[i].ID)
		}
	}
	return ids, nil
}
