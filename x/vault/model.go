package vault

import (
	"github.com/iov-one/multivault"
	"github.com/iov-one/multivault/errors"
	"github.com/iov-one/multivault/orm"
)

// MaxNameLength is the maximum length of a vault name, in bytes.
const MaxNameLength = 137

// Vault is a group of participants that decides on proposals.
type Vault struct {
	ID           uint64        `json:"id"`
	Name         string        `json:"name"`
	Participants []Participant `json:"participants"`
	// ApprovalThreshold is the number of approvals a proposal requires
	// to be executed.
	ApprovalThreshold uint64 `json:"approval_threshold"`
	// CancellationThreshold is the number of cancellation votes that
	// block a proposal for good.
	CancellationThreshold uint64 `json:"cancellation_threshold"`
	// ProposalCount is the number of proposals created so far, and the
	// id of the next one.
	ProposalCount uint64 `json:"proposal_count"`
}

var _ orm.Model = (*Vault)(nil)

func (v *Vault) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(v)
}

func (v *Vault) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, v)
}

// Validate ensures that the participants are unique and that enough of
// them are active to reach both thresholds.
func (v *Vault) Validate() error {
	if v.ID == 0 {
		return errors.Wrap(errors.ErrModel, "missing id")
	}
	if len(v.Name) > MaxNameLength {
		return errors.Wrapf(ErrNameTooLong, "%d bytes", len(v.Name))
	}
	for i, p := range v.Participants {
		if err := p.Address.Validate(); err != nil {
			return errors.Wrapf(err, "participant %d", i)
		}
		if v.find(p.Address) != i {
			return errors.Wrapf(ErrDuplicateParticipants, "%s", p.Address)
		}
	}
	if v.ApprovalThreshold == 0 || v.CancellationThreshold == 0 {
		return errors.Wrap(ErrInvalidThreshold, "zero threshold")
	}
	if n := v.ActiveCount(); n < v.ApprovalThreshold || n < v.CancellationThreshold {
		return errors.Wrapf(ErrParticipantsBelowThreshold, "%d active participants", n)
	}
	return nil
}

// Proposal is a single action awaiting the vault decision. Proposals are
// never deleted.
type Proposal struct {
	VaultID  uint64        `json:"vault_id"`
	ID       uint64        `json:"id"`
	Creator  weave.Address `json:"creator"`
	Posted   bool          `json:"posted"`
	Executed bool          `json:"executed"`
	// Votes are kept in the order they were first cast.
	Votes         []Vote `json:"votes,omitempty"`
	Approvals     uint64 `json:"approvals"`
	Cancellations uint64 `json:"cancellations"`
	Action        Action `json:"action"`
}

var _ orm.Model = (*Proposal)(nil)

func (p *Proposal) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(p)
}

func (p *Proposal) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, p)
}

func (p *Proposal) Validate() error {
	if err := p.Creator.Validate(); err != nil {
		return errors.Wrap(err, "creator")
	}
	if p.Action == nil {
		return errors.Wrap(errors.ErrModel, "missing action")
	}
	if err := p.Action.Validate(); err != nil {
		return errors.Wrap(err, "action")
	}
	if p.Executed && !p.Posted {
		return errors.Wrap(errors.ErrModel, "executed before posted")
	}
	return p.validateTally()
}

// Treasury is the identity custodying the vault assets.
type Treasury struct {
	Address weave.Address `json:"address"`
	// Authority is the condition the vault uses to move the treasury
	// assets.
	Authority weave.Condition `json:"authority"`
	// Assets are the native asset kinds enabled for the treasury, sorted.
	Assets []string `json:"assets,omitempty"`
}

var _ orm.Model = (*Treasury)(nil)

func (t *Treasury) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(t)
}

func (t *Treasury) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, t)
}

func (t *Treasury) Validate() error {
	if err := t.Address.Validate(); err != nil {
		return errors.Wrap(err, "address")
	}
	if err := t.Authority.Validate(); err != nil {
		return errors.Wrap(err, "authority")
	}
	for i, k := range t.Assets {
		if i > 0 && t.Assets[i-1] >= k {
			return errors.Wrap(errors.ErrModel, "assets not sorted")
		}
	}
	return nil
}

// HasAsset returns true if the native asset kind is enabled.
func (t *Treasury) HasAsset(kind string) bool {
	for _, k := range t.Assets {
		if k == kind {
			return true
		}
	}
	return false
}

func (t *Treasury) enable(kind string) {
	i := 0
	for i < len(t.Assets) && t.Assets[i] < kind {
		i++
	}
	t.Assets = append(t.Assets, "")
	copy(t.Assets[i+1:], t.Assets[i:])
	t.Assets[i] = kind
}

// vaultKey is the primary key of a vault and of its treasury.
func vaultKey(id uint64) []byte {
	return orm.EncodeSequence(id)
}

// proposalKey orders the proposals of a vault by their id.
func proposalKey(vaultID, proposalID uint64) []byte {
	return append(orm.EncodeSequence(vaultID), orm.EncodeSequence(proposalID)...)
}

func participantIndexer(m orm.Model) ([][]byte, error) {
	v, ok := m.(*Vault)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", m)
	}
	addrs := v.ActiveParticipants()
	keys := make([][]byte, len(addrs))
	for i, a := range addrs {
		keys[i] = a
	}
	return keys, nil
}

// NewVaultBucket returns a bucket storing vaults by id, indexed by their
// active participants.
func NewVaultBucket() orm.ModelBucket {
	return orm.NewModelBucket("vault", &Vault{},
		orm.WithMultiKeyIndex("participant", participantIndexer, false))
}

// NewProposalBucket returns a bucket storing proposals by vault and
// proposal id.
func NewProposalBucket() orm.ModelBucket {
	return orm.NewModelBucket("proposal", &Proposal{})
}

// NewTreasuryBucket returns a bucket storing treasuries by vault id.
func NewTreasuryBucket() orm.ModelBucket {
	return orm.NewModelBucket("treasury", &Treasury{})
}

// vaultSequence assigns vault ids, starting at 1.
var vaultSequence = orm.NewSequence("vault", "id")
