package vault

import (
	"github.com/iov-one/multivault"
	"github.com/iov-one/multivault/errors"
)

const (
	pathCreateVault        = "vault/create"
	pathCreateProposal     = "vault/propose"
	pathPostProposal       = "vault/post"
	pathVote               = "vault/vote"
	pathEnableAsset        = "vault/enable_asset"
	pathRequestTransfer    = "vault/request_transfer"
	pathExecuteMembership  = "vault/execute_membership"
	pathExecuteNative      = "vault/execute_native"
	pathExecuteFungible    = "vault/execute_fungible"
	pathExecuteCollectible = "vault/execute_collectible"
	pathExecuteObject      = "vault/execute_object"
	pathSetCreationFee     = "vault/set_creation_fee"
	pathTransferAdmin      = "vault/transfer_admin"
)

// Msgs returns all messages processed by this extension.
func Msgs() []weave.Msg {
	return []weave.Msg{
		&CreateVaultMsg{},
		&CreateProposalMsg{},
		&PostProposalMsg{},
		&VoteMsg{},
		&EnableAssetMsg{},
		&RequestTransferMsg{},
		&ExecuteMembershipMsg{},
		&ExecuteNativeMsg{},
		&ExecuteFungibleMsg{},
		&ExecuteCollectibleMsg{},
		&ExecuteObjectMsg{},
		&SetCreationFeeMsg{},
		&TransferAdminMsg{},
	}
}

func validateVaultID(id uint64) error {
	if id == 0 {
		return errors.Wrap(errors.ErrInput, "missing vault id")
	}
	return nil
}

// CreateVaultMsg creates a vault. The signer joins the participants.
type CreateVaultMsg struct {
	Name                  string          `json:"name"`
	Participants          []weave.Address `json:"participants"`
	ApprovalThreshold     uint64          `json:"approval_threshold"`
	CancellationThreshold uint64          `json:"cancellation_threshold"`
}

func (CreateVaultMsg) Path() string { return pathCreateVault }

func (m *CreateVaultMsg) Validate() error {
	var err error
	if len(m.Name) > MaxNameLength {
		err = errors.Append(err, errors.Wrapf(ErrNameTooLong, "%d bytes", len(m.Name)))
	}
	if len(m.Participants) == 0 {
		err = errors.Append(err, ErrParticipantsEmpty)
	}
	err = errors.Append(err, validateAddresses(m.Participants))
	if m.ApprovalThreshold == 0 || m.CancellationThreshold == 0 {
		err = errors.Append(err, errors.Wrap(ErrInvalidThreshold, "zero threshold"))
	}
	return err
}

// CreateProposalMsg creates a draft proposal.
type CreateProposalMsg struct {
	VaultID uint64          `json:"vault_id"`
	Request ProposalRequest `json:"request"`
}

func (CreateProposalMsg) Path() string { return pathCreateProposal }

func (m *CreateProposalMsg) Validate() error {
	if err := validateVaultID(m.VaultID); err != nil {
		return err
	}
	_, err := m.Request.Action()
	return err
}

// PostProposalMsg opens a draft proposal for voting.
type PostProposalMsg struct {
	VaultID    uint64 `json:"vault_id"`
	ProposalID uint64 `json:"proposal_id"`
}

func (PostProposalMsg) Path() string { return pathPostProposal }

func (m *PostProposalMsg) Validate() error { return validateVaultID(m.VaultID) }

// VoteMsg approves or cancels a posted proposal.
type VoteMsg struct {
	VaultID    uint64 `json:"vault_id"`
	ProposalID uint64 `json:"proposal_id"`
	Approve    bool   `json:"approve"`
}

func (VoteMsg) Path() string { return pathVote }

func (m *VoteMsg) Validate() error { return validateVaultID(m.VaultID) }

// EnableAssetMsg allows the vault treasury to hold a native asset kind.
type EnableAssetMsg struct {
	VaultID   uint64 `json:"vault_id"`
	AssetKind string `json:"asset_kind"`
}

func (EnableAssetMsg) Path() string { return pathEnableAsset }

func (m *EnableAssetMsg) Validate() error {
	return errors.Append(validateVaultID(m.VaultID), validateAssetKind(m.AssetKind))
}

// RequestTransferMsg declares a new native transfer for a draft proposal.
type RequestTransferMsg struct {
	VaultID    uint64         `json:"vault_id"`
	ProposalID uint64         `json:"proposal_id"`
	Transfer   NativeTransfer `json:"transfer"`
}

func (RequestTransferMsg) Path() string { return pathRequestTransfer }

func (m *RequestTransferMsg) Validate() error {
	return errors.Append(validateVaultID(m.VaultID), m.Transfer.Validate())
}

// ExecuteMembershipMsg executes an approved membership change.
type ExecuteMembershipMsg struct {
	VaultID    uint64 `json:"vault_id"`
	ProposalID uint64 `json:"proposal_id"`
}

func (ExecuteMembershipMsg) Path() string { return pathExecuteMembership }

func (m *ExecuteMembershipMsg) Validate() error { return validateVaultID(m.VaultID) }

// ExecuteNativeMsg executes the pending native transfer of given kind.
type ExecuteNativeMsg struct {
	VaultID    uint64 `json:"vault_id"`
	ProposalID uint64 `json:"proposal_id"`
	AssetKind  string `json:"asset_kind"`
}

func (ExecuteNativeMsg) Path() string { return pathExecuteNative }

func (m *ExecuteNativeMsg) Validate() error {
	return errors.Append(validateVaultID(m.VaultID), validateAssetKind(m.AssetKind))
}

// ExecuteFungibleMsg executes an approved fungible asset withdrawal.
type ExecuteFungibleMsg struct {
	VaultID    uint64 `json:"vault_id"`
	ProposalID uint64 `json:"proposal_id"`
}

func (ExecuteFungibleMsg) Path() string { return pathExecuteFungible }

func (m *ExecuteFungibleMsg) Validate() error { return validateVaultID(m.VaultID) }

// ExecuteCollectibleMsg executes an approved collectible withdrawal.
type ExecuteCollectibleMsg struct {
	VaultID    uint64 `json:"vault_id"`
	ProposalID uint64 `json:"proposal_id"`
}

func (ExecuteCollectibleMsg) Path() string { return pathExecuteCollectible }

func (m *ExecuteCollectibleMsg) Validate() error { return validateVaultID(m.VaultID) }

// ExecuteObjectMsg executes an approved digital object withdrawal.
type ExecuteObjectMsg struct {
	VaultID    uint64 `json:"vault_id"`
	ProposalID uint64 `json:"proposal_id"`
}

func (ExecuteObjectMsg) Path() string { return pathExecuteObject }

func (m *ExecuteObjectMsg) Validate() error { return validateVaultID(m.VaultID) }

// SetCreationFeeMsg changes the vault creation fee.
type SetCreationFeeMsg struct {
	Fee uint64 `json:"fee"`
}

func (SetCreationFeeMsg) Path() string { return pathSetCreationFee }

func (m *SetCreationFeeMsg) Validate() error { return nil }

// TransferAdminMsg hands the configuration over to a new admin.
type TransferAdminMsg struct {
	Admin weave.Address `json:"admin"`
}

func (TransferAdminMsg) Path() string { return pathTransferAdmin }

func (m *TransferAdminMsg) Validate() error {
	return errors.Wrap(m.Admin.Validate(), "admin")
}
