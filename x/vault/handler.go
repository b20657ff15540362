package vault

import (
	"github.com/iov-one/multivault"
	"github.com/iov-one/multivault/errors"
	"github.com/iov-one/multivault/orm"
	"github.com/iov-one/multivault/x"
)

// RegisterRoutes will instantiate and register all handlers in this
// package. Events emitted by the handlers are published to the sink of
// the context, use utils.ActionTagger to collect them into the result.
func RegisterRoutes(r weave.Registry, auth x.Authenticator, ctrl *Controller) {
	b := base{auth: auth, ctrl: ctrl}
	r.Handle(pathCreateVault, CreateVaultHandler{b})
	r.Handle(pathCreateProposal, CreateProposalHandler{b})
	r.Handle(pathPostProposal, PostProposalHandler{b})
	r.Handle(pathVote, VoteHandler{b})
	r.Handle(pathEnableAsset, EnableAssetHandler{b})
	r.Handle(pathRequestTransfer, RequestTransferHandler{b})
	r.Handle(pathExecuteMembership, ExecuteMembershipHandler{b})
	r.Handle(pathExecuteNative, ExecuteNativeHandler{b})
	r.Handle(pathExecuteFungible, ExecuteFungibleHandler{b})
	r.Handle(pathExecuteCollectible, ExecuteCollectibleHandler{b})
	r.Handle(pathExecuteObject, ExecuteObjectHandler{b})
	r.Handle(pathSetCreationFee, SetCreationFeeHandler{b})
	r.Handle(pathTransferAdmin, TransferAdminHandler{b})
}

// base is shared by all handlers of this package.
type base struct {
	auth x.Authenticator
	ctrl *Controller
}

// load extracts the message and returns the main signer. Every vault
// operation is done on behalf of the main signer.
func (b base) load(ctx weave.Context, tx weave.Tx, msg weave.Msg) (weave.Condition, error) {
	if err := weave.LoadMsg(tx, msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return x.RequireMainSigner(ctx, b.auth)
}

func (b base) check(ctx weave.Context, tx weave.Tx, msg weave.Msg) (*weave.CheckResult, error) {
	if _, err := b.load(ctx, tx, msg); err != nil {
		return nil, err
	}
	return &weave.CheckResult{}, nil
}

// CreateVaultHandler returns the id of the created vault.
type CreateVaultHandler struct{ base }

func (h CreateVaultHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	return h.check(ctx, tx, &CreateVaultMsg{})
}

func (h CreateVaultHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	var msg CreateVaultMsg
	signer, err := h.load(ctx, tx, &msg)
	if err != nil {
		return nil, err
	}
	id, err := h.ctrl.CreateVault(ctx, db, signer, msg.Name, msg.Participants, msg.ApprovalThreshold, msg.CancellationThreshold)
	if err != nil {
		return nil, err
	}
	return &weave.DeliverResult{Data: orm.EncodeSequence(id)}, nil
}

// CreateProposalHandler returns the id of the created proposal.
type CreateProposalHandler struct{ base }

func (h CreateProposalHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	return h.check(ctx, tx, &CreateProposalMsg{})
}

func (h CreateProposalHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	var msg CreateProposalMsg
	signer, err := h.load(ctx, tx, &msg)
	if err != nil {
		return nil, err
	}
	id, err := h.ctrl.CreateProposal(ctx, db, signer, msg.VaultID, msg.Request)
	if err != nil {
		return nil, err
	}
	return &weave.DeliverResult{Data: orm.EncodeSequence(id)}, nil
}

// PostProposalHandler returns the vault and proposal ids, as the auth
// token, in the result data.
type PostProposalHandler struct{ base }

func (h PostProposalHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	return h.check(ctx, tx, &PostProposalMsg{})
}

func (h PostProposalHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	var msg PostProposalMsg
	signer, err := h.load(ctx, tx, &msg)
	if err != nil {
		return nil, err
	}
	token, err := h.ctrl.PostProposal(ctx, db, signer, msg.VaultID, msg.ProposalID)
	if err != nil {
		return nil, err
	}
	return &weave.DeliverResult{Data: token.Bytes()}, nil
}

type VoteHandler struct{ base }

func (h VoteHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	return h.check(ctx, tx, &VoteMsg{})
}

func (h VoteHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	var msg VoteMsg
	signer, err := h.load(ctx, tx, &msg)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.CastVote(ctx, db, signer, msg.VaultID, msg.ProposalID, msg.Approve); err != nil {
		return nil, err
	}
	return &weave.DeliverResult{}, nil
}

type EnableAssetHandler struct{ base }

func (h EnableAssetHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	return h.check(ctx, tx, &EnableAssetMsg{})
}

func (h EnableAssetHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	var msg EnableAssetMsg
	signer, err := h.load(ctx, tx, &msg)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.EnableAsset(ctx, db, signer, msg.VaultID, msg.AssetKind); err != nil {
		return nil, err
	}
	return &weave.DeliverResult{}, nil
}

type RequestTransferHandler struct{ base }

func (h RequestTransferHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	return h.check(ctx, tx, &RequestTransferMsg{})
}

func (h RequestTransferHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	var msg RequestTransferMsg
	signer, err := h.load(ctx, tx, &msg)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.RequestTransfer(ctx, db, signer, msg.VaultID, msg.ProposalID, msg.Transfer); err != nil {
		return nil, err
	}
	return &weave.DeliverResult{}, nil
}

type ExecuteMembershipHandler struct{ base }

func (h ExecuteMembershipHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	return h.check(ctx, tx, &ExecuteMembershipMsg{})
}

func (h ExecuteMembershipHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	var msg ExecuteMembershipMsg
	signer, err := h.load(ctx, tx, &msg)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.ExecuteMembershipChange(ctx, db, signer, msg.VaultID, msg.ProposalID); err != nil {
		return nil, err
	}
	return &weave.DeliverResult{}, nil
}

type ExecuteNativeHandler struct{ base }

func (h ExecuteNativeHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	return h.check(ctx, tx, &ExecuteNativeMsg{})
}

func (h ExecuteNativeHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	var msg ExecuteNativeMsg
	signer, err := h.load(ctx, tx, &msg)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.ExecuteNativeWithdrawal(ctx, db, signer, msg.VaultID, msg.ProposalID, msg.AssetKind); err != nil {
		return nil, err
	}
	return &weave.DeliverResult{}, nil
}

type ExecuteFungibleHandler struct{ base }

func (h ExecuteFungibleHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	return h.check(ctx, tx, &ExecuteFungibleMsg{})
}

func (h ExecuteFungibleHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	var msg ExecuteFungibleMsg
	signer, err := h.load(ctx, tx, &msg)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.ExecuteFungibleWithdrawal(ctx, db, signer, msg.VaultID, msg.ProposalID); err != nil {
		return nil, err
	}
	return &weave.DeliverResult{}, nil
}

type ExecuteCollectibleHandler struct{ base }

func (h ExecuteCollectibleHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	return h.check(ctx, tx, &ExecuteCollectibleMsg{})
}

func (h ExecuteCollectibleHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	var msg ExecuteCollectibleMsg
	signer, err := h.load(ctx, tx, &msg)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.ExecuteCollectibleWithdrawal(ctx, db, signer, msg.VaultID, msg.ProposalID); err != nil {
		return nil, err
	}
	return &weave.DeliverResult{}, nil
}

type ExecuteObjectHandler struct{ base }

func (h ExecuteObjectHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	return h.check(ctx, tx, &ExecuteObjectMsg{})
}

func (h ExecuteObjectHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	var msg ExecuteObjectMsg
	signer, err := h.load(ctx, tx, &msg)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.ExecuteObjectWithdrawal(ctx, db, signer, msg.VaultID, msg.ProposalID); err != nil {
		return nil, err
	}
	return &weave.DeliverResult{}, nil
}

type SetCreationFeeHandler struct{ base }

func (h SetCreationFeeHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	return h.check(ctx, tx, &SetCreationFeeMsg{})
}

func (h SetCreationFeeHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	var msg SetCreationFeeMsg
	signer, err := h.load(ctx, tx, &msg)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.SetCreationFee(ctx, db, signer, msg.Fee); err != nil {
		return nil, err
	}
	return &weave.DeliverResult{}, nil
}

type TransferAdminHandler struct{ base }

func (h TransferAdminHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	return h.check(ctx, tx, &TransferAdminMsg{})
}

func (h TransferAdminHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	var msg TransferAdminMsg
	signer, err := h.load(ctx, tx, &msg)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.TransferAdmin(ctx, db, signer, msg.Admin); err != nil {
		return nil, err
	}
	return &weave.DeliverResult{}, nil
}
