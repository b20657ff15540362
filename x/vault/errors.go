package vault

import "github.com/iov-one/multivault/errors"

// ABCI Response Codes
// vault reserves 1100 ~ 1129.
var (
	ErrDuplicateParticipants       = errors.Register(1100, "duplicate participants")
	ErrParticipantsEmpty           = errors.Register(1101, "participants empty")
	ErrNameTooLong                 = errors.Register(1102, "vault name too long")
	ErrInvalidThreshold            = errors.Register(1103, "invalid threshold")
	ErrSenderNotAuthorized         = errors.Register(1104, "sender not authorized")
	ErrOneActionPerProposal        = errors.Register(1105, "exactly one action per proposal")
	ErrNotProposalCreator          = errors.Register(1106, "not the proposal creator")
	ErrProposalAlreadyPosted       = errors.Register(1107, "proposal already posted")
	ErrProposalNotPosted           = errors.Register(1108, "proposal not posted")
	ErrProposalCancelled           = errors.Register(1109, "proposal cancelled")
	ErrVoteNotChanged              = errors.Register(1110, "vote not changed")
	ErrProposalAlreadyExecuted     = errors.Register(1111, "proposal already executed")
	ErrNotEnoughApprovals          = errors.Register(1112, "not enough approvals")
	ErrWrongActionKind             = errors.Register(1113, "wrong action kind")
	ErrNoPendingParticipantChanges = errors.Register(1114, "no pending participant changes")
	ErrParticipantsBelowThreshold  = errors.Register(1115, "participants below threshold")
	ErrNoPendingTransfer           = errors.Register(1116, "no pending transfer")
	ErrInsufficientFunds           = errors.Register(1117, "insufficient funds")
	ErrLengthMismatch              = errors.Register(1118, "length mismatch")
	ErrNotAdmin                    = errors.Register(1119, "not the admin")
	ErrVaultNotFound               = errors.Register(1120, "vault not found")
	ErrProposalNotFound            = errors.Register(1121, "proposal not found")
	ErrInvalidAssetKind            = errors.Register(1122, "invalid asset kind")
)
