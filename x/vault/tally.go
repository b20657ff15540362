package vault

import (
	"github.com/iov-one/multivault"
	"github.com/iov-one/multivault/errors"
)

// Vote is the latest decision of a participant on a proposal.
type Vote struct {
	Voter   weave.Address `json:"voter"`
	Approve bool          `json:"approve"`
}

// castVote records the vote of the voter. A vote in the opposite
// direction replaces the previous one, moving it from one counter to the
// other. Repeating a vote fails with ErrVoteNotChanged.
func (p *Proposal) castVote(voter weave.Address, approve bool) error {
	for i, v := range p.Votes {
		if !v.Voter.Equals(voter) {
			continue
		}
		if v.Approve == approve {
			return errors.Wrapf(ErrVoteNotChanged, "%s", voter)
		}
		p.Votes[i].Approve = approve
		if approve {
			p.Cancellations--
			p.Approvals++
		} else {
			p.Approvals--
			p.Cancellations++
		}
		return nil
	}
	p.Votes = append(p.Votes, Vote{Voter: voter, Approve: approve})
	if approve {
		p.Approvals++
	} else {
		p.Cancellations++
	}
	return nil
}

// VoteOf returns the vote of given address, if any.
func (p *Proposal) VoteOf(voter weave.Address) (approve bool, ok bool) {
	for _, v := range p.Votes {
		if v.Voter.Equals(voter) {
			return v.Approve, true
		}
	}
	return false, false
}

// validateTally ensures that the counters agree with the votes.
func (p *Proposal) validateTally() error {
	var approvals, cancellations uint64
	for i, v := range p.Votes {
		if err := v.Voter.Validate(); err != nil {
			return errors.Wrapf(err, "vote %d", i)
		}
		for _, prev := range p.Votes[:i] {
			if prev.Voter.Equals(v.Voter) {
				return errors.Wrapf(errors.ErrModel, "voter %s counted twice", v.Voter)
			}
		}
		if v.Approve {
			approvals++
		} else {
			cancellations++
		}
	}
	if approvals != p.Approvals || cancellations != p.Cancellations {
		return errors.Wrapf(errors.ErrModel, "tally %d/%d does not match votes %d/%d",
			p.Approvals, p.Cancellations, approvals, cancellations)
	}
	return nil
}

// Cancelled returns true if the cancellation threshold of the vault is
// reached.
func (p *Proposal) Cancelled(v *Vault) bool {
	return p.Cancellations >= v.CancellationThreshold
}

// Approved returns true if the proposal collected enough approvals and
// was not cancelled.
func (p *Proposal) Approved(v *Vault) bool {
	return p.Approvals >= v.ApprovalThreshold && !p.Cancelled(v)
}

// Pending returns true if the proposal is open for voting.
func (p *Proposal) Pending(v *Vault) bool {
	return p.Posted && !p.Executed && !p.Cancelled(v)
}
