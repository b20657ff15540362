package vault

import (
	"testing"

	"github.com/iov-one/multivault"
	"github.com/iov-one/multivault/errors"
	"github.com/iov-one/multivault/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecutePreconditions(t *testing.T) {
	newcomer := weavetest.NewCondition().Address()
	addReq := ProposalRequest{AddParticipants: []weave.Address{newcomer}}

	cases := map[string]struct {
		// prepare returns the id of the proposal to execute.
		prepare func(t *testing.T, f *fixture, ps []weave.Condition) uint64
		caller  int
		wantErr *errors.Error
	}{
		"approved": {
			prepare: func(t *testing.T, f *fixture, ps []weave.Condition) uint64 {
				pid := f.posted(t, ps[0], 1, addReq)
				f.vote(t, 1, pid, true, ps[0], ps[1], ps[2])
				return pid
			},
		},
		"any participant can execute": {
			prepare: func(t *testing.T, f *fixture, ps []weave.Condition) uint64 {
				pid := f.posted(t, ps[0], 1, addReq)
				f.vote(t, 1, pid, true, ps[0], ps[1], ps[2])
				return pid
			},
			caller: 4,
		},
		"not posted": {
			prepare: func(t *testing.T, f *fixture, ps []weave.Condition) uint64 {
				pid, err := f.ctrl.CreateProposal(f.ctx, f.db, ps[0], 1, addReq)
				require.NoError(t, err)
				return pid
			},
			wantErr: ErrProposalNotPosted,
		},
		"not enough approvals": {
			prepare: func(t *testing.T, f *fixture, ps []weave.Condition) uint64 {
				pid := f.posted(t, ps[0], 1, addReq)
				f.vote(t, 1, pid, true, ps[0], ps[1])
				return pid
			},
			wantErr: ErrNotEnoughApprovals,
		},
		"cancelled after approval": {
			prepare: func(t *testing.T, f *fixture, ps []weave.Condition) uint64 {
				pid := f.posted(t, ps[0], 1, addReq)
				f.vote(t, 1, pid, true, ps[0], ps[1], ps[2])
				f.vote(t, 1, pid, false, ps[3], ps[4])
				return pid
			},
			wantErr: ErrProposalCancelled,
		},
		"approval flipped into cancellation": {
			prepare: func(t *testing.T, f *fixture, ps []weave.Condition) uint64 {
				pid := f.posted(t, ps[0], 1, addReq)
				f.vote(t, 1, pid, true, ps[0], ps[1], ps[2])
				f.vote(t, 1, pid, false, ps[1], ps[2])
				return pid
			},
			wantErr: ErrProposalCancelled,
		},
		"unknown proposal": {
			prepare: func(t *testing.T, f *fixture, ps []weave.Condition) uint64 {
				return 3
			},
			wantErr: ErrProposalNotFound,
		},
		"outsider": {
			prepare: func(t *testing.T, f *fixture, ps []weave.Condition) uint64 {
				pid := f.posted(t, ps[0], 1, addReq)
				f.vote(t, 1, pid, true, ps[0], ps[1], ps[2])
				return pid
			},
			caller:  -1,
			wantErr: ErrSenderNotAuthorized,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			f := newFixture(t)
			ps := conditions(5)
			f.newVault(t, ps[0], ps[1:], 3, 2)
			pid := tc.prepare(t, f, ps)

			caller := weavetest.NewCondition()
			if tc.caller >= 0 {
				caller = ps[tc.caller]
			}
			err := f.ctrl.ExecuteMembershipChange(f.ctx, f.db, caller, 1, pid)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			v, err := f.ctrl.Vault(f.db, 1)
			require.NoError(t, err)
			assert.Equal(t, tc.wantErr == nil, v.IsActive(newcomer))
		})
	}
}

func TestExecuteTwice(t *testing.T) {
	f := newFixture(t)
	ps := conditions(2)
	vid := f.newVault(t, ps[0], ps[1:], 1, 1)
	pid := f.posted(t, ps[0], vid, ProposalRequest{AddParticipants: []weave.Address{weavetest.NewCondition().Address()}})
	f.vote(t, vid, pid, true, ps[1])

	require.NoError(t, f.ctrl.ExecuteMembershipChange(f.ctx, f.db, ps[0], vid, pid))
	err := f.ctrl.ExecuteMembershipChange(f.ctx, f.db, ps[0], vid, pid)
	assert.True(t, ErrProposalAlreadyExecuted.Is(err))
	err = f.ctrl.CastVote(f.ctx, f.db, ps[0], vid, pid, true)
	assert.True(t, ErrProposalAlreadyExecuted.Is(err))

	p, err := f.ctrl.Proposal(f.db, vid, pid)
	require.NoError(t, err)
	assert.True(t, p.Executed)
}

func TestMembershipBelowThreshold(t *testing.T) {
	f := newFixture(t)
	ps := conditions(3)
	vid := f.newVault(t, ps[0], ps[1:], 3, 3)
	pid := f.posted(t, ps[0], vid, ProposalRequest{RemoveParticipants: []weave.Address{ps[2].Address()}})
	f.vote(t, vid, pid, true, ps...)

	err := f.ctrl.ExecuteMembershipChange(f.ctx, f.db, ps[0], vid, pid)
	assert.True(t, ErrParticipantsBelowThreshold.Is(err))

	v, err := f.ctrl.Vault(f.db, vid)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), v.ActiveCount())
	p, err := f.ctrl.Proposal(f.db, vid, pid)
	require.NoError(t, err)
	assert.False(t, p.Executed)
}

func TestMembershipRoundTrip(t *testing.T) {
	f := newFixture(t)
	ps := conditions(3)
	vid := f.newVault(t, ps[0], ps[1:], 2, 2)
	leaving := ps[2]

	pid := f.posted(t, ps[0], vid, ProposalRequest{RemoveParticipants: []weave.Address{leaving.Address()}})
	f.vote(t, vid, pid, true, ps[0], ps[1])
	require.NoError(t, f.ctrl.ExecuteMembershipChange(f.ctx, f.db, ps[1], vid, pid))

	v, err := f.ctrl.Vault(f.db, vid)
	require.NoError(t, err)
	assert.False(t, v.IsActive(leaving.Address()))
	assert.Equal(t, []weave.Address{ps[0].Address(), ps[1].Address()}, v.ActiveParticipants())
	ids, err := f.ctrl.VaultIDsFor(f.db, leaving.Address())
	require.NoError(t, err)
	assert.Empty(t, ids)

	// A removed participant cannot propose or vote any more.
	_, err = f.ctrl.CreateProposal(f.ctx, f.db, leaving, vid, ProposalRequest{AddParticipants: []weave.Address{leaving.Address()}})
	assert.True(t, ErrSenderNotAuthorized.Is(err))

	pid = f.posted(t, ps[1], vid, ProposalRequest{AddParticipants: []weave.Address{leaving.Address()}})
	err = f.ctrl.CastVote(f.ctx, f.db, leaving, vid, pid, true)
	assert.True(t, ErrSenderNotAuthorized.Is(err))
	f.vote(t, vid, pid, true, ps[0], ps[1])
	require.NoError(t, f.ctrl.ExecuteMembershipChange(f.ctx, f.db, ps[0], vid, pid))

	v, err = f.ctrl.Vault(f.db, vid)
	require.NoError(t, err)
	assert.Len(t, v.Participants, 3)
	assert.True(t, v.IsActive(leaving.Address()))
	ids, err = f.ctrl.VaultIDsFor(f.db, leaving.Address())
	require.NoError(t, err)
	assert.Equal(t, []uint64{vid}, ids)

	var removed, added int
	for _, e := range f.events.Events() {
		switch e.Type {
		case "ParticipantRemoved":
			removed++
		case "ParticipantAdded":
			added++
		}
	}
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, added)
}

func TestNativeWithdrawal(t *testing.T) {
	f := newFixture(t)
	ps := conditions(3)
	recipient := weavetest.NewCondition().Address()
	vid := f.newVault(t, ps[0], ps[1:], 2, 2)
	require.NoError(t, f.cash.Register(f.db, recipient, "IOV"))

	pid := f.posted(t, ps[0], vid, ProposalRequest{
		WithdrawNative: NativeTransfer{AssetKind: "IOV", Amount: 40, Recipient: recipient},
	})
	tr := f.treasury(t, vid)
	assert.True(t, tr.HasAsset("IOV"))
	require.NoError(t, f.cash.Issue(f.db, tr.Address, "IOV", 100))

	// Not approved yet.
	err := f.ctrl.ExecuteNativeWithdrawal(f.ctx, f.db, ps[0], vid, pid, "IOV")
	assert.True(t, ErrNotEnoughApprovals.Is(err))

	f.vote(t, vid, pid, true, ps[1], ps[2])
	err = f.ctrl.ExecuteNativeWithdrawal(f.ctx, f.db, ps[0], vid, pid, "ETH")
	assert.True(t, ErrNoPendingTransfer.Is(err))

	require.NoError(t, f.ctrl.ExecuteNativeWithdrawal(f.ctx, f.db, ps[0], vid, pid, "IOV"))

	got, err := f.cash.Balance(f.db, tr.Address, "IOV")
	require.NoError(t, err)
	assert.Equal(t, uint64(60), got)
	got, err = f.cash.Balance(f.db, recipient, "IOV")
	require.NoError(t, err)
	assert.Equal(t, uint64(40), got)

	has, err := f.ctrl.ledger.Has(f.db, "IOV", vid, pid)
	require.NoError(t, err)
	assert.False(t, has)

	p, err := f.ctrl.Proposal(f.db, vid, pid)
	require.NoError(t, err)
	assert.True(t, p.Executed)

	err = f.ctrl.ExecuteNativeWithdrawal(f.ctx, f.db, ps[0], vid, pid, "IOV")
	assert.True(t, ErrProposalAlreadyExecuted.Is(err))
	got, err = f.cash.Balance(f.db, tr.Address, "IOV")
	require.NoError(t, err)
	assert.Equal(t, uint64(60), got)
}

func TestNativeWithdrawalInsufficientFunds(t *testing.T) {
	f := newFixture(t)
	ps := conditions(2)
	recipient := weavetest.NewCondition().Address()
	vid := f.newVault(t, ps[0], ps[1:], 1, 1)
	require.NoError(t, f.cash.Register(f.db, recipient, "IOV"))

	pid := f.posted(t, ps[0], vid, ProposalRequest{
		WithdrawNative: NativeTransfer{AssetKind: "IOV", Amount: 150, Recipient: recipient},
	})
	require.NoError(t, f.cash.Issue(f.db, f.treasury(t, vid).Address, "IOV", 100))
	f.vote(t, vid, pid, true, ps[1])

	err := f.ctrl.ExecuteNativeWithdrawal(f.ctx, f.db, ps[0], vid, pid, "IOV")
	assert.True(t, ErrInsufficientFunds.Is(err))

	// The declaration survives a failed execution.
	has, err := f.ctrl.ledger.Has(f.db, "IOV", vid, pid)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestRequestTransfer(t *testing.T) {
	f := newFixture(t)
	ps := conditions(2)
	first := weavetest.NewCondition().Address()
	second := weavetest.NewCondition().Address()
	vid := f.newVault(t, ps[0], ps[1:], 1, 1)
	for _, kind := range []string{"IOV", "ETH"} {
		require.NoError(t, f.cash.Register(f.db, second, kind))
	}

	pid, err := f.ctrl.CreateProposal(f.ctx, f.db, ps[0], vid, ProposalRequest{
		WithdrawNative: NativeTransfer{AssetKind: "IOV", Amount: 10, Recipient: first},
	})
	require.NoError(t, err)

	err = f.ctrl.RequestTransfer(f.ctx, f.db, ps[1], vid, pid, NativeTransfer{AssetKind: "IOV", Amount: 5, Recipient: second})
	assert.True(t, ErrNotProposalCreator.Is(err))

	// The latest declaration of a kind supersedes the previous one.
	require.NoError(t, f.ctrl.RequestTransfer(f.ctx, f.db, ps[0], vid, pid, NativeTransfer{AssetKind: "IOV", Amount: 5, Recipient: second}))
	require.NoError(t, f.ctrl.RequestTransfer(f.ctx, f.db, ps[0], vid, pid, NativeTransfer{AssetKind: "ETH", Amount: 2, Recipient: second}))

	pending, err := f.ctrl.ledger.Lookup(f.db, "IOV", vid, pid)
	require.NoError(t, err)
	assert.Equal(t, &PendingTransfer{Recipient: second, Amount: 5}, pending)

	p, err := f.ctrl.Proposal(f.db, vid, pid)
	require.NoError(t, err)
	action := p.Action.(WithdrawNativeAction)
	assert.Len(t, action.Transfers, 2)

	_, err = f.ctrl.PostProposal(f.ctx, f.db, ps[0], vid, pid)
	require.NoError(t, err)
	err = f.ctrl.RequestTransfer(f.ctx, f.db, ps[0], vid, pid, NativeTransfer{AssetKind: "IOV", Amount: 1, Recipient: second})
	assert.True(t, ErrProposalAlreadyPosted.Is(err))

	tr := f.treasury(t, vid)
	assert.Equal(t, []string{"ETH", "IOV"}, tr.Assets)
	require.NoError(t, f.cash.Issue(f.db, tr.Address, "IOV", 5))
	require.NoError(t, f.cash.Issue(f.db, tr.Address, "ETH", 2))
	f.vote(t, vid, pid, true, ps[1])

	// Each kind is executed on its own, the proposal completes with
	// the last one.
	require.NoError(t, f.ctrl.ExecuteNativeWithdrawal(f.ctx, f.db, ps[0], vid, pid, "IOV"))
	p, err = f.ctrl.Proposal(f.db, vid, pid)
	require.NoError(t, err)
	assert.False(t, p.Executed)
	err = f.ctrl.ExecuteNativeWithdrawal(f.ctx, f.db, ps[0], vid, pid, "IOV")
	assert.True(t, ErrNoPendingTransfer.Is(err))

	require.NoError(t, f.ctrl.ExecuteNativeWithdrawal(f.ctx, f.db, ps[0], vid, pid, "ETH"))
	p, err = f.ctrl.Proposal(f.db, vid, pid)
	require.NoError(t, err)
	assert.True(t, p.Executed)

	got, err := f.cash.Balance(f.db, second, "ETH")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), got)
	got, err = f.cash.Balance(f.db, first, "IOV")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), got)
}

func TestRequestTransferWrongKind(t *testing.T) {
	f := newFixture(t)
	ps := conditions(2)
	vid := f.newVault(t, ps[0], ps[1:], 1, 1)
	pid, err := f.ctrl.CreateProposal(f.ctx, f.db, ps[0], vid, ProposalRequest{AddParticipants: []weave.Address{weavetest.NewCondition().Address()}})
	require.NoError(t, err)

	err = f.ctrl.RequestTransfer(f.ctx, f.db, ps[0], vid, pid, NativeTransfer{AssetKind: "IOV", Amount: 1, Recipient: ps[1].Address()})
	assert.True(t, ErrWrongActionKind.Is(err))
}

func TestFungibleWithdrawal(t *testing.T) {
	f := newFixture(t)
	ps := conditions(2)
	alice := weavetest.NewCondition().Address()
	bob := weavetest.NewCondition().Address()
	vid := f.newVault(t, ps[0], ps[1:], 2, 1)
	tr := f.treasury(t, vid)
	require.NoError(t, f.tokens.Mint(f.db, "gold", tr.Address, 10))
	require.NoError(t, f.tokens.Mint(f.db, "silver", tr.Address, 10))

	pid := f.posted(t, ps[0], vid, ProposalRequest{WithdrawFungible: FungibleRequest{
		AssetIDs:   []string{"gold", "silver"},
		Amounts:    []uint64{3, 10},
		Recipients: []weave.Address{alice, bob},
	}})
	f.vote(t, vid, pid, true, ps[0])
	err := f.ctrl.ExecuteFungibleWithdrawal(f.ctx, f.db, ps[0], vid, pid)
	assert.True(t, ErrNotEnoughApprovals.Is(err))
	err = f.ctrl.ExecuteNativeWithdrawal(f.ctx, f.db, ps[0], vid, pid, "IOV")
	assert.True(t, ErrNotEnoughApprovals.Is(err))

	f.vote(t, vid, pid, true, ps[1])
	err = f.ctrl.ExecuteCollectibleWithdrawal(f.ctx, f.db, ps[0], vid, pid)
	assert.True(t, ErrWrongActionKind.Is(err))
	require.NoError(t, f.ctrl.ExecuteFungibleWithdrawal(f.ctx, f.db, ps[1], vid, pid))

	balances := map[string]uint64{}
	for name, q := range map[string]struct {
		asset  string
		holder weave.Address
	}{
		"treasury gold":   {"gold", tr.Address},
		"treasury silver": {"silver", tr.Address},
		"alice gold":      {"gold", alice},
		"bob silver":      {"silver", bob},
	} {
		got, err := f.tokens.Balance(f.db, q.asset, q.holder)
		require.NoError(t, err)
		balances[name] = got
	}
	assert.Equal(t, map[string]uint64{
		"treasury gold":   7,
		"treasury silver": 0,
		"alice gold":      3,
		"bob silver":      10,
	}, balances)

	err = f.ctrl.ExecuteFungibleWithdrawal(f.ctx, f.db, ps[1], vid, pid)
	assert.True(t, ErrProposalAlreadyExecuted.Is(err))
}

func TestFungibleWithdrawalIsAtomic(t *testing.T) {
	f := newFixture(t)
	ps := conditions(2)
	alice := weavetest.NewCondition().Address()
	vid := f.newVault(t, ps[0], ps[1:], 1, 1)
	tr := f.treasury(t, vid)
	require.NoError(t, f.tokens.Mint(f.db, "gold", tr.Address, 10))
	require.NoError(t, f.tokens.Mint(f.db, "silver", tr.Address, 10))

	pid := f.posted(t, ps[0], vid, ProposalRequest{WithdrawFungible: FungibleRequest{
		AssetIDs:   []string{"gold", "silver"},
		Amounts:    []uint64{3, 20},
		Recipients: []weave.Address{alice, alice},
	}})
	f.vote(t, vid, pid, true, ps[1])

	err := f.ctrl.ExecuteFungibleWithdrawal(f.ctx, f.db, ps[0], vid, pid)
	assert.True(t, ErrInsufficientFunds.Is(err))
	gold, err := f.tokens.Balance(f.db, "gold", alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), gold)
	p, err := f.ctrl.Proposal(f.db, vid, pid)
	require.NoError(t, err)
	assert.False(t, p.Executed)
	assert.NotContains(t, f.eventTypes(), "FungibleWithdrawn")

	require.NoError(t, f.tokens.Mint(f.db, "silver", tr.Address, 10))
	require.NoError(t, f.ctrl.ExecuteFungibleWithdrawal(f.ctx, f.db, ps[0], vid, pid))
	gold, err = f.tokens.Balance(f.db, "gold", alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), gold)
	silver, err := f.tokens.Balance(f.db, "silver", alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(20), silver)
}

func TestFungibleWithdrawalSumsPerAsset(t *testing.T) {
	f := newFixture(t)
	ps := conditions(2)
	alice := weavetest.NewCondition().Address()
	bob := weavetest.NewCondition().Address()
	vid := f.newVault(t, ps[0], ps[1:], 1, 1)
	tr := f.treasury(t, vid)
	require.NoError(t, f.tokens.Mint(f.db, "gold", tr.Address, 10))

	pid := f.posted(t, ps[0], vid, ProposalRequest{WithdrawFungible: FungibleRequest{
		AssetIDs:   []string{"gold", "gold"},
		Amounts:    []uint64{6, 6},
		Recipients: []weave.Address{alice, bob},
	}})
	f.vote(t, vid, pid, true, ps[1])
	err := f.ctrl.ExecuteFungibleWithdrawal(f.ctx, f.db, ps[0], vid, pid)
	assert.True(t, ErrInsufficientFunds.Is(err))
	got, err := f.tokens.Balance(f.db, "gold", tr.Address)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), got)
}

func TestCollectibleWithdrawalIsAtomic(t *testing.T) {
	f := newFixture(t)
	ps := conditions(2)
	alice := weavetest.NewCondition().Address()
	vid := f.newVault(t, ps[0], ps[1:], 1, 1)
	tr := f.treasury(t, vid)
	first, err := f.collectibles.Create(f.db, "ticket", tr.Address, 5)
	require.NoError(t, err)
	second, err := f.collectibles.Create(f.db, "badge", tr.Address, 1)
	require.NoError(t, err)

	pid := f.posted(t, ps[0], vid, ProposalRequest{WithdrawCollectible: CollectibleRequest{
		Transfers: []CollectibleTransfer{
			{CollectibleID: first, Amount: 2, Recipient: alice},
			{CollectibleID: second, Amount: 2, Recipient: alice},
		},
	}})
	f.vote(t, vid, pid, true, ps[1])
	err = f.ctrl.ExecuteCollectibleWithdrawal(f.ctx, f.db, ps[0], vid, pid)
	assert.True(t, ErrInsufficientFunds.Is(err))
	got, err := f.collectibles.Balance(f.db, first, alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), got)
	p, err := f.ctrl.Proposal(f.db, vid, pid)
	require.NoError(t, err)
	assert.False(t, p.Executed)
}

func TestObjectWithdrawalIsAtomic(t *testing.T) {
	f := newFixture(t)
	ps := conditions(2)
	alice := weavetest.NewCondition().Address()
	vid := f.newVault(t, ps[0], ps[1:], 1, 1)
	tr := f.treasury(t, vid)
	owned, err := f.objects.Create(f.db, tr.Address, "ipfs://owned")
	require.NoError(t, err)
	foreign, err := f.objects.Create(f.db, alice, "ipfs://foreign")
	require.NoError(t, err)

	cases := map[string][]uint64{
		"second object not owned": {owned, foreign},
		"object listed twice":     {owned, owned},
	}
	for testName, ids := range cases {
		t.Run(testName, func(t *testing.T) {
			pid := f.posted(t, ps[0], vid, ProposalRequest{WithdrawObject: ObjectRequest{
				ObjectIDs:  ids,
				Recipients: []weave.Address{alice, alice},
			}})
			f.vote(t, vid, pid, true, ps[1])
			err := f.ctrl.ExecuteObjectWithdrawal(f.ctx, f.db, ps[0], vid, pid)
			assert.True(t, ErrInsufficientFunds.Is(err))
			owner, err := f.objects.OwnerOf(f.db, owned)
			require.NoError(t, err)
			assert.Equal(t, tr.Address, owner)
		})
	}
}

func TestCollectibleWithdrawal(t *testing.T) {
	f := newFixture(t)
	ps := conditions(2)
	alice := weavetest.NewCondition().Address()
	vid := f.newVault(t, ps[0], ps[1:], 1, 1)
	tr := f.treasury(t, vid)
	cid, err := f.collectibles.Create(f.db, "ticket", tr.Address, 5)
	require.NoError(t, err)

	pid := f.posted(t, ps[0], vid, ProposalRequest{WithdrawCollectible: CollectibleRequest{
		Transfers: []CollectibleTransfer{{CollectibleID: cid, Amount: 2, Recipient: alice}},
	}})
	f.vote(t, vid, pid, true, ps[1])
	require.NoError(t, f.ctrl.ExecuteCollectibleWithdrawal(f.ctx, f.db, ps[0], vid, pid))

	got, err := f.collectibles.Balance(f.db, cid, tr.Address)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), got)
	got, err = f.collectibles.Balance(f.db, cid, alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), got)

	assert.Contains(t, f.eventTypes(), "CollectibleWithdrawn")
}

func TestObjectWithdrawal(t *testing.T) {
	f := newFixture(t)
	ps := conditions(2)
	alice := weavetest.NewCondition().Address()
	vid := f.newVault(t, ps[0], ps[1:], 1, 1)
	tr := f.treasury(t, vid)
	owned, err := f.objects.Create(f.db, tr.Address, "ipfs://owned")
	require.NoError(t, err)
	foreign, err := f.objects.Create(f.db, alice, "ipfs://foreign")
	require.NoError(t, err)

	pid := f.posted(t, ps[0], vid, ProposalRequest{WithdrawObject: ObjectRequest{
		ObjectIDs:  []uint64{foreign},
		Recipients: []weave.Address{ps[0].Address()},
	}})
	f.vote(t, vid, pid, true, ps[1])
	err = f.ctrl.ExecuteObjectWithdrawal(f.ctx, f.db, ps[0], vid, pid)
	assert.True(t, ErrInsufficientFunds.Is(err))

	pid = f.posted(t, ps[0], vid, ProposalRequest{WithdrawObject: ObjectRequest{
		ObjectIDs:  []uint64{owned},
		Recipients: []weave.Address{alice},
	}})
	f.vote(t, vid, pid, true, ps[1])
	require.NoError(t, f.ctrl.ExecuteObjectWithdrawal(f.ctx, f.db, ps[0], vid, pid))

	owner, err := f.objects.OwnerOf(f.db, owned)
	require.NoError(t, err)
	assert.Equal(t, alice, owner)
	ids, err := f.objects.ObjectsOf(f.db, tr.Address)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestProposalQueries(t *testing.T) {
	f := newFixture(t)
	ps := conditions(3)
	vid := f.newVault(t, ps[0], ps[1:], 2, 2)
	add := func() ProposalRequest {
		return ProposalRequest{AddParticipants: []weave.Address{weavetest.NewCondition().Address()}}
	}

	draft, err := f.ctrl.CreateProposal(f.ctx, f.db, ps[0], vid, add())
	require.NoError(t, err)
	open := f.posted(t, ps[0], vid, add())
	approved := f.posted(t, ps[1], vid, add())
	f.vote(t, vid, approved, true, ps[0], ps[1])
	cancelled := f.posted(t, ps[2], vid, add())
	f.vote(t, vid, cancelled, false, ps[0], ps[1])
	executed := f.posted(t, ps[2], vid, add())
	f.vote(t, vid, executed, true, ps[0], ps[2])
	require.NoError(t, f.ctrl.ExecuteMembershipChange(f.ctx, f.db, ps[0], vid, executed))

	pending, err := f.ctrl.PendingProposals(f.db, vid)
	require.NoError(t, err)
	assert.Equal(t, []uint64{open, approved}, pending)

	ready, err := f.ctrl.ApprovedProposals(f.db, vid)
	require.NoError(t, err)
	assert.Equal(t, []uint64{approved}, ready)

	view, err := f.ctrl.ProposalDetails(f.db, vid, cancelled)
	require.NoError(t, err)
	assert.True(t, view.Cancelled)
	assert.False(t, view.Approved)
	assert.Equal(t, uint64(2), view.Cancellations)
	assert.Equal(t, AddParticipantsKind, view.Kind)

	view, err = f.ctrl.ProposalDetails(f.db, vid, draft)
	require.NoError(t, err)
	assert.False(t, view.Posted)
	assert.Equal(t, ps[0].Address(), view.Creator)

	_, err = f.ctrl.PendingProposals(f.db, 42)
	assert.True(t, ErrVaultNotFound.Is(err))
}
