package vault

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/iov-one/multivault"
	"github.com/iov-one/multivault/app"
	"github.com/iov-one/multivault/errors"
	"github.com/iov-one/multivault/orm"
	"github.com/iov-one/multivault/store"
	"github.com/iov-one/multivault/weavetest"
	"github.com/iov-one/multivault/x/cash"
	"github.com/iov-one/multivault/x/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlerFlow(t *testing.T) {
	alice := weavetest.NewCondition()
	bob := weavetest.NewCondition()
	carol := weavetest.NewCondition()
	recipient := weavetest.NewCondition().Address()

	db := store.MemStore()
	native := cash.NewController(cash.NewBucket())
	require.NoError(t, native.Register(db, recipient, "IOV"))
	ctrl := NewController(Collaborators{Native: native})

	auth := &weavetest.CtxAuth{Key: "auth"}
	rt := app.NewRouter()
	RegisterRoutes(rt, auth, ctrl)
	h := app.ChainDecorators(utils.NewActionTagger()).WithHandler(rt)

	deliver := func(signer weave.Condition, msg weave.Msg) *weave.DeliverResult {
		t.Helper()
		ctx := auth.SetConditions(context.Background(), signer)
		tx := &weavetest.Tx{Msg: msg}
		_, err := h.Check(ctx, db, tx)
		require.NoError(t, err)
		res, err := h.Deliver(ctx, db, tx)
		require.NoError(t, err)
		return res
	}

	res := deliver(alice, &CreateVaultMsg{
		Name:                  "treasury",
		Participants:          []weave.Address{bob.Address(), carol.Address()},
		ApprovalThreshold:     2,
		CancellationThreshold: 2,
	})
	assert.Equal(t, orm.EncodeSequence(1), res.Data)
	require.Len(t, res.Events, 1)
	assert.Equal(t, "VaultCreated", res.Events[0].Type)
	action, ok := res.Events[0].Attr(utils.ActionKey)
	assert.True(t, ok)
	assert.Equal(t, "vault/create", action)

	res = deliver(bob, &CreateProposalMsg{
		VaultID: 1,
		Request: ProposalRequest{WithdrawNative: NativeTransfer{AssetKind: "IOV", Amount: 30, Recipient: recipient}},
	})
	assert.Equal(t, orm.EncodeSequence(0), res.Data)
	var types []string
	for _, e := range res.Events {
		types = append(types, e.Type)
	}
	assert.Equal(t, []string{"AssetEnabled", "TransferRequested", "ProposalCreated"}, types)

	res = deliver(bob, &PostProposalMsg{VaultID: 1, ProposalID: 0})
	assert.Equal(t, AuthToken{VaultID: 1, ProposalID: 0}.Bytes(), res.Data)

	tr, err := ctrl.Treasury(db, 1)
	require.NoError(t, err)
	require.NoError(t, native.Issue(db, tr.Address, "IOV", 50))

	deliver(alice, &VoteMsg{VaultID: 1, ProposalID: 0, Approve: true})
	deliver(carol, &VoteMsg{VaultID: 1, ProposalID: 0, Approve: true})
	res = deliver(carol, &ExecuteNativeMsg{VaultID: 1, ProposalID: 0, AssetKind: "IOV"})
	require.Len(t, res.Events, 2)
	assert.Equal(t, "NativeWithdrawn", res.Events[0].Type)
	amount, _ := res.Events[0].Attr("amount")
	assert.Equal(t, "30", amount)
	assert.Equal(t, "ProposalExecuted", res.Events[1].Type)

	got, err := native.Balance(db, recipient, "IOV")
	require.NoError(t, err)
	assert.Equal(t, uint64(30), got)
	got, err = native.Balance(db, tr.Address, "IOV")
	require.NoError(t, err)
	assert.Equal(t, uint64(20), got)
}

func TestHandlerErrors(t *testing.T) {
	alice := weavetest.NewCondition()
	bob := weavetest.NewCondition()

	cases := map[string]struct {
		signer       weave.Condition
		msg          weave.Msg
		wantCheckErr *errors.Error
		wantErr      *errors.Error
	}{
		"not signed": {
			msg:          &VoteMsg{VaultID: 1, Approve: true},
			wantCheckErr: errors.ErrUnauthorized,
			wantErr:      errors.ErrUnauthorized,
		},
		"invalid message": {
			signer:       alice,
			msg:          &VoteMsg{Approve: true},
			wantCheckErr: errors.ErrInput,
			wantErr:      errors.ErrInput,
		},
		"two actions in a proposal": {
			signer: alice,
			msg: &CreateProposalMsg{VaultID: 1, Request: ProposalRequest{
				AddParticipants:    []weave.Address{weavetest.NewCondition().Address()},
				RemoveParticipants: []weave.Address{bob.Address()},
			}},
			wantCheckErr: ErrOneActionPerProposal,
			wantErr:      ErrOneActionPerProposal,
		},
		"vote on a draft": {
			signer:  bob,
			msg:     &VoteMsg{VaultID: 1, ProposalID: 0, Approve: true},
			wantErr: ErrProposalNotPosted,
		},
		"execute a draft": {
			signer:  alice,
			msg:     &ExecuteMembershipMsg{VaultID: 1, ProposalID: 0},
			wantErr: ErrProposalNotPosted,
		},
		"post as someone else": {
			signer:  bob,
			msg:     &PostProposalMsg{VaultID: 1, ProposalID: 0},
			wantErr: ErrNotProposalCreator,
		},
		"no admin configured": {
			signer:  alice,
			msg:     &SetCreationFeeMsg{Fee: 3},
			wantErr: ErrNotAdmin,
		},
		"unknown vault": {
			signer:  alice,
			msg:     &EnableAssetMsg{VaultID: 9, AssetKind: "IOV"},
			wantErr: ErrVaultNotFound,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			f := newFixture(t)
			f.newVault(t, alice, []weave.Condition{bob}, 2, 2)
			_, err := f.ctrl.CreateProposal(f.ctx, f.db, alice, 1, ProposalRequest{
				AddParticipants: []weave.Address{weavetest.NewCondition().Address()},
			})
			require.NoError(t, err)

			auth := &weavetest.Auth{}
			if tc.signer != nil {
				auth.Signer = tc.signer
			}
			rt := app.NewRouter()
			RegisterRoutes(rt, auth, f.ctrl)

			tx := &weavetest.Tx{Msg: tc.msg}
			if _, err := rt.Check(f.ctx, f.db, tx); !tc.wantCheckErr.Is(err) {
				t.Fatalf("unexpected check error: %+v", err)
			}
			if _, err := rt.Deliver(f.ctx, f.db, tx); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected deliver error: %+v", err)
			}
		})
	}
}

func TestMsgsAreRoutable(t *testing.T) {
	rt := app.NewRouter()
	RegisterRoutes(rt, &weavetest.Auth{}, NewController(Collaborators{}))
	db := store.MemStore()
	for _, msg := range Msgs() {
		_, err := rt.Check(context.Background(), db, &weavetest.Tx{Msg: msg})
		// Every message is handled, so the lack of a signer or an
		// invalid empty message is reported instead of a missing route.
		assert.False(t, errors.ErrNotFound.Is(err), msg.Path())
	}
}

func TestCreateProposalMsgJSON(t *testing.T) {
	raw := []byte(`{
		"vault_id": 2,
		"request": {
			"withdraw_fungible": {
				"asset_ids": ["gold"],
				"amounts": [5],
				"recipients": ["` + weave.NewAddress([]byte("r")).String() + `"]
			}
		}
	}`)
	var msg CreateProposalMsg
	require.NoError(t, json.Unmarshal(raw, &msg))
	require.NoError(t, msg.Validate())

	action, err := msg.Request.Action()
	require.NoError(t, err)
	want := WithdrawFungibleAction{Transfers: []FungibleTransfer{
		{AssetID: "gold", Amount: 5, Recipient: weave.NewAddress([]byte("r"))},
	}}
	assert.Equal(t, want, action)
}
