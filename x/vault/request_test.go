package vault

import (
	"fmt"
	"testing"

	"github.com/iov-one/multivault"
	"github.com/iov-one/multivault/errors"
	"github.com/iov-one/multivault/x/cash"
	"github.com/stretchr/testify/assert"
)

func TestProposalRequestAction(t *testing.T) {
	a := weave.NewAddress([]byte("a"))
	b := weave.NewAddress([]byte("b"))

	cases := map[string]struct {
		req     ProposalRequest
		want    Action
		wantErr *errors.Error
	}{
		"nothing requested": {
			wantErr: ErrOneActionPerProposal,
		},
		"add participants": {
			req:  ProposalRequest{AddParticipants: []weave.Address{a, b}},
			want: AddParticipantsAction{Participants: []weave.Address{a, b}},
		},
		"remove participants": {
			req:  ProposalRequest{RemoveParticipants: []weave.Address{a}},
			want: RemoveParticipantsAction{Participants: []weave.Address{a}},
		},
		"duplicated participant": {
			req:     ProposalRequest{AddParticipants: []weave.Address{a, b, a}},
			wantErr: ErrDuplicateParticipants,
		},
		"add and remove": {
			req: ProposalRequest{
				AddParticipants:    []weave.Address{a},
				RemoveParticipants: []weave.Address{b},
			},
			wantErr: ErrOneActionPerProposal,
		},
		"native withdrawal": {
			req:  ProposalRequest{WithdrawNative: NativeTransfer{AssetKind: "IOV", Amount: 4, Recipient: a}},
			want: WithdrawNativeAction{Transfers: []NativeTransfer{{AssetKind: "IOV", Amount: 4, Recipient: a}}},
		},
		"native withdrawal with participants": {
			req: ProposalRequest{
				AddParticipants: []weave.Address{a},
				WithdrawNative:  NativeTransfer{AssetKind: "IOV", Amount: 4, Recipient: a},
			},
			wantErr: ErrOneActionPerProposal,
		},
		"native withdrawal of nothing": {
			req:     ProposalRequest{WithdrawNative: NativeTransfer{AssetKind: "IOV", Recipient: a}},
			wantErr: errors.ErrAmount,
		},
		"native withdrawal of lowercase kind": {
			req:     ProposalRequest{WithdrawNative: NativeTransfer{AssetKind: "eth", Amount: 1, Recipient: a}},
			wantErr: ErrInvalidAssetKind,
		},
		"native withdrawal of invalid kind": {
			req:     ProposalRequest{WithdrawNative: NativeTransfer{AssetKind: "I/O", Amount: 1, Recipient: a}},
			wantErr: ErrInvalidAssetKind,
		},
		"fungible withdrawal from parallel lists": {
			req: ProposalRequest{WithdrawFungible: FungibleRequest{
				AssetIDs:   []string{"gold", "silver"},
				Amounts:    []uint64{1, 2},
				Recipients: []weave.Address{a, b},
			}},
			want: WithdrawFungibleAction{Transfers: []FungibleTransfer{
				{AssetID: "gold", Amount: 1, Recipient: a},
				{AssetID: "silver", Amount: 2, Recipient: b},
			}},
		},
		"fungible withdrawal with too few amounts": {
			req: ProposalRequest{WithdrawFungible: FungibleRequest{
				AssetIDs:   []string{"gold", "silver"},
				Amounts:    []uint64{1},
				Recipients: []weave.Address{a, b},
			}},
			wantErr: ErrLengthMismatch,
		},
		"fungible and collectible withdrawal": {
			req: ProposalRequest{
				WithdrawFungible:    FungibleRequest{Transfers: []FungibleTransfer{{AssetID: "gold", Amount: 1, Recipient: a}}},
				WithdrawCollectible: CollectibleRequest{Transfers: []CollectibleTransfer{{CollectibleID: 1, Amount: 1, Recipient: a}}},
			},
			wantErr: ErrOneActionPerProposal,
		},
		"collectible withdrawal from both forms": {
			req: ProposalRequest{WithdrawCollectible: CollectibleRequest{
				Transfers:      []CollectibleTransfer{{CollectibleID: 1, Amount: 1, Recipient: a}},
				CollectibleIDs: []uint64{2},
				Amounts:        []uint64{3},
				Recipients:     []weave.Address{b},
			}},
			want: WithdrawCollectibleAction{Transfers: []CollectibleTransfer{
				{CollectibleID: 1, Amount: 1, Recipient: a},
				{CollectibleID: 2, Amount: 3, Recipient: b},
			}},
		},
		"collectible withdrawal without id": {
			req: ProposalRequest{WithdrawCollectible: CollectibleRequest{
				Transfers: []CollectibleTransfer{{Amount: 1, Recipient: a}},
			}},
			wantErr: errors.ErrEmpty,
		},
		"object withdrawal": {
			req: ProposalRequest{WithdrawObject: ObjectRequest{
				ObjectIDs:  []uint64{7},
				Recipients: []weave.Address{b},
			}},
			want: WithdrawObjectAction{Transfers: []ObjectTransfer{{ObjectID: 7, Recipient: b}}},
		},
		"object withdrawal without recipients": {
			req:     ProposalRequest{WithdrawObject: ObjectRequest{ObjectIDs: []uint64{7}}},
			wantErr: ErrLengthMismatch,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := tc.req.Action()
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestProposalRequestAnyTwoActions(t *testing.T) {
	a := weave.NewAddress([]byte("a"))

	// Each populates exactly one container of a request.
	fill := []struct {
		name string
		set  func(*ProposalRequest)
	}{
		{"add participants", func(r *ProposalRequest) { r.AddParticipants = []weave.Address{a} }},
		{"remove participants", func(r *ProposalRequest) { r.RemoveParticipants = []weave.Address{a} }},
		{"native", func(r *ProposalRequest) {
			r.WithdrawNative = NativeTransfer{AssetKind: "IOV", Amount: 1, Recipient: a}
		}},
		{"fungible", func(r *ProposalRequest) {
			r.WithdrawFungible = FungibleRequest{AssetIDs: []string{"gold"}, Amounts: []uint64{1}, Recipients: []weave.Address{a}}
		}},
		{"collectible", func(r *ProposalRequest) {
			r.WithdrawCollectible = CollectibleRequest{CollectibleIDs: []uint64{1}, Amounts: []uint64{1}, Recipients: []weave.Address{a}}
		}},
		{"object", func(r *ProposalRequest) {
			r.WithdrawObject = ObjectRequest{ObjectIDs: []uint64{1}, Recipients: []weave.Address{a}}
		}},
	}

	var pairs int
	for i := range fill {
		var single ProposalRequest
		fill[i].set(&single)
		if _, err := single.Action(); err != nil {
			t.Fatalf("%s alone: %+v", fill[i].name, err)
		}

		for j := i + 1; j < len(fill); j++ {
			pairs++
			first, second := fill[i], fill[j]
			t.Run(fmt.Sprintf("%s and %s", first.name, second.name), func(t *testing.T) {
				var r ProposalRequest
				first.set(&r)
				second.set(&r)
				got, err := r.Action()
				if !ErrOneActionPerProposal.Is(err) {
					t.Fatalf("unexpected error: %+v", err)
				}
				assert.Nil(t, got)
			})
		}
	}
	assert.Equal(t, 15, pairs)
}

func TestAssetKindMatchesNativeKinds(t *testing.T) {
	kinds := []string{"IOV", "ETH", "BTC2", "eth", "I/O", "IO", "X", "", "A234567890123456", "A23456789012345", "9AB"}
	for _, kind := range kinds {
		assert.Equal(t, cash.ValidateKind(kind) == nil, validateAssetKind(kind) == nil, kind)
		if err := validateAssetKind(kind); err != nil {
			assert.True(t, ErrInvalidAssetKind.Is(err), kind)
		}
	}
}
