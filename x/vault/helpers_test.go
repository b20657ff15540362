package vault

import (
	"context"
	"testing"

	"github.com/iov-one/multivault"
	"github.com/iov-one/multivault/store"
	"github.com/iov-one/multivault/weavetest"
	"github.com/iov-one/multivault/x/cash"
	"github.com/iov-one/multivault/x/collectible"
	"github.com/iov-one/multivault/x/object"
	"github.com/iov-one/multivault/x/token"
	"github.com/stretchr/testify/require"
)

// fixture wires a vault controller to the collaborator extensions over an
// in memory store.
type fixture struct {
	db           weave.KVStore
	ctx          weave.Context
	events       *weave.EventLog
	ctrl         *Controller
	cash         cash.BaseController
	tokens       token.BaseController
	collectibles collectible.BaseController
	objects      object.BaseController
}

func newFixture(t testing.TB) *fixture {
	t.Helper()
	events := &weave.EventLog{}
	f := &fixture{
		db:           store.MemStore(),
		ctx:          weave.WithEventSink(context.Background(), events),
		events:       events,
		cash:         cash.NewController(cash.NewBucket()),
		tokens:       token.NewController(token.NewBucket()),
		collectibles: collectible.NewController(),
		objects:      object.NewController(object.NewBucket()),
	}
	f.ctrl = NewController(Collaborators{
		Native:       f.cash,
		Fungible:     f.tokens,
		Collectibles: f.collectibles,
		Objects:      f.objects,
	})
	return f
}

// newVault creates a vault with the creator and the others as its
// participants.
func (f *fixture) newVault(t testing.TB, creator weave.Condition, others []weave.Condition, approval, cancellation uint64) uint64 {
	t.Helper()
	addrs := make([]weave.Address, len(others))
	for i, o := range others {
		addrs[i] = o.Address()
	}
	id, err := f.ctrl.CreateVault(f.ctx, f.db, creator, "test vault", addrs, approval, cancellation)
	require.NoError(t, err)
	return id
}

// posted creates and posts a proposal.
func (f *fixture) posted(t testing.TB, creator weave.Condition, vaultID uint64, req ProposalRequest) uint64 {
	t.Helper()
	pid, err := f.ctrl.CreateProposal(f.ctx, f.db, creator, vaultID, req)
	require.NoError(t, err)
	_, err = f.ctrl.PostProposal(f.ctx, f.db, creator, vaultID, pid)
	require.NoError(t, err)
	return pid
}

func (f *fixture) vote(t testing.TB, vaultID, proposalID uint64, approve bool, voters ...weave.Condition) {
	t.Helper()
	for _, v := range voters {
		require.NoError(t, f.ctrl.CastVote(f.ctx, f.db, v, vaultID, proposalID, approve))
	}
}

func (f *fixture) treasury(t testing.TB, vaultID uint64) *Treasury {
	t.Helper()
	tr, err := f.ctrl.Treasury(f.db, vaultID)
	require.NoError(t, err)
	return tr
}

// eventTypes returns the types of all events emitted so far.
func (f *fixture) eventTypes() []string {
	var types []string
	for _, e := range f.events.Events() {
		types = append(types, e.Type)
	}
	return types
}

func conditions(n int) []weave.Condition {
	out := make([]weave.Condition, n)
	for i := range out {
		out[i] = weavetest.NewCondition()
	}
	return out
}
