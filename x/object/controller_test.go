package object

import (
	"context"
	"testing"

	"github.com/iov-one/multivault"
	"github.com/iov-one/multivault/app"
	"github.com/iov-one/multivault/errors"
	"github.com/iov-one/multivault/store"
	"github.com/iov-one/multivault/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransfer(t *testing.T) {
	owner := weavetest.NewCondition()
	stranger := weavetest.NewCondition()
	dst := weavetest.NewCondition().Address()

	cases := map[string]struct {
		from      weave.Condition
		id        uint64
		to        weave.Address
		wantErr   *errors.Error
		wantOwner weave.Address
	}{
		"owner transfers": {
			from: owner, id: 1, to: dst,
			wantOwner: dst,
		},
		"stranger cannot transfer": {
			from: stranger, id: 1, to: dst,
			wantErr:   ErrNotOwner,
			wantOwner: owner.Address(),
		},
		"missing object": {
			from: owner, id: 2, to: dst,
			wantErr:   errors.ErrNotFound,
			wantOwner: owner.Address(),
		},
		"invalid recipient": {
			from: owner, id: 1, to: weave.Address("nope"),
			wantErr:   errors.ErrInput,
			wantOwner: owner.Address(),
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			c := NewController(NewBucket())
			id, err := c.Create(db, owner.Address(), "ipfs://cat")
			require.NoError(t, err)
			require.Equal(t, uint64(1), id)

			if err := c.Transfer(db, tc.from, tc.id, tc.to); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			got, err := c.OwnerOf(db, 1)
			require.NoError(t, err)
			assert.Equal(t, tc.wantOwner, got)
		})
	}
}

func TestObjectsOf(t *testing.T) {
	db := store.MemStore()
	c := NewController(NewBucket())
	alice := weavetest.NewCondition()
	bob := weavetest.NewCondition().Address()

	for i := 0; i < 3; i++ {
		_, err := c.Create(db, alice.Address(), "")
		require.NoError(t, err)
	}
	require.NoError(t, c.Transfer(db, alice, 2, bob))

	ids, err := c.ObjectsOf(db, alice.Address())
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 3}, ids)
	ids, err = c.ObjectsOf(db, bob)
	require.NoError(t, err)
	assert.Equal(t, []uint64{2}, ids)
}

func TestHandlersAndGenesis(t *testing.T) {
	alice := weavetest.NewCondition()
	bob := weavetest.NewCondition().Address()
	db := store.MemStore()

	opts := weave.Options{"object": []byte(`[{"owner": "` + alice.Address().String() + `", "uri": "ipfs://genesis"}]`)}
	require.NoError(t, (Initializer{}).FromGenesis(opts, db))

	c := NewController(NewBucket())
	rt := app.NewRouter()
	RegisterRoutes(rt, &weavetest.Auth{Signer: alice}, c)
	ctx := context.Background()

	_, err := rt.Deliver(ctx, db, &weavetest.Tx{Msg: &CreateMsg{URI: "ipfs://second"}})
	require.NoError(t, err)
	_, err = rt.Deliver(ctx, db, &weavetest.Tx{Msg: &TransferMsg{ObjectID: 2, Recipient: bob}})
	require.NoError(t, err)

	got, err := c.OwnerOf(db, 2)
	require.NoError(t, err)
	assert.Equal(t, bob, got)
	got, err = c.OwnerOf(db, 1)
	require.NoError(t, err)
	assert.Equal(t, alice.Address(), got)

	_, err = rt.Deliver(ctx, db, &weavetest.Tx{Msg: &TransferMsg{ObjectID: 2, Recipient: bob}})
	assert.True(t, ErrNotOwner.Is(err))
}
