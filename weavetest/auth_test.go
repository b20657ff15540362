package weavetest

import (
	"context"
	"testing"

	"github.com/iov-one/multivault"
	"github.com/iov-one/multivault/weavetest/assert"
)

func TestAuth(t *testing.T) {
	creator, alice, bob := NewCondition(), NewCondition(), NewCondition()

	cases := map[string]struct {
		auth      Auth
		want      []weave.Condition
		wantFirst weave.Condition
	}{
		"nobody signed": {
			auth: Auth{},
			want: nil,
		},
		"single signer": {
			auth:      Auth{Signer: creator},
			want:      []weave.Condition{creator},
			wantFirst: creator,
		},
		"participants only": {
			auth:      Auth{Signers: []weave.Condition{alice, bob}},
			want:      []weave.Condition{alice, bob},
			wantFirst: alice,
		},
		"signer goes last": {
			auth:      Auth{Signer: creator, Signers: []weave.Condition{alice, bob}},
			want:      []weave.Condition{alice, bob, creator},
			wantFirst: alice,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got := tc.auth.GetConditions(nil)
			assert.Equal(t, tc.want, got)
			if tc.wantFirst != nil && !got[0].Equals(tc.wantFirst) {
				t.Fatalf("want %s as the main signer, got %s", tc.wantFirst, got[0])
			}
			for i, c := range tc.want {
				if !tc.auth.HasAddress(nil, c.Address()) {
					t.Errorf("condition %d (%s) address should be present", i, c)
				}
			}
			if tc.auth.HasAddress(nil, NewCondition().Address()) {
				t.Fatal("random condition must not be present")
			}
		})
	}
}

func TestCtxAuth(t *testing.T) {
	a := CtxAuth{Key: "auth"}
	participants := []weave.Condition{NewCondition(), NewCondition()}

	empty := context.Background()
	assert.Equal(t, []weave.Condition(nil), a.GetConditions(empty))
	if a.HasAddress(empty, participants[0].Address()) {
		t.Fatal("empty context must not authenticate anybody")
	}

	ctx := a.SetConditions(empty, participants...)
	assert.Equal(t, participants, a.GetConditions(ctx))
	for i, p := range participants {
		if !a.HasAddress(ctx, p.Address()) {
			t.Errorf("condition %d (%s) address should be present", i, p)
		}
	}
	if a.HasAddress(ctx, NewCondition().Address()) {
		t.Fatal("random condition must not be present")
	}

	// Another key does not see these conditions.
	other := CtxAuth{Key: "other"}
	assert.Equal(t, []weave.Condition(nil), other.GetConditions(ctx))

	assert.Panics(t, func() {
		other.GetConditions(context.WithValue(ctx, "other", "not conditions"))
	})
}
