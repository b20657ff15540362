package utils

import (
	"context"
	"testing"

	"github.com/iov-one/multivault"
	"github.com/iov-one/multivault/errors"
	"github.com/iov-one/multivault/store"
	"github.com/iov-one/multivault/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSavepoint(t *testing.T) {
	// always write ok, ov before calling functions
	ok, ov := []byte("demo"), []byte("data")
	// some key, value to try to write
	nk, nv := []byte{1, 2, 3}, []byte{4, 5, 6}

	cases := map[string]struct {
		save    weave.Decorator
		failing bool
		check   bool // whether to call Check or Deliver

		written [][]byte
		missing [][]byte
	}{
		"savepoint deactivated, both written": {
			save:    NewSavepoint(),
			failing: true,
			check:   true,
			written: [][]byte{ok, nk},
		},
		"savepoint activated on check rolls back": {
			save:    NewSavepoint().OnCheck(),
			failing: true,
			check:   true,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
		"savepoint activated on deliver rolls back": {
			save:    NewSavepoint().OnDeliver(),
			failing: true,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
		"double activation maintains both behaviors": {
			save:    NewSavepoint().OnDeliver().OnCheck(),
			failing: true,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
		"savepoint on check does not affect deliver": {
			save:    NewSavepoint().OnCheck(),
			failing: true,
			written: [][]byte{ok, nk},
		},
		"success is not rolled back": {
			save:    NewSavepoint().OnCheck().OnDeliver(),
			written: [][]byte{ok, nk},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			ctx := context.Background()
			kv := store.MemStore()
			require.NoError(t, kv.Set(ok, ov))

			h := &weavetest.Handler{WriteKey: nk, WriteValue: nv}
			if tc.failing {
				h.CheckErr = errors.ErrState
				h.DeliverErr = errors.ErrState
			}

			var err error
			if tc.check {
				_, err = tc.save.Check(ctx, kv, nil, h)
			} else {
				_, err = tc.save.Deliver(ctx, kv, nil, h)
			}
			if tc.failing {
				assert.True(t, errors.ErrState.Is(err))
			} else {
				assert.NoError(t, err)
			}

			for _, k := range tc.written {
				has, err := kv.Has(k)
				require.NoError(t, err)
				assert.True(t, has, "%x", k)
			}
			for _, k := range tc.missing {
				has, err := kv.Has(k)
				require.NoError(t, err)
				assert.False(t, has, "%x", k)
			}
		})
	}
}
