package utils

import (
	"bytes"
	"context"
	"testing"

	"github.com/iov-one/multivault"
	"github.com/iov-one/multivault/errors"
	"github.com/iov-one/multivault/store"
	"github.com/iov-one/multivault/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/tendermint/tendermint/libs/log"
)

func TestLogging(t *testing.T) {
	cases := map[string]struct {
		handler  *weavetest.Handler
		wantErr  bool
		wantLogs []string
	}{
		"success is logged with the path": {
			handler:  &weavetest.Handler{DeliverResult: weave.DeliverResult{Log: "all good"}},
			wantLogs: []string{"I[", "all good", "path=vault/create", "duration="},
		},
		"failure is logged as an error": {
			handler:  &weavetest.Handler{DeliverErr: errors.ErrUnauthorized.New("not you")},
			wantErr:  true,
			wantLogs: []string{"E[", "err=", "not you"},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var buf bytes.Buffer
			ctx := weave.WithLogger(context.Background(), log.NewTMLogger(&buf))
			tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "vault/create"}}

			_, err := NewLogging().Deliver(ctx, store.MemStore(), tx, tc.handler)
			assert.Equal(t, tc.wantErr, err != nil)
			for _, want := range tc.wantLogs {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}
