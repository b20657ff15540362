package utils

import (
	"context"
	"testing"

	"github.com/iov-one/multivault/errors"
	"github.com/iov-one/multivault/store"
	"github.com/iov-one/multivault/weavetest"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics("test", reg)

	ctx := context.Background()
	db := store.MemStore()
	tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "vault/vote"}}

	_, _ = m.Deliver(ctx, db, tx, &weavetest.Handler{})
	_, _ = m.Deliver(ctx, db, tx, &weavetest.Handler{})
	_, _ = m.Deliver(ctx, db, tx, &weavetest.Handler{DeliverErr: errors.ErrUnauthorized})
	_, _ = m.Check(ctx, db, tx, &weavetest.Handler{})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Requests.WithLabelValues("vault/vote", "deliver", "0")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("vault/vote", "deliver", "2")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("vault/vote", "check", "0")))

	families, err := reg.Gather()
	assert.NoError(t, err)
	assert.Len(t, families, 2)
}
