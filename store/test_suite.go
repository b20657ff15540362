package store

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/iov-one/multivault/weavetest/assert"
)

// TestSuite runs the same checks against any CacheableKVStore. The btree
// and iavl stores both back the engine, and its savepoints rely on both
// layering caches the same way.
type TestSuite struct {
	makeBase TestStoreConstructor
}

type TestStoreConstructor func() (base CacheableKVStore, cleanup func())

func NewTestSuite(constructor TestStoreConstructor) *TestSuite {
	return &TestSuite{
		makeBase: constructor,
	}
}

// GetSet checks that writes to a cache are visible only in that cache until
// it is written, and never once it is discarded.
func (s *TestSuite) GetSet(t *testing.T) {
	base, cleanup := s.makeBase()
	defer cleanup()

	vault, v1 := []byte("vault:1"), []byte("alice,bob")
	assertGetHas(t, base, vault, nil, false)
	assert.Nil(t, base.Set(vault, v1))
	assertGetHas(t, base, vault, v1, true)

	cache := base.CacheWrap()
	assertGetHas(t, cache, vault, v1, true)

	proposal, p1 := []byte("proposal:1:0"), []byte("posted")
	assert.Nil(t, cache.Set(proposal, p1))
	assertGetHas(t, cache, proposal, p1, true)
	assertGetHas(t, base, proposal, nil, false)

	assert.Nil(t, cache.Write())
	assertGetHas(t, base, vault, v1, true)
	assertGetHas(t, base, proposal, p1, true)

	discarded := base.CacheWrap()
	vote := []byte("vote:1:0:alice")
	assert.Nil(t, discarded.Set(vote, []byte("yes")))
	discarded.Discard()
	assertGetHas(t, base, vote, nil, false)

	deleting := base.CacheWrap()
	assert.Nil(t, deleting.Delete(vault))
	assertGetHas(t, deleting, vault, nil, false)
	assertGetHas(t, base, vault, v1, true)
	assert.Nil(t, deleting.Write())
	assertGetHas(t, base, vault, nil, false)
	assertGetHas(t, base, proposal, p1, true)
}

// Savepoints checks caches wrapped in caches: a discarded inner cache
// leaves the outer one untouched, and an inner cache written into a
// discarded outer one never reaches the base.
func (s *TestSuite) Savepoints(t *testing.T) {
	cases := map[string]struct {
		writeInner bool
		writeOuter bool
		want       []Model
	}{
		"inner and outer written": {
			writeInner: true,
			writeOuter: true,
			want:       []Model{Pair([]byte("fee"), []byte("paid")), Pair([]byte("vault"), []byte("created"))},
		},
		"inner discarded": {
			writeOuter: true,
			want:       []Model{Pair([]byte("fee"), []byte("paid")), Pair([]byte("vault"), nil)},
		},
		"outer discarded": {
			writeInner: true,
			want:       []Model{Pair([]byte("fee"), nil), Pair([]byte("vault"), nil)},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			base, cleanup := s.makeBase()
			defer cleanup()

			outer := base.CacheWrap()
			assert.Nil(t, outer.Set([]byte("fee"), []byte("paid")))

			inner := outer.CacheWrap()
			assert.Nil(t, inner.Set([]byte("vault"), []byte("created")))
			assertGetHas(t, inner, []byte("fee"), []byte("paid"), true)
			if tc.writeInner {
				assert.Nil(t, inner.Write())
			} else {
				inner.Discard()
			}

			if tc.writeOuter {
				assert.Nil(t, outer.Write())
			} else {
				outer.Discard()
			}

			for _, m := range tc.want {
				assertGetHas(t, base, m.Key, m.Value, m.Value != nil)
			}
		})
	}
}

// CacheConflicts checks a child cache overwriting and deleting values its
// parent holds.
func (s *TestSuite) CacheConflicts(t *testing.T) {
	ks := seqModels("k", 4, "")
	k0, k1, k2, k3 := ks[0].Key, ks[1].Key, ks[2].Key, ks[3].Key

	cases := map[string]struct {
		parentOps     []Op
		childOps      []Op
		parentQueries []Model // Key is what we query, Value is what we expect
		childQueries  []Model // Key is what we query, Value is what we expect
	}{
		"overwrite one, delete another, add a third": {
			parentOps:     []Op{SetOp(k1, []byte("1")), SetOp(k2, []byte("2"))},
			childOps:      []Op{SetOp(k1, []byte("11")), SetOp(k3, []byte("7")), DelOp(k2)},
			parentQueries: []Model{Pair(k1, []byte("1")), Pair(k2, []byte("2")), Pair(k3, nil)},
			childQueries:  []Model{Pair(k1, []byte("11")), Pair(k2, nil), Pair(k3, []byte("7"))},
		},
		"delete then set again": {
			parentOps:     []Op{SetOp(k0, []byte("old"))},
			childOps:      []Op{DelOp(k0), SetOp(k0, []byte("new"))},
			parentQueries: []Model{Pair(k0, []byte("old"))},
			childQueries:  []Model{Pair(k0, []byte("new"))},
		},
		"set then delete": {
			childOps:     []Op{SetOp(k0, []byte("tmp")), DelOp(k0)},
			childQueries: []Model{Pair(k0, nil)},
		},
		"delete a missing key": {
			parentOps:     []Op{SetOp(k1, []byte("1"))},
			childOps:      []Op{DelOp(k2)},
			parentQueries: []Model{Pair(k1, []byte("1")), Pair(k2, nil)},
			childQueries:  []Model{Pair(k1, []byte("1")), Pair(k2, nil)},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			parent, cleanup := s.makeBase()
			defer cleanup()

			for _, op := range tc.parentOps {
				assert.Nil(t, op.Apply(parent))
			}

			child := parent.CacheWrap()
			for _, op := range tc.childOps {
				assert.Nil(t, op.Apply(child))
			}

			for _, q := range tc.parentQueries {
				assertGetHas(t, parent, q.Key, q.Value, q.Value != nil)
			}
			for _, q := range tc.childQueries {
				assertGetHas(t, child, q.Key, q.Value, q.Value != nil)
			}

			assert.Nil(t, child.Write())
			for _, q := range tc.childQueries {
				assertGetHas(t, parent, q.Key, q.Value, q.Value != nil)
			}
		})
	}
}

// Iterate checks ranged iteration in both directions over a cache merged
// with its parent, including overwritten and deleted keys.
func (s *TestSuite) Iterate(t *testing.T) {
	const size = 30

	child := seqModels("p", size, "c")
	parent := seqModels("q", size, "p")
	both := sortModels(append(append([]Model{}, child...), parent...))

	ms := seqModels("r", 4, "v")
	a, b, c, d := ms[0], ms[1], ms[2], ms[3]
	a2, b2 := Pair(a.Key, []byte("a2")), Pair(b.Key, []byte("b2"))

	cases := map[string]struct {
		pre     []Op
		child   []Op
		queries []rangeQuery
	}{
		"child only": {
			child: append(makeSetOps(child...), makeDelOps(seqModels("x", 5, "")...)...),
			queries: []rangeQuery{
				{nil, nil, false, child},
				{child[10].Key, nil, false, child[10:]},
				{nil, child[22].Key, false, child[:22]},
				{child[7].Key, child[18].Key, false, child[7:18]},
				{nil, nil, true, reverse(child)},
				{child[24].Key, nil, true, reverse(child[24:])},
				{nil, child[9].Key, true, reverse(child[:9])},
				{child[6].Key, child[26].Key, true, reverse(child[6:26])},
			},
		},
		"parent only": {
			pre: makeSetOps(parent...),
			queries: []rangeQuery{
				{nil, nil, false, parent},
				{parent[3].Key, parent[5].Key, false, parent[3:5]},
				{nil, nil, true, reverse(parent)},
			},
		},
		"child and parent combined": {
			pre:   makeSetOps(parent...),
			child: makeSetOps(child...),
			queries: []rangeQuery{
				{nil, nil, false, both},
				{both[17].Key, both[48].Key, false, both[17:48]},
				{nil, nil, true, reverse(both)},
				{both[6].Key, both[36].Key, true, reverse(both[6:36])},
			},
		},
		"child overwrites parent": {
			pre:   makeSetOps(a, b, c),
			child: makeSetOps(a2, b2, d),
			queries: []rangeQuery{
				{nil, nil, false, []Model{a2, b2, c, d}},
				{b.Key, d.Key, false, []Model{b2, c}},
				{nil, nil, true, []Model{d, c, b2, a2}},
			},
		},
		"child deletes parent": {
			pre:   makeSetOps(a, c, d),
			child: makeDelOps(a, b, d),
			queries: []rangeQuery{
				{nil, nil, false, []Model{c}},
				{nil, c.Key, false, nil},
				{nil, nil, true, []Model{c}},
			},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			base, cleanup := s.makeBase()
			defer cleanup()

			for _, op := range tc.pre {
				assert.Nil(t, op.Apply(base))
			}
			cache := base.CacheWrap()
			for _, op := range tc.child {
				assert.Nil(t, op.Apply(cache))
			}
			for _, q := range tc.queries {
				q.verify(t, cache)
			}
		})
	}
}

func assertGetHas(t testing.TB, kv ReadOnlyKVStore, key, val []byte, has bool) {
	t.Helper()
	got, err := kv.Get(key)
	assert.Nil(t, err)
	assert.Equal(t, val, got)
	exists, err := kv.Has(key)
	assert.Nil(t, err)
	assert.Equal(t, has, exists)
}

// seqModels returns count models with ordered keys under the given prefix.
// An empty value prefix leaves the values nil.
func seqModels(keyPrefix string, count int, valuePrefix string) []Model {
	models := make([]Model, count)
	for i := range models {
		models[i].Key = []byte(fmt.Sprintf("%s:%04d", keyPrefix, i))
		if valuePrefix != "" {
			models[i].Value = []byte(fmt.Sprintf("%s%d", valuePrefix, i))
		}
	}
	return models
}

// rangeQuery checks the results of iteration.
type rangeQuery struct {
	start    []byte
	end      []byte
	reverse  bool
	expected []Model
}

func (q rangeQuery) verify(t testing.TB, kv ReadOnlyKVStore) {
	t.Helper()
	var (
		iter Iterator
		err  error
	)
	if q.reverse {
		iter, err = kv.ReverseIterator(q.start, q.end)
	} else {
		iter, err = kv.Iterator(q.start, q.end)
	}
	assert.Nil(t, err)
	defer iter.Close()

	for i, want := range q.expected {
		if !iter.Valid() {
			t.Fatalf("iterator exhausted after %d of %d items", i, len(q.expected))
		}
		if !bytes.Equal(want.Key, iter.Key()) {
			t.Fatalf("item %d: want key %q, got %q", i, want.Key, iter.Key())
		}
		assert.Equal(t, want.Value, iter.Value())
		assert.Nil(t, iter.Next())
	}
	if iter.Valid() {
		t.Fatalf("unexpected extra key %q", iter.Key())
	}
}

// reverse returns a copy of the slice with elements in reverse order
func reverse(models []Model) []Model {
	res := make([]Model, len(models))
	for i, m := range models {
		res[len(models)-1-i] = m
	}
	return res
}

func makeSetOps(ms ...Model) []Op {
	res := make([]Op, len(ms))
	for i, m := range ms {
		res[i] = SetOp(m.Key, m.Value)
	}
	return res
}

func makeDelOps(ms ...Model) []Op {
	res := make([]Op, len(ms))
	for i, m := range ms {
		res[i] = DelOp(m.Key)
	}
	return res
}
