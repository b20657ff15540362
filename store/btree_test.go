package store

import (
	"testing"

	"github.com/iov-one/multivault/weavetest/assert"
)

func newMemStoreSuite() *TestSuite {
	return NewTestSuite(func() (CacheableKVStore, func()) {
		return MemStore(), func() {}
	})
}

func TestBTreeCacheGetSet(t *testing.T) {
	newMemStoreSuite().GetSet(t)
}

func TestBTreeCacheConflicts(t *testing.T) {
	newMemStoreSuite().CacheConflicts(t)
}

func TestBTreeCacheSavepoints(t *testing.T) {
	newMemStoreSuite().Savepoints(t)
}

func TestBTreeCacheIterate(t *testing.T) {
	newMemStoreSuite().Iterate(t)
}

func TestBTreeCacheableWrapsPlainStore(t *testing.T) {
	base := MemStore()
	cacheable := BTreeCacheable{base}

	c := cacheable.CacheWrap()
	assert.Nil(t, c.Set([]byte("key"), []byte("value")))

	got, err := base.Get([]byte("key"))
	assert.Nil(t, err)
	assert.Nil(t, got)

	assert.Nil(t, c.Write())
	got, err = base.Get([]byte("key"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("value"), got)
}

func TestBTreeCacheRejectsNilKey(t *testing.T) {
	db := MemStore()
	if err := db.Set(nil, []byte("x")); err == nil {
		t.Fatal("nil key must be rejected")
	}
	if err := db.Delete(nil); err == nil {
		t.Fatal("nil key must be rejected")
	}
}
