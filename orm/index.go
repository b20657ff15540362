package orm

import (
	"bytes"

	"github.com/iov-one/multivault"
	"github.com/iov-one/multivault/errors"
)

const compactIdxPrefix = "_i."

// compactIndex is an index implementation that stores all indexed entities as
// a set, serialized and stored under single key. This implementation should
// be used only for small sized index collections.
type compactIndex struct {
	name   string
	id     []byte
	unique bool
	index  MultiKeyIndexer
}

// newCompactIndex returns an index of the bucket stored under
// "_i.<bucket>.<name>:". Bucket names cannot contain a dot, so two buckets
// never share an index key space.
func newCompactIndex(bucket, name string, indexer MultiKeyIndexer, unique bool) compactIndex {
	return compactIndex{
		name:   name,
		id:     []byte(compactIdxPrefix + bucket + "." + name + ":"),
		index:  indexer,
		unique: unique,
	}
}

func asMultiKeyIndexer(indexer Indexer) MultiKeyIndexer {
	return func(m Model) ([][]byte, error) {
		key, err := indexer(m)
		switch {
		case err != nil:
			return nil, err
		case key == nil:
			return nil, nil
		}
		return [][]byte{key}, nil
	}
}

// indexKey is the full key we store in the db, including prefix
// We copy into a new array rather than use append, as we don't
// want consecutive calls to overwrite the same byte array.
func (i compactIndex) indexKey(key []byte) []byte {
	l := len(i.id)
	out := make([]byte, l+len(key))
	copy(out, i.id)
	copy(out[l:], key)
	return out
}

// Update moves the reference to the entity with the primary key ref from
// all index values computed for prev to all index values computed for next.
//
// prev == nil means insert
// next == nil means delete
func (i compactIndex) Update(db weave.KVStore, ref []byte, prev, next Model) error {
	if prev == nil && next == nil {
		return errors.Wrap(errors.ErrHuman, "update requires at least one model")
	}

	var prevKeys, nextKeys [][]byte
	var err error
	if prev != nil {
		if prevKeys, err = i.index(prev); err != nil {
			return errors.Wrapf(err, "index %s", i.name)
		}
	}
	if next != nil {
		if nextKeys, err = i.index(next); err != nil {
			return errors.Wrapf(err, "index %s", i.name)
		}
	}

	for _, k := range prevKeys {
		if containsKey(nextKeys, k) {
			continue
		}
		if err := i.remove(db, k, ref); err != nil {
			return err
		}
	}
	for _, k := range nextKeys {
		if containsKey(prevKeys, k) {
			continue
		}
		if err := i.add(db, k, ref); err != nil {
			return err
		}
	}
	return nil
}

func containsKey(keys [][]byte, key []byte) bool {
	for _, k := range keys {
		if bytes.Equal(k, key) {
			return true
		}
	}
	return false
}

func (i compactIndex) refs(db weave.ReadOnlyKVStore, key []byte) (*MultiRef, error) {
	raw, err := db.Get(i.indexKey(key))
	if err != nil {
		return nil, errors.Wrap(err, "cannot read index")
	}
	var refs MultiRef
	if raw == nil {
		return &refs, nil
	}
	if err := refs.Unmarshal(raw); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "cannot decode index")
	}
	return &refs, nil
}

func (i compactIndex) add(db weave.KVStore, key, ref []byte) error {
	refs, err := i.refs(db, key)
	if err != nil {
		return err
	}
	if i.unique && len(refs.Refs) > 0 && !bytes.Equal(refs.Refs[0], ref) {
		return errors.Wrapf(ErrUniqueConstraint, "index %s, key %X", i.name, key)
	}
	if err := refs.Add(ref); err != nil {
		return err
	}
	return i.save(db, key, refs)
}

func (i compactIndex) remove(db weave.KVStore, key, ref []byte) error {
	refs, err := i.refs(db, key)
	if err != nil {
		return err
	}
	if err := refs.Remove(ref); err != nil {
		return errors.Wrapf(err, "index %s, key %X", i.name, key)
	}
	if len(refs.Refs) == 0 {
		return db.Delete(i.indexKey(key))
	}
	return i.save(db, key, refs)
}

func (i compactIndex) save(db weave.KVStore, key []byte, refs *MultiRef) error {
	raw, err := refs.Marshal()
	if err != nil {
		return errors.Wrap(err, "cannot encode index")
	}
	return db.Set(i.indexKey(key), raw)
}

// Keys returns the primary keys of all entities indexed under given key,
// in ascending order.
func (i compactIndex) Keys(db weave.ReadOnlyKVStore, key []byte) ([][]byte, error) {
	refs, err := i.refs(db, key)
	if err != nil {
		return nil, err
	}
	return refs.Refs, nil
}
