package orm

import (
	"fmt"
	"reflect"
	"regexp"

	"github.com/iov-one/multivault"
	"github.com/iov-one/multivault/errors"
	"github.com/iov-one/multivault/store"
)

var (
	isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString
	isIndexName  = regexp.MustCompile(`^[a-z_]{1,20}$`).MatchString
)

// ModelBucket stores models of a single type under a common prefix.
type ModelBucket interface {
	// One query the database for a single model instance. Lookup is done
	// by the primary index key. Result is loaded into given destination
	// model.
	// This method returns ErrNotFound if the entity does not exist in the
	// database.
	// If given model type cannot be used to contain stored entity, ErrType
	// is returned.
	One(db weave.ReadOnlyKVStore, key []byte, dest Model) error

	// Put saves given model in the database. Before inserting into
	// database, model is validated using its Validate method.
	// If the key is nil or zero length then a sequence generator is used
	// to create a unique key value.
	// Using a key that already exists in the database cause the value to
	// be overwritten.
	Put(db weave.KVStore, key []byte, m Model) ([]byte, error)

	// Delete removes an entity with given primary key from the database.
	// It returns ErrNotFound if an entity with given key does not exist.
	Delete(db weave.KVStore, key []byte) error

	// Has returns nil if an entity with given primary key value exists. It
	// returns ErrNotFound if no entity can be found.
	Has(db weave.ReadOnlyKVStore, key []byte) error

	// ByIndex returns all objects that secondary index with given name and
	// given key. Main index is always unique but secondary indexes can
	// return more than one value for the same key.
	// All values are set into given destination. It must be a pointer to
	// a slice of models. Primary keys of loaded entities are returned in
	// the same order.
	ByIndex(db weave.ReadOnlyKVStore, indexName string, key []byte, dest ModelSlicePtr) ([][]byte, error)

	// PrefixScan loads all entities whose primary key starts with given
	// prefix into the destination, ordered by the primary key.
	PrefixScan(db weave.ReadOnlyKVStore, prefix []byte, dest ModelSlicePtr) ([][]byte, error)
}

// ModelBucketOption is implemented by any function that can configure
// ModelBucket during creation.
type ModelBucketOption func(mb *modelBucket)

// WithIndex configures the bucket to build an index with given name. All
// entities stored in the bucket are indexed using value returned by the
// indexer function. If an index is unique, there can be only one entity
// referenced per index value.
func WithIndex(name string, indexer Indexer, unique bool) ModelBucketOption {
	return WithMultiKeyIndex(name, asMultiKeyIndexer(indexer), unique)
}

// WithMultiKeyIndex configures the bucket to build an index with given name
// where each entity can be referenced under any number of index values.
func WithMultiKeyIndex(name string, indexer MultiKeyIndexer, unique bool) ModelBucketOption {
	return func(mb *modelBucket) {
		if !isIndexName(name) {
			panic(fmt.Sprintf("illegal index: %s", name))
		}
		if _, ok := mb.indexes[name]; ok {
			panic(fmt.Sprintf("index %q registered twice", name))
		}
		mb.indexes[name] = newCompactIndex(mb.name, name, indexer, unique)
		mb.indexNames = append(mb.indexNames, name)
	}
}

// WithIDSequence configures the bucket to use the given sequence instance for
// generating ID.
func WithIDSequence(s Sequence) ModelBucketOption {
	return func(mb *modelBucket) {
		mb.idSeq = &s
	}
}

// NewModelBucket returns a ModelBucket storing entities of the same type as
// m under the name prefix. Name must be 3 to 10 lowercase letters or
// underscores.
func NewModelBucket(name string, m Model, opts ...ModelBucketOption) ModelBucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("illegal bucket: %s", name))
	}
	tp := reflect.TypeOf(m)
	if tp.Kind() != reflect.Ptr {
		panic(fmt.Sprintf("model must be a pointer, got %T", m))
	}
	mb := &modelBucket{
		name:    name,
		prefix:  []byte(name + ":"),
		model:   tp.Elem(),
		indexes: make(map[string]compactIndex),
	}
	for _, fn := range opts {
		fn(mb)
	}
	return mb
}

type modelBucket struct {
	name    string
	prefix  []byte
	model   reflect.Type
	idSeq   *Sequence
	indexes map[string]compactIndex
	// indexNames keeps registration order so updates are deterministic.
	indexNames []string
}

var _ ModelBucket = (*modelBucket)(nil)

// dbKey is the full key we store in the db, including prefix
func (mb *modelBucket) dbKey(key []byte) []byte {
	l := len(mb.prefix)
	out := make([]byte, l+len(key))
	copy(out, mb.prefix)
	copy(out[l:], key)
	return out
}

func (mb *modelBucket) newModel() Model {
	return reflect.New(mb.model).Interface().(Model)
}

func (mb *modelBucket) load(db weave.ReadOnlyKVStore, key []byte) (Model, error) {
	raw, err := db.Get(mb.dbKey(key))
	if err != nil {
		return nil, errors.Wrap(err, "cannot read from the store")
	}
	if raw == nil {
		return nil, nil
	}
	m := mb.newModel()
	if err := m.Unmarshal(raw); err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "cannot decode %s entity: %s", mb.name, err)
	}
	return m, nil
}

func (mb *modelBucket) One(db weave.ReadOnlyKVStore, key []byte, dest Model) error {
	m, err := mb.load(db, key)
	if err != nil {
		return err
	}
	if m == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}
	if !reflect.TypeOf(m).AssignableTo(reflect.TypeOf(dest)) {
		return errors.Wrapf(errors.ErrType, "%T cannot be represented as %T", m, dest)
	}
	reflect.ValueOf(dest).Elem().Set(reflect.ValueOf(m).Elem())
	return nil
}

func (mb *modelBucket) Put(db weave.KVStore, key []byte, m Model) ([]byte, error) {
	if reflect.TypeOf(m) != reflect.PtrTo(mb.model) {
		return nil, errors.Wrapf(errors.ErrType, "bucket %s cannot store %T", mb.name, m)
	}
	if err := m.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid model")
	}

	if len(key) == 0 {
		if mb.idSeq == nil {
			return nil, errors.Wrap(errors.ErrHuman, "missing key and no sequence configured")
		}
		var err error
		if key, err = mb.idSeq.NextVal(db); err != nil {
			return nil, errors.Wrap(err, "ID sequence")
		}
	}

	raw, err := m.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "cannot serialize model")
	}
	if err := mb.updateIndexes(db, key, m); err != nil {
		return nil, err
	}
	if err := db.Set(mb.dbKey(key), raw); err != nil {
		return nil, errors.Wrap(err, "cannot store in the database")
	}
	return key, nil
}

func (mb *modelBucket) Delete(db weave.KVStore, key []byte) error {
	if err := mb.Has(db, key); err != nil {
		return err
	}
	if err := mb.updateIndexes(db, key, nil); err != nil {
		return err
	}
	if err := db.Delete(mb.dbKey(key)); err != nil {
		return errors.Wrap(err, "cannot delete from the database")
	}
	return nil
}

func (mb *modelBucket) Has(db weave.ReadOnlyKVStore, key []byte) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrNotFound, "zero length key")
	}
	ok, err := db.Has(mb.dbKey(key))
	if err != nil {
		return errors.Wrap(err, "cannot read from the store")
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "%s entity", mb.name)
	}
	return nil
}

func (mb *modelBucket) updateIndexes(db weave.KVStore, key []byte, next Model) error {
	if len(mb.indexes) == 0 {
		return nil
	}
	prev, err := mb.load(db, key)
	if err != nil {
		return err
	}
	if prev == nil && next == nil {
		return nil
	}
	for _, name := range mb.indexNames {
		if err := mb.indexes[name].Update(db, key, prev, next); err != nil {
			return err
		}
	}
	return nil
}

func (mb *modelBucket) ByIndex(db weave.ReadOnlyKVStore, indexName string, key []byte, dest ModelSlicePtr) ([][]byte, error) {
	idx, ok := mb.indexes[indexName]
	if !ok {
		return nil, errors.Wrapf(ErrInvalidIndex, "name %q", indexName)
	}
	refs, err := idx.Keys(db, key)
	if err != nil {
		return nil, err
	}
	models := make([]Model, 0, len(refs))
	for _, ref := range refs {
		m, err := mb.load(db, ref)
		if err != nil {
			return nil, err
		}
		if m == nil {
			return nil, errors.Wrapf(errors.ErrDatabase, "index %s references missing entity %X", indexName, ref)
		}
		models = append(models, m)
	}
	if err := mb.fill(dest, models); err != nil {
		return nil, err
	}
	return refs, nil
}

func (mb *modelBucket) PrefixScan(db weave.ReadOnlyKVStore, prefix []byte, dest ModelSlicePtr) ([][]byte, error) {
	start, end := store.PrefixRange(mb.dbKey(prefix))
	pairs, err := store.ReadAll(db, start, end)
	if err != nil {
		return nil, errors.Wrap(err, "cannot iterate")
	}
	keys := make([][]byte, 0, len(pairs))
	models := make([]Model, 0, len(pairs))
	for _, p := range pairs {
		m := mb.newModel()
		if err := m.Unmarshal(p.Value); err != nil {
			return nil, errors.Wrapf(errors.ErrDatabase, "cannot decode %s entity: %s", mb.name, err)
		}
		keys = append(keys, p.Key[len(mb.prefix):])
		models = append(models, m)
	}
	if err := mb.fill(dest, models); err != nil {
		return nil, err
	}
	return keys, nil
}

// fill appends all models to the slice pointed by dest. The slice can hold
// either models or pointers to models.
func (mb *modelBucket) fill(dest ModelSlicePtr, models []Model) error {
	if dest == nil {
		return nil
	}
	dv := reflect.ValueOf(dest)
	if dv.Kind() != reflect.Ptr || dv.Elem().Kind() != reflect.Slice {
		return errors.Wrapf(errors.ErrType, "destination must be a pointer to a slice, got %T", dest)
	}
	slice := dv.Elem()
	asPointers := slice.Type().Elem().Kind() == reflect.Ptr
	wantElem := mb.model
	if asPointers {
		wantElem = reflect.PtrTo(mb.model)
	}
	if slice.Type().Elem() != wantElem {
		return errors.Wrapf(errors.ErrType, "%T cannot hold %s entities", dest, mb.name)
	}
	for _, m := range models {
		v := reflect.ValueOf(m)
		if !asPointers {
			v = v.Elem()
		}
		slice.Set(reflect.Append(slice, v))
	}
	return nil
}
