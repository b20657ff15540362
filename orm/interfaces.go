package orm

import (
	"github.com/iov-one/multivault"
)

// Model is implemented by any entity that can be stored using ModelBucket.
type Model interface {
	weave.Persistent
	// Validate returns error if the model is not in a valid state to
	// save to the db (eg. field missing, out of range, ...)
	Validate() error
}

// ModelSlicePtr represents a pointer to a slice of models. Think of it as
// *[]Model Because of Go type system, using []Model type would not work for us.
// Instead we use a placeholder type and the validation is done during the
// runtime.
type ModelSlicePtr interface{}

// Indexer calculates the secondary index key for a given model. Returning a
// nil key excludes the model from the index.
type Indexer func(Model) ([]byte, error)

// MultiKeyIndexer calculates the secondary index keys for a given model
type MultiKeyIndexer func(Model) ([][]byte, error)
