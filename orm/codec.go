package orm

import (
	amino "github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

// MultiRef is a sorted set of references, used as the value of a secondary
// index entry.
type MultiRef struct {
	Refs [][]byte
}

// Marshal serializes the references.
func (m *MultiRef) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

// Unmarshal loads the references from their serialized form.
func (m *MultiRef) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}
