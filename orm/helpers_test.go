package orm

import (
	"github.com/iov-one/multivault/errors"
)

// Counter is a simple model used across the orm tests.
type Counter struct {
	Count  uint64
	Owners [][]byte
}

func (c *Counter) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(c)
}

func (c *Counter) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, c)
}

func (c *Counter) Validate() error {
	if c.Count == 0 {
		return errors.Wrap(errors.ErrEmpty, "count")
	}
	return nil
}

// Other is a model of a different type than Counter.
type Other struct {
	Counter
}

// countIndexer indexes counters by their count value.
func countIndexer(m Model) ([]byte, error) {
	c, ok := m.(*Counter)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", m)
	}
	return EncodeSequence(c.Count), nil
}

// ownersIndexer indexes counters under each of their owners.
func ownersIndexer(m Model) ([][]byte, error) {
	c, ok := m.(*Counter)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", m)
	}
	return c.Owners, nil
}
