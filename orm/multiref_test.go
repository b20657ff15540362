package orm

import (
	"testing"

	"github.com/iov-one/multivault/errors"
	"github.com/iov-one/multivault/weavetest/assert"
)

func TestMultiRefOrdering(t *testing.T) {
	m, err := NewMultiRef([]byte("c"), []byte("a"), []byte("b"))
	assert.Nil(t, err)
	assert.Equal(t, [][]byte{[]byte("a"), []byte("b"), []byte("c")}, m.Refs)

	assert.IsErr(t, errors.ErrDuplicate, m.Add([]byte("b")))
	assert.Nil(t, m.Remove([]byte("b")))
	assert.IsErr(t, errors.ErrNotFound, m.Remove([]byte("b")))
	assert.Equal(t, [][]byte{[]byte("a"), []byte("c")}, m.Refs)

	raw, err := m.Marshal()
	assert.Nil(t, err)
	var back MultiRef
	assert.Nil(t, back.Unmarshal(raw))
	assert.Equal(t, m.Refs, back.Refs)
}
