package errors

import (
	"fmt"
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// If no errors or only nil values are given, nil is returned. If only one
// non-nil error is given, that error is returned.
func Append(errs ...error) error {
	var flat []error
	for _, err := range errs {
		if errIsNil(err) {
			continue
		}
		if m, ok := err.(multiErr); ok {
			flat = append(flat, m...)
			continue
		}
		flat = append(flat, err)
	}
	switch len(flat) {
	case 0:
		return nil
	case 1:
		return flat[0]
	default:
		return multiErr(flat)
	}
}

// multiErr is a group of errors that failed independently, for example when
// validating all fields of a model.
type multiErr []error

var _ unpacker = multiErr(nil)

func (m multiErr) Error() string {
	lines := make([]string, len(m))
	for i, err := range m {
		lines[i] = fmt.Sprintf("* %s", err)
	}
	return fmt.Sprintf("%d errors occurred:\n\t%s", len(m), strings.Join(lines, "\n\t"))
}

// ABCICode returns the code of the first error, consistent with the fail
// fast approach.
func (m multiErr) ABCICode() uint32 {
	return abciCode(m[0])
}

// Unpack returns all errors grouped by this instance.
func (m multiErr) Unpack() []error {
	return m
}

// unpacker is implemented by errors that group other errors.
type unpacker interface {
	Unpack() []error
}
