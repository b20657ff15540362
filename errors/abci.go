package errors

import (
	"fmt"
)

const (
	// SuccessABCICode is the code of a response that carries no error.
	SuccessABCICode = 0

	// Errors without a registered code are reported under a single code
	// and, outside of debug mode, a generic log.
	internalABCICode uint32 = 1
	internalABCILog         = "internal error"
)

// ABCIInfo returns the code and log of an ABCI response for err.
//
// Registered errors keep their code and message. Everything else is
// internal: code 1, and the message is replaced unless debug is set.
// A recovered panic keeps its code but never its message outside of debug
// mode, because the message is whatever value the handler panicked with.
func ABCIInfo(err error, debug bool) (uint32, string) {
	if errIsNil(err) {
		return SuccessABCICode, ""
	}
	if debug {
		return abciCode(err), fmt.Sprintf("%+v", err)
	}

	switch code := abciCode(err); {
	case code == internalABCICode:
		return internalABCICode, internalABCILog
	case ErrPanic.Is(err):
		return ErrPanic.code, ErrPanic.desc
	default:
		return code, err.Error()
	}
}

type coder interface {
	ABCICode() uint32
}

// abciCode returns the code of the first error in the chain that declares
// one. Both Cause (pkg/errors) and Unwrap (fmt.Errorf with %w) chains are
// followed.
func abciCode(err error) uint32 {
	if errIsNil(err) {
		return SuccessABCICode
	}
	for !errIsNil(err) {
		if c, ok := err.(coder); ok {
			return c.ABCICode()
		}
		switch e := err.(type) {
		case causer:
			err = e.Cause()
		case interface{ Unwrap() error }:
			err = e.Unwrap()
		default:
			return internalABCICode
		}
	}
	return internalABCICode
}
