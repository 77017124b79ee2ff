package errors

import "fmt"

const (
	// SuccessABCICode is the code of a successful operation.
	SuccessABCICode = 0

	// Errors without a registered code are reported with this code and,
	// outside of debug mode, with this message.
	internalABCICode uint32 = 1
	internalABCILog         = "internal error"
)

// ABCIInfo describes err to a client as a code and a log message.
//
// Errors that do not carry a registered code are internal. Their message
// is replaced by "internal error" unless debug is set, so storage and
// coding failures do not leak. In debug mode the log always contains the
// full message followed by the stack trace.
func ABCIInfo(err error, debug bool) (uint32, string) {
	if errIsNil(err) {
		return SuccessABCICode, ""
	}
	code := abciCode(err)
	switch {
	case debug:
		return code, fmt.Sprintf("%+v", err)
	case code == internalABCICode:
		return code, internalABCILog
	default:
		return code, err.Error()
	}
}

type coder interface {
	ABCICode() uint32
}

// abciCode returns the code of the first error in the cause chain that
// provides one.
func abciCode(err error) uint32 {
	if errIsNil(err) {
		return SuccessABCICode
	}
	for {
		if c, ok := err.(coder); ok {
			return c.ABCICode()
		}
		c, ok := err.(causer)
		if !ok {
			return internalABCICode
		}
		err = c.Cause()
	}
}
