package errors

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

// Root errors shared by all packages. Extensions register their own codes,
// starting at 1000.
var (
	ErrUnauthorized = Register(2, "unauthorized")
	ErrNotFound     = Register(3, "not found")

	// ErrMsg is returned for call data that cannot be decoded or routed.
	ErrMsg = Register(4, "invalid message")

	// ErrModel is returned when a stored model fails validation.
	ErrModel     = Register(5, "invalid model")
	ErrDuplicate = Register(6, "duplicate")

	// ErrHuman signals a code path that correct code never reaches.
	ErrHuman = Register(7, "coding error")

	ErrEmpty              = Register(8, "value is empty")
	ErrType               = Register(10, "invalid type")
	ErrInsufficientAmount = Register(11, "insufficient amount")
	ErrInput              = Register(13, "invalid input")
	ErrOverflow           = Register(14, "an operation cannot be completed due to value overflow")

	// ErrDatabase wraps failures of the underlying storage.
	ErrDatabase     = Register(15, "database")
	ErrIteratorDone = Register(16, "iterator is done")

	// ErrPanic is the root of errors recovered from a panic. Its details
	// are never shown outside of debug mode.
	ErrPanic = Register(111222, "panic")
)

// Register declares a root error with a code unique in the program. It
// panics if the code is taken, so call it only from package level variable
// declarations.
func Register(code uint32, description string) *Error {
	if e, ok := usedCodes[code]; ok {
		panic(fmt.Sprintf("error with code %d is already registered: %q", code, e.desc))
	}
	err := &Error{code: code, desc: description}
	usedCodes[code] = err
	return err
}

// Code 1 is reserved for errors without a code.
var usedCodes = map[uint32]*Error{
	internalABCICode: {code: internalABCICode, desc: internalABCILog},
}

// Error is a root error. Errors created at runtime wrap one of them, which
// gives every failure a code and a description safe to show to a client.
type Error struct {
	code uint32
	desc string
}

func (e Error) Error() string {
	return e.desc
}

// ABCICode returns the registered code.
func (e Error) ABCICode() uint32 {
	return e.code
}

// New is a shortcut for Wrap(e, description).
func (e *Error) New(description string) error {
	return Wrap(e, description)
}

// Newf is New with formatting.
func (e *Error) Newf(description string, args ...interface{}) error {
	return e.New(fmt.Sprintf(description, args...))
}

// Is reports whether err is this root error, after unwrapping any number
// of wraps. For a group created with Append it is enough that one member
// matches. A nil kind matches only a nil error, including typed nils.
func (kind *Error) Is(err error) bool {
	if kind == nil {
		return errIsNil(err)
	}
	for err != nil {
		if err == kind {
			return true
		}
		if u, ok := err.(unpacker); ok {
			for _, e := range u.Unpack() {
				if kind.Is(e) {
					return true
				}
			}
			return false
		}
		c, ok := err.(causer)
		if !ok {
			return false
		}
		err = c.Cause()
	}
	return false
}

// Wrap adds description in front of the message of err. The root error,
// and so the code, stays the same. Errors without a code are reported as
// internal. Wrapping nil returns nil, so the result of a call can be
// wrapped without checking it first.
func Wrap(err error, description string) error {
	if errIsNil(err) {
		return nil
	}
	// Only the innermost wrap records the stack.
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	return &wrappedError{parent: err, msg: description}
}

// Wrapf is Wrap with formatting.
func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

type wrappedError struct {
	msg    string
	parent error
}

func (e *wrappedError) Error() string {
	return fmt.Sprintf("%s: %s", e.msg, e.parent.Error())
}

func (e *wrappedError) Cause() error {
	return e.parent
}

// Recover stops a panic and stores it in err as an ErrPanic. It must be
// called with defer.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

// WithType wraps err with the Go type of obj, for unexpected messages and
// models.
func WithType(err error, obj interface{}) error {
	return Wrap(err, fmt.Sprintf("%T", obj))
}

type causer interface {
	Cause() error
}

// errIsNil is true for nil and for a typed nil pointer, like a nil *Error
// returned as an error.
func errIsNil(err error) bool {
	if err == nil {
		return true
	}
	if val := reflect.ValueOf(err); val.Kind() == reflect.Ptr {
		return val.IsNil()
	}
	return false
}
