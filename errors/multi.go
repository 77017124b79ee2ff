package errors

import (
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// If no error is given, nil is returned. A single error is returned as it
// is. Multiple errors are grouped so that all of them can be inspected with
// Is and FieldErrors.
func Append(errs ...error) error {
	var res multiErr
	for _, e := range errs {
		if errIsNil(e) {
			continue
		}
		if m, ok := e.(multiErr); ok {
			res = append(res, m...)
			continue
		}
		res = append(res, e)
	}
	switch len(res) {
	case 0:
		return nil
	case 1:
		return res[0]
	default:
		return res
	}
}

type multiErr []error

func (m multiErr) Error() string {
	msgs := make([]string, len(m))
	for i, e := range m {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// ABCICode returns the code of the first error in the group.
func (m multiErr) ABCICode() uint32 {
	return abciCode(m[0])
}

// Unpack returns all clubbed errors.
func (m multiErr) Unpack() []error {
	return m
}

// unpacker is implemented by errors that are a group of other errors.
type unpacker interface {
	Unpack() []error
}
