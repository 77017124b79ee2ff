package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Field returns an error that describes a problem with a single field of a
// message or a model. Nil is returned if err is nil. The field name follows
// Go naming, nested fields are separated with a dot and list elements are
// referenced by their index, for example Owners.2.
//
// Matching with Is goes through to err, so that the field error can be
// tested against the root error as any other.
func Field(fieldName string, err error, description string, args ...interface{}) error {
	if errIsNil(err) {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	if len(args) != 0 {
		description = fmt.Sprintf(description, args...)
	}
	return &fieldError{field: fieldName, desc: description, parent: err}
}

// AppendField adds a field error for fieldErrOrNil to errorsOrNil. Nothing
// is added if fieldErrOrNil is nil.
func AppendField(errorsOrNil error, fieldName string, fieldErrOrNil error) error {
	return Append(errorsOrNil, Field(fieldName, fieldErrOrNil, ""))
}

type fieldError struct {
	field  string
	desc   string
	parent error
}

func (e *fieldError) Error() string {
	if e.desc != "" {
		return fmt.Sprintf("field %q: %s: %s", e.field, e.desc, e.parent)
	}
	return fmt.Sprintf("field %q: %s", e.field, e.parent)
}

func (e *fieldError) Cause() error  { return e.parent }
func (e *fieldError) Field() string { return e.field }

type fielder interface {
	Field() string
}

// FieldErrors returns all errors created with Field for given field name
// that can be found in err. Grouped errors are searched in order. Once a
// matching field error is found, its cause is not inspected further.
func FieldErrors(err error, fieldName string) []error {
	var found []error
	for !errIsNil(err) {
		if f, ok := err.(fielder); ok && f.Field() == fieldName {
			return append(found, err)
		}
		if group, ok := err.(unpacker); ok {
			for _, e := range group.Unpack() {
				found = append(found, FieldErrors(e, fieldName)...)
			}
			return found
		}
		c, ok := err.(causer)
		if !ok {
			break
		}
		err = c.Cause()
	}
	return found
}
