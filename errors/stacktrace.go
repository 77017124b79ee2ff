package errors

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

type stackTracer interface {
	error
	StackTrace() errors.StackTrace
}

// stackTrace returns the first found stack trace frame carried by given
// error or any wrapped error. It returns nil if no stack trace is found.
func stackTrace(err error) errors.StackTrace {
	for {
		if st, ok := err.(stackTracer); ok {
			return st.StackTrace()
		}
		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return nil
		}
	}
}

// trimInternal removes the frames of this package wrapping functions and
// of the go runtime. What is left starts at the place the error was
// created.
func trimInternal(st errors.StackTrace) errors.StackTrace {
	var res errors.StackTrace
	for _, f := range st {
		name := fmt.Sprintf("%+s", f)
		if strings.HasPrefix(name, "runtime.") {
			continue
		}
		if strings.HasPrefix(name, thisPkg) && !strings.Contains(name, "_test.go") {
			continue
		}
		res = append(res, f)
	}
	return res
}

const thisPkg = "github.com/iov-one/quorum/errors."

// Format implements fmt.Formatter.
//
//	%s is just the error message
//	%v appends a compressed [filename:line] where the error was created
//	%+v is the message followed by the full stack trace
func (e *wrappedError) Format(s fmt.State, verb rune) {
	if verb != 'v' {
		io.WriteString(s, e.Error())
		return
	}
	stack := trimInternal(stackTrace(e))
	if s.Flag('+') {
		io.WriteString(s, e.Error())
		for _, f := range stack {
			fmt.Fprintf(s, "\n%+v", f)
		}
		return
	}
	if len(stack) == 0 {
		io.WriteString(s, e.Error())
		return
	}
	fmt.Fprintf(s, "%s [%v]", e.Error(), stack[0])
}
