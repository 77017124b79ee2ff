/*
Package errors implements the error handling used across quorum.

Every failure that is reported to a client must be rooted in one of the
registered errors. The most common ones are declared in this package,
extensions register their own using Register(code, description) during
package initialization. The description of a registered error is the reason
string a client sees, for example "only an owner" or "transaction failure".

For creating an instance wrap the root error at the point of creation
using ErrXyz.New("..."), Wrap(err, "...") or Field(name, err, "..."). The
most inner wrap attaches a stack trace.

Once you have an error, you can use fmt.Printf/Sprintf to get more context

	%s is just the error message
	%+v is the full stack trace
	%v appends a compressed [filename:line] where the error was created

Use ErrXyz.Is(err) to test the kind of an error, no matter how many times it
was wrapped. ABCIInfo returns the code and a safe to display message.
*/
package errors
