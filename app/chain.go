package app

import (
	"reflect"

	"github.com/iov-one/quorum"
)

// Decorators is a stack of decorators waiting for the handler they wrap.
type Decorators struct {
	stack []quorum.Decorator
}

// ChainDecorators starts a decorator stack. The first decorator is the
// outermost one, so the ledger stack
//
//	app.ChainDecorators(
//		utils.NewRecovery(),
//		utils.NewLogging(),
//		utils.NewSavepoint(),
//	).WithHandler(invokeHandler{})
//
// recovers from panics raised by the logging and savepoint layers too.
// Nil decorators, including typed nil pointers, are skipped.
func ChainDecorators(ds ...quorum.Decorator) Decorators {
	return Decorators{}.Chain(ds...)
}

// Chain returns a new stack with given decorators appended. The receiver
// is not modified.
func (d Decorators) Chain(ds ...quorum.Decorator) Decorators {
	stack := make([]quorum.Decorator, len(d.stack), len(d.stack)+len(ds))
	copy(stack, d.stack)
	for _, dec := range ds {
		if !isNilDecorator(dec) {
			stack = append(stack, dec)
		}
	}
	return Decorators{stack: stack}
}

func isNilDecorator(d quorum.Decorator) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// WithHandler closes the stack with the final handler.
func (d Decorators) WithHandler(h quorum.Handler) quorum.Handler {
	for i := len(d.stack) - 1; i >= 0; i-- {
		h = decorated{decorator: d.stack[i], next: h}
	}
	return h
}

type decorated struct {
	decorator quorum.Decorator
	next      quorum.Handler
}

func (d decorated) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	return d.decorator.Deliver(ctx, db, tx, d.next)
}
