package quorumtest

import "github.com/iov-one/quorum"

// Handler is a mock implementation of the quorum.Handler interface.
//
// Set DeliverErr to force error response. Each call is counted.
type Handler struct {
	deliverCall   int
	DeliverResult quorum.DeliverResult
	DeliverErr    error
}

var _ quorum.Handler = (*Handler)(nil)

func (h *Handler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	h.deliverCall++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) CallCount() int {
	return h.deliverCall
}

// Decorator is a mock implementation of the quorum.Decorator interface.
//
// Set DeliverErr to force error response. If not set, the wrapped handler
// is called and its result returned. Each call is counted, regardless of
// the result.
type Decorator struct {
	deliverCall int
	// DeliverErr if set is returned by the Deliver method before calling
	// the wrapped handler.
	DeliverErr error
}

var _ quorum.Decorator = (*Decorator)(nil)

func (d *Decorator) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx, next quorum.Handler) (*quorum.DeliverResult, error) {
	d.deliverCall++
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

func (d *Decorator) CallCount() int {
	return d.deliverCall
}

// Decorate returns a handler that is calling given decorator first.
func Decorate(h quorum.Handler, d quorum.Decorator) quorum.Handler {
	return &decoratedHandler{hn: h, dc: d}
}

type decoratedHandler struct {
	hn quorum.Handler
	dc quorum.Decorator
}

func (d *decoratedHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	return d.dc.Deliver(ctx, db, tx, d.hn)
}

// WriteHandler is a handler that writes a key/value pair to the store and
// returns Err.
type WriteHandler struct {
	Key   []byte
	Value []byte
	Err   error
}

var _ quorum.Handler = WriteHandler{}

func (h WriteHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	return &quorum.DeliverResult{}, h.Err
}

// PanicHandler always panics with given value.
type PanicHandler struct {
	Value interface{}
}

func (h PanicHandler) Deliver(quorum.Context, quorum.KVStore, quorum.Tx) (*quorum.DeliverResult, error) {
	panic(h.Value)
}
