package resourceful

import "context"

// Pending is the asynchronous completion handle returned by Endpoint.Go. It
// resolves exactly once, with either the call's result or its error.
// Cancellation belongs to the context the call was started with; Pending
// adds no timeout or cancellation of its own.
type Pending struct {
	done chan struct{}
	val  any
	err  error
}

func newPending() *Pending {
	return &Pending{done: make(chan struct{})}
}

func (p *Pending) complete(val any, err error) {
	p.val = val
	p.err = err
	close(p.done)
}

// Done returns a channel closed when the call has resolved.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the call resolves or ctx is done. The underlying call
// keeps running if ctx expires first; cancel the call's own context to stop
// it.
func (p *Pending) Wait(ctx context.Context) (any, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-p.done:
		return p.val, p.err
	}
}

// Value returns the result. Valid only after Done is closed.
func (p *Pending) Value() any {
	return p.val
}

// Err returns the call's error, if any. Valid only after Done is closed.
func (p *Pending) Err() error {
	return p.err
}
