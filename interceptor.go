package resourceful

import (
	"context"
	"net/http"
)

// CallInfo describes the action invocation an interceptor is observing.
type CallInfo struct {
	Endpoint string
	Action   string
	Method   string
	URL      string
	IsArray  bool

	// Options carries the opaque per-action options set via WithOption.
	Options map[string]any
}

// HandlerFunc represents the next step in an interceptor chain. It is passed
// to [UnaryInterceptor] functions to invoke the next interceptor or the
// underlying transport.
type HandlerFunc func(ctx context.Context, req *http.Request) (*http.Response, error)

// UnaryInterceptor is a hook that wraps the single transport call an action
// makes. This is the one pre/post hook point the layer exposes.
//
//	func timing(ctx context.Context, info *resourceful.CallInfo, req *http.Request, next resourceful.HandlerFunc) (*http.Response, error) {
//	    start := time.Now()
//	    res, err := next(ctx, req)
//	    log.Printf("%s.%s took %v", info.Endpoint, info.Action, time.Since(start))
//	    return res, err
//	}
//
// Interceptors can inspect or modify the request before calling next,
// inspect the response after, or short-circuit by returning without calling
// next. They must not retry: the layer's contract is one transport call per
// invoked action.
type UnaryInterceptor func(ctx context.Context, info *CallInfo, req *http.Request, next HandlerFunc) (*http.Response, error)

// chainInterceptors combines multiple interceptors into a single one.
// The first interceptor in the slice is the outer-most one (runs first).
func chainInterceptors(interceptors []UnaryInterceptor) UnaryInterceptor {
	if len(interceptors) == 0 {
		return nil
	}
	if len(interceptors) == 1 {
		return interceptors[0]
	}
	return func(ctx context.Context, info *CallInfo, req *http.Request, next HandlerFunc) (*http.Response, error) {
		chain := next
		for i := len(interceptors) - 1; i >= 1; i-- {
			current := interceptors[i]
			inner := chain
			chain = func(ctx context.Context, req *http.Request) (*http.Response, error) {
				return current(ctx, info, req, inner)
			}
		}
		return interceptors[0](ctx, info, req, chain)
	}
}
