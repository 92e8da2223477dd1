package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/tavish/resourceful"
)

// RequestIDHeader is the header set by the RequestID interceptor.
const RequestIDHeader = "X-Request-ID"

// RequestID creates an interceptor that stamps every outgoing request with a
// UUID request ID. A request ID already present on the request is left
// alone.
func RequestID() resourceful.UnaryInterceptor {
	return func(ctx context.Context, info *resourceful.CallInfo, req *http.Request, next resourceful.HandlerFunc) (*http.Response, error) {
		if req.Header.Get(RequestIDHeader) == "" {
			req.Header.Set(RequestIDHeader, uuid.NewString())
		}
		return next(ctx, req)
	}
}
