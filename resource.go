package resourceful

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gorilla/schema"

	"github.com/tavish/resourceful/internal/routetemplate"
)

// Doer issues a single HTTP request. *http.Client satisfies it. The layer
// delegates every network concern to the injected Doer: no retries, no
// deadlines of its own, cancellation via the request context only.
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

var paramsEncoder = schema.NewEncoder()

// resource is the HTTP-resource handle owned by one Endpoint. It holds the
// parsed route template and everything needed to turn an action invocation
// into exactly one transport call.
type resource struct {
	template     *routetemplate.Template
	client       Doer
	logger       *slog.Logger
	interceptors []UnaryInterceptor
}

func newResource(template string, client Doer, logger *slog.Logger, interceptors []UnaryInterceptor) (*resource, error) {
	tmpl, err := routetemplate.Parse(template)
	if err != nil {
		return nil, Errorf(CodeInvalidArgument, "%v", err)
	}
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &resource{
		template:     tmpl,
		client:       client,
		logger:       logger,
		interceptors: interceptors,
	}, nil
}

// invoke performs the single HTTP call for an action and returns the raw
// response payload. Transport errors pass through unmodified; non-2xx
// statuses become an *Error.
func (r *resource) invoke(ctx context.Context, info *CallInfo, spec ActionSpec, params any, payload any) (json.RawMessage, error) {
	values, err := encodeParams(params)
	if err != nil {
		return nil, err
	}
	for k, v := range spec.DefaultParams {
		if !values.Has(k) {
			values.Set(k, v)
		}
	}

	urlStr := r.template.Expand(values)
	info.URL = urlStr

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, Errorf(CodeInvalidPayload, "encode request body: %v", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, spec.Method, urlStr, body)
	if err != nil {
		return nil, Errorf(CodeInvalidArgument, "build request: %v", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range spec.Headers {
		req.Header.Set(k, v)
	}

	transport := func(ctx context.Context, req *http.Request) (*http.Response, error) {
		return r.client.Do(req.WithContext(ctx))
	}

	var res *http.Response
	if chain := chainInterceptors(r.interceptors); chain != nil {
		res, err = chain(ctx, info, req, transport)
	} else {
		res, err = transport(ctx, req)
	}
	if err != nil {
		// Transport failure: surface unmodified.
		return nil, err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		r.logger.DebugContext(ctx, "request failed",
			slog.String("endpoint", info.Endpoint),
			slog.String("action", info.Action),
			slog.Int("status", res.StatusCode))
		return nil, errorFromResponse(res.StatusCode, raw)
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	return raw, nil
}

// encodeParams turns the caller-supplied params into URL values. Accepted
// shapes: nil, map[string]string, url.Values, or a struct (optionally a
// pointer) encoded through gorilla/schema tags.
func encodeParams(params any) (url.Values, error) {
	values := url.Values{}
	switch p := params.(type) {
	case nil:
	case map[string]string:
		for k, v := range p {
			values.Set(k, v)
		}
	case url.Values:
		for k, vs := range p {
			values[k] = append([]string(nil), vs...)
		}
	default:
		if err := paramsEncoder.Encode(p, values); err != nil {
			return nil, Errorf(CodeInvalidArgument, "encode params: %v", err)
		}
	}
	return values, nil
}
