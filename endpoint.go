package resourceful

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"strings"
)

// Endpoint is a named, routed collection of callable actions for one REST
// resource. Endpoints are built by Registry.Materialize from a config
// snapshot and live for the life of the process; they are safe for
// concurrent use, and concurrent calls to the same action are fully
// independent.
type Endpoint struct {
	name      string
	config    *EndpointConfig
	resource  *resource
	callables map[string]callable
}

type callable func(ctx context.Context, params, body any) (any, error)

func newEndpoint(name, baseRoute string, config *EndpointConfig, client Doer, logger *slog.Logger, interceptors []UnaryInterceptor) (*Endpoint, error) {
	res, err := newResource(joinRoute(baseRoute, config.route), client, logger, interceptors)
	if err != nil {
		return nil, err
	}

	e := &Endpoint{
		name:      name,
		config:    config,
		resource:  res,
		callables: make(map[string]callable, len(config.actions)),
	}

	// The dispatch strategy for each action is decided here, once, not per
	// call: plain when no model is configured, read-with-model for GET,
	// write-with-model for PUT and POST.
	for action, spec := range config.actions {
		switch {
		case config.factory == nil:
			e.callables[action] = e.plain(action, spec)
		case spec.Method == "GET":
			e.callables[action] = e.readWithModel(action, spec)
		case spec.Method == "PUT" || spec.Method == "POST":
			e.callables[action] = e.writeWithModel(action, spec)
		default:
			e.callables[action] = e.plain(action, spec)
		}
	}
	return e, nil
}

// Name returns the endpoint's registered name.
func (e *Endpoint) Name() string {
	return e.name
}

// Actions returns the configured action names, sorted.
func (e *Endpoint) Actions() []string {
	names := make([]string, 0, len(e.callables))
	for name := range e.callables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Call invokes the named action. Params may be nil, a map[string]string,
// url.Values, or a struct with schema tags; body is the write payload, or
// nil. The result is the decoded response: a model instance (or slice of
// instances) for model-backed GET actions, the raw decoded JSON otherwise,
// nil for empty responses.
func (e *Endpoint) Call(ctx context.Context, action string, params, body any) (any, error) {
	fn, ok := e.callables[action]
	if !ok {
		return nil, Errorf(CodeNotFound, "endpoint %q has no action %q", e.name, action)
	}
	return fn(ctx, params, body)
}

// Go invokes the named action asynchronously and returns a pending result.
func (e *Endpoint) Go(ctx context.Context, action string, params, body any) *Pending {
	p := newPending()
	go func() {
		p.complete(e.Call(ctx, action, params, body))
	}()
	return p
}

// Get invokes the default "get" action.
func (e *Endpoint) Get(ctx context.Context, params any) (any, error) {
	return e.Call(ctx, "get", params, nil)
}

// Query invokes the "query" action (see EndpointConfig.EnableQuery).
func (e *Endpoint) Query(ctx context.Context, params any) (any, error) {
	return e.Call(ctx, "query", params, nil)
}

// Save invokes the default "save" action.
func (e *Endpoint) Save(ctx context.Context, params, body any) (any, error) {
	return e.Call(ctx, "save", params, body)
}

// Update invokes the default "update" action.
func (e *Endpoint) Update(ctx context.Context, params, body any) (any, error) {
	return e.Call(ctx, "update", params, body)
}

// Patch invokes the default "patch" action.
func (e *Endpoint) Patch(ctx context.Context, params, body any) (any, error) {
	return e.Call(ctx, "patch", params, body)
}

// Remove invokes the default "remove" action.
func (e *Endpoint) Remove(ctx context.Context, params any) (any, error) {
	return e.Call(ctx, "remove", params, nil)
}

// plain forwards params and payload to the transport untouched and returns
// the decoded response untransformed.
func (e *Endpoint) plain(action string, spec ActionSpec) callable {
	return func(ctx context.Context, params, body any) (any, error) {
		raw, err := e.resource.invoke(ctx, e.callInfo(action, spec), spec, params, body)
		if err != nil {
			return nil, err
		}
		return decodeAny(raw)
	}
}

// readWithModel performs the plain request, then replaces the response
// payload with model instances before the caller observes it.
func (e *Endpoint) readWithModel(action string, spec ActionSpec) callable {
	return func(ctx context.Context, params, body any) (any, error) {
		raw, err := e.resource.invoke(ctx, e.callInfo(action, spec), spec, params, body)
		if err != nil {
			return nil, err
		}
		return decodeWithModel(e.config.factory, raw)
	}
}

// writeWithModel deep-copies the caller's payload, runs BeforeSave on the
// copy, and forwards the copy. The caller's value is never mutated.
func (e *Endpoint) writeWithModel(action string, spec ActionSpec) callable {
	return func(ctx context.Context, params, body any) (any, error) {
		cp, err := copyForSave(e.config.factory, body)
		if err != nil {
			return nil, err
		}
		raw, err := e.resource.invoke(ctx, e.callInfo(action, spec), spec, params, cp)
		if err != nil {
			return nil, err
		}
		return decodeAny(raw)
	}
}

func (e *Endpoint) callInfo(action string, spec ActionSpec) *CallInfo {
	return &CallInfo{
		Endpoint: e.name,
		Action:   action,
		Method:   spec.Method,
		IsArray:  spec.IsArray,
		Options:  spec.Options,
	}
}

func decodeAny(raw []byte) (any, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, Errorf(CodeInvalidPayload, "decode response: %v", err)
	}
	return out, nil
}

// joinRoute appends the endpoint route template to the base route without
// doubling the separator.
func joinRoute(base, route string) string {
	if base == "" {
		return route
	}
	if route == "" {
		return base
	}
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(route, "/")
}
