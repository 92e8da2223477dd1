package resourceful

import "strings"

// ActionSpec describes a single named action on an endpoint: the HTTP method
// it maps to, the parameters applied when the caller supplies none, and
// whether the response is expected to be a collection.
type ActionSpec struct {
	Method        string
	DefaultParams map[string]string
	IsArray       bool
	Headers       map[string]string
	Options       map[string]any
}

// ActionOption customizes an ActionSpec passed to AddHTTPAction.
type ActionOption func(*ActionSpec)

// WithDefaultParams sets the parameters merged under the caller's parameters
// on every invocation of the action.
func WithDefaultParams(params map[string]string) ActionOption {
	return func(s *ActionSpec) {
		s.DefaultParams = params
	}
}

// WithHeader adds a header sent on every invocation of the action.
func WithHeader(key, value string) ActionOption {
	return func(s *ActionSpec) {
		if s.Headers == nil {
			s.Headers = make(map[string]string)
		}
		s.Headers[key] = value
	}
}

// WithIsArray marks the action as returning a collection rather than a
// single object.
func WithIsArray() ActionOption {
	return func(s *ActionSpec) {
		s.IsArray = true
	}
}

// WithOption attaches an opaque option to the action. Options are not
// interpreted by the core; they are visible to interceptors via CallInfo.
func WithOption(key string, value any) ActionOption {
	return func(s *ActionSpec) {
		if s.Options == nil {
			s.Options = make(map[string]any)
		}
		s.Options[key] = value
	}
}

// EndpointConfig is the mutable builder for one endpoint. It is created by
// Registry.Endpoint and configured through chained calls before the registry
// is materialized. Endpoints take a snapshot of the config at construction,
// so later mutations do not leak into live endpoints.
//
// Every config starts with five default actions:
//
//	get     GET
//	update  PUT
//	save    POST
//	patch   PATCH
//	remove  DELETE
type EndpointConfig struct {
	route   string
	factory ModelFactory
	actions map[string]ActionSpec
}

func newEndpointConfig() *EndpointConfig {
	return &EndpointConfig{
		actions: map[string]ActionSpec{
			"get":    {Method: "GET"},
			"update": {Method: "PUT"},
			"save":   {Method: "POST"},
			"patch":  {Method: "PATCH"},
			"remove": {Method: "DELETE"},
		},
	}
}

// Route sets the endpoint's route template, appended to the registry's base
// route. Segments of the form ":name" are filled from call parameters.
// It returns the config for chaining. Last write wins.
func (c *EndpointConfig) Route(template string) *EndpointConfig {
	c.route = template
	return c
}

// Model sets the factory used to instantiate response models and write
// copies. The factory must return a pointer suitable for JSON decoding.
// It returns the config for chaining. Last write wins.
func (c *EndpointConfig) Model(factory ModelFactory) *EndpointConfig {
	c.factory = factory
	return c
}

// AddHTTPAction inserts or overwrites the action under name. The method is
// upper-cased. Overwriting a default action is allowed and silent; the
// previous spec is discarded, not merged.
func (c *EndpointConfig) AddHTTPAction(method, name string, opts ...ActionOption) *EndpointConfig {
	spec := ActionSpec{Method: strings.ToUpper(method)}
	for _, opt := range opts {
		opt(&spec)
	}
	c.actions[name] = spec
	return c
}

// EnableQuery marks the named action (default "query") as returning a
// collection, creating it with method GET if absent.
func (c *EndpointConfig) EnableQuery(name ...string) *EndpointConfig {
	n := "query"
	if len(name) > 0 {
		n = name[0]
	}
	spec, ok := c.actions[n]
	if !ok {
		spec = ActionSpec{Method: "GET"}
	}
	spec.IsArray = true
	c.actions[n] = spec
	return c
}

// RouteTemplate returns the configured route template.
func (c *EndpointConfig) RouteTemplate() string {
	return c.route
}

// Actions returns a copy of the action map.
func (c *EndpointConfig) Actions() map[string]ActionSpec {
	out := make(map[string]ActionSpec, len(c.actions))
	for name, spec := range c.actions {
		out[name] = spec
	}
	return out
}

// snapshot returns a deep copy consumed by Endpoint construction, so the
// builder can keep mutating without affecting materialized endpoints.
func (c *EndpointConfig) snapshot() *EndpointConfig {
	snap := &EndpointConfig{
		route:   c.route,
		factory: c.factory,
		actions: make(map[string]ActionSpec, len(c.actions)),
	}
	for name, spec := range c.actions {
		snap.actions[name] = spec.clone()
	}
	return snap
}

func (s ActionSpec) clone() ActionSpec {
	out := s
	if s.DefaultParams != nil {
		out.DefaultParams = make(map[string]string, len(s.DefaultParams))
		for k, v := range s.DefaultParams {
			out.DefaultParams[k] = v
		}
	}
	if s.Headers != nil {
		out.Headers = make(map[string]string, len(s.Headers))
		for k, v := range s.Headers {
			out.Headers[k] = v
		}
	}
	if s.Options != nil {
		out.Options = make(map[string]any, len(s.Options))
		for k, v := range s.Options {
			out.Options[k] = v
		}
	}
	return out
}
