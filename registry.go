// Package resourceful is a declarative configuration layer for REST API
// clients. Applications register named endpoints against a shared base
// route, configure each one's route template, actions, and optional model,
// then materialize the registry into a set of live endpoints.
package resourceful

import (
	"context"
	"log/slog"
	"reflect"
	"sort"
	"sync"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Registry collects named endpoint configs under a shared base route. It has
// two phases: configuring (SetBaseRoute and Endpoint mutate state) and
// materialized (endpoint configs are frozen into live Endpoints). The
// transition happens on the first Materialize call and is one-way.
type Registry struct {
	mu           sync.Mutex
	baseRoute    string
	endpoints    map[string]*EndpointConfig
	client       Doer
	logger       *slog.Logger
	interceptors []UnaryInterceptor
	strict       bool
	api          *API
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		endpoints: make(map[string]*EndpointConfig),
	}
}

// SetBaseRoute sets the URL prefix shared by all endpoints. Effective only
// for endpoints materialized afterward.
func (r *Registry) SetBaseRoute(route string) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.api != nil {
		r.warnFrozen("SetBaseRoute")
	}
	r.baseRoute = route
	return r
}

// Endpoint returns the config registered under name, creating it if new.
// Repeat calls with the same name return the same config, so configuration
// can be spread across call sites.
func (r *Registry) Endpoint(name string) *EndpointConfig {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.api != nil {
		r.warnFrozen("Endpoint")
	}
	cfg, ok := r.endpoints[name]
	if !ok {
		cfg = newEndpointConfig()
		r.endpoints[name] = cfg
	}
	return cfg
}

// WithHTTPClient sets the transport used by all materialized endpoints.
// Defaults to http.DefaultClient.
func (r *Registry) WithHTTPClient(client Doer) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.client = client
	return r
}

// WithLogger sets a custom logger. If not set, slog.Default() will be used.
func (r *Registry) WithLogger(logger *slog.Logger) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logger = logger
	return r
}

// WithUnaryInterceptor adds a global interceptor wrapping every transport
// call made by every endpoint. Interceptors execute in the order added.
func (r *Registry) WithUnaryInterceptor(i UnaryInterceptor) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.interceptors = append(r.interceptors, i)
	return r
}

// WithStrictValidation makes Materialize fail on configs the lenient default
// would let surface as call-time failures: missing route templates, unknown
// HTTP methods, and collection actions with no model to instantiate.
func (r *Registry) WithStrictValidation() *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.strict = true
	return r
}

// Materialize freezes the registry and builds one Endpoint per registered
// name under the current base route. It is idempotent: repeat calls return
// the same *API and never fail once the first call has succeeded.
func (r *Registry) Materialize() (*API, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.api != nil {
		return r.api, nil
	}

	if r.strict {
		for name, cfg := range r.endpoints {
			if err := validateConfig(name, cfg); err != nil {
				return nil, err
			}
		}
	}

	endpoints := make(map[string]*Endpoint, len(r.endpoints))
	for name, cfg := range r.endpoints {
		ep, err := newEndpoint(name, r.baseRoute, cfg.snapshot(), r.client, r.logger, r.interceptors)
		if err != nil {
			return nil, err
		}
		endpoints[name] = ep
	}

	r.api = &API{endpoints: endpoints}
	return r.api, nil
}

func (r *Registry) warnFrozen(op string) {
	logger := r.logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Warn("registry already materialized; change will not affect live endpoints",
		slog.String("op", op))
}

// endpointRule and actionRule carry the declarative part of strict
// validation; the model check below is structural and stays hand-written.
type endpointRule struct {
	Route string `validate:"required"`
}

type actionRule struct {
	Action string `validate:"required"`
	Method string `validate:"required,oneof=GET PUT POST PATCH DELETE"`
}

func validateConfig(name string, cfg *EndpointConfig) error {
	if err := validate.Struct(endpointRule{Route: cfg.route}); err != nil {
		return configError(name, err)
	}
	for action, spec := range cfg.actions {
		if err := validate.Struct(actionRule{Action: action, Method: spec.Method}); err != nil {
			return configError(name, err).WithDetail("action", action)
		}
		if spec.IsArray && cfg.factory == nil {
			return Errorf(CodeInvalidArgument,
				"endpoint %q: action %q returns a collection but no model is set", name, action)
		}
	}
	return nil
}

// API is the materialized name-to-endpoint mapping consumed by application
// code. It is immutable.
type API struct {
	endpoints map[string]*Endpoint
}

// Endpoint returns the named endpoint.
func (a *API) Endpoint(name string) (*Endpoint, bool) {
	ep, ok := a.endpoints[name]
	return ep, ok
}

// Call invokes an action on the named endpoint. It is shorthand for
// Endpoint lookup plus Endpoint.Call.
func (a *API) Call(ctx context.Context, endpoint, action string, params, body any) (any, error) {
	ep, ok := a.endpoints[endpoint]
	if !ok {
		return nil, Errorf(CodeNotFound, "no endpoint %q", endpoint)
	}
	return ep.Call(ctx, action, params, body)
}

// Names returns the registered endpoint names, sorted.
func (a *API) Names() []string {
	names := make([]string, 0, len(a.endpoints))
	for name := range a.endpoints {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ExportedEndpoint contains metadata about a registered endpoint for code
// generation.
type ExportedEndpoint struct {
	Name    string
	Route   string
	Actions []ExportedAction
	Model   reflect.Type // nil when no model factory is set
}

// ExportedAction describes one action for code generation.
type ExportedAction struct {
	Name    string
	Method  string
	IsArray bool
}

// ExportEndpoints returns registration metadata for code generation
// purposes. This is used by the resourcegen package.
func (r *Registry) ExportEndpoints() []ExportedEndpoint {
	r.mu.Lock()
	defer r.mu.Unlock()

	exported := make([]ExportedEndpoint, 0, len(r.endpoints))
	for name, cfg := range r.endpoints {
		ee := ExportedEndpoint{
			Name:  name,
			Route: cfg.route,
		}
		if cfg.factory != nil {
			ee.Model = reflect.TypeOf(cfg.factory())
		}
		for action, spec := range cfg.actions {
			ee.Actions = append(ee.Actions, ExportedAction{
				Name:    action,
				Method:  spec.Method,
				IsArray: spec.IsArray,
			})
		}
		sort.Slice(ee.Actions, func(i, j int) bool { return ee.Actions[i].Name < ee.Actions[j].Name })
		exported = append(exported, ee)
	}
	sort.Slice(exported, func(i, j int) bool { return exported[i].Name < exported[j].Name })
	return exported
}
