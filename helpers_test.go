package resourceful

import (
	"errors"
	"testing"

	"github.com/tavish/resourceful/testutil"
)

// song is the model fixture used across the package tests. The hook
// counters are excluded from JSON so they never reach the wire.
type song struct {
	ID   int    `json:"id"`
	Name string `json:"name"`

	Loads int `json:"-"`
	Saves int `json:"-"`
}

func (s *song) AfterLoad() error {
	s.Loads++
	return nil
}

func (s *song) BeforeSave() error {
	s.Saves++
	s.Name += " (saved)"
	return nil
}

func songFactory() any { return &song{} }

// brokenModel fails both hooks, for error-propagation tests.
type brokenModel struct{}

var errHook = errors.New("hook failed")

func (m *brokenModel) AfterLoad() error  { return errHook }
func (m *brokenModel) BeforeSave() error { return errHook }

// newSongsEndpoint materializes a registry with a single "songs" endpoint
// backed by the stub transport. configure, when non-nil, runs against the
// endpoint config before materialization.
func newSongsEndpoint(t *testing.T, stub *testutil.StubTransport, configure func(*EndpointConfig)) *Endpoint {
	t.Helper()

	reg := NewRegistry().WithHTTPClient(stub)
	reg.SetBaseRoute("https://api.example.com/v1")
	cfg := reg.Endpoint("songs").Route("/songs/:id")
	if configure != nil {
		configure(cfg)
	}

	api, err := reg.Materialize()
	if err != nil {
		t.Fatalf("materialize: %v", err)
	}
	ep, ok := api.Endpoint("songs")
	if !ok {
		t.Fatal("expected songs endpoint")
	}
	return ep
}
