package resourceful

import "testing"

func TestEndpointConfig_DefaultActions(t *testing.T) {
	cfg := newEndpointConfig()

	want := map[string]string{
		"get":    "GET",
		"update": "PUT",
		"save":   "POST",
		"patch":  "PATCH",
		"remove": "DELETE",
	}
	actions := cfg.Actions()
	if len(actions) != len(want) {
		t.Fatalf("expected %d default actions, got %d", len(want), len(actions))
	}
	for name, method := range want {
		spec, ok := actions[name]
		if !ok {
			t.Errorf("missing default action %q", name)
			continue
		}
		if spec.Method != method {
			t.Errorf("action %q: expected method %s, got %s", name, method, spec.Method)
		}
		if spec.IsArray {
			t.Errorf("action %q: expected IsArray false", name)
		}
	}
}

func TestEndpointConfig_Chaining(t *testing.T) {
	cfg := newEndpointConfig()

	got := cfg.Route("/songs/:id").Model(songFactory).EnableQuery().AddHTTPAction("get", "fetch")
	if got != cfg {
		t.Error("builder methods must return the receiver")
	}
	if cfg.RouteTemplate() != "/songs/:id" {
		t.Errorf("unexpected route template %q", cfg.RouteTemplate())
	}
}

func TestEndpointConfig_RouteLastWriteWins(t *testing.T) {
	cfg := newEndpointConfig().Route("/old").Route("/new")
	if cfg.RouteTemplate() != "/new" {
		t.Errorf("expected /new, got %q", cfg.RouteTemplate())
	}
}

func TestEndpointConfig_AddHTTPAction(t *testing.T) {
	cfg := newEndpointConfig()
	cfg.AddHTTPAction("get", "play", WithDefaultParams(map[string]string{"mode": "stream"}), WithHeader("X-Player", "web"))

	spec, ok := cfg.Actions()["play"]
	if !ok {
		t.Fatal("expected play action")
	}
	if spec.Method != "GET" {
		t.Errorf("expected upper-cased method GET, got %q", spec.Method)
	}
	if spec.DefaultParams["mode"] != "stream" {
		t.Errorf("expected default param, got %v", spec.DefaultParams)
	}
	if spec.Headers["X-Player"] != "web" {
		t.Errorf("expected header, got %v", spec.Headers)
	}
}

func TestEndpointConfig_AddHTTPAction_OverwritesSilently(t *testing.T) {
	cfg := newEndpointConfig()
	cfg.AddHTTPAction("get", "save", WithDefaultParams(map[string]string{"a": "1"}))
	cfg.AddHTTPAction("post", "save")

	spec := cfg.Actions()["save"]
	if spec.Method != "POST" {
		t.Errorf("expected second write to win, got method %q", spec.Method)
	}
	if spec.DefaultParams != nil {
		t.Errorf("expected no merge with the first spec, got %v", spec.DefaultParams)
	}
}

func TestEndpointConfig_EnableQuery(t *testing.T) {
	cfg := newEndpointConfig().EnableQuery()

	spec, ok := cfg.Actions()["query"]
	if !ok {
		t.Fatal("expected query action to be created")
	}
	if !spec.IsArray {
		t.Error("expected IsArray true")
	}
	if spec.Method != "GET" {
		t.Errorf("expected default method GET, got %q", spec.Method)
	}
}

func TestEndpointConfig_EnableQuery_ExistingAction(t *testing.T) {
	cfg := newEndpointConfig()
	cfg.AddHTTPAction("get", "list")
	cfg.EnableQuery("list")

	spec := cfg.Actions()["list"]
	if !spec.IsArray {
		t.Error("expected IsArray true on existing action")
	}
	if spec.Method != "GET" {
		t.Errorf("expected method preserved, got %q", spec.Method)
	}
}

func TestEndpointConfig_SnapshotIsolation(t *testing.T) {
	cfg := newEndpointConfig().Route("/songs")
	cfg.AddHTTPAction("get", "play", WithDefaultParams(map[string]string{"mode": "stream"}))

	snap := cfg.snapshot()

	cfg.Route("/changed")
	cfg.AddHTTPAction("delete", "play")
	cfg.actions["get"] = ActionSpec{Method: "HEAD"}

	if snap.route != "/songs" {
		t.Errorf("snapshot route mutated: %q", snap.route)
	}
	if snap.actions["play"].Method != "GET" {
		t.Errorf("snapshot action mutated: %v", snap.actions["play"])
	}
	if snap.actions["get"].Method != "GET" {
		t.Errorf("snapshot default action mutated: %v", snap.actions["get"])
	}
	if snap.actions["play"].DefaultParams["mode"] != "stream" {
		t.Errorf("snapshot default params mutated: %v", snap.actions["play"].DefaultParams)
	}
}
