package testutil

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
)

func get(t *testing.T, s *StubTransport, url string) *http.Response {
	t.Helper()
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	res, err := s.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	return res
}

func TestStubTransport_ResponsesInOrder(t *testing.T) {
	stub := NewStubTransport().
		Respond(http.StatusOK, `{"n":1}`).
		Respond(http.StatusCreated, `{"n":2}`)

	if res := get(t, stub, "/a"); res.StatusCode != http.StatusOK {
		t.Errorf("expected first response, got %d", res.StatusCode)
	}
	if res := get(t, stub, "/b"); res.StatusCode != http.StatusCreated {
		t.Errorf("expected second response, got %d", res.StatusCode)
	}
	// The last queued response is sticky.
	if res := get(t, stub, "/c"); res.StatusCode != http.StatusCreated {
		t.Errorf("expected sticky response, got %d", res.StatusCode)
	}
}

func TestStubTransport_DefaultsToEmptyOK(t *testing.T) {
	stub := NewStubTransport()
	res := get(t, stub, "/a")
	if res.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", res.StatusCode)
	}
	body, _ := io.ReadAll(res.Body)
	if len(body) != 0 {
		t.Errorf("expected empty body, got %q", body)
	}
}

func TestStubTransport_Fail(t *testing.T) {
	errBoom := errors.New("boom")
	stub := NewStubTransport().Fail(errBoom)

	req, _ := http.NewRequest("GET", "/a", nil)
	if _, err := stub.Do(req); !errors.Is(err, errBoom) {
		t.Errorf("expected boom, got %v", err)
	}
	// The request is still recorded.
	if stub.LastRequest() == nil {
		t.Error("expected failing request to be recorded")
	}
}

func TestStubTransport_RecordsBody(t *testing.T) {
	stub := NewStubTransport()
	req, _ := http.NewRequest("POST", "/a", strings.NewReader(`{"name":"x"}`))
	if _, err := stub.Do(req); err != nil {
		t.Fatalf("do: %v", err)
	}

	AssertRequestJSON(t, stub.LastRequest(), map[string]any{"name": "x"})
	if len(stub.Requests()) != 1 {
		t.Errorf("expected 1 recorded request, got %d", len(stub.Requests()))
	}
}
