// Package testutil provides testing helpers for resourceful endpoints: a
// scriptable stub transport and JSON assertion helpers. This package is
// designed to be import-cycle safe and can be used from any package.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"sync"
	"testing"
)

// RecordedRequest captures one request seen by the StubTransport.
type RecordedRequest struct {
	Method string
	URL    *url.URL
	Header http.Header
	Body   []byte
}

type stubResponse struct {
	status int
	body   string
	header http.Header
}

// StubTransport is a scriptable Doer implementation. Responses are consumed
// in the order queued; the last queued response is sticky once the queue
// runs dry. With nothing queued it answers 200 with an empty body.
// Safe for concurrent use.
type StubTransport struct {
	mu        sync.Mutex
	responses []stubResponse
	requests  []RecordedRequest
	err       error
}

// NewStubTransport creates an empty stub transport.
func NewStubTransport() *StubTransport {
	return &StubTransport{}
}

// Respond queues a response with the given status and raw body.
// It returns the transport for chaining.
func (s *StubTransport) Respond(status int, body string) *StubTransport {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses = append(s.responses, stubResponse{status: status, body: body})
	return s
}

// RespondJSON queues a response with the given status and v marshaled as the
// body. Marshal failures panic; they are test bugs.
func (s *StubTransport) RespondJSON(status int, v any) *StubTransport {
	data, err := json.Marshal(v)
	if err != nil {
		panic("testutil: marshal stub response: " + err.Error())
	}
	return s.Respond(status, string(data))
}

// Fail makes every subsequent call return err instead of a response,
// simulating a transport failure.
func (s *StubTransport) Fail(err error) *StubTransport {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
	return s
}

// Do implements the Doer contract.
func (s *StubTransport) Do(req *http.Request) (*http.Response, error) {
	var body []byte
	if req.Body != nil {
		body, _ = io.ReadAll(req.Body)
		req.Body.Close()
	}

	s.mu.Lock()
	s.requests = append(s.requests, RecordedRequest{
		Method: req.Method,
		URL:    req.URL,
		Header: req.Header.Clone(),
		Body:   body,
	})
	if s.err != nil {
		err := s.err
		s.mu.Unlock()
		return nil, err
	}
	res := stubResponse{status: http.StatusOK}
	if len(s.responses) > 0 {
		res = s.responses[0]
		if len(s.responses) > 1 {
			s.responses = s.responses[1:]
		}
	}
	s.mu.Unlock()

	header := make(http.Header)
	if res.body != "" {
		header.Set("Content-Type", "application/json")
	}
	return &http.Response{
		StatusCode: res.status,
		Header:     header,
		Body:       io.NopCloser(bytes.NewReader([]byte(res.body))),
		Request:    req,
	}, nil
}

// Requests returns a copy of all recorded requests.
func (s *StubTransport) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]RecordedRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

// LastRequest returns the most recent recorded request, or nil.
func (s *StubTransport) LastRequest() *RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return nil
	}
	req := s.requests[len(s.requests)-1]
	return &req
}

// AssertJSONEqual fails the test unless want and got marshal to the same
// JSON. It normalizes through marshaling, so struct-vs-map comparisons work.
func AssertJSONEqual(t *testing.T, want, got any) {
	t.Helper()
	wantData, err := json.Marshal(want)
	if err != nil {
		t.Fatalf("marshal want: %v", err)
	}
	gotData, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("marshal got: %v", err)
	}
	if !bytes.Equal(wantData, gotData) {
		t.Errorf("JSON mismatch\nwant: %s\ngot:  %s", wantData, gotData)
	}
}

// AssertRequestJSON fails the test unless the recorded request body equals
// want when both are normalized as JSON.
func AssertRequestJSON(t *testing.T, req *RecordedRequest, want any) {
	t.Helper()
	if req == nil {
		t.Fatal("no request recorded")
	}
	var got any
	if err := json.Unmarshal(req.Body, &got); err != nil {
		t.Fatalf("unmarshal request body %q: %v", req.Body, err)
	}
	AssertJSONEqual(t, want, got)
}
