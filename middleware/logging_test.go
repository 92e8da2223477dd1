package middleware

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/tavish/resourceful"
)

func testCall() (*resourceful.CallInfo, *http.Request) {
	info := &resourceful.CallInfo{
		Endpoint: "songs",
		Action:   "get",
		Method:   "GET",
		URL:      "/api/songs/1",
	}
	req, _ := http.NewRequest("GET", "/api/songs/1", nil)
	return info, req
}

func okNext(ctx context.Context, req *http.Request) (*http.Response, error) {
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(bytes.NewReader(nil)),
	}, nil
}

func TestLogging_Success(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	info, req := testCall()
	res, err := Logging(logger)(context.Background(), info, req, okNext)
	if err != nil {
		t.Fatalf("interceptor: %v", err)
	}
	if res.StatusCode != http.StatusOK {
		t.Errorf("expected response passed through, got %d", res.StatusCode)
	}

	out := buf.String()
	if !strings.Contains(out, "call started") || !strings.Contains(out, "call completed") {
		t.Errorf("expected start and completion logs, got:\n%s", out)
	}
	if !strings.Contains(out, "endpoint=songs") || !strings.Contains(out, "action=get") {
		t.Errorf("expected endpoint/action attributes, got:\n%s", out)
	}
}

func TestLogging_Failure(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	errBoom := errors.New("boom")
	failNext := func(ctx context.Context, req *http.Request) (*http.Response, error) {
		return nil, errBoom
	}

	info, req := testCall()
	if _, err := Logging(logger)(context.Background(), info, req, failNext); !errors.Is(err, errBoom) {
		t.Fatalf("expected error passed through, got %v", err)
	}
	if !strings.Contains(buf.String(), "call failed") {
		t.Errorf("expected failure log, got:\n%s", buf.String())
	}
}
