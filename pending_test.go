package resourceful

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestPending_Resolve(t *testing.T) {
	p := newPending()
	go p.complete("value", nil)

	res, err := p.Wait(context.Background())
	if err != nil {
		t.Fatalf("wait: %v", err)
	}
	if res != "value" {
		t.Errorf("expected value, got %v", res)
	}
	if p.Value() != "value" || p.Err() != nil {
		t.Error("accessors disagree with Wait")
	}
}

func TestPending_Reject(t *testing.T) {
	errBoom := errors.New("boom")
	p := newPending()
	go p.complete(nil, errBoom)

	if _, err := p.Wait(context.Background()); !errors.Is(err, errBoom) {
		t.Errorf("expected boom, got %v", err)
	}
}

func TestPending_WaitHonorsContext(t *testing.T) {
	p := newPending() // never completes

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, err := p.Wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline error, got %v", err)
	}
}
