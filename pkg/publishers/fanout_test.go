package publishers

import (
	"context"
	"errors"
	"testing"

	"github.com/opttab/opttab-go/pkg/logging"
)

type stubPublisher struct {
	id     string
	typ    string
	err    error
	calls  int
	closed bool
}

func (s *stubPublisher) ID() string   { return s.id }
func (s *stubPublisher) Type() string { return s.typ }
func (s *stubPublisher) Publish(context.Context, Event) error {
	s.calls++
	return s.err
}

type closingPublisher struct {
	stubPublisher
	closeErr error
}

func (c *closingPublisher) Close() error {
	c.closed = true
	return c.closeErr
}

func TestFanoutPublishAggregatesErrors(t *testing.T) {
	ok := &stubPublisher{id: "ok", typ: "http"}
	bad := &stubPublisher{id: "bad", typ: "http", err: errors.New("failed")}
	fanout := NewFanout([]Publisher{ok, nil, bad})

	if fanout.Size() != 2 {
		t.Fatalf("expected nil publishers to be skipped, size=%d", fanout.Size())
	}

	count, err := fanout.Publish(context.Background(), NewEvent(EventAssetCreated, 1, nil))
	if count != 1 {
		t.Fatalf("expected 1 success, got %d", count)
	}
	if err == nil {
		t.Fatalf("expected aggregated error")
	}
	if ok.calls != 1 || bad.calls != 1 {
		t.Fatalf("every publisher should be called once, got ok=%d bad=%d", ok.calls, bad.calls)
	}
}

func TestNilFanoutIsInert(t *testing.T) {
	var f *Fanout
	if n, err := f.Publish(context.Background(), Event{}); n != 0 || err != nil {
		t.Fatalf("nil fanout Publish = %d, %v", n, err)
	}
	if f.Size() != 0 || f.Close() != nil {
		t.Fatalf("nil fanout should report size 0 and close cleanly")
	}
}

func TestFanoutCloseClosesClosers(t *testing.T) {
	plain := &stubPublisher{id: "plain", typ: "http"}
	closer := &closingPublisher{stubPublisher: stubPublisher{id: "q", typ: TypeSQS}}
	failing := &closingPublisher{stubPublisher: stubPublisher{id: "g", typ: TypeGCPPubSub}, closeErr: errors.New("close failed")}

	err := NewFanout([]Publisher{plain, closer, failing}).Close()
	if !closer.closed || !failing.closed {
		t.Fatalf("expected both closers to be closed")
	}
	if err == nil {
		t.Fatalf("expected close error to be reported")
	}
}

func TestBuildAllWithDefaultRegistry(t *testing.T) {
	reg := DefaultRegistry()
	pubs, err := BuildAll(context.Background(), reg, []PublisherConfig{
		{ID: "http", Type: TypeHTTP, HTTP: &HTTPPublisherConfig{URL: "https://example.com"}},
	}, nil)
	if err != nil {
		t.Fatalf("BuildAll: %v", err)
	}
	if len(pubs) != 1 {
		t.Fatalf("expected 1 publisher, got %d", len(pubs))
	}
	if pubs[0].Type() != TypeHTTP || pubs[0].ID() != "http" {
		t.Fatalf("unexpected publisher %s/%s", pubs[0].Type(), pubs[0].ID())
	}
}

func TestBuildAllRejectsUnknownType(t *testing.T) {
	_, err := BuildAll(context.Background(), DefaultRegistry(), []PublisherConfig{
		{ID: "k", Type: "kafka"},
	}, nil)
	if err == nil {
		t.Fatalf("expected error for unknown publisher type")
	}
}

func TestRegistryRegisterIgnoresBlankType(t *testing.T) {
	reg := NewRegistry(nil)
	reg.Register("  ", func(context.Context, PublisherConfig, logging.Logger) (Publisher, error) {
		return &stubPublisher{}, nil
	})
	if _, err := reg.PublisherFor(context.Background(), PublisherConfig{ID: "x", Type: "custom"}, nil); err == nil {
		t.Fatalf("expected no builder for custom type")
	}

	reg.Register("Custom", func(_ context.Context, cfg PublisherConfig, _ logging.Logger) (Publisher, error) {
		return &stubPublisher{id: cfg.ID, typ: "custom"}, nil
	})
	pub, err := reg.PublisherFor(context.Background(), PublisherConfig{ID: "x", Type: "CUSTOM"}, nil)
	if err != nil || pub.ID() != "x" {
		t.Fatalf("PublisherFor = %v, %v", pub, err)
	}
}
