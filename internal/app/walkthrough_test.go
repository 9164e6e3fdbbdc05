package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/opttab/opttab-go/pkg/opttab"
)

// fakeOpttab serves the endpoints the walkthrough touches and records the request log.
type fakeOpttab struct {
	mu      sync.Mutex
	calls   []string
	created map[string]any
	failOn  string
}

func (f *fakeOpttab) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/user")
	call := r.Method + " " + path

	f.mu.Lock()
	f.calls = append(f.calls, call)
	if r.Method == http.MethodPost {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &f.created)
	}
	f.mu.Unlock()

	if call == f.failOn {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = io.WriteString(w, `{"message":"The name field is required."}`)
		return
	}

	switch call {
	case "GET /profile":
		_, _ = io.WriteString(w, `{"name":"Ada Lovelace","email":"ada@example.com"}`)
	case "GET /stats":
		_, _ = io.WriteString(w, `{"assets_count":2}`)
	case "GET /assets":
		_, _ = io.WriteString(w, `[{"name":"Poem","category":"creative_work"},{"name":"Corpus","category":"dataset"}]`)
	case "POST /assets":
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"success":true,"data":{"id":77}}`)
	case "PUT /assets/77":
		_, _ = io.WriteString(w, `{"success":true}`)
	case "GET /assets/77/analytics":
		_, _ = io.WriteString(w, `{"views":3}`)
	case "GET /analytics/summary":
		_, _ = io.WriteString(w, `{"total_views":12}`)
	case "DELETE /assets/77":
		_, _ = io.WriteString(w, `{"success":true}`)
	default:
		http.NotFound(w, r)
	}
}

func newWalkthroughSession(t *testing.T, api *fakeOpttab, events EventPublisher) *Session {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	client, err := opttab.New("demo-key", opttab.WithBaseURL(srv.URL+"/api/v1/user"))
	if err != nil {
		t.Fatalf("opttab.New: %v", err)
	}
	return NewSession(client, events, nil)
}

func TestWalkthroughRunsEveryEndpoint(t *testing.T) {
	api := &fakeOpttab{}
	events := &fakeEvents{}
	s := newWalkthroughSession(t, api, events)

	var out bytes.Buffer
	if err := s.Walkthrough(context.Background(), &out); err != nil {
		t.Fatalf("Walkthrough: %v", err)
	}

	wantCalls := []string{
		"GET /profile",
		"GET /stats",
		"GET /assets",
		"POST /assets",
		"PUT /assets/77",
		"GET /assets/77/analytics",
		"GET /analytics/summary",
		"DELETE /assets/77",
	}
	if strings.Join(api.calls, "\n") != strings.Join(wantCalls, "\n") {
		t.Fatalf("calls = %v", api.calls)
	}

	transcript := out.String()
	for _, want := range []string{
		"Hello, Ada Lovelace!",
		"Total assets: 2",
		"Found 2 assets",
		"  - Corpus (dataset)",
		"Created asset with ID: 77",
		"Asset updated successfully",
		`"total_views": 12`,
		"Asset deleted successfully",
	} {
		if !strings.Contains(transcript, want) {
			t.Fatalf("transcript missing %q:\n%s", want, transcript)
		}
	}

	if api.created["name"] != DemoAsset.Name || api.created["category"] != "creative_work" {
		t.Fatalf("unexpected create body %#v", api.created)
	}
	if len(events.events) != 3 {
		t.Fatalf("expected 3 lifecycle events, got %d", len(events.events))
	}
}

func TestWalkthroughStopsOnHTTPError(t *testing.T) {
	api := &fakeOpttab{failOn: "POST /assets"}
	s := newWalkthroughSession(t, api, nil)

	var out bytes.Buffer
	err := s.Walkthrough(context.Background(), &out)
	var httpErr *opttab.HTTPError
	if !errors.As(err, &httpErr) || httpErr.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 HTTPError, got %v", err)
	}
	if last := api.calls[len(api.calls)-1]; last != "POST /assets" {
		t.Fatalf("walkthrough continued after failure: %v", api.calls)
	}
}
