package app

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/opttab/opttab-go/pkg/opttab"
	"github.com/opttab/opttab-go/pkg/publishers"
)

// fakeAPI returns canned responses and records mutating calls.
type fakeAPI struct {
	createResp opttab.Object
	err        error
	updated    []int64
	deleted    []int64
}

func (f *fakeAPI) GetProfile(context.Context) (opttab.Object, error) {
	return opttab.Object{"name": "Ada"}, f.err
}
func (f *fakeAPI) GetStats(context.Context) (opttab.Object, error) {
	return opttab.Object{"assets_count": json.Number("2")}, f.err
}
func (f *fakeAPI) ListAssets(context.Context, opttab.ListAssetsOptions) ([]opttab.Object, error) {
	return nil, f.err
}
func (f *fakeAPI) CreateAsset(context.Context, opttab.AssetInput) (opttab.Object, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.createResp, nil
}
func (f *fakeAPI) UpdateAsset(_ context.Context, id int64, _ opttab.AssetPatch) (opttab.Object, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.updated = append(f.updated, id)
	return opttab.Object{}, nil
}
func (f *fakeAPI) DeleteAsset(_ context.Context, id int64) (opttab.Object, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.deleted = append(f.deleted, id)
	return opttab.Object{}, nil
}
func (f *fakeAPI) GetAssetAnalytics(context.Context, int64) (opttab.Object, error) {
	return opttab.Object{}, f.err
}
func (f *fakeAPI) GetAnalyticsSummary(context.Context) (opttab.Object, error) {
	return opttab.Object{}, f.err
}

// fakeEvents records published events.
type fakeEvents struct {
	events []publishers.Event
	err    error
}

func (f *fakeEvents) Publish(_ context.Context, evt publishers.Event) (int, error) {
	f.events = append(f.events, evt)
	if f.err != nil {
		return 0, f.err
	}
	return 1, nil
}

func TestSessionPublishesLifecycleEvents(t *testing.T) {
	api := &fakeAPI{createResp: opttab.Object{"data": map[string]any{"id": json.Number("11"), "name": "T"}}}
	events := &fakeEvents{}
	s := NewSession(api, events, nil)
	ctx := context.Background()

	if _, err := s.CreateAsset(ctx, opttab.AssetInput{Name: "T", Category: "creative_work"}); err != nil {
		t.Fatalf("CreateAsset: %v", err)
	}
	if _, err := s.UpdateAsset(ctx, 11, opttab.AssetPatch{"description": "x"}); err != nil {
		t.Fatalf("UpdateAsset: %v", err)
	}
	if _, err := s.DeleteAsset(ctx, 11); err != nil {
		t.Fatalf("DeleteAsset: %v", err)
	}

	wantTypes := []string{publishers.EventAssetCreated, publishers.EventAssetUpdated, publishers.EventAssetDeleted}
	if len(events.events) != len(wantTypes) {
		t.Fatalf("expected %d events, got %d", len(wantTypes), len(events.events))
	}
	for i, evt := range events.events {
		if evt.Type != wantTypes[i] || evt.AssetID != 11 {
			t.Fatalf("event %d = %+v", i, evt)
		}
	}
	if events.events[0].Payload["name"] != "T" {
		t.Fatalf("created payload = %#v", events.events[0].Payload)
	}
	if events.events[1].Payload["description"] != "x" {
		t.Fatalf("updated payload = %#v", events.events[1].Payload)
	}
}

func TestSessionSkipsEventsOnAPIError(t *testing.T) {
	api := &fakeAPI{err: errors.New("down")}
	events := &fakeEvents{}
	s := NewSession(api, events, nil)

	if _, err := s.DeleteAsset(context.Background(), 3); err == nil {
		t.Fatalf("expected API error")
	}
	if len(events.events) != 0 {
		t.Fatalf("no event expected on failure, got %d", len(events.events))
	}
}

func TestSessionIgnoresPublishFailures(t *testing.T) {
	api := &fakeAPI{}
	events := &fakeEvents{err: errors.New("queue unavailable")}
	s := NewSession(api, events, nil)

	if _, err := s.UpdateAsset(context.Background(), 4, opttab.AssetPatch{"name": "n"}); err != nil {
		t.Fatalf("publish failure must not fail the call: %v", err)
	}
	if len(api.updated) != 1 {
		t.Fatalf("update not forwarded")
	}
}

func TestSessionCreateWithoutIDSkipsEvent(t *testing.T) {
	api := &fakeAPI{createResp: opttab.Object{"success": true}}
	events := &fakeEvents{}
	s := NewSession(api, events, nil)

	resp, err := s.CreateAsset(context.Background(), opttab.AssetInput{Name: "a", Category: "b"})
	if err != nil {
		t.Fatalf("CreateAsset: %v", err)
	}
	if resp["success"] != true {
		t.Fatalf("response not returned: %#v", resp)
	}
	if len(events.events) != 0 {
		t.Fatalf("expected no event without id")
	}
}

func TestSessionWithoutPublisher(t *testing.T) {
	s := NewSession(&fakeAPI{}, nil, nil)
	if _, err := s.DeleteAsset(context.Background(), 1); err != nil {
		t.Fatalf("DeleteAsset: %v", err)
	}
}
