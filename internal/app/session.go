package app

import (
	"context"

	"github.com/opttab/opttab-go/internal/logger"
	"github.com/opttab/opttab-go/pkg/opttab"
	"github.com/opttab/opttab-go/pkg/publishers"
)

// Session forwards calls to the API and publishes an event after each
// successful mutation. Event delivery failures are logged, never returned.
type Session struct {
	api    API
	events EventPublisher
	log    logger.Logger
}

// NewSession wires a session. events may be nil.
func NewSession(api API, events EventPublisher, log logger.Logger) *Session {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Session{api: api, events: events, log: log}
}

func (s *Session) Profile(ctx context.Context) (opttab.Object, error) {
	return s.api.GetProfile(ctx)
}

func (s *Session) Stats(ctx context.Context) (opttab.Object, error) {
	return s.api.GetStats(ctx)
}

func (s *Session) ListAssets(ctx context.Context, opts opttab.ListAssetsOptions) ([]opttab.Object, error) {
	return s.api.ListAssets(ctx, opts)
}

func (s *Session) AssetAnalytics(ctx context.Context, id int64) (opttab.Object, error) {
	return s.api.GetAssetAnalytics(ctx, id)
}

func (s *Session) AnalyticsSummary(ctx context.Context) (opttab.Object, error) {
	return s.api.GetAnalyticsSummary(ctx)
}

// CreateAsset creates an asset and publishes asset.created with the returned data.
func (s *Session) CreateAsset(ctx context.Context, in opttab.AssetInput) (opttab.Object, error) {
	resp, err := s.api.CreateAsset(ctx, in)
	if err != nil {
		return nil, err
	}

	id, err := opttab.AssetID(resp)
	if err != nil {
		s.log.WarnObj("created asset has no id; event skipped", "error", err.Error())
		return resp, nil
	}
	data, _ := resp["data"].(map[string]any)
	s.publish(ctx, publishers.NewEvent(publishers.EventAssetCreated, id, data))
	return resp, nil
}

// UpdateAsset patches an asset and publishes asset.updated carrying the patch.
func (s *Session) UpdateAsset(ctx context.Context, id int64, patch opttab.AssetPatch) (opttab.Object, error) {
	resp, err := s.api.UpdateAsset(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, publishers.NewEvent(publishers.EventAssetUpdated, id, patch))
	return resp, nil
}

// DeleteAsset deletes an asset and publishes asset.deleted.
func (s *Session) DeleteAsset(ctx context.Context, id int64) (opttab.Object, error) {
	resp, err := s.api.DeleteAsset(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, publishers.NewEvent(publishers.EventAssetDeleted, id, nil))
	return resp, nil
}

func (s *Session) publish(ctx context.Context, evt publishers.Event) {
	if s.events == nil {
		return
	}
	delivered, err := s.events.Publish(ctx, evt)
	if err != nil {
		s.log.WarnObj("asset event delivery failed", "event_error", map[string]any{
			"event_type": evt.Type,
			"asset_id":   evt.AssetID,
			"delivered":  delivered,
			"error":      err.Error(),
		})
		return
	}
	s.log.DebugObj("asset event published", "event_meta", map[string]any{
		"event_type": evt.Type,
		"asset_id":   evt.AssetID,
		"delivered":  delivered,
	})
}
