package publishers

import (
	"strconv"
	"time"
)

// Asset lifecycle event types.
const (
	EventAssetCreated = "asset.created"
	EventAssetUpdated = "asset.updated"
	EventAssetDeleted = "asset.deleted"
)

// Event represents the payload published downstream after a successful API call.
type Event struct {
	Type       string         `json:"type"`
	AssetID    int64          `json:"asset_id"`
	Payload    map[string]any `json:"payload,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// NewEvent constructs an Event for the given asset.
func NewEvent(typ string, assetID int64, payload map[string]any) Event {
	return Event{
		Type:       typ,
		AssetID:    assetID,
		Payload:    payload,
		OccurredAt: time.Now().UTC(),
	}
}

// attributes returns the routing attributes attached to queue messages.
func (e Event) attributes() map[string]string {
	return map[string]string{
		"event_type": e.Type,
		"asset_id":   strconv.FormatInt(e.AssetID, 10),
	}
}
