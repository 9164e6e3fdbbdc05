package app

import (
	"context"

	"github.com/opttab/opttab-go/pkg/opttab"
	"github.com/opttab/opttab-go/pkg/publishers"
)

// API is the subset of the Opttab client the session drives.
type API interface {
	GetProfile(ctx context.Context) (opttab.Object, error)
	GetStats(ctx context.Context) (opttab.Object, error)
	ListAssets(ctx context.Context, opts opttab.ListAssetsOptions) ([]opttab.Object, error)
	CreateAsset(ctx context.Context, in opttab.AssetInput) (opttab.Object, error)
	UpdateAsset(ctx context.Context, id int64, patch opttab.AssetPatch) (opttab.Object, error)
	DeleteAsset(ctx context.Context, id int64) (opttab.Object, error)
	GetAssetAnalytics(ctx context.Context, id int64) (opttab.Object, error)
	GetAnalyticsSummary(ctx context.Context) (opttab.Object, error)
}

// EventPublisher publishes asset lifecycle events downstream.
type EventPublisher interface {
	Publish(ctx context.Context, evt publishers.Event) (int, error)
}
