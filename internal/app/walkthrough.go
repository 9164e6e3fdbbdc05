package app

import (
	"context"
	"fmt"
	"io"

	"github.com/opttab/opttab-go/pkg/opttab"
)

// DemoAsset is the asset the walkthrough creates and later deletes.
var DemoAsset = opttab.AssetInput{
	Name:        "My API Test Asset",
	Category:    "creative_work",
	Description: "Created via Go API",
	Links:       []string{"https://example.com"},
	AIModels:    []string{"OpenAI", "Google Gemini"},
}

const demoUpdatedDescription = "Updated via Go API"

// Walkthrough exercises every endpoint once and writes a human readable
// transcript to w. It stops at the first error.
func (s *Session) Walkthrough(ctx context.Context, w io.Writer) error {
	fmt.Fprintln(w, "Fetching profile...")
	profile, err := s.Profile(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Hello, %s!\n", field(profile, "name"))

	fmt.Fprintln(w, "\nFetching stats...")
	stats, err := s.Stats(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Total assets: %s\n", field(stats, "assets_count"))

	fmt.Fprintln(w, "\nListing assets...")
	assets, err := s.ListAssets(ctx, opttab.ListAssetsOptions{Limit: 5})
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Found %d assets\n", len(assets))
	for _, asset := range assets {
		fmt.Fprintf(w, "  - %s (%s)\n", field(asset, "name"), field(asset, "category"))
	}

	fmt.Fprintln(w, "\nCreating new asset...")
	created, err := s.CreateAsset(ctx, DemoAsset)
	if err != nil {
		return err
	}
	id, err := opttab.AssetID(created)
	if err != nil {
		return fmt.Errorf("read created asset id: %w", err)
	}
	fmt.Fprintf(w, "Created asset with ID: %d\n", id)

	fmt.Fprintln(w, "\nUpdating asset...")
	if _, err := s.UpdateAsset(ctx, id, opttab.AssetPatch{"description": demoUpdatedDescription}); err != nil {
		return err
	}
	fmt.Fprintln(w, "Asset updated successfully")

	fmt.Fprintln(w, "\nFetching asset analytics...")
	assetAnalytics, err := s.AssetAnalytics(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprint(w, "Asset analytics: ")
	if err := PrintJSON(w, assetAnalytics); err != nil {
		return err
	}

	fmt.Fprintln(w, "\nFetching analytics summary...")
	summary, err := s.AnalyticsSummary(ctx)
	if err != nil {
		return err
	}
	fmt.Fprint(w, "Analytics: ")
	if err := PrintJSON(w, summary); err != nil {
		return err
	}

	fmt.Fprintln(w, "\nDeleting test asset...")
	if _, err := s.DeleteAsset(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(w, "Asset deleted successfully")
	return nil
}

func field(obj opttab.Object, key string) string {
	v, ok := obj[key]
	if !ok || v == nil {
		return "unknown"
	}
	return fmt.Sprint(v)
}
