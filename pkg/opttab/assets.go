package opttab

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// DefaultListLimit is used when ListAssetsOptions.Limit is zero.
const DefaultListLimit = 10

// ListAssetsOptions filters ListAssets. An empty Status is not sent.
type ListAssetsOptions struct {
	Limit  int
	Status string
}

// AssetInput is the body of a create request. All five fields are always sent.
type AssetInput struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Links       []string `json:"links"`
	AIModels    []string `json:"ai_models"`
}

// AssetPatch maps asset field names to new values. It is sent verbatim.
type AssetPatch map[string]any

// ListAssets returns assets owned by the authenticated user.
func (c *Client) ListAssets(ctx context.Context, opts ListAssetsOptions) ([]Object, error) {
	limit := opts.Limit
	if limit == 0 {
		limit = DefaultListLimit
	}
	if limit < 0 {
		return nil, invalidInput("limit must be positive, got %d", limit)
	}

	query := map[string]string{"limit": strconv.Itoa(limit)}
	if opts.Status != "" {
		query["status"] = opts.Status
	}

	var out []Object
	if err := c.do(ctx, http.MethodGet, "/assets", query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateAsset creates an asset. Nil Links or AIModels are sent as empty arrays.
func (c *Client) CreateAsset(ctx context.Context, in AssetInput) (Object, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, invalidInput("asset name is required")
	}
	if strings.TrimSpace(in.Category) == "" {
		return nil, invalidInput("asset category is required")
	}
	if in.Links == nil {
		in.Links = []string{}
	}
	if in.AIModels == nil {
		in.AIModels = []string{}
	}

	var out Object
	if err := c.do(ctx, http.MethodPost, "/assets", nil, in, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateAsset applies patch to the asset with the given id.
func (c *Client) UpdateAsset(ctx context.Context, id int64, patch AssetPatch) (Object, error) {
	if err := validateAssetID(id); err != nil {
		return nil, err
	}
	if patch == nil {
		patch = AssetPatch{}
	}

	var out Object
	if err := c.do(ctx, http.MethodPut, assetPath(id), nil, patch, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteAsset deletes the asset with the given id.
func (c *Client) DeleteAsset(ctx context.Context, id int64) (Object, error) {
	if err := validateAssetID(id); err != nil {
		return nil, err
	}

	var out Object
	if err := c.do(ctx, http.MethodDelete, assetPath(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetAssetAnalytics returns analytics for a single asset.
func (c *Client) GetAssetAnalytics(ctx context.Context, id int64) (Object, error) {
	if err := validateAssetID(id); err != nil {
		return nil, err
	}

	var out Object
	if err := c.do(ctx, http.MethodGet, assetPath(id)+"/analytics", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func assetPath(id int64) string {
	return "/assets/" + strconv.FormatInt(id, 10)
}

func validateAssetID(id int64) error {
	if id <= 0 {
		return invalidInput("asset id must be positive, got %d", id)
	}
	return nil
}

// AssetID extracts data.id from a CreateAsset response.
func AssetID(resp Object) (int64, error) {
	data, ok := resp["data"].(map[string]any)
	if !ok {
		return 0, fmt.Errorf("response has no data object")
	}
	raw, ok := data["id"]
	if !ok {
		return 0, fmt.Errorf("response data has no id")
	}
	return toInt64(raw)
}

func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case json.Number:
		return n.Int64()
	case float64:
		if n != float64(int64(n)) {
			return 0, fmt.Errorf("id %v is not an integer", n)
		}
		return int64(n), nil
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case string:
		return strconv.ParseInt(strings.TrimSpace(n), 10, 64)
	default:
		return 0, fmt.Errorf("unsupported id type %T", v)
	}
}
