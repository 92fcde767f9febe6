package client

import (
	"context"
	"encoding/json"
	"fmt"
)

const (
	endpointVersion = "/api/version"
	endpointPublic  = "/api/public"
	endpointNodes   = "/api/nodes"
)

// GetVersion fetches the panel version from /api/version.
func (c *Client) GetVersion(ctx context.Context) (*VersionInfo, error) {
	body, err := c.doGet(ctx, endpointVersion)
	if err != nil {
		return nil, fmt.Errorf("GetVersion: %w", err)
	}

	payload, err := unwrap(body)
	if err != nil {
		return nil, fmt.Errorf("GetVersion: %w", err)
	}
	var result VersionInfo
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("GetVersion decode: %w", err)
	}
	return &result, nil
}

// GetPublicSettings fetches the public site settings from /api/public.
func (c *Client) GetPublicSettings(ctx context.Context) (*PublicSettings, error) {
	body, err := c.doGet(ctx, endpointPublic)
	if err != nil {
		return nil, fmt.Errorf("GetPublicSettings: %w", err)
	}

	payload, err := unwrap(body)
	if err != nil {
		return nil, fmt.Errorf("GetPublicSettings: %w", err)
	}
	var result PublicSettings
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("GetPublicSettings decode: %w", err)
	}
	return &result, nil
}

// GetNodes fetches the static node list from /api/nodes.
func (c *Client) GetNodes(ctx context.Context) ([]NodeInfo, error) {
	body, err := c.doGet(ctx, endpointNodes)
	if err != nil {
		return nil, fmt.Errorf("GetNodes: %w", err)
	}

	payload, err := unwrap(body)
	if err != nil {
		return nil, fmt.Errorf("GetNodes: %w", err)
	}
	var result []NodeInfo
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("GetNodes decode: %w", err)
	}
	return result, nil
}
