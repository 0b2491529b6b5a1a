package api

import (
	"bytes"
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/bytedance/sonic/decoder"
)

// Format posts text to /api/format and returns per-platform block lists.
// Block payloads come back raw; validate them with the blocks package
// before rendering.
func (c *Client) Format(ctx context.Context, req FormatRequest) (*FormatResponse, error) {
	body, err := sonic.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshaling format request: %w", err)
	}

	resp, err := c.Post(ctx, "/api/format", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("posting format request: %w", err)
	}
	defer resp.Body.Close()

	if err := checkResponse(resp); err != nil {
		return nil, err
	}

	var out FormatResponse
	if err := decoder.NewStreamDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding format response: %w", err)
	}

	return &out, nil
}

// Shorten posts text to /api/shorten and returns the shortened rewrite.
func (c *Client) Shorten(ctx context.Context, req ShortenRequest) (*ShortenResponse, error) {
	body, err := sonic.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshaling shorten request: %w", err)
	}

	resp, err := c.Post(ctx, "/api/shorten", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("posting shorten request: %w", err)
	}
	defer resp.Body.Close()

	if err := checkResponse(resp); err != nil {
		return nil, err
	}

	var out ShortenResponse
	if err := decoder.NewStreamDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding shorten response: %w", err)
	}

	return &out, nil
}
