package api

import "encoding/json"

// FormatRequest is the payload for POST /api/format.
type FormatRequest struct {
	Text      string   `json:"text"`
	Platforms []string `json:"platforms"`
	Tone      string   `json:"tone,omitempty"`
}

// PlatformResult is one per-platform entry in a format response. Blocks
// stay raw JSON here: the service output is untrusted and is validated by
// the blocks package at the consumer, not by the transport layer.
type PlatformResult struct {
	Platform string          `json:"platform"`
	Blocks   json.RawMessage `json:"blocks"`
}

// FormatResponse is the response from POST /api/format.
type FormatResponse struct {
	Results []PlatformResult `json:"results"`
}

// ShortenRequest is the payload for POST /api/shorten.
type ShortenRequest struct {
	Text      string `json:"text"`
	MaxLength int    `json:"max_length"`
	Platform  string `json:"platform,omitempty"`
}

// ShortenResponse is the response from POST /api/shorten.
type ShortenResponse struct {
	Text string `json:"text"`
}
