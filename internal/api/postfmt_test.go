package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	var gotBody FormatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/format", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"platform":"linkedin","blocks":[{"type":"paragraph","text":"hi"}]}]}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, "")
	resp, err := c.Format(context.Background(), FormatRequest{
		Text:      "hi",
		Platforms: []string{"linkedin"},
		Tone:      "casual",
	})
	require.NoError(t, err)

	assert.Equal(t, "hi", gotBody.Text)
	assert.Equal(t, []string{"linkedin"}, gotBody.Platforms)
	assert.Equal(t, "casual", gotBody.Tone)

	require.Len(t, resp.Results, 1)
	assert.Equal(t, "linkedin", resp.Results[0].Platform)
	assert.JSONEq(t, `[{"type":"paragraph","text":"hi"}]`, string(resp.Results[0].Blocks))
}

func TestFormat_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error":"unknown platform \"myspace\""}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, "")
	_, err := c.Format(context.Background(), FormatRequest{Text: "hi", Platforms: []string{"myspace"}})
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "myspace")
}

func TestFormat_ErrorWithoutBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, "")
	_, err := c.Format(context.Background(), FormatRequest{Text: "hi"})

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "POSTFMT_API_KEY")
}

func TestFormat_MalformedResponseBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, "")
	_, err := c.Format(context.Background(), FormatRequest{Text: "hi"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding format response")
}

func TestShorten(t *testing.T) {
	var gotBody ShortenRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/shorten", r.URL.Path)

		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text":"short version"}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, "")
	resp, err := c.Shorten(context.Background(), ShortenRequest{
		Text:      "a very long post that needs trimming",
		MaxLength: 280,
		Platform:  "twitter",
	})
	require.NoError(t, err)

	assert.Equal(t, 280, gotBody.MaxLength)
	assert.Equal(t, "twitter", gotBody.Platform)
	assert.Equal(t, "short version", resp.Text)
}

func TestStatusMessage(t *testing.T) {
	assert.Contains(t, statusMessage(http.StatusTooManyRequests), "rate limited")
	assert.Contains(t, statusMessage(http.StatusTeapot), "418")
}
