// Package cache provides file-based caching of AI formatting results with
// TTL support, so repeated runs over the same draft do not re-bill the
// remote service.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dedene/postfmt-cli/internal/api"
)

// maxEntries caps the cache file; oldest entries are evicted on save.
const maxEntries = 32

// entry is one cached format response.
type entry struct {
	Response  api.FormatResponse `json:"response"`
	FetchedAt time.Time          `json:"fetched_at"`
}

// resultCache is the on-disk representation.
type resultCache struct {
	Entries map[string]entry `json:"entries"`
}

// Key derives the cache key for a format request. Text, platform set, and
// tone all influence the response, so all three feed the hash.
func Key(req api.FormatRequest) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%s\x00%s", req.Text, strings.Join(req.Platforms, ","), req.Tone)

	return hex.EncodeToString(h.Sum(nil))
}

// LoadResult reads the cache file and returns the response for key if fresh.
// Returns (nil, nil) when: file missing, JSON corrupt, key absent, or TTL
// expired. Only returns a non-nil error for unexpected read failures.
func LoadResult(path, key string, ttl time.Duration) (*api.FormatResponse, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is internal cache, not untrusted input
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}

		return nil, fmt.Errorf("reading cache: %w", err)
	}

	var rc resultCache
	if err := json.Unmarshal(data, &rc); err != nil {
		// Corrupt cache -- treat as miss.
		return nil, nil //nolint:nilerr
	}

	e, ok := rc.Entries[key]
	if !ok || time.Since(e.FetchedAt) > ttl {
		return nil, nil
	}

	return &e.Response, nil
}

// SaveResult stores a response under key, evicting the oldest entries past
// the cap, and writes the cache file atomically.
func SaveResult(path, key string, resp *api.FormatResponse) error {
	rc := resultCache{Entries: map[string]entry{}}

	if data, err := os.ReadFile(path); err == nil { //nolint:gosec // internal cache path
		// Ignore corruption; the cache rebuilds itself.
		_ = json.Unmarshal(data, &rc)

		if rc.Entries == nil {
			rc.Entries = map[string]entry{}
		}
	}

	rc.Entries[key] = entry{Response: *resp, FetchedAt: time.Now()}

	evictOldest(rc.Entries, maxEntries)

	data, err := json.MarshalIndent(rc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling cache: %w", err)
	}

	data = append(data, '\n')

	return atomicWrite(path, data)
}

// evictOldest trims m to at most limit entries by fetch time.
func evictOldest(m map[string]entry, limit int) {
	if len(m) <= limit {
		return
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool {
		return m[keys[i]].FetchedAt.Before(m[keys[j]].FetchedAt)
	})

	for _, k := range keys[:len(m)-limit] {
		delete(m, k)
	}
}

// atomicWrite writes data to path via temp-file + rename.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	tmpPath := tmp.Name()

	defer func() {
		if tmpPath != "" {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()

		return fmt.Errorf("writing temp file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}

	tmpPath = "" // prevent deferred cleanup

	return nil
}
