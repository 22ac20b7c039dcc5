package socrata

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"
)

// Metadata is the raw dataset metadata document as returned by the service.
type Metadata map[string]interface{}

// stampRule names one candidate location of the last-updated value. The
// upstream service has used both rowsUpdatedAt and dataUpdatedAt, at the top
// level and under the nested "metadata" object; the rules are tried in order
// and the first non-empty value wins.
type stampRule struct {
	field  string
	nested bool
}

var stampRules = []stampRule{
	{field: "rowsUpdatedAt"},
	{field: "dataUpdatedAt"},
	{field: "dataUpdatedAt", nested: true},
	{field: "rowsUpdatedAt", nested: true},
}

// FetchMetadata retrieves the dataset metadata document.
func (c *Client) FetchMetadata(ctx context.Context) (Metadata, error) {
	ctx, cancel := context.WithTimeout(ctx, metadataTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.metadataURL(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build metadata request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dataset metadata: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: c.metadataURL(), StatusCode: resp.StatusCode}
	}

	var metadata Metadata
	if err := json.NewDecoder(resp.Body).Decode(&metadata); err != nil {
		return nil, fmt.Errorf("failed to decode dataset metadata: %w", err)
	}

	return metadata, nil
}

// UpdateStamp extracts the dataset's last-updated value and normalizes it to
// a YYYYMMDDHHMM stamp in UTC. An absent or unparsable value yields "".
func (m Metadata) UpdateStamp() string {
	for _, rule := range stampRules {
		doc := map[string]interface{}(m)
		if rule.nested {
			nested, ok := m["metadata"].(map[string]interface{})
			if !ok {
				continue
			}
			doc = nested
		}
		if stamp := normalizeStamp(doc[rule.field]); stamp != "" {
			return stamp
		}
	}
	return ""
}

// LastUpdateStamp fetches the metadata and returns the normalized update
// stamp. A missing stamp is not an error, only transport and decode
// failures are.
func (c *Client) LastUpdateStamp(ctx context.Context) (string, error) {
	metadata, err := c.FetchMetadata(ctx)
	if err != nil {
		return "", err
	}
	return metadata.UpdateStamp(), nil
}

// ResolveOutputPath decides where the download is written. An explicitly
// requested path is used verbatim. Otherwise the name is derived from the
// dataset's update stamp, falling back to the current UTC time when the
// metadata lookup fails in any way.
func (c *Client) ResolveOutputPath(ctx context.Context, requestedPath string) string {
	if requestedPath != "" {
		return requestedPath
	}

	stamp, err := c.LastUpdateStamp(ctx)
	if err != nil {
		slog.Warn("metadata lookup failed, falling back to current time", "error", err)
	}
	if stamp == "" {
		stamp = time.Now().UTC().Format(stampLayout)
	}

	return fmt.Sprintf(outputTemplate, stamp)
}

func normalizeStamp(value interface{}) string {
	switch v := value.(type) {
	case float64:
		if v == 0 {
			return ""
		}
		return time.Unix(int64(v), 0).UTC().Format(stampLayout)
	case string:
		if v == "" {
			return ""
		}
		if isDigits(v) {
			epoch, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return ""
			}
			return time.Unix(epoch, 0).UTC().Format(stampLayout)
		}
		return parseISOStamp(v)
	default:
		return ""
	}
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// parseISOStamp accepts RFC 3339 timestamps (a trailing Z or a numeric
// offset) as well as zone-less ISO 8601 values, which are taken as UTC.
func parseISOStamp(s string) string {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Format(stampLayout)
		}
	}
	return ""
}
