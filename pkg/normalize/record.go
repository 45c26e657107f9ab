// Package normalize turns loosely-structured input records into canonical,
// whitespace-trimmed, case-normalized records with derived fields.
package normalize

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Metadata is attached to every normalized record.
type Metadata struct {
	ProcessedAt string `json:"processed_at"`
	Version     string `json:"version"`
	Status      string `json:"status"`
}

// Record is the canonical shape produced by the normalizer.
type Record struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	WordCount   int      `json:"word_count"`
	Metadata    Metadata `json:"metadata"`
}

// Normalizer cleans raw records. It is stateless apart from its clock and
// safe for concurrent use.
type Normalizer struct {
	now func() time.Time
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithClock overrides the time source used for processed_at timestamps.
func WithClock(now func() time.Time) Option {
	return func(n *Normalizer) { n.now = now }
}

// New returns a Normalizer using the real clock unless overridden.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{now: time.Now}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize processes items in order and returns the cleaned records.
// Items that are not JSON objects, or that lack an "id" or "name" key, are
// silently omitted. A nil input yields an empty slice. Normalize never
// panics on malformed input.
func (n *Normalizer) Normalize(items []any) []Record {
	out := []Record{}
	if len(items) == 0 {
		return out
	}

	// Casers are stateful, so each call gets its own.
	title := cases.Title(language.Und)

	for _, item := range items {
		record, ok := item.(map[string]any)
		if !ok {
			continue
		}

		id, hasID := record["id"]
		name, hasName := record["name"]
		if !hasID || !hasName {
			continue
		}

		description := stringOr(record["description"], "")
		category := stringOr(record["category"], "uncategorized")

		cleaned := Record{
			ID:          strings.TrimSpace(stringify(id)),
			Name:        title.String(strings.TrimSpace(stringify(name))),
			Description: description,
			Category:    strings.ToLower(category),
			Tags:        cleanTags(record["tags"]),
			Metadata: Metadata{
				ProcessedAt: n.now().UTC().Format(time.RFC3339),
				Version:     "1.0",
				Status:      "active",
			},
		}

		if trimmed := strings.TrimSpace(cleaned.Description); trimmed != "" {
			cleaned.WordCount = len(strings.Fields(trimmed))
		}

		out = append(out, cleaned)
	}

	return out
}

// cleanTags trims and lowercases each tag, preserving order. A value that is
// not a list is treated as absent.
func cleanTags(raw any) []string {
	tags := []string{}
	list, ok := raw.([]any)
	if !ok {
		if strs, ok := raw.([]string); ok {
			for _, s := range strs {
				tags = append(tags, strings.ToLower(strings.TrimSpace(s)))
			}
		}
		return tags
	}
	for _, tag := range list {
		tags = append(tags, strings.ToLower(strings.TrimSpace(stringify(tag))))
	}
	return tags
}

// stringOr returns raw as a string, or fallback when raw is missing or not
// a string.
func stringOr(raw any, fallback string) string {
	if s, ok := raw.(string); ok {
		return s
	}
	return fallback
}

// stringify renders an arbitrary decoded-JSON value as a string. Numbers
// decoded as float64 render without a fractional part when integral, so an
// id of 1 becomes "1" rather than "1e+00".
func stringify(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		// The integer path only applies within int64 range; converting
		// beyond it is undefined and would yield garbage digits.
		if val == math.Trunc(val) && math.Abs(val) < 1<<63 {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(val)
	}
}
