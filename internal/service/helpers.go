package service

import (
	"strings"
	"time"
)

// parseScheduledTime accepts RFC 3339 or the shorter datetime-local form
// browsers submit. The result is always UTC.
func parseScheduledTime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02T15:04", value)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// normalizePlatforms trims, lowercases and collapses duplicates, keeping
// first-occurrence order.
func normalizePlatforms(platforms []string) []string {
	seen := make(map[string]struct{}, len(platforms))
	normalized := make([]string, 0, len(platforms))
	for _, p := range platforms {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		normalized = append(normalized, p)
	}
	return normalized
}
