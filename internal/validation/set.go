package validation

import (
	"strings"

	"golang.org/x/text/cases"
)

// NormalizeSet trims entries, drops empty ones and removes duplicates that
// differ only in case. The first spelling of each entry wins.
func NormalizeSet(values []string) []string {
	fold := cases.Fold()
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		key := fold.String(v)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, v)
	}
	return out
}

// NormalizeTags trims and de-duplicates exact matches only.
func NormalizeTags(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
