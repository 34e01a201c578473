// Package match scores candidate names against free-text target hints.
package match

import (
	sfuzzy "github.com/sahilm/fuzzy"
)

// Score rates how well name matches query under a subsequence heuristic.
// 0 means no match; larger values mean a closer match. A name equal to the
// query scores at least as high as any superset of it. Deterministic.
func Score(query, name string) int {
	if query == "" || name == "" {
		return 0
	}
	matches := sfuzzy.Find(query, []string{name})
	if len(matches) == 0 {
		return 0
	}
	// The backend penalizes unmatched leading characters and can go
	// negative for poor matches. Clamp so that any successful subsequence
	// match stays distinguishable from "no match".
	if s := matches[0].Score; s > 0 {
		return s
	}
	return 1
}
