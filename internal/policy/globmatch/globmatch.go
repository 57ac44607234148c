// SPDX-License-Identifier: Apache-2.0

// Package globmatch implements the case-sensitive wildcard matching used by
// IAM string clauses (Action, Resource, Principal patterns, and the
// StringLike family of condition operators). "*" matches any run of
// characters including none, "?" matches exactly one character; both are
// compiled once via gobwas/glob rather than a hand-rolled backtracker, the
// same library the engine's StringLike condition operator already leans on.
package globmatch

import (
	"strings"
	"sync"

	"github.com/gobwas/glob"
)

// cache memoizes compiled patterns; policies are evaluated repeatedly
// against the same small set of patterns, so recompiling per call would be
// wasted work on every request.
var cache sync.Map // map[string]glob.Glob

// compile returns the compiled form of pattern, compiling and caching it on
// first use. A pattern that fails to compile (which should not happen for
// well-formed "*"/"?" globs) is cached as nil so repeated lookups don't keep
// retrying.
func compile(pattern string) glob.Glob {
	if v, ok := cache.Load(pattern); ok {
		g, _ := v.(glob.Glob)
		return g
	}

	// Escape gobwas/glob's other metacharacters so that only "*" and "?"
	// act as wildcards and everything else (e.g. "${aws:username}") is
	// matched literally.
	var escaped strings.Builder
	for _, r := range pattern {
		switch r {
		case '\\', '[', ']', '{', '}':
			escaped.WriteByte('\\')
		}
		escaped.WriteRune(r)
	}

	var g glob.Glob
	if compiled, err := glob.Compile(escaped.String()); err == nil {
		g = compiled
	}
	cache.Store(pattern, g)
	return g
}

// Match reports whether target matches pattern, where pattern may contain
// "*" and "?" wildcards. Matching is case-sensitive, as IAM's does. A
// pattern with no wildcard characters is compared with a plain string
// equality fast path.
func Match(pattern, target string) bool {
	if !strings.ContainsAny(pattern, "*?") {
		return pattern == target
	}

	g := compile(pattern)
	if g == nil {
		return false
	}
	return g.Match(target)
}

// MatchFold is Match's case-insensitive counterpart. No condition operator
// calls it: StringEqualsIgnoreCase and StringNotEqualsIgnoreCase compare
// with strings.EqualFold and do no pattern matching.
func MatchFold(pattern, target string) bool {
	if !strings.ContainsAny(pattern, "*?") {
		return strings.EqualFold(pattern, target)
	}
	return Match(strings.ToLower(pattern), strings.ToLower(target))
}
