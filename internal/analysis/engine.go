// Package analysis implements the analytical core of stacklens: pattern
// classification over thread text, topic co-occurrence counting, and
// time-bucketed trend and activity-score aggregation. Every analyzer is a
// pure function over the immutable corpus plus immutable catalogs; nothing
// here retains state between calls.
package analysis

import (
	"strings"

	ahocorasick "github.com/cloudflare/ahocorasick"

	"github.com/stacklens/stacklens/internal/domain"
)

// PatternEngine matches every catalog pattern against thread text in one
// pass. Plain-substring matchers are compiled into a single Aho-Corasick
// automaton; matchers containing "*" wildcard gaps are checked with an
// ordered substring scan. Built once at startup, immutable afterwards.
type PatternEngine struct {
	patterns []domain.Pattern

	matcher    *ahocorasick.Matcher
	literals   []string
	literalPat []int // literal index -> pattern index

	wildcards []wildcardMatcher
}

type wildcardMatcher struct {
	pattern int
	parts   []string // non-empty segments in order
}

// NewPatternEngine compiles the pattern catalog into a matching engine.
func NewPatternEngine(patterns []domain.Pattern) *PatternEngine {
	e := &PatternEngine{patterns: patterns}

	for pi, p := range patterns {
		for _, m := range p.Matchers {
			m = strings.ToLower(strings.TrimSpace(m))
			if m == "" {
				continue
			}
			if strings.Contains(m, "*") {
				parts := splitWildcard(m)
				if len(parts) > 0 {
					e.wildcards = append(e.wildcards, wildcardMatcher{pattern: pi, parts: parts})
				}
				continue
			}
			e.literals = append(e.literals, m)
			e.literalPat = append(e.literalPat, pi)
		}
	}

	if len(e.literals) > 0 {
		e.matcher = ahocorasick.NewStringMatcher(e.literals)
	}

	return e
}

// PatternCount returns the number of compiled patterns.
func (e *PatternEngine) PatternCount() int {
	return len(e.patterns)
}

// Patterns returns the compiled catalog in declaration order.
func (e *PatternEngine) Patterns() []domain.Pattern {
	return e.patterns
}

// MatchThread returns the set of pattern indexes matched anywhere in the
// thread's text fields. Each pattern appears at most once no matter how
// many fields or how many occurrences matched.
func (e *PatternEngine) MatchThread(t *domain.Thread) map[int]bool {
	matched := make(map[int]bool)
	for _, text := range t.Texts() {
		e.matchText(foldText(text), matched)
	}
	return matched
}

// matchText marks every pattern matched in the folded text.
func (e *PatternEngine) matchText(lower string, matched map[int]bool) {
	if e.matcher != nil {
		// MatchThreadSafe: the automaton is shared across the aggregation
		// goroutines, and plain Match mutates per-node hit counters.
		for _, hit := range e.matcher.MatchThreadSafe([]byte(lower)) {
			if hit >= 0 && hit < len(e.literalPat) {
				matched[e.literalPat[hit]] = true
			}
		}
	}

	for _, w := range e.wildcards {
		if matched[w.pattern] {
			continue
		}
		if matchParts(lower, w.parts) {
			matched[w.pattern] = true
		}
	}
}

// splitWildcard breaks a wildcard matcher into its ordered segments,
// dropping empty ones from leading/trailing/doubled stars.
func splitWildcard(m string) []string {
	var parts []string
	for _, p := range strings.Split(m, "*") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// matchParts reports whether the segments occur in text in order, each
// after the end of the previous one.
func matchParts(text string, parts []string) bool {
	pos := 0
	for _, p := range parts {
		i := strings.Index(text[pos:], p)
		if i < 0 {
			return false
		}
		pos += i + len(p)
	}
	return true
}

// KeywordFilter tests whether a thread's text mentions any keyword of a
// scope. It is the pre-filter stage in front of pattern classification and
// is a separate rule set from the patterns themselves.
type KeywordFilter struct {
	matcher *ahocorasick.Matcher
}

// NewKeywordFilter compiles a case-insensitive keyword filter.
func NewKeywordFilter(keywords []string) *KeywordFilter {
	lowered := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			lowered = append(lowered, kw)
		}
	}
	f := &KeywordFilter{}
	if len(lowered) > 0 {
		f.matcher = ahocorasick.NewStringMatcher(lowered)
	}
	return f
}

// MatchThread reports whether any tag, the title, the body, or any answer
// body contains any of the filter's keywords.
func (f *KeywordFilter) MatchThread(t *domain.Thread) bool {
	if f.matcher == nil {
		return false
	}
	for _, text := range t.Texts() {
		if len(f.matcher.MatchThreadSafe([]byte(foldText(text)))) > 0 {
			return true
		}
	}
	return false
}
