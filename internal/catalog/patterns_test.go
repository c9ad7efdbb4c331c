package catalog_test

import (
	"strings"
	"testing"

	"github.com/stacklens/stacklens/internal/catalog"
	"github.com/stacklens/stacklens/internal/domain"
)

func TestPatterns_NamesAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, p := range catalog.Patterns() {
		if seen[p.Name] {
			t.Errorf("duplicate pattern name %q", p.Name)
		}
		seen[p.Name] = true
	}
}

func TestPatterns_MatchersAreLowerCaseAndNonEmpty(t *testing.T) {
	for _, p := range catalog.Patterns() {
		if len(p.Matchers) == 0 {
			t.Errorf("pattern %q has no matchers", p.Name)
		}
		for _, m := range p.Matchers {
			if m == "" {
				t.Errorf("pattern %q has an empty matcher", p.Name)
			}
			if m != strings.ToLower(m) {
				t.Errorf("pattern %q matcher %q is not lower-case", p.Name, m)
			}
		}
	}
}

func TestPatterns_CategoriesAreClosed(t *testing.T) {
	valid := map[domain.Category]bool{
		domain.CategoryRootCause: true,
		domain.CategorySymptom:   true,
		domain.CategoryException: true,
	}
	for _, p := range catalog.Patterns() {
		if !valid[p.Category] {
			t.Errorf("pattern %q has unknown category %q", p.Name, p.Category)
		}
	}
}

func TestPatterns_ExceptionPatternsMatchTheirName(t *testing.T) {
	for _, p := range catalog.Patterns() {
		if p.Category != domain.CategoryException {
			continue
		}
		want := strings.ToLower(p.Name)
		found := false
		for _, m := range p.Matchers {
			if m == want {
				found = true
			}
		}
		if !found {
			t.Errorf("exception pattern %q lacks matcher %q", p.Name, want)
		}
	}
}
