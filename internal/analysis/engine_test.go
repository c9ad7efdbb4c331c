package analysis_test

import (
	"testing"

	"github.com/stacklens/stacklens/internal/analysis"
	"github.com/stacklens/stacklens/internal/domain"
)

func testPatterns() []domain.Pattern {
	return []domain.Pattern{
		{Name: "deadlock", Category: domain.CategoryRootCause, Matchers: []string{"deadlock"}},
		{Name: "race_condition", Category: domain.CategoryRootCause, Matchers: []string{"out of order", "race condition"}},
		{Name: "resource_exhaustion", Category: domain.CategoryRootCause, Matchers: []string{"pool*exhaust"}},
		{Name: "IOException", Category: domain.CategoryException, Matchers: []string{"ioexception"}},
	}
}

func matchedNames(engine *analysis.PatternEngine, t *domain.Thread) map[string]bool {
	names := make(map[string]bool)
	patterns := engine.Patterns()
	for pi := range engine.MatchThread(t) {
		names[patterns[pi].Name] = true
	}
	return names
}

func TestPatternEngine_MatchThread_ClassicDeadlockBody(t *testing.T) {
	engine := analysis.NewPatternEngine(testPatterns())

	thread := newThread(nil, "", "classic deadlock occurs when two locks are acquired out of order")
	got := matchedNames(engine, &thread)

	if len(got) != 2 || !got["deadlock"] || !got["race_condition"] {
		t.Errorf("matched = %v, want exactly {deadlock, race_condition}", got)
	}
}

func TestPatternEngine_MatchThread_AtMostOncePerThread(t *testing.T) {
	engine := analysis.NewPatternEngine(testPatterns())

	// The matcher appears in the title, twice in the body, and in an
	// answer; the pattern must still be reported once.
	thread := domain.Thread{
		Question: &domain.Question{
			Title: "deadlock between two services",
			Body:  "we hit a deadlock. restarting clears the deadlock for a while",
		},
		Answers: []domain.Answer{{Body: "your deadlock comes from lock ordering"}},
	}

	matched := engine.MatchThread(&thread)
	if len(matched) != 1 {
		t.Fatalf("matched %d patterns, want 1", len(matched))
	}
}

func TestPatternEngine_MatchThread_CaseInsensitive(t *testing.T) {
	engine := analysis.NewPatternEngine(testPatterns())

	thread := newThread(nil, "Random IOEXCEPTION on read", "")
	got := matchedNames(engine, &thread)

	if !got["IOException"] {
		t.Errorf("matched = %v, want IOException despite upper-cased text", got)
	}
}

func TestPatternEngine_MatchThread_WildcardGap(t *testing.T) {
	engine := analysis.NewPatternEngine(testPatterns())

	tests := []struct {
		name string
		body string
		want bool
	}{
		{"segments in order", "the connection pool was exhausted under load", true},
		{"adjacent segments", "poolexhausted", true},
		{"segments out of order", "exhausted before the pool warmed up", false},
		{"missing segment", "the pool looks healthy", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			thread := newThread(nil, "", tt.body)
			got := matchedNames(engine, &thread)
			if got["resource_exhaustion"] != tt.want {
				t.Errorf("resource_exhaustion matched = %v, want %v", got["resource_exhaustion"], tt.want)
			}
		})
	}
}

func TestPatternEngine_MatchThread_TagsAreTextFields(t *testing.T) {
	engine := analysis.NewPatternEngine(testPatterns())

	thread := newThread([]string{"java", "deadlock"}, "why does my program stop", "")
	got := matchedNames(engine, &thread)

	if !got["deadlock"] {
		t.Errorf("matched = %v, want deadlock from the tag alone", got)
	}
}

func TestPatternEngine_MatchThread_CommentsExcluded(t *testing.T) {
	engine := analysis.NewPatternEngine(testPatterns())

	thread := domain.Thread{
		Question:         &domain.Question{Title: "app stops responding"},
		QuestionComments: []domain.Comment{{Body: "looks like a deadlock to me"}},
	}

	if matched := engine.MatchThread(&thread); len(matched) != 0 {
		t.Errorf("matched %d patterns from comment text, want 0", len(matched))
	}
}

func TestKeywordFilter_MatchThread(t *testing.T) {
	filter := analysis.NewKeywordFilter([]string{"thread", "Synchronized"})

	tests := []struct {
		name   string
		thread domain.Thread
		want   bool
	}{
		{"keyword in tag", newThread([]string{"thread-safety"}, "", ""), true},
		{"keyword in title, mixed case", newThread(nil, "Synchronized blocks explained", ""), true},
		{"keyword in answer body", domain.Thread{
			Question: &domain.Question{Title: "slow program"},
			Answers:  []domain.Answer{{Body: "use a thread pool"}},
		}, true},
		{"no keyword anywhere", newThread([]string{"generics"}, "type erasure", "wildcards"), false},
		{"no question", domain.Thread{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := filter.MatchThread(&tt.thread); got != tt.want {
				t.Errorf("MatchThread = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKeywordFilter_EmptyScopeMatchesNothing(t *testing.T) {
	filter := analysis.NewKeywordFilter(nil)

	thread := newThread([]string{"thread"}, "thread", "thread")
	if filter.MatchThread(&thread) {
		t.Error("empty keyword scope matched a thread, want no matches")
	}
}

func TestPatternEngine_MatchThread_StripsDiacritics(t *testing.T) {
	engine := analysis.NewPatternEngine(testPatterns())

	thread := newThread(nil, "", "we hit a deadlöck under load")
	got := matchedNames(engine, &thread)

	if !got["deadlock"] {
		t.Errorf("matched = %v, want accented spelling folded to match deadlock", got)
	}
}
