package analysis_test

import (
	"reflect"
	"testing"

	"github.com/stacklens/stacklens/internal/analysis"
	"github.com/stacklens/stacklens/internal/catalog"
	"github.com/stacklens/stacklens/internal/domain"
	"github.com/stacklens/stacklens/internal/logger"
)

func testTopics() *catalog.TopicCatalog {
	return catalog.NewTopicCatalog([]domain.Topic{
		{Name: "multithreading", Keywords: []string{"thread", "concurrency"}},
		{Name: "collections", Keywords: []string{"hashmap", "arraylist"}},
		{Name: "database", Keywords: []string{"jdbc", "sql"}},
	})
}

func newCooccurrence(workers int) *analysis.Cooccurrence {
	return analysis.NewCooccurrence(testTopics(), []string{"java"}, workers, logger.NewNop(), nil)
}

func TestCooccurrence_TopPairs_TopicMode(t *testing.T) {
	threads := []domain.Thread{
		newThread([]string{"thread-safety", "hashmap"}, "", ""),
		newThread([]string{"concurrency", "hashmap", "jdbc"}, "", ""),
		newThread([]string{"sql"}, "", ""), // single topic, no pairs
	}

	report := newCooccurrence(1).TopPairs(threads, analysis.ModeTopics, 10)

	want := []analysis.PairCount{
		{First: "collections", Second: "multithreading", Count: 2},
		{First: "collections", Second: "database", Count: 1},
		{First: "database", Second: "multithreading", Count: 1},
	}
	if !reflect.DeepEqual(report.TopPairs, want) {
		t.Errorf("TopPairs = %+v, want %+v", report.TopPairs, want)
	}
}

func TestCooccurrence_TopPairs_TopicMode_DedupesTagsMappingToSameTopic(t *testing.T) {
	// Both tags resolve to multithreading; with hashmap that is one pair,
	// counted once.
	threads := []domain.Thread{
		newThread([]string{"thread", "concurrency", "hashmap"}, "", ""),
	}

	report := newCooccurrence(1).TopPairs(threads, analysis.ModeTopics, 10)

	if len(report.TopPairs) != 1 || report.TopPairs[0].Count != 1 {
		t.Errorf("TopPairs = %+v, want a single pair with count 1", report.TopPairs)
	}
}

func TestCooccurrence_TopPairs_NoSelfPairs(t *testing.T) {
	threads := []domain.Thread{
		newThread([]string{"thread", "thread", "concurrency"}, "", ""),
	}

	report := newCooccurrence(1).TopPairs(threads, analysis.ModeTopics, 10)

	for _, p := range report.TopPairs {
		if p.First == p.Second {
			t.Errorf("self-pair emitted: %+v", p)
		}
	}
	if len(report.TopPairs) != 0 {
		t.Errorf("TopPairs = %+v, want none from a single-topic thread", report.TopPairs)
	}
}

func TestCooccurrence_TopPairs_CanonicalPairOrder(t *testing.T) {
	// Tag order reversed across threads; both increment the same pair key.
	threads := []domain.Thread{
		newThread([]string{"hashmap", "thread"}, "", ""),
		newThread([]string{"thread", "hashmap"}, "", ""),
	}

	report := newCooccurrence(1).TopPairs(threads, analysis.ModeTopics, 10)

	if len(report.TopPairs) != 1 {
		t.Fatalf("TopPairs = %+v, want one pair", report.TopPairs)
	}
	got := report.TopPairs[0]
	if got.First != "collections" || got.Second != "multithreading" || got.Count != 2 {
		t.Errorf("pair = %+v, want collections/multithreading count 2", got)
	}
}

func TestCooccurrence_TopPairs_TagMode_ExcludesStopword(t *testing.T) {
	threads := []domain.Thread{
		newThread([]string{"java", "Spring-Boot", "hibernate"}, "", ""),
	}

	report := newCooccurrence(1).TopPairs(threads, analysis.ModeTags, 10)

	want := []analysis.PairCount{
		{First: "hibernate", Second: "spring-boot", Count: 1},
	}
	if !reflect.DeepEqual(report.TopPairs, want) {
		t.Errorf("TopPairs = %+v, want %+v (java excluded, tags lower-cased)", report.TopPairs, want)
	}
}

func TestCooccurrence_TopPairs_TiesKeepFirstSeenOrder(t *testing.T) {
	threads := []domain.Thread{
		newThread([]string{"b-tag", "a-tag"}, "", ""),
		newThread([]string{"z-tag", "y-tag"}, "", ""),
	}

	report := newCooccurrence(1).TopPairs(threads, analysis.ModeTags, 10)

	if len(report.TopPairs) != 2 {
		t.Fatalf("TopPairs = %+v, want two pairs", report.TopPairs)
	}
	if report.TopPairs[0].First != "a-tag" || report.TopPairs[1].First != "y-tag" {
		t.Errorf("tie order = %+v, want corpus first-seen order", report.TopPairs)
	}
}

func TestCooccurrence_TopPairs_DeterministicAcrossWorkerCounts(t *testing.T) {
	threads := []domain.Thread{
		newThread([]string{"thread", "hashmap"}, "", ""),
		newThread([]string{"jdbc", "hashmap"}, "", ""),
		newThread([]string{"thread", "jdbc"}, "", ""),
		newThread([]string{"thread", "hashmap", "jdbc"}, "", ""),
		newThread([]string{"sql", "arraylist"}, "", ""),
	}

	base := newCooccurrence(1).TopPairs(threads, analysis.ModeTopics, 10)
	for _, workers := range []int{2, 3, 16} {
		got := newCooccurrence(workers).TopPairs(threads, analysis.ModeTopics, 10)
		if !reflect.DeepEqual(got, base) {
			t.Errorf("workers=%d: %+v differs from sequential %+v", workers, got, base)
		}
	}
}

func TestParseCooccurrenceMode(t *testing.T) {
	tests := []struct {
		in   string
		want analysis.CooccurrenceMode
	}{
		{"tags", analysis.ModeTags},
		{"TAGS", analysis.ModeTags},
		{"topics", analysis.ModeTopics},
		{"", analysis.ModeTopics},
		{"bogus", analysis.ModeTopics},
	}
	for _, tt := range tests {
		if got := analysis.ParseCooccurrenceMode(tt.in); got != tt.want {
			t.Errorf("ParseCooccurrenceMode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCooccurrence_TopPairs_TotalPairsCountsAllDistinct(t *testing.T) {
	threads := []domain.Thread{
		newThread([]string{"thread", "hashmap"}, "", ""),
		newThread([]string{"thread", "jdbc"}, "", ""),
		newThread([]string{"hashmap", "jdbc"}, "", ""),
	}

	report := newCooccurrence(1).TopPairs(threads, analysis.ModeTopics, 1)

	if len(report.TopPairs) != 1 {
		t.Fatalf("TopPairs = %+v, want truncated to 1", report.TopPairs)
	}
	if report.TotalPairs != 3 {
		t.Errorf("TotalPairs = %d, want 3 distinct pairs regardless of truncation", report.TotalPairs)
	}
}
