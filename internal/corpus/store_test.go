package corpus_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stacklens/stacklens/internal/corpus"
	"github.com/stacklens/stacklens/internal/domain"
	"github.com/stacklens/stacklens/internal/logger"
)

func writeCorpus(t *testing.T, lines string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "threads.jsonl")
	if err := os.WriteFile(path, []byte(lines), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeCorpus(t, `{"question":{"question_id":1,"title":"first","tags":["java"]}}
{"question":{"question_id":2,"title":"second"},"answers":[{"answer_id":10,"is_accepted":true}]}
`)

	store, err := corpus.Load(path, logger.NewNop())
	if err != nil {
		t.Fatal(err)
	}

	if store.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", store.Len())
	}
	threads := store.Threads()
	if threads[0].Question.Title != "first" || threads[1].Question.Title != "second" {
		t.Errorf("threads loaded out of order: %+v", threads)
	}
	if !threads[1].IsSolvable() {
		t.Error("accepted answer not decoded")
	}
	if store.Skipped() != 0 {
		t.Errorf("Skipped() = %d, want 0", store.Skipped())
	}
}

func TestLoad_SkipsMalformedLines(t *testing.T) {
	path := writeCorpus(t, `{"question":{"question_id":1}}
this is not json
{"question":{"question_id":2}}

{"question":`)

	store, err := corpus.Load(path, logger.NewNop())
	if err != nil {
		t.Fatal(err)
	}

	if store.Len() != 2 {
		t.Errorf("Len() = %d, want 2 (malformed and blank lines skipped)", store.Len())
	}
	if store.Skipped() != 2 {
		t.Errorf("Skipped() = %d, want 2", store.Skipped())
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := corpus.Load(filepath.Join(t.TempDir(), "absent.jsonl"), logger.NewNop())
	if err == nil {
		t.Fatal("Load() on a missing file returned nil error")
	}
}

func TestNewStore(t *testing.T) {
	store := corpus.NewStore([]domain.Thread{
		{Question: &domain.Question{QuestionID: 1}},
	})

	if store.Len() != 1 {
		t.Errorf("Len() = %d, want 1", store.Len())
	}
	if store.Skipped() != 0 {
		t.Errorf("Skipped() = %d, want 0", store.Skipped())
	}
}
