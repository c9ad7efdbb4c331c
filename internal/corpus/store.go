// Package corpus loads the newline-delimited JSON thread dump into memory
// and exposes it as an immutable store. The corpus is loaded once at
// startup; nothing mutates it afterwards, so readers need no locking.
package corpus

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/stacklens/stacklens/internal/domain"
	"github.com/stacklens/stacklens/internal/logger"
)

// Max size of a single corpus line. Question and answer bodies carry full
// HTML, so the default bufio limit is far too small.
const maxLineBytes = 16 * 1024 * 1024

// Store holds the loaded corpus. Treat the thread slice as read-only.
type Store struct {
	threads []domain.Thread
	skipped int
}

// Load reads one Thread JSON object per line from path. Malformed lines are
// counted and skipped; the load only fails if the file itself cannot be
// read.
func Load(path string, log logger.Logger) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus file %s: %w", path, err)
	}
	defer f.Close()

	store := &Store{}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}

		var thread domain.Thread
		if err := json.Unmarshal(raw, &thread); err != nil {
			store.skipped++
			log.Warn("skipping malformed corpus record",
				logger.Int("line", line),
				logger.Error(err),
			)
			continue
		}
		store.threads = append(store.threads, thread)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read corpus file %s: %w", path, err)
	}

	log.Info("corpus loaded",
		logger.String("path", path),
		logger.Int("threads", len(store.threads)),
		logger.Int("skipped", store.skipped),
	)

	return store, nil
}

// NewStore wraps an already-built thread slice. Used by tests and by any
// caller that assembles threads without the jsonl file.
func NewStore(threads []domain.Thread) *Store {
	return &Store{threads: threads}
}

// Threads returns the loaded threads. Callers must not mutate the slice.
func (s *Store) Threads() []domain.Thread {
	return s.threads
}

// Len returns the number of loaded threads.
func (s *Store) Len() int {
	return len(s.threads)
}

// Skipped returns the number of malformed records dropped during load.
func (s *Store) Skipped() int {
	return s.skipped
}
