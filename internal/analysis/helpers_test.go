package analysis_test

import (
	"time"

	"github.com/stacklens/stacklens/internal/domain"
)

func intPtr(v int) *int { return &v }

func epochPtr(year int, month time.Month, day int) *int64 {
	e := time.Date(year, month, day, 12, 0, 0, 0, time.Local).Unix()
	return &e
}

// newThread builds a minimal thread with a question.
func newThread(tags []string, title, body string) domain.Thread {
	return domain.Thread{
		Question: &domain.Question{
			Tags:  tags,
			Title: title,
			Body:  body,
		},
	}
}

// newTaggedThread builds a thread whose question carries only tags and a
// creation date, the shape the trend aggregators care about.
func newTaggedThread(tags []string, created *int64, score *int) domain.Thread {
	return domain.Thread{
		Question: &domain.Question{
			Tags:         tags,
			CreationDate: created,
			Score:        score,
		},
	}
}
