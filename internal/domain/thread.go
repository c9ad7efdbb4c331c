// Package domain defines the core types shared by the stacklens service:
// discussion threads as loaded from the corpus file, and the declarative
// pattern and topic catalogs the analyzers run against.
package domain

// Thread is one discussion unit: a question, its answers, and the comments
// on both. Threads are loaded once at startup and never mutated.
type Thread struct {
	Question         *Question            `json:"question"`
	Answers          []Answer             `json:"answers"`
	QuestionComments []Comment            `json:"question_comments"`
	AnswerComments   map[string][]Comment `json:"answer_comments"`
}

// IsSolvable reports whether any answer on the thread was accepted.
// A thread without answers is not solvable.
func (t *Thread) IsSolvable() bool {
	for i := range t.Answers {
		if t.Answers[i].IsAccepted {
			return true
		}
	}
	return false
}

// Question holds the question post of a thread. Numeric and date fields are
// pointers: absent means "no contribution", not zero.
type Question struct {
	Tags           []string `json:"tags"`
	Owner          *Owner   `json:"owner"`
	IsAnswered     *bool    `json:"is_answered"`
	ViewCount      *int     `json:"view_count"`
	AnswerCount    *int     `json:"answer_count"`
	Score          *int     `json:"score"`
	LastActivity   *int64   `json:"last_activity_date"`
	CreationDate   *int64   `json:"creation_date"`
	QuestionID     int64    `json:"question_id"`
	ContentLicense string   `json:"content_license"`
	Link           string   `json:"link"`
	Title          string   `json:"title"`
	Body           string   `json:"body"`
}

// Answer holds one answer post.
type Answer struct {
	Owner          *Owner `json:"owner"`
	IsAccepted     bool   `json:"is_accepted"`
	Score          *int   `json:"score"`
	LastActivity   *int64 `json:"last_activity_date"`
	CreationDate   *int64 `json:"creation_date"`
	AnswerID       int64  `json:"answer_id"`
	QuestionID     int64  `json:"question_id"`
	ContentLicense string `json:"content_license"`
	Body           string `json:"body"`
}

// Comment holds one comment on a question or answer.
type Comment struct {
	Owner          *Owner `json:"owner"`
	Edited         *bool  `json:"edited"`
	Score          *int   `json:"score"`
	CreationDate   *int64 `json:"creation_date"`
	PostID         int64  `json:"post_id"`
	CommentID      int64  `json:"comment_id"`
	ContentLicense string `json:"content_license"`
	Body           string `json:"body"`
}

// Owner identifies the author of a post.
type Owner struct {
	AccountID    int64  `json:"account_id"`
	Reputation   *int   `json:"reputation"`
	UserID       int64  `json:"user_id"`
	UserType     string `json:"user_type"`
	ProfileImage string `json:"profile_image"`
	DisplayName  string `json:"display_name"`
	Link         string `json:"link"`
}

// Texts returns the text-bearing fields the pattern classifier inspects:
// each question tag, the question title and body, and every answer body.
// Comment bodies are deliberately excluded. Empty fields are skipped.
func (t *Thread) Texts() []string {
	var texts []string
	if t.Question != nil {
		texts = append(texts, t.Question.Tags...)
		if t.Question.Title != "" {
			texts = append(texts, t.Question.Title)
		}
		if t.Question.Body != "" {
			texts = append(texts, t.Question.Body)
		}
	}
	for i := range t.Answers {
		if t.Answers[i].Body != "" {
			texts = append(texts, t.Answers[i].Body)
		}
	}
	return texts
}
