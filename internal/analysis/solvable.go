package analysis

import (
	"strings"
	"time"

	"github.com/stacklens/stacklens/internal/domain"
	"github.com/stacklens/stacklens/internal/logger"
	"github.com/stacklens/stacklens/internal/telemetry"
)

// SolvableReport compares solved threads (any accepted answer) against
// unsolved ones across several question-quality dimensions. Averages skip
// threads missing the relevant field instead of counting them as zero.
type SolvableReport struct {
	BasicStats           BasicStats           `json:"basicStats"`
	ReputationAnalysis   ComparedAverage      `json:"reputationAnalysis"`
	QuestionLength       LengthAnalysis       `json:"questionLengthAnalysis"`
	TitleLength          LengthAnalysis       `json:"titleLengthAnalysis"`
	CodeSnippetAnalysis  CodeSnippetAnalysis  `json:"codeSnippetAnalysis"`
	TagCountAnalysis     ComparedAverage      `json:"tagCountAnalysis"`
	ResponseTimeAnalysis ResponseTimeAnalysis `json:"responseTimeAnalysis"`
	QuestionScore        ComparedAverage      `json:"questionScoreAnalysis"`
	ViewCount            ComparedAverage      `json:"viewCountAnalysis"`
}

// BasicStats is the solvable/not-solvable split of the corpus.
type BasicStats struct {
	TotalSolvable         int     `json:"totalSolvable"`
	TotalNotSolvable      int     `json:"totalNotSolvable"`
	TotalQuestions        int     `json:"totalQuestions"`
	SolvablePercentage    float64 `json:"solvablePercentage"`
	NotSolvablePercentage float64 `json:"notSolvablePercentage"`
}

// ComparedAverage is one averaged metric for both cohorts plus the delta.
type ComparedAverage struct {
	SolvableAvg    float64 `json:"solvableAvg"`
	NotSolvableAvg float64 `json:"notSolvableAvg"`
	Difference     float64 `json:"difference"`
}

// LengthAnalysis compares text length in characters and words.
type LengthAnalysis struct {
	SolvableAvgCharacters    float64 `json:"solvableAvgCharacters"`
	SolvableAvgWords         float64 `json:"solvableAvgWords"`
	NotSolvableAvgCharacters float64 `json:"notSolvableAvgCharacters"`
	NotSolvableAvgWords      float64 `json:"notSolvableAvgWords"`
	CharacterDifference      float64 `json:"characterDifference"`
	WordDifference           float64 `json:"wordDifference"`
}

// CodeSnippetAnalysis compares how often question bodies carry code blocks.
type CodeSnippetAnalysis struct {
	SolvableWithCodePercentage    float64 `json:"solvableWithCodePercentage"`
	SolvableAvgCodeBlocks         float64 `json:"solvableAvgCodeBlocks"`
	NotSolvableWithCodePercentage float64 `json:"notSolvableWithCodePercentage"`
	NotSolvableAvgCodeBlocks      float64 `json:"notSolvableAvgCodeBlocks"`
	PercentageDifference          float64 `json:"percentageDifference"`
}

// ResponseTimeAnalysis compares time-to-first-answer in hours.
type ResponseTimeAnalysis struct {
	SolvableAvgResponseHours      float64 `json:"solvableAvgResponseHours"`
	NotSolvableAvgResponseHours   float64 `json:"notSolvableAvgResponseHours"`
	NotSolvableNoAnswerPercentage float64 `json:"notSolvableNoAnswerPercentage"`
	Difference                    float64 `json:"difference"`
}

// Solvable computes the solvable-vs-not comparison report.
type Solvable struct {
	logger    logger.Logger
	telemetry *telemetry.Metrics
}

func NewSolvable(log logger.Logger, tm *telemetry.Metrics) *Solvable {
	return &Solvable{logger: log, telemetry: tm}
}

// Analyze splits the corpus by accepted-answer presence and compares the
// two cohorts. All reported values are rounded to 2 decimals.
func (a *Solvable) Analyze(threads []domain.Thread) SolvableReport {
	start := time.Now()

	var solvable, notSolvable []*domain.Thread
	for i := range threads {
		t := &threads[i]
		if t.IsSolvable() {
			solvable = append(solvable, t)
		} else {
			notSolvable = append(notSolvable, t)
		}
	}

	report := SolvableReport{
		BasicStats:           basicStats(len(solvable), len(notSolvable)),
		ReputationAnalysis:   comparedAverage(solvable, notSolvable, reputationOf),
		QuestionLength:       lengthAnalysis(solvable, notSolvable, bodyOf),
		TitleLength:          lengthAnalysis(solvable, notSolvable, titleOf),
		CodeSnippetAnalysis:  codeSnippetAnalysis(solvable, notSolvable),
		TagCountAnalysis:     comparedAverage(solvable, notSolvable, tagCountOf),
		ResponseTimeAnalysis: responseTimeAnalysis(solvable, notSolvable),
		QuestionScore:        comparedAverage(solvable, notSolvable, scoreOf),
		ViewCount:            comparedAverage(solvable, notSolvable, viewCountOf),
	}

	if a.telemetry != nil {
		a.telemetry.ObserveAnalysis("solvable", time.Since(start))
	}
	a.logger.Info("solvable analysis computed",
		logger.Int("solvable", len(solvable)),
		logger.Int("not_solvable", len(notSolvable)),
		logger.Duration("elapsed", time.Since(start)),
	)
	return report
}

func basicStats(solvable, notSolvable int) BasicStats {
	total := solvable + notSolvable
	stats := BasicStats{
		TotalSolvable:    solvable,
		TotalNotSolvable: notSolvable,
		TotalQuestions:   total,
	}
	if total > 0 {
		stats.SolvablePercentage = round2(float64(solvable) / float64(total) * 100)
		stats.NotSolvablePercentage = round2(float64(notSolvable) / float64(total) * 100)
	}
	return stats
}

// average folds extract over threads, skipping those where it reports no
// value, and returns 0 for an empty cohort.
func average(threads []*domain.Thread, extract func(*domain.Thread) (float64, bool)) float64 {
	sum, n := 0.0, 0
	for _, t := range threads {
		if v, ok := extract(t); ok {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func comparedAverage(solvable, notSolvable []*domain.Thread, extract func(*domain.Thread) (float64, bool)) ComparedAverage {
	s := average(solvable, extract)
	ns := average(notSolvable, extract)
	return ComparedAverage{
		SolvableAvg:    round2(s),
		NotSolvableAvg: round2(ns),
		Difference:     round2(s - ns),
	}
}

func lengthAnalysis(solvable, notSolvable []*domain.Thread, text func(*domain.Thread) (string, bool)) LengthAnalysis {
	chars := func(t *domain.Thread) (float64, bool) {
		s, ok := text(t)
		return float64(len(s)), ok
	}
	words := func(t *domain.Thread) (float64, bool) {
		s, ok := text(t)
		return float64(countWords(s)), ok
	}
	sc, nsc := average(solvable, chars), average(notSolvable, chars)
	sw, nsw := average(solvable, words), average(notSolvable, words)
	return LengthAnalysis{
		SolvableAvgCharacters:    round2(sc),
		SolvableAvgWords:         round2(sw),
		NotSolvableAvgCharacters: round2(nsc),
		NotSolvableAvgWords:      round2(nsw),
		CharacterDifference:      round2(sc - nsc),
		WordDifference:           round2(sw - nsw),
	}
}

func codeSnippetAnalysis(solvable, notSolvable []*domain.Thread) CodeSnippetAnalysis {
	ratio := func(threads []*domain.Thread) float64 {
		if len(threads) == 0 {
			return 0
		}
		withCode := 0
		for _, t := range threads {
			if body, ok := bodyText(t); ok && countCodeBlocks(body) > 0 {
				withCode++
			}
		}
		return float64(withCode) / float64(len(threads)) * 100
	}
	blocks := func(t *domain.Thread) (float64, bool) {
		body, ok := bodyText(t)
		if !ok {
			return 0, false
		}
		return float64(countCodeBlocks(body)), true
	}

	sr, nsr := ratio(solvable), ratio(notSolvable)
	return CodeSnippetAnalysis{
		SolvableWithCodePercentage:    round2(sr),
		SolvableAvgCodeBlocks:         round2(average(solvable, blocks)),
		NotSolvableWithCodePercentage: round2(nsr),
		NotSolvableAvgCodeBlocks:      round2(average(notSolvable, blocks)),
		PercentageDifference:          round2(sr - nsr),
	}
}

func responseTimeAnalysis(solvable, notSolvable []*domain.Thread) ResponseTimeAnalysis {
	// Hours from question creation to the earliest answer; threads with
	// no dated answers contribute zero rather than dropping out.
	responseHours := func(t *domain.Thread) (float64, bool) {
		q := t.Question
		if q == nil || q.CreationDate == nil || len(t.Answers) == 0 {
			return 0, false
		}
		first := *q.CreationDate
		found := false
		for i := range t.Answers {
			if c := t.Answers[i].CreationDate; c != nil && (!found || *c < first) {
				first = *c
				found = true
			}
		}
		return float64(first-*q.CreationDate) / 3600.0, true
	}

	noAnswer := 0
	for _, t := range notSolvable {
		if len(t.Answers) == 0 {
			noAnswer++
		}
	}
	noAnswerPct := 0.0
	if len(notSolvable) > 0 {
		noAnswerPct = float64(noAnswer) / float64(len(notSolvable)) * 100
	}

	s := average(solvable, responseHours)
	ns := average(notSolvable, responseHours)
	return ResponseTimeAnalysis{
		SolvableAvgResponseHours:      round2(s),
		NotSolvableAvgResponseHours:   round2(ns),
		NotSolvableNoAnswerPercentage: round2(noAnswerPct),
		Difference:                    round2(s - ns),
	}
}

func reputationOf(t *domain.Thread) (float64, bool) {
	q := t.Question
	if q == nil || q.Owner == nil || q.Owner.Reputation == nil {
		return 0, false
	}
	return float64(*q.Owner.Reputation), true
}

func scoreOf(t *domain.Thread) (float64, bool) {
	if t.Question == nil || t.Question.Score == nil {
		return 0, false
	}
	return float64(*t.Question.Score), true
}

func viewCountOf(t *domain.Thread) (float64, bool) {
	if t.Question == nil || t.Question.ViewCount == nil {
		return 0, false
	}
	return float64(*t.Question.ViewCount), true
}

func tagCountOf(t *domain.Thread) (float64, bool) {
	if t.Question == nil || t.Question.Tags == nil {
		return 0, false
	}
	return float64(len(t.Question.Tags)), true
}

func bodyOf(t *domain.Thread) (string, bool) {
	return bodyText(t)
}

func titleOf(t *domain.Thread) (string, bool) {
	if t.Question == nil || t.Question.Title == "" {
		return "", false
	}
	return t.Question.Title, true
}

func bodyText(t *domain.Thread) (string, bool) {
	if t.Question == nil || t.Question.Body == "" {
		return "", false
	}
	return t.Question.Body, true
}

// countWords strips HTML tags and counts whitespace-separated words.
func countWords(text string) int {
	var b strings.Builder
	inTag := false
	for _, r := range text {
		switch {
		case r == '<':
			inTag = true
			b.WriteByte(' ')
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return len(strings.Fields(b.String()))
}

// countCodeBlocks counts <code>, <pre>, and fenced markdown markers.
func countCodeBlocks(text string) int {
	return strings.Count(text, "<code>") +
		strings.Count(text, "<pre>") +
		strings.Count(text, "```")
}
