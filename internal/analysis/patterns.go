package analysis

import (
	"sort"
	"time"

	"github.com/stacklens/stacklens/internal/domain"
	"github.com/stacklens/stacklens/internal/logger"
	"github.com/stacklens/stacklens/internal/telemetry"
)

// ProblemCount is one ranked entry of a pattern frequency report.
type ProblemCount struct {
	PatternName string          `json:"patternName"`
	Category    domain.Category `json:"category"`
	Count       int             `json:"count"`
}

// PatternFrequencyReport is the result of a pattern frequency aggregation.
type PatternFrequencyReport struct {
	TotalThreads int            `json:"totalThreads"`
	TopN         int            `json:"topN"`
	TopProblems  []ProblemCount `json:"topProblems"`
}

// PatternFrequency runs the pattern classifier over a keyword-filtered
// subset of the corpus and ranks the matched patterns by thread count.
type PatternFrequency struct {
	engine    *PatternEngine
	workers   int
	logger    logger.Logger
	telemetry *telemetry.Metrics
}

// NewPatternFrequency creates the aggregator. workers bounds the scatter
// width of the corpus fan-out; values below 1 mean sequential.
func NewPatternFrequency(engine *PatternEngine, workers int, log logger.Logger, tm *telemetry.Metrics) *PatternFrequency {
	return &PatternFrequency{
		engine:    engine,
		workers:   workers,
		logger:    log,
		telemetry: tm,
	}
}

// partial is one chunk's accumulator: per-pattern thread counts plus the
// number of threads that passed the keyword filter.
type partial struct {
	counts   []int
	filtered int
}

// TopProblems classifies every thread whose text mentions any of the scope
// keywords and returns the top n patterns by distinct-thread count. A
// thread counts at most once per pattern. Ties keep catalog declaration
// order.
func (a *PatternFrequency) TopProblems(threads []domain.Thread, scopeKeywords []string, n int) PatternFrequencyReport {
	start := time.Now()
	filter := NewKeywordFilter(scopeKeywords)

	partials := mapChunks(threads, a.workers, func(chunk []domain.Thread) partial {
		p := partial{counts: make([]int, a.engine.PatternCount())}
		for i := range chunk {
			t := &chunk[i]
			if !filter.MatchThread(t) {
				continue
			}
			p.filtered++
			for pi := range a.engine.MatchThread(t) {
				p.counts[pi]++
			}
		}
		return p
	})

	merged := partial{counts: make([]int, a.engine.PatternCount())}
	for _, p := range partials {
		merged.filtered += p.filtered
		for i, c := range p.counts {
			merged.counts[i] += c
		}
	}

	// Rank patterns with at least one match; stable sort keeps catalog
	// declaration order on equal counts.
	var ranked []int
	for i, c := range merged.counts {
		if c > 0 {
			ranked = append(ranked, i)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return merged.counts[ranked[i]] > merged.counts[ranked[j]]
	})
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}

	patterns := a.engine.Patterns()
	top := make([]ProblemCount, 0, len(ranked))
	for _, pi := range ranked {
		top = append(top, ProblemCount{
			PatternName: patterns[pi].Name,
			Category:    patterns[pi].Category,
			Count:       merged.counts[pi],
		})
	}

	if a.telemetry != nil {
		a.telemetry.ObserveAnalysis("pattern_frequency", time.Since(start))
		a.telemetry.AddThreadsFiltered("pattern_frequency", merged.filtered)
	}
	a.logger.Info("pattern frequency computed",
		logger.Int("filtered_threads", merged.filtered),
		logger.Int("patterns_matched", len(top)),
		logger.Duration("elapsed", time.Since(start)),
	)

	return PatternFrequencyReport{
		TotalThreads: merged.filtered,
		TopN:         n,
		TopProblems:  top,
	}
}
