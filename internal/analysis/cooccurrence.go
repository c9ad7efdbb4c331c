package analysis

import (
	"sort"
	"strings"
	"time"

	"github.com/stacklens/stacklens/internal/catalog"
	"github.com/stacklens/stacklens/internal/domain"
	"github.com/stacklens/stacklens/internal/logger"
	"github.com/stacklens/stacklens/internal/telemetry"
)

// CooccurrenceMode selects what a co-occurrence pair is made of.
type CooccurrenceMode string

const (
	// ModeTopics pairs catalog topics resolved from question tags.
	ModeTopics CooccurrenceMode = "topics"
	// ModeTags pairs raw question tags directly.
	ModeTags CooccurrenceMode = "tags"
)

// ParseCooccurrenceMode maps a query value to a mode, defaulting to topics.
func ParseCooccurrenceMode(s string) CooccurrenceMode {
	if strings.EqualFold(s, string(ModeTags)) {
		return ModeTags
	}
	return ModeTopics
}

// PairCount is one ranked co-occurring pair.
type PairCount struct {
	First  string `json:"first"`
	Second string `json:"second"`
	Count  int    `json:"count"`
}

// CooccurrenceReport is the result of a co-occurrence aggregation.
// TotalPairs counts the distinct pairs in the whole corpus, not the
// truncated TopPairs length.
type CooccurrenceReport struct {
	Mode       CooccurrenceMode `json:"mode"`
	TotalPairs int              `json:"totalPairs"`
	TopN       int              `json:"topN"`
	TopPairs   []PairCount      `json:"topPairs"`
}

// Cooccurrence counts unordered pairs of topics or tags that appear
// together on the same question.
type Cooccurrence struct {
	topics    *catalog.TopicCatalog
	stopwords map[string]bool
	workers   int
	logger    logger.Logger
	telemetry *telemetry.Metrics
}

// NewCooccurrence creates the aggregator. stopwords are tags excluded from
// tag-mode pairing (the site-wide tag every thread carries adds no signal).
func NewCooccurrence(topics *catalog.TopicCatalog, stopwords []string, workers int, log logger.Logger, tm *telemetry.Metrics) *Cooccurrence {
	stop := make(map[string]bool, len(stopwords))
	for _, s := range stopwords {
		stop[strings.ToLower(s)] = true
	}
	return &Cooccurrence{
		topics:    topics,
		stopwords: stop,
		workers:   workers,
		logger:    log,
		telemetry: tm,
	}
}

// orderedCounter counts string keys while remembering first-seen order so
// equal counts rank deterministically.
type orderedCounter struct {
	counts map[string]int
	order  []string
}

func newOrderedCounter() *orderedCounter {
	return &orderedCounter{counts: make(map[string]int)}
}

func (c *orderedCounter) add(key string, n int) {
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key] += n
}

// TopPairs returns the n most frequent unordered pairs. A pair counts at
// most once per thread regardless of how many tags resolve to the same
// member. Ties rank by first appearance in corpus order.
func (a *Cooccurrence) TopPairs(threads []domain.Thread, mode CooccurrenceMode, n int) CooccurrenceReport {
	start := time.Now()

	partials := mapChunks(threads, a.workers, func(chunk []domain.Thread) *orderedCounter {
		counter := newOrderedCounter()
		for i := range chunk {
			members := a.threadMembers(&chunk[i], mode)
			if len(members) < 2 {
				continue
			}
			sort.Strings(members)
			for x := 0; x < len(members); x++ {
				for y := x + 1; y < len(members); y++ {
					counter.add(members[x]+","+members[y], 1)
				}
			}
		}
		return counter
	})

	// Merging in chunk order keeps first-seen order identical to a
	// sequential pass over the corpus.
	merged := newOrderedCounter()
	for _, p := range partials {
		for _, key := range p.order {
			merged.add(key, p.counts[key])
		}
	}

	ranked := make([]string, len(merged.order))
	copy(ranked, merged.order)
	sort.SliceStable(ranked, func(i, j int) bool {
		return merged.counts[ranked[i]] > merged.counts[ranked[j]]
	})
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}

	pairs := make([]PairCount, 0, len(ranked))
	for _, key := range ranked {
		first, second, _ := strings.Cut(key, ",")
		pairs = append(pairs, PairCount{First: first, Second: second, Count: merged.counts[key]})
	}

	if a.telemetry != nil {
		a.telemetry.ObserveAnalysis("cooccurrence", time.Since(start))
	}
	a.logger.Info("co-occurrence computed",
		logger.String("mode", string(mode)),
		logger.Int("distinct_pairs", len(merged.order)),
		logger.Duration("elapsed", time.Since(start)),
	)

	return CooccurrenceReport{
		Mode:       mode,
		TotalPairs: len(merged.order),
		TopN:       n,
		TopPairs:   pairs,
	}
}

// threadMembers extracts the distinct pairable members of one thread.
func (a *Cooccurrence) threadMembers(t *domain.Thread, mode CooccurrenceMode) []string {
	if t.Question == nil {
		return nil
	}
	seen := make(map[string]bool)
	var members []string
	for _, tag := range t.Question.Tags {
		var member string
		switch mode {
		case ModeTags:
			member = strings.ToLower(tag)
			if a.stopwords[member] {
				continue
			}
		default:
			member = a.topics.MapTagToTopic(tag)
			if member == "" {
				continue
			}
		}
		if !seen[member] {
			seen[member] = true
			members = append(members, member)
		}
	}
	return members
}
