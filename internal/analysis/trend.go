package analysis

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/stacklens/stacklens/internal/catalog"
	"github.com/stacklens/stacklens/internal/domain"
	"github.com/stacklens/stacklens/internal/logger"
	"github.com/stacklens/stacklens/internal/telemetry"
)

// Contribution weights for the activity score. Comments weigh the same
// whether they hang off the question or an answer.
const (
	weightQuestion = 1.0
	weightAnswer   = 0.8
	weightComment  = 0.5
)

// DateRange is an inclusive calendar-date window.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// TrendPoint is one bucket of a per-topic count series.
type TrendPoint struct {
	Period string `json:"period"`
	Count  int    `json:"count"`
}

// ActivityPoint is one bucket of a per-topic activity-score series.
type ActivityPoint struct {
	Period        string  `json:"period"`
	ActivityScore float64 `json:"activityScore"`
}

// TrendReport maps each requested topic to its bucketed question counts.
type TrendReport struct {
	Period       Granularity             `json:"period"`
	DateRange    DateRange               `json:"dateRange"`
	TotalThreads int                     `json:"totalThreads"`
	TopicTrends  map[string][]TrendPoint `json:"topicTrends"`
}

// ActivityReport maps each requested topic to its bucketed activity scores.
type ActivityReport struct {
	Period             Granularity                `json:"period"`
	DateRange          DateRange                  `json:"dateRange"`
	TotalThreads       int                        `json:"totalThreads"`
	TopicActivityScore map[string][]ActivityPoint `json:"topicActivityScore"`
}

// Trend buckets topic-tagged questions over time, either as plain counts
// or as weighted activity scores.
type Trend struct {
	topics    *catalog.TopicCatalog
	workers   int
	logger    logger.Logger
	telemetry *telemetry.Metrics
}

func NewTrend(topics *catalog.TopicCatalog, workers int, log logger.Logger, tm *telemetry.Metrics) *Trend {
	return &Trend{topics: topics, workers: workers, logger: log, telemetry: tm}
}

// trendPartial is one chunk's accumulator for both trend modes.
type trendPartial struct {
	total  int
	topics map[string]map[string]float64
}

// CountByPeriod counts, per requested topic and per bucket, the questions
// tagged with that topic's keywords and created within the range. Unknown
// topics yield an empty series rather than an error.
func (a *Trend) CountByPeriod(threads []domain.Thread, topicNames []string, start, end time.Time, g Granularity) TrendReport {
	begin := time.Now()
	partials := a.scan(threads, topicNames, start, end, g, false)
	total, series := a.reduce(partials, topicNames)

	trends := make(map[string][]TrendPoint, len(topicNames))
	for topic, buckets := range series {
		points := make([]TrendPoint, 0, len(buckets))
		for _, key := range sortedKeys(buckets) {
			points = append(points, TrendPoint{Period: key, Count: int(buckets[key])})
		}
		trends[topic] = points
	}

	a.observe("topic_trend", total, begin)
	return TrendReport{
		Period:       g,
		DateRange:    DateRange{Start: formatDate(start), End: formatDate(end)},
		TotalThreads: total,
		TopicTrends:  trends,
	}
}

// ActivityByPeriod accumulates, per requested topic and per bucket, the
// weighted engagement score of questions, answers, and comments. Each
// contribution is bucketed by its own creation date, so one thread can
// feed several buckets.
func (a *Trend) ActivityByPeriod(threads []domain.Thread, topicNames []string, start, end time.Time, g Granularity) ActivityReport {
	begin := time.Now()
	partials := a.scan(threads, topicNames, start, end, g, true)
	total, series := a.reduce(partials, topicNames)

	scores := make(map[string][]ActivityPoint, len(topicNames))
	for topic, buckets := range series {
		points := make([]ActivityPoint, 0, len(buckets))
		for _, key := range sortedKeys(buckets) {
			points = append(points, ActivityPoint{Period: key, ActivityScore: round2(buckets[key])})
		}
		scores[topic] = points
	}

	a.observe("topic_activity", total, begin)
	return ActivityReport{
		Period:             g,
		DateRange:          DateRange{Start: formatDate(start), End: formatDate(end)},
		TotalThreads:       total,
		TopicActivityScore: scores,
	}
}

// scan fans the corpus out over chunks and accumulates per-topic buckets,
// counting questions when weighted is false and summing activity scores
// when it is true.
func (a *Trend) scan(threads []domain.Thread, topicNames []string, start, end time.Time, g Granularity, weighted bool) []trendPartial {
	keywordsByTopic := make(map[string][]string, len(topicNames))
	var allKeywords []string
	for _, name := range topicNames {
		kws := a.topics.KeywordsFor(name)
		keywordsByTopic[name] = kws
		allKeywords = append(allKeywords, kws...)
	}

	return mapChunks(threads, a.workers, func(chunk []domain.Thread) trendPartial {
		p := trendPartial{topics: make(map[string]map[string]float64)}
		for i := range chunk {
			t := &chunk[i]
			q := t.Question
			if q == nil || q.CreationDate == nil {
				continue
			}
			date := LocalDate(*q.CreationDate)
			if date.Before(start) || date.After(end) {
				continue
			}
			if !tagsMatchAny(q.Tags, allKeywords) {
				continue
			}
			p.total++
			for topic, kws := range keywordsByTopic {
				if !tagsMatchAny(q.Tags, kws) {
					continue
				}
				buckets := p.topics[topic]
				if buckets == nil {
					buckets = make(map[string]float64)
					p.topics[topic] = buckets
				}
				if weighted {
					accumulateActivity(buckets, t, g)
				} else {
					buckets[BucketKey(date, g)]++
				}
			}
		}
		return p
	})
}

// reduce merges chunk partials by summation and guarantees a series entry
// for every requested topic, empty or not.
func (a *Trend) reduce(partials []trendPartial, topicNames []string) (int, map[string]map[string]float64) {
	total := 0
	series := make(map[string]map[string]float64, len(topicNames))
	for _, name := range topicNames {
		series[name] = make(map[string]float64)
	}
	for _, p := range partials {
		total += p.total
		for topic, buckets := range p.topics {
			for key, v := range buckets {
				series[topic][key] += v
			}
		}
	}
	return total, series
}

// accumulateActivity adds a thread's weighted contributions to buckets,
// each keyed by the contribution's own creation date. Scores are floored
// at zero before weighting, and an absent score contributes nothing.
func accumulateActivity(buckets map[string]float64, t *domain.Thread, g Granularity) {
	add := func(created *int64, score *int, weight float64) {
		if created == nil {
			return
		}
		v := 0.0
		if score != nil && *score > 0 {
			v = float64(*score)
		}
		buckets[BucketKey(LocalDate(*created), g)] += v * weight
	}

	q := t.Question
	add(q.CreationDate, q.Score, weightQuestion)
	for i := range t.Answers {
		add(t.Answers[i].CreationDate, t.Answers[i].Score, weightAnswer)
	}
	for i := range t.QuestionComments {
		add(t.QuestionComments[i].CreationDate, t.QuestionComments[i].Score, weightComment)
	}
	for _, comments := range t.AnswerComments {
		for i := range comments {
			add(comments[i].CreationDate, comments[i].Score, weightComment)
		}
	}
}

func (a *Trend) observe(op string, total int, begin time.Time) {
	if a.telemetry != nil {
		a.telemetry.ObserveAnalysis(op, time.Since(begin))
		a.telemetry.AddThreadsFiltered(op, total)
	}
	a.logger.Info("topic aggregation computed",
		logger.String("operation", op),
		logger.Int("filtered_threads", total),
		logger.Duration("elapsed", time.Since(begin)),
	)
}

// tagsMatchAny reports whether any tag contains any keyword, both sides
// compared case-insensitively. A tag like "thread-safety" matches the
// keyword "thread".
func tagsMatchAny(tags, keywords []string) bool {
	for _, tag := range tags {
		lower := strings.ToLower(tag)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				return true
			}
		}
	}
	return false
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
