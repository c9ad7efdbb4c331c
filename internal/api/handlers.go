// Package api exposes the stacklens analyses over HTTP: pattern
// frequencies, topic co-occurrence, topic trends and activity scores, and
// the solvable-vs-not report.
package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stacklens/stacklens/internal/analysis"
	"github.com/stacklens/stacklens/internal/catalog"
	"github.com/stacklens/stacklens/internal/corpus"
	"github.com/stacklens/stacklens/internal/logger"
)

// Default top-N sizes per route.
const (
	defaultTopPatterns      = 10
	defaultTopTopicPatterns = 5
	defaultTopPairs         = 10
)

const dateLayout = "2006-01-02"

// Handler handles HTTP requests for the stacklens API.
type Handler struct {
	store        *corpus.Store
	topics       *catalog.TopicCatalog
	frequency    *analysis.PatternFrequency
	cooccurrence *analysis.Cooccurrence
	trend        *analysis.Trend
	solvable     *analysis.Solvable
	logger       logger.Logger
}

// NewHandler creates a new API handler.
func NewHandler(
	store *corpus.Store,
	topics *catalog.TopicCatalog,
	frequency *analysis.PatternFrequency,
	cooccurrence *analysis.Cooccurrence,
	trend *analysis.Trend,
	solvable *analysis.Solvable,
	log logger.Logger,
) *Handler {
	return &Handler{
		store:        store,
		topics:       topics,
		frequency:    frequency,
		cooccurrence: cooccurrence,
		trend:        trend,
		solvable:     solvable,
		logger:       log,
	}
}

// TopPatterns handles GET /api/v1/patterns/top.
// Scope is the union of every catalog topic's keywords.
func (h *Handler) TopPatterns(c *gin.Context) {
	n := parseN(c.Query("n"), defaultTopPatterns)
	keywords := h.topics.KeywordsForAll(h.topics.Names())

	report := h.frequency.TopProblems(h.store.Threads(), keywords, n)
	c.JSON(http.StatusOK, report)
}

// TopPatternsByTopic handles GET /api/v1/patterns/:topic/top.
// An unknown topic yields an empty report, not an error.
func (h *Handler) TopPatternsByTopic(c *gin.Context) {
	topic := c.Param("topic")
	n := parseN(c.Query("n"), defaultTopTopicPatterns)
	keywords := h.topics.KeywordsFor(topic)

	report := h.frequency.TopProblems(h.store.Threads(), keywords, n)
	c.JSON(http.StatusOK, report)
}

// TopOccurrences handles GET /api/v1/occurrence/top.
// mode=topics (default) pairs catalog topics; mode=tags pairs raw tags.
func (h *Handler) TopOccurrences(c *gin.Context) {
	n := parseN(c.Query("n"), defaultTopPairs)
	mode := analysis.ParseCooccurrenceMode(c.Query("mode"))

	report := h.cooccurrence.TopPairs(h.store.Threads(), mode, n)
	c.JSON(http.StatusOK, toCoOccurrenceResponse(report))
}

// TopicTrend handles GET /api/v1/topics/trend.
func (h *Handler) TopicTrend(c *gin.Context) {
	req, ok := h.bindTrendRequest(c)
	if !ok {
		return
	}

	report := h.trend.CountByPeriod(h.store.Threads(), req.topics, req.start, req.end, req.period)
	c.JSON(http.StatusOK, report)
}

// TopicActivity handles GET /api/v1/topics/activity.
func (h *Handler) TopicActivity(c *gin.Context) {
	req, ok := h.bindTrendRequest(c)
	if !ok {
		return
	}

	report := h.trend.ActivityByPeriod(h.store.Threads(), req.topics, req.start, req.end, req.period)
	c.JSON(http.StatusOK, report)
}

// ListTopics handles GET /api/v1/topics/list.
func (h *Handler) ListTopics(c *gin.Context) {
	c.JSON(http.StatusOK, TopicsListResponse{Topics: h.topics.Names()})
}

// SolvableAnalysis handles GET /api/v1/solvable.
func (h *Handler) SolvableAnalysis(c *gin.Context) {
	report := h.solvable.Analyze(h.store.Threads())
	c.JSON(http.StatusOK, report)
}

// trendRequest is the parsed query of the trend and activity routes.
type trendRequest struct {
	topics []string
	start  time.Time
	end    time.Time
	period analysis.Granularity
}

// bindTrendRequest parses the shared trend/activity query parameters.
// Missing or malformed dates are a 400; an empty topics list means every
// catalog topic; an unknown period falls back to month.
func (h *Handler) bindTrendRequest(c *gin.Context) (trendRequest, bool) {
	start, err := time.ParseInLocation(dateLayout, c.Query("startDate"), time.Local)
	if err != nil {
		h.badRequest(c, "startDate must be a YYYY-MM-DD date")
		return trendRequest{}, false
	}
	end, err := time.ParseInLocation(dateLayout, c.Query("endDate"), time.Local)
	if err != nil {
		h.badRequest(c, "endDate must be a YYYY-MM-DD date")
		return trendRequest{}, false
	}
	if end.Before(start) {
		h.badRequest(c, "endDate must not precede startDate")
		return trendRequest{}, false
	}

	topics := parseTopics(c.QueryArray("topics"))
	if len(topics) == 0 {
		topics = h.topics.Names()
	}

	return trendRequest{
		topics: topics,
		start:  start,
		end:    end,
		period: analysis.ParseGranularity(c.Query("period")),
	}, true
}

func (h *Handler) badRequest(c *gin.Context, msg string) {
	h.logger.Warn("invalid request",
		logger.String("path", c.Request.URL.Path),
		logger.String("reason", msg),
	)
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

// parseN parses a top-N query value; non-positive or malformed values fall
// back to the route default.
func parseN(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// parseTopics accepts both repeated query params and comma-separated
// values, trimming blanks.
func parseTopics(values []string) []string {
	var topics []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if t := strings.TrimSpace(part); t != "" {
				topics = append(topics, t)
			}
		}
	}
	return topics
}
