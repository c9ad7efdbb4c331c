package api

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all analysis API routes.
// Health routes are registered by the server builder.
func SetupRoutes(router *gin.Engine, handler *Handler) {
	v1 := router.Group("/api/v1")
	{
		// Pattern classification endpoints
		patterns := v1.Group("/patterns")
		{
			patterns.GET("/top", handler.TopPatterns)               // GET /api/v1/patterns/top
			patterns.GET("/:topic/top", handler.TopPatternsByTopic) // GET /api/v1/patterns/:topic/top
		}

		// Co-occurrence endpoints
		v1.GET("/occurrence/top", handler.TopOccurrences) // GET /api/v1/occurrence/top

		// Topic trend endpoints
		topics := v1.Group("/topics")
		{
			topics.GET("/trend", handler.TopicTrend)       // GET /api/v1/topics/trend
			topics.GET("/activity", handler.TopicActivity) // GET /api/v1/topics/activity
			topics.GET("/list", handler.ListTopics)        // GET /api/v1/topics/list
		}

		// Solvable analysis endpoint
		v1.GET("/solvable", handler.SolvableAnalysis) // GET /api/v1/solvable
	}
}
