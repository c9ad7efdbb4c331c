package api

import (
	"github.com/stacklens/stacklens/internal/analysis"
)

// ErrorResponse carries a request error message.
type ErrorResponse struct {
	Error string `json:"error"`
}

// TopicsListResponse lists the catalog topic names in declaration order.
type TopicsListResponse struct {
	Topics []string `json:"topics"`
}

// CoOccurrencePair is one ranked pair of co-occurring topics or tags.
type CoOccurrencePair struct {
	Topic1 string `json:"topic1"`
	Topic2 string `json:"topic2"`
	Count  int    `json:"count"`
}

// CoOccurrenceResponse is the payload of the occurrence route.
type CoOccurrenceResponse struct {
	Mode          string             `json:"mode"`
	TotalPairs    int                `json:"totalPairs"`
	TopN          int                `json:"topN"`
	CoOccurrences []CoOccurrencePair `json:"coOccurrences"`
}

// toCoOccurrenceResponse converts an analysis report to the API shape.
func toCoOccurrenceResponse(report analysis.CooccurrenceReport) CoOccurrenceResponse {
	pairs := make([]CoOccurrencePair, 0, len(report.TopPairs))
	for _, p := range report.TopPairs {
		pairs = append(pairs, CoOccurrencePair{
			Topic1: p.First,
			Topic2: p.Second,
			Count:  p.Count,
		})
	}
	return CoOccurrenceResponse{
		Mode:          string(report.Mode),
		TotalPairs:    report.TotalPairs,
		TopN:          report.TopN,
		CoOccurrences: pairs,
	}
}
