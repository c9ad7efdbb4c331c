package domain

// Category classifies a pattern as a root cause, a symptom, or a concrete
// exception signature. It is a closed set so aggregators can switch over it
// exhaustively.
type Category string

const (
	CategoryRootCause Category = "ROOT_CAUSE"
	CategorySymptom   Category = "SYMPTOM"
	CategoryException Category = "EXCEPTION"
)

// Pattern is a named classification rule: a set of case-insensitive text
// matchers that detect one known issue signature in thread text. Matchers
// are plain lower-case substrings; a matcher may contain "*" as a wildcard
// gap ("pool*exhaust" matches any text with "pool" followed by "exhaust").
//
// Patterns are constructed once at startup from the catalog table and are
// immutable afterwards. Names are unique across the catalog.
type Pattern struct {
	Name     string   `json:"patternName"`
	Category Category `json:"category"`
	Matchers []string `json:"matchers"`
}

// Topic is a named discussion category with the keyword strings that tie
// raw tags (and free text) to it. Same lifecycle as Pattern.
type Topic struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
}
