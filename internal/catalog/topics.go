package catalog

import (
	"strings"

	"github.com/stacklens/stacklens/internal/domain"
)

// Topics returns the built-in topic keyword catalog in declaration order.
// Order matters: MapTagToTopic resolves a tag to the first topic whose
// keyword it contains.
func Topics() []domain.Topic {
	return []domain.Topic{
		{Name: "generics", Keywords: []string{
			"generic", "type-parameter", "wildcard", "bounded-types",
			"type-erasure", "parameterized-type", "covariance", "contravariance",
		}},
		{Name: "collections", Keywords: []string{
			"collection", "list", "arraylist",
			"map", "hashmap", "concurrenthashmap",
			"set", "hashset", "queue", "iterator",
		}},
		{Name: "io", Keywords: []string{
			"java-io", "inputstream", "outputstream", "reader", "writer",
			"file-io", "nio", "serialization", "serializable", "path", "files",
		}},
		{Name: "lambda", Keywords: []string{
			"lambda", "stream-api", "functional-interface", "functional-programming",
			"method-reference", "optional", "collectors", "java-8", "completable-future",
		}},
		{Name: "multithreading", Keywords: []string{
			"thread", "multithreading", "concurrency",
			"synchronized", "executor", "parallel-processing",
			"race condition", "deadlock", "thread-safe",
		}},
		{Name: "socket", Keywords: []string{
			"socket", "sockets", "serversocket", "networking",
			"network", "tcp", "udp", "http", "https",
			"websocket", "port",
			"client-server",
		}},
		{Name: "reflection", Keywords: []string{
			"reflection", "reflect", "class.forname",
			"method.invoke", "method", "field",
			"constructor", "proxy", "annotation",
		}},
		{Name: "spring-boot", Keywords: []string{
			"spring-boot", "springboot",
			"spring-mvc", "spring-data", "spring-jpa",
			"spring-security", "spring-rest", "restcontroller",
			"spring-web", "thymeleaf", "hibernate",
			"jpa", "bean", "autowired", "dependency-injection",
			"application.properties", "application.yml",
		}},
		{Name: "maven", Keywords: []string{
			"maven", "pom.xml", "mvn", "build-tool",
			"dependency-management", "plugins", "repository", "artifact",
		}},
		{Name: "testing", Keywords: []string{
			"junit", "unit-testing", "integration-testing",
			"mockito", "mock", "test-driven-development",
			"assertion", "test-coverage",
		}},
		{Name: "exceptions", Keywords: []string{
			"exception", "try-catch", "throw", "throws",
			"stack-trace", "runtimeexception", "checked-exception",
			"error-handling", "custom-exception",
		}},
		{Name: "database", Keywords: []string{
			"jdbc", "sql", "database", "mysql", "postgresql", "oracle",
			"connection", "preparedstatement", "resultset",
			"transaction", "datasource",
		}},
	}
}

// TopicCatalog is an immutable view over a topic table. Construct it once
// at startup and inject it wherever topic lookups are needed; tests can
// build one from an alternate table without process-wide side effects.
type TopicCatalog struct {
	topics  []domain.Topic
	byName  map[string]int
	ordered []string
}

// NewTopicCatalog builds a catalog from a topic table, preserving order.
func NewTopicCatalog(topics []domain.Topic) *TopicCatalog {
	c := &TopicCatalog{
		topics: topics,
		byName: make(map[string]int, len(topics)),
	}
	for i, t := range topics {
		c.byName[t.Name] = i
		c.ordered = append(c.ordered, t.Name)
	}
	return c
}

// Names returns all topic names in declaration order.
func (c *TopicCatalog) Names() []string {
	out := make([]string, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// Topics returns the underlying topic table in declaration order.
func (c *TopicCatalog) Topics() []domain.Topic {
	return c.topics
}

// KeywordsFor returns the keywords of the named topic, or nil if the topic
// is unknown. Unknown topics are not an error: callers produce an empty
// result series for them.
func (c *TopicCatalog) KeywordsFor(name string) []string {
	i, ok := c.byName[name]
	if !ok {
		return nil
	}
	return c.topics[i].Keywords
}

// MapTagToTopic resolves a raw tag to a topic name: the first topic, in
// declaration order, with a keyword contained case-insensitively in the
// tag. Returns "" when no topic matches.
func (c *TopicCatalog) MapTagToTopic(tag string) string {
	if tag == "" {
		return ""
	}
	lower := strings.ToLower(tag)
	for _, t := range c.topics {
		for _, kw := range t.Keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				return t.Name
			}
		}
	}
	return ""
}

// KeywordsForAll returns the deduplicated union of keywords across the
// requested topics, in first-seen order. Unknown topics contribute nothing.
func (c *TopicCatalog) KeywordsForAll(names []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, name := range names {
		for _, kw := range c.KeywordsFor(name) {
			if !seen[kw] {
				seen[kw] = true
				out = append(out, kw)
			}
		}
	}
	return out
}
