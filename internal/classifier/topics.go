package classifier

import (
	"regexp"
	"strings"
)

// topicPattern pairs a topic name with its word-boundary pattern. Topics are
// matched against title+description only and feed trend aggregation; they do
// not affect relevance or score.
type topicPattern struct {
	name    string
	pattern *regexp.Regexp
}

var topicPatterns = []topicPattern{
	{"react", regexp.MustCompile(`\breact\b`)},
	{"python", regexp.MustCompile(`\bpython\b`)},
	{"javascript", regexp.MustCompile(`\b(javascript|js)\b`)},
	{"web_development", regexp.MustCompile(`\bweb\s+development\b`)},
	{"api", regexp.MustCompile(`\bapi\b`)},
	{"tutorial", regexp.MustCompile(`\btutorial\b`)},
	{"beginner", regexp.MustCompile(`\b(beginner|basics?)\b`)},
	{"advanced", regexp.MustCompile(`\b(advanced|expert)\b`)},
}

// Topics returns the topics present in a video's title and description, in
// a fixed order. Used for trend aggregation over stored videos.
func Topics(title, description string) []string {
	return extractTopics(strings.ToLower(title + " " + description))
}

// extractTopics returns the topics present in the lower-cased text, in
// pattern-table order.
func extractTopics(text string) []string {
	if text == "" {
		return nil
	}
	var topics []string
	for _, tp := range topicPatterns {
		if tp.pattern.MatchString(text) {
			topics = append(topics, tp.name)
		}
	}
	return topics
}
