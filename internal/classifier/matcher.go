// Aho-Corasick based keyword matching. Each Evaluate call is a single pass
// over the search text regardless of table size.

package classifier

import (
	"strings"

	ahocorasick "github.com/cloudflare/ahocorasick"
)

// keywordSet matches a fixed list of lower-case substrings. Each keyword is
// reported at most once per text, preserving table order.
type keywordSet struct {
	keywords []string
	matcher  *ahocorasick.Matcher
}

func newKeywordSet(keywords []string) *keywordSet {
	normalized := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			normalized = append(normalized, kw)
		}
	}
	return &keywordSet{
		keywords: normalized,
		matcher:  ahocorasick.NewStringMatcher(normalized),
	}
}

// matches returns the keywords present in text, in table order.
// text must already be lower-cased.
func (s *keywordSet) matches(text string) []string {
	if text == "" {
		return nil
	}
	hits := s.matcher.Match([]byte(text))
	if len(hits) == 0 {
		return nil
	}

	seen := make(map[int]bool, len(hits))
	for _, idx := range hits {
		if idx >= 0 && idx < len(s.keywords) {
			seen[idx] = true
		}
	}

	matched := make([]string, 0, len(seen))
	for i, kw := range s.keywords {
		if seen[i] {
			matched = append(matched, kw)
		}
	}
	return matched
}

// categoryMatcher resolves the category vocabulary in one automaton pass.
// A category applies when any of its trigger substrings occurs in the text.
type categoryMatcher struct {
	names    []string // canonical category order
	triggers []string
	byIndex  []string // trigger index -> category name
	matcher  *ahocorasick.Matcher
}

func newCategoryMatcher(rules []categoryRule) *categoryMatcher {
	m := &categoryMatcher{names: make([]string, 0, len(rules))}
	for _, rule := range rules {
		m.names = append(m.names, rule.Name)
		for _, trigger := range rule.Triggers {
			trigger = strings.ToLower(strings.TrimSpace(trigger))
			if trigger == "" {
				continue
			}
			m.triggers = append(m.triggers, trigger)
			m.byIndex = append(m.byIndex, rule.Name)
		}
	}
	m.matcher = ahocorasick.NewStringMatcher(m.triggers)
	return m
}

// categories returns the matching category names in canonical order.
// text must already be lower-cased.
func (m *categoryMatcher) categories(text string) []string {
	if text == "" {
		return nil
	}
	hits := m.matcher.Match([]byte(text))
	if len(hits) == 0 {
		return nil
	}

	matched := make(map[string]bool, len(hits))
	for _, idx := range hits {
		if idx >= 0 && idx < len(m.byIndex) {
			matched[m.byIndex[idx]] = true
		}
	}

	result := make([]string, 0, len(matched))
	for _, name := range m.names {
		if matched[name] {
			result = append(result, name)
		}
	}
	return result
}
