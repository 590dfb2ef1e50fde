// Package classifier decides whether a discovered video is AI-coding
// content, scores it 0-100, and assigns category and topic tags. The
// decision is purely lexical: fixed keyword tables matched against the
// video's text fields. Same input always yields the same output.
package classifier

import (
	"strings"

	"github.com/jonesrussell/vidwatch/internal/domain"
	"github.com/jonesrussell/vidwatch/internal/logger"
)

// Result is the relevance verdict for a single video.
type Result struct {
	Relevant   bool     `json:"relevant"`
	Score      int      `json:"score"`
	Categories []string `json:"categories"`
	Topics     []string `json:"topics"`
}

// Analyzer evaluates videos against the fixed keyword tables. It holds no
// mutable state and is safe for concurrent use.
type Analyzer struct {
	aiCoding   *keywordSet
	ai         *keywordSet
	coding     *keywordSet
	categories *categoryMatcher
	logger     logger.Logger
}

// NewAnalyzer builds the keyword matchers once; the returned Analyzer is
// shared read-only.
func NewAnalyzer(log logger.Logger) *Analyzer {
	return &Analyzer{
		aiCoding:   newKeywordSet(aiCodingKeywords),
		ai:         newKeywordSet(aiKeywords),
		coding:     newKeywordSet(codingKeywords),
		categories: newCategoryMatcher(categoryRules),
		logger:     log,
	}
}

// Evaluate classifies a video. It never fails: missing text fields degrade
// to empty strings and simply produce no matches.
func (a *Analyzer) Evaluate(v *domain.Video) Result {
	title := strings.ToLower(v.Title)
	channel := strings.ToLower(v.ChannelName)
	search := searchText(v)

	aiCodingHits := a.aiCoding.matches(search)
	aiHits := a.ai.matches(search)
	codingHits := a.coding.matches(search)
	trusted := isTrustedChannel(channel)

	result := Result{
		Relevant:   relevant(len(aiCodingHits), len(aiHits), len(codingHits), trusted),
		Score:      a.score(v, title, aiCodingHits, aiHits, codingHits, trusted),
		Categories: a.categories.categories(search),
		Topics:     extractTopics(strings.ToLower(v.Title + " " + v.Description)),
	}

	a.logger.Debug("video evaluated",
		logger.String("video_id", v.ID),
		logger.Bool("relevant", result.Relevant),
		logger.Int("score", result.Score),
		logger.Strings("categories", result.Categories),
	)

	return result
}

// relevant applies the gate: one niche phrase is enough on its own, or both
// an AI term and a coding term must appear and the weighted total must reach
// the threshold. The OR is intentional: a niche phrase admits an item even
// with zero coding keywords.
func relevant(aiCodingCount, aiCount, codingCount int, trusted bool) bool {
	if aiCodingCount >= 1 {
		return true
	}
	if aiCount == 0 || codingCount == 0 {
		return false
	}
	weighted := aiCodingWeight*aiCodingCount + aiCount + codingCount
	if trusted {
		weighted += trustedChannelBump
	}
	return weighted >= relevanceThreshold
}

// score computes the 0-100 relevance score, saturating at 100.
func (a *Analyzer) score(v *domain.Video, title string, aiCodingHits, aiHits, codingHits []string, trusted bool) int {
	score := 0

	for _, kw := range aiCodingHits {
		score += aiCodingScore
		if strings.Contains(title, kw) {
			score += aiCodingTitleBonus
		}
	}
	for _, kw := range aiHits {
		score += aiScore
		if strings.Contains(title, kw) {
			score += aiTitleBonus
		}
	}
	for _, kw := range codingHits {
		score += codingScore
		if strings.Contains(title, kw) {
			score += codingTitleBonus
		}
	}

	if trusted {
		score += trustedBonus
	}

	switch {
	case v.ViewCount > highViewThreshold:
		score += highViewBonus
	case v.ViewCount > midViewThreshold:
		score += midViewBonus
	}
	if v.LikeCount > likeCountThreshold {
		score += likeBonus
	}

	if score > maxScore {
		return maxScore
	}
	return score
}

// searchText builds the lower-cased haystack for keyword and category
// matching: title, description, tags, and channel name joined by spaces.
func searchText(v *domain.Video) string {
	var b strings.Builder
	b.Grow(len(v.Title) + len(v.Description) + len(v.ChannelName) + 16)
	b.WriteString(v.Title)
	b.WriteByte(' ')
	b.WriteString(v.Description)
	for _, tag := range v.Tags {
		b.WriteByte(' ')
		b.WriteString(tag)
	}
	b.WriteByte(' ')
	b.WriteString(v.ChannelName)
	return strings.ToLower(b.String())
}

// isTrustedChannel reports whether the lower-cased channel name contains a
// trusted channel substring.
func isTrustedChannel(channel string) bool {
	if channel == "" {
		return false
	}
	for _, trusted := range trustedChannels {
		if strings.Contains(channel, trusted) {
			return true
		}
	}
	return false
}
