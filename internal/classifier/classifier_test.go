//nolint:testpackage // Testing internal matchers requires same package access
package classifier

import (
	"reflect"
	"testing"

	"github.com/jonesrussell/vidwatch/internal/domain"
	"github.com/jonesrussell/vidwatch/internal/logger"
)

func newTestAnalyzer() *Analyzer {
	return NewAnalyzer(logger.NewNop())
}

func TestEvaluate_ChatGPTCloneVideo(t *testing.T) {
	analyzer := newTestAnalyzer()

	video := &domain.Video{
		ID:          "abc123",
		Title:       "Build a ChatGPT Clone with React and OpenAI API",
		Description: "Learn how to create your own AI chat application using React, Node.js and the OpenAI API",
		Tags:        []string{"react", "chatgpt", "openai", "tutorial"},
		ChannelName: "JavaScript Mastery",
		ViewCount:   50000,
		LikeCount:   2000,
	}

	result := analyzer.Evaluate(video)

	if !result.Relevant {
		t.Fatal("expected video to be relevant")
	}
	if result.Score <= 0 || result.Score > 100 {
		t.Errorf("expected score in (0,100], got %d", result.Score)
	}

	wantCategories := map[string]bool{"chatgpt": true, "tutorials": true}
	for _, cat := range result.Categories {
		delete(wantCategories, cat)
	}
	for cat := range wantCategories {
		t.Errorf("expected category %q in %v", cat, result.Categories)
	}

	hasReact := false
	for _, topic := range result.Topics {
		if topic == "react" {
			hasReact = true
		}
	}
	if !hasReact {
		t.Errorf("expected react topic, got %v", result.Topics)
	}
}

func TestEvaluate_GenericCodingVideoNotRelevant(t *testing.T) {
	analyzer := newTestAnalyzer()

	// No AI terms anywhere; pure coding content must not pass the gate.
	video := &domain.Video{
		ID:          "def456",
		Title:       "Rust tutorial for newcomers",
		Description: "Set up the compiler and write your first program",
		Tags:        []string{"rust", "tutorial"},
		ChannelName: "Some Dev",
	}

	result := analyzer.Evaluate(video)

	if result.Relevant {
		t.Errorf("expected generic coding video to be irrelevant, got score %d", result.Score)
	}
}

func TestEvaluate_NichePhraseAloneIsRelevant(t *testing.T) {
	analyzer := newTestAnalyzer()

	// A single niche phrase passes the gate even without broad AI keywords.
	video := &domain.Video{
		ID:    "ghi789",
		Title: "Prompt Engineering in Practice",
	}

	result := analyzer.Evaluate(video)

	if !result.Relevant {
		t.Fatal("expected niche phrase to pass the relevance gate")
	}

	// 15 (prompt engineering) + 10 (in title) + 3+3 (engineering) = 31
	if result.Score != 31 {
		t.Errorf("expected score 31, got %d", result.Score)
	}
}

func TestEvaluate_TrustedChannelBonus(t *testing.T) {
	analyzer := newTestAnalyzer()

	base := &domain.Video{
		Title:       "ChatGPT for developers",
		Description: "Using the API from your code",
		ChannelName: "Random Channel",
	}
	trusted := &domain.Video{
		Title:       base.Title,
		Description: base.Description,
		ChannelName: "Fireship",
	}

	baseResult := analyzer.Evaluate(base)
	trustedResult := analyzer.Evaluate(trusted)

	if trustedResult.Score != baseResult.Score+trustedBonus {
		t.Errorf("expected trusted score %d, got %d", baseResult.Score+trustedBonus, trustedResult.Score)
	}
}

func TestEvaluate_ScoreSaturatesAt100(t *testing.T) {
	analyzer := newTestAnalyzer()

	video := &domain.Video{
		Title: "AI Coding with AI Assistant: Prompt Engineering, Code Generation, " +
			"AI Pair Programming and AI Debugging Tutorial",
		Description: "chatgpt claude copilot openai anthropic machine learning llm " +
			"python javascript react api framework",
		Tags:        []string{"ai coding", "automated coding", "code review ai", "ai refactoring"},
		ChannelName: "Fireship",
		ViewCount:   500_000,
		LikeCount:   20_000,
	}

	result := analyzer.Evaluate(video)

	if result.Score != 100 {
		t.Errorf("expected saturated score 100, got %d", result.Score)
	}
	if !result.Relevant {
		t.Error("expected video to be relevant")
	}
}

func TestEvaluate_EmptyFieldsDegradeToNoMatch(t *testing.T) {
	analyzer := newTestAnalyzer()

	result := analyzer.Evaluate(&domain.Video{ID: "empty"})

	if result.Relevant {
		t.Error("expected empty video to be irrelevant")
	}
	if result.Score != 0 {
		t.Errorf("expected score 0, got %d", result.Score)
	}
	if len(result.Categories) != 0 || len(result.Topics) != 0 {
		t.Errorf("expected no tags, got categories=%v topics=%v", result.Categories, result.Topics)
	}
}

func TestEvaluate_Deterministic(t *testing.T) {
	analyzer := newTestAnalyzer()

	video := &domain.Video{
		ID:          "repeat",
		Title:       "GitHub Copilot vs ChatGPT for Coding - Which is Better?",
		Description: "Comprehensive comparison of AI coding assistants",
		Tags:        []string{"github copilot", "chatgpt", "coding", "ai"},
		ChannelName: "Fireship",
		ViewCount:   200_000,
		LikeCount:   8_000,
	}

	first := analyzer.Evaluate(video)
	for i := 0; i < 5; i++ {
		if got := analyzer.Evaluate(video); !reflect.DeepEqual(first, got) {
			t.Fatalf("evaluation not deterministic: %+v vs %+v", first, got)
		}
	}
}

func TestEvaluate_ScoreBounds(t *testing.T) {
	analyzer := newTestAnalyzer()

	videos := []*domain.Video{
		{},
		{Title: "ai"},
		{Title: "AI Coding", ViewCount: 1_000_000, LikeCount: 100_000},
		{Description: "plain cooking video"},
		{Title: "chatgpt", Tags: []string{"openai", "api", "tutorial"}},
	}

	for _, v := range videos {
		result := analyzer.Evaluate(v)
		if result.Score < 0 || result.Score > 100 {
			t.Errorf("score out of bounds for %q: %d", v.Title, result.Score)
		}
	}
}

func TestKeywordSet_ReportsEachKeywordOnce(t *testing.T) {
	set := newKeywordSet([]string{"go", "gopher"})

	matched := set.matches("go go go gopher go")

	want := []string{"go", "gopher"}
	if !reflect.DeepEqual(matched, want) {
		t.Errorf("expected %v, got %v", want, matched)
	}
}

func TestCategoryMatcher_CanonicalOrder(t *testing.T) {
	m := newCategoryMatcher(categoryRules)

	// Triggers hit out of vocabulary order; output must stay canonical.
	got := m.categories("an advanced guide to claude")

	want := []string{"claude", "tutorials", "advanced"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}
