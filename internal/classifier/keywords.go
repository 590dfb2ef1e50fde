// Fixed keyword tables for AI-coding relevance detection. All entries are
// lower-case and matched as substrings of the combined search text, except
// topicPatterns which are word-boundary matches. The tables are immutable
// configuration owned by the Analyzer; they are built into matchers once at
// startup and shared read-only.

package classifier

// Score weights. Title hits earn the extra bonus on top of the base value.
const (
	aiCodingScore      = 15
	aiCodingTitleBonus = 10
	aiScore            = 5
	aiTitleBonus       = 5
	codingScore        = 3
	codingTitleBonus   = 3
	trustedBonus       = 20

	highViewBonus      = 10
	midViewBonus       = 5
	likeBonus          = 5
	highViewThreshold  = 100_000
	midViewThreshold   = 10_000
	likeCountThreshold = 1_000

	maxScore = 100
)

// Relevance gate weights: weighted total = 3*aiCoding + ai + coding + trust.
const (
	aiCodingWeight     = 3
	trustedChannelBump = 2
	relevanceThreshold = 3
)

// aiCodingKeywords are compound phrases naming the exact niche. A single hit
// is enough to pass the relevance gate.
var aiCodingKeywords = []string{
	"ai coding", "ai programming", "code with ai", "ai assistant",
	"prompt engineering", "code generation", "automated coding",
	"ai pair programming", "intelligent code completion", "ai debugging",
	"code review ai", "ai refactoring",
}

// aiKeywords are broad AI terms.
var aiKeywords = []string{
	"ai", "artificial intelligence", "machine learning", "ml", "llm", "gpt",
	"claude", "chatgpt", "copilot", "github copilot", "openai", "anthropic",
	"neural network", "deep learning", "transformer", "bert", "nlp",
}

// codingKeywords are broad software development terms.
var codingKeywords = []string{
	"programming", "coding", "development", "software", "code", "python",
	"javascript", "react", "node", "web development", "app development",
	"api", "framework", "library", "tutorial", "how to code", "build",
	"create", "developer", "engineering",
}

// categoryRule maps a category name to its trigger substrings. The slice
// order is the canonical category order; Evaluate emits categories in this
// order so results are reproducible.
type categoryRule struct {
	Name     string
	Triggers []string
}

var categoryRules = []categoryRule{
	{Name: "claude", Triggers: []string{"claude", "anthropic", "claude ai", "claude coding"}},
	{Name: "chatgpt", Triggers: []string{"chatgpt", "chat gpt", "openai", "gpt-4", "gpt-3"}},
	{Name: "copilot", Triggers: []string{"github copilot", "copilot", "microsoft copilot"}},
	{Name: "tutorials", Triggers: []string{"tutorial", "how to", "guide", "learn", "course", "lesson"}},
	{Name: "tools", Triggers: []string{"tool", "extension", "plugin", "ide", "vscode", "editor"}},
	{Name: "development", Triggers: []string{"build", "create", "develop", "project", "app"}},
	{Name: "review", Triggers: []string{"review", "comparison", "vs", "versus", "test", "demo"}},
	{Name: "advanced", Triggers: []string{"advanced", "expert", "professional", "enterprise", "scaling"}},
}

// CategoryNames returns the fixed category vocabulary in canonical order.
func CategoryNames() []string {
	names := make([]string, len(categoryRules))
	for i, rule := range categoryRules {
		names[i] = rule.Name
	}
	return names
}

// trustedChannels are substrings matched against the lower-cased channel
// name. A hit grants the reputation bonus.
var trustedChannels = []string{
	"fireship", "coding with john", "freecodecamp", "traversy media",
	"the net ninja", "academind", "programming with mosh", "sentdex",
	"tech with tim", "corey schafer", "derek banas", "dev ed",
}
