package analyzer

import (
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/miguelrios/2025-compiled/internal/collector"
)

const (
	longestPromptLimit = 500
	shortestPromptMin  = 10
)

var emojiRE = regexp.MustCompile(`[\x{1F300}-\x{1F9FF}]`)

// AnalyzePatterns counts communication signals using the embedded lexicon.
func AnalyzePatterns(ds *collector.Dataset) Patterns {
	return AnalyzePatternsWith(ds, DefaultLexicon())
}

// AnalyzePatternsWith counts communication signals using lex. Every
// lexicon key appears in the result, zero when it never matched.
func AnalyzePatternsWith(ds *collector.Dataset, lex *Lexicon) Patterns {
	p := Patterns{
		ClaudePhrases:   make(map[string]int, len(lex.Phrases)),
		UserFrustration: map[string]int{},
		UserStyle:       make(map[string]map[string]int, len(Categories)),
	}
	for _, c := range Categories {
		p.UserStyle[c] = map[string]int{}
	}
	for _, ph := range lex.Phrases {
		p.ClaudePhrases[ph.Key] = 0
	}
	for _, st := range lex.Styles {
		p.UserStyle[st.Category][st.Key] = 0
	}

	shortestLen := -1
	for _, e := range ds.UserEntries {
		text := e.Content
		n := utf8.RuneCountInString(text)

		if n > p.LongestPrompt.Length {
			p.LongestPrompt = PromptRecord{Text: truncateRunes(text, longestPromptLimit), Length: n}
		}
		if n > shortestPromptMin && (shortestLen < 0 || n < shortestLen) {
			p.ShortestPrompt = PromptRecord{Text: text, Length: n}
			shortestLen = n
		}

		p.QuestionCount += strings.Count(text, "?")
		p.ExclamationCount += strings.Count(text, "!")
		p.EmojiCount += len(emojiRE.FindAllStringIndex(text, -1))
		p.CodeBlockCount += strings.Count(text, "```")
		p.URLCount += strings.Count(text, "http://") + strings.Count(text, "https://")

		for _, st := range lex.Styles {
			p.UserStyle[st.Category][st.Key] += st.Count(text)
		}
	}

	for _, e := range ds.AssistantEntries {
		text := e.Text()
		for _, ph := range lex.Phrases {
			p.ClaudePhrases[ph.Key] += ph.Count(text)
		}
	}

	for k, v := range p.UserStyle["yelling"] {
		p.UserFrustration[k] = v
	}
	return p
}

func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}

// Style is the dominant communication style of a user.
type Style struct {
	Name        string `json:"style"`
	Score       int    `json:"score"`
	Description string `json:"description"`
}

var styleDescriptions = map[string]string{
	"yelling":    "You're... passionate. Very passionate.",
	"polite":     "A true gentleman/lady of the terminal.",
	"impatient":  "Time is code. Code is money. HURRY.",
	"nitpicky":   "Every pixel matters. Every character counts.",
	"vague":      "Brief but... mysterious?",
	"detailed":   "You write prompts like technical specs.",
	"curious":    "Always asking 'but why?' like a 5-year-old.",
	"commanding": "You don't ask. You command.",
}

// DominantStyle returns the category with the highest total. Ties go to
// the category listed first in Categories.
func DominantStyle(p Patterns) Style {
	if len(p.UserStyle) == 0 {
		return Style{Name: "neutral", Description: "Your style is unique."}
	}
	best := Style{Score: -1}
	for _, c := range Categories {
		counts, ok := p.UserStyle[c]
		if !ok {
			continue
		}
		if total := sum(counts); total > best.Score {
			best = Style{Name: c, Score: total}
		}
	}
	if best.Score < 0 {
		return Style{Name: "neutral", Description: "Your style is unique."}
	}
	best.Description = styleDescriptions[best.Name]
	return best
}

// Communication holds the category totals shown on the console and fed to
// the judge.
type Communication struct {
	YellCount     int `json:"yellCount"`
	PoliteCount   int `json:"politeCount"`
	NitpickCount  int `json:"nitpickCount"`
	VagueCount    int `json:"vagueCount"`
	QuestionCount int `json:"questionCount"`
}

// CommunicationStats totals the main style categories.
func CommunicationStats(p Patterns) Communication {
	return Communication{
		YellCount:     sum(p.UserStyle["yelling"]),
		PoliteCount:   sum(p.UserStyle["polite"]),
		NitpickCount:  sum(p.UserStyle["nitpicky"]),
		VagueCount:    sum(p.UserStyle["vague"]),
		QuestionCount: p.QuestionCount,
	}
}

var phraseNames = []struct{ key, name string }{
	{"youreRight", `"You're absolutely right"`},
	{"letMe", `"Let me..."`},
	{"apologize", `"I apologize"`},
	{"greatQuestion", `"Great question!"`},
	{"happyTo", `"I'd be happy to"`},
	{"certainly", `"Certainly"`},
	{"understand", `"I understand"`},
	{"thatsGreat", `"That's a great..."`},
}

// MostCommonPhrase returns the display name of the most frequent assistant
// phrase, or "None" when no phrase matched.
func MostCommonPhrase(p Patterns) string {
	var order []string
	for _, pn := range phraseNames {
		order = append(order, pn.key)
	}
	var extra []string
	for k := range p.ClaudePhrases {
		if !slices.Contains(order, k) {
			extra = append(extra, k)
		}
	}
	slices.Sort(extra)
	order = append(order, extra...)

	bestKey, bestCount := "", 0
	for _, k := range order {
		if c := p.ClaudePhrases[k]; c > bestCount {
			bestKey, bestCount = k, c
		}
	}
	if bestCount == 0 {
		return "None"
	}
	for _, pn := range phraseNames {
		if pn.key == bestKey {
			return pn.name
		}
	}
	return bestKey
}

// FrustrationScore is the yelling total capped at 100.
func FrustrationScore(p Patterns) int {
	return min(100, sum(p.UserFrustration))
}
