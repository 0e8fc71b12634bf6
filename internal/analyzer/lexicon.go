package analyzer

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"slices"
	"sync"

	"github.com/BurntSushi/toml"
)

//go:embed lexicon.toml
var defaultLexiconTOML []byte

// Categories lists the user style categories in ranking order.
var Categories = []string{"yelling", "polite", "impatient", "nitpicky", "vague", "detailed", "curious", "commanding"}

// Pattern is one compiled lexicon entry. Category is empty for phrases.
type Pattern struct {
	Category string
	Key      string
	re       *regexp.Regexp
}

// Count returns the number of non-overlapping matches in text.
func (p Pattern) Count(text string) int {
	return len(p.re.FindAllStringIndex(text, -1))
}

// Lexicon is the compiled pattern table used by AnalyzePatterns.
type Lexicon struct {
	Version int
	Phrases []Pattern
	Styles  []Pattern
}

type lexiconFile struct {
	Version int            `toml:"version"`
	Phrase  []lexiconEntry `toml:"phrase"`
	Style   []lexiconEntry `toml:"style"`
}

type lexiconEntry struct {
	Category string `toml:"category"`
	Key      string `toml:"key"`
	Pattern  string `toml:"pattern"`
	Flags    string `toml:"flags"`
}

var defaultLexicon = sync.OnceValue(func() *Lexicon {
	lex, err := ParseLexicon(defaultLexiconTOML)
	if err != nil {
		panic("analyzer: embedded lexicon: " + err.Error())
	}
	return lex
})

// DefaultLexicon returns the embedded lexicon, compiled on first use.
func DefaultLexicon() *Lexicon {
	return defaultLexicon()
}

// LoadLexicon reads a lexicon from path. An empty path returns the
// embedded default.
func LoadLexicon(path string) (*Lexicon, error) {
	if path == "" {
		return DefaultLexicon(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading lexicon: %w", err)
	}
	lex, err := ParseLexicon(data)
	if err != nil {
		return nil, fmt.Errorf("lexicon %s: %w", path, err)
	}
	return lex, nil
}

// ParseLexicon decodes and compiles a TOML lexicon. Every style category
// must be present and keys must be unique within their category.
func ParseLexicon(data []byte) (*Lexicon, error) {
	var f lexiconFile
	if _, err := toml.Decode(string(data), &f); err != nil {
		return nil, fmt.Errorf("decoding lexicon: %w", err)
	}
	if f.Version < 1 {
		return nil, fmt.Errorf("unsupported lexicon version %d", f.Version)
	}

	lex := &Lexicon{Version: f.Version}
	seen := make(map[string]bool)

	for _, e := range f.Phrase {
		p, err := compileEntry("", e)
		if err != nil {
			return nil, err
		}
		if seen["phrase/"+p.Key] {
			return nil, fmt.Errorf("duplicate phrase %q", p.Key)
		}
		seen["phrase/"+p.Key] = true
		lex.Phrases = append(lex.Phrases, p)
	}

	present := make(map[string]bool)
	for _, e := range f.Style {
		if !slices.Contains(Categories, e.Category) {
			return nil, fmt.Errorf("style %q: unknown category %q", e.Key, e.Category)
		}
		p, err := compileEntry(e.Category, e)
		if err != nil {
			return nil, err
		}
		id := p.Category + "/" + p.Key
		if seen[id] {
			return nil, fmt.Errorf("duplicate style %q", id)
		}
		seen[id] = true
		present[p.Category] = true
		lex.Styles = append(lex.Styles, p)
	}
	for _, c := range Categories {
		if !present[c] {
			return nil, fmt.Errorf("missing style category %q", c)
		}
	}
	return lex, nil
}

func compileEntry(category string, e lexiconEntry) (Pattern, error) {
	if e.Key == "" || e.Pattern == "" {
		return Pattern{}, fmt.Errorf("lexicon entry needs key and pattern (key %q)", e.Key)
	}
	expr := e.Pattern
	if e.Flags != "" {
		expr = "(?" + e.Flags + ")" + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return Pattern{}, fmt.Errorf("compiling %q: %w", e.Key, err)
	}
	return Pattern{Category: category, Key: e.Key, re: re}, nil
}
