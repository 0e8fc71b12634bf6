package persona

import "fmt"

// Definition is one of the named personas shown on the report.
type Definition struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Emoji       string `json:"emoji"`
	Tagline     string `json:"tagline"`
	Description string `json:"description"`
	ImagePrompt string `json:"imagePrompt"`
}

// DefaultID is used for unknown persona ids.
const DefaultID = "THE_BUILDER"

var definitions = []Definition{
	{"THE_ARCHITECT", "The Architect", "📐", "You don't just code, you orchestrate.",
		"Your prompts read like blueprints. Every task is planned, every detail considered. You see the big picture before writing a single line.",
		"Abstract brutalist architectural blueprint, white background, thin black precise lines forming geometric building structures, isometric grid, technical drawing aesthetic, minimalist, no text, sharp 90-degree angles only"},
	{"THE_SPEEDRUNNER", "The Speedrunner", "⚡", "Why use 10 words when 3 will do?",
		"You treat Claude like a Unix pipe. Short, direct, efficient. You're here to ship, not to chat.",
		"Abstract motion blur lines, white background, black streaks suggesting velocity, minimal geometric shapes in motion, brutalist speed aesthetic, sharp edges, no curves, high contrast"},
	{"THE_PERFECTIONIST", "The Perfectionist", "🎯", "Close enough is never close enough.",
		"One more edit. Just one more. Your code isn't done until it's exactly right. Every semicolon matters.",
		"Geometric precision pattern, white background, perfectly aligned black grid lines, mathematical accuracy, brutalist minimalism, sharp 90-degree corners, no imperfections"},
	{"THE_EXPLORER", "The Explorer", "🔍", "Let's see what this codebase is hiding.",
		"Read. Grep. Search. You understand before you change. Every modification starts with investigation.",
		"Abstract maze pattern, white background, black labyrinth lines, geometric exploration paths, brutalist search aesthetic, sharp corners, minimalist discovery theme"},
	{"THE_NIGHT_OWL", "The Night Owl", "🦉", "The best code is written after midnight.",
		"While others sleep, you ship. The quiet hours are your domain. Darkness is your IDE theme and your lifestyle.",
		"Minimal moon and stars, white background, black geometric owl silhouette, stark nighttime aesthetic, brutalist, sharp angular shapes only, no curves"},
	{"THE_EARLY_BIRD", "The Early Bird", "🌅", "First commits before first coffee.",
		"You catch bugs while others catch Zs. Morning productivity is your superpower. By lunch, you've shipped a feature.",
		"Abstract sunrise lines, white background, geometric sun rays in black, horizontal stripes suggesting dawn, brutalist morning aesthetic, sharp edges"},
	{"THE_MARATHON_RUNNER", "The Marathon Runner", "🏃", "Deep work, deeper focus.",
		"Hours disappear when you code. Your sessions are legendary. You enter flow state and emerge with features.",
		"Long horizontal lines, white background, parallel black tracks extending to infinity, geometric endurance pattern, brutalist persistence theme, minimalist"},
	{"THE_SPRINTER", "The Sprinter", "💨", "Quick wins, quick iterations.",
		"Many sessions, many commits. You work in bursts of brilliant productivity. Context switching is your cardio.",
		"Multiple short parallel lines, white background, scattered geometric dashes, staccato pattern, brutalist burst aesthetic, sharp edges, high energy"},
	{"THE_POLYGLOT", "The Polyglot", "🌐", "Any language, any stack, any time.",
		"Python today, TypeScript tomorrow, Rust next week. Your versatility knows no bounds. Languages are just tools.",
		"Multiple geometric shapes, white background, black squares circles triangles, diverse patterns, brutalist variety theme, sharp 90-degree corners, minimalist diversity"},
	{"THE_SPECIALIST", "The Specialist", "🎓", "Master of one, master of much.",
		"Deep expertise in your domain. You know every edge case, every pattern. Specialists ship reliable code.",
		"Single bold geometric shape, white background, one large black square, focused precision, brutalist simplicity, absolute minimalism, stark contrast"},
	{"THE_CONVERSATIONALIST", "The Conversationalist", "💬", "Code is a dialogue.",
		"You think out loud with Claude. Questions lead to answers lead to better questions. Collaboration is creation.",
		"Speech bubble shapes, white background, geometric quote marks, angular dialogue pattern, brutalist conversation aesthetic, sharp corners, black on white"},
	{"THE_COMMANDER", "The Commander", "⚔️", "No fluff. Execute.",
		"Terse. Direct. Effective. You know what you want and you say it clearly. Claude executes your orders.",
		"Military-inspired geometric pattern, white background, bold angular black chevrons, command aesthetic, brutalist authority, sharp precise shapes"},
	{"THE_DEBUGGER", "The Debugger", "🐛", "Bugs fear you.",
		"Stack traces are your bedtime reading. Error messages are clues. You don't just fix bugs, you hunt them.",
		"Circuit board pattern, white background, thin black traces, geometric bug shapes integrated, technical brutalist aesthetic, sharp corners, detective pattern"},
	{"THE_BUILDER", "The Builder", "🏗️", "From zero to deployed.",
		"Greenfield is your happy place. You create more than you modify. New projects, new possibilities.",
		"Construction crane geometric shape, white background, angular black lines forming structure, building pattern, brutalist creation aesthetic, sharp edges"},
	{"THE_REFACTORER", "The Refactorer", "♻️", "Make it work, then make it right.",
		"Good code becomes great code in your hands. You improve what exists. Technical debt doesn't stand a chance.",
		"Transformation pattern, white background, geometric shapes morphing, angular recycling aesthetic, brutalist improvement theme, sharp 90-degree corners"},
}

var definitionsByID = func() map[string]Definition {
	m := make(map[string]Definition, len(definitions))
	for _, d := range definitions {
		m[d.ID] = d
	}
	return m
}()

// Lookup returns the named persona for id, or THE_BUILDER when id is unknown.
func Lookup(id string) Definition {
	if d, ok := definitionsByID[id]; ok {
		return d
	}
	return definitionsByID[DefaultID]
}

// Known reports whether id names a persona.
func Known(id string) bool {
	_, ok := definitionsByID[id]
	return ok
}

// IDs returns every named persona id in display order.
func IDs() []string {
	ids := make([]string, len(definitions))
	for i, d := range definitions {
		ids[i] = d.ID
	}
	return ids
}

// Result is the persona verdict consumed by the report. The LLM judge and
// Fallback both produce it.
type Result struct {
	Persona          string  `json:"persona"`
	Confidence       float64 `json:"confidence"`
	Reasoning        string  `json:"reasoning"`
	SecondaryPersona *string `json:"secondaryPersona"`
	Roast            string  `json:"roast"`
	Compliment       string  `json:"compliment"`
}

// fallbackConfidence is reported for rule-based results.
const fallbackConfidence = 0.85

// namedFor maps every axis id onto a named persona.
var namedFor = map[string]string{
	TypeGuardian:           "THE_ARCHITECT",
	"CHAOS_WIZARD":         "THE_SPEEDRUNNER",
	SnakeCharmer:           "THE_EXPLORER",
	"BORROW_CHECKER":       "THE_PERFECTIONIST",
	"GOPHER":               "THE_BUILDER",
	"ENTERPRISE_ARCHITECT": "THE_ARCHITECT",
	"MEMORY_WHISPERER":     "THE_DEBUGGER",
	"GEM_COLLECTOR":        "THE_REFACTORER",
	"LEGACY_KEEPER":        "THE_MARATHON_RUNNER",
	"APPLE_EVANGELIST":     "THE_SPECIALIST",
	"JAVA_ESCAPEE":         "THE_SPEEDRUNNER",
	"TERMINAL_DWELLER":     "THE_COMMANDER",
	"DATA_WHISPERER":       "THE_EXPLORER",
	"PIXEL_PUSHER":         "THE_BUILDER",
	"DOCUMENTARIAN":        "THE_CONVERSATIONALIST",
	"CONFIG_WIZARD":        "THE_ARCHITECT",
	Polyglot:               "THE_POLYGLOT",

	Vampire:        "THE_NIGHT_OWL",
	EarlyBird:      "THE_EARLY_BIRD",
	MorningPerson:  "THE_EARLY_BIRD",
	LunchCoder:     "THE_BUILDER",
	NineToFiver:    "THE_BUILDER",
	AfterHourer:    "THE_MARATHON_RUNNER",
	NightOwl:       "THE_NIGHT_OWL",
	WeekendWarrior: "THE_MARATHON_RUNNER",
	Machine:        "THE_SPEEDRUNNER",

	Curious:    "THE_EXPLORER",
	Yeller:     "THE_COMMANDER",
	Minimalist: "THE_SPEEDRUNNER",
	Novelist:   "THE_ARCHITECT",
	Diplomat:   "THE_CONVERSATIONALIST",
	Enthusiast: "THE_BUILDER",
	Architect:  "THE_ARCHITECT",
	Commander:  "THE_COMMANDER",

	Explorer:     "THE_EXPLORER",
	Builder:      "THE_BUILDER",
	Refactorer:   "THE_REFACTORER",
	TerminalLord: "THE_COMMANDER",
	Detective:    "THE_DEBUGGER",
	FullStack:    "THE_POLYGLOT",
}

// NamedID maps an axis id to its named persona id.
func NamedID(axisID string) string {
	if id, ok := namedFor[axisID]; ok {
		return id
	}
	return DefaultID
}

// Fallback converts a deterministic classification into a Result.
func Fallback(d Deterministic) Result {
	return Result{
		Persona:    NamedID(d.Primary.ID),
		Confidence: fallbackConfidence,
		Reasoning: fmt.Sprintf("Language: %s, Time: %s, Style: %s, Workflow: %s",
			d.Language.Name, d.Time.Name, d.Style.Name, d.Workflow.Name),
		Roast:      d.Roast,
		Compliment: d.Compliment,
	}
}
