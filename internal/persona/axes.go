// Package persona classifies a year of activity into personas. Four
// independent axes (language, time, style, workflow) are detected from the
// analyzer output, one of them is promoted to the headline persona, and the
// result maps onto the named personas shared with the LLM judge.
package persona

// Axis is one persona on a single classification dimension.
type Axis struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Emoji      string `json:"emoji"`
	Tagline    string `json:"tagline"`
	Roast      string `json:"roast"`
	Compliment string `json:"compliment"`
}

// Axis ids referenced by the primary chain and the combination tables.
const (
	TypeGuardian = "TYPE_GUARDIAN"
	SnakeCharmer = "SNAKE_CHARMER"
	Polyglot     = "POLYGLOT"

	Vampire        = "VAMPIRE"
	EarlyBird      = "EARLY_BIRD"
	MorningPerson  = "MORNING_PERSON"
	LunchCoder     = "LUNCH_CODER"
	NineToFiver    = "NINE_TO_FIVER"
	AfterHourer    = "AFTER_HOURER"
	NightOwl       = "NIGHT_OWL"
	WeekendWarrior = "WEEKEND_WARRIOR"
	Machine        = "MACHINE"

	Curious    = "CURIOUS"
	Yeller     = "YELLER"
	Minimalist = "MINIMALIST"
	Novelist   = "NOVELIST"
	Diplomat   = "DIPLOMAT"
	Enthusiast = "ENTHUSIAST"
	Architect  = "ARCHITECT"
	Commander  = "COMMANDER"

	Explorer     = "EXPLORER"
	Builder      = "BUILDER"
	Refactorer   = "REFACTORER"
	TerminalLord = "TERMINAL_LORD"
	Detective    = "DETECTIVE"
	FullStack    = "FULL_STACK"
)

var (
	typeGuardian = Axis{TypeGuardian, "The Type Guardian", "🛡️", "'any' is a four-letter word",
		"You've written more interfaces than you've had conversations this year.",
		"Runtime errors fear you. Your types are so tight, bugs don't even try."}
	chaosWizard = Axis{"CHAOS_WIZARD", "The Chaos Wizard", "🧙", "undefined is not a function... yet",
		"Living life without types? That's not bravery, that's a death wish.",
		"While others debate types, you've already shipped and moved on. Speed demon."}
	memoryWhisperer = Axis{"MEMORY_WHISPERER", "The Memory Whisperer", "🔧", "Who needs garbage collection?",
		"Segfaults are just your code's way of saying hello.",
		"You understand computers at a level most devs never will."}
	terminalDweller = Axis{"TERMINAL_DWELLER", "The Terminal Dweller", "💻", "GUI is for the weak",
		"Your bash history is longer than most people's codebases.",
		"You automate what others do manually. Efficiency incarnate."}
	pixelPusher = Axis{"PIXEL_PUSHER", "The Pixel Pusher", "🎨", "It's centered, I swear",
		"You've spent more time on CSS than actual programming.",
		"You make the web beautiful. Someone has to."}
)

// languageAxes maps a lowercased file extension to its persona.
var languageAxes = map[string]Axis{
	"ts":  typeGuardian,
	"tsx": typeGuardian,
	"js":  chaosWizard,
	"jsx": chaosWizard,
	"py": {SnakeCharmer, "The Snake Charmer", "🐍", "import antigravity",
		"pip install talent? Oh wait, that's actually what you're doing.",
		"You make complex look simple. That's not easy—that's mastery."},
	"rs": {"BORROW_CHECKER", "The Borrow Checker", "🦀", "Fearless concurrency, fearful compilation",
		"You spent more time fighting the compiler than your actual enemies.",
		"You chose the hard path. Zero-cost abstractions, zero bugs, zero compromises."},
	"go": {"GOPHER", "The Gopher", "🐹", "if err != nil { forever }",
		"50% of your code is 'if err != nil'. The other 50% is return.",
		"You build backends that handle millions of requests without breaking a sweat."},
	"java": {"ENTERPRISE_ARCHITECT", "The Enterprise Architect", "☕", "AbstractSingletonProxyFactoryBean",
		"Your class names are longer than most people's functions.",
		"You build systems that outlive companies, survive acquisitions, and just keep running."},
	"c":   memoryWhisperer,
	"cpp": memoryWhisperer,
	"rb": {"GEM_COLLECTOR", "The Gem Collector", "💎", "Everything is an object, even your feelings",
		"Rails is not a personality trait. Or is it?",
		"Developer happiness matters, and you've optimized for it."},
	"php": {"LEGACY_KEEPER", "The Legacy Keeper", "🐘", "Still powering 80% of the web",
		"2024 called, they want... actually no, 2004 called.",
		"You keep the internet running. Literally."},
	"swift": {"APPLE_EVANGELIST", "The Apple Evangelist", "🍎", "It just works (after 47 optionals)",
		"You've spent more time unwrapping optionals than presents.",
		"Your apps are so polished they belong in a museum."},
	"kt": {"JAVA_ESCAPEE", "The Java Escapee", "🏃", "Null safety or bust",
		"You spent 6 months learning Kotlin to avoid typing 'public static void'.",
		"You took the best of Java and left the rest. Smart."},
	"sh":   terminalDweller,
	"bash": terminalDweller,
	"sql": {"DATA_WHISPERER", "The Data Whisperer", "🗃️", "SELECT * FROM problems",
		"You think in tables. Your therapist is concerned.",
		"You extract insights others don't even know exist."},
	"html": pixelPusher,
	"css":  pixelPusher,
	"md": {"DOCUMENTARIAN", "The Documentarian", "📝", "README.md is my love language",
		"You've written more docs than code. That's... actually fine.",
		"Future you and your teammates thank you. Seriously."},
	"json": {"CONFIG_WIZARD", "The Config Wizard", "⚙️", "It's just JSON all the way down",
		"You've spent more time configuring than coding.",
		"A well-configured system is a happy system."},
	"yaml": {"CONFIG_WIZARD", "The Config Wizard", "⚙️", "Indentation is my religion",
		"One wrong space and everything breaks. You live dangerously.",
		"You make infrastructure as code look easy."},
}

// DefaultLanguage is the language persona when no language dominates.
var DefaultLanguage = Axis{Polyglot, "The Polyglot", "🌍", "Jack of all trades, master of... some",
	"You switch languages like you switch tabs. Commitment issues much?",
	"You're a one-person engineering team. Drop you into any stack and you'll ship."}

var timeAxes = map[string]Axis{
	Vampire: {Vampire, "The Vampire", "🧛", "The best bugs are fixed at 3am",
		"Your circadian rhythm filed a missing persons report.",
		"Darkness is where you thrive. You're not awake late—everyone else sleeps too early."},
	EarlyBird: {EarlyBird, "The Early Bird", "🐦", "First commits before first coffee",
		"5am coding? Your alarm clock is judging you.",
		"By the time others check Slack, you've already crushed it. Absolute machine."},
	MorningPerson: {MorningPerson, "The Morning Person", "☀️", "Peak productivity before noon",
		"A morning person in tech? That's basically a cryptid.",
		"Fresh mind, fresh code. You solve problems before lunch that others struggle with all day."},
	LunchCoder: {LunchCoder, "The Lunch Coder", "🍕", "Debugging between bites",
		"Your keyboard needs therapy after what you've put it through.",
		"Peak flow state hits when others are on break. You're built different."},
	NineToFiver: {NineToFiver, "The 9-to-5er", "💼", "Professional hours, professional code",
		"Leaving at 5pm? Must be nice in fantasy land.",
		"Boundaries. Discipline. You ship great code without burning out. That's the real flex."},
	AfterHourer: {AfterHourer, "The After-Hourer", "🌆", "Side project energy",
		"Your side projects have more commits than some companies' main products.",
		"Day job pays bills. After hours? That's where your genius lives."},
	NightOwl: {NightOwl, "The Night Owl", "🦉", "Dark mode isn't a preference, it's a lifestyle",
		"Doctors hate this one weird trick (it's your sleep schedule).",
		"The quiet hours are when legends ship. No meetings, no distractions, just pure creation."},
	WeekendWarrior: {WeekendWarrior, "The Weekend Warrior", "⚔️", "Who needs a social life?",
		"Your social calendar says 'git commit' every Saturday.",
		"While others brunch, you build. That's why you're ahead."},
	Machine: {Machine, "The Machine", "🤖", "Sleep is for the weak",
		"We checked—you're not actually a bot. We're concerned.",
		"All hours. All days. You don't stop. You're not human—you're a force of nature."},
}

var styleAxes = map[string]Axis{
	Curious: {Curious, "The Curious Mind", "🤔", "Why? How? What if?",
		"You ask more questions than a congressional hearing.",
		"Curiosity built everything great. Your questions lead to breakthroughs."},
	Yeller: {Yeller, "The Yeller", "🔥", "CAPS LOCK IS CRUISE CONTROL FOR COOL",
		"Your keyboard's caps lock is legally a weapon at this point.",
		"That passion? That's what ships features. You CARE. Loudly."},
	Minimalist: {Minimalist, "The Minimalist", "💨", "fix it",
		"Hemingway wrote more than you. And he was known for being brief.",
		"No wasted words. No wasted time. Maximum efficiency unlocked."},
	Novelist: {Novelist, "The Novelist", "📖", "Context is everything",
		"Your prompts have chapters. Some have appendices.",
		"You give perfect context. AI dreams of users like you."},
	Diplomat: {Diplomat, "The Diplomat", "🎩", "Please and thank you, always",
		"You say 'please' to an AI. It doesn't have feelings... yet.",
		"Manners make the engineer. You'll be fine when AI takes over."},
	Enthusiast: {Enthusiast, "The Enthusiast", "⚡", "This is amazing!!!",
		"Your exclamation marks could power a small city.",
		"Your energy is unmatched. Every team needs someone who's actually excited."},
	Architect: {Architect, "The Architect", "📐", "Let me explain the full context...",
		"Your prompts need a table of contents.",
		"You plan like a general. Execute like a sniper. Systems thinker."},
	Commander: {Commander, "The Commander", "⚔️", "Do it. Now.",
		"No please. No thank you. Just results. Terrifying and effective.",
		"Zero ambiguity. Zero wasted time. You command, things happen."},
}

var workflowAxes = map[string]Axis{
	Explorer: {Explorer, "The Explorer", "🔍", "Read first, code later",
		"You've read more code than you've written. At least you're thorough?",
		"You understand before you change. That's how seniors think."},
	Builder: {Builder, "The Builder", "🏗️", "From zero to deployed",
		"Greenfield addiction is real. Legacy code is for peasants, right?",
		"You don't fix problems—you build solutions. That's founder energy."},
	Refactorer: {Refactorer, "The Refactorer", "✨", "Make it work, then make it right",
		"Your code has more drafts than a novelist's manuscript.",
		"You take good and make it legendary. Code in your hands evolves."},
	TerminalLord: {TerminalLord, "The Terminal Lord", "👑", "GUI is optional",
		"Your bash history is longer than your relationship history.",
		"The command line bends to your will. Raw power, no abstractions."},
	Detective: {Detective, "The Detective", "🕵️", "grep is my best friend",
		"You search for bugs like you're searching for your will to live.",
		"Nothing escapes you. Bugs hide—you find them. Every. Single. Time."},
	FullStack: {FullStack, "The Full Stack", "🎯", "Jack of all tools, master of flow",
		"You use everything but commit to nothing. Swiss army knife energy.",
		"Frontend, backend, infra—you flow through all layers. True engineer."},
}
