// Package config provides configuration loading and defaults for compiled.
package config

// DefaultClaudeHome is the default location of Claude Code's data directory.
const DefaultClaudeHome = "~/.claude"

// DefaultSearchPaths are scanned one level deep for project .claude dirs.
var DefaultSearchPaths = []string{"~"}

// DefaultConfigDir is the default location for compiled configuration.
const DefaultConfigDir = "~/.config/compiled"

// DefaultConfigFile is the filename for the YAML config.
const DefaultConfigFile = "config.yaml"

// DefaultYear is the calendar year the report covers.
const DefaultYear = 2025

// DefaultOutput is the output directory template; {year} is replaced.
const DefaultOutput = "./output/wrapped-{year}"

// DefaultModel is the Claude model used by the judge.
const DefaultModel = "claude-sonnet-4-20250514"

// DefaultAPIURL is the Claude API base URL.
const DefaultAPIURL = "https://api.anthropic.com"

// DefaultJudgeSamples caps the prompts sent to the judge.
const DefaultJudgeSamples = 500

// DefaultSummaryLimit is the number of conversation summaries kept on the report.
const DefaultSummaryLimit = 20

// DefaultImageScript is the generator invoked for persona and share images.
const DefaultImageScript = "scripts/generate_image.py"

// DefaultPython is the interpreter used to run DefaultImageScript.
const DefaultPython = "python"

// DefaultDBName is the filename of the SQLite export inside the output dir.
const DefaultDBName = "wrapped.db"

// DefaultShareBaseURL prefixes the encoded share payload.
const DefaultShareBaseURL = "https://blog.parcha.dev/static/2025-compiled?d="

// EnvPrefix prefixes environment overrides, e.g. COMPILED_YEAR.
const EnvPrefix = "COMPILED"
