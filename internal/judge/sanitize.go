package judge

import (
	"regexp"
	"unicode/utf8"
)

const sanitizedLimit = 300

type redaction struct {
	re   *regexp.Regexp
	with string
}

// redactions run in order; later patterns see the output of earlier ones.
var redactions = []redaction{
	{regexp.MustCompile(`sk-[a-zA-Z0-9]{20,}`), "[REDACTED_API_KEY]"},
	{regexp.MustCompile(`sk_[a-zA-Z0-9]{20,}`), "[REDACTED_API_KEY]"},
	{regexp.MustCompile(`AIza[a-zA-Z0-9_-]{35}`), "[REDACTED_GOOGLE_KEY]"},
	{regexp.MustCompile(`ghp_[a-zA-Z0-9]{36}`), "[REDACTED_GITHUB_TOKEN]"},
	{regexp.MustCompile(`gho_[a-zA-Z0-9]{36}`), "[REDACTED_GITHUB_TOKEN]"},
	{regexp.MustCompile(`xox[baprs]-[a-zA-Z0-9-]{10,}`), "[REDACTED_SLACK_TOKEN]"},
	{regexp.MustCompile(`(?i)[0-9a-f]{32,}`), "[REDACTED_HEX]"},
	{regexp.MustCompile(`[A-Za-z0-9+/]{40,}={0,2}`), "[REDACTED_BASE64]"},
	{regexp.MustCompile(`(?i)password\s*[=:]\s*\S+`), "password=[REDACTED]"},
	{regexp.MustCompile(`(?i)passwd\s*[=:]\s*\S+`), "passwd=[REDACTED]"},
	{regexp.MustCompile(`(?i)secret\s*[=:]\s*\S+`), "secret=[REDACTED]"},
	{regexp.MustCompile(`(?i)token\s*[=:]\s*\S+`), "token=[REDACTED]"},
	{regexp.MustCompile(`(?i)api_key\s*[=:]\s*\S+`), "api_key=[REDACTED]"},
	{regexp.MustCompile(`(?i)apikey\s*[=:]\s*\S+`), "apikey=[REDACTED]"},
	{regexp.MustCompile(`AKIA[A-Z0-9]{16}`), "[REDACTED_AWS_KEY]"},
	{regexp.MustCompile(`(?s)-----BEGIN [A-Z ]+ PRIVATE KEY-----.*?-----END [A-Z ]+ PRIVATE KEY-----`), "[REDACTED_PRIVATE_KEY]"},
}

// Sanitize redacts likely secrets from a prompt and truncates it to 300
// characters before it leaves the machine.
func Sanitize(prompt string) string {
	s := prompt
	for _, r := range redactions {
		s = r.re.ReplaceAllLiteralString(s, r.with)
	}
	if utf8.RuneCountInString(s) > sanitizedLimit {
		s = string([]rune(s)[:sanitizedLimit])
	}
	return s
}
