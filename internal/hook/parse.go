package hook

import (
	"regexp"
	"strings"
)

// testFlagPattern matches a trailing -t flag with an optional scope token.
// Anchored at end-of-string so hyphenated words mid-sentence never match;
// the leading whitespace requirement keeps a bare "-t" prompt from matching
// its own first character.
var testFlagPattern = regexp.MustCompile(`\s+-t([a-zA-Z0-9_-]*)\s*$`)

// ParseTestFlag detects a trailing "-t[scope]" directive in prompt text.
// It returns the scope token (empty for a bare -t, meaning default scope),
// the prompt with the flag stripped, and whether a flag was found. When no
// flag is present the original prompt is returned unchanged. Pure function.
func ParseTestFlag(prompt string) (scope, cleaned string, ok bool) {
	loc := testFlagPattern.FindStringSubmatchIndex(prompt)
	if loc == nil {
		return "", prompt, false
	}
	scope = prompt[loc[2]:loc[3]]
	cleaned = strings.TrimSpace(prompt[:loc[0]])
	return scope, cleaned, true
}

// HasIndexFlag detects the sibling -i directive. Deliberately a plain
// substring test: the index path does no scope extraction.
func HasIndexFlag(prompt string) bool {
	return strings.Contains(prompt, "-i")
}
