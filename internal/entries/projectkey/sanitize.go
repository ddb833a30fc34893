// Package projectkey derives safe storage key segments from untrusted
// user-supplied project (sync) names.
package projectkey

import (
	"regexp"
	"strings"
)

const maxLength = 80

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	disallowed    = regexp.MustCompile(`[^\w .\-]`)
)

// Sanitize cleans a raw project name into a key-safe identifier. It
// trims surrounding whitespace, collapses interior whitespace runs,
// truncates to 80 characters and rejects names shorter than 2
// characters by returning "". Characters outside letters, digits,
// underscore, space, period and hyphen are stripped last.
//
// The length gate runs before the character strip, so a short
// all-punctuation name like "!!" passes the gate and then strips to an
// empty string. That matches the historical behavior of the sync
// protocol and is pinned by tests; changing it would re-key existing
// projects.
func Sanitize(raw string) string {
	out := whitespaceRun.ReplaceAllString(strings.TrimSpace(raw), " ")
	if r := []rune(out); len(r) > maxLength {
		out = string(r[:maxLength])
	}
	if len([]rune(out)) < 2 {
		return ""
	}
	return disallowed.ReplaceAllString(out, "")
}
