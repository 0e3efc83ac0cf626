package envfile

import (
	"regexp"
	"sort"
	"strings"

	"github.com/joho/godotenv"

	"github.com/shinji-kodama/dotenv-prompt/internal/model"
)

var keyRe = regexp.MustCompile(`^[A-Za-z0-9_.]+$`)

// ValidKey reports whether name can appear as the key of a defining line.
// Only these names are found again by Parse and Patch.
func ValidKey(name string) bool {
	return keyRe.MatchString(name)
}

// Parse converts raw .env text into an ordered EnvMap.
//
// Values are decoded by godotenv. godotenv rejects the whole input when a
// single line is not an assignment, so on error the text is decoded again
// one defining line at a time and lines godotenv still rejects are dropped.
// Non-assignment lines therefore never make parsing fail.
//
// Keys are ordered by their first defining line. When a key is defined more
// than once the last definition provides the value, matching godotenv.
func Parse(text string) *model.EnvMap {
	env := model.NewEnvMap()
	if text == "" {
		return env
	}

	values, err := godotenv.Unmarshal(text)
	if err != nil {
		values = parseLines(text)
	}

	for _, key := range DefinedKeys(text) {
		if value, ok := values[key]; ok {
			env.Set(key, value)
		}
	}

	// godotenv accepts a few spellings the line scan does not recognize
	// (e.g. a key following a multi-line quoted value). Keep well-formed
	// ones, sorted for stable output.
	var extra []string
	for key := range values {
		if !env.Has(key) && keyRe.MatchString(key) {
			extra = append(extra, key)
		}
	}
	sort.Strings(extra)
	for _, key := range extra {
		env.Set(key, values[key])
	}

	return env
}

// parseLines decodes each defining line on its own. Used only when
// godotenv refuses the full text.
func parseLines(text string) map[string]string {
	values := make(map[string]string)
	for _, line := range splitLines(text) {
		body, _ := cutEOL(line)
		if !definitionRe.MatchString(body) {
			continue
		}
		parsed, err := godotenv.Unmarshal(body)
		if err != nil {
			continue
		}
		for k, v := range parsed {
			values[k] = v
		}
	}
	return values
}

// DefinedKeys returns every key with a defining line in text, in order of
// first appearance.
func DefinedKeys(text string) []string {
	var keys []string
	seen := make(map[string]bool)
	for _, line := range splitLines(text) {
		body, _ := cutEOL(line)
		key, ok := definedKey(body)
		if !ok || seen[key] {
			continue
		}
		seen[key] = true
		keys = append(keys, key)
	}
	return keys
}

// definedKey extracts the key from a defining line body (no terminator).
func definedKey(body string) (string, bool) {
	m := definitionRe.FindStringSubmatch(body)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// splitLines splits text into lines, each keeping its terminator.
// The last element has no terminator when text does not end in "\n".
func splitLines(text string) []string {
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// cutEOL separates a line from its "\n" or "\r\n" terminator.
func cutEOL(line string) (body, eol string) {
	if strings.HasSuffix(line, "\r\n") {
		return line[:len(line)-2], "\r\n"
	}
	if strings.HasSuffix(line, "\n") {
		return line[:len(line)-1], "\n"
	}
	return line, ""
}
