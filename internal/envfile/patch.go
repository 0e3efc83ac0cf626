package envfile

import (
	"regexp"
	"strings"

	"github.com/joho/godotenv"

	"github.com/shinji-kodama/dotenv-prompt/internal/model"
)

// definitionRe matches the start of a defining line up to and including the
// key/value separator. godotenv accepts both "=" and ":" as separators and
// an optional "export " prefix, so the same forms are recognized here.
var definitionRe = regexp.MustCompile(`^\s*(?:export\s+)?([A-Za-z0-9_.]+)\s*[=:]`)

// inlineCommentRe finds a trailing comment after an unquoted value.
var inlineCommentRe = regexp.MustCompile(`\s#`)

// Patch applies changes to the raw .env text and returns the new text.
//
// For each changed key, every line that defines it is rewritten in place:
//   - the prefix up to and including the separator is kept as-is
//     (indentation, "export ", spacing around "=")
//   - the old value is replaced by the new one
//   - a trailing inline comment is kept
//   - the old quote style is kept when the new value reads back unchanged
//     in it; otherwise the value is single-quoted, or double-quoted with
//     escapes (see encodeValue)
//
// Keys with no defining line are appended as KEY=VALUE in ChangeSet order,
// quoted only when the bare value would not read back as written.
// A missing final newline is added before the first appended line, and
// appended lines use "\r\n" when the text already does.
//
// All other bytes of text are returned unchanged.
func Patch(text string, changes model.ChangeSet) string {
	if changes.Empty() {
		return text
	}

	pending := changes.Map()
	patched := make(map[string]bool, len(pending))

	var b strings.Builder
	b.Grow(len(text) + 64)

	for _, line := range splitLines(text) {
		body, eol := cutEOL(line)

		loc := definitionRe.FindStringSubmatchIndex(body)
		if loc != nil {
			key := body[loc[2]:loc[3]]
			if value, ok := pending[key]; ok {
				body = body[:loc[1]] + replaceValue(body[loc[1]:], value)
				patched[key] = true
			}
		}

		b.WriteString(body)
		b.WriteString(eol)
	}

	eol := lineEnding(text)
	needsBreak := text != "" && !strings.HasSuffix(text, "\n")

	for _, ch := range changes {
		if patched[ch.Name] {
			continue
		}
		if needsBreak {
			b.WriteString(eol)
			needsBreak = false
		}
		b.WriteString(ch.Name)
		b.WriteString("=")
		b.WriteString(encodeValue(ch.Value, "", 0))
		b.WriteString(eol)
		patched[ch.Name] = true
	}

	return b.String()
}

// replaceValue swaps the value part of a defining line (everything after the
// separator) for value, keeping leading whitespace, quote style where
// possible, and any trailing comment.
func replaceValue(rest, value string) string {
	trimmed := strings.TrimLeft(rest, " \t")
	lead := rest[:len(rest)-len(trimmed)]

	if trimmed != "" && (trimmed[0] == '"' || trimmed[0] == '\'') {
		quote := trimmed[0]
		end := closingQuote(trimmed, quote)
		if end < 0 {
			// Unterminated quote: nothing after the value can be trusted.
			return lead + encodeValue(value, "", quote)
		}
		return lead + encodeValue(value, trimmed[end+1:], quote)
	}

	if loc := inlineCommentRe.FindStringIndex(trimmed); loc != nil {
		return lead + encodeValue(value, trimmed[loc[0]:], 0)
	}
	return lead + encodeValue(value, "", 0)
}

// doubleQuoteEscaper escapes what godotenv would otherwise interpret inside
// double quotes: escapes, the closing quote, variable references, and line
// breaks.
var doubleQuoteEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	`$`, `\$`,
	"\n", `\n`,
	"\r", `\r`,
)

// encodeValue renders value followed by suffix (a trailing comment or "") so
// that the line parses back to exactly value. style is the quote the line
// used before (0 for unquoted) and is tried first, then single quotes,
// double quotes with escapes, and finally the bare value.
//
// A few values cannot be written in any style godotenv reads back, e.g. one
// ending in a backslash that also contains a space and a single quote.
// Those are written double-quoted and escaped, which is the closest form.
func encodeValue(value, suffix string, style byte) string {
	styles := []byte{style, '\'', '"', 0}
	for _, s := range styles {
		if candidate := quoteAs(s, value) + suffix; readsBack(candidate, value) {
			return candidate
		}
	}
	// The suffix may be what breaks the line (not a comment godotenv skips).
	for _, s := range styles {
		if candidate := quoteAs(s, value); readsBack(candidate, value) {
			return candidate
		}
	}
	return quoteAs('"', value) + suffix
}

// quoteAs renders value in one quote style. 0 means unquoted.
func quoteAs(style byte, value string) string {
	switch style {
	case '\'':
		return "'" + value + "'"
	case '"':
		return `"` + doubleQuoteEscaper.Replace(value) + `"`
	default:
		return value
	}
}

// readsBack reports whether a single line holding encoded as its value
// parses to exactly value.
func readsBack(encoded, value string) bool {
	if strings.ContainsAny(encoded, "\r\n") {
		return false
	}
	env, err := godotenv.Unmarshal("KEY=" + encoded)
	if err != nil || len(env) != 1 {
		return false
	}
	got, ok := env["KEY"]
	return ok && got == value
}

// closingQuote returns the index of the quote that closes s[0], or -1.
// Backslash escapes are honored inside double quotes only, as in godotenv.
func closingQuote(s string, quote byte) int {
	for i := 1; i < len(s); i++ {
		switch {
		case quote == '"' && s[i] == '\\':
			i++
		case s[i] == quote:
			return i
		}
	}
	return -1
}

// lineEnding reports the terminator new lines should use.
func lineEnding(text string) string {
	if strings.Contains(text, "\r\n") {
		return "\r\n"
	}
	return "\n"
}
