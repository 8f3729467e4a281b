package shell

import (
	"strings"
	"unicode"
)

// Word splitting as defined by
// https://pubs.opengroup.org/onlinepubs/9699919799/utilities/V3_chap02.html
//
// Outside quotes, unquoted whitespace separates words and a backslash
// escapes the next character. Single quotes preserve everything literally.
// Double quotes preserve everything except a backslash before one of
// `"`, `\`, `$` or a backtick, which escapes it. Adjacent quoted and
// unquoted fragments with no separating whitespace form a single word.

type lexState int

const (
	stateUnquoted lexState = iota
	stateSingleQuote
	stateDoubleQuote
)

// Tokenize splits a single line of input into words following the quoting
// rules above. The trailing newline must already be stripped.
//
// An unterminated quote extends to the end of the line and a trailing bare
// backslash escapes nothing; neither is an error.
func Tokenize(line string) []string {
	var tokens []string
	var word strings.Builder

	// inWord distinguishes the empty word produced by "" or '' from no
	// word at all.
	inWord := false
	state := stateUnquoted
	escaped := false

	flush := func() {
		if inWord {
			tokens = append(tokens, word.String())
			word.Reset()
			inWord = false
		}
	}

	for _, r := range line {
		switch state {
		case stateUnquoted:
			switch {
			case escaped:
				word.WriteRune(r)
				inWord = true
				escaped = false
			case r == '\\':
				escaped = true
			case r == '\'':
				state = stateSingleQuote
				inWord = true
			case r == '"':
				state = stateDoubleQuote
				inWord = true
			case unicode.IsSpace(r):
				flush()
			default:
				word.WriteRune(r)
				inWord = true
			}

		case stateSingleQuote:
			if r == '\'' {
				state = stateUnquoted
			} else {
				word.WriteRune(r)
			}

		case stateDoubleQuote:
			switch {
			case escaped:
				switch r {
				case '"', '\\', '$', '`':
					word.WriteRune(r)
				default:
					word.WriteRune('\\')
					word.WriteRune(r)
				}
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				state = stateUnquoted
			default:
				word.WriteRune(r)
			}
		}
	}

	// A backslash inside double quotes that escapes nothing is literal.
	if escaped && state == stateDoubleQuote {
		word.WriteRune('\\')
	}

	flush()
	return tokens
}
