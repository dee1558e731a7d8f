package lexer

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// EscapeHint lists the escape sequences string literals accept.
const EscapeHint = `valid escapes are \n \t \r \0 \\ \' \" \uXXXX and \u{X...}`

// decodeEscape decodes the escape sequence following a backslash. It
// returns the decoded rune, the number of runes consumed after the
// backslash and, for a malformed sequence, a message. Consumption never
// crosses a newline.
func decodeEscape(rest []rune) (rune, int, string) {
	if len(rest) == 0 || rest[0] == '\n' {
		return 0, 0, "unterminated escape sequence"
	}
	switch rest[0] {
	case 'n':
		return '\n', 1, ""
	case 't':
		return '\t', 1, ""
	case 'r':
		return '\r', 1, ""
	case '0':
		return 0, 1, ""
	case '\\':
		return '\\', 1, ""
	case '\'':
		return '\'', 1, ""
	case '"':
		return '"', 1, ""
	case 'u':
		return decodeUnicodeEscape(rest)
	}
	return 0, 1, fmt.Sprintf("unknown escape sequence \\%c", rest[0])
}

func decodeUnicodeEscape(rest []rune) (rune, int, string) {
	if len(rest) > 1 && rest[1] == '{' {
		j := 2
		for j < len(rest) && isHexDigit(rest[j]) {
			j++
		}
		digits := j - 2
		if j >= len(rest) || rest[j] != '}' {
			return 0, j, `unterminated \u{...} escape`
		}
		if digits == 0 || digits > 6 {
			return 0, j + 1, `\u{...} escape needs one to six hex digits`
		}
		v, _ := strconv.ParseUint(string(rest[2:j]), 16, 32)
		if !validScalar(rune(v)) {
			return 0, j + 1, fmt.Sprintf("invalid code point U+%X", v)
		}
		return rune(v), j + 1, ""
	}

	j := 1
	for j < len(rest) && j < 5 && isHexDigit(rest[j]) {
		j++
	}
	if j != 5 {
		return 0, j, `\u escape needs exactly four hex digits`
	}
	v, _ := strconv.ParseUint(string(rest[1:5]), 16, 32)
	if !validScalar(rune(v)) {
		return 0, 5, fmt.Sprintf("invalid code point U+%04X", v)
	}
	return rune(v), 5, ""
}

func validScalar(r rune) bool {
	return utf8.ValidRune(r)
}

// Unescape decodes the body of a string literal, without its quotes.
func Unescape(body string) (string, error) {
	src := []rune(body)
	var b strings.Builder
	for i := 0; i < len(src); i++ {
		if src[i] != '\\' {
			b.WriteRune(src[i])
			continue
		}
		r, n, msg := decodeEscape(src[i+1:])
		if msg != "" {
			return "", fmt.Errorf("offset %d: %s", i, msg)
		}
		b.WriteRune(r)
		i += n
	}
	return b.String(), nil
}

// StringValue decodes a string or character literal lexeme, quotes
// included.
func StringValue(lexeme string) (string, error) {
	if len(lexeme) < 2 || lexeme[0] != '\'' || lexeme[len(lexeme)-1] != '\'' {
		return "", fmt.Errorf("malformed string literal %q", lexeme)
	}
	return Unescape(lexeme[1 : len(lexeme)-1])
}
