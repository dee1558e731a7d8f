package lexer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dhamidi/fepc/fe/token"
)

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func basePrefix(r rune) (int, string) {
	switch r {
	case 'x', 'X':
		return 16, "hexadecimal"
	case 'b', 'B':
		return 2, "binary"
	case 'o', 'O':
		return 8, "octal"
	}
	return 0, ""
}

func isBaseDigit(r rune, base int) bool {
	switch base {
	case 16:
		return isHexDigit(r)
	case 8:
		return r >= '0' && r <= '7'
	case 2:
		return r == '0' || r == '1'
	}
	return isDigit(r)
}

func isPrefixed(src []rune) bool {
	if len(src) < 2 || src[0] != '0' {
		return false
	}
	base, _ := basePrefix(src[1])
	return base != 0
}

// numberExtent returns how many runes of src belong to the numeric
// literal starting at src[0]. Identifier characters glued to the end of
// a number are part of its extent so the whole malformed literal is
// reported at once.
func numberExtent(src []rune) int {
	n := len(src)
	j := 0
	if isPrefixed(src) {
		j = 2
		for j < n && isIdentPart(src[j]) {
			j++
		}
		return j
	}

	for j < n && (isDigit(src[j]) || src[j] == '_') {
		j++
	}
	if j+1 < n && src[j] == '.' && (isDigit(src[j+1]) || src[j+1] == '_') {
		j++
		for j < n && (isDigit(src[j]) || src[j] == '_') {
			j++
		}
	}
	if j < n && (src[j] == 'e' || src[j] == 'E') {
		j++
		if j < n && (src[j] == '+' || src[j] == '-') {
			j++
		}
		for j < n && (isDigit(src[j]) || src[j] == '_') {
			j++
		}
	}
	for j < n && isIdentPart(src[j]) {
		j++
	}
	return j
}

// classifyNumber validates a numeric literal and reports whether it is
// an integer or a real. A non-empty message means the literal is
// malformed; hint then suggests a fix.
func classifyNumber(lit []rune) (kind token.TokenKind, msg, hint string) {
	if isPrefixed(lit) {
		return classifyPrefixed(lit)
	}

	n := len(lit)
	i := 0
	kind = token.TokenInteger
	for i < n && (isDigit(lit[i]) || lit[i] == '_') {
		i++
	}
	if i < n && lit[i] == '.' {
		kind = token.TokenReal
		i++
		for i < n && (isDigit(lit[i]) || lit[i] == '_') {
			i++
		}
	}
	expDigits := -1
	if i < n && (lit[i] == 'e' || lit[i] == 'E') {
		kind = token.TokenReal
		i++
		if i < n && (lit[i] == '+' || lit[i] == '-') {
			i++
		}
		expDigits = 0
		for i < n && (isDigit(lit[i]) || lit[i] == '_') {
			if isDigit(lit[i]) {
				expDigits++
			}
			i++
		}
	}
	if i < n {
		return kind, fmt.Sprintf("invalid character %q in numeric literal", lit[i]),
			"separate the number from the following name with a space"
	}
	if msg, hint := checkSeparators(lit, 0, 10); msg != "" {
		return kind, msg, hint
	}
	if expDigits == 0 {
		return kind, "exponent has no digits", "add at least one digit after the exponent marker"
	}
	return kind, "", ""
}

func classifyPrefixed(lit []rune) (token.TokenKind, string, string) {
	base, name := basePrefix(lit[1])
	digits := lit[2:]
	if len(digits) == 0 {
		return token.TokenInteger, fmt.Sprintf("%s literal has no digits after %s", name, string(lit[:2])),
			fmt.Sprintf("add at least one %s digit", name)
	}
	for _, r := range digits {
		if r != '_' && !isBaseDigit(r, base) {
			return token.TokenInteger, fmt.Sprintf("invalid digit %q in %s literal", r, name), ""
		}
	}
	if msg, hint := checkSeparators(lit, 2, base); msg != "" {
		return token.TokenInteger, msg, hint
	}
	return token.TokenInteger, "", ""
}

// checkSeparators requires every '_' from index from onwards to sit
// between two digits of base.
func checkSeparators(lit []rune, from, base int) (string, string) {
	for k := from; k < len(lit); k++ {
		if lit[k] != '_' {
			continue
		}
		if k == from || k == len(lit)-1 || !isBaseDigit(lit[k-1], base) || !isBaseDigit(lit[k+1], base) {
			return "misplaced digit separator '_'", "place '_' only between two digits"
		}
	}
	return "", ""
}

// IntValue decodes an integer literal lexeme. Values outside the int64
// range are an error.
func IntValue(lexeme string) (int64, error) {
	s := strings.ReplaceAll(lexeme, "_", "")
	base := 10
	if r := []rune(s); isPrefixed(r) {
		base, _ = basePrefix(r[1])
		s = s[2:]
	}
	v, err := strconv.ParseInt(s, base, 64)
	if err != nil {
		return 0, fmt.Errorf("integer literal %s: %w", lexeme, err)
	}
	return v, nil
}

// RealValue decodes a real literal lexeme.
func RealValue(lexeme string) (float64, error) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(lexeme, "_", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("real literal %s: %w", lexeme, err)
	}
	return v, nil
}
