package normalize

// Fold tables. Every replacement is stable under a second pass: no
// replacement text contains a rune that appears as a key.

var bidiControls = map[rune]bool{
	'\u061c': true, // arabic letter mark
	'\u200e': true, // left-to-right mark
	'\u200f': true, // right-to-left mark
	'\u202a': true, // left-to-right embedding
	'\u202b': true, // right-to-left embedding
	'\u202c': true, // pop directional formatting
	'\u202d': true, // left-to-right override
	'\u202e': true, // right-to-left override
	'\u2066': true, // left-to-right isolate
	'\u2067': true, // right-to-left isolate
	'\u2068': true, // first strong isolate
	'\u2069': true, // pop directional isolate
}

var variationSelectors = map[rune]bool{
	'\ufe0e': true,
	'\ufe0f': true,
}

// Combining voiced and semi-voiced sound marks, with the spacing forms
// mapped onto their combining counterparts.
var soundMarks = map[rune]rune{
	'\u3099': '\u3099',
	'\u309a': '\u309a',
	'゛': '\u3099',
	'゜': '\u309a',
}

var japanesePunctuation = map[rune]string{
	'〜': "~", // wave dash
	'−': "-", // minus sign
	'‐': "-", // hyphen
	'‑': "-", // non-breaking hyphen
	'—': "-", // em dash
	'―': "-", // horizontal bar
	'、': ",", // ideographic comma
	'。': ".", // ideographic full stop
	'‘': "'",
	'’': "'",
	'「': "'", // corner brackets quote strings
	'」': "'",
}

var mathSymbols = map[rune]string{
	'×': "*",
	'÷': "/",
	'π': "pi",
	'∞': "inf",
	'α': "alpha",
	'β': "beta",
	'γ': "gamma",
	'θ': "theta",
	'λ': "lambda",
	'≈': "~=",
	'√': "sqrt",
	'≦': "≤",
	'≧': "≥",
}

// Letters from Cyrillic and Greek that render like Latin letters.
var homoglyphs = map[rune]rune{
	// Cyrillic lowercase
	'а': 'a', 'е': 'e', 'о': 'o', 'р': 'p', 'с': 'c', 'у': 'y', 'х': 'x',
	'і': 'i', 'ј': 'j', 'ѕ': 's', 'һ': 'h', 'ԁ': 'd', 'ԛ': 'q', 'ԝ': 'w',
	// Cyrillic uppercase
	'А': 'A', 'В': 'B', 'Е': 'E', 'К': 'K', 'М': 'M', 'Н': 'H', 'О': 'O',
	'Р': 'P', 'С': 'C', 'Т': 'T', 'Х': 'X', 'У': 'Y', 'І': 'I', 'Ј': 'J', 'Ѕ': 'S',
	// Greek
	'Α': 'A', 'Β': 'B', 'Ε': 'E', 'Ζ': 'Z', 'Η': 'H', 'Ι': 'I', 'Κ': 'K',
	'Μ': 'M', 'Ν': 'N', 'Ο': 'O', 'Ρ': 'P', 'Τ': 'T', 'Υ': 'Y', 'Χ': 'X',
	'ο': 'o', 'ν': 'v', 'ι': 'i',
}

// Homoglyph reports the Latin letter r imitates, if any.
func Homoglyph(r rune) (rune, bool) {
	l, ok := homoglyphs[r]
	return l, ok
}

// IsBidiControl reports whether r is a bidirectional formatting control.
func IsBidiControl(r rune) bool {
	return bidiControls[r]
}
