package placeholder

import (
	"regexp"
	"strconv"
)

var (
	bracketPattern = regexp.MustCompile(`<([^>]+)>`)
	tokenPattern   = regexp.MustCompile(`^(\w+)(?:([+-])(\d+))?$`)
)

// Token is one distinct placeholder occurrence in a sentence.
type Token struct {
	Text   string // text between the brackets, e.g. "rank+1"
	Base   string // placeholder name, e.g. "rank"
	Offset int    // numeric shift, 0 when absent
}

// Literal returns the token as written in the sentence.
func (t Token) Literal() string {
	return "<" + t.Text + ">"
}

// ParseToken parses the text between angle brackets.
func ParseToken(text string) (Token, bool) {
	m := tokenPattern.FindStringSubmatch(text)
	if m == nil {
		return Token{}, false
	}

	tok := Token{Text: text, Base: m[1]}
	if m[2] != "" {
		n, err := strconv.Atoi(m[3])
		if err != nil {
			return Token{}, false
		}
		if m[2] == "-" {
			n = -n
		}
		tok.Offset = n
	}
	return tok, true
}

// Tokens returns the distinct well-formed tokens of a sentence in order of
// first appearance. Malformed bracket text is skipped.
func Tokens(sentence string) []Token {
	var tokens []Token
	seen := make(map[string]bool)
	for _, m := range bracketPattern.FindAllStringSubmatch(sentence, -1) {
		text := m[1]
		if seen[text] {
			continue
		}
		seen[text] = true

		if tok, ok := ParseToken(text); ok {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// HasPlaceholder reports whether s contains any bracketed text.
func HasPlaceholder(s string) bool {
	return bracketPattern.MatchString(s)
}

// Unresolved returns the sentinel value of a placeholder that could not be
// resolved.
func Unresolved(name string) string {
	return "<" + name + ">"
}
