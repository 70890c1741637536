package tableau

// lexer.go implements the single-character tokenizer described by the
// tableau surface syntax. It performs no semantic classification: the
// parser alone decides what a token means by looking it up in fixed
// vocabularies.

// isASCIIWhitespace reports whether r is one of the ASCII whitespace
// characters skipped between tokens: space, horizontal tab, line feed,
// vertical tab, form feed, or carriage return.
func isASCIIWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	default:
		return false
	}
}

// lexer is a stream over a fixed string, emitting one-character tokens and
// skipping ASCII whitespace between them.
type lexer struct {
	runes []rune
	pos   int // index of next unread rune
}

// newLexer creates a lexer over src.
func newLexer(src string) *lexer {
	return &lexer{runes: []rune(src)}
}

// skipWhitespace advances pos past any run of ASCII whitespace.
func (l *lexer) skipWhitespace() {
	for l.pos < len(l.runes) && isASCIIWhitespace(l.runes[l.pos]) {
		l.pos++
	}
}

// empty reports whether the lexer has no more tokens to emit.
func (l *lexer) empty() bool {
	l.skipWhitespace()
	return l.pos >= len(l.runes)
}

// peek returns the next token without consuming it, and whether one exists.
func (l *lexer) peek() (string, bool) {
	l.skipWhitespace()
	if l.pos >= len(l.runes) {
		return "", false
	}
	return string(l.runes[l.pos]), true
}

// pop consumes and returns the next token, and the 1-indexed character
// position it started at. ok is false (and the other return values zero) if
// the stream was empty.
func (l *lexer) pop() (tok string, charPos int, ok bool) {
	l.skipWhitespace()
	if l.pos >= len(l.runes) {
		return "", 0, false
	}
	charPos = l.pos + 1
	tok = string(l.runes[l.pos])
	l.pos++
	return tok, charPos, true
}
