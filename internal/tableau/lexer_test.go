package tableau

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_lexer_popSequence(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect []string
	}{
		{name: "empty string", input: "", expect: nil},
		{name: "single token", input: "p", expect: []string{"p"}},
		{name: "whitespace only", input: "  \t\n ", expect: nil},
		{name: "skips leading and interior whitespace", input: " ( p ^ q ) ", expect: []string{
			"(", "p", "^", "q", ")",
		}},
		{name: "all whitespace kinds", input: "p\t\n\v\f\rq", expect: []string{"p", "q"}},
		{name: "quantifier and variable", input: "Ex.p", expect: []string{"E", "x", ".", "p"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			lex := newLexer(tc.input)
			var got []string
			for !lex.empty() {
				tok, _, ok := lex.pop()
				if !ok {
					break
				}
				got = append(got, tok)
			}

			assert.Equal(tc.expect, got)
		})
	}
}

func Test_lexer_peekDoesNotConsume(t *testing.T) {
	assert := assert.New(t)

	lex := newLexer("pq")

	first, ok := lex.peek()
	assert.True(ok)
	assert.Equal("p", first)

	again, ok := lex.peek()
	assert.True(ok)
	assert.Equal("p", again)

	tok, pos, ok := lex.pop()
	assert.True(ok)
	assert.Equal("p", tok)
	assert.Equal(1, pos)

	tok, pos, ok = lex.pop()
	assert.True(ok)
	assert.Equal("q", tok)
	assert.Equal(2, pos)

	assert.True(lex.empty())
}
