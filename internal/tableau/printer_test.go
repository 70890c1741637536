package tableau

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Print_canonicalForm(t *testing.T) {
	testCases := []struct {
		name   string
		expr   *Expression
		expect string
	}{
		{name: "propositional atom", expr: NewLiteral("p"), expect: "p"},
		{name: "negation", expr: NewNeg(NewLiteral("p")), expect: "-p"},
		{name: "conjunction", expr: NewBinary(TagAnd, NewLiteral("p"), NewLiteral("q")), expect: "(p^q)"},
		{name: "disjunction", expr: NewBinary(TagOr, NewLiteral("p"), NewLiteral("q")), expect: "(pvq)"},
		{name: "implication", expr: NewBinary(TagImpl, NewLiteral("p"), NewLiteral("q")), expect: "(p>q)"},
		{
			name:   "predicate literal",
			expr:   NewPredicateLiteral("P", "x", "y"),
			expect: "P(x,y)",
		},
		{
			name:   "universally quantified predicate",
			expr:   NewQuantified(TagUniversal, "x", NewPredicateLiteral("P", "x", "x")),
			expect: "AxP(x,x)",
		},
		{
			name: "conjunction of universal and existential of a negation",
			expr: NewBinary(TagAnd,
				NewQuantified(TagUniversal, "x", NewPredicateLiteral("P", "x", "x")),
				NewQuantified(TagExist, "y", NewNeg(NewPredicateLiteral("P", "y", "y"))),
			),
			expect: "(AxP(x,x)^Ey-P(y,y))",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, Print(tc.expr))
		})
	}
}

func Test_Print_roundTrip(t *testing.T) {
	// For every AST produced by the parser, parsing its canonical
	// description yields an AST equal up to structural sharing.
	inputs := []string{
		"p", "-p", "(p^-p)", "(p>q)", "(pvq)",
		"Ax P(x,x)", "Ex Ay P(x,y)", "(Ax P(x,x)^Ey-P(y,y))",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			assert := assert.New(t)

			res, err := Parse(input)
			if !assert.NoError(err) {
				return
			}

			canonical := Print(res.Formula)

			reparsed, err := Parse(canonical)
			if !assert.NoError(err) {
				return
			}

			assert.True(equalStructure(res.Formula, reparsed.Formula))
			assert.Equal(canonical, Print(reparsed.Formula))
		})
	}
}
