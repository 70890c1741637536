package tableau

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Parse_accepts(t *testing.T) {
	testCases := []struct {
		name        string
		input       string
		isPredicate bool
	}{
		{name: "single proposition", input: "p", isPredicate: false},
		{name: "negated proposition", input: "-p", isPredicate: false},
		{name: "and of propositions", input: "(p^-p)", isPredicate: false},
		{name: "implication of propositions", input: "(p>q)", isPredicate: false},
		{name: "universal predicate", input: "Ax P(x,x)", isPredicate: true},
		{name: "nested quantifiers", input: "Ex Ay P(x,y)", isPredicate: true},
		{name: "binary predicate formula", input: "(Ax P(x,x)^Ey-P(y,y))", isPredicate: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			res, err := Parse(tc.input)
			if !assert.NoError(err) {
				return
			}
			assert.Equal(tc.isPredicate, res.IsPredicate)
		})
	}
}

func Test_Parse_rejects(t *testing.T) {
	testCases := []string{
		"(p^q",    // unbalanced parens
		"",        // empty formula
		"p q",     // extra trailing formula
		"(p^P(x,x))", // mixed vocabularies
		"p^q",     // binary connective requires parens
		"E9.p",    // bad bound variable
		"T",       // token outside any vocabulary
		"P(x,y",   // malformed predicate argument list
	}

	for _, input := range testCases {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			assert.Error(t, err)
		})
	}
}

func Test_Parse_classificationExclusivity(t *testing.T) {
	// For every accepted formula, exactly one of {proposition, predicate}
	// holds; Parse's IsPredicate field already encodes this since it only
	// returns a result at all when exactly one flag ended up set.
	inputs := []string{"p", "(p^-p)", "(p>q)", "Ax P(x,x)", "(Ax P(x,x)^Ey-P(y,y))", "Ex Ay P(x,y)"}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			res, err := Parse(input)
			if assert.NoError(t, err) {
				assert.NotNil(t, res.Formula)
			}
		})
	}
}

func Test_Parse_structure(t *testing.T) {
	assert := assert.New(t)

	res, err := Parse("(p^q)")
	if !assert.NoError(err) {
		return
	}
	assert.Equal(TagAnd, res.Formula.Tag)
	assert.Equal(NewLiteral("p"), res.Formula.Left)
	assert.Equal(NewLiteral("q"), res.Formula.Right)

	res, err = Parse("P(x,y)")
	if !assert.NoError(err) {
		return
	}
	assert.True(res.Formula.IsPredicate)
	assert.Equal("P", res.Formula.Name)
	assert.Equal([2]string{"x", "y"}, res.Formula.Args)
}
