package tableau

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Solve_endToEndScenarios(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		verdict Verdict
	}{
		{name: "bare proposition is satisfiable", input: "p", verdict: Satisfiable},
		{name: "proposition and its negation is unsatisfiable", input: "(p^-p)", verdict: Unsatisfiable},
		{name: "implication is satisfiable", input: "(p>q)", verdict: Satisfiable},
		{name: "reflexive universal predicate is satisfiable", input: "Ax P(x,x)", verdict: Satisfiable},
		{name: "universal and existential of its negation contradiction", input: "(Ax P(x,x)^Ey-P(y,y))", verdict: Unsatisfiable},
		{name: "existential then universal over its witness", input: "Ex Ay P(x,y)", verdict: Satisfiable},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := Parse(tc.input)
			if !assert.NoError(t, err) {
				return
			}
			assert.Equal(t, tc.verdict, Solve(res.Formula))
		})
	}
}

func Test_Solve_determinism(t *testing.T) {
	res, err := Parse("(Ax P(x,x)^Ey-P(y,y))")
	if !assert.NoError(t, err) {
		return
	}

	first := Solve(res.Formula)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Solve(res.Formula))
	}
}

func Test_Solve_budgetBound(t *testing.T) {
	// Exactly MaxConstants nested existentials stays within budget...
	res, err := Parse("ExEyEzEwExEyEzEwExEy P(x,y)")
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, Satisfiable, Solve(res.Formula))

	// ...one more nested existential than the budget allows must be
	// reported Undecidable, never hang and never silently exceed K=10.
	res, err = Parse("ExEyEzEwExEyEzEwExEyEz P(x,y)")
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, Undecidable, Solve(res.Formula))
}

func Test_ConstantPool_budget(t *testing.T) {
	pool := NewConstantPool()
	for i := 0; i < MaxConstants; i++ {
		assert.True(t, pool.CanAdd())
		pool.Add()
	}
	assert.False(t, pool.CanAdd())
	assert.Equal(t, MaxConstants, pool.Size())
}
