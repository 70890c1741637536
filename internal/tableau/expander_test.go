package tableau

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_expand_alphaAndBeta(t *testing.T) {
	assert := assert.New(t)

	p, q := NewLiteral("p"), NewLiteral("q")

	// A ^ B -> {{A, B}}
	got := expand(NewBinary(TagAnd, p, q), "")
	assert.Equal([]branch{{p, q}}, got)

	// A v B -> {{A}, {B}}
	got = expand(NewBinary(TagOr, p, q), "")
	assert.Equal([]branch{{p}, {q}}, got)

	// A > B -> {{-A}, {B}}
	got = expand(NewBinary(TagImpl, p, q), "")
	assert.Equal([]branch{{NewNeg(p)}, {q}}, got)
}

func Test_expand_negationRules(t *testing.T) {
	assert := assert.New(t)

	p, q := NewLiteral("p"), NewLiteral("q")

	got := expand(NewNeg(NewNeg(p)), "")
	assert.Equal([]branch{{p}}, got)

	got = expand(NewNeg(NewBinary(TagAnd, p, q)), "")
	assert.Equal([]branch{{NewBinary(TagOr, NewNeg(p), NewNeg(q))}}, got)

	got = expand(NewNeg(NewBinary(TagOr, p, q)), "")
	assert.Equal([]branch{{NewBinary(TagAnd, NewNeg(p), NewNeg(q))}}, got)

	got = expand(NewNeg(NewBinary(TagImpl, p, q)), "")
	assert.Equal([]branch{{NewBinary(TagAnd, p, NewNeg(q))}}, got)

	body := NewPredicateLiteral("P", "y", "y")
	got = expand(NewNeg(NewQuantified(TagExist, "y", body)), "")
	assert.Equal([]branch{{NewQuantified(TagUniversal, "y", NewNeg(body))}}, got)

	got = expand(NewNeg(NewQuantified(TagUniversal, "y", body)), "")
	assert.Equal([]branch{{NewQuantified(TagExist, "y", NewNeg(body))}}, got)
}

func Test_expand_quantifiers(t *testing.T) {
	assert := assert.New(t)

	body := NewPredicateLiteral("P", "x", "x")

	got := expand(NewQuantified(TagExist, "x", body), "0")
	assert.Equal([]branch{{NewPredicateLiteral("P", "0", "0")}}, got)

	got = expand(NewQuantified(TagUniversal, "x", body), "3")
	assert.Equal([]branch{{NewPredicateLiteral("P", "3", "3")}}, got)
}

func Test_substitute_captureAvoidance(t *testing.T) {
	assert := assert.New(t)

	// Substituting x by c in Ax.P(x,y) leaves the subtree unchanged: the
	// inner x is bound by the nested universal, not free.
	bound := NewQuantified(TagUniversal, "x", NewPredicateLiteral("P", "x", "y"))
	got := substitute(bound, "x", "0")
	assert.Same(bound, got)

	// Substituting x by c in P(x,y) rewrites the first argument.
	free := NewPredicateLiteral("P", "x", "y")
	got = substitute(free, "x", "0")
	assert.Equal(NewPredicateLiteral("P", "0", "y"), got)
	assert.NotSame(free, got)
}

func Test_substitute_sharesUnchangedSubtrees(t *testing.T) {
	assert := assert.New(t)

	untouched := NewLiteral("q")
	formula := NewBinary(TagAnd, NewPredicateLiteral("P", "x", "x"), untouched)

	got := substitute(formula, "x", "5")

	assert.Same(untouched, got.Right, "the right subtree has no occurrence of x and must be shared by reference")
	assert.NotSame(formula.Left, got.Left)
	assert.Equal(NewPredicateLiteral("P", "5", "5"), got.Left)
}

func Test_substitute_deepChainDoesNotRecurse(t *testing.T) {
	root := NewPredicateLiteral("P", "x", "x")
	var chain *Expression = root
	for i := 0; i < 100000; i++ {
		chain = NewNeg(chain)
	}

	assert.NotPanics(t, func() {
		substitute(chain, "x", "0")
	})
}
