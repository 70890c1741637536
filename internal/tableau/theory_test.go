package tableau

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Theory_append_closesOnContradiction(t *testing.T) {
	assert := assert.New(t)

	th := &Theory{
		pending:     newPendingQueue(),
		literals:    make(map[string]bool),
		negLiterals: make(map[string]bool),
		pool:        NewConstantPool(),
	}

	th.append(NewFormula(NewLiteral("p")))
	assert.False(th.Closed())

	th.append(NewFormula(NewNeg(NewLiteral("p"))))
	assert.True(th.Closed(), "appending the negation of a present literal must close the branch")
}

func Test_Theory_append_closesSymmetrically(t *testing.T) {
	assert := assert.New(t)

	th := &Theory{
		pending:     newPendingQueue(),
		literals:    make(map[string]bool),
		negLiterals: make(map[string]bool),
		pool:        NewConstantPool(),
	}

	th.append(NewFormula(NewNeg(NewLiteral("p"))))
	assert.False(th.Closed())

	th.append(NewFormula(NewLiteral("p")))
	assert.True(th.Closed())
}

func Test_Theory_append_predicateClosureUsesFullDescription(t *testing.T) {
	assert := assert.New(t)

	th := &Theory{
		pending:     newPendingQueue(),
		literals:    make(map[string]bool),
		negLiterals: make(map[string]bool),
		pool:        NewConstantPool(),
	}

	th.append(NewFormula(NewPredicateLiteral("P", "0", "1")))
	th.append(NewFormula(NewNeg(NewPredicateLiteral("P", "2", "3"))))
	assert.False(th.Closed(), "differently-argued predicates sharing a name must not spuriously close the branch")

	th.append(NewFormula(NewNeg(NewPredicateLiteral("P", "0", "1"))))
	assert.True(th.Closed())
}

func Test_Theory_tryExpand_monotonicClosure(t *testing.T) {
	assert := assert.New(t)

	res, err := Parse("(p^-p)")
	if !assert.NoError(err) {
		return
	}

	queue := []*Theory{NewTheory(res.Formula)}
	sawClose := false
	for len(queue) > 0 {
		th := queue[0]
		queue = queue[1:]

		children := th.tryExpand()
		for _, c := range children {
			if c.Closed() {
				sawClose = true
			}
			// Monotonicity: a closed theory must never be produced from an
			// already-closed parent and then reported open again.
			if th.Closed() {
				assert.True(c.Closed())
			}
			queue = append(queue, c)
		}
	}

	assert.True(sawClose)
}
