package tableau

import "github.com/dekarrin/tableau/internal/util"

// Theory is one branch of the tableau: its literal sets, pending-formula
// priority queue, constant pool, and closed/undecidable flags.
//
// Invariants:
//
//   - (I1) No formula in pending is a literal or a negated literal: those
//     live only in literals/negLiterals.
//   - (I2) closed == true implies the two literal sets share an element at
//     some point in history; once closed, the branch is never expanded
//     again.
//   - (I3) Appending a formula is idempotent for closure detection: if its
//     description is already in the opposing set, the branch closes
//     immediately.
type Theory struct {
	pending     *pendingQueue
	literals    util.KeySet[string]
	negLiterals util.KeySet[string]
	pool        *ConstantPool
	closed      bool
	undecidable bool
}

// NewTheory creates a single-branch theory seeded with one formula.
func NewTheory(root *Expression) *Theory {
	t := &Theory{
		pending:     newPendingQueue(),
		literals:    util.NewKeySet[string](),
		negLiterals: util.NewKeySet[string](),
		pool:        NewConstantPool(),
	}
	t.append(NewFormula(root))
	return t
}

// Closed reports whether the branch has a literal and its negation.
func (t *Theory) Closed() bool { return t.closed }

// Undecidable reports whether the branch gave up on an existential
// instantiation because the constant budget was exhausted.
func (t *Theory) Undecidable() bool { return t.undecidable }

// clone makes an independent copy of t: literal sets, constant pool, and
// the queue structure are copied; the AST nodes referenced by pending
// formulas remain shared (they are immutable).
func (t *Theory) clone() *Theory {
	return &Theory{
		pending:     t.pending.clone(),
		literals:    t.literals.Copy(),
		negLiterals: t.negLiterals.Copy(),
		pool:        t.pool.Clone(),
		closed:      t.closed,
		undecidable: t.undecidable,
	}
}

// append adds f to the theory. A literal resolves immediately against the
// opposing literal set (closing the branch on contradiction); a negated
// literal does the same, symmetrically; anything else is pushed onto the
// pending priority queue.
func (t *Theory) append(f Formula) {
	if t.closed {
		return
	}

	e := f.Expr
	if e.Tag == TagLiteral {
		d := description(e)
		if t.negLiterals.Has(d) {
			t.closed = true
			return
		}
		t.literals.Add(d)
		return
	}

	if e.Tag == TagNeg && e.Child.Tag == TagLiteral {
		d := description(e.Child)
		if t.literals.Has(d) {
			t.closed = true
			return
		}
		t.negLiterals.Add(d)
		return
	}

	t.pending.enqueue(pendingFormula{formula: f})
}

// tryExpand pops the highest-priority pending formula and expands it,
// returning the child theories that result. An empty (nil) result with
// the branch neither closed nor undecidable means the branch is
// open-saturated: a witness of satisfiability. An empty result is also
// returned (with undecidable possibly set) when the branch cannot proceed
// for want of constant budget.
func (t *Theory) tryExpand() []*Theory {
	if t.closed {
		return nil
	}

	pf, ok := t.pending.dequeue()
	if !ok {
		return nil
	}

	f := pf.formula.Expr

	var token string
	switch f.Tag {
	case TagUniversal:
		tok, ok := t.pool.Get(pf.constNum)
		if !ok {
			// The pool has not yet produced this many constants (and can
			// only grow via an existential elsewhere); this universal
			// cannot fire again right now, so the branch is treated as
			// saturated with respect to it.
			return nil
		}
		token = tok

	case TagExist:
		if !t.pool.CanAdd() {
			t.undecidable = true
			return nil
		}
		token = t.pool.Add()

	default:
		// token unused for alpha/beta rules
	}

	branches := expand(f, token)

	children := make([]*Theory, 0, len(branches))
	for _, b := range branches {
		child := t.clone()
		for _, g := range b {
			child.append(NewFormula(g))
		}
		if f.Tag == TagUniversal {
			child.pending.enqueue(pendingFormula{formula: pf.formula, constNum: pf.constNum + 1})
		}
		children = append(children, child)
	}

	return children
}
