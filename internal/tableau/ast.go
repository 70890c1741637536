// Package tableau implements a semantic-tableau decision procedure for
// propositional logic and a restricted binary-predicate fragment of
// first-order logic: a lexer, a shift/reduce parser, an expansion engine for
// the alpha/beta/gamma/delta tableau rules, branch (theory) bookkeeping, a
// breadth-first driver over the branches, and a canonical pretty-printer.
package tableau

import "fmt"

// Tag is the variant tag of an Expression node. Its integer values are the
// ordering used by the branch priority queue: literals are cheapest to
// resolve and pop first, Universal is reusable and always pops last among
// pending formulas. This ordering is load-bearing, not cosmetic: it shapes
// the search tree the tableau driver explores, so the declaration order
// below must never change.
type Tag int

const (
	TagNull Tag = iota
	TagLiteral
	TagNeg
	TagAnd
	TagExist
	TagOr
	TagImpl
	TagUniversal
)

func (t Tag) String() string {
	switch t {
	case TagNull:
		return "Null"
	case TagLiteral:
		return "Literal"
	case TagNeg:
		return "Neg"
	case TagAnd:
		return "And"
	case TagExist:
		return "Exist"
	case TagOr:
		return "Or"
	case TagImpl:
		return "Impl"
	case TagUniversal:
		return "Universal"
	default:
		return fmt.Sprintf("Tag(%d)", int(t))
	}
}

// Propositional atom vocabulary.
const propositionNames = "pqrs"

// Predicate atom vocabulary.
const predicateNames = "PQRS"

// Bound-variable vocabulary available at parse time.
const variableNames = "xyzw"

// Expression is a tagged-variant AST node. Exactly one group of fields is
// meaningful for a given Tag:
//
//   - TagLiteral:    Name (and Args/IsPredicate if it is a PredicateLiteral)
//   - TagNeg:        Child
//   - TagExist, TagUniversal: Var, Child
//   - TagAnd, TagOr, TagImpl, TagNull: Left, Right
//
// Nodes are immutable once Complete. The parser builds nodes incrementally
// (TagNull binaries awaiting an operator token, or any node still missing a
// child); such partial nodes never escape into a Formula.
//
// Expansion never mutates an existing Expression: it allocates new nodes and
// shares unchanged subtrees by reference, so the same *Expression may be
// reachable from many branches at once.
type Expression struct {
	Tag Tag

	// Literal fields.
	Name        string
	IsPredicate bool
	Args        [2]string

	// Quantifier field (TagExist, TagUniversal).
	Var string

	// Unary/quantifier child.
	Child *Expression

	// Binary operands (also used for the not-yet-classified TagNull node the
	// parser builds before an operator token is seen).
	Left, Right *Expression
}

// NewLiteral builds a complete propositional-atom literal node.
func NewLiteral(name string) *Expression {
	return &Expression{Tag: TagLiteral, Name: name}
}

// NewPredicateLiteral builds a complete 2-ary predicate literal node.
func NewPredicateLiteral(name, arg1, arg2 string) *Expression {
	return &Expression{Tag: TagLiteral, Name: name, IsPredicate: true, Args: [2]string{arg1, arg2}}
}

// NewNeg builds a complete negation node.
func NewNeg(child *Expression) *Expression {
	return &Expression{Tag: TagNeg, Child: child}
}

// NewQuantified builds a complete quantified node. kind must be TagExist or
// TagUniversal.
func NewQuantified(kind Tag, v string, child *Expression) *Expression {
	if kind != TagExist && kind != TagUniversal {
		panic("tableau: NewQuantified requires TagExist or TagUniversal")
	}
	return &Expression{Tag: kind, Var: v, Child: child}
}

// NewBinary builds a complete binary node. kind must be TagAnd, TagOr, or
// TagImpl.
func NewBinary(kind Tag, left, right *Expression) *Expression {
	if kind != TagAnd && kind != TagOr && kind != TagImpl {
		panic("tableau: NewBinary requires TagAnd, TagOr, or TagImpl")
	}
	return &Expression{Tag: kind, Left: left, Right: right}
}

// newPendingBinary builds the empty Binary(Null, ?, ?) node the parser pushes
// on seeing '('.
func newPendingBinary() *Expression {
	return &Expression{Tag: TagNull}
}

// Complete reports whether e has all the children its Tag requires.
func (e *Expression) Complete() bool {
	switch e.Tag {
	case TagLiteral:
		return true
	case TagNeg, TagExist, TagUniversal:
		return e.Child != nil
	case TagAnd, TagOr, TagImpl:
		return e.Left != nil && e.Right != nil
	default: // TagNull
		return false
	}
}

// errFull and errNotReceptive are the two ways append can fail.
var (
	errFull         = fmt.Errorf("node has no empty slot")
	errNotReceptive = fmt.Errorf("node does not accept children")
)

// append fills the next empty slot of e with n. It returns errNotReceptive if
// e is a literal (never receptive) and errFull if e's required slots are
// already filled.
func (e *Expression) append(n *Expression) error {
	switch e.Tag {
	case TagNull, TagAnd, TagOr, TagImpl:
		if e.Left == nil {
			e.Left = n
			return nil
		}
		if e.Right == nil {
			e.Right = n
			return nil
		}
		return errFull
	case TagNeg, TagExist, TagUniversal:
		if e.Child == nil {
			e.Child = n
			return nil
		}
		return errFull
	default: // TagLiteral
		return errNotReceptive
	}
}

// setBinaryKind assigns the connective kind to a TagNull node that has only
// its left child filled, per the parser's '^'/'v'/'>' token handling.
func (e *Expression) setBinaryKind(kind Tag) error {
	if e.Tag != TagNull || e.Left == nil || e.Right != nil {
		return fmt.Errorf("tableau: binary operator requires a pending left-only node")
	}
	e.Tag = kind
	return nil
}

// description returns the closure key for a literal node: the predicate
// name plus its full argument list for predicate literals, or the bare name
// for propositional literals. Two predicate literals only collide in a
// theory's literal sets if their entire argument lists match; the bare name
// is never used alone, since that would spuriously close branches whenever
// two differently-argued predicates shared a name.
func description(e *Expression) string {
	if e.Tag != TagLiteral {
		panic("tableau: description called on non-literal node")
	}
	if e.IsPredicate {
		return fmt.Sprintf("%s(%s,%s)", e.Name, e.Args[0], e.Args[1])
	}
	return e.Name
}

// IsPropositional reports whether e is a propositional atom (not a
// predicate).
func (e *Expression) IsPropositional() bool {
	return e.Tag == TagLiteral && !e.IsPredicate
}

// equalStructure reports whether a and b are structurally identical,
// comparing by value rather than by pointer identity; used by tests to
// establish pretty-print round-trip equality up to structural sharing.
func equalStructure(a, b *Expression) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Tag != b.Tag {
		return false
	}
	switch a.Tag {
	case TagLiteral:
		return a.Name == b.Name && a.IsPredicate == b.IsPredicate && a.Args == b.Args
	case TagNeg:
		return equalStructure(a.Child, b.Child)
	case TagExist, TagUniversal:
		return a.Var == b.Var && equalStructure(a.Child, b.Child)
	case TagAnd, TagOr, TagImpl:
		return equalStructure(a.Left, b.Left) && equalStructure(a.Right, b.Right)
	default:
		return false
	}
}

// iterativeDestroy walks e's subtree with an explicit worklist, detaching
// child pointers as it goes. Because nested negations or right-leaning
// binaries can be arbitrarily deep, a recursive destructor would risk a
// stack overflow; this one never recurses.
func iterativeDestroy(e *Expression) {
	if e == nil {
		return
	}
	work := []*Expression{e}
	for len(work) > 0 {
		n := work[len(work)-1]
		work = work[:len(work)-1]
		if n == nil {
			continue
		}
		switch n.Tag {
		case TagNeg, TagExist, TagUniversal:
			work = append(work, n.Child)
			n.Child = nil
		case TagAnd, TagOr, TagImpl, TagNull:
			work = append(work, n.Left, n.Right)
			n.Left, n.Right = nil, nil
		}
	}
}
