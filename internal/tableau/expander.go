package tableau

// expander.go implements the pure alpha/beta/gamma/delta tableau rules and
// capture-avoiding substitution for quantifier instantiation. expand never
// mutates an existing *Expression: it either returns existing subtrees or
// allocates new ones, so branch-splitting can share structure freely.

// branch is one replacement set: the formulas to append to the current
// theory if this branch is taken.
type branch []*Expression

// expand applies the tableau rule for e's shape, given a constant token
// (meaningful only for Exist/Universal; ignored otherwise). It returns one
// branch for alpha/delta/gamma rules (add both/one replacement to the same
// theory) or two branches for beta rules (split the theory).
//
// expand must never be called on a literal or a negated literal: those are
// resolved directly by Theory.append and never enter the pending queue
// (invariant I1). Calling expand on one is a programming error.
func expand(e *Expression, token string) []branch {
	switch e.Tag {
	case TagAnd:
		return []branch{{e.Left, e.Right}}

	case TagOr:
		return []branch{{e.Left}, {e.Right}}

	case TagImpl:
		return []branch{{NewNeg(e.Left)}, {e.Right}}

	case TagExist:
		return []branch{{substitute(e.Child, e.Var, token)}}

	case TagUniversal:
		return []branch{{substitute(e.Child, e.Var, token)}}

	case TagNeg:
		return expandNeg(e.Child)

	default:
		panic("tableau: expand called on a node with no expansion rule (" + e.Tag.String() + ")")
	}
}

// expandNeg implements the seven negation rules, dispatching on the shape of
// the negated subformula.
func expandNeg(child *Expression) []branch {
	switch child.Tag {
	case TagLiteral:
		// Should not be reached: a negated literal is resolved by
		// Theory.append before it ever reaches the expander. Handled here
		// defensively as a no-op leaf.
		return []branch{{NewNeg(child)}}

	case TagNeg:
		// double negation: ¬¬A -> A
		return []branch{{child.Child}}

	case TagAnd:
		// ¬(A ^ B) -> ¬A v ¬B, as a single Or node expanded next round
		return []branch{{NewBinary(TagOr, NewNeg(child.Left), NewNeg(child.Right))}}

	case TagOr:
		// ¬(A v B) -> ¬A ^ ¬B
		return []branch{{NewBinary(TagAnd, NewNeg(child.Left), NewNeg(child.Right))}}

	case TagImpl:
		// ¬(A > B) -> A ^ ¬B
		return []branch{{NewBinary(TagAnd, child.Left, NewNeg(child.Right))}}

	case TagExist:
		// ¬Ev.φ -> Av.¬φ
		return []branch{{NewQuantified(TagUniversal, child.Var, NewNeg(child.Child))}}

	case TagUniversal:
		// ¬Av.φ -> Ev.¬φ
		return []branch{{NewQuantified(TagExist, child.Var, NewNeg(child.Child))}}

	default:
		panic("tableau: expandNeg called on a node with no negation rule (" + child.Tag.String() + ")")
	}
}

// substitute computes φ[v ← c]: every PredicateLiteral argument equal to v
// is replaced by c, except inside a subtree re-binding v (a nested Ev.ψ or
// Av.ψ), which is left structurally shared and untouched. Unchanged
// subtrees elsewhere are also shared by reference; only the path from the
// root to each rewritten literal is rebuilt.
//
// Implemented with an explicit worklist rather than recursion so that deep
// formula trees cannot overflow the call stack.
func substitute(root *Expression, v, c string) *Expression {
	type stackItem struct {
		node    *Expression
		visited bool
	}

	var postorder []*Expression
	stack := []stackItem{{node: root}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.visited {
			postorder = append(postorder, top.node)
			stack = stack[:len(stack)-1]
			continue
		}
		top.visited = true
		n := top.node

		switch n.Tag {
		case TagLiteral:
			// leaf, nothing to push
		case TagNeg:
			stack = append(stack, stackItem{node: n.Child})
		case TagExist, TagUniversal:
			if n.Var != v {
				stack = append(stack, stackItem{node: n.Child})
			}
			// else: this subtree re-binds v; leave unvisited, it will be
			// treated as an unchanged leaf below.
		case TagAnd, TagOr, TagImpl:
			stack = append(stack, stackItem{node: n.Right}, stackItem{node: n.Left})
		}
	}

	rebuilt := make(map[*Expression]*Expression, len(postorder))
	for _, n := range postorder {
		switch n.Tag {
		case TagLiteral:
			if n.IsPredicate && (n.Args[0] == v || n.Args[1] == v) {
				a0, a1 := n.Args[0], n.Args[1]
				if a0 == v {
					a0 = c
				}
				if a1 == v {
					a1 = c
				}
				rebuilt[n] = NewPredicateLiteral(n.Name, a0, a1)
			} else {
				rebuilt[n] = n
			}

		case TagNeg:
			child := rebuilt[n.Child]
			if child != n.Child {
				rebuilt[n] = NewNeg(child)
			} else {
				rebuilt[n] = n
			}

		case TagExist, TagUniversal:
			if n.Var == v {
				rebuilt[n] = n
				continue
			}
			child := rebuilt[n.Child]
			if child != n.Child {
				rebuilt[n] = NewQuantified(n.Tag, n.Var, child)
			} else {
				rebuilt[n] = n
			}

		case TagAnd, TagOr, TagImpl:
			left, right := rebuilt[n.Left], rebuilt[n.Right]
			if left != n.Left || right != n.Right {
				rebuilt[n] = NewBinary(n.Tag, left, right)
			} else {
				rebuilt[n] = n
			}
		}
	}

	return rebuilt[root]
}
