package tableau

import "strings"

// printer.go reconstructs the canonical surface form of a formula with an
// explicit stack rather than recursion, so that destructor-depth formulas
// (deeply right-leaning binaries, long negation chains) cannot blow the
// call stack during printing either.

func binarySymbol(t Tag) string {
	switch t {
	case TagAnd:
		return "^"
	case TagOr:
		return "v"
	case TagImpl:
		return ">"
	default:
		panic("tableau: binarySymbol called on non-binary tag")
	}
}

func literalSurface(e *Expression) string {
	if e.IsPredicate {
		return e.Name + "(" + e.Args[0] + "," + e.Args[1] + ")"
	}
	return e.Name
}

// Print renders e in the canonical surface syntax: explicit parens around
// every binary, no whitespace.
func Print(e *Expression) string {
	var sb strings.Builder

	// Each stack item is either a literal string to emit, or a node still
	// to be expanded. Pushing children in reverse of their desired emission
	// order lets a plain LIFO stack produce left-to-right output.
	type item struct {
		text string
		node *Expression
	}

	stack := []item{{node: e}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if it.node == nil {
			sb.WriteString(it.text)
			continue
		}

		n := it.node
		switch n.Tag {
		case TagLiteral:
			sb.WriteString(literalSurface(n))

		case TagNeg:
			stack = append(stack, item{node: n.Child}, item{text: "-"})

		case TagExist:
			stack = append(stack, item{node: n.Child}, item{text: n.Var}, item{text: "E"})

		case TagUniversal:
			stack = append(stack, item{node: n.Child}, item{text: n.Var}, item{text: "A"})

		case TagAnd, TagOr, TagImpl:
			stack = append(stack,
				item{text: ")"},
				item{node: n.Right},
				item{text: binarySymbol(n.Tag)},
				item{node: n.Left},
				item{text: "("},
			)

		default:
			panic("tableau: Print called on an incomplete node")
		}
	}

	return sb.String()
}
