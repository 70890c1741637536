package tableau

import "fmt"

// classify.go builds the one-sentence PARSE classification described by the
// CLI's per-line output: which syntactic shape the top of the formula has,
// named appropriately for whichever of the two vocabularies (propositional
// or first-order) the formula belongs to.

// Classify describes res's top-level shape in one sentence, using canonical
// as the formula text to quote.
func Classify(canonical string, res ParseResult) string {
	fragment := "propositional"
	if res.IsPredicate {
		fragment = "first-order"
	}
	kind := fragment + " formula"

	e := res.Formula
	switch e.Tag {
	case TagLiteral:
		return fmt.Sprintf("%s is an atom.", canonical)

	case TagNeg:
		return fmt.Sprintf("%s is a negation of a %s.", canonical, kind)

	case TagUniversal:
		return fmt.Sprintf("%s is a universally quantified formula.", canonical)

	case TagExist:
		return fmt.Sprintf("%s is an existentially quantified formula.", canonical)

	case TagAnd, TagOr, TagImpl:
		left := Print(e.Left)
		right := Print(e.Right)
		return fmt.Sprintf(
			"%s is a binary connective %s formula with left %s, connective %s, and right %s.",
			canonical, fragment, left, binarySymbol(e.Tag), right,
		)

	default:
		panic("tableau: Classify called on an incomplete node")
	}
}
