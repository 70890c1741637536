package tableau

import (
	"strings"

	"github.com/dekarrin/tableau/internal/util"
)

// parser.go implements the stack-based shift/reduce parser described by the
// tableau grammar. The grammar is operator-precedence-less and strictly
// parenthesized, so a single expression stack suffices; there is no
// precedence table and no lookahead beyond the one token the quantifier and
// predicate rules need.

func isOneOf(tok string, vocabulary string) bool {
	return len(tok) == 1 && strings.ContainsRune(vocabulary, rune(tok[0]))
}

func isBinaryTag(t Tag) bool {
	return t == TagAnd || t == TagOr || t == TagImpl
}

func binaryKindOf(tok string) Tag {
	switch tok {
	case "^":
		return TagAnd
	case "v":
		return TagOr
	case ">":
		return TagImpl
	default:
		panic("tableau: binaryKindOf called on non-operator token")
	}
}

// parserState holds the mutable state of one parse: the expression stack,
// the completed-formula holder, the propositional/predicate vocabulary
// flags, and the error flag.
type parserState struct {
	stack       util.Stack[*Expression]
	holder      *Expression
	holderSet   bool
	proposition bool
	predicate   bool
	erred       bool
}

// merge pops the top of the stack and repeatedly folds it into the next
// node down, continuing through each newly-completed Neg/Exist/Universal
// node, but stopping as soon as the receiving node is a completed binary —
// a filled And/Or/Impl must wait for its explicit ")" before folding any
// further. When the stack empties, the final folded node is stored in the
// holder.
func (p *parserState) merge() {
	n, ok := p.stack.Pop()
	if !ok {
		p.erred = true
		return
	}

	for {
		top, ok := p.stack.Peek()
		if !ok {
			if p.holderSet {
				p.erred = true
				return
			}
			p.holder = n
			p.holderSet = true
			return
		}

		if err := top.append(n); err != nil {
			p.stack.Push(n)
			p.erred = true
			return
		}

		if top.Complete() && !isBinaryTag(top.Tag) {
			p.stack.Pop()
			n = top
			continue
		}
		return
	}
}

// ParseResult is the outcome of successfully parsing one formula line.
type ParseResult struct {
	Formula     *Expression
	IsPredicate bool // false means the formula is propositional
}

// Parse parses one line of tableau surface syntax. On failure it returns a
// SyntaxError; the caller decides how to present that to its own audience
// (the CLI renders it as "<raw> is not a formula.").
func Parse(line string) (ParseResult, error) {
	lex := newLexer(line)
	p := &parserState{}

	for !p.erred && !(p.proposition && p.predicate) && !lex.empty() {
		tok, pos, ok := lex.pop()
		if !ok {
			break
		}

		switch {
		case tok == "(":
			p.stack.Push(newPendingBinary())

		case tok == ")":
			top, ok := p.stack.Peek()
			if !ok || !top.Complete() || !isBinaryTag(top.Tag) {
				p.erred = true
				continue
			}
			p.merge()

		case tok == "^" || tok == "v" || tok == ">":
			top, ok := p.stack.Peek()
			if !ok {
				p.erred = true
				continue
			}
			if err := top.setBinaryKind(binaryKindOf(tok)); err != nil {
				p.erred = true
				continue
			}

		case tok == "-":
			p.stack.Push(&Expression{Tag: TagNeg})

		case isOneOf(tok, propositionNames):
			p.stack.Push(NewLiteral(tok))
			p.proposition = true
			p.merge()

		case tok == "E" || tok == "A":
			varTok, _, ok := lex.pop()
			if !ok || !isOneOf(varTok, variableNames) {
				p.erred = true
				continue
			}
			kind := TagExist
			if tok == "A" {
				kind = TagUniversal
			}
			p.stack.Push(&Expression{Tag: kind, Var: varTok})
			p.predicate = true

		case isOneOf(tok, predicateNames):
			arg1, arg2, ok := readPredicateArgs(lex)
			if !ok {
				p.erred = true
				continue
			}
			p.stack.Push(NewPredicateLiteral(tok, arg1, arg2))
			p.predicate = true
			p.merge()

		default:
			_ = pos
			p.erred = true
		}
	}

	if p.erred || !p.stack.Empty() || (p.proposition && p.predicate) || (!p.proposition && !p.predicate) || !p.holderSet {
		return ParseResult{}, syntaxError(line, "not a formula")
	}

	return ParseResult{Formula: p.holder, IsPredicate: p.predicate}, nil
}

// readPredicateArgs consumes the exact five-token pattern "( v , v )" that
// must follow a predicate name, returning the two variable tokens.
func readPredicateArgs(lex *lexer) (arg1, arg2 string, ok bool) {
	tok, _, got := lex.pop()
	if !got || tok != "(" {
		return "", "", false
	}
	arg1, _, got = lex.pop()
	if !got || !isOneOf(arg1, variableNames) {
		return "", "", false
	}
	tok, _, got = lex.pop()
	if !got || tok != "," {
		return "", "", false
	}
	arg2, _, got = lex.pop()
	if !got || !isOneOf(arg2, variableNames) {
		return "", "", false
	}
	tok, _, got = lex.pop()
	if !got || tok != ")" {
		return "", "", false
	}
	return arg1, arg2, true
}
