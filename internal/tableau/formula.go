package tableau

import "container/heap"

// Formula is a shared handle onto one AST node. Many handles may alias the
// same *Expression: parsing produces exactly one owner, but expansion
// shares unchanged subtrees by reference across branches.
type Formula struct {
	Expr *Expression
}

// NewFormula wraps e in a Formula handle.
func NewFormula(e *Expression) Formula {
	return Formula{Expr: e}
}

// Release iteratively destroys the formula's subtree. Safe to call on a
// Formula still shared elsewhere only when the caller knows this is the
// last reference; the tableau driver does not call it, and discarded
// branches are simply left to the garbage collector.
func (f Formula) Release() {
	iterativeDestroy(f.Expr)
}

// pendingFormula is a Formula plus its per-branch const_num counter, used
// only for Universal formulas to track how many constants they have been
// instantiated against so far. Re-enqueuing a Universal with an
// incremented const_num drops its priority, giving fair round-robin
// treatment to multiple pending universals.
type pendingFormula struct {
	formula  Formula
	constNum int
}

// less implements the Formula ordering: primarily by variant tag (Null <
// Literal < Neg < And < Exist < Or < Impl < Universal, encoded directly by
// Tag's iota values), and for two Universal formulas, by ascending
// const_num so the least-instantiated universal pops first.
func (a pendingFormula) less(b pendingFormula) bool {
	if a.formula.Expr.Tag != b.formula.Expr.Tag {
		return a.formula.Expr.Tag < b.formula.Expr.Tag
	}
	if a.formula.Expr.Tag == TagUniversal {
		return a.constNum < b.constNum
	}
	return false
}

// pendingQueue is a priority queue of pendingFormula ordered by
// pendingFormula.less, with FIFO tie-breaking among equal-priority entries
// via an insertion sequence counter so the BFS frontier stays deterministic.
type pendingQueue struct {
	items []pendingQueueEntry
	seq   int
}

type pendingQueueEntry struct {
	pendingFormula
	seq int
}

func (q *pendingQueue) Len() int { return len(q.items) }

func (q *pendingQueue) Less(i, j int) bool {
	a, b := q.items[i], q.items[j]
	if a.less(b.pendingFormula) {
		return true
	}
	if b.less(a.pendingFormula) {
		return false
	}
	return a.seq < b.seq
}

func (q *pendingQueue) Swap(i, j int) { q.items[i], q.items[j] = q.items[j], q.items[i] }

func (q *pendingQueue) Push(x any) {
	q.items = append(q.items, x.(pendingQueueEntry))
}

func (q *pendingQueue) Pop() any {
	old := q.items
	n := len(old)
	item := old[n-1]
	q.items = old[:n-1]
	return item
}

var _ heap.Interface = (*pendingQueue)(nil)

// newPendingQueue creates an empty pendingQueue, ready for use with
// container/heap.
func newPendingQueue() *pendingQueue {
	return &pendingQueue{}
}

// enqueue pushes f onto the queue.
func (q *pendingQueue) enqueue(f pendingFormula) {
	q.seq++
	heap.Push(q, pendingQueueEntry{pendingFormula: f, seq: q.seq})
}

// dequeue pops the highest-priority entry, if any.
func (q *pendingQueue) dequeue() (pendingFormula, bool) {
	if q.Len() == 0 {
		return pendingFormula{}, false
	}
	e := heap.Pop(q).(pendingQueueEntry)
	return e.pendingFormula, true
}

// empty reports whether the queue has no pending entries.
func (q *pendingQueue) empty() bool {
	return q.Len() == 0
}

// clone returns an independent copy of q; the underlying Expressions are
// shared by reference (they are immutable), only the queue structure is
// copied.
func (q *pendingQueue) clone() *pendingQueue {
	cpy := &pendingQueue{items: make([]pendingQueueEntry, len(q.items)), seq: q.seq}
	copy(cpy.items, q.items)
	return cpy
}
