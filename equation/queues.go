package equation

import "github.com/LucaGuffanti/abstract-interpreter/store"

// storeQueue is a plain FIFO of Store snapshots. Pushes and pops within
// one sweep always occur in the same syntactic order the builder laid
// the Locations out in, so a slice-backed queue is all the ordering
// guarantee (spec.md §5's "queues are FIFO and consumed in the exact
// order they were produced") needs.
type storeQueue struct {
	items []store.Store
}

func (q *storeQueue) push(s store.Store) {
	q.items = append(q.items, s)
}

func (q *storeQueue) pop() (store.Store, bool) {
	if len(q.items) == 0 {
		return store.Store{}, false
	}
	s := q.items[0]
	q.items = q.items[1:]
	return s, true
}

func (q *storeQueue) reset() {
	q.items = nil
}

// Queues holds the seven FIFOs spec.md §4.4 describes, routing the
// non-adjacent dependencies between branch/loop heads and the bodies and
// ends that follow them out of sequential order in the flat Location
// list.
type Queues struct {
	IfBody        storeQueue
	ElseBody      storeQueue
	FinalIf       storeQueue
	FinalElse     storeQueue
	WhileBody     storeQueue
	WhileExit     storeQueue
	WhileFeedback storeQueue // persists across sweeps, on purpose
}

// NewQueues returns an empty Queues.
func NewQueues() *Queues {
	return &Queues{}
}

// PopIfBody dequeues the next restricted store an IfElseHead pushed for
// its then-body's first Location.
func (q *Queues) PopIfBody() (store.Store, bool) { return q.IfBody.pop() }

// PopElseBody dequeues the next restricted store an IfElseHead pushed for
// its else-body's first Location.
func (q *Queues) PopElseBody() (store.Store, bool) { return q.ElseBody.pop() }

// PopWhileBody dequeues the next restricted store a WhileHead pushed for
// its body's first Location.
func (q *Queues) PopWhileBody() (store.Store, bool) { return q.WhileBody.pop() }

// ResetSweep clears every queue that is populated and drained within a
// single solver sweep. WhileFeedback is intentionally excluded: it
// carries a body's tail store from sweep N to the owning WhileHead's
// evaluation in sweep N+1, per spec.md §4.4's while_feedback_queue and
// §9's "Jacobi-on-loops" note.
func (q *Queues) ResetSweep() {
	q.IfBody.reset()
	q.ElseBody.reset()
	q.FinalIf.reset()
	q.FinalElse.reset()
	q.WhileBody.reset()
	q.WhileExit.reset()
}
