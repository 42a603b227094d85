package equation

import (
	"fmt"

	"github.com/LucaGuffanti/abstract-interpreter/diagnostics"
	"github.com/LucaGuffanti/abstract-interpreter/location"
	"github.com/LucaGuffanti/abstract-interpreter/store"
)

// Apply is the free transfer function spec.md §9 asks for in place of a
// per-instance closure: the behavior is fully determined by loc.Kind plus
// the AST slice(s) it captured at build time. in is the predecessor
// store, already resolved by the caller (the solver) from either the
// previous Location's output or the matching Start*Body queue. q is the
// same Queues the whole System shares across the sweep; Apply both reads
// the queue entries a head needs and pushes the entries an Ends*Body
// Location produces.
func Apply(loc *location.Location, in store.Store, q *Queues, sink *diagnostics.Sink) {
	switch loc.Kind {
	case location.Assignment:
		s := in.Clone()
		v := Eval(loc.Expr, s, sink, loc.Label)
		loc.SIn = in
		loc.SOut = s.Set(loc.Var, v)
	case location.Postcondition:
		loc.S = in
	case location.IfElseHead:
		applyIfElseHead(loc, in, q, sink)
	case location.EndIf:
		applyEndIf(loc, q)
	case location.WhileHead:
		applyWhileHead(loc, in, q, sink)
	case location.EndWhile:
		applyEndWhile(loc, q)
	}
	pushEnds(loc, q)
}

// Output returns the store a Location hands to whatever reads it next in
// program order: SOut for Assignment, the (unchanged) input store for
// Postcondition, SAfterJoin for EndIf, SAfter for EndWhile. IfElseHead and
// WhileHead have no meaningful sequential output — the Location right
// after either of them in the flat list always reads via a queue instead
// (see Chains), so this returns the zero Store for those two.
func Output(loc *location.Location) store.Store {
	switch loc.Kind {
	case location.Assignment:
		return loc.SOut
	case location.Postcondition:
		return loc.S
	case location.EndIf:
		return loc.SAfterJoin
	case location.EndWhile:
		return loc.SAfter
	default:
		return store.Store{}
	}
}

// Chains reports whether a Location's Output feeds the next Location in
// program order as an ordinary sequential predecessor. IfElseHead and
// WhileHead are excluded: whatever follows either of them always arrives
// via a Start*Body flag or a queue, never via straight-line chaining.
func Chains(k location.Kind) bool {
	switch k {
	case location.Assignment, location.Postcondition, location.EndIf, location.EndWhile:
		return true
	default:
		return false
	}
}

func pushEnds(loc *location.Location, q *Queues) {
	if !loc.EndsIfBody && !loc.EndsElseBody && !loc.EndsWhileBody {
		return
	}
	o := Output(loc)
	if loc.EndsIfBody {
		q.FinalIf.push(o)
	}
	if loc.EndsElseBody {
		q.FinalElse.push(o)
	}
	if loc.EndsWhileBody {
		q.WhileFeedback.push(o)
	}
}

func applyIfElseHead(loc *location.Location, in store.Store, q *Queues, sink *diagnostics.Sink) {
	loc.SBefore = in
	sIf := EvalCond(loc.CondVar, loc.CondOp, loc.CondRHS, in, sink)
	sElse := EvalCond(loc.CondVar, loc.CondOp.Complement(), loc.CondRHS, in, sink)
	warnIfEmpty(sink, sIf, loc.CondVar, loc.Label)
	warnIfEmpty(sink, sElse, loc.CondVar, loc.Label)
	loc.SIfBody = sIf
	loc.SElseBody = sElse

	if loc.EmptyIfBody {
		q.FinalIf.push(sIf)
	} else {
		q.IfBody.push(sIf)
	}
	if loc.EmptyElseBody {
		q.FinalElse.push(sElse)
	} else {
		q.ElseBody.push(sElse)
	}
}

func applyEndIf(loc *location.Location, q *Queues) {
	sAfterIf, _ := q.FinalIf.pop()
	sAfterElse, _ := q.FinalElse.pop()
	loc.SAfterIf = sAfterIf
	loc.SAfterElse = sAfterElse
	loc.SAfterJoin = sAfterIf.JoinAll(sAfterElse)
}

func applyWhileHead(loc *location.Location, in store.Store, q *Queues, sink *diagnostics.Sink) {
	loc.SBefore = in
	base := in
	if fb, ok := q.WhileFeedback.pop(); ok {
		base = in.JoinAll(fb)
	}
	sBody := EvalCond(loc.CondVar, loc.CondOp, loc.CondRHS, base, sink)
	sExit := EvalCond(loc.CondVar, loc.CondOp.Complement(), loc.CondRHS, base, sink)
	warnIfEmpty(sink, sBody, loc.CondVar, loc.Label)
	warnIfEmpty(sink, sExit, loc.CondVar, loc.Label)
	loc.SBody = sBody
	loc.SExit = sExit

	if loc.EmptyBody {
		q.WhileFeedback.push(sBody)
	} else {
		q.WhileBody.push(sBody)
	}
	q.WhileExit.push(sExit)
}

func applyEndWhile(loc *location.Location, q *Queues) {
	sFromExit, _ := q.WhileExit.pop()
	loc.SFromExit = sFromExit
	loc.SAfter = sFromExit
}

func warnIfEmpty(sink *diagnostics.Sink, s store.Store, varName, pos string) {
	if varName == "" {
		return
	}
	if s.Get(varName).IsBot() {
		sink.Emit(diagnostics.Warning{
			Kind:    diagnostics.EmptyBranch,
			Message: fmt.Sprintf("restricting %s leaves it empty; branch is unreachable under the abstraction", varName),
			Pos:     pos,
		})
	}
}
