// Package location implements Location: a single tagged record type
// standing in for the per-program-point variant the source hierarchy
// modeled as an inheritance tree with a virtual transfer function closure
// on each instance (spec.md §9's redesign guidance). Here one struct
// carries every Kind's fields; only the arm's own fields are meaningful.
// The transfer function itself is the free function equation.Apply, kept
// in package equation alongside the Queues type it wires through — this
// package stays a leaf with no dependency on equation, ast of its own
// beyond the shape it stores, so equation (which must depend on
// location.Location) never depends back on it.
package location

import (
	"github.com/LucaGuffanti/abstract-interpreter/ast"
	"github.com/LucaGuffanti/abstract-interpreter/store"
)

// Kind tags which variant a Location implements.
type Kind int

const (
	Assignment Kind = iota
	Postcondition
	IfElseHead
	EndIf
	WhileHead
	EndWhile
)

func (k Kind) String() string {
	switch k {
	case Assignment:
		return "Assignment"
	case Postcondition:
		return "Postcondition"
	case IfElseHead:
		return "IfElseHead"
	case EndIf:
		return "EndIf"
	case WhileHead:
		return "WhileHead"
	case EndWhile:
		return "EndWhile"
	default:
		return "Unknown"
	}
}

// Location is a single tagged record for one program point. Only the
// fields relevant to Kind carry meaning; the rest sit at their zero
// value. Label is a human-readable tag (variable name or condition text)
// used purely for diagnostics.
type Location struct {
	Kind  Kind
	Label string

	// Assignment: Var := Expr, SIn cloned and mutated into SOut.
	Var  string
	Expr *ast.Node
	SIn  store.Store
	SOut store.Store

	// Postcondition: S is both the input and the evaluation context;
	// Assertion is a LogicOp node. Verdict/Checked are not set by
	// equation.Apply or solver.Run; check.Run returns verdicts separately.
	S         store.Store
	Assertion *ast.Node
	Verdict   bool
	Checked   bool

	// IfElseHead: SBefore restricted by Cond into SIfBody / by the
	// complement into SElseBody. HasElse records whether a textual else
	// exists (vs. a synthesized complement-only branch). EmptyIfBody /
	// EmptyElseBody mark a body with zero statements, in which case the
	// head itself feeds the matching final queue directly since there is
	// no tail Location to do it.
	SBefore       store.Store
	SIfBody       store.Store
	SElseBody     store.Store
	Cond          *ast.Node
	HasElse       bool
	EmptyIfBody   bool
	EmptyElseBody bool

	// CondVar/CondOp/CondRHS are the normalized (variable, operator,
	// constant-expr) form of Cond, extracted once at build time so Apply
	// never has to re-derive which side is the variable. Shared by
	// IfElseHead and WhileHead.
	CondVar string
	CondOp  ast.Operator
	CondRHS *ast.Node

	// EndIf: SAfterIf / SAfterElse come in via queues from the branch
	// tails; SAfterJoin is their join.
	SAfterIf   store.Store
	SAfterElse store.Store
	SAfterJoin store.Store

	// WhileHead: SBody is SBefore restricted by Cond, joined on every
	// iteration after the first with the feedback store from the body's
	// tail; SExit is that same joined store restricted by Cond's
	// complement. EmptyBody
	// mirrors EmptyIfBody/EmptyElseBody above for a zero-statement loop
	// body.
	SBody     store.Store
	SExit     store.Store
	EmptyBody bool

	// EndWhile: SFromExit arrives via the while_exit_queue; SAfter
	// mirrors it.
	SFromExit store.Store
	SAfter    store.Store

	// Structural flags marking this Location as the last of a block,
	// driving which queue it feeds.
	EndsIfBody    bool
	EndsElseBody  bool
	EndsWhileBody bool

	// Structural flags marking this Location as the first of a block,
	// driving which queue supplies its predecessor store instead of the
	// previous Location's output.
	StartsIfBody    bool
	StartsElseBody  bool
	StartsWhileBody bool
}

// IsStable implements spec.md §4.5 step 3's per-kind stability predicate,
// comparing the receiver (the just-recomputed Location) against prev (the
// pre-iteration snapshot).
func (l *Location) IsStable(prev *Location) bool {
	switch l.Kind {
	case Assignment:
		return l.SOut.Eq(prev.SOut)
	case Postcondition:
		return true
	case IfElseHead:
		return l.SIfBody.Eq(prev.SIfBody) && l.SElseBody.Eq(prev.SElseBody)
	case EndIf:
		return l.SAfterIf.Eq(prev.SAfterIf) && l.SAfterElse.Eq(prev.SAfterElse)
	case WhileHead:
		return l.SBody.Eq(prev.SBody) && l.SExit.Eq(prev.SExit)
	case EndWhile:
		return l.SAfter.Eq(prev.SAfter)
	default:
		return true
	}
}

// Clone returns a value copy of the Location. Stores themselves are
// persistent handles, so this is a cheap snapshot suitable for the
// solver's per-iteration L_old comparison baseline.
func (l Location) Clone() Location {
	return l
}
