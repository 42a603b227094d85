// Package check implements the postcondition checker: after the fixpoint
// solver converges, it walks the Postcondition Locations and evaluates
// each declared assertion against the final store.
//
// The teacher pack has no 1:1 analogue for a syntactic assertion checker
// (its own postcondition-shaped code is the Eq/Leq/Geq comparisons on
// lattice.Element in analysis/lattice), so Verdict's six cases are
// grounded directly on spec.md §4.6, mirrored from the original C++
// reference's evaluate_logic_operation, reusing interval.Interval's own
// bound accessors rather than reinventing comparison logic.
package check

import (
	"fmt"

	"github.com/LucaGuffanti/abstract-interpreter/ast"
	"github.com/LucaGuffanti/abstract-interpreter/equation"
	"github.com/LucaGuffanti/abstract-interpreter/interval"
	"github.com/LucaGuffanti/abstract-interpreter/location"
)

// Result is one postcondition's verdict: the human-readable assertion
// text and whether it held against the converged store.
type Result struct {
	Expr      string
	Satisfied bool
}

// Verdict implements the six comparison cases of spec.md §4.6.
func Verdict(op ast.Operator, left, right interval.Interval) bool {
	llb, lub, lok := left.Bounds()
	rlb, rub, rok := right.Bounds()
	if !lok || !rok {
		return false
	}
	switch op {
	case ast.Leq:
		return lub <= rub && llb <= rlb
	case ast.Geq:
		return llb >= rlb && lub >= rub
	case ast.Lt:
		return lub < rub && llb < rlb
	case ast.Gt:
		return llb > rlb && lub > rub
	case ast.Eq:
		return llb == lub && rlb == rub && llb == rlb && lub == rub
	case ast.Neq:
		return !(llb == lub && rlb == rub && llb == rlb && lub == rub)
	default:
		panic(fmt.Sprintf("check: unsupported operator %s", op))
	}
}

// Run walks the Postcondition Locations of a converged System in order
// and returns one Result per assertion. Violated postconditions are
// reported, not fatal — spec.md §4.6/§7's "the whole program is analyzed
// and all assertions are reported."
func Run(sys *equation.System) []Result {
	var results []Result
	for i := range sys.Locations {
		loc := &sys.Locations[i]
		if loc.Kind != location.Postcondition {
			continue
		}
		left := equation.Eval(loc.Assertion.Children[0], loc.S, nil, loc.Label)
		right := equation.Eval(loc.Assertion.Children[1], loc.S, nil, loc.Label)
		results = append(results, Result{
			Expr:      loc.Assertion.String(),
			Satisfied: Verdict(loc.Assertion.Op, left, right),
		})
	}
	return results
}
