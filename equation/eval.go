package equation

import (
	"fmt"
	"math"

	"github.com/LucaGuffanti/abstract-interpreter/ast"
	"github.com/LucaGuffanti/abstract-interpreter/diagnostics"
	"github.com/LucaGuffanti/abstract-interpreter/interval"
	"github.com/LucaGuffanti/abstract-interpreter/store"
)

// errInternal marks an AST shape that the builder should already have
// rejected; reaching it during evaluation means a Location was built
// without going through Build, or Build itself has a bug.
var errInternal = fmt.Errorf("equation: unexpected node shape reached eval")

// Eval is the pure expression evaluator: integer literal → singleton,
// variable → store lookup, binary arithmetic → recursive evaluation then
// the matching Interval operation. pos labels emitted diagnostics (e.g.
// the enclosing assignment's variable name).
func Eval(n *ast.Node, s store.Store, sink *diagnostics.Sink, pos string) interval.Interval {
	switch n.Kind {
	case ast.Integer:
		return interval.Singleton(n.Int64)
	case ast.Variable:
		return s.Get(n.Name)
	case ast.ArithOp:
		if err := n.MustHaveChildren(2); err != nil {
			panic(err)
		}
		l := Eval(n.Children[0], s, sink, pos)
		r := Eval(n.Children[1], s, sink, pos)
		switch n.Op {
		case ast.Add:
			return l.Add(r, sink, pos)
		case ast.Sub:
			return l.Sub(r, sink, pos)
		case ast.Mul:
			return l.Mul(r, sink, pos)
		case ast.Div:
			return l.Div(r, sink, pos)
		}
		panic(errInternal)
	default:
		panic(errInternal)
	}
}

// EvalCond refines variable's interval in s by meeting it with the
// half-line (or complement) induced by op and rhs, per spec.md §4.3.
// rhs must evaluate to a constant expression; the builder enforces this
// structurally before any Location reaches the solver, so a non-singleton
// result here indicates a builder bug, not user input.
func EvalCond(variable string, op ast.Operator, rhs *ast.Node, s store.Store, sink *diagnostics.Sink) store.Store {
	r := Eval(rhs, s, nil, variable)
	x := s.Get(variable)

	var refined interval.Interval
	switch op {
	case ast.Leq:
		refined = x.Meet(interval.New(math.MinInt64, mustUB(r)))
	case ast.Lt:
		refined = x.Meet(ltBound(mustUB(r)))
	case ast.Geq:
		refined = x.Meet(interval.New(mustLB(r), math.MaxInt64))
	case ast.Gt:
		refined = x.Meet(gtBound(mustLB(r)))
	case ast.Eq:
		refined = x.Meet(r)
	case ast.Neq:
		refined = subtractInterval(x, r)
	default:
		panic(errInternal)
	}
	return s.Set(variable, refined)
}

func mustLB(i interval.Interval) int64 {
	lb, _, ok := i.Bounds()
	if !ok {
		return math.MaxInt64
	}
	return lb
}

func mustUB(i interval.Interval) int64 {
	_, ub, ok := i.Bounds()
	if !ok {
		return math.MinInt64
	}
	return ub
}

// gtBound returns (lb, MAX], saturating to ⊥ when lb is already MaxInt64
// (nothing can be strictly greater).
func gtBound(lb int64) interval.Interval {
	if lb == math.MaxInt64 {
		return interval.Bot()
	}
	return interval.New(lb+1, math.MaxInt64)
}

// ltBound returns [MIN, ub), saturating to ⊥ when ub is already MinInt64
// (nothing can be strictly less).
func ltBound(ub int64) interval.Interval {
	if ub == math.MinInt64 {
		return interval.Bot()
	}
	return interval.New(math.MinInt64, ub-1)
}

// subtractInterval computes x \ r, the ≠ restriction of spec.md §4.3: a
// low-side trim, a high-side trim, an unchanged result when r sits
// strictly inside x (a hole isn't representable as one interval, so the
// sound over-approximation keeps x as-is), and empty when x ⊆ r.
func subtractInterval(x, r interval.Interval) interval.Interval {
	xlb, xub, xok := x.Bounds()
	rlb, rub, rok := r.Bounds()
	if !xok || !rok {
		return x
	}
	if rub < xlb || rlb > xub {
		return x // no overlap
	}
	if xlb >= rlb && xub <= rub {
		return interval.Bot() // x ⊆ r, including the exact-match case
	}
	if rlb <= xlb { // r covers x's low side
		lo := rub
		if lo != math.MaxInt64 {
			lo++
		}
		return interval.New(lo, xub)
	}
	if rub >= xub { // r covers x's high side
		hi := rlb
		if hi != math.MinInt64 {
			hi--
		}
		return interval.New(xlb, hi)
	}
	return x // r strictly inside x
}
