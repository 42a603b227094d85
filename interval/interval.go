// Package interval implements the bounded, non-relational interval
// lattice: a closed range of int64 values (or the empty range ⊥) with
// lattice operations and saturating abstract arithmetic.
//
// It is grounded on the teacher codebase's lattice.Interval
// (analysis/lattice/interval.go), which carries the same
// Join/Meet/Leq/Geq/Eq public-delegates-to-private shape, but trades that
// type's symbolic ±∞ bounds for a fixed-width int64 pair: this domain's
// ⊤ is the concrete range [math.MinInt64, math.MaxInt64], and arithmetic
// that would escape that range saturates to it (with a diagnostic) rather
// than promoting to an infinite bound.
package interval

import (
	"fmt"
	"math"

	"github.com/LucaGuffanti/abstract-interpreter/diagnostics"
)

// Interval is a closed range [lb, ub] of int64, or the empty range ⊥.
type Interval struct {
	empty bool
	lb    int64
	ub    int64
}

// New constructs [lb, ub]. If lb > ub the result is ⊥, matching spec's
// "new(lb, ub): constructs; if lb > ub, is empty."
func New(lb, ub int64) Interval {
	if lb > ub {
		return Interval{empty: true}
	}
	return Interval{lb: lb, ub: ub}
}

// Singleton constructs the degenerate interval [n, n].
func Singleton(n int64) Interval {
	return Interval{lb: n, ub: n}
}

// Bot returns ⊥, the empty interval.
func Bot() Interval {
	return Interval{empty: true}
}

// Top returns ⊤ = [math.MinInt64, math.MaxInt64].
func Top() Interval {
	return Interval{lb: math.MinInt64, ub: math.MaxInt64}
}

// IsBot reports whether the interval is ⊥.
func (i Interval) IsBot() bool {
	return i.empty
}

// IsTop reports whether the interval is exactly ⊤.
func (i Interval) IsTop() bool {
	return !i.empty && i.lb == math.MinInt64 && i.ub == math.MaxInt64
}

// Bounds returns (lb, ub, ok); ok is false for ⊥.
func (i Interval) Bounds() (int64, int64, bool) {
	if i.empty {
		return 0, 0, false
	}
	return i.lb, i.ub, true
}

func (i Interval) String() string {
	if i.empty {
		return "⊥"
	}
	return fmt.Sprintf("[%d, %d]", i.lb, i.ub)
}

// Eq is structural equality; two empty intervals are equal.
func (i1 Interval) Eq(i2 Interval) bool {
	return i1.eq(i2)
}

func (i1 Interval) eq(i2 Interval) bool {
	if i1.empty || i2.empty {
		return i1.empty == i2.empty
	}
	return i1.lb == i2.lb && i1.ub == i2.ub
}

// Leq computes I₁ ⊑ I₂.
func (i1 Interval) Leq(i2 Interval) bool {
	return i1.leq(i2)
}

func (i1 Interval) leq(i2 Interval) bool {
	if i1.empty {
		return true
	}
	if i2.empty {
		return false
	}
	return i2.lb <= i1.lb && i1.ub <= i2.ub
}

// Geq computes I₁ ⊒ I₂.
func (i1 Interval) Geq(i2 Interval) bool {
	return i2.leq(i1)
}

// Contains reports self ⊒ other, the spec's "contains" operation.
func (i Interval) Contains(other Interval) bool {
	return i.Geq(other)
}

// ContainsZero reports whether the interval straddles or touches zero;
// used to detect division-by-zero-containing-divisor.
func (i Interval) ContainsZero() bool {
	if i.empty {
		return false
	}
	return i.lb <= 0 && 0 <= i.ub
}

// Join computes I₁ ⊔ I₂: empty ⊔ X = X; otherwise [min(lb), max(ub)].
func (i1 Interval) Join(i2 Interval) Interval {
	return i1.join(i2)
}

func (i1 Interval) join(i2 Interval) Interval {
	if i1.empty {
		return i2
	}
	if i2.empty {
		return i1
	}
	return Interval{lb: minI64(i1.lb, i2.lb), ub: maxI64(i1.ub, i2.ub)}
}

// Meet computes I₁ ⊓ I₂: any-empty → empty; otherwise [max(lb), min(ub)],
// becoming empty if the result crosses.
func (i1 Interval) Meet(i2 Interval) Interval {
	return i1.meet(i2)
}

func (i1 Interval) meet(i2 Interval) Interval {
	if i1.empty || i2.empty {
		return Bot()
	}
	return New(maxI64(i1.lb, i2.lb), minI64(i1.ub, i2.ub))
}

func minI64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func maxI64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

// Neg computes unary negation, saturating on the lone overflow case
// (negating math.MinInt64).
func (i Interval) Neg(sink *diagnostics.Sink, pos string) Interval {
	if i.empty {
		return Bot()
	}
	hi, warnedHi := satNeg(i.lb)
	lo, warnedLo := satNeg(i.ub)
	if warnedHi || warnedLo {
		sink.Emit(diagnostics.Warning{
			Kind:    diagnostics.Overflow,
			Message: fmt.Sprintf("negation of %s overflows", i),
			Pos:     pos,
		})
	}
	return New(lo, hi)
}

// Add computes sound interval addition via the two-corner rule
// (addition is monotone in both operands, so only lb+lb and ub+ub matter).
func (i1 Interval) Add(i2 Interval, sink *diagnostics.Sink, pos string) Interval {
	if i1.empty || i2.empty {
		return Bot()
	}
	lo, w1 := satAdd(i1.lb, i2.lb)
	hi, w2 := satAdd(i1.ub, i2.ub)
	warnOverflow(sink, w1 || w2, i1, i2, "+", pos)
	return New(lo, hi)
}

// Sub computes sound interval subtraction via the two-corner rule.
func (i1 Interval) Sub(i2 Interval, sink *diagnostics.Sink, pos string) Interval {
	if i1.empty || i2.empty {
		return Bot()
	}
	lo, w1 := satSub(i1.lb, i2.ub)
	hi, w2 := satSub(i1.ub, i2.lb)
	warnOverflow(sink, w1 || w2, i1, i2, "-", pos)
	return New(lo, hi)
}

// Mul computes sound interval multiplication via the four-corner rule.
func (i1 Interval) Mul(i2 Interval, sink *diagnostics.Sink, pos string) Interval {
	if i1.empty || i2.empty {
		return Bot()
	}
	c1, w1 := satMul(i1.lb, i2.lb)
	c2, w2 := satMul(i1.lb, i2.ub)
	c3, w3 := satMul(i1.ub, i2.lb)
	c4, w4 := satMul(i1.ub, i2.ub)
	warnOverflow(sink, w1 || w2 || w3 || w4, i1, i2, "*", pos)
	lo := minI64(minI64(c1, c2), minI64(c3, c4))
	hi := maxI64(maxI64(c1, c2), maxI64(c3, c4))
	return New(lo, hi)
}

// Div computes sound interval division. A divisor interval containing 0
// returns ⊤ plus a division-by-zero warning, per spec.md §4.1/§4.6/§7.
// Otherwise the four-corner rule applies, saturating on the lone overflow
// corner (MinInt64 / -1).
func (i1 Interval) Div(i2 Interval, sink *diagnostics.Sink, pos string) Interval {
	if i1.empty || i2.empty {
		return Bot()
	}
	if i2.ContainsZero() {
		sink.Emit(diagnostics.Warning{
			Kind:    diagnostics.DivisionByZero,
			Message: fmt.Sprintf("division by %s may divide by zero", i2),
			Pos:     pos,
		})
		return Top()
	}
	c1, w1 := satDiv(i1.lb, i2.lb)
	c2, w2 := satDiv(i1.lb, i2.ub)
	c3, w3 := satDiv(i1.ub, i2.lb)
	c4, w4 := satDiv(i1.ub, i2.ub)
	warnOverflow(sink, w1 || w2 || w3 || w4, i1, i2, "/", pos)
	lo := minI64(minI64(c1, c2), minI64(c3, c4))
	hi := maxI64(maxI64(c1, c2), maxI64(c3, c4))
	return New(lo, hi)
}

func warnOverflow(sink *diagnostics.Sink, warned bool, i1, i2 Interval, op, pos string) {
	if !warned {
		return
	}
	sink.Emit(diagnostics.Warning{
		Kind:    diagnostics.Overflow,
		Message: fmt.Sprintf("%s %s %s overflows and saturates to a wider bound", i1, op, i2),
		Pos:     pos,
	})
}

// --- saturating scalar arithmetic, grounded on the sign-comparison
// overflow idiom in the pack's dominikh-go-tools/go/vrp/int.go (r := a+b;
// overflowed := (r > a) != (b > 0)), restated here as limit comparisons
// to sidestep computing a wrapped r before checking it. ---

func addOverflows(a, b int64) bool {
	if b > 0 {
		return a > math.MaxInt64-b
	}
	return a < math.MinInt64-b
}

func satAdd(a, b int64) (int64, bool) {
	if addOverflows(a, b) {
		if b > 0 {
			return math.MaxInt64, true
		}
		return math.MinInt64, true
	}
	return a + b, false
}

func subOverflows(a, b int64) bool {
	if b < 0 {
		return a > math.MaxInt64+b
	}
	return a < math.MinInt64+b
}

func satSub(a, b int64) (int64, bool) {
	if subOverflows(a, b) {
		if b < 0 {
			return math.MaxInt64, true
		}
		return math.MinInt64, true
	}
	return a - b, false
}

func satNeg(a int64) (int64, bool) {
	if a == math.MinInt64 {
		return math.MaxInt64, true
	}
	return -a, false
}

func mulOverflows(a, b int64) bool {
	if a == 0 || b == 0 {
		return false
	}
	if (a == math.MinInt64 && b == -1) || (b == math.MinInt64 && a == -1) {
		return true
	}
	r := a * b
	return r/b != a
}

func satMul(a, b int64) (int64, bool) {
	if mulOverflows(a, b) {
		if (a > 0) == (b > 0) {
			return math.MaxInt64, true
		}
		return math.MinInt64, true
	}
	return a * b, false
}

func satDiv(a, b int64) (int64, bool) {
	if a == math.MinInt64 && b == -1 {
		return math.MaxInt64, true
	}
	return a / b, false
}
