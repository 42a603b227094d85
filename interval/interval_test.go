package interval

import (
	"math"
	"testing"

	"github.com/LucaGuffanti/abstract-interpreter/diagnostics"
)

func TestNewEmptyWhenLbGtUb(t *testing.T) {
	if !New(5, 1).IsBot() {
		t.Fatal("expected New(5, 1) to be empty")
	}
}

func TestTopBounds(t *testing.T) {
	lb, ub, ok := Top().Bounds()
	if !ok || lb != math.MinInt64 || ub != math.MaxInt64 {
		t.Fatalf("Top() = [%d, %d], ok=%v", lb, ub, ok)
	}
}

func TestJoinMeet(t *testing.T) {
	a := New(0, 10)
	b := New(5, 20)
	if got := a.Join(b); !got.Eq(New(0, 20)) {
		t.Errorf("Join = %s, want [0, 20]", got)
	}
	if got := a.Meet(b); !got.Eq(New(5, 10)) {
		t.Errorf("Meet = %s, want [5, 10]", got)
	}
	if got := New(0, 1).Meet(New(5, 6)); !got.IsBot() {
		t.Errorf("disjoint Meet = %s, want ⊥", got)
	}
}

func TestLeqGeq(t *testing.T) {
	if !New(2, 4).Leq(New(0, 10)) {
		t.Error("[2,4] should be <= [0,10]")
	}
	if New(0, 10).Leq(New(2, 4)) {
		t.Error("[0,10] should not be <= [2,4]")
	}
	if !Bot().Leq(New(0, 0)) {
		t.Error("⊥ should be <= anything")
	}
}

func TestAddSaturates(t *testing.T) {
	sink := diagnostics.NewSink(4)
	got := Singleton(math.MaxInt64).Add(Singleton(1), sink, "x")
	if !got.Eq(Singleton(math.MaxInt64)) {
		t.Errorf("Add overflow = %s, want MaxInt64", got)
	}
	ws := sink.Collect()
	if len(ws) != 1 || ws[0].Kind != diagnostics.Overflow {
		t.Errorf("expected one overflow warning, got %v", ws)
	}
}

func TestMulFourCorner(t *testing.T) {
	got := New(-2, 3).Mul(New(-4, 5), nil, "x")
	// Corners: -2*-4=8, -2*5=-10, 3*-4=-12, 3*5=15.
	if !got.Eq(New(-12, 15)) {
		t.Errorf("Mul = %s, want [-12, 15]", got)
	}
}

func TestDivByZeroStraddlingDivisorYieldsTop(t *testing.T) {
	sink := diagnostics.NewSink(4)
	got := New(10, 20).Div(New(-1, 1), sink, "x")
	if !got.IsTop() {
		t.Errorf("Div by zero-straddling divisor = %s, want ⊤", got)
	}
	ws := sink.Collect()
	if len(ws) != 1 || ws[0].Kind != diagnostics.DivisionByZero {
		t.Errorf("expected one division-by-zero warning, got %v", ws)
	}
}

func TestDivMinInt64ByNegOneSaturates(t *testing.T) {
	got := Singleton(math.MinInt64).Div(Singleton(-1), nil, "x")
	if !got.Eq(Singleton(math.MaxInt64)) {
		t.Errorf("MinInt64 / -1 = %s, want MaxInt64 (saturated, not a panic)", got)
	}
}

func TestRoundTripIdentities(t *testing.T) {
	cases := []Interval{
		New(0, 0),
		New(-5, 5),
		Singleton(3),
		New(math.MinInt64, math.MaxInt64),
		Bot(),
	}
	for _, i := range cases {
		if got := i.Meet(Top()); !got.Eq(i) {
			t.Errorf("%s.Meet(Top()) = %s, want %s", i, got, i)
		}
		if got := i.Join(Bot()); !got.Eq(i) {
			t.Errorf("%s.Join(Bot()) = %s, want %s", i, got, i)
		}
		if got := i.Meet(i); !got.Eq(i) {
			t.Errorf("%s.Meet(itself) = %s, want %s", i, got, i)
		}
	}
}

func TestArithmeticIsMonotone(t *testing.T) {
	// I1 ⊑ I1' and I2 ⊑ I2' ⇒ op(I1,I2) ⊑ op(I1',I2'), for every op.
	cases := []struct {
		name           string
		i1, i1w, i2, i2w Interval
	}{
		{"add", New(2, 4), New(0, 10), New(1, 1), New(-5, 5)},
		{"sub", New(2, 4), New(0, 10), New(1, 1), New(-5, 5)},
		{"mul", New(2, 4), New(0, 10), New(1, 3), New(-5, 5)},
		{"div", New(20, 40), New(0, 100), New(2, 5), New(1, 10)},
	}
	ops := map[string]func(a, b Interval) Interval{
		"add": func(a, b Interval) Interval { return a.Add(b, nil, "x") },
		"sub": func(a, b Interval) Interval { return a.Sub(b, nil, "x") },
		"mul": func(a, b Interval) Interval { return a.Mul(b, nil, "x") },
		"div": func(a, b Interval) Interval { return a.Div(b, nil, "x") },
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if !c.i1.Leq(c.i1w) || !c.i2.Leq(c.i2w) {
				t.Fatalf("test case setup is wrong: narrow operands must be ⊑ their widened counterparts")
			}
			op := ops[c.name]
			narrow := op(c.i1, c.i2)
			wide := op(c.i1w, c.i2w)
			if !narrow.Leq(wide) {
				t.Errorf("%s(%s,%s)=%s is not ⊑ %s(%s,%s)=%s", c.name, c.i1, c.i2, narrow, c.name, c.i1w, c.i2w, wide)
			}
		})
	}
}

func TestJoinAndMeetAreMonotone(t *testing.T) {
	a, aw := New(2, 4), New(0, 10)
	b := New(1, 1)
	if !a.Join(b).Leq(aw.Join(b)) {
		t.Error("Join should be monotone in its left argument")
	}
	if !a.Meet(b).Leq(aw.Meet(b)) {
		t.Error("Meet should be monotone in its left argument")
	}
}

func TestContainsZero(t *testing.T) {
	cases := []struct {
		i    Interval
		want bool
	}{
		{New(-1, 1), true},
		{New(0, 0), true},
		{New(1, 5), false},
		{Bot(), false},
	}
	for _, c := range cases {
		if got := c.i.ContainsZero(); got != c.want {
			t.Errorf("%s.ContainsZero() = %v, want %v", c.i, got, c.want)
		}
	}
}
