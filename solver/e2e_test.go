package solver_test

import (
	"context"
	"testing"

	"github.com/LucaGuffanti/abstract-interpreter/diagnostics"
	"github.com/LucaGuffanti/abstract-interpreter/equation"
	"github.com/LucaGuffanti/abstract-interpreter/interval"
	"github.com/LucaGuffanti/abstract-interpreter/location"
	"github.com/LucaGuffanti/abstract-interpreter/parser"
	"github.com/LucaGuffanti/abstract-interpreter/solver"
)

// postconditionInput returns the Store a Postcondition Location received,
// for asserting the converged interval a scenario names directly rather
// than only its pass/fail verdict.
func postconditionInput(t *testing.T, locs []location.Location, name string) (int64, int64) {
	t.Helper()
	for _, loc := range locs {
		if loc.Kind != location.Postcondition {
			continue
		}
		v := loc.S.Get(name)
		lb, ub, ok := v.Bounds()
		if !ok {
			t.Fatalf("postcondition input for %q is empty (⊥)", name)
		}
		return lb, ub
	}
	t.Fatalf("no Postcondition Location found")
	return 0, 0
}

func mustRun(t *testing.T, src string, opts solver.Options) solver.Result {
	t.Helper()
	prog, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	sys, err := equation.Build(prog)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if opts.MaxIterations == 0 {
		opts.MaxIterations = 1000
	}
	result, err := solver.Run(context.Background(), sys, opts, diagnostics.NewSink(256))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return result
}

// Scenario 1: int x; x = 3; x = x + 4; postcondition x == 7
func TestScenarioStraightLineArithmetic(t *testing.T) {
	result := mustRun(t, `
		int x;
		x = 3;
		x = x + 4;
		postcondition x == 7;
	`, solver.Options{})
	lb, ub := postconditionInput(t, result.Locations, "x")
	if lb != 7 || ub != 7 {
		t.Errorf("x = [%d,%d], want [7,7]", lb, ub)
	}
	if len(result.Checks) != 1 || !result.Checks[0].Satisfied {
		t.Errorf("expected postcondition to be satisfied, got %v", result.Checks)
	}
}

// Scenario 2: int x; precondition 0<=x<=10; if (x==5) {x=x+1} else {x=0};
// postcondition 0<=x<=10 -> final x in [0,6]
func TestScenarioIfElseJoin(t *testing.T) {
	result := mustRun(t, `
		int x;
		precondition x >= 0;
		precondition x <= 10;
		if (x == 5) {
			x = x + 1;
		} else {
			x = 0;
		}
		postcondition x >= 0;
		postcondition x <= 10;
	`, solver.Options{})
	lb, ub := postconditionInput(t, result.Locations, "x")
	if lb != 0 || ub != 6 {
		t.Errorf("x = [%d,%d], want [0,6]", lb, ub)
	}
	for _, c := range result.Checks {
		if !c.Satisfied {
			t.Errorf("expected every postcondition satisfied, got %v", result.Checks)
		}
	}
}

// Scenario 3: int x; precondition 0<=x<=10; if (x==5) {x=100};
// postcondition x <= 100 -> final x in [0,100]
func TestScenarioIfWithoutElse(t *testing.T) {
	result := mustRun(t, `
		int x;
		precondition x >= 0;
		precondition x <= 10;
		if (x == 5) {
			x = 100;
		}
		postcondition x <= 100;
	`, solver.Options{})
	lb, ub := postconditionInput(t, result.Locations, "x")
	if lb != 0 || ub != 100 {
		t.Errorf("x = [%d,%d], want [0,100]", lb, ub)
	}
	if !result.Checks[0].Satisfied {
		t.Error("expected x <= 100 to be satisfied")
	}
}

// Scenario 4: int x; precondition 1<=x<=10; x = 10/x; postcondition x>=1
// -> x in [1,10], no division-by-zero warning
func TestScenarioDivisionWithoutZeroInDivisor(t *testing.T) {
	prog, err := parser.Parse(`
		int x;
		precondition x >= 1;
		precondition x <= 10;
		x = 10 / x;
		postcondition x >= 1;
	`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	sys, err := equation.Build(prog)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	sink := diagnostics.NewSink(256)
	result, err := solver.Run(context.Background(), sys, solver.Options{MaxIterations: 1000}, sink)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	lb, ub := postconditionInput(t, result.Locations, "x")
	if lb != 1 || ub != 10 {
		t.Errorf("x = [%d,%d], want [1,10]", lb, ub)
	}
	if !result.Checks[0].Satisfied {
		t.Error("expected x >= 1 to be satisfied")
	}
	for _, w := range sink.Collect() {
		if w.Kind == diagnostics.DivisionByZero {
			t.Errorf("unexpected division-by-zero warning: %v", w)
		}
	}
}

// Scenario 5: int x; precondition -1<=x<=1; x = 10/x; postcondition true
// -> division-by-zero warning, x becomes top
func TestScenarioDivisionStraddlingZero(t *testing.T) {
	prog, err := parser.Parse(`
		int x;
		precondition x >= 0 - 1;
		precondition x <= 1;
		x = 10 / x;
		postcondition x <= x;
	`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	sys, err := equation.Build(prog)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	sink := diagnostics.NewSink(256)
	result, err := solver.Run(context.Background(), sys, solver.Options{MaxIterations: 1000}, sink)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	sawDivByZero := false
	for _, w := range sink.Collect() {
		if w.Kind == diagnostics.DivisionByZero {
			sawDivByZero = true
		}
	}
	if !sawDivByZero {
		t.Error("expected a division-by-zero warning when the divisor straddles 0")
	}
	if !postconditionIntervalFor(result.Locations, "x").IsTop() {
		t.Error("expected x to have widened to top (unbounded) after division by a zero-straddling interval")
	}
}

func postconditionIntervalFor(locs []location.Location, name string) interval.Interval {
	for _, loc := range locs {
		if loc.Kind == location.Postcondition {
			return loc.S.Get(name)
		}
	}
	return interval.Bot()
}

// Scenario 6: int i; i = 0; while (i < 10) { i = i + 1 }; postcondition i == 10
func TestScenarioLoopConvergesWithAndWithoutWidening(t *testing.T) {
	src := `
		int i;
		i = 0;
		while (i < 10) {
			i = i + 1;
		}
		postcondition i == 10;
	`
	for _, widen := range []bool{false, true} {
		result := mustRun(t, src, solver.Options{Widen: widen, MaxIterations: 1000})
		lb, ub := postconditionInput(t, result.Locations, "i")
		if lb != 10 || ub != 10 {
			t.Errorf("widen=%v: i = [%d,%d], want [10,10]", widen, lb, ub)
		}
		if !result.Checks[0].Satisfied {
			t.Errorf("widen=%v: expected i == 10 to be satisfied", widen)
		}
	}
}
