package equation

import (
	"math"
	"testing"

	"github.com/LucaGuffanti/abstract-interpreter/ast"
	"github.com/LucaGuffanti/abstract-interpreter/interval"
	"github.com/LucaGuffanti/abstract-interpreter/store"
)

func TestEvalArith(t *testing.T) {
	s := store.New().Set("x", interval.New(2, 4))
	expr := ast.NewArith(ast.Add, ast.NewVariable("x"), ast.NewInteger(10))
	got := Eval(expr, s, nil, "x")
	if want := interval.New(12, 14); !got.Eq(want) {
		t.Errorf("Eval(x+10) = %s, want %s", got, want)
	}
}

func TestEvalCondLeq(t *testing.T) {
	s := store.New().Set("x", interval.New(0, 100))
	got := EvalCond("x", ast.Leq, ast.NewInteger(10), s, nil)
	if want := interval.New(0, 10); !got.Get("x").Eq(want) {
		t.Errorf("x <= 10 restricts to %s, want %s", got.Get("x"), want)
	}
}

func TestEvalCondLtBoundary(t *testing.T) {
	s := store.New().Set("x", interval.Singleton(math.MinInt64))
	got := EvalCond("x", ast.Lt, ast.NewInteger(math.MinInt64), s, nil)
	if !got.Get("x").IsBot() {
		t.Errorf("x < MinInt64 should be unsatisfiable, got %s", got.Get("x"))
	}
}

func TestEvalCondNeqExactMatchEmpties(t *testing.T) {
	s := store.New().Set("x", interval.Singleton(5))
	got := EvalCond("x", ast.Neq, ast.NewInteger(5), s, nil)
	if !got.Get("x").IsBot() {
		t.Errorf("x != 5 where x==5 should empty, got %s", got.Get("x"))
	}
}

func TestEvalCondNeqTrimsLowSide(t *testing.T) {
	s := store.New().Set("x", interval.New(0, 10))
	got := EvalCond("x", ast.Neq, ast.NewInteger(0), s, nil)
	if want := interval.New(1, 10); !got.Get("x").Eq(want) {
		t.Errorf("[0,10] != 0 = %s, want %s", got.Get("x"), want)
	}
}

func TestEvalCondNeqNoOverlapUnchanged(t *testing.T) {
	s := store.New().Set("x", interval.New(0, 10))
	got := EvalCond("x", ast.Neq, ast.NewInteger(20), s, nil)
	if want := interval.New(0, 10); !got.Get("x").Eq(want) {
		t.Errorf("[0,10] != 20 = %s, want unchanged %s", got.Get("x"), want)
	}
}

func TestEvalCondComplementRoundTrips(t *testing.T) {
	for _, op := range []ast.Operator{ast.Leq, ast.Geq, ast.Lt, ast.Gt, ast.Eq, ast.Neq} {
		if op.Complement().Complement() != op {
			t.Errorf("Complement(Complement(%s)) != %s", op, op)
		}
	}
}
