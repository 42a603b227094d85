package check

import (
	"testing"

	"github.com/LucaGuffanti/abstract-interpreter/ast"
	"github.com/LucaGuffanti/abstract-interpreter/interval"
)

func TestVerdictLeq(t *testing.T) {
	if !Verdict(ast.Leq, interval.New(0, 5), interval.New(0, 10)) {
		t.Error("[0,5] <= [0,10] should hold")
	}
	if Verdict(ast.Leq, interval.New(0, 11), interval.New(0, 10)) {
		t.Error("[0,11] <= [0,10] should not hold")
	}
}

func TestVerdictEqRequiresBothSingleton(t *testing.T) {
	if Verdict(ast.Eq, interval.New(0, 1), interval.Singleton(0)) {
		t.Error("a non-singleton left side cannot be == to anything")
	}
	if !Verdict(ast.Eq, interval.Singleton(3), interval.Singleton(3)) {
		t.Error("equal singletons should satisfy ==")
	}
}

func TestVerdictNeq(t *testing.T) {
	if !Verdict(ast.Neq, interval.New(0, 5), interval.Singleton(3)) {
		t.Error("a range straddling the singleton should satisfy != under this check's definition")
	}
	if Verdict(ast.Neq, interval.Singleton(3), interval.Singleton(3)) {
		t.Error("identical singletons should not satisfy !=")
	}
}

func TestVerdictBotIsUnsatisfied(t *testing.T) {
	if Verdict(ast.Leq, interval.Bot(), interval.New(0, 10)) {
		t.Error("⊥ should never satisfy a postcondition")
	}
}
