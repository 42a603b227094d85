package main

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/LucaGuffanti/abstract-interpreter/check"
	"github.com/LucaGuffanti/abstract-interpreter/interval"
	"github.com/LucaGuffanti/abstract-interpreter/store"
)

func TestDescribeFormatsSortedBindings(t *testing.T) {
	s := store.New().Set("y", interval.New(1, 5)).Set("x", interval.New(0, 0))
	goldie.New(t).Assert(t, t.Name(), []byte(describe(s)))
}

func TestDescribeEmptyStore(t *testing.T) {
	if got, want := describe(store.New()), "[]"; got != want {
		t.Errorf("describe(empty) = %q, want %q", got, want)
	}
}

func TestColorizeNoColorPassesThroughFormat(t *testing.T) {
	got := colorize(false, nil, "x = %d", 3)
	if want := "x = 3"; got != want {
		t.Errorf("colorize(false, ...) = %q, want %q", got, want)
	}
}

func TestPrintChecksDoesNotPanicOnEmptyResults(t *testing.T) {
	printChecks([]check.Result{})
}
