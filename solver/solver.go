// Package solver implements the Jacobi-style fixpoint iteration of
// spec.md §4.5: repeatedly sweep the ordered Location list, resolve each
// Location's predecessor store from either the previous Location's output
// or the Queues entry a Start*Body flag names, apply the transfer
// function, and stop once nothing changes.
//
// Grounded on analysis/absint/static-analysis.go's FIXPOINT label and its
// worklist loop bounded by a step counter and an Eq-based convergence
// check (the teacher walks a CFG via a priority worklist; this package
// walks the flat ordered Location list every sweep instead, since spec.md
// §4.4 already linearizes control flow into that list plus the Queues).
package solver

import (
	"context"
	"errors"
	"math"

	"github.com/LucaGuffanti/abstract-interpreter/check"
	"github.com/LucaGuffanti/abstract-interpreter/diagnostics"
	"github.com/LucaGuffanti/abstract-interpreter/equation"
	"github.com/LucaGuffanti/abstract-interpreter/interval"
	"github.com/LucaGuffanti/abstract-interpreter/location"
	"github.com/LucaGuffanti/abstract-interpreter/store"
)

// Options configures the solver's safety valves. Both are optional;
// the zero value runs an unbounded, non-widening analysis.
type Options struct {
	// MaxIterations caps the number of sweeps. 0 means unbounded.
	MaxIterations int
	// Widen enables the WhileHead widening spec.md §9 permits but does
	// not require, jumping a loop-body bound straight to ±MaxInt64 the
	// first time a sweep pushes it past its previous value. Off by
	// default; needed only for loops whose bound genuinely diverges
	// (e.g. an unconditional counter increment) rather than converging
	// on a fixed interval within a handful of sweeps.
	Widen bool
}

// Result is a completed analysis: how many sweeps it took, the converged
// Locations, and every postcondition's verdict.
type Result struct {
	Iterations int
	Locations  []location.Location
	Checks     []check.Result
}

// ErrMaxIterations is returned when Options.MaxIterations sweeps pass
// without every Location stabilizing.
var ErrMaxIterations = errors.New("solver: reached the iteration limit before the equation system stabilized")

// Run iterates sys to a fixpoint, then runs the postcondition checker
// once over the converged Locations. ctx is checked once per sweep so a
// caller can cancel a long-running (or, absent Widen, potentially
// non-terminating) analysis.
func Run(ctx context.Context, sys *equation.System, opts Options, sink *diagnostics.Sink) (Result, error) {
	locs := make([]location.Location, len(sys.Locations))
	copy(locs, sys.Locations)

	steps := 0
FIXPOINT:
	for {
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		default:
		}

		steps++
		if opts.MaxIterations > 0 && steps > opts.MaxIterations {
			return Result{}, ErrMaxIterations
		}

		snapshot := make([]location.Location, len(locs))
		copy(snapshot, locs)

		sys.Queues.ResetSweep()

		prevOut := sys.Initial
		for i := range locs {
			loc := &locs[i]

			in := prevOut
			switch {
			case loc.StartsIfBody:
				in, _ = sys.Queues.PopIfBody()
			case loc.StartsElseBody:
				in, _ = sys.Queues.PopElseBody()
			case loc.StartsWhileBody:
				in, _ = sys.Queues.PopWhileBody()
				// The owning WhileHead sits just before its body's first
				// Location; with widening on, the body reads its widened SBody.
				if opts.Widen && i > 0 && locs[i-1].Kind == location.WhileHead {
					in = locs[i-1].SBody
				}
			}

			equation.Apply(loc, in, sys.Queues, sink)

			if opts.Widen && loc.Kind == location.WhileHead {
				loc.SBody = widenStore(snapshot[i].SBody, loc.SBody)
			}

			if equation.Chains(loc.Kind) {
				prevOut = equation.Output(loc)
			}
		}

		stable := true
		for i := range locs {
			if !locs[i].IsStable(&snapshot[i]) {
				stable = false
				break
			}
		}
		if stable {
			break FIXPOINT
		}
	}

	sys.Locations = locs
	return Result{
		Iterations: steps,
		Locations:  locs,
		Checks:     check.Run(sys),
	}, nil
}

// widenStore jumps any variable's bound that moved outward since prev
// straight to the representable extreme, per spec.md §9's widening note.
// A bound that held steady or moved inward is left untouched.
func widenStore(prev, cur store.Store) store.Store {
	for _, key := range cur.Keys() {
		plb, pub, pok := prev.Get(key).Bounds()
		clb, cub, cok := cur.Get(key).Bounds()
		if !pok || !cok {
			continue
		}
		nlb, nub := clb, cub
		if clb < plb {
			nlb = math.MinInt64
		}
		if cub > pub {
			nub = math.MaxInt64
		}
		if nlb != clb || nub != cub {
			cur = cur.Set(key, interval.New(nlb, nub))
		}
	}
	return cur
}
