// Package utils carries the CLI's ambient plumbing: flag parsing and small
// helpers shared between main.go and the packages it wires together. The
// options struct plus accessor-interface pattern is grounded on the
// teacher's own utils/init.go, which favors a package-level struct
// populated by the stdlib flag package over any third-party flag/config
// library.
package utils

import (
	"flag"
	"log"
)

type options struct {
	widen         bool
	maxIterations int
	graphPath     string
	noColorize    bool
	verbose       bool
}

var opts = &options{}

type optInterface struct{}

// Opts exposes the parsed CLI flags through a read-only accessor, matching
// the teacher's utils.Opts() pattern.
func Opts() optInterface {
	return optInterface{}
}

func (optInterface) Widen() bool          { return opts.widen }
func (optInterface) MaxIterations() int   { return opts.maxIterations }
func (optInterface) GraphPath() string    { return opts.graphPath }
func (optInterface) NoColorize() bool     { return opts.noColorize }
func (optInterface) Verbose() bool        { return opts.verbose }

func (optInterface) OnVerbose(do func()) {
	if Opts().Verbose() {
		do()
	}
}

func init() {
	flag.BoolVar(&opts.widen, "widen", false, "enable widening on while-loop bodies so divergent bounds jump to +-max instead of looping until MaxIterations")
	flag.IntVar(&opts.maxIterations, "max-iterations", 0, "abort with a diagnostic after this many fixpoint sweeps; 0 means unbounded")
	flag.StringVar(&opts.graphPath, "graph", "", "render the solved equation system's wiring graph to this file (.svg, .png, ...)")
	flag.BoolVar(&opts.noColorize, "no-color", false, "disable colorized output")
	flag.BoolVar(&opts.verbose, "verbose", false, "enable verbose output")

	log.SetFlags(log.Ltime)
}

// ParseArgs parses os.Args. Kept as a separate call (not run from init) so
// unit tests that don't want flag.Parse side effects can skip it, mirroring
// the teacher's own reasoning for the same split.
func ParseArgs() {
	flag.Parse()
}

// ProgramPath returns the first non-flag argument: the path to the source
// file to analyze.
func ProgramPath() (string, bool) {
	args := flag.Args()
	if len(args) < 1 {
		return "", false
	}
	return args[0], true
}
