package equation

import (
	"fmt"

	"github.com/LucaGuffanti/abstract-interpreter/location"
	"github.com/LucaGuffanti/abstract-interpreter/store"
)

// BuildError is returned for an unsupported construct encountered while
// lowering an AST into an equation system: a non-variable condition side,
// a non-constant condition side, an unknown node kind, or a malformed
// shape. Spec.md §7 classifies these as fatal at build time; here "fatal"
// means a typed error returned to the caller, not a process exit — only
// main.go translates a BuildError into an exit code.
type BuildError struct {
	Msg string
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("equation: %s", e.Msg)
}

func errf(format string, args ...any) *BuildError {
	return &BuildError{Msg: fmt.Sprintf(format, args...)}
}

// System is the output of Build: the ordered Location sequence, the
// wiring Queues the solver drains and refills each sweep, and the
// external input store that the precondition phase produced for L[0].
type System struct {
	Locations []location.Location
	Queues    *Queues
	Initial   store.Store
}
