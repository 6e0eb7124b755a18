// Package errs defines the fatal/non-fatal error taxonomy of §7. Fatal
// errors abort the run; non-fatal errors are values attached to the
// offending query's report. Invariant violations are a separate concern —
// see Invariant below — and are never returned as error values.
package errs

import "fmt"

// Stage identifies which pipeline state (§4, "State machine") a per-query
// failure occurred in.
type Stage string

const (
	StageIngest    Stage = "ingested"
	StageAlign     Stage = "aligned"
	StageTranslate Stage = "translated"
	StageDiff      Stage = "diffed"
	StagePlace     Stage = "placed"
)

// NonFatal wraps a per-query failure with the stage it occurred in and a
// machine-readable kind, per §7's "every error has a machine-readable kind
// and a human-readable message."
type NonFatal struct {
	Stage Stage
	Kind  string
	Query string
	Err   error
}

func (e *NonFatal) Error() string {
	return fmt.Sprintf("query %q failed at stage %s (%s): %v", e.Query, e.Stage, e.Kind, e.Err)
}

func (e *NonFatal) Unwrap() error {
	return e.Err
}

// AlignmentFailed is returned when no seed chain meets minSeeds with a valid
// band, the query exceeds maxSeqLen, or the banded score falls below
// minScore (§4.4).
type AlignmentFailed struct {
	Reason string
}

func (e *AlignmentFailed) Error() string {
	return fmt.Sprintf("alignment failed: %s", e.Reason)
}

// InvalidLetter mirrors seq.InvalidLetterError at the pipeline-error layer,
// so callers working purely with errs can type-switch without importing seq.
type InvalidLetter struct {
	Char byte
}

func (e *InvalidLetter) Error() string {
	return fmt.Sprintf("invalid letter %q", e.Char)
}

// InvalidMutationFormat is returned when a mutation string (the `A123T`
// grammar of §6) fails to parse.
type InvalidMutationFormat struct {
	Raw string
}

func (e *InvalidMutationFormat) Error() string {
	return fmt.Sprintf("invalid mutation format %q", e.Raw)
}

// RefPeptideNotFound is reported by the translator for a gene with no
// corresponding reference peptide (grounded on the original's
// ErrorRefPeptideNotFound).
type RefPeptideNotFound struct {
	Gene string
}

func (e *RefPeptideNotFound) Error() string {
	return fmt.Sprintf("reference peptide not found for gene %q", e.Gene)
}

// Invariant represents a precondition/postcondition violation inside the
// core: a programmer error that must never be reachable on valid input.
// Callers should recover() at the task boundary and log it, never surface
// it as a per-query error value (§7).
type Invariant struct {
	Message string
}

func (e *Invariant) Error() string {
	return fmt.Sprintf("invariant violation: %s", e.Message)
}

// Check panics with an Invariant if cond is false. Use at precondition and
// postcondition boundaries inside the core algorithms.
func Check(cond bool, format string, args ...any) {
	if !cond {
		panic(&Invariant{Message: fmt.Sprintf(format, args...)})
	}
}
