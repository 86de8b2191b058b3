package hydrate

import "fmt"

// Phase identifies where in the run a fatal error occurred
type Phase string

const (
	PhaseRoleAssumption Phase = "role_assumption"
	PhaseListing        Phase = "listing"
	PhaseMarker         Phase = "marker"
)

// TransferError is a whole-run-fatal failure. It aborts the run before any
// further object is touched; per-object failures are never represented by
// this type.
type TransferError struct {
	Phase Phase
	Err   error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Phase, e.Err)
}

func (e *TransferError) Unwrap() error {
	return e.Err
}

// ObjectFailure records a failure scoped to exactly one key. Failures are
// collected as data and surfaced together after the whole batch has been
// attempted.
type ObjectFailure struct {
	Key   string
	Cause error
}

func (f ObjectFailure) String() string {
	return fmt.Sprintf("failed to transfer %q: %v", f.Key, f.Cause)
}
