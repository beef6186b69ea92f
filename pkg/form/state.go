package form

// State is a node of the authentication form state machine.
type State string

const (
	// StateAnonymous is the initial state: the visitor is editing credentials.
	StateAnonymous State = "anonymous"
	// StateValidating is entered while Submit runs the full schema check.
	StateValidating State = "validating"
	// StateSubmitting holds while the identity call is in flight.
	StateSubmitting State = "submitting"
	// StateAuthenticatedUnlinked is terminal: a new account exists and the
	// external linking flow takes over.
	StateAuthenticatedUnlinked State = "authenticated-unlinked"
	// StateFailed surfaces a form-level error; the next edit or submit returns
	// to StateAnonymous.
	StateFailed State = "failed"
	// StateSignedIn is terminal: credentials were accepted and the router has
	// navigated away.
	StateSignedIn State = "signed-in"
	// StateUnmounted is terminal: the owner discarded the form.
	StateUnmounted State = "unmounted"
)

// Terminal reports whether no further transition can leave the state.
func (s State) Terminal() bool {
	switch s {
	case StateAuthenticatedUnlinked, StateSignedIn, StateUnmounted:
		return true
	}
	return false
}

// SubmissionState is the coarse lifecycle renderers use for the submit
// control and spinner.
type SubmissionState string

const (
	SubmissionIdle      SubmissionState = "idle"
	SubmissionPending   SubmissionState = "pending"
	SubmissionSucceeded SubmissionState = "succeeded"
	SubmissionFailed    SubmissionState = "failed"
)

// Submission maps a machine state onto its submission state.
func (s State) Submission() SubmissionState {
	switch s {
	case StateSubmitting:
		return SubmissionPending
	case StateAuthenticatedUnlinked, StateSignedIn:
		return SubmissionSucceeded
	case StateFailed:
		return SubmissionFailed
	}
	return SubmissionIdle
}
