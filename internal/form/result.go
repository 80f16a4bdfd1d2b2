package form

import "fmt"

// Outcome is how a submission attempt ended.
type Outcome string

const (
	// OutcomeInvalid means local validation failed; nothing was sent.
	OutcomeInvalid Outcome = "invalid"
	// OutcomeSucceeded means the server accepted the submission.
	OutcomeSucceeded Outcome = "succeeded"
	// OutcomeRejected means the request completed but the server reported
	// a business failure.
	OutcomeRejected Outcome = "rejected"
	// OutcomeTransportFailed means the request never completed or the
	// response could not be understood.
	OutcomeTransportFailed Outcome = "transport_failed"
	// OutcomeBusy means another submission was still in flight.
	OutcomeBusy Outcome = "busy"
	// OutcomeDiscarded means the form was closed before the response was
	// applied.
	OutcomeDiscarded Outcome = "discarded"
)

// State is the controller state.
type State int

const (
	StateEditing State = iota
	StateValidating
	StateSubmitting
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateEditing:
		return "editing"
	case StateValidating:
		return "validating"
	case StateSubmitting:
		return "submitting"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Result describes one Submit call.
type Result struct {
	Outcome Outcome

	// Redirect is the navigation target after a successful submission.
	Redirect string

	// Errors is the error record after the attempt.
	Errors Errors

	// RequestID correlates the attempt with logs and the X-Request-ID header.
	RequestID string

	// StatusCode is the HTTP status, or 0 when no response was received.
	StatusCode int
}

// Succeeded reports whether the submission was accepted.
func (r Result) Succeeded() bool {
	return r.Outcome == OutcomeSucceeded
}

// InvalidFields returns the names of fields with a message, in order.
func (r Result) InvalidFields(fields []Field) []string {
	var names []string
	for _, f := range fields {
		if r.Errors[f.Name] != "" {
			names = append(names, f.Name)
		}
	}
	return names
}
