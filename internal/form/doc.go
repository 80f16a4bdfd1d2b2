// Package form provides the generic form controller shared by every account
// form: field values, per-field error messages, local validation, one JSON
// POST per submission and reconciliation of the API response.
//
// A form is described by a Definition (fields with their rules, endpoint,
// body encoder, response mode and success strategy) and driven through a
// Form:
//
//	f, err := form.New(def, client, form.WithSessions(store))
//	_ = f.Change("email", "ana@example.com")
//	res := f.Submit(ctx)
//	switch res.Outcome {
//	case form.OutcomeSucceeded:
//		// navigate to res.Redirect
//	case form.OutcomeInvalid, form.OutcomeRejected, form.OutcomeTransportFailed:
//		// render res.Errors
//	}
//
// Submit never returns a Go error: every outcome is expressed in the Errors
// record. Submitting while a submission is in flight returns OutcomeBusy
// without touching the network, and a submission that completes after
// Close is discarded.
package form
