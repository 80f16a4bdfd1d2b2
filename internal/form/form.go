package form

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/fretehub/fretehub-go/internal/core/domain"
	"github.com/fretehub/fretehub-go/internal/telemetry/logger"
)

// Poster sends a JSON body to an API path. *connection.HTTPClient
// satisfies it.
type Poster interface {
	Post(ctx context.Context, path string, body any) (*http.Response, error)
}

// Sessions establishes a session on login success. *session.Store
// satisfies it.
type Sessions interface {
	Login(ctx context.Context, token string, user, company json.RawMessage) error
}

// Observer receives submission metrics. *metric.Registry satisfies it.
type Observer interface {
	ObserveSubmit(form, outcome string, d time.Duration)
	ObserveFieldError(form, field string)
}

// Option configures a Form.
type Option func(*Form)

// WithSessions sets the session store used by SuccessLogin forms.
func WithSessions(s Sessions) Option {
	return func(f *Form) {
		f.sessions = s
	}
}

// WithObserver reports submissions to o.
func WithObserver(o Observer) Option {
	return func(f *Form) {
		f.observer = o
	}
}

// WithLogger sets the logger attached to every submission context.
func WithLogger(l logger.Logger) Option {
	return func(f *Form) {
		f.logger = l
	}
}

// Form is a form controller: one record of values, one parallel record of
// errors and at most one submission in flight.
type Form struct {
	def      Definition
	poster   Poster
	sessions Sessions
	observer Observer
	logger   logger.Logger

	mu      sync.Mutex
	values  Values
	errors  Errors
	state   State
	subs    map[int]func(field, message string)
	nextSub int
}

// New creates a form with every text field empty, every bool false and
// every error empty.
func New(def Definition, poster Poster, opts ...Option) (*Form, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	if poster == nil {
		return nil, errors.New("form " + def.Name + ": poster is required")
	}

	f := &Form{
		def:    def,
		poster: poster,
		values: make(Values, len(def.Fields)),
		errors: make(Errors, len(def.Fields)+1),
		subs:   make(map[int]func(string, string)),
	}
	for _, opt := range opts {
		opt(f)
	}
	if def.Success == SuccessLogin && f.sessions == nil {
		return nil, errors.New("form " + def.Name + ": login forms need a session store")
	}

	for _, field := range def.Fields {
		f.values[field.Name] = field.Kind.zero()
		f.errors[field.Name] = ""
	}
	f.errors[General] = ""
	return f, nil
}

// Definition returns the form definition.
func (f *Form) Definition() Definition {
	return f.def
}

// Change sets one field value and clears that field's error and the
// general error. It does not validate.
func (f *Form) Change(name string, value any) error {
	field, ok := f.def.Field(name)
	if !ok {
		return domain.ErrUnknownField.WithDetails(name)
	}
	if !kindMatches(field.Kind, value) {
		return domain.ErrFieldKind.WithDetails(name + " expects " + field.Kind.String())
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == StateClosed {
		return domain.ErrFormClosed.WithDetails(f.def.Name)
	}
	f.values[name] = value
	f.errors[name] = ""
	f.errors[General] = ""
	return nil
}

func kindMatches(k Kind, v any) bool {
	switch k {
	case KindBool:
		_, ok := v.(bool)
		return ok
	default:
		_, ok := v.(string)
		return ok
	}
}

// Values returns a copy of the current values.
func (f *Form) Values() Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values.Clone()
}

// Errors returns a copy of the current error record.
func (f *Form) Errors() Errors {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errors.Clone()
}

// State returns the controller state.
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// OnErrorRaised registers fn to run whenever an error slot goes from empty
// to non-empty. fn runs outside the form lock. The returned func removes it.
func (f *Form) OnErrorRaised(fn func(field, message string)) (cancel func()) {
	f.mu.Lock()
	id := f.nextSub
	f.nextSub++
	f.subs[id] = fn
	f.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.subs, id)
			f.mu.Unlock()
		})
	}
}

// Close unmounts the form. A submission still in flight completes but its
// result is discarded. Close is idempotent.
func (f *Form) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = StateClosed
	f.subs = make(map[int]func(string, string))
}

// Validate recomputes every field's error from the current values without
// publishing it.
func (f *Form) Validate() Errors {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.computeLocked()
}

func (f *Form) computeLocked() Errors {
	out := make(Errors, len(f.def.Fields)+1)
	for _, field := range f.def.Fields {
		out[field.Name] = field.Validate(f.values)
	}
	out[General] = ""
	return out
}

// Submit validates every field and, when all pass, posts the encoded
// body once and applies the response. All outcomes are reported through
// the Result and the error record; Submit returns no error.
func (f *Form) Submit(ctx context.Context) Result {
	start := time.Now()
	ctx = logger.EnsureRequestID(ctx)
	ctx = logger.WithOperation(ctx, "form."+f.def.Name)
	if f.logger != nil {
		ctx = logger.WithLogger(ctx, f.logger)
	}
	log := logger.L(ctx)
	requestID := logger.RequestIDFromContext(ctx)

	f.mu.Lock()
	switch f.state {
	case StateClosed:
		f.mu.Unlock()
		return f.finish(start, Result{Outcome: OutcomeDiscarded, RequestID: requestID})
	case StateSubmitting:
		errs := f.errors.Clone()
		f.mu.Unlock()
		log.Debug("submission already in flight")
		return f.finish(start, Result{Outcome: OutcomeBusy, Errors: errs, RequestID: requestID})
	}

	f.state = StateValidating
	computed := f.computeLocked()
	if computed.HasAny() {
		raised := f.publishLocked(computed)
		f.state = StateEditing
		errs := f.errors.Clone()
		subs := f.subscribersLocked()
		f.mu.Unlock()

		f.raise(subs, raised)
		log.Debug("form invalid", "fields", len(raised))
		return f.finish(start, Result{Outcome: OutcomeInvalid, Errors: errs, RequestID: requestID})
	}

	body := f.def.Body(f.values.Clone())
	f.state = StateSubmitting
	f.mu.Unlock()

	log.Debug("submitting form", "endpoint", f.def.Endpoint)
	r, err := f.send(ctx, body)

	f.mu.Lock()
	if f.state == StateClosed {
		f.mu.Unlock()
		log.Debug("form closed before response, discarding")
		return f.finish(start, Result{Outcome: OutcomeDiscarded, RequestID: requestID, StatusCode: r.status})
	}
	res := Result{RequestID: requestID, StatusCode: r.status}
	var raised []raisedError

	switch {
	case err != nil:
		msg := ConnectivityMessage
		if errors.Is(err, domain.ErrUnexpectedResponse) {
			msg = UnexpectedResponseMessage
		}
		log.Warn("form submission failed", "endpoint", f.def.Endpoint, "status", r.status, "error", err)
		raised = f.setGeneralLocked(msg)
		res.Outcome = OutcomeTransportFailed

	case r.success:
		if f.def.Success == SuccessLogin {
			if lerr := f.sessions.Login(ctx, r.token, r.user, r.company); lerr != nil {
				log.Warn("login response unusable", "error", lerr)
				raised = f.setGeneralLocked(UnexpectedResponseMessage)
				res.Outcome = OutcomeTransportFailed
				break
			}
		}
		f.clearLocked()
		res.Outcome = OutcomeSucceeded
		res.Redirect = r.redirect
		if res.Redirect == "" {
			res.Redirect = f.def.DefaultRedirect
		}
		log.Info("form submitted", "status", r.status, "redirect", res.Redirect)

	default:
		raised = f.rejectLocked(r)
		res.Outcome = OutcomeRejected
		log.Info("form rejected", "status", r.status)
	}

	f.state = StateEditing
	res.Errors = f.errors.Clone()
	subs := f.subscribersLocked()
	f.mu.Unlock()

	f.raise(subs, raised)
	return f.finish(start, res)
}

// send posts body and reads the reply. It never holds the form lock.
func (f *Form) send(ctx context.Context, body any) (reply, error) {
	resp, err := f.poster.Post(ctx, f.def.Endpoint, body)
	if err != nil {
		return reply{}, domain.ErrRequestFailed.WithCause(err)
	}
	defer resp.Body.Close()

	r, err := readReply(resp, f.def.Response)
	if err != nil {
		return r, err
	}
	if r.success && f.def.Success == SuccessLogin && r.token == "" {
		return r, domain.ErrUnexpectedResponse.WithDetails("success without token")
	}
	return r, nil
}

// raisedError is an error slot that went from empty to non-empty.
type raisedError struct {
	field   string
	message string
}

// publishLocked replaces the error record and returns the raised slots.
func (f *Form) publishLocked(next Errors) []raisedError {
	var raised []raisedError
	for _, name := range f.slots() {
		if f.errors[name] == "" && next[name] != "" {
			raised = append(raised, raisedError{field: name, message: next[name]})
		}
		f.errors[name] = next[name]
	}
	return raised
}

// slots lists every error key in display order, General last.
func (f *Form) slots() []string {
	names := make([]string, 0, len(f.def.Fields)+1)
	for _, field := range f.def.Fields {
		names = append(names, field.Name)
	}
	return append(names, General)
}

// setGeneralLocked sets only the general slot.
func (f *Form) setGeneralLocked(msg string) []raisedError {
	next := f.errors.Clone()
	next[General] = msg
	return f.publishLocked(next)
}

func (f *Form) clearLocked() {
	for k := range f.errors {
		f.errors[k] = ""
	}
}

// rejectLocked maps a business failure onto the closed field set. Server
// keys that are not fields are ignored.
func (f *Form) rejectLocked(r reply) []raisedError {
	next := make(Errors, len(f.def.Fields)+1)
	anyField := false
	for _, field := range f.def.Fields {
		msg := r.fields[field.Name]
		next[field.Name] = msg
		if msg != "" {
			anyField = true
		}
	}

	general := f.def.rewrite(r.message)
	if general == "" && !anyField {
		general = f.def.rejectedMessage()
	}
	next[General] = general
	return f.publishLocked(next)
}

func (f *Form) subscribersLocked() []func(string, string) {
	subs := make([]func(string, string), 0, len(f.subs))
	for _, fn := range f.subs {
		subs = append(subs, fn)
	}
	return subs
}

// raise notifies subscribers and the observer of new errors.
func (f *Form) raise(subs []func(string, string), raised []raisedError) {
	for _, r := range raised {
		if f.observer != nil && r.field != General {
			f.observer.ObserveFieldError(f.def.Name, r.field)
		}
		for _, fn := range subs {
			fn(r.field, r.message)
		}
	}
}

func (f *Form) finish(start time.Time, res Result) Result {
	if f.observer != nil {
		f.observer.ObserveSubmit(f.def.Name, string(res.Outcome), time.Since(start))
	}
	return res
}
