package form

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fretehub/fretehub-go/internal/core/domain"
)

// fakePoster answers every Post with a canned response.
type fakePoster struct {
	mu     sync.Mutex
	status int
	body   string
	err    error
	calls  int
	paths  []string
	bodies []map[string]any

	// block, when set, holds Post until it is closed.
	block   chan struct{}
	started chan struct{}
}

func (p *fakePoster) Post(ctx context.Context, path string, body any) (*http.Response, error) {
	p.mu.Lock()
	p.calls++
	p.paths = append(p.paths, path)
	var decoded map[string]any
	raw, _ := json.Marshal(body)
	_ = json.Unmarshal(raw, &decoded)
	p.bodies = append(p.bodies, decoded)
	block, started := p.block, p.started
	p.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if block != nil {
		<-block
	}
	if p.err != nil {
		return nil, p.err
	}

	rec := httptest.NewRecorder()
	status := p.status
	if status == 0 {
		status = http.StatusOK
	}
	rec.WriteHeader(status)
	_, _ = io.WriteString(rec, p.body)
	return rec.Result(), nil
}

func (p *fakePoster) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

type fakeSessions struct {
	token   string
	user    json.RawMessage
	company json.RawMessage
	calls   int
}

func (s *fakeSessions) Login(_ context.Context, token string, user, company json.RawMessage) error {
	s.calls++
	if token == "" {
		return domain.ErrEmptyToken
	}
	s.token, s.user, s.company = token, user, company
	return nil
}

type fakeObserver struct {
	mu       sync.Mutex
	outcomes []string
	fields   []string
}

func (o *fakeObserver) ObserveSubmit(_, outcome string, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.outcomes = append(o.outcomes, outcome)
}

func (o *fakeObserver) ObserveFieldError(_, field string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.fields = append(o.fields, field)
}

func loginDefinition() Definition {
	return Definition{
		Name:     "login",
		Endpoint: "/api/login",
		Fields: []Field{
			{Name: "email", Rules: []Rule{Required("Email is required"), Email("Invalid email")}},
			{Name: "password", Secret: true, Rules: []Rule{Required("Password is required"), MinLength(6, "Too short")}},
		},
		Success:         SuccessLogin,
		DefaultRedirect: "/dashboard",
		RewriteGeneral: map[string]string{
			"Internal server Error": "Invalid credentials",
			"Internal server error": "Invalid credentials",
		},
	}
}

func registerDefinition() Definition {
	return Definition{
		Name:     "register",
		Endpoint: "/api/register",
		Fields: []Field{
			{Name: "email", Rules: []Rule{Required("Email is required"), Email("Invalid email")}},
			{Name: "password", Rules: []Rule{Required("Password is required"), MinLength(6, "Too short")}},
			{Name: "confirmPassword", Omit: true, Rules: []Rule{Required("Confirm"), Matches("password", "Passwords do not match")}},
			{Name: "terms", Kind: KindBool, Omit: true, Rules: []Rule{Accepted("Accept the terms")}},
		},
		Success:         SuccessLogin,
		DefaultRedirect: "/dashboard",
	}
}

func newTestForm(t *testing.T, def Definition, p Poster, opts ...Option) *Form {
	t.Helper()
	f, err := New(def, p, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return f
}

func mustChange(t *testing.T, f *Form, name string, value any) {
	t.Helper()
	if err := f.Change(name, value); err != nil {
		t.Fatalf("Change(%q) error = %v", name, err)
	}
}

func TestNew_InitialState(t *testing.T) {
	f := newTestForm(t, registerDefinition(), &fakePoster{}, WithSessions(&fakeSessions{}))

	values := f.Values()
	if values["email"] != "" || values["terms"] != false {
		t.Errorf("initial values = %v", values)
	}

	errs := f.Errors()
	if len(errs) != 5 {
		t.Errorf("errors has %d keys, want 5 (4 fields + general)", len(errs))
	}
	for k, msg := range errs {
		if msg != "" {
			t.Errorf("errors[%q] = %q, want empty", k, msg)
		}
	}
	if f.State() != StateEditing {
		t.Errorf("State() = %v, want editing", f.State())
	}
}

func TestNew_InvalidDefinition(t *testing.T) {
	tests := []struct {
		name string
		def  Definition
	}{
		{"no name", Definition{Endpoint: "/x", Fields: []Field{{Name: "a"}}}},
		{"relative endpoint", Definition{Name: "x", Endpoint: "x", Fields: []Field{{Name: "a"}}}},
		{"no fields", Definition{Name: "x", Endpoint: "/x"}},
		{"reserved field", Definition{Name: "x", Endpoint: "/x", Fields: []Field{{Name: General}}}},
		{"duplicate field", Definition{Name: "x", Endpoint: "/x", Fields: []Field{{Name: "a"}, {Name: "a"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.def, &fakePoster{}); err == nil {
				t.Error("New() expected error")
			}
		})
	}
}

func TestNew_LoginFormNeedsSessions(t *testing.T) {
	if _, err := New(loginDefinition(), &fakePoster{}); err == nil {
		t.Error("New() expected error without session store")
	}
}

func TestChange_Errors(t *testing.T) {
	f := newTestForm(t, registerDefinition(), &fakePoster{}, WithSessions(&fakeSessions{}))

	if err := f.Change("unknown", "x"); !errors.Is(err, domain.ErrUnknownField) {
		t.Errorf("Change(unknown) error = %v, want ErrUnknownField", err)
	}
	if err := f.Change("terms", "yes"); !errors.Is(err, domain.ErrFieldKind) {
		t.Errorf("Change(terms, string) error = %v, want ErrFieldKind", err)
	}
	if err := f.Change("email", true); !errors.Is(err, domain.ErrFieldKind) {
		t.Errorf("Change(email, bool) error = %v, want ErrFieldKind", err)
	}

	f.Close()
	if err := f.Change("email", "a@b.com"); !errors.Is(err, domain.ErrFormClosed) {
		t.Errorf("Change after Close error = %v, want ErrFormClosed", err)
	}
}

func TestChange_ClearsFieldAndGeneral(t *testing.T) {
	p := &fakePoster{err: errors.New("connection refused")}
	f := newTestForm(t, loginDefinition(), p, WithSessions(&fakeSessions{}))

	res := f.Submit(context.Background())
	if res.Errors["email"] == "" {
		t.Fatal("expected email error after empty submit")
	}

	mustChange(t, f, "email", "anything")
	errs := f.Errors()
	if errs["email"] != "" {
		t.Errorf("errors.email = %q, want empty after edit", errs["email"])
	}
	if errs.General() != "" {
		t.Errorf("errors.general = %q, want empty after edit", errs.General())
	}
	if errs["password"] == "" {
		t.Error("editing email must not clear the password error")
	}
}

func TestSubmit_ValidLogin(t *testing.T) {
	p := &fakePoster{body: `{"success":true,"data":{"token":"T","user":{},"company":{},"meta":{"redirectTo":"/dashboard"}}}`}
	s := &fakeSessions{}
	f := newTestForm(t, loginDefinition(), p, WithSessions(s))

	mustChange(t, f, "email", "a@b.com")
	mustChange(t, f, "password", "abcdef")
	res := f.Submit(context.Background())

	if res.Outcome != OutcomeSucceeded {
		t.Fatalf("Outcome = %s, want succeeded (errors %v)", res.Outcome, res.Errors)
	}
	if res.Redirect != "/dashboard" {
		t.Errorf("Redirect = %q, want /dashboard", res.Redirect)
	}
	if s.token != "T" {
		t.Errorf("session token = %q, want T", s.token)
	}
	if p.callCount() != 1 {
		t.Errorf("Post called %d times, want 1", p.callCount())
	}
	if p.paths[0] != "/api/login" {
		t.Errorf("path = %q", p.paths[0])
	}
	if p.bodies[0]["email"] != "a@b.com" || p.bodies[0]["password"] != "abcdef" {
		t.Errorf("body = %v", p.bodies[0])
	}
	if res.Errors.HasAny() {
		t.Errorf("errors after success = %v", res.Errors)
	}
	if res.RequestID == "" {
		t.Error("RequestID is empty")
	}
}

func TestSubmit_DefaultRedirect(t *testing.T) {
	p := &fakePoster{body: `{"success":true,"data":{"token":"T"}}`}
	f := newTestForm(t, loginDefinition(), p, WithSessions(&fakeSessions{}))
	mustChange(t, f, "email", "a@b.com")
	mustChange(t, f, "password", "abcdef")

	res := f.Submit(context.Background())
	if res.Redirect != "/dashboard" {
		t.Errorf("Redirect = %q, want default /dashboard", res.Redirect)
	}
}

func TestSubmit_MismatchedConfirmation(t *testing.T) {
	p := &fakePoster{}
	f := newTestForm(t, registerDefinition(), p, WithSessions(&fakeSessions{}))

	mustChange(t, f, "email", "a@b.com")
	mustChange(t, f, "password", "abcdef1")
	mustChange(t, f, "confirmPassword", "abcdef2")
	mustChange(t, f, "terms", true)

	res := f.Submit(context.Background())
	if res.Outcome != OutcomeInvalid {
		t.Fatalf("Outcome = %s, want invalid", res.Outcome)
	}
	if res.Errors["confirmPassword"] == "" {
		t.Error("errors.confirmPassword is empty")
	}
	if p.callCount() != 0 {
		t.Errorf("Post called %d times, want 0", p.callCount())
	}
}

func TestSubmit_OmittedFieldsNotSent(t *testing.T) {
	p := &fakePoster{body: `{"success":true,"data":{"token":"T"}}`}
	f := newTestForm(t, registerDefinition(), p, WithSessions(&fakeSessions{}))

	mustChange(t, f, "email", "a@b.com")
	mustChange(t, f, "password", "abcdef")
	mustChange(t, f, "confirmPassword", "abcdef")
	mustChange(t, f, "terms", true)

	if res := f.Submit(context.Background()); res.Outcome != OutcomeSucceeded {
		t.Fatalf("Outcome = %s, errors %v", res.Outcome, res.Errors)
	}
	body := p.bodies[0]
	if _, ok := body["confirmPassword"]; ok {
		t.Error("confirmPassword was transmitted")
	}
	if _, ok := body["terms"]; ok {
		t.Error("terms was transmitted")
	}
	if len(body) != 2 {
		t.Errorf("body = %v, want email and password only", body)
	}
}

func TestSubmit_SendsTrimmedText(t *testing.T) {
	p := &fakePoster{body: `{"success":true,"data":{"token":"T"}}`}
	f := newTestForm(t, loginDefinition(), p, WithSessions(&fakeSessions{}))

	mustChange(t, f, "email", "  a@b.com  ")
	mustChange(t, f, "password", " secret1 ")

	if res := f.Submit(context.Background()); res.Outcome != OutcomeSucceeded {
		t.Fatalf("Outcome = %s, errors %v", res.Outcome, res.Errors)
	}
	body := p.bodies[0]
	if body["email"] != "a@b.com" {
		t.Errorf("email sent = %q, want %q", body["email"], "a@b.com")
	}
	if body["password"] != " secret1 " {
		t.Errorf("password sent = %q, want it unchanged", body["password"])
	}
	if got := f.Values().Text("email"); got != "  a@b.com  " {
		t.Errorf("form value = %q, want the typed value kept", got)
	}
}

func TestSubmit_ServerBusinessFailure(t *testing.T) {
	p := &fakePoster{
		status: http.StatusBadRequest,
		body:   `{"success":false,"error":{"email":"já cadastrado","role":"admin"},"message":"Erro ao registrar"}`,
	}
	s := &fakeSessions{}
	f := newTestForm(t, registerDefinition(), p, WithSessions(s))

	mustChange(t, f, "email", "a@b.com")
	mustChange(t, f, "password", "abcdef")
	mustChange(t, f, "confirmPassword", "abcdef")
	mustChange(t, f, "terms", true)

	res := f.Submit(context.Background())
	if res.Outcome != OutcomeRejected {
		t.Fatalf("Outcome = %s, want rejected", res.Outcome)
	}
	if res.Errors["email"] != "já cadastrado" {
		t.Errorf("errors.email = %q", res.Errors["email"])
	}
	if res.Errors.General() != "Erro ao registrar" {
		t.Errorf("errors.general = %q", res.Errors.General())
	}
	if res.Errors["password"] != "" {
		t.Errorf("errors.password = %q, want empty", res.Errors["password"])
	}
	if _, ok := res.Errors["role"]; ok {
		t.Error("server key outside the field set leaked into errors")
	}
	if s.calls != 0 {
		t.Error("session login called on business failure")
	}
	if res.StatusCode != http.StatusBadRequest {
		t.Errorf("StatusCode = %d", res.StatusCode)
	}
}

func TestSubmit_LoginRewrite(t *testing.T) {
	for _, msg := range []string{"Internal server Error", "Internal server error"} {
		t.Run(msg, func(t *testing.T) {
			p := &fakePoster{status: 500, body: `{"success":false,"message":"` + msg + `"}`}
			f := newTestForm(t, loginDefinition(), p, WithSessions(&fakeSessions{}))
			mustChange(t, f, "email", "a@b.com")
			mustChange(t, f, "password", "abcdef")

			res := f.Submit(context.Background())
			if res.Errors.General() != "Invalid credentials" {
				t.Errorf("errors.general = %q, want Invalid credentials", res.Errors.General())
			}
		})
	}
}

func TestSubmit_NoRewriteWithoutRule(t *testing.T) {
	p := &fakePoster{body: `{"success":false,"message":"Internal server error"}`}
	f := newTestForm(t, registerDefinition(), p, WithSessions(&fakeSessions{}))
	mustChange(t, f, "email", "a@b.com")
	mustChange(t, f, "password", "abcdef")
	mustChange(t, f, "confirmPassword", "abcdef")
	mustChange(t, f, "terms", true)

	res := f.Submit(context.Background())
	if res.Errors.General() != "Internal server error" {
		t.Errorf("errors.general = %q, want server message verbatim", res.Errors.General())
	}
}

func TestSubmit_RejectedWithoutMessage(t *testing.T) {
	p := &fakePoster{body: `{"success":false}`}
	f := newTestForm(t, loginDefinition(), p, WithSessions(&fakeSessions{}))
	mustChange(t, f, "email", "a@b.com")
	mustChange(t, f, "password", "abcdef")

	res := f.Submit(context.Background())
	if res.Errors.General() != DefaultRejectedMessage {
		t.Errorf("errors.general = %q, want default rejected message", res.Errors.General())
	}
}

func TestSubmit_TransportFailureKeepsFieldErrors(t *testing.T) {
	p := &fakePoster{
		status: http.StatusConflict,
		body:   `{"success":false,"error":{"email":"taken"},"message":"failed"}`,
	}
	f := newTestForm(t, loginDefinition(), p, WithSessions(&fakeSessions{}))
	mustChange(t, f, "email", "a@b.com")
	mustChange(t, f, "password", "abcdef")

	if res := f.Submit(context.Background()); res.Errors["email"] != "taken" {
		t.Fatalf("setup: errors.email = %q", res.Errors["email"])
	}

	// Change password only; the server-set email error stays.
	mustChange(t, f, "password", "abcdefg")
	p.err = errors.New("dial tcp: connection refused")

	res := f.Submit(context.Background())
	if res.Outcome != OutcomeTransportFailed {
		t.Fatalf("Outcome = %s, want transport_failed", res.Outcome)
	}
	if res.Errors.General() != ConnectivityMessage {
		t.Errorf("errors.general = %q", res.Errors.General())
	}
	if res.Errors["email"] != "taken" {
		t.Errorf("errors.email = %q, want untouched", res.Errors["email"])
	}
	if res.StatusCode != 0 {
		t.Errorf("StatusCode = %d, want 0", res.StatusCode)
	}
}

func TestSubmit_UnexpectedResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"html", "<html>bad gateway</html>"},
		{"empty", ""},
		{"success without token", `{"success":true,"data":{}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &fakeSessions{}
			f := newTestForm(t, loginDefinition(), &fakePoster{body: tt.body}, WithSessions(s))
			mustChange(t, f, "email", "a@b.com")
			mustChange(t, f, "password", "abcdef")

			res := f.Submit(context.Background())
			if res.Outcome != OutcomeTransportFailed {
				t.Errorf("Outcome = %s, want transport_failed", res.Outcome)
			}
			if res.Errors.General() != UnexpectedResponseMessage {
				t.Errorf("errors.general = %q", res.Errors.General())
			}
			if s.calls != 0 {
				t.Error("session login called")
			}
		})
	}
}

func TestSubmit_FullRecomputation(t *testing.T) {
	p := &fakePoster{}
	f := newTestForm(t, registerDefinition(), p, WithSessions(&fakeSessions{}))

	mustChange(t, f, "email", "bad")
	mustChange(t, f, "password", "abcdef")
	mustChange(t, f, "confirmPassword", "abcdef")

	first := f.Submit(context.Background())
	if first.Errors["email"] == "" || first.Errors["terms"] == "" {
		t.Fatalf("first attempt errors = %v", first.Errors)
	}

	// Fix email only; terms is still unaccepted.
	mustChange(t, f, "email", "a@b.com")
	second := f.Submit(context.Background())
	if second.Errors["email"] != "" {
		t.Errorf("errors.email = %q, want empty", second.Errors["email"])
	}
	if second.Errors["terms"] == "" {
		t.Error("errors.terms is empty, want still invalid")
	}
	if p.callCount() != 0 {
		t.Errorf("Post called %d times, want 0", p.callCount())
	}
}

func TestSubmit_StatusMode(t *testing.T) {
	def := Definition{
		Name:            "company",
		Endpoint:        "/api/register",
		Fields:          []Field{{Name: "companyName", Rules: []Rule{Required("required")}}},
		Response:        ResponseStatus,
		DefaultRedirect: "/dashboard",
		RejectedMessage: "Could not save company",
		Encode: func(v Values) any {
			return map[string]string{"name": v.TrimmedText("companyName")}
		},
	}

	t.Run("2xx", func(t *testing.T) {
		p := &fakePoster{status: http.StatusCreated, body: "not json"}
		f := newTestForm(t, def, p)
		mustChange(t, f, "companyName", " Frete ")

		res := f.Submit(context.Background())
		if res.Outcome != OutcomeSucceeded || res.Redirect != "/dashboard" {
			t.Errorf("Result = %+v", res)
		}
		if p.bodies[0]["name"] != "Frete" {
			t.Errorf("encoded body = %v", p.bodies[0])
		}
	})

	t.Run("non-2xx", func(t *testing.T) {
		p := &fakePoster{status: http.StatusUnprocessableEntity, body: `{"success":true}`}
		f := newTestForm(t, def, p)
		mustChange(t, f, "companyName", "Frete")

		res := f.Submit(context.Background())
		if res.Outcome != OutcomeRejected {
			t.Errorf("Outcome = %s, want rejected", res.Outcome)
		}
		if res.Errors.General() != "Could not save company" {
			t.Errorf("errors.general = %q", res.Errors.General())
		}
	})
}

func TestSubmit_BusyWhilePending(t *testing.T) {
	p := &fakePoster{
		body:    `{"success":true,"data":{"token":"T"}}`,
		block:   make(chan struct{}),
		started: make(chan struct{}, 1),
	}
	f := newTestForm(t, loginDefinition(), p, WithSessions(&fakeSessions{}))
	mustChange(t, f, "email", "a@b.com")
	mustChange(t, f, "password", "abcdef")

	done := make(chan Result, 1)
	go func() { done <- f.Submit(context.Background()) }()
	<-p.started

	if f.State() != StateSubmitting {
		t.Errorf("State() = %v, want submitting", f.State())
	}
	if res := f.Submit(context.Background()); res.Outcome != OutcomeBusy {
		t.Errorf("second Submit Outcome = %s, want busy", res.Outcome)
	}

	close(p.block)
	if res := <-done; res.Outcome != OutcomeSucceeded {
		t.Errorf("first Submit Outcome = %s", res.Outcome)
	}
	if p.callCount() != 1 {
		t.Errorf("Post called %d times, want 1", p.callCount())
	}
	if f.State() != StateEditing {
		t.Errorf("State() = %v, want editing", f.State())
	}
}

func TestSubmit_DiscardAfterClose(t *testing.T) {
	p := &fakePoster{
		status:  http.StatusBadRequest,
		body:    `{"success":false,"error":{"email":"taken"},"message":"failed"}`,
		block:   make(chan struct{}),
		started: make(chan struct{}, 1),
	}
	s := &fakeSessions{}
	f := newTestForm(t, loginDefinition(), p, WithSessions(s))
	mustChange(t, f, "email", "a@b.com")
	mustChange(t, f, "password", "abcdef")

	raised := 0
	f.OnErrorRaised(func(string, string) { raised++ })

	done := make(chan Result, 1)
	go func() { done <- f.Submit(context.Background()) }()
	<-p.started

	f.Close()
	close(p.block)

	res := <-done
	if res.Outcome != OutcomeDiscarded {
		t.Errorf("Outcome = %s, want discarded", res.Outcome)
	}
	if errs := f.Errors(); errs.HasAny() {
		t.Errorf("errors mutated after close: %v", errs)
	}
	if raised != 0 {
		t.Errorf("OnErrorRaised fired %d times after close", raised)
	}
	if f.State() != StateClosed {
		t.Errorf("State() = %v, want closed", f.State())
	}
	if res := f.Submit(context.Background()); res.Outcome != OutcomeDiscarded {
		t.Errorf("Submit after close Outcome = %s", res.Outcome)
	}
}

func TestOnErrorRaised(t *testing.T) {
	f := newTestForm(t, loginDefinition(), &fakePoster{}, WithSessions(&fakeSessions{}))

	var got []string
	cancel := f.OnErrorRaised(func(field, message string) {
		got = append(got, field+"="+message)
	})

	f.Submit(context.Background())
	want := "email=Email is required,password=Password is required"
	if strings.Join(got, ",") != want {
		t.Errorf("raised = %v, want %s", got, want)
	}

	// Errors already non-empty do not fire again.
	got = nil
	f.Submit(context.Background())
	if len(got) != 0 {
		t.Errorf("raised again = %v", got)
	}

	// Cleared then raised again fires.
	mustChange(t, f, "email", "bad")
	f.Submit(context.Background())
	if len(got) != 1 || got[0] != "email=Invalid email" {
		t.Errorf("raised after edit = %v", got)
	}

	cancel()
	cancel()
	mustChange(t, f, "email", "")
	got = nil
	f.Submit(context.Background())
	if len(got) != 0 {
		t.Errorf("raised after cancel = %v", got)
	}
}

func TestObserver(t *testing.T) {
	o := &fakeObserver{}
	p := &fakePoster{body: `{"success":true,"data":{"token":"T"}}`}
	f := newTestForm(t, loginDefinition(), p, WithSessions(&fakeSessions{}), WithObserver(o))

	f.Submit(context.Background())
	mustChange(t, f, "email", "a@b.com")
	mustChange(t, f, "password", "abcdef")
	f.Submit(context.Background())

	wantOutcomes := []string{"invalid", "succeeded"}
	if strings.Join(o.outcomes, ",") != strings.Join(wantOutcomes, ",") {
		t.Errorf("outcomes = %v, want %v", o.outcomes, wantOutcomes)
	}
	if strings.Join(o.fields, ",") != "email,password" {
		t.Errorf("field errors = %v", o.fields)
	}
}

func TestDecodeFieldErrors(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		message     string
		wantFields  map[string]string
		wantMessage string
	}{
		{"object", `{"email":"taken","n":1}`, "m", map[string]string{"email": "taken"}, "m"},
		{"string fills message", `"boom"`, "", nil, "boom"},
		{"string keeps message", `"boom"`, "m", nil, "m"},
		{"null", `null`, "m", nil, "m"},
		{"absent", ``, "m", nil, "m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields, msg := decodeFieldErrors(json.RawMessage(tt.raw), tt.message)
			if msg != tt.wantMessage {
				t.Errorf("message = %q, want %q", msg, tt.wantMessage)
			}
			if len(fields) != len(tt.wantFields) {
				t.Fatalf("fields = %v, want %v", fields, tt.wantFields)
			}
			for k, v := range tt.wantFields {
				if fields[k] != v {
					t.Errorf("fields[%q] = %q, want %q", k, fields[k], v)
				}
			}
		})
	}
}
