package command

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/urfave/cli/v2"

	"github.com/fretehub/fretehub-go/internal/cli/output"
	"github.com/fretehub/fretehub-go/internal/cli/prompt"
	"github.com/fretehub/fretehub-go/internal/form"
	"github.com/fretehub/fretehub-go/internal/session"
)

// maxAttempts bounds how often invalid fields are asked for again.
const maxAttempts = 3

// FormError reports a submission that did not succeed.
type FormError struct {
	Form    string
	Outcome form.Outcome
	Message string
	Fields  map[string]string
}

func (e *FormError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if n := len(e.Fields); n > 0 {
		return fmt.Sprintf("%s: %d invalid field(s)", e.Form, n)
	}
	return fmt.Sprintf("%s: %s", e.Form, e.Outcome)
}

// submitReport is printed for json and yaml output.
type submitReport struct {
	Form      string `json:"form" yaml:"form"`
	Outcome   string `json:"outcome" yaml:"outcome"`
	Redirect  string `json:"redirect" yaml:"redirect"`
	RequestID string `json:"request_id" yaml:"request_id"`
}

// flagName turns a field name such as confirmPassword into confirm-password.
func flagName(field string) string {
	var b strings.Builder
	for i, r := range field {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('-')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// envName turns a field name into FRETEHUB_<FIELD>, e.g. FRETEHUB_PASSWORD.
func envName(field string) string {
	return "FRETEHUB_" + strings.ToUpper(strings.ReplaceAll(flagName(field), "-", "_"))
}

// formFlags returns one flag per field. Secret fields can also be passed
// through the environment so they stay out of shell history.
func formFlags(def form.Definition) []cli.Flag {
	flags := make([]cli.Flag, 0, len(def.Fields))
	for _, field := range def.Fields {
		usage := field.Label
		if len(field.Options) > 0 && len(field.Options) <= 5 {
			usage += " (" + strings.Join(field.Options, ", ") + ")"
		}

		if field.Kind == form.KindBool {
			flags = append(flags, &cli.BoolFlag{Name: flagName(field.Name), Usage: usage})
			continue
		}
		flag := &cli.StringFlag{Name: flagName(field.Name), Usage: usage}
		if field.Secret {
			flag.EnvVars = []string{envName(field.Name)}
		}
		flags = append(flags, flag)
	}
	return flags
}

// submitForm fills def from flags, asks for missing values and submits.
// After a validation failure the invalid fields are asked for again, up
// to maxAttempts submissions. The returned error is non-nil only when
// the form could not be set up; outcomes are in the Result.
func submitForm(c *cli.Context, def form.Definition) (form.Result, error) {
	rt := GetRuntime(c)

	opts := []form.Option{
		form.WithObserver(rt.Metrics()),
		form.WithLogger(rt.Logger()),
	}
	if def.Success == form.SuccessLogin {
		opts = append(opts, form.WithSessions(session.FromContext(c.Context)))
	}

	f, err := form.New(def, rt.Client(), opts...)
	if err != nil {
		return form.Result{}, err
	}
	defer f.Close()

	var missing []form.Field
	for _, field := range def.Fields {
		name := flagName(field.Name)
		if !c.IsSet(name) {
			missing = append(missing, field)
			continue
		}
		var value any = c.String(name)
		if field.Kind == form.KindBool {
			value = c.Bool(name)
		}
		if err := f.Change(field.Name, value); err != nil {
			return form.Result{}, err
		}
	}

	interactive := rt.CanPrompt()
	if interactive {
		interactive = askFields(rt.Prompter(), f, missing)
	}

	for attempt := 1; ; attempt++ {
		res := submitOnce(c, rt, f)
		if res.Outcome != form.OutcomeInvalid || !interactive || attempt >= maxAttempts {
			return res, nil
		}

		printFieldErrors(rt.Printer(), def, res.Errors)
		var invalid []form.Field
		for _, name := range res.InvalidFields(def.Fields) {
			field, _ := def.Field(name)
			invalid = append(invalid, field)
		}
		if !askFields(rt.Prompter(), f, invalid) {
			return res, nil
		}
	}
}

func submitOnce(c *cli.Context, rt *Runtime, f *form.Form) form.Result {
	if !rt.Prompter().Interactive() {
		return f.Submit(c.Context)
	}
	spinner := output.NewSpinner(rt.Printer().Err(), "Submitting...")
	spinner.Start()
	defer spinner.Stop()
	return f.Submit(c.Context)
}

// askFields asks for each field in order. It reports false when input
// ran out, in which case the remaining fields keep their values.
func askFields(p *prompt.Prompter, f *form.Form, fields []form.Field) bool {
	for _, field := range fields {
		var (
			value any
			err   error
		)
		switch {
		case field.Kind == form.KindBool:
			value, err = p.Confirm(field.Label, false)
		case field.Secret:
			value, err = p.Secret(field.Label)
		case len(field.Options) > 0:
			value, err = p.Choice(field.Label, field.Options)
		default:
			value, err = p.Line(field.Label)
		}
		if err != nil {
			return false
		}
		if err := f.Change(field.Name, value); err != nil {
			return false
		}
	}
	return true
}

// printFieldErrors lists field messages in form order.
func printFieldErrors(p *output.Printer, def form.Definition, errs form.Errors) {
	for _, field := range def.Fields {
		if msg := errs[field.Name]; msg != "" {
			p.Errorf("%s: %s", field.Label, msg)
		}
	}
}

// checkResult turns an unsuccessful result into a *FormError after
// printing its field messages.
func checkResult(c *cli.Context, def form.Definition, res form.Result) error {
	if res.Succeeded() {
		return nil
	}

	printFieldErrors(GetRuntime(c).Printer(), def, res.Errors)

	fields := make(map[string]string)
	for _, name := range res.InvalidFields(def.Fields) {
		fields[name] = res.Errors[name]
	}
	return &FormError{
		Form:    def.Name,
		Outcome: res.Outcome,
		Message: res.Errors.General(),
		Fields:  fields,
	}
}

// reportSuccess prints msg and the next page, or a report in json/yaml.
func reportSuccess(c *cli.Context, def form.Definition, res form.Result, msg string) error {
	p := GetRuntime(c).Printer()
	if p.Format() != output.FormatTable {
		return p.Print(submitReport{
			Form:      def.Name,
			Outcome:   string(res.Outcome),
			Redirect:  res.Redirect,
			RequestID: res.RequestID,
		})
	}
	p.Successf("%s", msg)
	p.Infof("Next: %s", res.Redirect)
	return nil
}

// IsFormError reports whether err is a form submission failure with the
// given outcome.
func IsFormError(err error, outcome form.Outcome) bool {
	var fe *FormError
	return errors.As(err, &fe) && fe.Outcome == outcome
}
