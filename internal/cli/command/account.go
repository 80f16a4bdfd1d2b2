package command

import (
	"encoding/json"

	"github.com/urfave/cli/v2"

	"github.com/fretehub/fretehub-go/internal/account"
	"github.com/fretehub/fretehub-go/internal/cli/connection"
	"github.com/fretehub/fretehub-go/internal/core/domain"
	"github.com/fretehub/fretehub-go/internal/form"
	"github.com/fretehub/fretehub-go/internal/session"
	"github.com/fretehub/fretehub-go/pkg/token"
)

// LoginCommand returns the login command.
func LoginCommand() *cli.Command {
	def := account.Login()
	return &cli.Command{
		Name:   "login",
		Usage:  "Sign in with email and password",
		Flags:  formFlags(def),
		Action: formAction(def, "Signed in"),
	}
}

// RegisterCommand returns the register command.
func RegisterCommand() *cli.Command {
	def := account.Register()
	return &cli.Command{
		Name:   "register",
		Usage:  "Create an account and sign in",
		Flags:  formFlags(def),
		Action: formAction(def, "Account created"),
	}
}

// TrialCommand returns the trial command.
func TrialCommand() *cli.Command {
	def := account.Trial()
	return &cli.Command{
		Name:   "trial",
		Usage:  "Start a free trial",
		Flags:  formFlags(def),
		Action: formAction(def, "Trial requested"),
	}
}

// CompanyCommand returns the company subcommand group.
func CompanyCommand() *cli.Command {
	def := account.Company()
	return &cli.Command{
		Name:  "company",
		Usage: "Manage company details",
		Subcommands: []*cli.Command{
			{
				Name:   "register",
				Usage:  "Register company details",
				Flags:  formFlags(def),
				Action: formAction(def, "Company registered"),
			},
		},
	}
}

func formAction(def form.Definition, msg string) cli.ActionFunc {
	return func(c *cli.Context) error {
		res, err := submitForm(c, def)
		if err != nil {
			return err
		}
		if err := checkResult(c, def, res); err != nil {
			return err
		}
		return reportSuccess(c, def, res, msg)
	}
}

// LogoutCommand returns the logout command.
func LogoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "Sign out and forget the stored session",
		Action: func(c *cli.Context) error {
			session.FromContext(c.Context).Logout(c.Context)
			GetRuntime(c).Printer().Successf("Signed out")
			return nil
		},
	}
}

// WhoamiCommand returns the whoami command.
func WhoamiCommand() *cli.Command {
	return &cli.Command{
		Name:   "whoami",
		Usage:  "Show the signed-in user",
		Before: requireSession,
		Action: whoami,
	}
}

type whoamiView struct {
	Server  string `json:"server" yaml:"server"`
	Token   string `json:"token" yaml:"token"`
	User    any    `json:"user" yaml:"user"`
	Company any    `json:"company" yaml:"company"`
}

func whoami(c *cli.Context) error {
	rt := GetRuntime(c)
	sess := session.FromContext(c.Context).Session()

	return rt.Printer().Print(whoamiView{
		Server:  connection.NormalizeServer(rt.Config().Server),
		Token:   token.Mask(sess.Token),
		User:    decodeRecord(sess.User),
		Company: decodeRecord(sess.Company),
	})
}

// decodeRecord returns raw as a generic value for formatting.
func decodeRecord(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	return v
}

// requireSession rejects the command unless a session is signed in.
func requireSession(c *cli.Context) error {
	if !session.FromContext(c.Context).IsAuthenticated() {
		return domain.ErrNotAuthenticated.WithDetails("run 'fretehub-cli login' first")
	}
	return nil
}

// displayName returns the user's email or name, if the record has one.
func displayName(sess domain.Session) string {
	var user struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if len(sess.User) == 0 || json.Unmarshal(sess.User, &user) != nil {
		return ""
	}
	if user.Email != "" {
		return user.Email
	}
	return user.Name
}
