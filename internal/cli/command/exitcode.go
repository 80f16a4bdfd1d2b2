package command

import (
	"context"
	"errors"

	"github.com/fretehub/fretehub-go/internal/core/domain"
	"github.com/fretehub/fretehub-go/internal/form"
)

// Exit statuses of fretehub-cli. The last three follow sysexits.h and the
// shell convention for SIGINT.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitInvalid     = 2
	ExitRejected    = 3
	ExitAuth        = 4
	ExitUnavailable = 69
	ExitConfig      = 78
	ExitInterrupted = 130
)

// ExitCode maps a command error to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if errors.Is(err, context.Canceled) {
		return ExitInterrupted
	}

	var fe *FormError
	if errors.As(err, &fe) {
		switch fe.Outcome {
		case form.OutcomeInvalid:
			return ExitInvalid
		case form.OutcomeRejected:
			return ExitRejected
		case form.OutcomeTransportFailed:
			return ExitUnavailable
		}
		return ExitFailure
	}

	if errors.Is(err, domain.ErrNotAuthenticated) || errors.Is(err, domain.ErrUnauthorized) {
		return ExitAuth
	}
	switch domain.GetErrorArea(err) {
	case "NET":
		return ExitUnavailable
	case "CFG":
		return ExitConfig
	}
	return ExitFailure
}
