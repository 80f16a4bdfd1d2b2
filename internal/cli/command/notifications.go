package command

import (
	"github.com/urfave/cli/v2"

	"github.com/fretehub/fretehub-go/internal/account"
	"github.com/fretehub/fretehub-go/internal/cli/output"
	"github.com/fretehub/fretehub-go/internal/session"
)

// NotificationsCommand returns the notifications command.
func NotificationsCommand() *cli.Command {
	return &cli.Command{
		Name:    "notifications",
		Aliases: []string{"notif"},
		Usage:   "List notifications for the signed-in user",
		Before:  requireSession,
		Action:  notificationsList,
	}
}

func notificationsList(c *cli.Context) error {
	rt := GetRuntime(c)
	sess := session.FromContext(c.Context).Session()

	items, err := account.Notifications(c.Context, rt.Client(), sess)
	if err != nil {
		return err
	}

	p := rt.Printer()
	if len(items) == 0 && p.Format() == output.FormatTable {
		p.Infof("No notifications")
		return nil
	}
	return p.Print(items)
}
