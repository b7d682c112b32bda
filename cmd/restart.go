package cmd

import (
	"github.com/spf13/cobra"

	"github.com/beardo/toggl-tui/internal/render"
	"github.com/beardo/toggl-tui/internal/tracker"
)

func newRestartCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "restart",
		Short: "Start a new entry copied from the most recent one",
		Args:  cobra.NoArgs,
		RunE:  a.runRestart,
	}
}

func (a *app) runRestart(cmd *cobra.Command, _ []string) error {
	c, err := a.client()
	if err != nil {
		return err
	}
	created, err := tracker.Restart(cmd.Context(), c)
	if err != nil {
		return err
	}

	p := a.printer(cmd)
	if a.format == render.FormatText {
		if err := p.Notice("Restarted %q", created.Description); err != nil {
			return err
		}
	}
	return p.Entry(created)
}
