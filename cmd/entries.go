package cmd

import (
	"github.com/spf13/cobra"

	"github.com/beardo/toggl-tui/internal/tracker"
)

func newTodayCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show entries started since midnight UTC",
		Args:  cobra.NoArgs,
		RunE:  a.runToday,
	}
}

func newMineCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mine",
		Short: "Show all of your entries, most recent first",
		Args:  cobra.NoArgs,
		RunE:  a.runMine,
	}
}

func newLastCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "last",
		Short: "Show the most recent entry",
		Args:  cobra.NoArgs,
		RunE:  a.runLast,
	}
}

func (a *app) runToday(cmd *cobra.Command, _ []string) error {
	c, err := a.client()
	if err != nil {
		return err
	}
	entries, err := c.GetToday(cmd.Context())
	if err != nil {
		return err
	}
	return a.printer(cmd).Entries(entries)
}

func (a *app) runMine(cmd *cobra.Command, _ []string) error {
	c, err := a.client()
	if err != nil {
		return err
	}
	entries, err := c.GetMine(cmd.Context())
	if err != nil {
		return err
	}
	return a.printer(cmd).Entries(entries)
}

func (a *app) runLast(cmd *cobra.Command, _ []string) error {
	c, err := a.client()
	if err != nil {
		return err
	}
	entry, err := tracker.Last(cmd.Context(), c)
	if err != nil {
		return err
	}
	return a.printer(cmd).Entry(entry)
}
