package cmd

import "github.com/spf13/cobra"

func newCurrentCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "Show the currently running entry",
		Args:  cobra.NoArgs,
		RunE:  a.runCurrent,
	}
}

func (a *app) runCurrent(cmd *cobra.Command, _ []string) error {
	c, err := a.client()
	if err != nil {
		return err
	}
	entry, err := c.GetCurrent(cmd.Context())
	if err != nil {
		return err
	}
	return a.printer(cmd).Entry(entry)
}
