package cmd

import "github.com/spf13/cobra"

func newMeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show profile information",
		Args:  cobra.NoArgs,
		RunE:  a.runMe,
	}
}

func (a *app) runMe(cmd *cobra.Command, _ []string) error {
	c, err := a.client()
	if err != nil {
		return err
	}
	me, err := c.GetProfile(cmd.Context())
	if err != nil {
		return err
	}
	return a.printer(cmd).Profile(me)
}
