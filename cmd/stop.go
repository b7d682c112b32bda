package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/beardo/toggl-tui/internal/render"
	"github.com/beardo/toggl-tui/internal/tracker"
)

func newStopCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the currently running entry",
		Args:  cobra.NoArgs,
		RunE:  a.runStop,
	}
}

func (a *app) runStop(cmd *cobra.Command, _ []string) error {
	c, err := a.client()
	if err != nil {
		return err
	}
	stopped, err := tracker.StopCurrent(cmd.Context(), c)
	if err != nil {
		return err
	}

	p := a.printer(cmd)
	if a.format != render.FormatText {
		return p.Entry(stopped)
	}
	elapsed := int64(time.Since(stopped.Start).Seconds())
	return p.Notice("Stopped %q. Elapsed: %s", stopped.Description, formatElapsed(elapsed))
}

func formatElapsed(seconds int64) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm %ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
