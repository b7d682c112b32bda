package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/beardo/toggl-tui/internal/logging"
)

const actionQuit = "quit"

type menuAction struct {
	key   string
	label string
	run   func(a *app, cmd *cobra.Command, args []string) error
}

var menuActions = []menuAction{
	{"current", "Show current entry", (*app).runCurrent},
	{"today", "Show today's entries", (*app).runToday},
	{"mine", "Show all entries", (*app).runMine},
	{"last", "Show last entry", (*app).runLast},
	{"stop", "Stop current entry", (*app).runStop},
	{"restart", "Restart last entry", (*app).runRestart},
	{"me", "Show profile", (*app).runMe},
}

// chooseAction asks the user for the next menu action. Replaced in tests.
var chooseAction = func(ctx context.Context) (string, error) {
	options := make([]huh.Option[string], 0, len(menuActions)+1)
	for _, m := range menuActions {
		options = append(options, huh.NewOption(m.label, m.key))
	}
	options = append(options, huh.NewOption("Quit", actionQuit))

	var choice string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("What do you want to do?").
				Options(options...).
				Value(&choice),
		),
	)
	if err := form.RunWithContext(ctx); err != nil {
		return "", err
	}
	return choice, nil
}

func newInteractiveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "interactive",
		Aliases: []string{"i"},
		Short:   "Pick actions from a menu until you quit",
		Args:    cobra.NoArgs,
		RunE:    a.runInteractive,
	}
}

// runInteractive loops over the menu. Failed actions are reported and the
// loop continues; only quitting or aborting the form ends it.
func (a *app) runInteractive(cmd *cobra.Command, _ []string) error {
	if !isTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("interactive mode needs a terminal; run 'toggl --help' for the available commands")
	}

	ctx := cmd.Context()
	for {
		choice, err := chooseAction(ctx)
		if errors.Is(err, huh.ErrUserAborted) || errors.Is(err, context.Canceled) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("interactive menu: %w", err)
		}
		if choice == actionQuit {
			return nil
		}

		action, ok := lookupAction(choice)
		if !ok {
			continue
		}
		logging.Debug("menu action", "action", choice)
		if err := action.run(a, cmd, nil); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
		}
		fmt.Fprintln(cmd.OutOrStdout())
	}
}

func lookupAction(key string) (menuAction, bool) {
	for _, m := range menuActions {
		if m.key == key {
			return m, true
		}
	}
	return menuAction{}, false
}
