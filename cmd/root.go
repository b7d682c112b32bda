package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/beardo/toggl-tui/internal/config"
	"github.com/beardo/toggl-tui/internal/credential"
	"github.com/beardo/toggl-tui/internal/logging"
	"github.com/beardo/toggl-tui/internal/render"
	"github.com/beardo/toggl-tui/internal/toggl"
)

const (
	envBaseURL   = "TOGGL_BASE_URL"
	envConfigDir = "TOGGL_CONFIG_DIR"
)

// Execute is the entry point called from main.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(newApp()).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "toggl",
		Short: "toggl – a terminal client for Toggl Track",
		Long: `toggl shows and controls your Toggl Track time entries from the terminal.
Without a subcommand it starts the interactive menu.`,
		Args:              cobra.NoArgs,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE:              a.runInteractive,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.opts.apiKey, "api-key", "k", "", "Key for the Toggl API (overrides env, keyring and config file)")
	flags.StringVarP(&a.opts.output, "output", "o", "text", "Output format: text, json, yaml")
	flags.BoolVar(&a.opts.debug, "debug", false, "Write debug logs to stderr")
	flags.DurationVar(&a.opts.timeout, "timeout", toggl.DefaultTimeout, "HTTP request timeout")
	flags.StringVar(&a.opts.baseURL, "base-url", "", "Override the Toggl API base URL")
	_ = flags.MarkHidden("base-url")

	root.AddCommand(
		newAuthCmd(a),
		newMeCmd(a),
		newCurrentCmd(a),
		newTodayCmd(a),
		newMineCmd(a),
		newLastCmd(a),
		newStopCmd(a),
		newRestartCmd(a),
		newInteractiveCmd(a),
	)
	return root
}

type options struct {
	apiKey  string
	output  string
	debug   bool
	timeout time.Duration
	baseURL string
}

// app carries the state of one invocation: flags, the config store and the
// lazily loaded config file.
type app struct {
	opts    options
	format  render.Format
	getenv  func(string) string
	keyring credential.KeyStore

	store     *config.Store
	cfg       *config.File
	cfgErr    error
	cfgLoaded bool
}

func newApp() *app {
	return &app{
		getenv:  os.Getenv,
		keyring: credential.Keyring{},
	}
}

// setup runs before every command.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	// A missing .env file is fine; real environment variables win.
	_ = godotenv.Load()

	format, err := render.ParseFormat(a.opts.output)
	if err != nil {
		return err
	}
	a.format = format

	store, err := a.configStore()
	if err != nil {
		// No config directory means nowhere to log; commands that need the
		// store report the error themselves.
		return nil
	}
	if err := logging.Init(logging.Config{Debug: a.opts.debug, Dir: store.Dir(), Stderr: cmd.ErrOrStderr()}); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not initialize log file: %v\n", err)
	}
	return nil
}

func (a *app) configStore() (*config.Store, error) {
	if a.store != nil {
		return a.store, nil
	}
	if dir := a.getenv(envConfigDir); dir != "" {
		a.store = config.NewStoreAt(dir)
		return a.store, nil
	}
	store, err := config.NewStore()
	if err != nil {
		return nil, err
	}
	a.store = store
	return store, nil
}

// loadConfig reads the config file once per invocation.
func (a *app) loadConfig() (*config.File, error) {
	if a.cfgLoaded {
		return a.cfg, a.cfgErr
	}
	a.cfgLoaded = true
	store, err := a.configStore()
	if err != nil {
		a.cfgErr = err
		return nil, err
	}
	a.cfg, a.cfgErr = store.Load()
	if errors.Is(a.cfgErr, config.ErrCorrupt) {
		a.cfgErr = fmt.Errorf("%w\nTip: run 'toggl auth key <api_key>' to replace it", a.cfgErr)
	}
	return a.cfg, a.cfgErr
}

func (a *app) resolver() *credential.Resolver {
	return &credential.Resolver{
		Override:   a.opts.apiKey,
		Getenv:     a.getenv,
		Keyring:    a.keyring,
		LoadConfig: a.loadConfig,
	}
}

func (a *app) clientConfig() toggl.Config {
	cfg := toggl.Config{BaseURL: a.opts.baseURL, Timeout: a.opts.timeout}
	if cfg.BaseURL == "" {
		cfg.BaseURL = a.getenv(envBaseURL)
	}
	if cfg.BaseURL == "" {
		file, err := a.loadConfig()
		if err != nil {
			logging.Warn("ignoring config file for base URL", "err", err)
		} else if file != nil {
			cfg.BaseURL = file.BaseURL
		}
	}
	return cfg
}

// client returns an API client for the resolved credential.
func (a *app) client() (*toggl.Client, error) {
	cred, err := a.resolver().Resolve()
	if err != nil {
		return nil, err
	}
	return toggl.NewClient(a.clientConfig(), cred.Key), nil
}

func (a *app) printer(cmd *cobra.Command) *render.Printer {
	return render.NewPrinter(cmd.OutOrStdout(), a.format)
}

// saveAPIKey stores key in the keyring or the config file and returns a
// description of where it went.
func (a *app) saveAPIKey(key string, useKeyring bool) (string, error) {
	if useKeyring {
		if err := a.keyring.Set(key); err != nil {
			return "", err
		}
		return "the OS keyring", nil
	}
	store, err := a.configStore()
	if err != nil {
		return "", err
	}
	if err := store.SaveAPIKey(key); err != nil {
		return "", fmt.Errorf("saving API key: %w", err)
	}
	return store.Path(), nil
}
