package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/todos/internal/config"
	"github.com/idilsaglam/todos/internal/logging"
	"github.com/idilsaglam/todos/internal/store/jsonstore"
	"github.com/idilsaglam/todos/internal/store/sqlitestore"
	"github.com/idilsaglam/todos/internal/todo"
	"github.com/idilsaglam/todos/internal/tui"
	"github.com/idilsaglam/todos/internal/ui"
)

// App carries root flags and the resolved config to every subcommand.
type App struct {
	ConfigPath string
	Storage    string
	DataDir    string
	Namespace  string
	Theme      string
	LogLevel   string

	cfg *config.Config
}

// usageError marks bad invocations; they exit with 2 instead of 1.
type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return usageError{msg: fmt.Sprintf(format, args...)}
}

// Execute runs the root command and returns the process exit code
// (0 ok, 1 error, 2 usage).
func Execute(args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.Execute(); err != nil {
		ui.Fail(stderr, err.Error())
		var ue usageError
		if errors.As(err, &ue) {
			return 2
		}
		return 1
	}
	return 0
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:           "todos",
		Short:         "todos - a tiny todo list (CLI + TUI)",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  todos

  # Scriptable commands
  todos add "Buy milk"
  todos ls
  todos done 2
  todos rm 3
`),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.resolveConfig(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			return runTUI(cmd.Context(), app)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&app.ConfigPath, "config", "", "Path to config.toml (default: $XDG_CONFIG_HOME/todos/config.toml)")
	pf.StringVar(&app.Storage, "storage", "", "Storage backend (json|sqlite)")
	pf.StringVar(&app.DataDir, "data-dir", "", "Directory holding the todo data")
	pf.StringVar(&app.Namespace, "namespace", "", "Collection name inside the store")
	pf.StringVar(&app.Theme, "theme", "", "Color theme (classic|neon|mono)")
	pf.StringVar(&app.LogLevel, "log-level", "", "Log level (debug|info|warn|error)")

	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newDoneCmd(app))
	cmd.AddCommand(newRemoveCmd(app))
	cmd.AddCommand(newEditCmd(app))
	cmd.AddCommand(newToggleAllCmd(app))
	cmd.AddCommand(newClearCmd(app))

	return cmd
}

// usageArgs turns cobra's argument errors into usage errors.
func usageArgs(v cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := v(cmd, args); err != nil {
			return usagef("usage: %s (%v)", cmd.UseLine(), err)
		}
		return nil
	}
}

// resolveConfig loads the config file and env, then lets explicit flags win.
func (app *App) resolveConfig(cmd *cobra.Command) error {
	cfg, err := config.Load(app.ConfigPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	override := func(name string, dst *string, v string) {
		if flags.Changed(name) {
			*dst = v
		}
	}
	override("storage", &cfg.Storage, app.Storage)
	override("data-dir", &cfg.DataDir, app.DataDir)
	override("namespace", &cfg.Namespace, app.Namespace)
	override("theme", &cfg.Theme, app.Theme)
	override("log-level", &cfg.LogLevel, app.LogLevel)
	if err := cfg.Validate(); err != nil {
		return usagef("config: %v", err)
	}
	ui.SetTheme(cfg.Theme)
	app.cfg = cfg
	return nil
}

// openList builds the configured backend and fetches the list. The returned
// func releases the backend.
func openList(ctx context.Context, cfg *config.Config, logger *log.Logger) (*todo.List, func() error, error) {
	var backend todo.Backend
	closeFn := func() error { return nil }
	switch cfg.Storage {
	case config.StorageSQLite:
		s, err := sqlitestore.Open(ctx, cfg.SQLitePath(), cfg.Namespace)
		if err != nil {
			return nil, nil, err
		}
		backend, closeFn = s, s.Close
	default:
		backend = jsonstore.Store{Dir: cfg.DataPath(), Namespace: cfg.Namespace}
	}
	list := todo.NewList(backend, logger)
	if err := list.Fetch(ctx); err != nil {
		_ = closeFn()
		return nil, nil, fmt.Errorf("load: %w", err)
	}
	return list, closeFn, nil
}

// withList runs fn over the fetched list, logging to stderr.
func withList(cmd *cobra.Command, app *App, fn func(ctx context.Context, list *todo.List) error) error {
	logger, err := logging.New(cmd.ErrOrStderr(), logging.Options{Level: app.cfg.LogLevel})
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	list, closeFn, err := openList(ctx, app.cfg, logger)
	if err != nil {
		return err
	}
	defer closeFn()
	return fn(ctx, list)
}

func runTUI(ctx context.Context, app *App) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger, closer, err := logging.OpenFile(app.cfg.LogPath(), logging.Options{Level: app.cfg.LogLevel})
	if err != nil {
		return err
	}
	defer closer.Close()

	list, closeFn, err := openList(ctx, app.cfg, logger)
	if err != nil {
		return err
	}
	defer closeFn()

	logger.Info("tui start", "items", list.Len(), "storage", app.cfg.Storage)
	if err := tui.Run(ctx, list, tui.Options{MaxTitleLength: app.cfg.MaxTitleLength, Logger: logger}); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// itemAt resolves a 1-based index argument.
func itemAt(list *todo.List, arg string) (*todo.Item, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return nil, usagef("not a number: %s", arg)
	}
	items := list.Items()
	if n < 1 || n > len(items) {
		return nil, usagef("index out of range: have %d, got %d (run `todos ls` to see valid indexes)", len(items), n)
	}
	return items[n-1], nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
