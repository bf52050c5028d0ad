package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/xlttj/pypisrc/pkg/app"
	"github.com/xlttj/pypisrc/pkg/config"
	"github.com/xlttj/pypisrc/pkg/logging"
	"github.com/xlttj/pypisrc/pkg/pip"
	"github.com/xlttj/pypisrc/pkg/ui"
)

// Sentinel error when the TUI is started without a terminal
var ErrNotTerminal = errors.New("stdout is not a terminal; use a subcommand (see --help)")

// Options lets callers replace process-level dependencies.
type Options struct {
	Version    string
	GOOS       string
	Getenv     func(string) string
	Clipboard  app.Clipboard
	Opener     app.Opener
	IsTerminal func() bool
}

// flags shared by every command
type rootFlags struct {
	settingsPath string
	mode         string
}

// session is everything one command run needs, opened together and closed together.
type session struct {
	settings *config.Settings
	editor   *config.Editor
	invoker  *pip.Invoker
	logs     *logging.Logger
	actions  *app.Actions
	mode     app.Mode
}

func (s *session) Close() error {
	return s.logs.Close()
}

func openSession(opts Options, flags *rootFlags) (*session, error) {
	settings, err := config.LoadSettings(flags.settingsPath)
	if err != nil {
		return nil, err
	}

	modeStr := settings.Mode
	if flags.mode != "" {
		modeStr = flags.mode
	}
	mode, err := app.ParseMode(modeStr)
	if err != nil {
		return nil, err
	}

	paths, err := config.Locate(opts.GOOS, opts.Getenv)
	if err != nil {
		return nil, err
	}

	logs, err := logging.Open(settings.LogDir, logging.Options{Debug: settings.Debug})
	if err != nil {
		return nil, err
	}
	logs.Debugf("pip config at %s (test mode %t), tool %q", paths.File, paths.TestMode, settings.Tool)

	editor := config.NewEditor(paths)
	invoker := pip.New(settings.Tool)

	appOpts := []app.Option{app.WithTimeout(settings.CommandTimeout)}
	if opts.Clipboard != nil {
		appOpts = append(appOpts, app.WithClipboard(opts.Clipboard))
	}
	if opts.Opener != nil {
		appOpts = append(appOpts, app.WithOpener(opts.Opener))
	}

	return &session{
		settings: settings,
		editor:   editor,
		invoker:  invoker,
		logs:     logs,
		actions:  app.New(editor, invoker, logs, appOpts...),
		mode:     mode,
	}, nil
}

// NewRootCommand builds the command tree.
func NewRootCommand(opts Options) *cobra.Command {
	if opts.GOOS == "" {
		opts.GOOS = runtime.GOOS
	}
	if opts.Getenv == nil {
		opts.Getenv = os.Getenv
	}
	if opts.IsTerminal == nil {
		opts.IsTerminal = func() bool {
			fd := os.Stdout.Fd()
			return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
		}
	}

	flags := &rootFlags{}
	// withSession opens a session around fn and always closes it.
	withSession := func(fn func(cmd *cobra.Command, args []string, s *session) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts, flags)
			if err != nil {
				return err
			}
			defer s.Close()
			return fn(cmd, args, s)
		}
	}

	root := &cobra.Command{
		Use:           "pypisrc",
		Short:         "Switch the package index pip uses",
		Long:          rootLong,
		Example:       rootExample,
		Version:       opts.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: withSession(func(cmd *cobra.Command, _ []string, s *session) error {
			if !opts.IsTerminal() {
				return ErrNotTerminal
			}
			p := tea.NewProgram(ui.NewModel(s.actions, s.mode), tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				s.logs.Errorf("ui stopped: %v", err)
				return err
			}
			return nil
		}),
	}

	root.PersistentFlags().StringVar(&flags.settingsPath, "config", "", "settings file (default "+config.DefaultSettingsPath()+")")
	root.PersistentFlags().StringVar(&flags.mode, "mode", "", "apply mode: shell or conf (default from settings)")

	root.AddCommand(
		newListCommand(),
		newUseCommand(withSession),
		newBackupCommand(withSession),
		newOpenCommand(withSession),
		newExportCommand(withSession),
		newCurrentCommand(withSession),
		newDoctorCommand(withSession),
		newVersionCommand(opts.Version),
	)
	return root
}

// Execute runs the CLI and reports errors on stderr.
func Execute(version string) int {
	root := NewRootCommand(Options{Version: version})
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// resultError turns a failed Result into a command error and prints successes.
func resultError(w io.Writer, res app.Result) error {
	if res.Failed() {
		return res.Err
	}
	fmt.Fprintln(w, res.Message)
	return nil
}
