package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/atotto/clipboard"

	"github.com/xlttj/pypisrc/pkg/config"
	"github.com/xlttj/pypisrc/pkg/logging"
	"github.com/xlttj/pypisrc/pkg/pip"
	"github.com/xlttj/pypisrc/pkg/platform"
	"github.com/xlttj/pypisrc/pkg/source"
)

// AboutText is shown by the About action.
const AboutText = `pypisrc switches the package index pip installs from.
Pick a mirror and it is written to pip's configuration,
either through "pip config set" or by editing the file directly.
Free for everyone to use and learn from.`

// ConfigFile is the direct file editing side (config.Editor).
type ConfigFile interface {
	Paths() config.Paths
	Exists() bool
	Backup() (string, error)
	WriteSource(url string) error
	CurrentSource() (string, error)
}

// CommandRunner is the external tool side (pip.Invoker).
type CommandRunner interface {
	SetSource(ctx context.Context, url string) error
	Version(ctx context.Context) (*semver.Version, error)
}

// Clipboard receives exported text.
type Clipboard interface {
	WriteAll(text string) error
}

// Opener hands a file to the OS default application.
type Opener func(path string) error

type systemClipboard struct{}

func (systemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

// Actions performs every user-facing operation and logs its outcome.
// It never renders anything; callers display the returned Result.
type Actions struct {
	config    ConfigFile
	runner    CommandRunner
	logs      *logging.Logger
	clipboard Clipboard
	open      Opener
	presets   []source.Preset
	timeout   time.Duration
}

// Option configures Actions.
type Option func(*Actions)

// WithClipboard replaces the system clipboard.
func WithClipboard(c Clipboard) Option { return func(a *Actions) { a.clipboard = c } }

// WithOpener replaces the OS file opener.
func WithOpener(o Opener) Option { return func(a *Actions) { a.open = o } }

// WithTimeout bounds each external command run.
func WithTimeout(d time.Duration) Option { return func(a *Actions) { a.timeout = d } }

// New wires the actions. logs may be nil, in which case nothing is logged.
func New(cfg ConfigFile, runner CommandRunner, logs *logging.Logger, opts ...Option) *Actions {
	if logs == nil {
		logs = logging.Discard()
	}
	a := &Actions{
		config:    cfg,
		runner:    runner,
		logs:      logs,
		clipboard: systemClipboard{},
		open:      platform.Open,
		presets:   source.Presets(),
		timeout:   60 * time.Second,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Presets returns the mirror table the actions export.
func (a *Actions) Presets() []source.Preset {
	return a.presets
}

// ConfigPath is the pip configuration file path.
func (a *Actions) ConfigPath() string {
	return a.config.Paths().File
}

// Current returns the index URL currently in the config file, or "".
func (a *Actions) Current() string {
	url, err := a.config.CurrentSource()
	if err != nil {
		a.logs.Warnf("failed to read current index url: %v", err)
		return ""
	}
	return url
}

// Apply switches pip to preset using mode.
func (a *Actions) Apply(ctx context.Context, mode Mode, preset source.Preset) Result {
	var err error
	switch mode {
	case ModeShell:
		ctx, cancel := context.WithTimeout(ctx, a.timeout)
		defer cancel()
		err = a.runner.SetSource(ctx, preset.URL)
	case ModeConf:
		err = a.config.WriteSource(preset.URL)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}

	if err != nil {
		a.logs.Errorf("failed to change index url to %s (%s mode): %v", preset.URL, mode, err)
		return failure(fmt.Errorf("failed to change index url: %w", err))
	}

	a.logs.Record("changed index url via %s mode to %s (%s)", mode, preset.URL, preset.Label)
	return Result{
		Kind:    KindSuccess,
		Title:   "Success",
		Message: fmt.Sprintf("Index URL changed to %s", preset.URL),
	}
}

// Backup copies the config file next to itself.
func (a *Actions) Backup() Result {
	path, err := a.config.Backup()
	if err != nil {
		a.logs.Errorf("failed to back up pip config: %v", err)
		return failure(fmt.Errorf("backup failed: %w", err))
	}

	a.logs.Record("backed up pip config to %s", path)
	return Result{
		Kind:    KindSuccess,
		Title:   "Success",
		Message: fmt.Sprintf("Config backed up to %s", path),
	}
}

// OpenConfig opens the config file with the default application.
// A missing file is reported like every other failure.
func (a *Actions) OpenConfig() Result {
	path := a.config.Paths().File
	if !a.config.Exists() {
		err := fmt.Errorf("%w: %s", config.ErrFileNotFound, path)
		a.logs.Errorf("cannot open pip config: %v", err)
		return failure(err)
	}

	if err := a.open(path); err != nil {
		a.logs.Errorf("cannot open pip config: %v", err)
		return failure(err)
	}

	a.logs.Record("opened %s", path)
	return Result{Kind: KindStatus, Message: fmt.Sprintf("Opened %s", path)}
}

// Export copies the preset table to the clipboard as JSON.
func (a *Actions) Export() Result {
	data, err := source.ExportJSON(a.presets)
	if err == nil {
		err = a.clipboard.WriteAll(string(data))
	}
	if err != nil {
		a.logs.Errorf("failed to export presets: %v", err)
		return failure(fmt.Errorf("export failed: %w", err))
	}

	a.logs.Record("copied %d mirror presets to clipboard", len(a.presets))
	return Result{
		Kind:    KindStatus,
		Message: fmt.Sprintf("Copied %d mirrors to clipboard as JSON", len(a.presets)),
	}
}

// About returns the static description plus the detected tool version.
func (a *Actions) About(ctx context.Context) Result {
	var b strings.Builder
	b.WriteString(AboutText)
	b.WriteString("\n\n")

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()
	v, err := a.runner.Version(ctx)
	switch {
	case err != nil:
		a.logs.Warnf("pip version probe failed: %v", err)
		b.WriteString("pip: not detected")
	case pip.CheckVersion(v) != nil:
		fmt.Fprintf(&b, "pip %s: too old for shell mode, use conf mode", v)
	default:
		fmt.Fprintf(&b, "pip %s", v)
	}
	fmt.Fprintf(&b, "\nconfig: %s", a.config.Paths().File)

	return Result{Kind: KindInfo, Title: "About pypisrc", Message: b.String()}
}

func failure(err error) Result {
	title := "Error"
	if errors.Is(err, config.ErrFileNotFound) {
		title = "File not found"
	}
	return Result{Kind: KindError, Title: title, Message: err.Error(), Err: err}
}
