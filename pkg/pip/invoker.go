package pip

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/xlttj/pypisrc/pkg/config"
)

// ConfirmationPrefix is what `pip config set` prints on stdout when it wrote
// the file ("Writing to /path/pip.conf"). This is English-only tool output,
// not a stable interface; a localized or future pip may print something else.
const ConfirmationPrefix = "Writing to"

// IndexURLKey is the pip configuration key the invoker sets.
const IndexURLKey = "global.index-url"

// Sentinel error for any failed invocation of the external tool
var ErrCommandFailed = errors.New("pip command failed")

// CommandError describes a failed run of the external tool.
type CommandError struct {
	Args     []string
	ExitCode int // -1 when the process did not run or was killed
	Stdout   string
	Stderr   string
	Err      error
}

func (e *CommandError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", ErrCommandFailed, strings.Join(e.Args, " "))
	if e.ExitCode >= 0 {
		fmt.Fprintf(&b, " (exit %d)", e.ExitCode)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	if s := strings.TrimSpace(e.Stderr); s != "" {
		fmt.Fprintf(&b, " (stderr: %s)", s)
	}
	return b.String()
}

func (e *CommandError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrCommandFailed) true for every CommandError.
func (e *CommandError) Is(target error) bool { return target == ErrCommandFailed }

// Invoker runs the package manager's own config subcommand.
type Invoker struct {
	Tool string   // executable name or path, usually "pip"
	Args []string // arguments placed before the subcommand
	Env  []string // extra environment, appended to the process environment
}

// New creates an invoker for tool.
func New(tool string) *Invoker {
	return &Invoker{Tool: tool}
}

func (inv *Invoker) command(ctx context.Context, args ...string) (*exec.Cmd, *bytes.Buffer, *bytes.Buffer) {
	all := append(append([]string{}, inv.Args...), args...)
	cmd := exec.CommandContext(ctx, inv.Tool, all...)
	if len(inv.Env) > 0 {
		cmd.Env = append(os.Environ(), inv.Env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	return cmd, &stdout, &stderr
}

func (inv *Invoker) run(ctx context.Context, args ...string) (string, error) {
	cmd, stdout, stderr := inv.command(ctx, args...)
	err := cmd.Run()
	if err != nil {
		cmdErr := &CommandError{
			Args:     append([]string{inv.Tool}, args...),
			ExitCode: -1,
			Stdout:   stdout.String(),
			Stderr:   stderr.String(),
			Err:      err,
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			cmdErr.ExitCode = exitErr.ExitCode()
		}
		if ctx.Err() != nil {
			cmdErr.Err = ctx.Err()
		}
		return stdout.String(), cmdErr
	}
	return stdout.String(), nil
}

// SetSource runs `<tool> config set global.index-url <url>`.
// The URL is passed as a single argument, never through a shell.
func (inv *Invoker) SetSource(ctx context.Context, url string) error {
	if err := config.ValidateIndexURL(url); err != nil {
		return err
	}

	args := []string{"config", "set", IndexURLKey, url}
	out, err := inv.run(ctx, args...)
	if err != nil {
		return err
	}
	if !strings.HasPrefix(out, ConfirmationPrefix) {
		return &CommandError{
			Args:   append([]string{inv.Tool}, args...),
			Stdout: out,
			Err:    fmt.Errorf("unexpected output %q, want prefix %q", strings.TrimSpace(out), ConfirmationPrefix),
		}
	}
	return nil
}
