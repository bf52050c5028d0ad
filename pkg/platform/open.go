package platform

import (
	"fmt"
	"os/exec"
	"runtime"
	"time"
)

// handlerGrace is how long Open waits for the handler to report a failure.
// xdg-open and friends exit quickly; an editor launched directly may not.
const handlerGrace = 2 * time.Second

// OpenCommand builds the command that hands path to the default handler on goos.
func OpenCommand(goos, path string) (*exec.Cmd, error) {
	switch goos {
	case "darwin":
		return exec.Command("open", path), nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return exec.Command("xdg-open", path), nil
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", path), nil
	}
	return nil, fmt.Errorf("unsupported operating system: %s", goos)
}

// Open opens path with the operating system's default application.
// It returns an error if the handler cannot start or exits with an error
// shortly after starting. A handler still running after that is left alone.
func Open(path string) error {
	cmd, err := OpenCommand(runtime.GOOS, path)
	if err != nil {
		return err
	}
	return run(cmd, path, handlerGrace)
}

func run(cmd *exec.Cmd, path string, grace time.Duration) error {
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to open %s: %s: %w", path, cmd.Args[0], err)
		}
		return nil
	case <-time.After(grace):
		return nil
	}
}
