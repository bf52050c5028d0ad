package platform

import (
	"os/exec"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenCommand(t *testing.T) {
	tests := []struct {
		goos string
		want []string
	}{
		{"darwin", []string{"open", "/tmp/pip.conf"}},
		{"linux", []string{"xdg-open", "/tmp/pip.conf"}},
		{"windows", []string{"rundll32", "url.dll,FileProtocolHandler", "/tmp/pip.conf"}},
	}
	for _, tt := range tests {
		cmd, err := OpenCommand(tt.goos, "/tmp/pip.conf")
		require.NoError(t, err, tt.goos)
		assert.Equal(t, tt.want, cmd.Args, tt.goos)
	}
}

func TestOpenCommand_Unsupported(t *testing.T) {
	_, err := OpenCommand("plan9", "/tmp/pip.conf")
	assert.ErrorContains(t, err, "unsupported operating system")
}

func TestRun_ReportsHandlerFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}
	err := run(exec.Command("sh", "-c", "exit 3"), "/tmp/pip.conf", 5*time.Second)
	require.Error(t, err)
	assert.ErrorContains(t, err, "/tmp/pip.conf")

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 3, exitErr.ExitCode())
}

func TestRun_HandlerSucceeds(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}
	assert.NoError(t, run(exec.Command("sh", "-c", "exit 0"), "/tmp/pip.conf", 5*time.Second))
}

func TestRun_LongRunningHandlerIsLeftAlone(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}
	cmd := exec.Command("sleep", "5")
	start := time.Now()
	require.NoError(t, run(cmd, "/tmp/pip.conf", 100*time.Millisecond))
	assert.Less(t, time.Since(start), 3*time.Second)
	_ = cmd.Process.Kill()
}

func TestRun_StartFailure(t *testing.T) {
	err := run(exec.Command("pypisrc-no-such-handler"), "/tmp/pip.conf", time.Second)
	assert.ErrorContains(t, err, "failed to open /tmp/pip.conf")
}
