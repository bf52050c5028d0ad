package pip

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Sentinel error for a tool too old to have `pip config`
var ErrUnsupportedTool = errors.New("pip version does not support `pip config`")

// minConfigVersion is the first pip release that shipped `pip config`.
var minConfigVersion = semver.MustParse("10.0.0")

// ParseVersion extracts the version from `pip --version` output,
// e.g. "pip 24.0 from /usr/lib/python3/dist-packages/pip (python 3.12)".
func ParseVersion(output string) (*semver.Version, error) {
	fields := strings.Fields(output)
	if len(fields) < 2 {
		return nil, fmt.Errorf("unrecognized version output %q", strings.TrimSpace(output))
	}
	v, err := semver.NewVersion(fields[1])
	if err != nil {
		return nil, fmt.Errorf("unrecognized version %q: %w", fields[1], err)
	}
	return v, nil
}

// CheckVersion returns ErrUnsupportedTool when v predates `pip config`.
func CheckVersion(v *semver.Version) error {
	if v.LessThan(minConfigVersion) {
		return fmt.Errorf("%w: have %s, need >= %s", ErrUnsupportedTool, v, minConfigVersion)
	}
	return nil
}

// Version runs `<tool> --version` and parses the result.
func (inv *Invoker) Version(ctx context.Context) (*semver.Version, error) {
	out, err := inv.run(ctx, "--version")
	if err != nil {
		return nil, err
	}
	return ParseVersion(out)
}
