package app

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel error for an unrecognized mode string
var ErrUnknownMode = errors.New("unknown mode")

// Mode selects how a mirror is applied.
type Mode string

const (
	ModeShell Mode = "shell" // run `pip config set`
	ModeConf  Mode = "conf"  // rewrite the config file directly
)

// DefaultMode is used when nothing else is configured.
const DefaultMode = ModeShell

// ParseMode accepts "shell" or "conf", case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeShell:
		return ModeShell, nil
	case ModeConf:
		return ModeConf, nil
	}
	return "", fmt.Errorf("%w: %q (want shell or conf)", ErrUnknownMode, s)
}

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == ModeConf {
		return ModeShell
	}
	return ModeConf
}

// ResultKind tells the presentation layer how to show a Result.
type ResultKind int

const (
	KindSuccess ResultKind = iota // confirmation dialog
	KindInfo                      // informational dialog
	KindError                     // error dialog
	KindStatus                    // one-line status, no dialog
)

// Result is the outcome of one action.
type Result struct {
	Kind    ResultKind
	Title   string
	Message string
	Err     error
}

// Failed reports whether the action failed.
func (r Result) Failed() bool {
	return r.Kind == KindError
}
