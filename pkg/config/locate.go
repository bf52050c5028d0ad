package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Sentinel errors for pip configuration handling
var (
	ErrMissingEnvironment = errors.New("home directory environment variable is not set")
	ErrFileNotFound       = errors.New("pip configuration file does not exist")
	ErrInvalidArgument    = errors.New("index url must be a single non-empty line")
)

// TestModeEnv redirects WriteSource to the test file when set to "test".
const TestModeEnv = "PYPISRC_ENV"

// Paths holds every file location derived from the user's home directory.
type Paths struct {
	Dir      string // directory holding the pip config
	File     string // pip.ini / pip.conf
	Backup   string // pip-backup.ini / pip-backup.conf
	TestFile string // test-pip.ini / test-pip.conf
	TestMode bool
}

// Target is the file WriteSource writes to.
func (p Paths) Target() string {
	if p.TestMode {
		return p.TestFile
	}
	return p.File
}

// HomeEnv returns the environment variable that names the home directory on goos.
func HomeEnv(goos string) string {
	if goos == "windows" {
		return "USERPROFILE"
	}
	return "HOME"
}

// Locate derives the pip configuration paths for goos from the environment.
// getenv is usually os.Getenv; tests pass a map lookup.
func Locate(goos string, getenv func(string) string) (Paths, error) {
	envName := HomeEnv(goos)
	home := strings.TrimSpace(getenv(envName))
	if home == "" {
		return Paths{}, fmt.Errorf("%w: %s", ErrMissingEnvironment, envName)
	}

	var dir, name string
	switch goos {
	case "windows":
		dir = filepath.Join(home, "AppData", "Roaming", "pip")
		name = "pip.ini"
	case "darwin":
		dir = filepath.Join(home, "Library", "Application Support", "pip")
		name = "pip.conf"
	default:
		if xdg := strings.TrimSpace(getenv("XDG_CONFIG_HOME")); xdg != "" {
			dir = filepath.Join(xdg, "pip")
		} else {
			dir = filepath.Join(home, ".config", "pip")
		}
		name = "pip.conf"
	}

	ext := filepath.Ext(name)
	return Paths{
		Dir:      dir,
		File:     filepath.Join(dir, name),
		Backup:   filepath.Join(dir, "pip-backup"+ext),
		TestFile: filepath.Join(dir, "test-"+name),
		TestMode: getenv(TestModeEnv) == "test",
	}, nil
}
