package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/ini.v1"
)

const (
	globalSection = "global"
	indexURLKey   = "index-url"
)

// Editor reads and rewrites the pip configuration file directly.
type Editor struct {
	paths Paths
}

// NewEditor creates an editor for the given paths
func NewEditor(paths Paths) *Editor {
	return &Editor{paths: paths}
}

// Paths returns the locations this editor works on.
func (e *Editor) Paths() Paths {
	return e.paths
}

// Exists reports whether the pip configuration file is present.
func (e *Editor) Exists() bool {
	info, err := os.Stat(e.paths.File)
	return err == nil && !info.IsDir()
}

// Backup copies the current configuration file verbatim to the backup file,
// replacing any earlier backup. It returns the backup path.
func (e *Editor) Backup() (string, error) {
	data, err := os.ReadFile(e.paths.File)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrFileNotFound, e.paths.File)
		}
		return "", fmt.Errorf("failed to read %s: %w", e.paths.File, err)
	}

	if err := os.WriteFile(e.paths.Backup, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write backup %s: %w", e.paths.Backup, err)
	}
	return e.paths.Backup, nil
}

// ValidateIndexURL rejects URLs that are blank or span more than one line.
// A line break would let the value add sections or keys to pip's config.
func ValidateIndexURL(url string) error {
	if strings.TrimSpace(url) == "" || strings.ContainsAny(url, "\r\n") {
		return ErrInvalidArgument
	}
	return nil
}

// WriteSource replaces the configuration file with a [global] section that
// only sets index-url. Any other settings in the file are discarded.
func (e *Editor) WriteSource(url string) error {
	if err := ValidateIndexURL(url); err != nil {
		return err
	}

	if err := os.MkdirAll(e.paths.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory %s: %w", e.paths.Dir, err)
	}

	content := Render(url)
	target := e.paths.Target()
	if err := os.WriteFile(target, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", target, err)
	}
	return nil
}

// CurrentSource returns global.index-url from the configuration file.
// A missing file or key yields an empty string and no error.
func (e *Editor) CurrentSource() (string, error) {
	if !e.Exists() {
		return "", nil
	}

	cfg, err := ini.Load(e.paths.File)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s: %w", e.paths.File, err)
	}

	sec, err := cfg.GetSection(globalSection)
	if err != nil {
		return "", nil
	}
	if !sec.HasKey(indexURLKey) {
		return "", nil
	}
	return sec.Key(indexURLKey).String(), nil
}

// Render returns the exact file content written for url.
func Render(url string) string {
	return "[" + globalSection + "]\n" + indexURLKey + " = " + url + "\n"
}
