package gitignore

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
)

// CompileGlobal compiles the user's global gitignore file. The file path is
// resolved in order:
//
//  1. git config --global core.excludesFile (if git is available)
//  2. $XDG_CONFIG_HOME/git/ignore (if XDG_CONFIG_HOME is set)
//  3. ~/.config/git/ignore (default fallback)
//
// A missing file is not an error: the result is an empty rule set that
// accepts every path. Only real resolution or read failures are returned.
func CompileGlobal() (*RuleSet, error) {
	path, err := resolveGlobalIgnorePath()
	if err != nil {
		return nil, errors.Wrap(err, "resolving global gitignore path")
	}
	if path == "" {
		return Compile(nil), nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Compile(nil), nil
		}
		return nil, errors.Wrapf(err, "reading global gitignore %s", path)
	}
	return Compile(content), nil
}

// resolveGlobalIgnorePath determines the path to the global gitignore file.
// It tries git config first, then falls back to XDG conventions. Returns an
// empty string if no path can be determined.
func resolveGlobalIgnorePath() (string, error) {
	path, err := gitConfigExcludesFile()
	if err != nil {
		return "", err
	}
	if path != "" {
		return path, nil
	}
	return xdgGlobalIgnorePath()
}

// gitConfigExcludesFile reads the global core.excludesFile from git config.
// Returns empty string if git is not available or the key is not set.
func gitConfigExcludesFile() (string, error) {
	out, err := exec.Command("git", "config", "--global", "core.excludesFile").Output()
	if err != nil {
		// git not installed, key not set, or other error; fall through
		return "", nil
	}

	path := strings.TrimSpace(string(out))
	if path == "" {
		return "", nil
	}
	return homedir.Expand(path)
}

// xdgGlobalIgnorePath returns the XDG-based global gitignore path.
// Uses $XDG_CONFIG_HOME/git/ignore if set, otherwise ~/.config/git/ignore.
func xdgGlobalIgnorePath() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "git", "ignore"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "determining home directory")
	}
	return filepath.Join(home, ".config", "git", "ignore"), nil
}
