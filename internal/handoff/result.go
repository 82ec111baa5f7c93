// Package handoff passes the picked path back to the calling shell.
//
// A program cannot change its parent's working directory, so bmdir writes
// the path to a result file and a small shell function reads it and cd's.
package handoff

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultResultPath returns the result file used when none is configured.
// The PID keeps concurrent pickers from overwriting each other.
func DefaultResultPath() string {
	return filepath.Join(os.TempDir(), fmt.Sprintf("bmdir_result_%d.txt", os.Getpid()))
}

// ResultPath picks the result file: the explicit flag value, then the
// configured path, then DefaultResultPath.
func ResultPath(flagValue, configured string) string {
	if flagValue != "" {
		return flagValue
	}
	if configured != "" {
		return configured
	}
	return DefaultResultPath()
}

// WriteResult writes the selected path to file, or the current working
// directory when nothing was selected, so the shell stays where it is.
// The file is written with 0600 permissions (owner only).
// Returns the path that was written.
func WriteResult(file, selected string, chosen bool) (string, error) {
	dest := selected
	if !chosen || dest == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolve working directory: %w", err)
		}
		dest = cwd
	}

	if err := os.WriteFile(file, []byte(dest), 0600); err != nil {
		return "", fmt.Errorf("write result file: %w", err)
	}
	return dest, nil
}
