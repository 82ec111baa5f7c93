package culler

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/nikbrunner/bmdir/internal/model"
)

// Status represents the health of a bookmarked path.
type Status int

const (
	Healthy     Status = iota // an existing directory
	Dead                      // the path no longer exists
	Unreachable               // exists but cannot be used: permissions, not a directory, I/O errors
)

func (s Status) String() string {
	switch s {
	case Healthy:
		return "ok"
	case Dead:
		return "dead"
	default:
		return "unreachable"
	}
}

// Result holds the check result for a single bookmark.
type Result struct {
	Path   string
	Status Status
	Error  string // short reason for dead and unreachable paths
}

// StatFunc reports file info for a path. os.Stat in production.
type StatFunc func(path string) (fs.FileInfo, error)

// ProgressFunc is called after each path is checked.
// completed is the number of paths checked so far, total is the total count.
type ProgressFunc func(completed, total int)

// CheckPaths stats every bookmark in order and classifies it. Paths are
// checked one at a time on the calling goroutine.
func CheckPaths(list *model.BookmarkList, stat StatFunc, onProgress ProgressFunc) []Result {
	if list.IsEmpty() {
		return nil
	}
	if stat == nil {
		stat = os.Stat
	}

	paths := list.Paths()
	results := make([]Result, len(paths))
	for i, p := range paths {
		results[i] = checkPath(stat, p)
		if onProgress != nil {
			onProgress(i+1, len(paths))
		}
	}
	return results
}

// DeadPaths returns the paths of all Dead results.
func DeadPaths(results []Result) []string {
	var dead []string
	for _, r := range results {
		if r.Status == Dead {
			dead = append(dead, r.Path)
		}
	}
	return dead
}

// checkPath checks a single path and returns the result.
func checkPath(stat StatFunc, path string) Result {
	result := Result{Path: path}

	info, err := stat(path)
	switch {
	case err == nil && info.IsDir():
		result.Status = Healthy
	case err == nil:
		result.Status = Unreachable
		result.Error = "Not a directory"
	case errors.Is(err, fs.ErrNotExist):
		result.Status = Dead
		result.Error = "No such directory"
	default:
		result.Status = Unreachable
		result.Error = normalizeError(err)
	}

	return result
}

// normalizeError simplifies verbose error messages into readable categories.
func normalizeError(err error) string {
	if errors.Is(err, fs.ErrPermission) {
		return "Permission denied"
	}

	errStr := err.Error()
	lower := strings.ToLower(errStr)

	switch {
	case strings.Contains(lower, "not a directory"):
		// A parent element is a file
		return "Not a directory"
	case strings.Contains(lower, "too many levels of symbolic links"):
		return "Symlink loop"
	case strings.Contains(lower, "input/output error"),
		strings.Contains(lower, "stale"):
		return "I/O error"
	default:
		return errStr
	}
}
