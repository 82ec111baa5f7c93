package storage

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/nikbrunner/bmdir/internal/model"
)

// ErrNoBookmarks is returned when a bookmark source holds no usable paths.
var ErrNoBookmarks = model.ErrNoBookmarks

// LoadError reports a bookmark source that could not be read or parsed.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load bookmarks from %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// IsStartupError reports whether err means the bookmark source is unusable.
func IsStartupError(err error) bool {
	var loadErr *LoadError
	return errors.Is(err, ErrNoBookmarks) || errors.As(err, &loadErr)
}

// Storage defines the interface for reading and writing bookmark sources.
type Storage interface {
	Load() (*model.BookmarkList, error)
	Save(list *model.BookmarkList) error
}

// LoadNonEmpty loads from s and fails with ErrNoBookmarks if nothing was found.
func LoadNonEmpty(s Storage) (*model.BookmarkList, error) {
	list, err := s.Load()
	if err != nil {
		return nil, err
	}
	if list.IsEmpty() {
		return nil, ErrNoBookmarks
	}
	return list, nil
}

// TextStorage implements Storage using a line-delimited text file.
type TextStorage struct {
	path string
}

// NewTextStorage creates a new TextStorage with the given file path.
func NewTextStorage(path string) *TextStorage {
	return &TextStorage{path: path}
}

// Path returns the storage file path.
func (s *TextStorage) Path() string {
	return s.path
}

// Load reads one path per line.
// Blank lines, '#' comments and lines that are not valid UTF-8 are dropped.
func (s *TextStorage) Load() (*model.BookmarkList, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, &LoadError{Path: s.path, Err: err}
	}
	defer f.Close()

	var paths []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if p, ok := parseLine(scanner.Text()); ok {
			paths = append(paths, p)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &LoadError{Path: s.path, Err: err}
	}

	return model.NewBookmarkList(paths), nil
}

// Save writes list back into the file, one path per line.
// Comments, blank lines and the written form of kept paths ("~/code") stay
// as they are; removed paths lose their line and new paths are appended.
// Creates the directory if it doesn't exist.
func (s *TextStorage) Save(list *model.BookmarkList) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}

	existing, err := os.ReadFile(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	remaining := make(map[string]int, list.Len())
	for _, p := range list.Paths() {
		remaining[p]++
	}

	var b strings.Builder
	for _, line := range splitLines(string(existing)) {
		p, ok := parseLine(line)
		if ok {
			if remaining[p] == 0 {
				continue
			}
			remaining[p]--
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}

	for _, p := range list.Paths() {
		if remaining[p] == 0 {
			continue
		}
		remaining[p]--
		b.WriteString(p)
		b.WriteByte('\n')
	}

	return os.WriteFile(s.path, []byte(b.String()), 0644)
}

// parseLine returns the bookmarked path on a line, or false for blank,
// comment and invalid lines.
func parseLine(line string) (string, bool) {
	line = strings.TrimRight(line, "\r")
	if !utf8.ValidString(line) {
		return "", false
	}
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return "", false
	}
	return ExpandHome(trimmed), true
}

// splitLines splits file content into lines without the final terminator.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(content, "\n"), "\n")
}

// jsonDocument is the on-disk shape of a JSON bookmark source.
type jsonDocument struct {
	Bookmarks []string `json:"bookmarks"`
}

// JSONStorage implements Storage using a JSON file.
type JSONStorage struct {
	path string
}

// NewJSONStorage creates a new JSONStorage with the given file path.
func NewJSONStorage(path string) *JSONStorage {
	return &JSONStorage{path: path}
}

// Path returns the storage file path.
func (s *JSONStorage) Path() string {
	return s.path
}

// Load reads the bookmark array from the JSON file.
func (s *JSONStorage) Load() (*model.BookmarkList, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, &LoadError{Path: s.path, Err: err}
	}

	var doc jsonDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &LoadError{Path: s.path, Err: err}
	}

	paths := make([]string, 0, len(doc.Bookmarks))
	for _, p := range doc.Bookmarks {
		paths = append(paths, ExpandHome(strings.TrimSpace(p)))
	}
	return model.NewBookmarkList(paths), nil
}

// Save writes the bookmark array to the JSON file.
// Creates the directory if it doesn't exist.
func (s *JSONStorage) Save(list *model.BookmarkList) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(jsonDocument{Bookmarks: list.Paths()}, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0644)
}

// OpenStorage opens the storage backend matching the file extension of path:
// .json for JSON, .db/.sqlite/.sqlite3 for SQLite, anything else is plain text.
func OpenStorage(path string) (Storage, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return NewJSONStorage(path), nil
	case ".db", ".sqlite", ".sqlite3":
		s, err := NewSQLiteStorage(path)
		if err != nil {
			return nil, &LoadError{Path: path, Err: err}
		}
		return s, nil
	default:
		return NewTextStorage(path), nil
	}
}

// OpenExisting is OpenStorage for commands that only read. A missing SQLite
// database is reported as a LoadError instead of being created.
func OpenExisting(path string) (Storage, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		if _, err := os.Stat(path); err != nil {
			return nil, &LoadError{Path: path, Err: err}
		}
	}
	return OpenStorage(path)
}

// DefaultBookmarksPath returns the default source path: ~/.config/bmdir/bookmarks.txt
func DefaultBookmarksPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "bookmarks.txt"), nil
}

// ExpandHome replaces a leading "~" path element with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func configDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "bmdir"), nil
}
