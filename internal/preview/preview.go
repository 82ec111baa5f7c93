// Package preview renders a short text view of a bookmarked path.
package preview

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

const (
	// UnavailableText is shown in place of a preview that could not be read.
	UnavailableText = "[preview unavailable]"
	// EmptyDirText is shown for a directory with no entries.
	EmptyDirText = "(empty directory)"
	// EmptyFileText is shown for a zero-length file.
	EmptyFileText = "(empty file)"
	// BinaryText is shown for files that do not look like text.
	BinaryText = "(binary file)"

	// DefaultMaxBytes is how much of a regular file is previewed.
	DefaultMaxBytes = 4096
)

// Result is the outcome of previewing one path.
type Result struct {
	Path string
	Text string
	Err  error
}

// OK returns true if the preview was read successfully.
func (r Result) OK() bool {
	return r.Err == nil
}

// Display returns the text to draw, folding a failure into UnavailableText.
func (r Result) Display() string {
	if r.Err != nil {
		return UnavailableText
	}
	return r.Text
}

// Source is the filesystem access the Provider needs.
type Source interface {
	// IsDir reports whether path is a directory.
	IsDir(path string) (bool, error)
	// Entries returns the names of the direct children of dir.
	Entries(dir string) ([]string, error)
	// Head returns up to n bytes from the start of the file at path.
	Head(path string, n int) ([]byte, error)
}

// Provider produces previews for bookmarked paths.
type Provider struct {
	source   Source
	maxBytes int
}

// NewProvider creates a Provider reading from source.
// A nil source uses the local filesystem; maxBytes <= 0 uses DefaultMaxBytes.
func NewProvider(source Source, maxBytes int) *Provider {
	if source == nil {
		source = OSSource{}
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Provider{source: source, maxBytes: maxBytes}
}

// Preview lists the children of a directory, one name per line, or the head of
// a regular file. It never panics on unreadable paths: the failure is returned
// in Result.Err.
func (p *Provider) Preview(path string) Result {
	isDir, err := p.source.IsDir(path)
	if err != nil {
		return Result{Path: path, Err: err}
	}

	if isDir {
		names, err := p.source.Entries(path)
		if err != nil {
			return Result{Path: path, Err: err}
		}
		if len(names) == 0 {
			return Result{Path: path, Text: EmptyDirText}
		}
		return Result{Path: path, Text: strings.Join(names, "\n")}
	}

	head, err := p.source.Head(path, p.maxBytes)
	if err != nil {
		return Result{Path: path, Err: err}
	}
	return Result{Path: path, Text: fileText(head)}
}

// fileText converts the start of a file into displayable text.
func fileText(head []byte) string {
	if len(head) == 0 {
		return EmptyFileText
	}
	if bytes.IndexByte(head, 0) >= 0 {
		return BinaryText
	}
	// Drop a rune cut in half by the byte limit
	for i := 0; i < utf8.UTFMax-1 && len(head) > 0 && !utf8.Valid(head); i++ {
		head = head[:len(head)-1]
	}
	if !utf8.Valid(head) {
		return BinaryText
	}
	text := strings.ReplaceAll(string(head), "\r\n", "\n")
	return strings.ReplaceAll(text, "\t", "    ")
}

// OSSource reads from the local filesystem.
type OSSource struct{}

// IsDir implements Source.
func (OSSource) IsDir(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}

// Entries implements Source. Names come back in os.ReadDir order (sorted).
func (OSSource) Entries(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	return names, nil
}

// Head implements Source.
func (OSSource) Head(path string, n int) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf := make([]byte, n)
	read, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return buf[:read], nil
}
