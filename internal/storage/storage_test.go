package storage_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nikbrunner/bmdir/internal/model"
	"github.com/nikbrunner/bmdir/internal/storage"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestTextStorage_Load(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "bookmarks.txt")
	writeFile(t, path, "/srv/app\n\n  \n# comment\n/home/me/code\r\n/srv/app\n\xff\xfe\n")

	list, err := storage.NewTextStorage(path).Load()
	assert.NilError(t, err)

	// Blank, comment and invalid UTF-8 lines are dropped; duplicates are kept.
	assert.DeepEqual(t, list.Paths(), []string{"/srv/app", "/home/me/code", "/srv/app"})
}

func TestTextStorage_ExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "bookmarks.txt")
	writeFile(t, path, "~/projects\n~\n/abs/~/x\n")

	list, err := storage.NewTextStorage(path).Load()
	assert.NilError(t, err)

	assert.DeepEqual(t, list.Paths(), []string{
		filepath.Join(home, "projects"),
		home,
		"/abs/~/x",
	})
}

func TestTextStorage_LoadMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.txt")

	_, err := storage.NewTextStorage(path).Load()

	var loadErr *storage.LoadError
	assert.Assert(t, errors.As(err, &loadErr))
	assert.Equal(t, loadErr.Path, path)
	assert.Assert(t, errors.Is(err, os.ErrNotExist))
	assert.Assert(t, storage.IsStartupError(err))
}

func TestTextStorage_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "bookmarks.txt")
	s := storage.NewTextStorage(path)

	want := []string{"/c", "/a", "/b"}
	assert.NilError(t, s.Save(model.NewBookmarkList(want)))

	loaded, err := s.Load()
	assert.NilError(t, err)
	assert.DeepEqual(t, loaded.Paths(), want)
}

func TestTextStorage_SaveKeepsCommentsAndHomeForm(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	path := filepath.Join(t.TempDir(), "bookmarks.txt")
	writeFile(t, path, "# work\n~/code\n\n/tmp\n")
	s := storage.NewTextStorage(path)

	list, err := s.Load()
	assert.NilError(t, err)
	assert.NilError(t, s.Save(list.Append("/var")))

	data, err := os.ReadFile(path)
	assert.NilError(t, err)
	assert.Equal(t, string(data), "# work\n~/code\n\n/tmp\n/var\n")
}

func TestTextStorage_SaveRemovesOnlyDroppedLines(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	path := filepath.Join(t.TempDir(), "bookmarks.txt")
	writeFile(t, path, "# work\n~/code\n/tmp\n  # indented note\n/tmp\n")
	s := storage.NewTextStorage(path)

	list, err := s.Load()
	assert.NilError(t, err)
	assert.NilError(t, s.Save(list.Without(filepath.Join(home, "code"))))

	data, err := os.ReadFile(path)
	assert.NilError(t, err)
	assert.Equal(t, string(data), "# work\n/tmp\n  # indented note\n/tmp\n")
}

func TestJSONStorage_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookmarks.json")
	s := storage.NewJSONStorage(path)

	want := []string{"/first", "/second", "/third"}
	if err := s.Save(model.NewBookmarkList(want)); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}

	// Verify order is preserved
	for i, p := range want {
		got, _ := loaded.At(i)
		if got != p {
			t.Errorf("order not preserved: expected %q at position %d, got %q", p, i, got)
		}
	}
}

func TestJSONStorage_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookmarks.json")
	writeFile(t, path, "{not json")

	_, err := storage.NewJSONStorage(path).Load()
	assert.Assert(t, storage.IsStartupError(err))
}

func TestLoadNonEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookmarks.txt")
	writeFile(t, path, "\n# nothing here\n\n")

	_, err := storage.LoadNonEmpty(storage.NewTextStorage(path))

	assert.Assert(t, errors.Is(err, storage.ErrNoBookmarks))
	assert.Assert(t, storage.IsStartupError(err))
}

func TestIsStartupError_OtherErrors(t *testing.T) {
	assert.Assert(t, !storage.IsStartupError(nil))
	assert.Assert(t, !storage.IsStartupError(errors.New("boom")))
}

func TestOpenExisting_MissingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "typo", "bookmarks.db")

	_, err := storage.OpenExisting(path)

	assert.Assert(t, storage.IsStartupError(err))
	assert.Assert(t, errors.Is(err, os.ErrNotExist))
	_, statErr := os.Stat(filepath.Dir(path))
	assert.Assert(t, errors.Is(statErr, os.ErrNotExist), "directory was created")
}

func TestOpenExisting_ExistingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookmarks.db")
	created, err := storage.NewSQLiteStorage(path)
	assert.NilError(t, err)
	assert.NilError(t, created.Save(model.NewBookmarkList([]string{"/srv"})))
	assert.NilError(t, created.Close())

	s, err := storage.OpenExisting(path)
	assert.NilError(t, err)
	defer s.(*storage.SQLiteStorage).Close()

	list, err := s.Load()
	assert.NilError(t, err)
	assert.DeepEqual(t, list.Paths(), []string{"/srv"})
}

func TestOpenStorage_ByExtension(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name string
		file string
		want string
	}{
		{"text", "bookmarks.txt", "*storage.TextStorage"},
		{"no extension", "bookmarks", "*storage.TextStorage"},
		{"json", "bookmarks.json", "*storage.JSONStorage"},
		{"json upper case", "BOOKMARKS.JSON", "*storage.JSONStorage"},
		{"sqlite db", "bookmarks.db", "*storage.SQLiteStorage"},
		{"sqlite3", "bookmarks.sqlite3", "*storage.SQLiteStorage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := storage.OpenStorage(filepath.Join(tmpDir, tt.file))
			assert.NilError(t, err)
			if c, ok := s.(interface{ Close() error }); ok {
				defer c.Close()
			}
			assert.Check(t, is.Equal(typeName(s), tt.want))
		})
	}
}

func typeName(s storage.Storage) string {
	switch s.(type) {
	case *storage.TextStorage:
		return "*storage.TextStorage"
	case *storage.JSONStorage:
		return "*storage.JSONStorage"
	case *storage.SQLiteStorage:
		return "*storage.SQLiteStorage"
	}
	return "unknown"
}
