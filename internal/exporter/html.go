package exporter

import (
	"fmt"
	"html"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nikbrunner/bmdir/internal/model"
)

// DefaultExportPath returns the default export file path.
// Format: ~/Downloads/bmdir-export-YYYY-MM-DD.html
func DefaultExportPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("bmdir-export-%s.html", time.Now().Format("2006-01-02"))
	return filepath.Join(home, "Downloads", filename), nil
}

// ExportHTML writes the bookmarks as Netscape bookmark HTML with file:// links,
// so browsers and the import command can read them back.
func ExportHTML(list *model.BookmarkList, addedAt time.Time) string {
	var b strings.Builder

	// Header
	b.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	b.WriteString("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	b.WriteString("<TITLE>Bookmarks</TITLE>\n")
	b.WriteString("<H1>Bookmarks</H1>\n")
	b.WriteString("<DL><p>\n")

	if list != nil {
		for _, path := range list.Paths() {
			fmt.Fprintf(&b,
				"    <DT><A HREF=\"%s\" ADD_DATE=\"%d\">%s</A>\n",
				html.EscapeString(FileURL(path)),
				addedAt.Unix(),
				html.EscapeString(title(path)),
			)
		}
	}

	// Footer
	b.WriteString("</DL><p>\n")

	return b.String()
}

// FileURL returns the file:// URL of an absolute path.
func FileURL(path string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String()
}

func title(path string) string {
	base := filepath.Base(path)
	if base == "/" || base == "." {
		return path
	}
	return base
}
