package importer

import (
	"io"
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

// Entry is a directory bookmark found in a Netscape bookmark file.
type Entry struct {
	Path   string
	Title  string
	Folder string // slash separated folder names, empty at root
}

// Summary reports what an import found.
type Summary struct {
	Entries []Entry
	Skipped int // links that are not local file:// URLs
}

// ParseHTMLBookmarks parses Netscape bookmark HTML and returns the file://
// links as local paths. Web links are counted in Skipped.
func ParseHTMLBookmarks(r io.Reader) (Summary, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return Summary{}, err
	}

	var sum Summary

	// Track current folder stack for hierarchy
	var folderStack []string
	pendingFolder := ""

	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "h3":
				// Pushed when the next DL opens
				pendingFolder = getTextContent(n)
				return

			case "a":
				href := getAttr(n, "href")
				if href == "" {
					return
				}

				path, ok := fileURLPath(href)
				if !ok {
					sum.Skipped++
					return
				}

				title := getTextContent(n)
				if title == "" {
					title = filepath.Base(path)
				}

				sum.Entries = append(sum.Entries, Entry{
					Path:   path,
					Title:  title,
					Folder: strings.Join(folderStack, "/"),
				})
				return

			case "dl":
				pushedFolder := false
				if pendingFolder != "" {
					folderStack = append(folderStack, pendingFolder)
					pendingFolder = ""
					pushedFolder = true
				}

				for c := n.FirstChild; c != nil; c = c.NextSibling {
					parse(c)
				}

				if pushedFolder {
					folderStack = folderStack[:len(folderStack)-1]
				}
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}

	parse(doc)
	return sum, nil
}

// Paths returns the entry paths in document order without duplicates.
func (s Summary) Paths() []string {
	seen := make(map[string]bool, len(s.Entries))
	paths := make([]string, 0, len(s.Entries))
	for _, e := range s.Entries {
		if seen[e.Path] {
			continue
		}
		seen[e.Path] = true
		paths = append(paths, e.Path)
	}
	return paths
}

// fileURLPath converts a file:// URL into a cleaned absolute path.
func fileURLPath(href string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(href))
	if err != nil || !strings.EqualFold(u.Scheme, "file") {
		return "", false
	}
	// Only the local host is meaningful for a directory bookmark
	if u.Host != "" && u.Host != "localhost" {
		return "", false
	}
	if u.Path == "" || !strings.HasPrefix(u.Path, "/") {
		return "", false
	}
	return filepath.Clean(u.Path), true
}

// getTextContent returns the text content of a node.
func getTextContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	key = strings.ToLower(key)
	for _, attr := range n.Attr {
		if strings.ToLower(attr.Key) == key {
			return attr.Val
		}
	}
	return ""
}
