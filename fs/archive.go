// Package fs archives converted documents as markdown files on disk.
package fs

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/askdocs/askdocs"
)

// URLToPath converts a documentation URL to a relative file path.
// Example: https://example.com/docs/api/users → docs/api/users.md
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", askdocs.Errorf(askdocs.EINVALID, "invalid document URL %q", rawURL)
	}

	path := u.Path

	// Root or trailing slash becomes index.md.
	if path == "" || path == "/" {
		return "index.md", nil
	}

	path = strings.TrimPrefix(path, "/")

	if strings.HasSuffix(path, "/") {
		return path + "index.md", nil
	}

	return path + ".md", nil
}

// FormatDocument formats a document with YAML frontmatter.
func FormatDocument(doc *askdocs.Document) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("source: ")
	b.WriteString(doc.URL)
	b.WriteString("\ntitle: ")
	b.WriteString(doc.Title)
	b.WriteString("\n---\n\n")
	b.WriteString(doc.Text)
	b.WriteString("\n")
	return b.String()
}

var _ askdocs.DocumentArchive = (*Archive)(nil)

// Archive writes documents as markdown files under a base directory,
// mirroring the site's URL structure.
type Archive struct {
	baseDir string
}

// NewArchive creates a new Archive rooted at baseDir.
func NewArchive(baseDir string) *Archive {
	return &Archive{baseDir: baseDir}
}

// SaveDocument writes a document to disk. The write goes through a
// temporary file and a rename so readers never see partial content.
func (a *Archive) SaveDocument(ctx context.Context, doc *askdocs.Document) error {
	if doc.URL == "" {
		return askdocs.Errorf(askdocs.EINVALID, "document URL is required")
	}

	relPath, err := URLToPath(doc.URL)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(a.baseDir, relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return askdocs.Errorf(askdocs.EINTERNAL, "failed to create archive directory: %v", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(fullPath), ".archive-*")
	if err != nil {
		return askdocs.Errorf(askdocs.EINTERNAL, "failed to create temporary file: %v", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(FormatDocument(doc)); err != nil {
		tmp.Close()
		return askdocs.Errorf(askdocs.EINTERNAL, "failed to write document: %v", err)
	}
	if err := tmp.Close(); err != nil {
		return askdocs.Errorf(askdocs.EINTERNAL, "failed to close temporary file: %v", err)
	}

	if err := os.Rename(tmp.Name(), fullPath); err != nil {
		return askdocs.Errorf(askdocs.EINTERNAL, "failed to move document into place: %v", err)
	}
	return nil
}
