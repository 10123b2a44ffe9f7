package note

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mnemonic-notes/mnemo/internal/api"
)

// Frontmatter is the header written on exported markdown files, matching
// the usual vault interchange layout.
type Frontmatter struct {
	Title   string   `yaml:"title"`
	Tags    []string `yaml:"tags"`
	Created string   `yaml:"created"`
	Updated string   `yaml:"updated,omitempty"`
}

var unsafeFilename = regexp.MustCompile(`[^a-zA-Z0-9-_ ]+`)

// ExportFilename derives a stable markdown filename from a note title,
// falling back to the id for untitled notes.
func ExportFilename(n api.Note) string {
	name := strings.TrimSpace(unsafeFilename.ReplaceAllString(n.Title, ""))
	name = strings.ReplaceAll(name, " ", "-")
	if name == "" {
		name = n.ID
	}
	return strings.ToLower(name) + ".md"
}

// Export writes one note as a markdown file with yaml frontmatter into
// dir, returning the written path.
func Export(dir string, n api.Note) (string, error) {
	fm := Frontmatter{
		Title:   n.Title,
		Tags:    n.Tags,
		Created: n.CreatedAt,
		Updated: n.UpdatedAt,
	}

	head, err := yaml.Marshal(fm)
	if err != nil {
		return "", fmt.Errorf("failed to marshal frontmatter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(head)
	b.WriteString("---\n\n")
	b.WriteString(n.Content)
	if !strings.HasSuffix(n.Content, "\n") {
		b.WriteString("\n")
	}

	path := filepath.Join(dir, ExportFilename(n))
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
