package picker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/muesli/termenv"

	"github.com/mnemonic-notes/mnemo/internal/api"
)

// Picker fuzzy-selects a note from the loaded collection, with a
// rendered markdown preview of the highlighted note.
type Picker struct {
	notes  []api.Note
	Header string
}

func New(notes []api.Note, header string) *Picker {
	return &Picker{notes: notes, Header: header}
}

func (p *Picker) Run(query string) (api.Note, error) {
	if len(p.notes) == 0 {
		return api.Note{}, fmt.Errorf("no notes to select from")
	}

	options := []fuzzyfinder.Option{
		fuzzyfinder.WithPreviewWindow(p.renderPreview),
	}
	if query != "" {
		options = append(options, fuzzyfinder.WithQuery(query))
	}
	if p.Header != "" {
		options = append(options, fuzzyfinder.WithHeader(p.Header))
	}

	labels := make([]string, len(p.notes))
	for i, n := range p.notes {
		if len(n.Tags) == 0 {
			labels[i] = fmt.Sprintf("%s [No tags] ", n.Title)
		} else {
			labels[i] = fmt.Sprintf("%s [Tags: %s] ", n.Title, strings.Join(n.Tags, ", "))
		}
	}

	idx, err := fuzzyfinder.Find(p.notes, func(i int) string {
		return labels[i]
	}, options...)
	if err != nil {
		return api.Note{}, err
	}

	return p.notes[idx], nil
}

func (p *Picker) renderPreview(i, w, h int) string {
	if i == -1 {
		return ""
	}

	r, _ := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dracula"),
		glamour.WithWordWrap(w),
		glamour.WithColorProfile(termenv.ANSI256),
	)

	markdown, err := r.Render(p.notes[i].Content)
	if err != nil {
		return "Error rendering markdown"
	}
	return markdown
}
