package notes

import (
	"fmt"
	"strings"

	"github.com/mnemonic-notes/mnemo/internal/api"
	"github.com/mnemonic-notes/mnemo/internal/note"
)

// narrowWidth is the single-pane threshold: below it the TUI behaves like
// the mobile layout, showing either the list or the viewer.
const narrowWidth = 100

func (m *NoteListModel) isNarrow() bool {
	return m.width > 0 && m.width < narrowWidth
}

// viewerContent renders the selected note. Selection can reference a note
// absent from the visible collection (e.g. a new search replaced the
// results); that renders an empty state rather than erroring.
func (m *NoteListModel) viewerContent(width int) string {
	id := m.ctrl.Selected()
	if id == "" {
		return helpStyle("Select a note to read it.")
	}

	if m.ctrl.SearchMode() {
		if res, ok := m.ctrl.Result(id); ok {
			return m.renderResult(res, width)
		}
	}
	for _, n := range m.allNotes {
		if n.ID == id {
			return m.renderNote(n, width)
		}
	}
	if m.fetched != nil && m.fetched.ID == id {
		return m.renderNote(*m.fetched, width)
	}

	return helpStyle("Note unavailable.")
}

func (m *NoteListModel) renderNote(n api.Note, width int) string {
	key := n.ID + "@" + n.UpdatedAt
	if hit, ok := m.cache.Get(key); ok {
		return hit
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(n.Title))
	b.WriteString("\n")
	if len(n.Tags) > 0 {
		b.WriteString(helpStyle(strings.Join(n.Tags, ", ")))
		b.WriteString("\n")
	}
	if updated := n.Updated(); !updated.IsZero() {
		b.WriteString(helpStyle("updated " + updated.Format("2006-01-02 15:04")))
		b.WriteString("\n")
	}
	b.WriteString(note.RenderMarkdown(n.Content, width-4))

	rendered := b.String()
	m.cache.Put(key, rendered)
	return rendered
}

func (m *NoteListModel) renderResult(res api.RetrievedNote, width int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(res.Title))
	b.WriteString("\n")
	b.WriteString(helpStyle(fmt.Sprintf("%.0f%% match", res.SimilarityScore*100)))
	if len(res.Tags) > 0 {
		b.WriteString(helpStyle(" · " + strings.Join(res.Tags, ", ")))
	}
	b.WriteString("\n")
	b.WriteString(note.RenderMarkdown(res.Content, width-4))
	return b.String()
}

// selectedNote resolves the highlighted list row to a full note when one
// is available locally.
func (m *NoteListModel) selectedNote() (api.Note, bool) {
	item, ok := m.list.SelectedItem().(ListItem)
	if !ok {
		return api.Note{}, false
	}
	for _, n := range m.allNotes {
		if n.ID == item.id {
			return n, true
		}
	}
	return api.Note{}, false
}

func (m *NoteListModel) statusLine() string {
	if m.stats == nil {
		return ""
	}
	return helpStyle(fmt.Sprintf("%d notes · %d tags", m.stats.TotalNotes, len(m.stats.TagsCount)))
}
