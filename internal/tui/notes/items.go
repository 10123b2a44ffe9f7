package notes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"

	"github.com/mnemonic-notes/mnemo/internal/api"
	"github.com/mnemonic-notes/mnemo/internal/note"
)

const snippetLen = 80

// ListItem is one row in the note list: either a browsed note or a ranked
// search result carrying its similarity score.
type ListItem struct {
	id           string
	title        string
	snippet      string
	tags         []string
	updated      string
	score        float64
	searchResult bool
}

func (i ListItem) Title() string {
	if i.title == "" {
		return "(untitled)"
	}
	return i.title
}

func (i ListItem) Description() string {
	description := ""

	if i.searchResult {
		description += fmt.Sprintf("%.0f%% match · ", i.score*100)
	}

	if len(i.tags) == 0 {
		description += "No tags"
	} else {
		description += strings.Join(i.tags, ", ")
	}

	if i.snippet != "" {
		description += "\n" + i.snippet
	}

	return description
}

func (i ListItem) FilterValue() string {
	return strings.Join([]string{i.Title(), strings.Join(i.tags, " ")}, " ")
}

func (i ListItem) ID() string {
	return i.id
}

func itemsFromNotes(ns []api.Note) []list.Item {
	items := make([]list.Item, 0, len(ns))
	for _, n := range ns {
		items = append(items, ListItem{
			id:      n.ID,
			title:   n.Title,
			snippet: note.Snippet(n.Content, snippetLen),
			tags:    n.Tags,
			updated: n.UpdatedAt,
		})
	}
	return items
}

// itemsFromResults preserves the backend's ranking order; the list must
// show results exactly as ranked.
func itemsFromResults(ns []api.RetrievedNote) []list.Item {
	items := make([]list.Item, 0, len(ns))
	for _, n := range ns {
		items = append(items, ListItem{
			id:           n.ID,
			title:        n.Title,
			snippet:      note.Snippet(n.Content, snippetLen),
			tags:         n.Tags,
			score:        n.SimilarityScore,
			searchResult: true,
		})
	}
	return items
}
