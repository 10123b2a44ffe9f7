package submodels

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mnemonic-notes/mnemo/internal/api"
)

const (
	fieldTitle = iota
	fieldTags
	fieldContent
	fieldCount
)

var (
	formTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#0AF")).
			Background(lipgloss.Color("transparent")).
			Padding(1, 0)

	formHintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#767676"))
)

// FormModel collects a note's title, tags, and content for create and
// edit. Tags are space separated and lowercased on submit.
type FormModel struct {
	Title   textinput.Model
	Tags    textinput.Model
	Content textarea.Model
	Focused int
	editing bool
}

func NewFormModel() FormModel {
	title := textinput.New()
	title.Placeholder = "Title"
	title.CharLimit = 120
	title.Width = 50
	title.Prompt = ""
	title.Focus()

	tags := textinput.New()
	tags.Placeholder = "Tags (space separated)"
	tags.CharLimit = 256
	tags.Width = 50
	tags.Prompt = ""

	content := textarea.New()
	content.Placeholder = "Write your note…"
	content.CharLimit = 0
	content.SetWidth(72)
	content.SetHeight(12)

	return FormModel{
		Title:   title,
		Tags:    tags,
		Content: content,
	}
}

// SetNote preloads the form for editing.
func (m *FormModel) SetNote(n api.Note) {
	m.Title.SetValue(n.Title)
	m.Tags.SetValue(strings.Join(n.Tags, " "))
	m.Content.SetValue(n.Content)
	m.editing = true
}

func (m *FormModel) Reset() {
	m.Title.Reset()
	m.Tags.Reset()
	m.Content.Reset()
	m.Focused = fieldTitle
	m.editing = false
	m.focusField()
}

func (m *FormModel) NextField() {
	m.Focused = (m.Focused + 1) % fieldCount
	m.focusField()
}

func (m *FormModel) PrevField() {
	m.Focused = (m.Focused + fieldCount - 1) % fieldCount
	m.focusField()
}

func (m *FormModel) focusField() {
	m.Title.Blur()
	m.Tags.Blur()
	m.Content.Blur()

	switch m.Focused {
	case fieldTitle:
		m.Title.Focus()
	case fieldTags:
		m.Tags.Focus()
	case fieldContent:
		m.Content.Focus()
	}
}

// ContentFocused reports whether keystrokes belong to the textarea, where
// enter inserts a newline instead of submitting.
func (m FormModel) ContentFocused() bool {
	return m.Focused == fieldContent
}

func (m FormModel) Update(msg tea.Msg) (FormModel, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.Title, cmd = m.Title.Update(msg)
	cmds = append(cmds, cmd)
	m.Tags, cmd = m.Tags.Update(msg)
	cmds = append(cmds, cmd)
	m.Content, cmd = m.Content.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// Payload assembles the create payload; the caller validates the title.
func (m FormModel) Payload() api.NoteCreate {
	return api.NoteCreate{
		Title:   strings.TrimSpace(m.Title.Value()),
		Content: m.Content.Value(),
		Tags:    splitTags(m.Tags.Value()),
	}
}

func splitTags(raw string) []string {
	fields := strings.Fields(strings.ToLower(raw))
	tags := make([]string, 0, len(fields))
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if !seen[f] {
			seen[f] = true
			tags = append(tags, f)
		}
	}
	return tags
}

func (m FormModel) View() string {
	header := "New Note"
	if m.editing {
		header = "Edit Note"
	}

	return fmt.Sprintf(
		"%s\n\n%s\n%s\n\n%s\n%s\n\n%s\n%s\n\n%s",
		formTitleStyle.Render(header),
		formHintStyle.Render("Title"),
		m.Title.View(),
		formHintStyle.Render("Tags"),
		m.Tags.View(),
		formHintStyle.Render("Content"),
		m.Content.View(),
		formHintStyle.Render("tab: next field · ctrl+s: save · esc: cancel"),
	)
}
