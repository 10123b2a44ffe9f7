// Package notes is the interactive note browser: a list pane and a viewer
// pane on wide terminals, a single-pane stack with back navigation on
// narrow ones. All selection changes funnel through the session
// controller; the list never mutates selection on its own.
package notes

import (
	"fmt"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/mnemonic-notes/mnemo/internal/api"
	"github.com/mnemonic-notes/mnemo/internal/cache"
	"github.com/mnemonic-notes/mnemo/internal/query"
	"github.com/mnemonic-notes/mnemo/internal/session"
	"github.com/mnemonic-notes/mnemo/internal/state"
	"github.com/mnemonic-notes/mnemo/internal/tui/notes/submodels"
)

const previewCacheSize = 128

type NoteListModel struct {
	list         list.Model
	cache        *cache.Cache
	keys         *listKeyMap
	delegateKeys *delegateKeyMap
	state        *state.State
	ctrl         *session.Controller
	loc          session.Locator
	input        submodels.InputModel
	voice        submodels.InputModel
	form         submodels.FormModel

	allNotes []api.Note
	fetched  *api.Note
	stats    *api.NoteStatsResponse

	width  int
	height int

	searching bool
	voicing   bool
	creating  bool
	editing   bool
	editID    string
}

func NewNoteListModel(s *state.State, ctrl *session.Controller, loc session.Locator) *NoteListModel {
	dkeys := newDelegateKeyMap()
	lkeys := newListKeyMap()
	delegate := newItemDelegate(dkeys, s.Notes)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "All Notes"
	l.Styles.Title = titleStyle

	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{
			lkeys.search,
			lkeys.create,
		}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{
			lkeys.search,
			lkeys.voiceSearch,
			lkeys.create,
			lkeys.edit,
			lkeys.refresh,
			lkeys.copyContent,
			lkeys.copyLink,
			lkeys.openCited,
		}
	}

	m := &NoteListModel{
		list:         l,
		cache:        cache.New(previewCacheSize),
		keys:         lkeys,
		delegateKeys: dkeys,
		state:        s,
		ctrl:         ctrl,
		loc:          loc,
		input:        submodels.NewInputModel("Search notes, ideas, or decisions…"),
		voice:        submodels.NewInputModel("Path to recorded audio (.wav)"),
		form:         submodels.NewFormModel(),
	}

	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		m.width, m.height = w, h
	}
	return m
}

func (m *NoteListModel) Init() tea.Cmd {
	return tea.Batch(m.loadNotesCmd(), m.loadStatsCmd(), textinput.Blink)
}

func (m *NoteListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		_, v := appStyle.GetFrameSize()
		m.list.SetSize(m.listWidth(), msg.Height-v-4)

	case notesLoadedMsg:
		m.allNotes = msg.list.Notes
		if !m.ctrl.SearchMode() {
			cmds = append(cmds, m.list.SetItems(itemsFromNotes(m.allNotes)))
		}
		if cmd := m.resolveSelection(); cmd != nil {
			cmds = append(cmds, cmd)
		}

	case statsLoadedMsg:
		m.stats = msg.stats

	case noteFetchedMsg:
		m.fetched = msg.note

	case noteSavedMsg:
		m.creating = false
		m.editing = false
		verb := "Updated"
		if msg.created {
			verb = "Created"
		}
		cmds = append(cmds,
			m.list.NewStatusMessage(statusStyle(verb+" "+msg.note.Title)),
			m.loadNotesCmd(),
			m.loadStatsCmd(),
		)

	case noteDeletedMsg:
		removeItemByID(&m.list, msg.id)
		if m.ctrl.Selected() == msg.id {
			m.ctrl.GoBack()
		}
		cmds = append(cmds,
			m.list.NewStatusMessage(statusStyle("Note deleted")),
			m.loadStatsCmd(),
		)

	case queryDoneMsg:
		cmds = append(cmds, m.handleQueryDone(msg)...)

	case requestFailedMsg:
		m.state.Logger.Warn("request failed: " + msg.op)
		cmds = append(cmds, m.list.NewStatusMessage(
			errorStyle(fmt.Sprintf("Failed to %s: %v", msg.op, msg.err)),
		))

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch {
		case m.creating || m.editing:
			return m.handleFormUpdate(msg)
		case m.searching:
			return m.handleSearchUpdate(msg)
		case m.voicing:
			return m.handleVoiceUpdate(msg)
		default:
			model, cmd := m.handleDefaultUpdate(msg)
			if cmd != nil {
				return model, cmd
			}
		}
	}

	nl, cmd := m.list.Update(msg)
	m.list = nl
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *NoteListModel) handleSearchUpdate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.exitAltView):
		m.searching = false
		m.input.Input.Blur()
		return m, nil

	case key.Matches(msg, m.keys.submitAltView):
		text := m.input.Input.Value()
		m.searching = false
		m.input.Input.Blur()
		if strings.TrimSpace(text) == "" {
			return m, nil
		}
		return m, tea.Batch(
			m.list.NewStatusMessage(statusStyle("Searching…")),
			m.textQueryCmd(text),
		)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *NoteListModel) handleVoiceUpdate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.exitAltView):
		m.voicing = false
		m.voice.Input.Blur()
		return m, nil

	case key.Matches(msg, m.keys.submitAltView):
		path := strings.TrimSpace(m.voice.Input.Value())
		m.voicing = false
		m.voice.Input.Blur()
		if path == "" {
			return m, nil
		}
		return m, tea.Batch(
			m.list.NewStatusMessage(statusStyle("Transcribing…")),
			m.voiceQueryCmd(path),
		)
	}

	var cmd tea.Cmd
	m.voice, cmd = m.voice.Update(msg)
	return m, cmd
}

func (m *NoteListModel) handleFormUpdate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.creating = false
		m.editing = false
		return m, nil

	case "tab":
		m.form.NextField()
		return m, nil

	case "shift+tab":
		m.form.PrevField()
		return m, nil

	case "ctrl+s":
		payload := m.form.Payload()
		if payload.Title == "" {
			return m, m.list.NewStatusMessage(errorStyle("Title is required"))
		}
		if m.editing {
			return m, m.updateNoteCmd(m.editID, payload)
		}
		return m, m.createNoteCmd(payload)
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m *NoteListModel) handleDefaultUpdate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.openNote):
		if item, ok := m.list.SelectedItem().(ListItem); ok {
			m.ctrl.SelectNote(item.id)
			return m, m.resolveSelection()
		}
		return m, nil

	case key.Matches(msg, m.keys.search):
		m.searching = true
		return m, m.input.Input.Focus()

	case key.Matches(msg, m.keys.voiceSearch):
		m.voicing = true
		return m, m.voice.Input.Focus()

	case key.Matches(msg, m.keys.create):
		m.form.Reset()
		m.creating = true
		return m, nil

	case key.Matches(msg, m.keys.edit):
		if n, ok := m.selectedNote(); ok {
			m.form.Reset()
			m.form.SetNote(n)
			m.editing = true
			m.editID = n.ID
			return m, nil
		}
		return m, m.list.NewStatusMessage(errorStyle("Note not loaded for editing"))

	case key.Matches(msg, m.keys.refresh):
		m.state.Notes.Invalidate()
		return m, tea.Batch(m.loadNotesCmd(), m.loadStatsCmd())

	case key.Matches(msg, m.keys.copyContent):
		if content, ok := m.selectedContent(); ok {
			if err := clipboard.WriteAll(content); err != nil {
				return m, m.list.NewStatusMessage(errorStyle("Clipboard unavailable"))
			}
			return m, m.list.NewStatusMessage(statusStyle("Copied note content"))
		}
		return m, nil

	case key.Matches(msg, m.keys.copyLink):
		if err := clipboard.WriteAll(m.loc.Current()); err != nil {
			return m, m.list.NewStatusMessage(errorStyle("Clipboard unavailable"))
		}
		return m, m.list.NewStatusMessage(statusStyle("Copied link"))

	case key.Matches(msg, m.keys.openCited):
		out := m.state.Engine.Active()
		if id := firstCited(&out); id != "" {
			m.ctrl.SelectNote(id)
			return m, m.resolveSelection()
		}
		return m, nil

	case key.Matches(msg, m.keys.toggleHelpMenu):
		m.list.SetShowHelp(!m.list.ShowHelp())
		return m, nil

	case key.Matches(msg, m.keys.toggleStatusBar):
		m.list.SetShowStatusBar(!m.list.ShowStatusBar())
		return m, nil

	case key.Matches(msg, m.keys.back):
		if m.isNarrow() && m.ctrl.ViewerOpen() {
			m.ctrl.GoBack()
			return m, nil
		}
		if m.ctrl.SearchMode() {
			return m, m.clearSearch()
		}
		return m, nil
	}

	return m, nil
}

func (m *NoteListModel) handleQueryDone(msg queryDoneMsg) []tea.Cmd {
	var cmds []tea.Cmd

	if msg.err != nil {
		cmds = append(cmds, m.list.NewStatusMessage(
			errorStyle(fmt.Sprintf("Query failed: %v", msg.err)),
		))
		return cmds
	}

	res := msg.result
	m.ctrl.ApplySearchResults(res.RetrievedNotes, res.Query)

	if msg.kind == query.KindVoice {
		// Show the user what the system heard.
		m.input.Input.SetValue(res.Query)
		if len(res.RetrievedNotes) > 0 {
			m.ctrl.ApplyVoiceResult(res.RetrievedNotes[0].ID)
		}
	}

	if m.ctrl.SearchMode() {
		cmds = append(cmds, m.list.SetItems(itemsFromResults(res.RetrievedNotes)))
		m.list.ResetSelected()
		m.list.Title = fmt.Sprintf("Results for %q", res.Query)
	}

	if len(res.RetrievedNotes) == 0 {
		cmds = append(cmds, m.list.NewStatusMessage(
			statusStyle(fmt.Sprintf("No notes matched %q", res.Query)),
		))
	}

	return cmds
}

// clearSearch leaves search mode and restores the browse-all collection.
// Selection survives; only a new empty search clears it.
func (m *NoteListModel) clearSearch() tea.Cmd {
	m.ctrl.ClearSearch()
	m.state.Engine.Reset()
	m.input.Input.Reset()
	m.list.Title = "All Notes"
	return m.list.SetItems(itemsFromNotes(m.allNotes))
}

// resolveSelection makes sure the selected note is renderable: when it is
// neither in the active results nor the browse collection, fetch it.
func (m *NoteListModel) resolveSelection() tea.Cmd {
	id := m.ctrl.Selected()
	if id == "" {
		return nil
	}
	if m.ctrl.SearchMode() {
		if _, ok := m.ctrl.Result(id); ok {
			return nil
		}
	}
	for _, n := range m.allNotes {
		if n.ID == id {
			return nil
		}
	}
	if m.fetched != nil && m.fetched.ID == id {
		return nil
	}
	return m.fetchNoteCmd(id)
}

func (m *NoteListModel) selectedContent() (string, bool) {
	id := m.ctrl.Selected()
	if id == "" {
		return "", false
	}
	if res, ok := m.ctrl.Result(id); ok {
		return res.Content, true
	}
	for _, n := range m.allNotes {
		if n.ID == id {
			return n.Content, true
		}
	}
	if m.fetched != nil && m.fetched.ID == id {
		return m.fetched.Content, true
	}
	return "", false
}

func (m *NoteListModel) listWidth() int {
	if m.isNarrow() {
		return m.width - 4
	}
	return m.width / 2
}

func (m *NoteListModel) View() string {
	if m.creating || m.editing {
		modelStyle := lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).Padding(0, 1)
		return appStyle.Render(modelStyle.Render(m.form.View()))
	}

	promptLine := m.input.View()
	if m.voicing {
		promptLine = titleStyle.Render("Voice query") + " " + m.voice.View()
	}

	answer := renderAnswer(m.state.Engine.Active(), m.contentWidth())

	if m.isNarrow() {
		if m.ctrl.ViewerOpen() {
			viewer := viewerStyle.Render(m.viewerContent(m.width - 4))
			back := helpStyle("esc: back to notes")
			return appStyle.Render(lipgloss.JoinVertical(lipgloss.Left, back, viewer, answer))
		}
		sections := []string{m.list.View(), promptLine}
		if answer != "" {
			sections = append(sections, answer)
		}
		sections = append(sections, m.statusLine())
		return appStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
	}

	left := listStyle.Width(m.listWidth()).Render(m.list.View())

	rightParts := []string{
		viewerStyle.
			Height(m.list.Height() - 4).
			MaxHeight(m.list.Height()).
			Render(m.viewerContent(m.contentWidth())),
	}
	if answer != "" {
		rightParts = append(rightParts, answer)
	}
	rightParts = append(rightParts, promptLine)
	right := lipgloss.JoinVertical(lipgloss.Left, rightParts...)

	layout := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	return appStyle.Render(lipgloss.JoinVertical(lipgloss.Left, layout, m.statusLine()))
}

func (m *NoteListModel) contentWidth() int {
	if m.isNarrow() {
		return m.width - 4
	}
	return m.width - m.listWidth() - 6
}

// Run starts the browser. A non-empty startNote preselects that note, as
// when following a shared link; otherwise the previous session's locator
// is restored.
func Run(s *state.State, startNote string) error {
	loc := session.NewFileLocator(s.SessionPath)
	ctrl := session.NewController(loc, s.Logger)
	if startNote != "" {
		ctrl.SelectNote(startNote)
	}

	m := NewNoteListModel(s, ctrl, loc)
	if _, err := tea.NewProgram(m, tea.WithInput(os.Stdin), tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("error running notes browser: %w", err)
	}
	return nil
}
