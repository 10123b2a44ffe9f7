package notes

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mnemonic-notes/mnemo/internal/api"
	"github.com/mnemonic-notes/mnemo/internal/query"
)

type notesLoadedMsg struct{ list *api.NoteListResponse }

type statsLoadedMsg struct{ stats *api.NoteStatsResponse }

type noteFetchedMsg struct{ note *api.Note }

type noteSavedMsg struct {
	note    *api.Note
	created bool
}

type noteDeletedMsg struct{ id string }

type queryDoneMsg struct {
	kind   query.Kind
	result *api.QueryResult
	err    error
}

type requestFailedMsg struct {
	op  string
	err error
}

func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), api.RequestTimeout)
}

func (m *NoteListModel) loadNotesCmd() tea.Cmd {
	store := m.state.Notes
	params := api.ListParams{
		PageSize:  m.state.Config.Query.PageSize,
		SortBy:    m.state.Config.Query.SortBy,
		SortOrder: m.state.Config.Query.SortOrder,
	}
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		list, err := store.List(ctx, params)
		if err != nil {
			return requestFailedMsg{op: "load notes", err: err}
		}
		return notesLoadedMsg{list: list}
	}
}

func (m *NoteListModel) loadStatsCmd() tea.Cmd {
	store := m.state.Notes
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		stats, err := store.Stats(ctx)
		if err != nil {
			return requestFailedMsg{op: "load stats", err: err}
		}
		return statsLoadedMsg{stats: stats}
	}
}

func (m *NoteListModel) fetchNoteCmd(id string) tea.Cmd {
	store := m.state.Notes
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		note, err := store.Note(ctx, id)
		if err != nil {
			return requestFailedMsg{op: "fetch note", err: err}
		}
		return noteFetchedMsg{note: note}
	}
}

// textQueryCmd runs a text query through the engine. A superseded
// completion produces no message at all; the engine already dropped it.
func (m *NoteListModel) textQueryCmd(text string) tea.Cmd {
	engine := m.state.Engine
	topK := m.state.Config.Query.TopK
	minSim := m.state.Config.Query.MinSimilarity
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		res, err := engine.RunText(ctx, text, topK, &minSim)
		if errors.Is(err, query.ErrSuperseded) {
			return nil
		}
		if res == nil && err == nil {
			return nil // empty query, no-op
		}
		return queryDoneMsg{kind: query.KindText, result: res, err: err}
	}
}

func (m *NoteListModel) voiceQueryCmd(audioPath string) tea.Cmd {
	engine := m.state.Engine
	topK := m.state.Config.Query.TopK
	minSim := m.state.Config.Query.MinSimilarity
	return func() tea.Msg {
		f, err := os.Open(audioPath)
		if err != nil {
			return requestFailedMsg{op: "open audio", err: err}
		}
		defer f.Close()

		ctx, cancel := requestContext()
		defer cancel()
		res, err := engine.RunVoice(ctx, f, filepath.Base(audioPath), topK, &minSim)
		if errors.Is(err, query.ErrSuperseded) {
			return nil
		}
		return queryDoneMsg{kind: query.KindVoice, result: res, err: err}
	}
}

func (m *NoteListModel) createNoteCmd(payload api.NoteCreate) tea.Cmd {
	store := m.state.Notes
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		note, err := store.Create(ctx, payload)
		if err != nil {
			return requestFailedMsg{op: "create note", err: err}
		}
		return noteSavedMsg{note: note, created: true}
	}
}

func (m *NoteListModel) updateNoteCmd(id string, payload api.NoteCreate) tea.Cmd {
	store := m.state.Notes
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		update := api.NoteUpdate{
			Title:   &payload.Title,
			Content: &payload.Content,
			Tags:    &payload.Tags,
		}
		note, err := store.Update(ctx, id, update)
		if err != nil {
			return requestFailedMsg{op: "update note", err: err}
		}
		return noteSavedMsg{note: note}
	}
}

func deleteNoteCmd(store noteDeleter, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		if _, err := store.Delete(ctx, id); err != nil {
			return requestFailedMsg{op: "delete note", err: err}
		}
		return noteDeletedMsg{id: id}
	}
}

type noteDeleter interface {
	Delete(ctx context.Context, id string) (*api.NoteDeleteResponse, error)
}
