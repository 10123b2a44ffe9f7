package notes

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

func newItemDelegate(keys *delegateKeyMap, store noteDeleter) list.DefaultDelegate {
	d := list.NewDefaultDelegate()

	d.Styles.SelectedTitle = selectedItemStyle
	d.Styles.SelectedDesc = selectedItemStyle

	d.UpdateFunc = func(msg tea.Msg, m *list.Model) tea.Cmd {
		item, ok := m.SelectedItem().(ListItem)
		if !ok {
			return nil
		}

		switch msg := msg.(type) {
		case tea.KeyMsg:
			switch {
			case key.Matches(msg, keys.delete):
				return tea.Batch(
					m.NewStatusMessage(statusStyle("Deleting "+item.Title())),
					deleteNoteCmd(store, item.id),
				)
			}
		}

		return nil
	}

	d.ShortHelpFunc = func() []key.Binding {
		return []key.Binding{keys.delete}
	}
	d.FullHelpFunc = func() [][]key.Binding {
		return [][]key.Binding{{keys.delete}}
	}
	return d
}

func removeItemByID(m *list.Model, id string) {
	for idx, item := range m.Items() {
		li, ok := item.(ListItem)
		if !ok {
			continue
		}
		if li.id == id {
			m.RemoveItem(idx)
			return
		}
	}
}

type delegateKeyMap struct {
	delete key.Binding
}

func newDelegateKeyMap() *delegateKeyMap {
	return &delegateKeyMap{
		delete: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "delete"),
		),
	}
}
