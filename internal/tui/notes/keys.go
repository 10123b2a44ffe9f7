package notes

import "github.com/charmbracelet/bubbles/key"

type listKeyMap struct {
	openNote        key.Binding
	search          key.Binding
	voiceSearch     key.Binding
	create          key.Binding
	edit            key.Binding
	refresh         key.Binding
	copyContent     key.Binding
	copyLink        key.Binding
	openCited       key.Binding
	back            key.Binding
	submitAltView   key.Binding
	exitAltView     key.Binding
	toggleHelpMenu  key.Binding
	toggleStatusBar key.Binding
}

func newListKeyMap() *listKeyMap {
	return &listKeyMap{
		openNote: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("↵", "open"),
		),
		search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "ask / search"),
		),
		voiceSearch: key.NewBinding(
			key.WithKeys("ctrl+v"),
			key.WithHelp("ctrl+v", "voice query (audio file)"),
		),
		create: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "create"),
		),
		edit: key.NewBinding(
			key.WithKeys("E"),
			key.WithHelp("E", "edit"),
		),
		refresh: key.NewBinding(
			key.WithKeys("f5"),
			key.WithHelp("f5", "refresh"),
		),
		copyContent: key.NewBinding(
			key.WithKeys("Y"),
			key.WithHelp("Y", "copy note"),
		),
		copyLink: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "copy link"),
		),
		openCited: key.NewBinding(
			key.WithKeys("O"),
			key.WithHelp("O", "open top cited note"),
		),
		back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back / clear search"),
		),
		submitAltView: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("↵", "submit"),
		),
		exitAltView: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		toggleHelpMenu: key.NewBinding(
			key.WithKeys("H"),
			key.WithHelp("H", "toggle help"),
		),
		toggleStatusBar: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "toggle status"),
		),
	}
}
