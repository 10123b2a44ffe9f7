package notes

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/mnemonic-notes/mnemo/internal/state"
	"github.com/mnemonic-notes/mnemo/internal/tui/notes"
)

func NewCmdNotes(s *state.State) *cobra.Command {
	var noteFlag string

	cmd := &cobra.Command{
		Use:     "notes",
		Aliases: []string{"n", "browse"},
		Short:   "Browse your notes interactively.",
		Long: heredoc.Doc(`
			Opens the interactive browser: a note list, a reading pane, and a
			query box for asking questions over the collection. The previously
			open note is restored from the last session.
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return notes.Run(s, noteFlag)
		},
	}

	cmd.Flags().StringVarP(&noteFlag, "note", "n", "", "Open a specific note by id")
	return cmd
}
