package open

import (
	"context"
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mnemonic-notes/mnemo/internal/api"
	"github.com/mnemonic-notes/mnemo/internal/note"
	"github.com/mnemonic-notes/mnemo/internal/picker"
	"github.com/mnemonic-notes/mnemo/internal/state"
)

func NewCmdOpen(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "open [id]",
		Aliases: []string{"o", "view"},
		Short:   "Read one note in the terminal.",
		Long: `Prints a note rendered as terminal markdown. With an id argument the
  note is fetched directly; without one, a fuzzy finder with a rendered
  preview selects it. --copy puts the raw content on the clipboard
  instead of printing.`,
		Example: "mnemo open 3f2a9c  |  mnemo open",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			copyFlag, _ := cmd.Flags().GetBool("copy")

			var n api.Note
			var err error
			if len(args) == 1 {
				n, err = fetch(s, args[0])
			} else {
				n, err = pick(s)
			}
			if err != nil {
				return err
			}

			if copyFlag {
				if err := clipboard.WriteAll(n.Content); err != nil {
					return fmt.Errorf("clipboard unavailable: %w", err)
				}
				fmt.Printf("Copied %q to clipboard\n", n.Title)
				return nil
			}

			wrap := 100
			if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w < wrap {
				wrap = w
			}
			fmt.Println(note.RenderMarkdown("# "+n.Title+"\n\n"+n.Content, wrap))
			return nil
		},
	}

	cmd.Flags().BoolP("copy", "c", false, "Copy the note content instead of printing it")
	return cmd
}

func fetch(s *state.State, id string) (api.Note, error) {
	ctx, cancel := context.WithTimeout(context.Background(), api.RequestTimeout)
	defer cancel()

	n, err := s.Notes.Note(ctx, id)
	if err != nil {
		return api.Note{}, err
	}
	return *n, nil
}

func pick(s *state.State) (api.Note, error) {
	ctx, cancel := context.WithTimeout(context.Background(), api.RequestTimeout)
	defer cancel()

	list, err := s.Notes.List(ctx, api.ListParams{
		PageSize:  s.Config.Query.PageSize * 10,
		SortBy:    s.Config.Query.SortBy,
		SortOrder: s.Config.Query.SortOrder,
	})
	if err != nil {
		return api.Note{}, err
	}

	return picker.New(list.Notes, "Select a note to open.").Run("")
}
