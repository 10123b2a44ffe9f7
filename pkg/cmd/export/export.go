package export

import (
	"context"
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/mnemonic-notes/mnemo/internal/api"
	"github.com/mnemonic-notes/mnemo/internal/note"
	"github.com/mnemonic-notes/mnemo/internal/picker"
	"github.com/mnemonic-notes/mnemo/internal/state"
)

func NewCmdExport(s *state.State) *cobra.Command {
	var (
		dirFlag string
		allFlag bool
	)

	cmd := &cobra.Command{
		Use:     "export [id]",
		Aliases: []string{"e"},
		Short:   "Export notes to markdown files.",
		Long: heredoc.Doc(`
			Writes notes as markdown files with yaml frontmatter (title, tags,
			timestamps), suitable for Obsidian or any plain-text vault. With no
			id, a fuzzy finder selects the note; --all exports the whole
			collection.
		`),
		Example: heredoc.Doc(`
			mnemo export --all --dir ~/vault
			mnemo export 3f2a9c
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if allFlag {
				return exportAll(s, dirFlag)
			}
			if len(args) == 1 {
				return exportByID(s, dirFlag, args[0])
			}
			return exportPicked(s, dirFlag)
		},
	}

	cmd.Flags().StringVarP(&dirFlag, "dir", "d", ".", "Destination directory")
	cmd.Flags().BoolVarP(&allFlag, "all", "a", false, "Export every note")
	return cmd
}

func exportByID(s *state.State, dir, id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), api.RequestTimeout)
	defer cancel()

	n, err := s.Notes.Note(ctx, id)
	if err != nil {
		return err
	}

	path, err := note.Export(dir, *n)
	if err != nil {
		return err
	}
	fmt.Printf("Exported %q to %s\n", n.Title, path)
	return nil
}

func exportPicked(s *state.State, dir string) error {
	notes, err := collect(s)
	if err != nil {
		return err
	}

	n, err := picker.New(notes, "Select a note to export.").Run("")
	if err != nil {
		return err
	}

	path, err := note.Export(dir, n)
	if err != nil {
		return err
	}
	fmt.Printf("Exported %q to %s\n", n.Title, path)
	return nil
}

func exportAll(s *state.State, dir string) error {
	notes, err := collect(s)
	if err != nil {
		return err
	}

	for _, n := range notes {
		if _, err := note.Export(dir, n); err != nil {
			return fmt.Errorf("exporting %q: %w", n.Title, err)
		}
	}
	fmt.Printf("Exported %d notes to %s\n", len(notes), dir)
	return nil
}

// collect pages through the whole collection.
func collect(s *state.State) ([]api.Note, error) {
	var notes []api.Note
	for page := 1; ; page++ {
		ctx, cancel := context.WithTimeout(context.Background(), api.RequestTimeout)
		list, err := s.Notes.List(ctx, api.ListParams{
			Page:      page,
			PageSize:  s.Config.Query.PageSize,
			SortBy:    s.Config.Query.SortBy,
			SortOrder: s.Config.Query.SortOrder,
		})
		cancel()
		if err != nil {
			return nil, err
		}

		notes = append(notes, list.Notes...)
		if len(list.Notes) == 0 || len(notes) >= list.Total {
			break
		}
	}
	return notes, nil
}
