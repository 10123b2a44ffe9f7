package new

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/mnemonic-notes/mnemo/internal/api"
	"github.com/mnemonic-notes/mnemo/internal/state"
)

func NewCmdNew(s *state.State) *cobra.Command {
	var contentFlag string

	cmd := &cobra.Command{
		Use:     "new [title] [tags]",
		Aliases: []string{"c", "create"},
		Short:   "Capture a new note.",
		Long: heredoc.Doc(`
			Creates a note on the backend. Takes a required title and an
			optional quoted list of space-separated tags. Content comes from
			--content, or from stdin when piped.

			    mnemo new "Garage plans" "home decisions" --content "Insulate first."
			    cat meeting.md | mnemo new "Standup 2026-08-31"
		`),
		Example: `mnemo new "Porsche research" "cars wishlist" --content "993 over 996."`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("error: no title given, try again with 'mnemo new [title]'")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(s, args, contentFlag)
		},
	}

	cmd.Flags().StringVarP(&contentFlag, "content", "c", "", "Note content")
	return cmd
}

func run(s *state.State, args []string, content string) error {
	title := args[0]

	var tags []string
	if len(args) > 1 {
		tags = strings.Fields(args[1])
	}

	if content == "" {
		if stat, err := os.Stdin.Stat(); err == nil && stat.Mode()&os.ModeCharDevice == 0 {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("reading stdin: %w", err)
			}
			content = string(data)
		}
	}
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("error: no content given, pass --content or pipe it on stdin")
	}

	ctx, cancel := context.WithTimeout(context.Background(), api.RequestTimeout)
	defer cancel()

	note, err := s.Notes.Create(ctx, api.NoteCreate{
		Title:   title,
		Content: content,
		Tags:    tags,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Created note %q (%s)\n", note.Title, note.ID)
	return nil
}
