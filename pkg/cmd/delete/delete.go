package delete

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/mnemonic-notes/mnemo/internal/api"
	"github.com/mnemonic-notes/mnemo/internal/picker"
	"github.com/mnemonic-notes/mnemo/internal/state"
)

func NewCmdDelete(s *state.State) *cobra.Command {
	var (
		allFlag   bool
		forceFlag bool
	)

	cmd := &cobra.Command{
		Use:     "delete [id]",
		Aliases: []string{"d", "rm"},
		Short:   "Delete a note, or the whole collection.",
		Long: heredoc.Doc(`
			Deletes a note by id, or via fuzzy selection when no id is given.
			--all wipes the entire collection; it asks for confirmation unless
			--force is set. Deletion is permanent.
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if allFlag {
				return deleteAll(s, forceFlag)
			}

			id := ""
			if len(args) == 1 {
				id = args[0]
			}
			return deleteOne(s, id, forceFlag)
		},
	}

	cmd.Flags().BoolVarP(&allFlag, "all", "a", false, "Delete every note")
	cmd.Flags().BoolVarP(&forceFlag, "force", "f", false, "Skip confirmation")
	return cmd
}

func deleteOne(s *state.State, id string, force bool) error {
	title := id
	if id == "" {
		ctx, cancel := context.WithTimeout(context.Background(), api.RequestTimeout)
		list, err := s.Notes.List(ctx, api.ListParams{
			PageSize:  s.Config.Query.PageSize * 10,
			SortBy:    s.Config.Query.SortBy,
			SortOrder: s.Config.Query.SortOrder,
		})
		cancel()
		if err != nil {
			return err
		}

		n, err := picker.New(list.Notes, "Select a note to delete.").Run("")
		if err != nil {
			return err
		}
		id = n.ID
		title = n.Title
	}

	if !force && !confirm(fmt.Sprintf("Delete %q permanently?", title)) {
		fmt.Println("Aborted.")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), api.RequestTimeout)
	defer cancel()

	if _, err := s.Notes.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Println("Note deleted.")
	return nil
}

func deleteAll(s *state.State, force bool) error {
	if !force && !confirm("Delete ALL notes permanently?") {
		fmt.Println("Aborted.")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), api.RequestTimeout)
	defer cancel()

	res, err := s.Notes.DeleteAll(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Deleted %d notes.\n", res.DeletedCount)
	return nil
}

func confirm(prompt string) bool {
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Printf("%s (y/n): ", prompt)
		response, err := reader.ReadString('\n')
		if err != nil {
			return false
		}

		switch strings.ToLower(strings.TrimSpace(response)) {
		case "y", "yes":
			return true
		case "n", "no":
			return false
		default:
			fmt.Println("Please answer 'y' or 'n'.")
		}
	}
}
