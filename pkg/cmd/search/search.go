package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/mnemonic-notes/mnemo/internal/api"
	"github.com/mnemonic-notes/mnemo/internal/note"
	"github.com/mnemonic-notes/mnemo/internal/state"
)

const snippetLen = 120

func NewCmdSearch(s *state.State) *cobra.Command {
	var (
		topKFlag   int
		minSimFlag float64
	)

	cmd := &cobra.Command{
		Use:     "search [query...]",
		Aliases: []string{"s", "find"},
		Short:   "Search notes by meaning, without answer synthesis.",
		Long: heredoc.Doc(`
			Retrieves the notes most similar to the query and lists them ranked,
			with no synthesized answer. Faster than ask when you just want to
			find a note.
		`),
		Example: "mnemo search porsche",
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			if strings.TrimSpace(query) == "" {
				return fmt.Errorf("error: no query given, try 'mnemo search [query]'")
			}

			minSim := s.Config.Query.MinSimilarity
			if cmd.Flags().Changed("min-similarity") {
				minSim = minSimFlag
			}
			topK := s.Config.Query.TopK
			if cmd.Flags().Changed("top-k") {
				topK = topKFlag
			}

			ctx, cancel := context.WithTimeout(context.Background(), api.RequestTimeout)
			defer cancel()

			res, err := s.Client.Search(ctx, api.SearchRequest{
				Query:         query,
				TopK:          topK,
				MinSimilarity: &minSim,
			})
			if err != nil {
				return err
			}

			if len(res.Results) == 0 {
				fmt.Printf("No notes matched %q.\n", query)
				return nil
			}

			for i, n := range res.Results {
				fmt.Printf("%d. %s (%.0f%% match)\n", i+1, n.Title, n.SimilarityScore*100)
				if snippet := note.Snippet(n.Content, snippetLen); snippet != "" {
					fmt.Printf("   %s\n", snippet)
				}
				if len(n.Tags) > 0 {
					fmt.Printf("   tags: %s\n", strings.Join(n.Tags, ", "))
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&topKFlag, "top-k", "k", 0, "Number of notes to retrieve")
	cmd.Flags().Float64VarP(&minSimFlag, "min-similarity", "m", 0, "Minimum similarity score [0, 1]")
	return cmd
}
