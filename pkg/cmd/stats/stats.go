package stats

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/mnemonic-notes/mnemo/internal/api"
	"github.com/mnemonic-notes/mnemo/internal/state"
)

func NewCmdStats(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show collection statistics.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), api.RequestTimeout)
			defer cancel()

			stats, err := s.Notes.Stats(ctx)
			if err != nil {
				return err
			}

			fmt.Printf("Notes: %d\n", stats.TotalNotes)
			if len(stats.TagsCount) == 0 {
				return nil
			}

			type tagCount struct {
				tag   string
				count int
			}
			tags := make([]tagCount, 0, len(stats.TagsCount))
			for tag, count := range stats.TagsCount {
				tags = append(tags, tagCount{tag, count})
			}
			sort.Slice(tags, func(i, j int) bool {
				if tags[i].count != tags[j].count {
					return tags[i].count > tags[j].count
				}
				return tags[i].tag < tags[j].tag
			})

			fmt.Println("Tags:")
			for _, tc := range tags {
				fmt.Printf("  %-20s %d\n", tc.tag, tc.count)
			}
			return nil
		},
	}
}
