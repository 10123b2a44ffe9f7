package status

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mnemonic-notes/mnemo/internal/api"
	"github.com/mnemonic-notes/mnemo/internal/state"
)

func NewCmdStatus(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		Aliases: []string{"check"},
		Short:   "Check whether you are authenticated.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), api.RequestTimeout)
			defer cancel()

			token := s.Tokens.Token(ctx)
			if token == "" {
				fmt.Println("Not authenticated. Run 'mnemo auth login' or start a browser session.")
				return nil
			}

			source := "session endpoint"
			if s.Config.Token != "" {
				source = "stored token"
			}
			fmt.Printf("Authenticated via %s.\n", source)

			if expiry := s.Tokens.Expiry(); !expiry.IsZero() {
				fmt.Printf("Token expires %s.\n", expiry.Format("2006-01-02 15:04:05 MST"))
			}
			return nil
		},
	}
}
