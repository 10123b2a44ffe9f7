package login

import (
	"fmt"
	"os"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mnemonic-notes/mnemo/internal/state"
)

func NewCmdLogin(s *state.State) *cobra.Command {
	var tokenFlag string

	cmd := &cobra.Command{
		Use:     "login",
		Aliases: []string{"l"},
		Short:   "Store a personal API token.",
		Long: heredoc.Doc(`
			Stores a personal token in the config file, replacing session-
			endpoint authentication. The token is prompted for without echo
			unless passed with --token.
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			if s.Config.Token != "" {
				fmt.Println("You are already authenticated. Run 'mnemo auth logout' first to change tokens.")
				return nil
			}

			token := tokenFlag
			if token == "" {
				fmt.Print("Token: ")
				raw, err := term.ReadPassword(int(os.Stdin.Fd()))
				fmt.Println()
				if err != nil {
					return fmt.Errorf("reading token: %w", err)
				}
				token = string(raw)
			}

			token = strings.TrimSpace(token)
			if token == "" {
				return fmt.Errorf("error: empty token")
			}

			if err := s.Config.ChangeToken(token); err != nil {
				return err
			}
			s.Tokens.Clear()

			fmt.Println("Successfully logged in.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&tokenFlag, "token", "t", "", "Personal API token")
	return cmd
}
