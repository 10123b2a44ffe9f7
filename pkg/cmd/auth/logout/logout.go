package logout

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mnemonic-notes/mnemo/internal/state"
)

func NewCmdLogout(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored token.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.Config.ChangeToken(""); err != nil {
				return err
			}
			s.Tokens.Clear()
			fmt.Println("Successfully logged out.")
			return nil
		},
	}
}
