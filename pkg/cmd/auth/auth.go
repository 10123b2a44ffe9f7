package auth

import (
	"github.com/spf13/cobra"

	"github.com/mnemonic-notes/mnemo/internal/state"
	"github.com/mnemonic-notes/mnemo/pkg/cmd/auth/login"
	"github.com/mnemonic-notes/mnemo/pkg/cmd/auth/logout"
	"github.com/mnemonic-notes/mnemo/pkg/cmd/auth/status"
)

func NewCmdAuth(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "auth",
		Aliases: []string{"a"},
		Short:   "Manage authentication.",
	}

	cmd.AddCommand(login.NewCmdLogin(s))
	cmd.AddCommand(logout.NewCmdLogout(s))
	cmd.AddCommand(status.NewCmdStatus(s))

	return cmd
}
