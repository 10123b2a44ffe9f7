package root

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mnemonic-notes/mnemo/internal/constants"
	"github.com/mnemonic-notes/mnemo/internal/state"
	"github.com/mnemonic-notes/mnemo/pkg/cmd/ask"
	"github.com/mnemonic-notes/mnemo/pkg/cmd/auth"
	"github.com/mnemonic-notes/mnemo/pkg/cmd/delete"
	"github.com/mnemonic-notes/mnemo/pkg/cmd/export"
	"github.com/mnemonic-notes/mnemo/pkg/cmd/new"
	"github.com/mnemonic-notes/mnemo/pkg/cmd/notes"
	"github.com/mnemonic-notes/mnemo/pkg/cmd/open"
	"github.com/mnemonic-notes/mnemo/pkg/cmd/search"
	"github.com/mnemonic-notes/mnemo/pkg/cmd/stats"
)

func NewCmdRoot(s *state.State) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:     "mnemo",
		Version: constants.Version,
		Aliases: []string{"mn"},
		Short:   "Browse, capture, and ask questions of your notes.",
		Long: `A terminal client for your personal note collection.

  Notes live on the backend; this client browses them, captures new ones,
  and answers questions over them with cited sources.

  mnemo              launch the interactive browser
  mnemo ask "what did I decide about the garage?"
  `,
		// Launching the browser is the default action.
		RunE: notes.NewCmdNotes(s).RunE,
	}

	cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	viper.BindPFlag("debug", cmd.PersistentFlags().Lookup("debug"))

	cmd.AddCommand(
		notes.NewCmdNotes(s),
		new.NewCmdNew(s),
		open.NewCmdOpen(s),
		ask.NewCmdAsk(s),
		search.NewCmdSearch(s),
		stats.NewCmdStats(s),
		export.NewCmdExport(s),
		delete.NewCmdDelete(s),
		auth.NewCmdAuth(s),
	)

	return cmd, nil
}
