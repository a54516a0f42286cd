package cli

import (
	"github.com/alexanderramin/soapnote/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootFlags are the persistent flags every command accepts.
type RootFlags struct {
	Config  string
	Modules string
	Note    string
}

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Catalog service.CatalogService
	Notes   service.NoteService
	Search  service.SearchService
	Logger  *zap.Logger

	// Note names the hold list commands work on.
	Note         string
	SuggestLimit int

	IsInteractive func() bool

	// Setup wires the services from the parsed root flags. Tests leave it nil
	// and fill the services directly.
	Setup func(flags RootFlags) error
}

// NewRootCmd creates the top-level "soapnote" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var flags RootFlags

	root := &cobra.Command{
		Use:           "soapnote",
		Short:         "Compose SOAP notes from clinical scenario modules",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.Setup != nil {
				if err := app.Setup(flags); err != nil {
					return err
				}
			}
			if flags.Note != "" {
				app.Note = flags.Note
			}
			if app.Note == "" {
				app.Note = "default"
			}
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.Config, "config", "", "config file (default soapnote.yaml in . or ~/.soapnote)")
	pf.StringVar(&flags.Modules, "modules", "", "directory of module files")
	pf.StringVar(&flags.Note, "note", "", "hold list to work on")

	root.AddCommand(
		newGroupsCmd(app),
		newListCmd(app),
		newShowCmd(app),
		newValidateCmd(app),
		newComposeCmd(app),
		newHoldCmd(app),
		newNoteCmd(app),
		newAmendCmd(app),
		newResetCmd(app),
		newLogCmd(app),
		newSearchCmd(app),
		newPickCmd(app),
	)

	return root
}
