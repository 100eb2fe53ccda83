package cli

import (
	"github.com/alexanderramin/planpin/internal/config"
	"github.com/alexanderramin/planpin/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Auth  service.AuthService
	Plans service.PlanService
	Tasks service.TaskService

	// Notices controls how long TUI notices stay on screen.
	Notices config.Notices

	// IsInteractive reports whether stdin is a terminal. Nil means false.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "planpin" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "planpin",
		Short: "Pin construction tasks onto floor plans",
	}

	root.AddCommand(
		newLoginCmd(app),
		newLogoutCmd(app),
		newCompanyCmd(app),
		newPlansCmd(app),
		newPinsCmd(app),
		newTasksCmd(app),
		newViewCmd(app),
	)

	return root
}

// addProjectFlag registers the shared --project flag.
func addProjectFlag(fs *pflag.FlagSet, project *string) {
	fs.StringVarP(project, "project", "p", "", "Project ID (defaults to the last used project)")
}
