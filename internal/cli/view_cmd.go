package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newViewCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "view [plan-id]",
		Short: "Browse plans and place pins in the terminal UI",
		Long: `Start the interactive plan viewer. With a plan ID the plan opens
directly; otherwise the plans of the project are listed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("the plan viewer needs an interactive terminal")
			}
			planID := ""
			if len(args) == 1 {
				planID = args[0]
			}
			p := tea.NewProgram(newAppModel(app, project, planID), tea.WithAltScreen())
			_, err := p.Run()
			return err
		},
	}

	addProjectFlag(cmd.Flags(), &project)

	return cmd
}
