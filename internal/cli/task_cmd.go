package cli

import (
	"fmt"

	"github.com/alexanderramin/planpin/internal/cli/formatter"
	"github.com/alexanderramin/planpin/internal/form"
	"github.com/spf13/cobra"
)

func newTasksCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List or create project tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := app.Tasks.ListTasks(cmd.Context(), project)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTaskList(tasks))
			return nil
		},
	}

	addProjectFlag(cmd.Flags(), &project)
	cmd.AddCommand(newTaskAddCmd(app))

	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var (
		project string
		f       form.Task
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a task without placing a pin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := app.Tasks.CreateTask(cmd.Context(), project, f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Created task %s %s\n",
				formatter.StyleGreen.Render("✔"),
				formatter.Bold(t.Title),
				formatter.TruncID(t.ID))
			return nil
		},
	}

	addProjectFlag(cmd.Flags(), &project)
	cmd.Flags().StringVar(&f.Title, "title", "", "Task title")
	cmd.Flags().StringVar(&f.Description, "description", "", "Task description")
	cmd.Flags().StringVar(&f.Category, "category", "", "Task category")
	cmd.Flags().StringVar(&f.PlanID, "plan", "", "Plan the task belongs to")
	cmd.Flags().StringVar(&f.PersonID, "person", "", "Assigned user ID")

	return cmd
}
