package cli

import (
	"fmt"

	"github.com/alexanderramin/planpin/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newPlansCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "plans",
		Short: "List the plans of a project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			plans, err := app.Plans.ListPlans(cmd.Context(), project)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPlanList(plans))
			return nil
		},
	}

	addProjectFlag(cmd.Flags(), &project)

	return cmd
}

func newPinsCmd(app *App) *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "pins <plan-id>",
		Short: "List the pins of a plan, optionally filtered by task title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			plan, err := app.Plans.GetPlan(ctx, args[0])
			if err != nil {
				return err
			}
			pins, err := app.Plans.SearchPins(ctx, plan.ID, search)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPinList(plan, pins, search))
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Only show pins whose task title contains this text")

	return cmd
}
