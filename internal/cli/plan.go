package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/babyfeed/internal/services"
)

var planTomorrow bool

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show today's (or tomorrow's) planned feeding",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRuntime(cmd, func(rt *runtime) error {
			var (
				plan services.DayPlan
				err  error
			)
			if planTomorrow {
				plan, err = rt.container.Plan.Tomorrow(cmd.Context())
			} else {
				plan, err = rt.container.Plan.Today(cmd.Context())
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if plan.Day == nil {
				fmt.Fprintln(out, rt.text("cli.no_plan", plan.Date))
				return nil
			}
			day := plan.Day
			fmt.Fprintf(out, "%s %s\t%s (%s)\t%s g\n", day.Date, day.Time, day.Food, day.FoodType, formatAmount(day.AmountGrams))
			if len(day.Substitutions) > 0 {
				fmt.Fprintf(out, "  substitutions: %s\n", strings.Join(day.Substitutions, ", "))
			}
			if day.Notes != "" {
				fmt.Fprintf(out, "  notes: %s\n", day.Notes)
			}
			return nil
		})
	},
}

var tipCmd = &cobra.Command{
	Use:   "tip",
	Short: "Print a random safety tip from the loaded schedules",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRuntime(cmd, func(rt *runtime) error {
			tip, ok, err := rt.container.Plan.RollSafetyTip(cmd.Context())
			if err != nil {
				return err
			}
			if !ok {
				tip = rt.text("cli.no_tip")
			}
			fmt.Fprintln(cmd.OutOrStdout(), tip)
			return nil
		})
	},
}

func init() {
	planCmd.Flags().BoolVar(&planTomorrow, "tomorrow", false, "Show tomorrow instead of today")
	planCmd.AddCommand(tipCmd)
	rootCmd.AddCommand(planCmd)
}
