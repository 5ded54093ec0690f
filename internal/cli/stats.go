package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/babyfeed/internal/services"
)

var (
	statsPeriod string
	statsDate   string
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show feeding totals for a day, week or month",
	RunE: func(cmd *cobra.Command, args []string) error {
		period, err := services.ParsePeriod(statsPeriod)
		if err != nil {
			return fmt.Errorf("invalid --period %q (expected daily, weekly or monthly)", statsPeriod)
		}
		return withRuntime(cmd, func(rt *runtime) error {
			ref := time.Now().In(rt.cfg.Location)
			if strings.TrimSpace(statsDate) != "" {
				parsed, err := services.ParseDate(statsDate, rt.cfg.Location)
				if err != nil {
					return fmt.Errorf("invalid --date %q (expected YYYY-MM-DD)", statsDate)
				}
				ref = parsed
			}

			overview, err := rt.container.Stats.Overview(cmd.Context(), period, ref)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", overview.Period, services.FormatDate(overview.Start, rt.cfg.Location))
			for _, food := range overview.Breakdown {
				fmt.Fprintf(out, "  %s: %s %s\n", food.Name, formatAmount(food.Amount), food.Unit)
			}
			for _, goal := range overview.WeeklyGoal {
				fmt.Fprintf(out, "  weekly %s: %s/%s %s (%s)\n", goal.Name, formatAmount(goal.Amount), formatAmount(goal.Minimum), goal.Unit, goal.Level)
			}
			return nil
		})
	},
}

var calcSizes []string

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Total the food needed by the loaded plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		sizes, err := parsePackageSizes(calcSizes)
		if err != nil {
			return err
		}
		return withRuntime(cmd, func(rt *runtime) error {
			needs, err := rt.container.Calculator.Needs(cmd.Context(), sizes)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, need := range needs {
				line := fmt.Sprintf("%s\t%s g", need.Food, formatAmount(need.TotalGrams))
				if need.Packages != nil {
					line += fmt.Sprintf("\t%d x %s g", *need.Packages, formatAmount(need.PackageSize))
				}
				fmt.Fprintln(out, line)
			}
			return nil
		})
	},
}

// parsePackageSizes reads repeated food=grams flags.
func parsePackageSizes(raw []string) (map[string]float64, error) {
	sizes := make(map[string]float64, len(raw))
	for _, item := range raw {
		food, value, ok := strings.Cut(item, "=")
		food = strings.TrimSpace(food)
		if !ok || food == "" {
			return nil, fmt.Errorf("invalid --size %q (expected food=grams)", item)
		}
		size, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid --size %q (expected food=grams)", item)
		}
		sizes[food] = size
	}
	return sizes, nil
}

func init() {
	statsCmd.Flags().StringVar(&statsPeriod, "period", "daily", "daily, weekly or monthly")
	statsCmd.Flags().StringVar(&statsDate, "date", "", "Reference date YYYY-MM-DD (default today)")
	calcCmd.Flags().StringArrayVar(&calcSizes, "size", nil, "Package size as food=grams (repeatable)")
	rootCmd.AddCommand(statsCmd, calcCmd)
}
