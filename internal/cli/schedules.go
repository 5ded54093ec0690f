package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a monthly feeding schedule document",
	Long:  "Import sends the document to the running server so it can re-sync the tomorrow's plan notification. Without a server the document is written to storage directly and the server syncs when it starts.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read schedule: %w", err)
		}
		out, err := openConsole()
		if err != nil {
			return err
		}

		result, err := newServerClient(out).ImportSchedule(raw)
		if errors.Is(err, errServerUnreachable) {
			err = withRuntime(cmd, func(rt *runtime) error {
				var importErr error
				result, importErr = rt.container.Schedules.ImportSchedule(cmd.Context(), raw)
				return importErr
			})
		}
		if err != nil {
			return err
		}

		schedule := result.Schedule
		fmt.Fprintln(cmd.OutOrStdout(), out.text("cli.imported", schedule.Month, len(result.Days), schedule.StartDate, schedule.EndDate))
		return nil
	},
}

var schedulesCmd = &cobra.Command{
	Use:   "schedules",
	Short: "List or delete imported schedules",
}

var schedulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List imported schedules",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRuntime(cmd, func(rt *runtime) error {
			schedules, err := rt.container.Schedules.ListSchedules(cmd.Context())
			if err != nil {
				return err
			}
			if len(schedules) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), rt.text("cli.no_schedules"))
				return nil
			}
			for _, schedule := range schedules {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\tmonth %d\t%s..%s\n", schedule.ID, schedule.Month, schedule.StartDate, schedule.EndDate)
			}
			return nil
		})
	},
}

var schedulesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a schedule and all of its plan days",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := openConsole()
		if err != nil {
			return err
		}

		err = newServerClient(out).DeleteSchedule(args[0])
		if errors.Is(err, errServerUnreachable) {
			err = withRuntime(cmd, func(rt *runtime) error {
				return rt.container.Schedules.DeleteSchedule(cmd.Context(), args[0])
			})
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out.text("cli.schedule_deleted", args[0]))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
	schedulesCmd.AddCommand(schedulesListCmd, schedulesDeleteCmd)
	rootCmd.AddCommand(schedulesCmd)
}
