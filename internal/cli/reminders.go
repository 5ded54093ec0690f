package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var remindersCmd = &cobra.Command{
	Use:   "reminders",
	Short: "Inspect and reconcile feeding reminders",
}

var remindersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored reminders",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRuntime(cmd, func(rt *runtime) error {
			reminders, err := rt.container.Reminders.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, reminder := range reminders {
				state := "off"
				if reminder.Enabled {
					state = "on"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n", reminder.Time, state, reminder.Repeat, reminder.Title)
			}
			return nil
		})
	},
}

var remindersReconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Ask the running server to re-register every enabled reminder",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := openConsole()
		if err != nil {
			return err
		}

		reminders, err := newServerClient(out).ReconcileReminders()
		if errors.Is(err, errServerUnreachable) {
			fmt.Fprintln(cmd.OutOrStdout(), out.text("cli.server_offline"))
			return nil
		}
		if err != nil {
			return err
		}

		scheduled := 0
		for _, reminder := range reminders {
			if reminder.NotificationID != "" {
				scheduled++
			}
		}
		fmt.Fprintln(cmd.OutOrStdout(), out.text("cli.rescheduled", scheduled))
		return nil
	},
}

func init() {
	remindersCmd.AddCommand(remindersListCmd, remindersReconcileCmd)
	rootCmd.AddCommand(remindersCmd)
}
