package cli

import (
	"strconv"

	"github.com/spf13/cobra"
)

// withRuntime runs fn over a detached runtime.
func withRuntime(cmd *cobra.Command, fn func(rt *runtime) error) error {
	rt, err := openRuntime(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer rt.Close()
	return fn(rt)
}

func formatAmount(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
