package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/autocleaner/autocleaner/internal/startup"
)

// newRegistrar is replaced in tests.
var newRegistrar = startup.New

func newStartupCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "startup",
		Short: "Manage running at login",
		Long: `Manage whether AutoCleaner runs at login. When enabled, a scan runs
right after login and the tray agent starts.`,
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "status",
			Short: "Show whether AutoCleaner runs at login",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				printStartupStatus(cmd, newRegistrar().Enabled())
				return nil
			},
		},
		&cobra.Command{
			Use:   "enable",
			Short: "Run AutoCleaner at login",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return setStartup(cmd, true)
			},
		},
		&cobra.Command{
			Use:   "disable",
			Short: "Stop running AutoCleaner at login",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return setStartup(cmd, false)
			},
		},
	)
	return cmd
}

func setStartup(cmd *cobra.Command, enabled bool) error {
	r := newRegistrar()
	if err := r.SetEnabled(enabled); err != nil {
		return fmt.Errorf("failed to update startup registration: %w", err)
	}
	printStartupStatus(cmd, r.Enabled())
	return nil
}

func printStartupStatus(cmd *cobra.Command, enabled bool) {
	status := styleLabel.Render("disabled")
	if enabled {
		status = styleSuccess.Render("enabled")
	}
	printField(cmd.OutOrStdout(), 15, "Run at startup", status)
}
