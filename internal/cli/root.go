// Package cli implements the autocleaner command line: the process roles the
// binary is spawned with and the interactive maintenance commands.
package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/autocleaner/autocleaner/internal/launcher"
)

// roleRunners are the process roles the root command dispatches to.
type roleRunners struct {
	bootstrap   func() error
	editor      func() error
	tray        func() error
	trayStartup func() error
}

func defaultRunners() roleRunners {
	return roleRunners{
		bootstrap:   runBootstrap,
		editor:      runEditor,
		tray:        func() error { return runTray(false) },
		trayStartup: func() error { return runTray(true) },
	}
}

// Execute runs the CLI with the process arguments.
func Execute() error {
	return execute(os.Args[1:], defaultRunners())
}

func execute(args []string, runners roleRunners) error {
	root := newRootCommand(runners)
	routed, ok := route(root, args)
	if !ok {
		return nil
	}
	root.SetArgs(routed)
	return root.Execute()
}

func newRootCommand(runners roleRunners) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "autocleaner",
		Short: "Remove files older than a per-folder age limit",
		Long: `AutoCleaner keeps a list of folders, each with an age limit in days,
and removes files that have not been modified for longer than that.

Run without arguments to start the tray agent and the folder editor.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runners.bootstrap()
		},
	}

	rootCmd.AddCommand(newRoleCommand(launcher.RoleEditor, "Run the folder editor", runners.editor))
	rootCmd.AddCommand(newRoleCommand(launcher.RoleTray, "Run the tray agent", runners.tray))
	rootCmd.AddCommand(newRoleCommand(launcher.RoleTrayStartup, "Scan once, then run the tray agent", runners.trayStartup))

	// Maintenance commands (alphabetical)
	rootCmd.AddCommand(newCleanCommand())
	rootCmd.AddCommand(newFoldersCommand())
	rootCmd.AddCommand(newScanCommand())
	rootCmd.AddCommand(newStartupCommand())
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

func newRoleCommand(role, short string, run func() error) *cobra.Command {
	return &cobra.Command{
		Use:    role,
		Short:  short,
		Hidden: true,
		Args:   cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}
}

// route maps raw process arguments onto the command tree. Role names are
// accepted with any number of leading dashes. Arguments that name neither a
// role nor a maintenance command are ignored, and route reports false.
func route(root *cobra.Command, args []string) ([]string, bool) {
	if len(args) == 0 {
		return args, true
	}
	if role := strings.TrimLeft(args[0], "-"); isRole(role) {
		return []string{role}, true
	}
	switch args[0] {
	case "-h", "--help", "help", "completion":
		return args, true
	}
	cmd, _, err := root.Find(args)
	if err != nil || cmd == root {
		return nil, false
	}
	return args, true
}

func isRole(arg string) bool {
	switch arg {
	case launcher.RoleEditor, launcher.RoleTray, launcher.RoleTrayStartup:
		return true
	}
	return false
}
