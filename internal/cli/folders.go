package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/autocleaner/autocleaner/internal/config"
)

func newFoldersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "folders",
		Short: "Manage tracked folders",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:     "add <path> <days>",
			Short:   "Track a folder, or change its age limit",
			Args:    cobra.ExactArgs(2),
			RunE:    runFoldersAdd,
			Example: "  autocleaner folders add ~/Downloads 30",
		},
		&cobra.Command{
			Use:     "list",
			Aliases: []string{"ls"},
			Short:   "List tracked folders",
			Args:    cobra.NoArgs,
			RunE:    runFoldersList,
		},
		&cobra.Command{
			Use:     "remove <path>",
			Aliases: []string{"rm"},
			Short:   "Stop tracking a folder",
			Args:    cobra.ExactArgs(1),
			RunE:    runFoldersRemove,
		},
	)
	return cmd
}

func runFoldersList(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	list := config.LoadFolders()
	if len(list.Folders) == 0 {
		fmt.Fprintln(out, "No tracked folders. Run 'autocleaner folders add <path> <days>' to add one.")
		return nil
	}

	rows := make([][]string, 0, len(list.Folders))
	for _, f := range list.Folders {
		rows = append(rows, []string{f.Path, strconv.FormatUint(uint64(f.Days), 10)})
	}
	fmt.Fprintln(out, renderTable([]string{"Folder", "Days"}, rows, nil, []columnAlignment{alignLeft, alignRight}))
	return nil
}

func runFoldersAdd(cmd *cobra.Command, args []string) error {
	days, err := parseDays(args[1])
	if err != nil {
		return err
	}
	folder, err := config.AddFolder(args[0], days)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
		styleSuccess.Render("Tracking"),
		styleValue.Render(folder.Path),
		styleLabel.Render(fmt.Sprintf("(%d days)", folder.Days)),
	)
	return nil
}

func runFoldersRemove(cmd *cobra.Command, args []string) error {
	removed, err := config.RemoveFolder(args[0])
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("%s is not a tracked folder", args[0])
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", styleSuccess.Render("Removed"), styleValue.Render(args[0]))
	return nil
}
