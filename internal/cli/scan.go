package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/autocleaner/autocleaner/internal/config"
	"github.com/autocleaner/autocleaner/internal/models"
	"github.com/autocleaner/autocleaner/internal/retention"
)

func newScanCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "scan [path days]",
		Short: "Count expired files",
		Long: `Count files older than the age limit, without deleting anything.

Without arguments every tracked folder is scanned with its own limit.`,
		Args: folderArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRetention(cmd, args, false)
		},
	}
}

func newCleanCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clean [path days]",
		Short: "Delete expired files",
		Long: `Delete files older than the age limit.

Without arguments every tracked folder is cleaned with its own limit.`,
		Args: folderArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRetention(cmd, args, true)
		},
	}
}

// folderArgs accepts either nothing or a path followed by a day count.
func folderArgs(cmd *cobra.Command, args []string) error {
	switch len(args) {
	case 0:
		return nil
	case 2:
		_, err := parseDays(args[1])
		return err
	default:
		return fmt.Errorf("expected no arguments or <path> <days>, got %d arguments", len(args))
	}
}

func parseDays(s string) (uint32, error) {
	days, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid day count %q: must be a non-negative integer", s)
	}
	return uint32(days), nil
}

func runRetention(cmd *cobra.Command, args []string, clean bool) error {
	var folders []models.TrackedFolder
	if len(args) == 2 {
		days, _ := parseDays(args[1])
		path, err := config.NormalizeFolderPath(args[0])
		if err != nil {
			return err
		}
		folders = []models.TrackedFolder{{Path: path, Days: days}}
	} else {
		folders = config.LoadFolders().Folders
	}

	out := cmd.OutOrStdout()
	if len(folders) == 0 {
		fmt.Fprintln(out, "No tracked folders. Run 'autocleaner folders add <path> <days>' to add one.")
		return nil
	}

	scanner := retention.New()
	column := "Expired"
	if clean {
		column = "Removed"
	}

	rows := make([][]string, 0, len(folders))
	total := 0
	for _, f := range folders {
		var n int
		if clean {
			n = scanner.Clean(f.Path, f.Days)
		} else {
			n = scanner.Scan(f.Path, f.Days)
		}
		total += n
		rows = append(rows, []string{f.Path, strconv.FormatUint(uint64(f.Days), 10), strconv.Itoa(n)})
	}

	var footer []string
	if len(rows) > 1 {
		footer = []string{"Total", "", strconv.Itoa(total)}
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Folder", "Days", column},
		rows,
		footer,
		[]columnAlignment{alignLeft, alignRight, alignRight},
	))
	return nil
}
