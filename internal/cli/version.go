package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/autocleaner/autocleaner/internal/buildinfo"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Aliases: []string{"v"},
		Short:   "Show version information",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "  %s %s %s\n",
				styleBrand.Render("autocleaner"),
				styleSuccess.Render(buildinfo.Version),
				styleLabel.Render("("+buildinfo.Codename+")"),
			)
			printField(out, 8, "Commit", styleValue.Render(buildinfo.CommitHash))
			printField(out, 8, "Built", styleValue.Render(buildinfo.BuildDate))
			printField(out, 8, "OS/Arch", styleValue.Render(runtime.GOOS+"/"+runtime.GOARCH))
			printField(out, 8, "Go", styleValue.Render(runtime.Version()))
		},
	}
}
