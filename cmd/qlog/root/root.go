package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/EricA1019/gamified-checklist/internal/ui"
)

const Version = "0.2.0"

var rootCmd = &cobra.Command{
	Use:           "qlog",
	Short:         "Gamified checklist — tasks in, XP and streaks out",
	Long:          "qlog is a local-first checklist that turns completed tasks into XP, levels and daily streaks.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newAddCmd(),
		newDoCmd(),
		newUndoCmd(),
		newRmCmd(),
		newListCmd(),
		newStatusCmd(),
		newCategoryCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
