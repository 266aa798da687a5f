package root

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/EricA1019/gamified-checklist/internal/ui"
)

func newUndoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "undo <id>",
		Short: "Undo a completion",
		Long: `Revert a task to pending by undoing its completion.

The XP that was awarded is deducted exactly, even if XP values have
changed since. Use this to fix accidental completions.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, state, err := openEngine()
			if err != nil {
				return err
			}

			id, err := resolveTaskID(state, args[0])
			if err != nil {
				return err
			}

			res, err := eng.UncompleteTask(id)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
				ui.Warn.Render(ui.IconUndo+" Undone"),
				ui.Muted.Render("#"+shortID(res.TaskID)),
				ui.Muted.Render(fmt.Sprintf("(-%d XP)", res.XPDeducted)))
			if res.LevelDown {
				fmt.Fprintf(cmd.OutOrStdout(), "%s level %d → %d\n", ui.Warn.Render(ui.IconWarn+" Level decreased:"), res.LevelBefore, res.LevelAfter)
			}
			return nil
		},
	}

	return cmd
}
