package root

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/EricA1019/gamified-checklist/internal/ui"
)

func newDoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "do <id>",
		Short: "Complete a task",
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

			res, err := eng.CompleteTask(id, today())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
				ui.Good.Render(ui.IconDone+" Done"),
				ui.Muted.Render("#"+shortID(res.TaskID)),
				ui.Gold.Render(fmt.Sprintf("+%d XP", res.XPAwarded)))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Streak", fmt.Sprintf("%s %d day(s)", ui.IconFlame, res.Streak)))
			if res.LevelUp {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %d → %d\n", ui.BadgeLevelUp, ui.IconSparkle, res.LevelBefore, res.LevelAfter)
			}
			return nil
		},
	}

	return cmd
}
