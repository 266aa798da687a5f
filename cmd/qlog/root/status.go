package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/EricA1019/gamified-checklist/internal/model"
	"github.com/EricA1019/gamified-checklist/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show progress, level and streak",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, state, err := openEngine()
			if err != nil {
				return err
			}

			p := state.Progress
			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconSparkle, "Progress"))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Level", p.Level))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Total XP",
				fmt.Sprintf("%d (%d/%d into level %d)", state.User.TotalXP, p.XPIntoLevel, p.XPForNextLevel, p.Level)))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Streak",
				fmt.Sprintf("%s %d day(s) (best %d)", ui.IconFlame, state.User.CurrentStreak, state.User.BestStreak)))
			if !state.User.LastCompletionDate.IsZero() {
				fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Last completion", state.User.LastCompletionDate))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "")

			openDaily, doneDaily, openQuest := 0, 0, 0
			for _, t := range state.Tasks {
				switch {
				case t.Kind == model.KindDaily && t.Completed:
					doneDaily++
				case t.Kind == model.KindDaily:
					openDaily++
				case !t.Completed:
					openQuest++
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.H2.Render("📋 Today"))
			fmt.Fprintf(cmd.OutOrStdout(), "- %s %d done, %d remaining\n", ui.Key.Render("Dailies:"), doneDaily, openDaily)
			fmt.Fprintf(cmd.OutOrStdout(), "- %s %d open\n", ui.Key.Render("Quests:"), openQuest)

			return nil
		},
	}

	return cmd
}
