package root

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/EricA1019/gamified-checklist/internal/model"
	"github.com/EricA1019/gamified-checklist/internal/ui"
)

func newListCmd() *cobra.Command {
	var showDone bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, state, err := openEngine()
			if err != nil {
				return err
			}

			tasks := state.Tasks
			sort.SliceStable(tasks, func(i, j int) bool {
				if tasks[i].Completed != tasks[j].Completed {
					return !tasks[i].Completed
				}
				return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
			})

			shown := 0
			for _, kind := range model.Kinds() {
				header := false
				for _, t := range tasks {
					if t.Kind != kind {
						continue
					}
					if t.Completed && !showDone {
						continue
					}
					if !header {
						fmt.Fprintln(cmd.OutOrStdout(), ui.H2.Render(ui.KindIcon(kind)+" "+string(kind)))
						header = true
					}
					line := fmt.Sprintf("%s %s %s %s",
						ui.DoneIcon(t.Completed),
						ui.Muted.Render("#"+shortID(t.ID)),
						t.Title,
						ui.Muted.Render(fmt.Sprintf("[%s, %s]", t.Difficulty, categoryName(state, t.CategoryID))))
					fmt.Fprintln(cmd.OutOrStdout(), "  "+line)
					shown++
				}
				if header {
					fmt.Fprintln(cmd.OutOrStdout(), "")
				}
			}

			if shown == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("nothing to do — add a task with 'qlog add'"))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&showDone, "all", "a", false, "Include completed tasks")

	return cmd
}
