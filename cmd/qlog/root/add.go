package root

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/EricA1019/gamified-checklist/internal/engine"
	"github.com/EricA1019/gamified-checklist/internal/model"
	"github.com/EricA1019/gamified-checklist/internal/ui"
)

func newAddCmd() *cobra.Command {
	var desc string
	var diff string
	var kind string
	var category string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("title is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			difficulty, ok := model.ParseDifficulty(diff)
			if !ok {
				return fmt.Errorf("difficulty must be easy, medium or hard (got %q)", diff)
			}
			taskKind, ok := model.ParseKind(kind)
			if !ok {
				return fmt.Errorf("kind must be daily or quest (got %q)", kind)
			}

			eng, state, err := openEngine()
			if err != nil {
				return err
			}

			categoryID := ""
			if category != "" {
				categoryID, err = resolveCategory(state, category)
				if err != nil {
					return err
				}
			}

			t, err := eng.AddTask(engine.AddTaskInput{
				Title:       args[0],
				Description: desc,
				CategoryID:  categoryID,
				Difficulty:  difficulty,
				Kind:        taskKind,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s\n",
				ui.Good.Render("Added"),
				ui.KindIcon(t.Kind),
				t.Title,
				ui.Muted.Render(fmt.Sprintf("(%s, %s, #%s)", t.Kind, t.Difficulty, shortID(t.ID))))
			return nil
		},
	}

	cmd.Flags().StringVar(&desc, "desc", "", "Optional description")
	cmd.Flags().StringVarP(&diff, "diff", "d", "easy", "Difficulty (easy|medium|hard)")
	cmd.Flags().StringVarP(&kind, "kind", "k", "daily", "Kind (daily|quest)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Category name or id")

	return cmd
}
