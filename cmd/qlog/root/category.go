package root

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/EricA1019/gamified-checklist/internal/engine"
	"github.com/EricA1019/gamified-checklist/internal/ui"
)

func newCategoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "category",
		Aliases: []string{"cat"},
		Short:   "Manage categories",
	}
	cmd.AddCommand(newCategoryAddCmd(), newCategoryRmCmd(), newCategoryListCmd())
	return cmd
}

func newCategoryAddCmd() *cobra.Command {
	var emoji string
	var color string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a category",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("name is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := openEngine()
			if err != nil {
				return err
			}

			c, err := eng.AddCategory(engine.AddCategoryInput{
				Name:  args[0],
				Emoji: emoji,
				Color: color,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
				ui.Good.Render("Added category"), c.Name, ui.Muted.Render("#"+shortID(c.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&emoji, "emoji", "", "Display emoji")
	cmd.Flags().StringVar(&color, "color", "", "Display color (hex)")

	return cmd
}

func newCategoryRmCmd() *cobra.Command {
	var cascade bool
	var unassign bool

	cmd := &cobra.Command{
		Use:   "rm <name-or-id>",
		Short: "Delete a category",
		Long: `Delete a category. You must say what happens to its tasks:

  --unassign   keep the tasks, uncategorized
  --cascade    delete the tasks too`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("category name or id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// The engine refuses a silent default; the flags mirror that.
			if cascade == unassign {
				return errors.New("choose exactly one of --unassign or --cascade")
			}
			mode := engine.DeleteUnassign
			if cascade {
				mode = engine.DeleteCascade
			}

			eng, state, err := openEngine()
			if err != nil {
				return err
			}

			id, err := resolveCategory(state, args[0])
			if err != nil {
				return err
			}
			if err := eng.DeleteCategory(id, mode); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
				ui.Warn.Render(ui.IconTrash+" Deleted category"),
				ui.Muted.Render("#"+shortID(id)),
				ui.Muted.Render(fmt.Sprintf("(%s)", mode)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&cascade, "cascade", false, "Also delete tasks in this category")
	cmd.Flags().BoolVar(&unassign, "unassign", false, "Keep tasks, uncategorized")

	return cmd
}

func newCategoryListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, state, err := openEngine()
			if err != nil {
				return err
			}

			counts := map[string]int{}
			for _, t := range state.Tasks {
				counts[t.CategoryID]++
			}

			for _, c := range state.Categories {
				label := c.Name
				if c.Emoji != "" {
					label = c.Emoji + " " + c.Name
				}
				fmt.Fprintf(cmd.OutOrStdout(), "- %s %s %s\n",
					label,
					ui.Muted.Render("#"+shortID(c.ID)),
					ui.Muted.Render(fmt.Sprintf("(%d tasks)", counts[c.ID])))
			}
			return nil
		},
	}

	return cmd
}
