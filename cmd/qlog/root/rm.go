package root

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/EricA1019/gamified-checklist/internal/ui"
)

func newRmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a task",
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
			if err := eng.DeleteTask(id); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n",
				ui.Warn.Render(ui.IconTrash+" Deleted"),
				ui.Muted.Render("#"+shortID(id)))
			return nil
		},
	}

	return cmd
}
