package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHistoryCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Manage the undo and redo history",
	}
	cmd.AddCommand(newHistoryClearCmd(o))
	return cmd
}

func newHistoryClearCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Drop every undo and redo step; checkpoints are kept",
		Args:  cobra.NoArgs,
		RunE: o.run(func(cmd *cobra.Command, args []string, a *app) error {
			undo, redo := a.m.UndoDepth(), a.m.RedoDepth()
			a.m.ClearHistory()
			fmt.Fprintf(cmd.OutOrStdout(), "cleared %d undo and %d redo step(s)\n", undo, redo)
			return nil
		}),
	}
}
