package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newUndoCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "undo [steps]",
		Short: "Undo the last change",
		Args:  cobra.MaximumNArgs(1),
		RunE: o.run(func(cmd *cobra.Command, args []string, a *app) error {
			n, err := parseSteps(args)
			if err != nil {
				return err
			}
			done := 0
			for ; done < n && a.m.CanUndo(); done++ {
				a.m.Undo()
			}
			reportSteps(cmd, "undo", "undid", done, a.m.UndoDepth(), a.m.RedoDepth())
			return nil
		}),
	}
}

func newRedoCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "redo [steps]",
		Short: "Redo the last undone change",
		Args:  cobra.MaximumNArgs(1),
		RunE: o.run(func(cmd *cobra.Command, args []string, a *app) error {
			n, err := parseSteps(args)
			if err != nil {
				return err
			}
			done := 0
			for ; done < n && a.m.CanRedo(); done++ {
				a.m.Redo()
			}
			reportSteps(cmd, "redo", "redid", done, a.m.UndoDepth(), a.m.RedoDepth())
			return nil
		}),
	}
}

func parseSteps(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return 0, fmt.Errorf("steps must be a positive integer, got %q", args[0])
	}
	return n, nil
}

func reportSteps(cmd *cobra.Command, verb, past string, done, undo, redo int) {
	out := cmd.OutOrStdout()
	if done == 0 {
		fmt.Fprintf(out, "nothing to %s\n", verb)
		return
	}
	fmt.Fprintf(out, "%s %d step(s); %d to undo, %d to redo\n", past, done, undo, redo)
}
