package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"

	history "github.com/Mayur-Pagote/README-Design-Kit-sub001"
)

var errCheckpointNotFound = errors.New("checkpoint not found")

type checkpoint = history.Checkpoint[json.RawMessage]

func newCheckpointCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "checkpoint",
		Aliases: []string{"cp"},
		Short:   "Save, list, restore and compare named snapshots",
		Long: `Checkpoints are full copies of the document. Restoring one is an
ordinary change: it can be undone.

Commands that take a checkpoint accept its ID, a unique ID prefix or its
name.`,
	}

	cmd.AddCommand(newCheckpointSaveCmd(o))
	cmd.AddCommand(newCheckpointListCmd(o))
	cmd.AddCommand(newCheckpointRestoreCmd(o))
	cmd.AddCommand(newCheckpointDeleteCmd(o))
	cmd.AddCommand(newCheckpointDiffCmd(o))

	return cmd
}

func newCheckpointSaveCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "save <name>",
		Short: "Save the present document as a checkpoint",
		Args:  cobra.ExactArgs(1),
		RunE: o.run(func(cmd *cobra.Command, args []string, a *app) error {
			cp := a.m.SaveCheckpoint(args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "saved checkpoint %s (%s)\n", cp.Name, cp.ID)
			return nil
		}),
	}
}

func newCheckpointListCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List checkpoints, oldest first",
		Args:    cobra.NoArgs,
		RunE: o.run(func(cmd *cobra.Command, args []string, a *app) error {
			out := cmd.OutOrStdout()
			cps := a.m.Checkpoints()
			if len(cps) == 0 {
				fmt.Fprintln(out, "no checkpoints")
				return nil
			}

			fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("%-36s  %-16s  %s", "ID", "CREATED", "NAME")))
			for _, cp := range cps {
				fmt.Fprintf(out, "%-36s  %-16s  %s\n",
					cp.ID,
					cp.CreatedAt.Local().Format("2006-01-02 15:04"),
					cp.Name)
			}
			return nil
		}),
	}
}

func newCheckpointRestoreCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <checkpoint>",
		Short: "Make a checkpoint the present document",
		Args:  cobra.ExactArgs(1),
		RunE: o.run(func(cmd *cobra.Command, args []string, a *app) error {
			cp, err := resolveCheckpoint(a.m.Checkpoints(), args[0])
			if err != nil {
				return err
			}
			a.m.RestoreCheckpoint(cp.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "restored checkpoint %s (%s)\n", cp.Name, cp.ID)
			return nil
		}),
	}
}

func newCheckpointDeleteCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <checkpoint>",
		Aliases: []string{"rm"},
		Short:   "Delete a checkpoint",
		Args:    cobra.ExactArgs(1),
		RunE: o.run(func(cmd *cobra.Command, args []string, a *app) error {
			cp, err := resolveCheckpoint(a.m.Checkpoints(), args[0])
			if err != nil {
				return err
			}
			a.m.DeleteCheckpoint(cp.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "deleted checkpoint %s (%s)\n", cp.Name, cp.ID)
			return nil
		}),
	}
}

func newCheckpointDiffCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "diff <checkpoint>",
		Short: "Show how the present document differs from a checkpoint",
		Args:  cobra.ExactArgs(1),
		RunE: o.run(func(cmd *cobra.Command, args []string, a *app) error {
			cp, err := resolveCheckpoint(a.m.Checkpoints(), args[0])
			if err != nil {
				return err
			}
			before := string(pretty.Pretty(cp.Data))
			after := string(pretty.Pretty(a.m.State()))
			_, err = fmt.Fprint(cmd.OutOrStdout(), renderLineDiff(before, after))
			return err
		}),
	}
}

// resolveCheckpoint finds a checkpoint by exact ID, then by name, then by
// ID prefix. Names and prefixes must be unambiguous.
func resolveCheckpoint(cps []checkpoint, ref string) (checkpoint, error) {
	for _, cp := range cps {
		if cp.ID == ref {
			return cp, nil
		}
	}

	match := func(pred func(checkpoint) bool) ([]checkpoint, error) {
		var found []checkpoint
		for _, cp := range cps {
			if pred(cp) {
				found = append(found, cp)
			}
		}
		if len(found) > 1 {
			ids := make([]string, len(found))
			for i, cp := range found {
				ids[i] = cp.ID
			}
			return nil, fmt.Errorf("%q matches %d checkpoints: %s", ref, len(found), strings.Join(ids, ", "))
		}
		return found, nil
	}

	byName, err := match(func(cp checkpoint) bool { return cp.Name == ref })
	if err != nil {
		return checkpoint{}, err
	}
	if len(byName) == 1 {
		return byName[0], nil
	}

	byPrefix, err := match(func(cp checkpoint) bool { return ref != "" && strings.HasPrefix(cp.ID, ref) })
	if err != nil {
		return checkpoint{}, err
	}
	if len(byPrefix) == 1 {
		return byPrefix[0], nil
	}

	return checkpoint{}, fmt.Errorf("%w: %q", errCheckpointNotFound, ref)
}
