package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Mayur-Pagote/README-Design-Kit-sub001/patch"
)

func newLogCmd(o *rootOptions) *cobra.Command {
	var jsonPatch bool

	cmd := &cobra.Command{
		Use:   "log",
		Short: "List pending undo and redo steps",
		Long: `List the patches that undo and redo would apply, nearest first.

With --json-patch each step is printed as an RFC 6902 JSON Patch.`,
		Args: cobra.NoArgs,
		RunE: o.run(func(cmd *cobra.Command, args []string, a *app) error {
			out := cmd.OutOrStdout()
			tl := a.m.Timeline()

			if len(tl.Past) == 0 && len(tl.Future) == 0 {
				fmt.Fprintln(out, "no history")
				return nil
			}

			for i := len(tl.Past) - 1; i >= 0; i-- {
				if err := printStep(out, "undo", len(tl.Past)-i, tl.Past[i], jsonPatch); err != nil {
					return err
				}
			}
			for i, p := range tl.Future {
				if err := printStep(out, "redo", i+1, p, jsonPatch); err != nil {
					return err
				}
			}
			return nil
		}),
	}

	cmd.Flags().BoolVar(&jsonPatch, "json-patch", false, "print steps as RFC 6902 JSON Patch")

	return cmd
}

func printStep(w io.Writer, kind string, n int, p patch.Patch, jsonPatch bool) error {
	if jsonPatch {
		data, err := p.ToJSONPatch()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s %d: %s\n", kind, n, data)
		return err
	}

	_, err := fmt.Fprintf(w, "%s %d:\n%s\n", kind, n, indent(p.String(), "  "))
	return err
}

func indent(s, prefix string) string {
	return prefix + strings.ReplaceAll(s, "\n", "\n"+prefix)
}
