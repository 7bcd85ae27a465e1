package cli

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

var errNoValue = errors.New("no value at path")

func newShowCmd(o *rootOptions) *cobra.Command {
	var (
		query   string
		copyOut bool
		compact bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the present document",
		Long: `Print the present document, or the part of it selected with --query.

Paths use gjson syntax, e.g. "elements.0.content" or "variables.projectName".`,
		Args: cobra.NoArgs,
		RunE: o.run(func(cmd *cobra.Command, args []string, a *app) error {
			data, err := selectJSON(a.m.State(), query)
			if err != nil {
				return err
			}
			if compact {
				data = append(pretty.Ugly(data), '\n')
			} else {
				data = pretty.Pretty(data)
			}

			if copyOut {
				if err := clipboard.WriteAll(string(data)); err != nil {
					return fmt.Errorf("copy to clipboard: %w", err)
				}
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}),
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "gjson path to print instead of the whole document")
	cmd.Flags().BoolVarP(&copyOut, "copy", "c", false, "also copy the output to the clipboard")
	cmd.Flags().BoolVar(&compact, "compact", false, "print compact JSON")

	return cmd
}

// selectJSON returns the raw JSON at path, or doc itself for an empty path.
func selectJSON(doc []byte, path string) ([]byte, error) {
	if path == "" {
		return doc, nil
	}
	r := gjson.GetBytes(doc, path)
	if !r.Exists() {
		return nil, fmt.Errorf("%w %q", errNoValue, path)
	}
	return []byte(r.Raw), nil
}
