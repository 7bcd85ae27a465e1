package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	history "github.com/Mayur-Pagote/README-Design-Kit-sub001"
)

var errInvalidJSON = errors.New("invalid JSON")

func newSetCmd(o *rootOptions) *cobra.Command {
	var (
		asJSON bool
		file   string
	)

	cmd := &cobra.Command{
		Use:   "set [path] [value]",
		Short: "Set a value in the present document",
		Long: `Set a value in the present document as one undoable change.

The value is stored as a string unless --json is given. With --file the
value is read from a JSON file; without a path the file replaces the whole
document. Paths use sjson syntax, e.g. "elements.-1" appends to an array.`,
		Example: `  readme-history set variables.projectName "README Kit"
  readme-history set elements.0.level 2 --json
  readme-history set elements.-1 '{"id":"p1","type":"text"}' --json
  readme-history set --file document.json`,
		Args: cobra.RangeArgs(0, 2),
		RunE: o.run(func(cmd *cobra.Command, args []string, a *app) error {
			before := a.m.State()
			after, err := setValue(before, args, asJSON, file)
			if err != nil {
				return err
			}
			return commit(cmd, a, before, after)
		}),
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "parse value as JSON")
	cmd.Flags().StringVarP(&file, "file", "f", "", "read the value from a JSON file")

	return cmd
}

func setValue(doc []byte, args []string, asJSON bool, file string) (json.RawMessage, error) {
	if file != "" {
		if len(args) > 1 {
			return nil, fmt.Errorf("a value argument cannot be combined with --file")
		}
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}
		if !json.Valid(data) {
			return nil, fmt.Errorf("%s: %w", file, errInvalidJSON)
		}
		if len(args) == 0 {
			return data, nil
		}
		return sjson.SetRawBytes(doc, args[0], data)
	}

	if len(args) != 2 {
		return nil, fmt.Errorf("set needs a path and a value, or --file")
	}
	path, value := args[0], args[1]
	if asJSON {
		if !json.Valid([]byte(value)) {
			return nil, fmt.Errorf("value: %w", errInvalidJSON)
		}
		return sjson.SetRawBytes(doc, path, []byte(value))
	}
	return sjson.SetBytes(doc, path, value)
}

func newDeleteCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <path>",
		Aliases: []string{"rm"},
		Short:   "Delete a value from the present document",
		Args:    cobra.ExactArgs(1),
		RunE: o.run(func(cmd *cobra.Command, args []string, a *app) error {
			before := a.m.State()
			if !gjson.GetBytes(before, args[0]).Exists() {
				return fmt.Errorf("%w %q", errNoValue, args[0])
			}
			after, err := sjson.DeleteBytes(before, args[0])
			if err != nil {
				return err
			}
			return commit(cmd, a, before, after)
		}),
	}
}

// commit records after as the new present state and prints what changed.
func commit(cmd *cobra.Command, a *app, before, after json.RawMessage) error {
	out := cmd.OutOrStdout()

	p, err := history.Diff(before, after)
	if err != nil {
		return err
	}
	if p.Empty() {
		fmt.Fprintln(out, "no change")
		return nil
	}

	a.m.SetState(after)
	fmt.Fprintln(out, p.String())
	return nil
}
