package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/Mayur-Pagote/README-Design-Kit-sub001/internal/config"
)

func newInitCmd(o *rootOptions) *cobra.Command {
	var (
		global bool
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Long: `Write a default configuration file to ./.readme-history.yaml, to
~/.readme-history/config.yaml with --global, or to the --config path.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.ProjectConfigPath()
			switch {
			case o.configPath != "":
				path = o.configPath
			case global:
				path = config.GlobalConfigPath()
			}
			if path == "" {
				return fmt.Errorf("cannot determine config path")
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}

			if err := config.WriteDefault(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&global, "global", false, "write the per-user config file")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	return cmd
}
