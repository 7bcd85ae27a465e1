// Package cli implements the readme-history command line tool.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	key        string
	backend    string
	path       string
	logLevel   string
}

// NewRootCmd builds the command tree.
func NewRootCmd(version string) *cobra.Command {
	o := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "readme-history",
		Short: "Edit a persisted README document with undo, redo and checkpoints",
		Long: `readme-history edits the JSON document a README editor keeps in storage.

Every change made through this tool is recorded the same way the editor
records it, so it can be undone, redone and checkpointed from either side.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	f := cmd.PersistentFlags()
	f.StringVar(&o.configPath, "config", "", "config file (default ~/.readme-history/config.yaml merged with ./.readme-history.yaml)")
	f.StringVarP(&o.key, "key", "k", "", "history key to operate on")
	f.StringVar(&o.backend, "backend", "", "storage backend: memory, file or sqlite")
	f.StringVar(&o.path, "path", "", "storage directory (file) or database (sqlite)")
	f.StringVar(&o.logLevel, "log-level", "", "log level: debug, info, warn or error")

	cmd.AddCommand(newInitCmd(o))
	cmd.AddCommand(newShowCmd(o))
	cmd.AddCommand(newSetCmd(o))
	cmd.AddCommand(newDeleteCmd(o))
	cmd.AddCommand(newUndoCmd(o))
	cmd.AddCommand(newRedoCmd(o))
	cmd.AddCommand(newStatusCmd(o))
	cmd.AddCommand(newLogCmd(o))
	cmd.AddCommand(newCheckpointCmd(o))
	cmd.AddCommand(newHistoryCmd(o))
	cmd.AddCommand(newWatchCmd(o))

	return cmd
}

// Execute runs the root command until it finishes or the process is
// interrupted.
func Execute(version string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd(version).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}
