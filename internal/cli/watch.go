package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"

	history "github.com/Mayur-Pagote/README-Design-Kit-sub001"
	"github.com/Mayur-Pagote/README-Design-Kit-sub001/storage"
)

func newWatchCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print the document every time another process changes it",
		Long: `Watch the stored present document and print it whenever another
writer (the editor, or another readme-history) replaces it. Runs until
interrupted. Needs the file backend.`,
		Args: cobra.NoArgs,
		RunE: o.run(func(cmd *cobra.Command, args []string, a *app) error {
			fs, ok := a.store.(*storage.FileStore)
			if !ok {
				return fmt.Errorf("watch needs the %s backend, have %s", storage.BackendFile, a.cfg.Storage.Backend)
			}

			out := cmd.OutOrStdout()
			key := history.PresentKey(a.cfg.History.Key)
			if _, err := fmt.Fprintf(out, "watching %s\n", fs.Path(key)); err != nil {
				return err
			}

			// A failed write stops the watch and is reported once it returns.
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			var writeErr error
			err := fs.Watch(ctx, key, func(data []byte) {
				if writeErr != nil {
					return
				}
				if _, writeErr = fmt.Fprintln(out, titleStyle.Render(time.Now().Format("15:04:05")+" changed")); writeErr == nil {
					_, writeErr = out.Write(pretty.Pretty(data))
				}
				if writeErr != nil {
					cancel()
				}
			})
			if err != nil {
				return err
			}
			return writeErr
		}),
	}
}
