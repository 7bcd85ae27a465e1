package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Mayur-Pagote/README-Design-Kit-sub001/storage"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	labelStyle = lipgloss.NewStyle().Faint(true).Width(13)
	countStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "114"})
	emptyStyle = lipgloss.NewStyle().Faint(true)
)

func newStatusCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Summarise the present document and its history",
		Args:  cobra.NoArgs,
		RunE: o.run(func(cmd *cobra.Command, args []string, a *app) error {
			var b strings.Builder

			b.WriteString(titleStyle.Render("readme-history · "+a.cfg.History.Key) + "\n")
			row(&b, "backend", backendLabel(a))
			row(&b, "undo", count(a.m.UndoDepth()))
			row(&b, "redo", count(a.m.RedoDepth()))
			row(&b, "checkpoints", count(len(a.m.Checkpoints())))
			row(&b, "max history", fmt.Sprint(a.cfg.History.MaxHistory))
			row(&b, "size", fmt.Sprintf("%d bytes", len(a.m.State())))

			_, err := fmt.Fprint(cmd.OutOrStdout(), b.String())
			return err
		}),
	}
}

func row(b *strings.Builder, label, value string) {
	b.WriteString(labelStyle.Render(label))
	b.WriteString(value)
	b.WriteString("\n")
}

func count(n int) string {
	if n == 0 {
		return emptyStyle.Render("0")
	}
	return countStyle.Render(fmt.Sprint(n))
}

func backendLabel(a *app) string {
	if a.cfg.Storage.Backend == storage.BackendMemory {
		return a.cfg.Storage.Backend
	}
	return fmt.Sprintf("%s (%s)", a.cfg.Storage.Backend, a.cfg.Storage.Path)
}
