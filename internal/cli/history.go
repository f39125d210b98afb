package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/heron/internal/domain"
)

func historyCmd(g *globalFlags) *cobra.Command {
	var limit int
	var format string

	c := &cobra.Command{
		Use:   "history",
		Short: "List saved calculations, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := openWorkspace(g)
			if err != nil {
				return err
			}
			defer ws.close()

			if !ws.found {
				return &domain.OpError{
					Op:   "cli.history",
					Kind: domain.KindNotFound,
					Path: ws.root,
					Err:  fmt.Errorf("no heron workspace found (run `triangle-area init`): %w", domain.ErrNotFound),
				}
			}
			if ws.store == nil {
				return &domain.OpError{
					Op:   "cli.history",
					Kind: domain.KindInvalidConfig,
					Path: ws.root,
					Err:  fmt.Errorf("history is disabled in heron.yaml: %w", domain.ErrInvalidConfig),
				}
			}

			runs, err := ws.store.ListRuns()
			if err != nil {
				return err
			}
			if limit > 0 && len(runs) > limit {
				runs = runs[:limit]
			}
			return printHistory(cmd.OutOrStdout(), runs, format)
		},
	}

	c.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of entries (0 for all)")
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	return c
}

func printHistory(w io.Writer, runs []domain.RunIndexEntry, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if runs == nil {
			runs = []domain.RunIndexEntry{}
		}
		return enc.Encode(runs)
	case "pretty", "":
		if len(runs) == 0 {
			fmt.Fprintln(w, "(no saved calculations)")
			return nil
		}
		for _, r := range runs {
			label := r.BatchName
			if label == "" {
				label = string(r.Source)
			}
			fmt.Fprintf(w, "%s  %-6s %-20s %d triangle(s), %d invalid\n",
				r.StartedAt.Format(time.RFC3339), r.Source, label, r.Count, r.Failures)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}
