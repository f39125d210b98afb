package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/heron/internal/domain"
	"github.com/aalvaropc/heron/internal/infra/watch"
	"github.com/aalvaropc/heron/internal/usecase"
)

func batchCmd(g *globalFlags) *cobra.Command {
	var cf calcFlags
	var file string
	var format string
	var noSave bool
	var watchFile bool

	c := &cobra.Command{
		Use:   "batch",
		Short: "Compute every triangle listed in a YAML batch file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := openWorkspace(g)
			if err != nil {
				return err
			}
			defer ws.close()

			path, err := resolveBatchPath(ws, file)
			if err != nil {
				return err
			}

			calc, err := cf.calculator(cmd, ws.cfg)
			if err != nil {
				return err
			}

			store := ws.store
			if noSave {
				store = nil
			}

			uc := usecase.NewComputeBatch(ws.batches, calc, store, usecase.WithLogger(ws.log))
			out := cmd.OutOrStdout()
			fmtName := outputFormat(format, ws.cfg)

			runOnce := func() error {
				run, runID, err := uc.Execute(cmd.Context(), path)
				if err != nil && len(run.Results) == 0 {
					return err
				}
				if perr := printRun(out, run, runID, fmtName); perr != nil {
					return perr
				}
				if err != nil {
					return err
				}
				if calc.Strict {
					if n := rejectedCount(run); n > 0 {
						return &domain.OpError{
							Op:   "cli.batch",
							Kind: domain.KindInvalidTriangle,
							Path: path,
							Err:  fmt.Errorf("%d invalid triangle(s): %w", n, domain.ErrInvalidTriangle),
						}
					}
				}
				return nil
			}

			if !watchFile {
				return runOnce()
			}

			if err := runOnce(); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "watching %s (ctrl+c to stop)\n", path)

			return watch.File(cmd.Context(), path, ws.log, func() {
				fmt.Fprintln(out)
				if err := runOnce(); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
				}
			})
		},
	}

	cf.register(c)
	c.Flags().StringVarP(&file, "file", "f", "", "Batch name or path (required)")
	c.Flags().StringVar(&format, "format", "", "Output format: pretty|json|prom (default from heron.yaml, else pretty)")
	c.Flags().BoolVar(&noSave, "no-save", false, "Do not save the run under runs/")
	c.Flags().BoolVar(&watchFile, "watch", false, "Recompute whenever the batch file changes")

	_ = c.MarkFlagRequired("file")

	c.AddCommand(batchListCmd(g))
	return c
}

func batchListCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List batch files in the workspace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := openWorkspace(g)
			if err != nil {
				return err
			}
			defer ws.close()

			refs, err := ws.batches.ListBatches(ws.root)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(refs) == 0 {
				fmt.Fprintln(out, "(no batches found)")
				return nil
			}

			fmt.Fprintf(out, "Workspace: %s\n\n", ws.root)
			for _, r := range refs {
				rel, _ := filepath.Rel(ws.root, r.Path)
				fmt.Fprintf(out, "- %s  (%s)\n", r.Name, rel)
			}
			return nil
		},
	}
}

func rejectedCount(run domain.RunArtifact) int {
	n := 0
	for _, c := range run.Results {
		if c.Error != "" {
			n++
		}
	}
	return n
}
