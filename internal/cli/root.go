package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/heron/internal/domain"
	"github.com/aalvaropc/heron/internal/ui/tui"
	"github.com/aalvaropc/heron/internal/usecase"
)

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	cmd := newRootCmd()
	err := cmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	var cf calcFlags
	var format string
	var noSave bool
	var name string

	cmd := &cobra.Command{
		Use:   "triangle-area [side_ab side_bc side_ca]",
		Short: "Triangle perimeter and area (Heron's formula)",
		Long: "Computes the perimeter and area of a triangle from its three side lengths.\n" +
			"With no arguments an interactive calculator is started.\n" +
			"Negative lengths must follow --, e.g. triangle-area -- -3 4 5.",
		SilenceUsage: true,
		Args:         zeroOrThreeArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(g)
			if err != nil {
				return err
			}
			defer ws.close()

			calc, err := cf.calculator(cmd, ws.cfg)
			if err != nil {
				return err
			}

			store := ws.store
			if noSave {
				store = nil
			}
			uc := usecase.NewComputeTriangle(calc, store, usecase.WithLogger(ws.log))

			if len(args) == 0 {
				return tui.Run(tui.Deps{
					Compute:       uc.WithSource(domain.SourceTUI),
					History:       store,
					Calculator:    calc,
					WorkspaceRoot: workspaceLabel(ws),
					Logger:        ws.log,
					Debug:         g.debug,
				})
			}

			tri, err := parseSides(args)
			if err != nil {
				return err
			}

			res, runID, err := uc.Execute(cmd.Context(), name, tri)
			if perr := printCalculation(cmd.OutOrStdout(), res, runID, outputFormat(format, ws.cfg)); perr != nil {
				return perr
			}
			return err
		},
	}

	cmd.PersistentFlags().StringVarP(&g.workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	cmd.PersistentFlags().BoolVar(&g.debug, "debug", false, "enable verbose logging to .heron/logs/heron.log")

	cf.register(cmd)
	cmd.Flags().StringVar(&format, "format", "", "Output format: pretty|json|prom (default from heron.yaml, else pretty)")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "Do not save the calculation under runs/")
	cmd.Flags().StringVar(&name, "name", "", "Label stored with the calculation")

	cmd.AddCommand(
		batchCmd(g),
		fromJSONCmd(g),
		historyCmd(g),
		initCmd(g),
		versionCmd(),
	)
	return cmd
}

func zeroOrThreeArgs(_ *cobra.Command, args []string) error {
	if len(args) == 0 || len(args) == 3 {
		return nil
	}
	return domain.InvalidInput("cli.args", "expected 3 side lengths (side_ab side_bc side_ca), got %d", len(args))
}

func workspaceLabel(ws *workspaceCtx) string {
	if !ws.found {
		return ""
	}
	return ws.root
}

// calcFlags override the calc section of heron.yaml when set.
type calcFlags struct {
	strict bool
	exact  bool
}

func (f *calcFlags) register(c *cobra.Command) {
	c.Flags().BoolVar(&f.strict, "strict", false, "Fail with an invalid-triangle error instead of reporting a NaN area")
	c.Flags().BoolVar(&f.exact, "exact", false, "Compute the semi-perimeter with real division instead of truncating")
}

func (f *calcFlags) calculator(c *cobra.Command, cfg domain.Config) (domain.Calculator, error) {
	calc := cfg.Calculator()
	if c.Flags().Changed("strict") {
		calc.Strict = f.strict
	}
	if c.Flags().Changed("exact") {
		calc.Mode = domain.ModeTruncate
		if f.exact {
			calc.Mode = domain.ModeExact
		}
	}
	if _, err := domain.ParseMode(string(calc.Mode)); err != nil {
		return domain.Calculator{}, fmt.Errorf("calc mode: %w", err)
	}
	return calc, nil
}

func outputFormat(flag string, cfg domain.Config) string {
	if flag != "" {
		return flag
	}
	return cfg.Output.Format
}
