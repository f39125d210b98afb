package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/heron/internal/domain"
	"github.com/aalvaropc/heron/internal/usecase"
	ucextract "github.com/aalvaropc/heron/internal/usecase/extract"
)

func fromJSONCmd(g *globalFlags) *cobra.Command {
	var cf calcFlags
	rules := ucextract.DefaultRules()
	var format string
	var noSave bool
	var name string

	c := &cobra.Command{
		Use:   "from-json <file|->",
		Short: "Read the three sides from a JSON document using JSONPath",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(g)
			if err != nil {
				return err
			}
			defer ws.close()

			doc, src, err := readDocument(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			if name == "" {
				name = src
			}

			calc, err := cf.calculator(cmd, ws.cfg)
			if err != nil {
				return err
			}

			store := ws.store
			if noSave {
				store = nil
			}

			compute := usecase.NewComputeTriangle(calc, store, usecase.WithLogger(ws.log))
			uc := usecase.NewImportJSON(compute, usecase.WithLogger(ws.log))

			res, extracts, runID, err := uc.Execute(cmd.Context(), name, doc, rules)
			if domain.IsKind(err, domain.KindInvalidInput) {
				printExtracts(cmd.ErrOrStderr(), extracts)
				return err
			}
			if perr := printCalculation(cmd.OutOrStdout(), res, runID, outputFormat(format, ws.cfg)); perr != nil {
				return perr
			}
			return err
		},
	}

	cf.register(c)
	c.Flags().StringVar(&rules.SideAB, "ab", rules.SideAB, "JSONPath for side_ab")
	c.Flags().StringVar(&rules.SideBC, "bc", rules.SideBC, "JSONPath for side_bc")
	c.Flags().StringVar(&rules.SideCA, "ca", rules.SideCA, "JSONPath for side_ca")
	c.Flags().StringVar(&format, "format", "", "Output format: pretty|json|prom (default from heron.yaml, else pretty)")
	c.Flags().BoolVar(&noSave, "no-save", false, "Do not save the calculation under runs/")
	c.Flags().StringVar(&name, "name", "", "Label stored with the calculation (defaults to the file name)")
	return c
}

// readDocument reads arg as a file, or stdin when arg is "-".
func readDocument(stdin io.Reader, arg string) ([]byte, string, error) {
	if arg == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return nil, "", fmt.Errorf("read stdin: %w", err)
		}
		return b, "stdin", nil
	}

	b, err := os.ReadFile(arg)
	if err != nil {
		kind := domain.KindInvalidInput
		base := domain.ErrInvalidInput
		if os.IsNotExist(err) {
			kind = domain.KindNotFound
			base = domain.ErrNotFound
		}
		return nil, "", &domain.OpError{
			Op:   "cli.read_document",
			Kind: kind,
			Path: arg,
			Err:  fmt.Errorf("%w: %v", base, err),
		}
	}
	return b, strings.TrimSuffix(filepath.Base(arg), filepath.Ext(arg)), nil
}

func printExtracts(w io.Writer, in []ucextract.Result) {
	for _, r := range in {
		mark := "✓"
		if !r.Success {
			mark = "✗"
		}
		fmt.Fprintf(w, "  %s %s — %s\n", mark, r.Side, r.Message)
	}
}
