package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/heron/internal/infra/fsworkspace"
	"github.com/aalvaropc/heron/internal/infra/logger"
	"github.com/aalvaropc/heron/internal/usecase"
)

func initCmd(g *globalFlags) *cobra.Command {
	var path string
	var force bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Create a heron workspace (heron.yaml, batches/, runs/)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root := path
			if root == "" {
				root = g.workspace
			}
			if root == "" {
				wd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("get working directory: %w", err)
				}
				root = wd
			}

			uc := usecase.NewInitWorkspace(fsworkspace.NewInitializer(), usecase.WithLogger(logger.L()))
			if err := uc.Execute(root, force); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Workspace ready at %s\n", root)
			return nil
		},
	}

	c.Flags().StringVar(&path, "path", "", "Directory to initialize (default: current directory)")
	c.Flags().BoolVar(&force, "force", false, "Overwrite existing template files")
	return c
}
