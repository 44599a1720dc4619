package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/taigrr/liftline/pkg/models"
	"github.com/taigrr/liftline/pkg/wing"
)

func (c *CLI) exportCommand() *cobra.Command {
	var flags caseFlags
	var output string
	cmd := &cobra.Command{
		Use:   "export [case.toml]",
		Short: "Write the wing surface and vortex lattice as a GLB file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load(cmd, args)
			if err != nil {
				return err
			}
			wc, err := cfg.WingConfig()
			if err != nil {
				return err
			}
			w, err := wing.New(wc)
			if err != nil {
				return err
			}

			f, err := os.Create(output)
			if err != nil {
				return err
			}
			surface, lattice := models.Surface(w), models.Lattice(w.Lattice())
			if err := models.WriteGLB(f, surface, lattice); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}

			loggerFromContext(cmd.Context()).Info("wrote glb", "path", output,
				"triangles", surface.TriangleCount(), "filaments", lattice.LineCount())
			fmt.Fprintln(cmd.OutOrStdout(), output)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "wing.glb", "output path")
	return cmd
}
