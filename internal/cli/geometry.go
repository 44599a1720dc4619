package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taigrr/liftline/pkg/models"
	"github.com/taigrr/liftline/pkg/render"
	"github.com/taigrr/liftline/pkg/wing"
)

type geometryOpts struct {
	caseFlags
	view  string
	width int
}

func (c *CLI) geometryCommand() *cobra.Command {
	opts := geometryOpts{width: 72}
	cmd := &cobra.Command{
		Use:   "geometry [case.toml]",
		Short: "Print planform properties and draw the wing",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd, args)
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

			out := cmd.OutOrStdout()
			printTitle(out, fmt.Sprintf("%s planform, %d stations, units %s", appName, w.N(), w.Units()))
			printKeyValues(out, [][2]string{
				{"section", wc.Section.Name},
				{"section area", num(w.AirfoilArea())},
				{"projected span", num(w.ProjectedSpan())},
				{"projected area", num(w.ProjectedArea())},
				{"actual area", num(w.ActualArea())},
				{"aspect ratio", num(w.AspectRatio())},
				{"volume", num(w.Volume())},
				{"MAC", num(w.MeanAerodynamicChord())},
			})

			if opts.view != "" {
				fb, err := drawWing(w, render.View(opts.view), opts.width)
				if err != nil {
					return err
				}
				printChart(out, fb)
			}
			return nil
		},
	}
	opts.register(cmd)
	cmd.Flags().StringVar(&opts.view, "view", "", "draw the wing: top or front")
	cmd.Flags().IntVar(&opts.width, "width", opts.width, "drawing width in columns")
	return cmd
}

// drawWing draws the surface and the bound and trailing filaments near the
// wing, framed on the surface.
func drawWing(w *wing.Wing, view render.View, width int) (*render.Framebuffer, error) {
	switch view {
	case render.ViewTop, render.ViewFront:
	default:
		return nil, fmt.Errorf("unknown view %q (want top or front)", view)
	}
	surface := models.Surface(w)
	height := width / 2
	if view == render.ViewFront {
		height = width / 4
	}
	fb := render.NewFramebuffer(width, height)
	fb.Clear(render.RGB(30, 30, 40))

	wf := render.NewWireframe(fb, view, surface.BoundsMin, surface.BoundsMax)
	wf.DrawMesh(surface, render.ColorGray)
	wf.DrawMesh(models.Lattice(w.Lattice()), render.ColorGreen)
	for _, p := range w.ControlPoints() {
		wf.DrawPoint(p, render.ColorOrange)
	}
	return fb, nil
}
