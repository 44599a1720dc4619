package cli

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/taigrr/liftline/internal/config"
	"github.com/taigrr/liftline/pkg/liftline"
	"github.com/taigrr/liftline/pkg/render"
	"github.com/taigrr/liftline/pkg/solver"
)

type solveOpts struct {
	caseFlags
	stations bool
	chart    bool
	png      string
	width    int
}

func (c *CLI) solveCommand() *cobra.Command {
	opts := solveOpts{width: 72}
	cmd := &cobra.Command{
		Use:   "solve [case.toml]",
		Short: "Solve a case and print the wing coefficients",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd, args)
			if err != nil {
				return err
			}
			return runSolve(cmd, cfg, opts)
		},
	}
	opts.register(cmd)
	cmd.Flags().BoolVar(&opts.stations, "stations", false, "print the per-station breakdown")
	cmd.Flags().BoolVar(&opts.chart, "chart", false, "draw the spanwise circulation and cl")
	cmd.Flags().StringVar(&opts.png, "png", "", "also save the chart as a PNG")
	cmd.Flags().IntVar(&opts.width, "width", opts.width, "chart width in columns")
	return cmd
}

func runSolve(cmd *cobra.Command, cfg config.Config, opts solveOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx).With("run", uuid.NewString()[:8])
	out := cmd.OutOrStdout()

	cs, err := cfg.Build()
	if err != nil {
		return err
	}
	logger.Debug("built case", "stations", cs.Problem.N(), "method", cs.Method)

	cs.Options.Logger = logger
	prog := newProgress(logger)
	res, err := solver.Solve(ctx, cs.Problem, nil, cs.Method, cs.Options)
	if err != nil && !errors.Is(err, solver.ErrNotConverged) {
		return err
	}
	prog.done("solved", "method", res.Method, "iterations", res.Iterations)

	coef := cs.Problem.Coefficients(res.Loads, cs.Wing.AspectRatio())
	printTitle(out, fmt.Sprintf("%s wing, alpha %g deg, %g m/s", appName, cfg.Flow.Alpha, cfg.Flow.Speed))
	printSummary(out, res, coef)

	if opts.stations {
		printStations(out, cs.Wing.SpanPositions(), res.Loads)
	}
	if opts.chart || opts.png != "" {
		fb := spanChart(res.Loads, opts.width)
		if opts.chart {
			printChart(out, fb)
		}
		if opts.png != "" {
			if err := fb.SavePNG(opts.png); err != nil {
				return fmt.Errorf("save chart: %w", err)
			}
			logger.Info("wrote chart", "path", opts.png)
		}
	}
	return err
}

func printSummary(w io.Writer, res *solver.Result, c liftline.Coefficients) {
	status := styleOK.Render("converged")
	if !res.Converged {
		status = styleFail.Render("not converged")
	}
	fmt.Fprintf(w, "%s after %d iterations (max |R| = %.3g N)\n", status, res.Iterations, res.Residual)
	printKeyValues(w, [][2]string{
		{"CL", num(c.CL)},
		{"CDi", num(c.CDi)},
		{"L/Di", num(c.Lift / c.Drag)},
		{"span efficiency", num(c.SpanEff)},
		{"lift [N]", num(c.Lift)},
		{"induced drag [N]", num(c.Drag)},
		{"side force [N]", num(c.Side)},
		{"area [m^2]", num(c.Area)},
		{"q [Pa]", num(c.Dynamic)},
	})
}

func printStations(w io.Writer, ys []float64, l *liftline.Loads) {
	rows := make([][]string, len(l.Gamma))
	for i := range rows {
		rows[i] = []string{
			fmt.Sprint(i),
			num(ys[i]),
			num(l.Gamma[i]),
			num(l.Alpha[i]),
			num(l.CL[i]),
			num(l.LAlpha[i]),
			num(l.LAlpha[i] - l.LGamma[i]),
		}
	}
	printTable(w, []string{"#", "y", "gamma", "alpha", "cl", "lift [N]", "R [N]"}, rows)
}

// spanChart plots circulation and section cl, each normalized to its
// largest magnitude so both fit one axis.
func spanChart(l *liftline.Loads, width int) *render.Framebuffer {
	return render.Chart{
		Width:      width,
		Height:     32,
		Background: render.RGB(30, 30, 40),
		Axis:       render.ColorGray,
		Series: []render.Series{
			{Name: "gamma", Values: normalized(l.Gamma), Color: render.ColorSky},
			{Name: "cl", Values: normalized(l.CL), Color: render.ColorOrange},
		},
	}.Framebuffer()
}

func normalized(v []float64) []float64 {
	var m float64
	for _, x := range v {
		m = math.Max(m, math.Abs(x))
	}
	out := make([]float64, len(v))
	if m == 0 {
		return out
	}
	for i, x := range v {
		out[i] = x / m
	}
	return out
}

func printChart(w io.Writer, fb *render.Framebuffer) {
	cv := render.NewCanvas(fb.Width, fb.Rows())
	fb.Draw(cv, cv.Bounds())
	fmt.Fprintln(w, cv.String())
	fmt.Fprintln(w, styleDim.Render("gamma (blue) and cl (orange), normalized, tip to tip"))
}
