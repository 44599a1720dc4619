package cli

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/taigrr/liftline/pkg/liftline"
	"github.com/taigrr/liftline/pkg/math3d"
	"github.com/taigrr/liftline/pkg/solver"
)

type sweepOpts struct {
	caseFlags
	from, to, step float64
}

func (c *CLI) sweepCommand() *cobra.Command {
	opts := sweepOpts{from: -4, to: 12, step: 2}
	cmd := &cobra.Command{
		Use:   "sweep [case.toml]",
		Short: "Solve a case over a range of angles of attack",
		Long:  `sweep solves the case at each angle from --from to --to, warm-starting every solve from the previous circulation, and prints a polar of the whole wing.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.step <= 0 || opts.to < opts.from {
				return fmt.Errorf("sweep: need --step > 0 and --to >= --from")
			}
			cfg, err := opts.load(cmd, args)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			logger := loggerFromContext(ctx).With("run", uuid.NewString()[:8])
			prog := newProgress(logger)

			cs, err := cfg.Build()
			if err != nil {
				return err
			}
			cs.Options.Logger = logger

			var rows [][]string
			var gamma []float64
			n := int(math.Floor((opts.to-opts.from)/opts.step+1e-9)) + 1
			for i := range n {
				alpha := opts.from + float64(i)*opts.step
				cs.Problem.Motion = liftline.Freestream(cfg.Flow.Speed, alpha, cfg.Flow.Beta)
				res, err := solver.Solve(ctx, cs.Problem, gamma, cs.Method, cs.Options)
				switch {
				case errors.Is(err, solver.ErrNotConverged):
					logger.Warn("not converged", "alpha", alpha, "residual", res.Residual)
				case err != nil:
					return err
				}
				gamma = res.Gamma

				coef := cs.Problem.Coefficients(res.Loads, cs.Wing.AspectRatio())
				slope := math.NaN()
				if alpha != 0 {
					slope = coef.CL / math3d.Radians(alpha)
				}
				rows = append(rows, []string{
					num(alpha), num(coef.CL), num(coef.CDi), num(slope), fmt.Sprint(res.Iterations),
				})
			}
			prog.done("sweep finished", "points", n)

			out := cmd.OutOrStdout()
			printTitle(out, fmt.Sprintf("%s polar, %g m/s", appName, cfg.Flow.Speed))
			printTable(out, []string{"alpha", "CL", "CDi", "CL/alpha [1/rad]", "iter"}, rows)
			return nil
		},
	}
	opts.register(cmd)
	cmd.Flags().Float64Var(&opts.from, "from", opts.from, "first angle of attack, degrees")
	cmd.Flags().Float64Var(&opts.to, "to", opts.to, "last angle of attack, degrees")
	cmd.Flags().Float64Var(&opts.step, "step", opts.step, "angle increment, degrees")
	return cmd
}
