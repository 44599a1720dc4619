package cli

import (
	"github.com/spf13/cobra"

	"github.com/taigrr/liftline/internal/config"
)

// caseFlags are the overrides shared by every command.
type caseFlags struct {
	alpha    float64
	speed    float64
	segments int
	method   string
}

func (f *caseFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.alpha, "alpha", 0, "angle of attack in degrees (overrides the case file)")
	cmd.Flags().Float64Var(&f.speed, "speed", 0, "freestream speed in m/s (overrides the case file)")
	cmd.Flags().IntVar(&f.segments, "segments", 0, "spanwise stations (overrides the case file)")
	cmd.Flags().StringVar(&f.method, "method", "", "solver: newton or relax (overrides the case file)")
}

// load reads the optional case file and applies the flags that were set.
func (f *caseFlags) load(cmd *cobra.Command, args []string) (config.Config, error) {
	cfg := config.Default()
	if len(args) > 0 {
		var err error
		if cfg, err = config.Load(args[0]); err != nil {
			return config.Config{}, err
		}
	}
	flags := cmd.Flags()
	if flags.Changed("alpha") {
		cfg.Flow.Alpha = f.alpha
	}
	if flags.Changed("speed") {
		cfg.Flow.Speed = f.speed
	}
	if flags.Changed("segments") {
		cfg.Wing.Segments = f.segments
	}
	if flags.Changed("method") {
		cfg.Solver.Method = f.method
	}
	return cfg, cfg.Validate()
}
