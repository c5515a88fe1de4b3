package cmd

import (
	"fmt"
	"time"

	"github.com/go-drift/ringview/pkg/progress"
)

func init() {
	RegisterCommand(&Command{
		Name:  "simulate",
		Short: "Print the state changes of a scripted run",
		Long: `Run the indicator on a simulated clock and print every state change.

The run spins for a number of frames, then either sets a value with an
animation or stops spinning, and ticks until the indicator is idle.

Flags:
` + scenarioFlagsHelp + `
  --frames           Also print every redrawn frame`,
		Usage: "ringview simulate [--spin N] [--stop] [--value V] [--duration D] [--frames]",
		Run:   runSimulate,
	})
}

func runSimulate(env *Env, args []string) error {
	sc := defaultScenario()
	showFrames := false
	for i := 0; i < len(args); i++ {
		ok, err := parseScenarioFlag(&sc, args, &i)
		if err != nil {
			return err
		}
		if ok {
			continue
		}
		switch args[i] {
		case "--frames":
			showFrames = true
		default:
			return fmt.Errorf("unknown flag %q", args[i])
		}
	}

	cfg, err := env.Config()
	if err != nil {
		return err
	}

	onState := func(at time.Duration, s progress.AnimationState) {
		fmt.Fprintf(env.Stdout, "%7s  %s\n", at, s)
	}
	var onFrame func(time.Duration, progress.Frame)
	if showFrames {
		onFrame = func(at time.Duration, f progress.Frame) {
			fmt.Fprintf(env.Stdout, "%7s    %-12s value=%.2f spinner=%.1f°@%.1f°\n",
				at, f.Mode(), f.Value, f.SpinnerLength, f.SpinnerDegree)
		}
	}

	res, err := play(cfg, sc, onState, onFrame)
	if err != nil {
		return err
	}
	fmt.Fprintf(env.Stdout, "settled at %g after %s (%d frames)\n", res.Final.Value, res.Elapsed, res.Frames)
	return nil
}
