package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-drift/ringview/pkg/progress"
	ringtest "github.com/go-drift/ringview/pkg/testing"
)

// scenario is a scripted run: optionally spin, then either stop spinning or
// animate to a value, and tick until the indicator is idle again.
type scenario struct {
	SpinFrames int
	Stop       bool
	Value      float64
	Duration   time.Duration
	MaxFrames  int
}

func defaultScenario() scenario {
	return scenario{SpinFrames: 60, Value: 75, MaxFrames: 2000}
}

// parseScenarioFlag consumes args[*i] if it is a scenario flag.
func parseScenarioFlag(sc *scenario, args []string, i *int) (bool, error) {
	switch args[*i] {
	case "--spin":
		v, err := intFlag(args, i)
		if err != nil {
			return true, err
		}
		sc.SpinFrames = v
	case "--stop":
		sc.Stop = true
	case "--value":
		v, err := floatFlag(args, i)
		if err != nil {
			return true, err
		}
		sc.Value = v
	case "--duration":
		s, err := stringFlag(args, i)
		if err != nil {
			return true, err
		}
		d, err := time.ParseDuration(s)
		if err != nil {
			return true, fmt.Errorf("--duration: %w", err)
		}
		sc.Duration = d
	case "--max-frames":
		v, err := intFlag(args, i)
		if err != nil {
			return true, err
		}
		sc.MaxFrames = v
	default:
		return false, nil
	}
	return true, nil
}

const scenarioFlagsHelp = `  --spin N           Spin for N frames first (default 60, 0 to skip)
  --stop             Stop spinning instead of setting a value
  --value V          Target value (default 75)
  --duration D       Value animation duration (default from config)
  --max-frames N     Give up after N frames (default 2000)`

// result summarizes a finished run.
type result struct {
	Frames  int
	Elapsed time.Duration
	Final   progress.Frame
}

// play runs sc against a new indicator on a simulated clock. onState and
// onFrame may be nil; onFrame is called for every redraw.
func play(cfg progress.Config, sc scenario, onState func(time.Duration, progress.AnimationState), onFrame func(time.Duration, progress.Frame)) (result, error) {
	clock := ringtest.NewFakeClock()
	elapsed := clock.Elapsed

	var ind *progress.Indicator
	surface := surfaceFunc(func() {
		if onFrame != nil {
			onFrame(elapsed(), ind.Frame())
		}
	})
	opts := []progress.Option{progress.WithClock(clock)}
	if onState != nil {
		opts = append(opts, progress.WithStateObserver(func(s progress.AnimationState) {
			onState(elapsed(), s)
		}))
	}
	ind = progress.New(surface, cfg, opts...)
	defer ind.Close()

	delay := cfg.FrameDelay
	if delay <= 0 {
		delay = progress.DefaultFrameDelay
	}

	frames := 0
	if sc.SpinFrames > 0 {
		ind.Spin()
		ringtest.Pump(clock, ind, delay, sc.SpinFrames)
		frames += sc.SpinFrames
	}
	if sc.Stop {
		ind.StopSpinning()
	} else {
		ind.SetValueAnimated(sc.Value, sc.Duration)
	}

	steps, ok := ringtest.PumpUntil(clock, ind, delay, sc.MaxFrames, func() bool {
		return ind.State() == progress.StateIdle
	})
	frames += steps
	res := result{Frames: frames, Elapsed: elapsed(), Final: ind.Frame()}
	if !ok {
		return res, fmt.Errorf("indicator still %s after %d frames", ind.State(), sc.MaxFrames)
	}
	return res, nil
}

type surfaceFunc func()

func (f surfaceFunc) Invalidate() { f() }

func stringFlag(args []string, i *int) (string, error) {
	name := args[*i]
	if *i+1 >= len(args) || strings.HasPrefix(args[*i+1], "--") {
		return "", fmt.Errorf("%s requires a value", name)
	}
	*i++
	return args[*i], nil
}

func intFlag(args []string, i *int) (int, error) {
	name := args[*i]
	s, err := stringFlag(args, i)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%s: want a non-negative integer, got %q", name, s)
	}
	return v, nil
}

func floatFlag(args []string, i *int) (float64, error) {
	name := args[*i]
	s, err := stringFlag(args, i)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: want a number, got %q", name, s)
	}
	return v, nil
}
