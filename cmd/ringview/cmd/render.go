package cmd

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/image/bmp"

	"github.com/go-drift/ringview/pkg/progress"
	"github.com/go-drift/ringview/pkg/raster"
)

func init() {
	RegisterCommand(&Command{
		Name:  "render",
		Short: "Write the frames of a scripted run as images",
		Long: `Run the same script as "simulate" and write redrawn frames as images.

Flags:
` + scenarioFlagsHelp + `
  --out DIR          Output directory (default: frames)
  --size PX          Image size in pixels (default 128)
  --every N          Keep every Nth frame (default 1)
  --format FMT       png or bmp (default png)
  --text             Draw the percentage in the centre`,
		Usage: "ringview render [--out DIR] [--size PX] [--every N] [--format png|bmp] [scenario flags]",
		Run:   runRender,
	})
}

type renderOptions struct {
	out    string
	size   int
	every  int
	format string
	text   bool
}

func runRender(env *Env, args []string) error {
	sc := defaultScenario()
	opts := renderOptions{out: "frames", size: 128, every: 1, format: "png"}
	for i := 0; i < len(args); i++ {
		ok, err := parseScenarioFlag(&sc, args, &i)
		if err != nil {
			return err
		}
		if ok {
			continue
		}
		switch args[i] {
		case "--out":
			if opts.out, err = stringFlag(args, &i); err != nil {
				return err
			}
		case "--size":
			if opts.size, err = intFlag(args, &i); err != nil {
				return err
			}
		case "--every":
			if opts.every, err = intFlag(args, &i); err != nil {
				return err
			}
		case "--format":
			if opts.format, err = stringFlag(args, &i); err != nil {
				return err
			}
		case "--text":
			opts.text = true
		default:
			return fmt.Errorf("unknown flag %q", args[i])
		}
	}
	if opts.every < 1 {
		opts.every = 1
	}
	encode, err := encoderFor(opts.format)
	if err != nil {
		return err
	}

	cfg, err := env.Config()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(opts.out, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", opts.out, err)
	}

	style := raster.DefaultStyle()
	style.Size = opts.size
	style.ShowText = opts.text
	surface := raster.NewSurface(style)

	var (
		redraws  int
		written  int
		writeErr error
	)
	onFrame := func(_ time.Duration, f progress.Frame) {
		surface.Invalidate()
		redraws++
		if writeErr != nil || (redraws-1)%opts.every != 0 {
			return
		}
		name := filepath.Join(opts.out, fmt.Sprintf("frame-%04d.%s", written, opts.format))
		if writeErr = writeImage(name, surface.Render(f), encode); writeErr == nil {
			written++
		}
	}

	res, err := play(cfg, sc, nil, onFrame)
	if writeErr != nil {
		return writeErr
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(env.Stdout, "wrote %d of %d frames to %s (settled at %g after %s)\n",
		written, surface.Frames(), opts.out, res.Final.Value, res.Elapsed)
	return nil
}

type encoder func(io.Writer, image.Image) error

func encoderFor(format string) (encoder, error) {
	switch strings.ToLower(format) {
	case "png":
		return png.Encode, nil
	case "bmp":
		return bmp.Encode, nil
	default:
		return nil, fmt.Errorf("unsupported format %q (use png or bmp)", format)
	}
}

func writeImage(path string, img image.Image, encode encoder) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}
