package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/go-drift/ringview/pkg/errors"
	"github.com/go-drift/ringview/pkg/progress"
)

const fullFile = `schema: v1.2
indicator:
  max_value: 200
  min_value_allowed: 5
  max_value_allowed: 150
  initial_value: 10
  round_to_block: true
  block_count: 20
  round_to_whole_number: true
spinner:
  speed: 4.5
  length: 60
  frame_delay: 16ms
animation:
  duration: 2s
  value_curve: linear
  length_curve: accelerate
render:
  direction: ccw
  start_angle: 90
`

func TestParse_Full(t *testing.T) {
	cfg, err := Parse([]byte(fullFile))
	assert.NilError(t, err)

	assert.Equal(t, cfg.MaxValue, 200.0)
	assert.Equal(t, cfg.MinValueAllowed, 5.0)
	assert.Equal(t, cfg.MaxValueAllowed, 150.0)
	assert.Equal(t, cfg.InitialValue, 10.0)
	assert.Assert(t, cfg.RoundToBlock)
	assert.Equal(t, cfg.BlockCount, 20)
	assert.Assert(t, cfg.RoundToWholeNumber)
	assert.Equal(t, cfg.SpinSpeed, 4.5)
	assert.Equal(t, cfg.SpinnerLength, 60.0)
	assert.Equal(t, cfg.FrameDelay, 16*time.Millisecond)
	assert.Equal(t, cfg.DefaultAnimationDuration, 2*time.Second)
	assert.Equal(t, cfg.ValueCurve(0.25), 0.25)
	assert.Equal(t, cfg.LengthCurve(0.5), 0.25)
	assert.Equal(t, cfg.Direction, progress.CounterClockwise)
	assert.Equal(t, cfg.StartAngle, 90.0)
}

func TestParse_EmptyIsDefault(t *testing.T) {
	cfg, err := Parse(nil)
	assert.NilError(t, err)

	def := progress.DefaultConfig()
	assert.Equal(t, cfg.MaxValue, def.MaxValue)
	assert.Equal(t, cfg.MaxValueAllowed, def.MaxValueAllowed)
	assert.Equal(t, cfg.SpinSpeed, def.SpinSpeed)
	assert.Equal(t, cfg.FrameDelay, def.FrameDelay)
	assert.Equal(t, cfg.Direction, progress.Clockwise)
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		field string
	}{
		{"zero max", "indicator: {max_value: 0}", "indicator.max_value"},
		{"zero speed", "spinner: {speed: 0}", "spinner.speed"},
		{"negative delay", "spinner: {frame_delay: -5ms}", "spinner.frame_delay"},
		{"long spinner", "spinner: {length: 400}", "spinner.length"},
		{"zero blocks", "indicator: {block_count: 0}", "indicator.block_count"},
		{"inverted bounds", "indicator: {min_value_allowed: 50, max_value_allowed: 10}", "indicator.max_value_allowed"},
		{"unknown curve", "animation: {value_curve: bouncy}", "animation.value_curve"},
		{"bad direction", "render: {direction: up}", "render.direction"},
		{"future schema", "schema: v2", "schema"},
		{"garbage schema", "schema: latest", "schema"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.Assert(t, err != nil)

			var ve *errors.ValidationError
			assert.Assert(t, stderrors.As(err, &ve), "got %T: %v", err, err)
			assert.Equal(t, ve.Field, tt.field)
		})
	}
}

func TestParse_ReportsEveryField(t *testing.T) {
	_, err := Parse([]byte("spinner: {speed: -1, frame_delay: 0s}"))
	assert.Assert(t, is.ErrorContains(err, "spinner.speed"))
	assert.Assert(t, is.ErrorContains(err, "spinner.frame_delay"))
}

func TestParse_Syntax(t *testing.T) {
	_, err := Parse([]byte("spinner: [1, 2"))
	assert.Assert(t, is.ErrorContains(err, "failed to parse ringview.yaml"))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	assert.NilError(t, os.WriteFile(path, []byte("spinner:\n  speed: 6\n"), 0o644))

	cfg, err := Load(path)
	assert.NilError(t, err)
	assert.Equal(t, cfg.SpinSpeed, 6.0)

	cfg, err = LoadOptional(dir)
	assert.NilError(t, err)
	assert.Equal(t, cfg.SpinSpeed, 6.0)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	var e *errors.Error
	assert.Assert(t, stderrors.As(err, &e))
	assert.Equal(t, e.Kind, errors.KindConfig)
	assert.Equal(t, e.Op, "config.Load")
	assert.Assert(t, stderrors.Is(err, os.ErrNotExist))

	bad := filepath.Join(dir, FileName)
	assert.NilError(t, os.WriteFile(bad, []byte("spinner: {speed: 0}"), 0o644))
	_, err = LoadOptional(dir)
	assert.Assert(t, stderrors.As(err, &e))
	assert.Assert(t, strings.Contains(err.Error(), "path="+bad))
}

func TestLoadOptional_Missing(t *testing.T) {
	cfg, err := LoadOptional(t.TempDir())
	assert.NilError(t, err)
	assert.Equal(t, cfg.MaxValue, progress.DefaultMaxValue)
}
