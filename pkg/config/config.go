// Package config loads indicator settings from ringview.yaml.
//
// Every key is optional; missing keys keep the values of
// [progress.DefaultConfig]. Unlike [progress.New], which quietly replaces
// values it cannot run with, Load rejects them with a ValidationError per
// offending key.
package config

import (
	stderrors "errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/ringview/pkg/animation"
	"github.com/go-drift/ringview/pkg/errors"
	"github.com/go-drift/ringview/pkg/progress"
)

// FileName is the configuration file looked up by LoadOptional.
const FileName = "ringview.yaml"

// SchemaVersion is the newest schema this package understands. Files declare
// theirs with the top-level schema key; any v1.x is accepted.
const SchemaVersion = "v1"

// File is the on-disk layout of ringview.yaml.
type File struct {
	Schema    string          `yaml:"schema,omitempty"`
	Indicator IndicatorConfig `yaml:"indicator"`
	Spinner   SpinnerConfig   `yaml:"spinner"`
	Animation AnimationConfig `yaml:"animation"`
	Render    RenderConfig    `yaml:"render"`
}

// IndicatorConfig holds value range and rounding settings.
type IndicatorConfig struct {
	MaxValue           *float64 `yaml:"max_value,omitempty"`
	MinValueAllowed    *float64 `yaml:"min_value_allowed,omitempty"`
	MaxValueAllowed    *float64 `yaml:"max_value_allowed,omitempty"`
	InitialValue       *float64 `yaml:"initial_value,omitempty"`
	RoundToBlock       *bool    `yaml:"round_to_block,omitempty"`
	BlockCount         *int     `yaml:"block_count,omitempty"`
	RoundToWholeNumber *bool    `yaml:"round_to_whole_number,omitempty"`
}

// SpinnerConfig holds indeterminate mode settings.
type SpinnerConfig struct {
	Speed      *float64       `yaml:"speed,omitempty"`
	Length     *float64       `yaml:"length,omitempty"`
	FrameDelay *time.Duration `yaml:"frame_delay,omitempty"`
}

// AnimationConfig holds easing and timing settings. Curves are named as in
// [animation.CurveNames].
type AnimationConfig struct {
	Duration    *time.Duration `yaml:"duration,omitempty"`
	ValueCurve  string         `yaml:"value_curve,omitempty"`
	LengthCurve string         `yaml:"length_curve,omitempty"`
}

// RenderConfig holds settings passed through to renderers.
type RenderConfig struct {
	Direction  string   `yaml:"direction,omitempty"`
	StartAngle *float64 `yaml:"start_angle,omitempty"`
}

// LoadOptional reads ringview.yaml from dir if present. A missing file yields
// the default configuration.
func LoadOptional(dir string) (progress.Config, error) {
	cfg, err := Load(filepath.Join(dir, FileName))
	if err != nil {
		var e *errors.Error
		if stderrors.As(err, &e) && stderrors.Is(e.Err, os.ErrNotExist) {
			return progress.DefaultConfig(), nil
		}
		return progress.Config{}, err
	}
	return cfg, nil
}

// Load reads and validates the file at path. Errors are *errors.Error of
// kind KindConfig.
func Load(path string) (progress.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return progress.Config{}, configError("config.Load", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return progress.Config{}, configError("config.Load", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates a ringview.yaml document.
func Parse(data []byte) (progress.Config, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return progress.Config{}, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}
	return f.Resolve()
}

// Resolve validates f and applies it over the defaults.
func (f *File) Resolve() (progress.Config, error) {
	if err := checkSchema(f.Schema); err != nil {
		return progress.Config{}, err
	}

	cfg := progress.DefaultConfig()
	var errs []error
	reject := func(field string, value any, reason string) {
		errs = append(errs, &errors.ValidationError{Field: field, Value: value, Reason: reason})
	}

	in := f.Indicator
	if v := in.MaxValue; v != nil {
		if !(*v > 0) || math.IsInf(*v, 0) {
			reject("indicator.max_value", *v, "must be a positive number")
		}
		cfg.MaxValue = *v
	}
	setFloat(&cfg.MinValueAllowed, in.MinValueAllowed)
	setFloat(&cfg.MaxValueAllowed, in.MaxValueAllowed)
	setFloat(&cfg.InitialValue, in.InitialValue)
	if in.RoundToBlock != nil {
		cfg.RoundToBlock = *in.RoundToBlock
	}
	if v := in.BlockCount; v != nil {
		if *v <= 0 {
			reject("indicator.block_count", *v, "must be positive")
		}
		cfg.BlockCount = *v
	}
	if in.RoundToWholeNumber != nil {
		cfg.RoundToWholeNumber = *in.RoundToWholeNumber
	}
	if cfg.MaxValueAllowed >= 0 && cfg.MaxValueAllowed < cfg.MinValueAllowed {
		reject("indicator.max_value_allowed", cfg.MaxValueAllowed, "is below min_value_allowed")
	}

	sp := f.Spinner
	if v := sp.Speed; v != nil {
		if !(*v > 0) || math.IsInf(*v, 0) {
			reject("spinner.speed", *v, "must be a positive number")
		}
		cfg.SpinSpeed = *v
	}
	if v := sp.Length; v != nil {
		if !(*v >= 0) || *v > 360 {
			reject("spinner.length", *v, "must be within [0, 360]")
		}
		cfg.SpinnerLength = *v
	}
	if v := sp.FrameDelay; v != nil {
		if *v <= 0 {
			reject("spinner.frame_delay", *v, "must be positive")
		}
		cfg.FrameDelay = *v
	}

	an := f.Animation
	if v := an.Duration; v != nil {
		if *v <= 0 {
			reject("animation.duration", *v, "must be positive")
		}
		cfg.DefaultAnimationDuration = *v
	}
	if an.ValueCurve != "" {
		if c, ok := animation.CurveByName(an.ValueCurve); ok {
			cfg.ValueCurve = c
		} else {
			reject("animation.value_curve", an.ValueCurve, unknownCurve())
		}
	}
	if an.LengthCurve != "" {
		if c, ok := animation.CurveByName(an.LengthCurve); ok {
			cfg.LengthCurve = c
		} else {
			reject("animation.length_curve", an.LengthCurve, unknownCurve())
		}
	}

	rn := f.Render
	switch strings.ToLower(strings.TrimSpace(rn.Direction)) {
	case "", "cw", "clockwise":
		cfg.Direction = progress.Clockwise
	case "ccw", "counterclockwise", "counter-clockwise":
		cfg.Direction = progress.CounterClockwise
	default:
		reject("render.direction", rn.Direction, "must be cw or ccw")
	}
	setFloat(&cfg.StartAngle, rn.StartAngle)

	if len(errs) > 0 {
		return progress.Config{}, stderrors.Join(errs...)
	}
	return cfg, nil
}

func checkSchema(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	if !semver.IsValid(v) {
		return &errors.ValidationError{Field: "schema", Value: v, Reason: "is not a version like v1"}
	}
	if semver.Major(v) != semver.Major(SchemaVersion) {
		return &errors.ValidationError{Field: "schema", Value: v, Reason: "unsupported, want " + SchemaVersion}
	}
	return nil
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func unknownCurve() string {
	return "unknown curve, want one of " + strings.Join(animation.CurveNames(), ", ")
}

func configError(op, path string, err error) *errors.Error {
	return &errors.Error{
		Op:        op,
		Kind:      errors.KindConfig,
		Err:       err,
		Path:      path,
		Timestamp: time.Now(),
	}
}
