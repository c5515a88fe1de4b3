package progress

import (
	"time"

	"github.com/go-drift/ringview/pkg/animation"
)

// Direction is the direction in which the bar fills and the spinner turns.
type Direction int

const (
	// Clockwise fills the ring clockwise.
	Clockwise Direction = iota
	// CounterClockwise fills the ring counter-clockwise.
	CounterClockwise
)

func (d Direction) String() string {
	if d == CounterClockwise {
		return "ccw"
	}
	return "cw"
}

// Defaults applied by DefaultConfig and, for invalid fields, by New.
const (
	DefaultMaxValue          = 100.0
	DefaultSpinSpeed         = 2.8
	DefaultSpinnerLength     = 42.0
	DefaultFrameDelay        = 10 * time.Millisecond
	DefaultBlockCount        = 18
	DefaultStartAngle        = 270.0
	DefaultAnimationDuration = 1200 * time.Millisecond
)

// Config configures an Indicator.
//
// Start from DefaultConfig: the zero value bounds every value to 0 because
// MaxValueAllowed is only unbounded when negative.
type Config struct {
	// MaxValue is the value at which the bar forms a full circle. Must be > 0.
	MaxValue float64
	// MinValueAllowed is the lower clamp for every value set.
	MinValueAllowed float64
	// MaxValueAllowed is the upper clamp; negative means unbounded.
	MaxValueAllowed float64
	// InitialValue is the value shown before any command.
	InitialValue float64

	// SpinSpeed is the spinner advance in degrees per frame. Must be > 0.
	SpinSpeed float64
	// SpinnerLength is the nominal spinner arc length in degrees.
	SpinnerLength float64
	// FrameDelay is the target period between frame ticks. Must be > 0.
	FrameDelay time.Duration

	// RoundToBlock snaps values to multiples of MaxValue/BlockCount.
	RoundToBlock bool
	BlockCount   int
	// RoundToWholeNumber snaps values to integers. Ignored when RoundToBlock
	// applies.
	RoundToWholeNumber bool

	// ValueCurve eases value animations. Nil means AccelerateDecelerate.
	ValueCurve animation.Curve
	// LengthCurve eases spinner length changes. Nil means Decelerate.
	LengthCurve animation.Curve
	// DefaultAnimationDuration is used by SetValueAnimated when no positive
	// duration is given.
	DefaultAnimationDuration time.Duration

	// Direction and StartAngle are passed through to renderers.
	Direction  Direction
	StartAngle float64
}

// DefaultConfig returns the stock indicator configuration.
func DefaultConfig() Config {
	return Config{
		MaxValue:                 DefaultMaxValue,
		MinValueAllowed:          0,
		MaxValueAllowed:          -1,
		SpinSpeed:                DefaultSpinSpeed,
		SpinnerLength:            DefaultSpinnerLength,
		FrameDelay:               DefaultFrameDelay,
		BlockCount:               DefaultBlockCount,
		ValueCurve:               animation.AccelerateDecelerate,
		LengthCurve:              animation.Decelerate,
		DefaultAnimationDuration: DefaultAnimationDuration,
		Direction:                Clockwise,
		StartAngle:               DefaultStartAngle,
	}
}

// normalized replaces values the engine cannot run with by their defaults.
// Invalid values are not errors at this layer: a bad MaxValue or SpinSpeed
// would only produce a stuck animation, so they are clamped instead.
func (c Config) normalized() Config {
	if !(c.MaxValue > 0) {
		c.MaxValue = DefaultMaxValue
	}
	if !(c.SpinSpeed > 0) {
		c.SpinSpeed = DefaultSpinSpeed
	}
	if c.FrameDelay <= 0 {
		c.FrameDelay = DefaultFrameDelay
	}
	if !(c.SpinnerLength >= 0) {
		c.SpinnerLength = DefaultSpinnerLength
	}
	if c.BlockCount <= 0 {
		c.BlockCount = DefaultBlockCount
	}
	if c.ValueCurve == nil {
		c.ValueCurve = animation.AccelerateDecelerate
	}
	if c.LengthCurve == nil {
		c.LengthCurve = animation.Decelerate
	}
	if c.DefaultAnimationDuration <= 0 {
		c.DefaultAnimationDuration = DefaultAnimationDuration
	}
	return c
}
