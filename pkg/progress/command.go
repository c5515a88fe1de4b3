package progress

import (
	"fmt"
	"time"

	"github.com/go-drift/ringview/pkg/dispatch"
)

// CommandKind identifies a message delivered to the state machine.
type CommandKind int

const (
	// CommandStartSpinning enters indeterminate mode.
	CommandStartSpinning CommandKind = iota
	// CommandStopSpinning leaves indeterminate mode.
	CommandStopSpinning
	// CommandSetValue jumps to Value without animation.
	CommandSetValue
	// CommandSetValueAnimated animates from From (or the current value) to To.
	CommandSetValueAnimated
	// CommandTick advances the running animation by one frame.
	CommandTick
	// commandConfigure mutates engine configuration on the consumer.
	commandConfigure
)

func (k CommandKind) String() string {
	switch k {
	case CommandStartSpinning:
		return "start_spinning"
	case CommandStopSpinning:
		return "stop_spinning"
	case CommandSetValue:
		return "set_value"
	case CommandSetValueAnimated:
		return "set_value_animated"
	case CommandTick:
		return "tick"
	case commandConfigure:
		return "configure"
	default:
		return fmt.Sprintf("CommandKind(%d)", int(k))
	}
}

func (k CommandKind) queueKind() dispatch.Kind {
	return dispatch.Kind(k)
}

// Command is a message for the state machine.
type Command struct {
	Kind CommandKind

	// Value is the target of CommandSetValue.
	Value float64

	// From and To are the endpoints of CommandSetValueAnimated. When
	// FromCurrent is set, From is ignored and the displayed value at
	// processing time is used instead.
	From, To    float64
	FromCurrent bool
	// Duration is the length of the value animation.
	Duration time.Duration

	configure func(*engine)
}

func (c Command) String() string {
	switch c.Kind {
	case CommandSetValue:
		return fmt.Sprintf("%s(%g)", c.Kind, c.Value)
	case CommandSetValueAnimated:
		if c.FromCurrent {
			return fmt.Sprintf("%s(current→%g, %v)", c.Kind, c.To, c.Duration)
		}
		return fmt.Sprintf("%s(%g→%g, %v)", c.Kind, c.From, c.To, c.Duration)
	default:
		return c.Kind.String()
	}
}
