package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/go-drift/ringview/cmd/ringview/internal/ui"
	"github.com/go-drift/ringview/pkg/progress"
)

func init() {
	RegisterCommand(&Command{
		Name:  "watch",
		Short: "Drive a live indicator from the keyboard",
		Long: `Open a terminal view of a running indicator.

Keys:
  s        spin
  x        stop spinning
  0-9      animate to 100%, 10% ... 90%
  + / -    step the value without animation
  e        cycle the value easing
  r        reset to zero
  q        quit`,
		Usage: "ringview watch",
		Run:   runWatch,
	})
}

func runWatch(env *Env, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected argument %q", args[0])
	}
	cfg, err := env.Config()
	if err != nil {
		return err
	}

	model := ui.NewWatch()
	ind := progress.New(model, cfg, progress.WithStateObserver(model.ObserveState))
	ind.Start()
	defer ind.Close()

	p := tea.NewProgram(model.Attach(ind), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	return nil
}
