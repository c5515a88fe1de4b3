// Package ui contains the Bubbletea model behind "ringview watch".
package ui

import (
	"fmt"
	"strings"
	"time"

	bar "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/go-drift/ringview/pkg/animation"
	"github.com/go-drift/ringview/pkg/progress"
)

const (
	stepValue  = 5
	logEntries = 6
)

// Indicator is the part of *progress.Indicator the watch model drives.
type Indicator interface {
	Frame() progress.Frame
	Spin()
	StopSpinning()
	SetValue(v float64)
	SetValueAnimated(to float64, d time.Duration)
	SetValueInterpolator(c animation.Curve)
}

type frameMsg progress.Frame

type stateMsg progress.AnimationState

// WatchModel shows a live indicator and maps keys to its commands.
//
// The model is also the indicator's surface and state observer: Invalidate
// and ObserveState forward to the Bubbletea loop over channels.
type WatchModel struct {
	ind    Indicator
	redraw chan struct{}
	states chan progress.AnimationState

	frame  progress.Frame
	bar    bar.Model
	spin   spinner.Model
	log    []string
	curves []string
	curve  int
}

// NewWatch creates a model with no indicator attached.
func NewWatch() WatchModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	p := bar.New(
		bar.WithScaledGradient("#1E88E5", "#00ACC1"),
		bar.WithoutPercentage(),
	)
	p.Width = 40

	curves := animation.CurveNames()
	curve := 0
	for i, name := range curves {
		if name == "accelerate-decelerate" {
			curve = i
		}
	}

	return WatchModel{
		redraw: make(chan struct{}, 1),
		states: make(chan progress.AnimationState, 64),
		bar:    p,
		spin:   s,
		curves: curves,
		curve:  curve,
	}
}

// Attach returns m driving ind.
func (m WatchModel) Attach(ind Indicator) WatchModel {
	m.ind = ind
	m.frame = ind.Frame()
	return m
}

// Invalidate implements progress.Surface. Redraws coalesce while the UI is
// busy.
func (m WatchModel) Invalidate() {
	select {
	case m.redraw <- struct{}{}:
	default:
	}
}

// ObserveState records a state change. Changes are dropped if the UI falls
// more than a buffer behind.
func (m WatchModel) ObserveState(s progress.AnimationState) {
	select {
	case m.states <- s:
	default:
	}
}

func (m WatchModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.waitForFrame(), m.waitForState())
}

func (m WatchModel) waitForFrame() tea.Cmd {
	return func() tea.Msg {
		<-m.redraw
		return frameMsg(m.ind.Frame())
	}
}

func (m WatchModel) waitForState() tea.Cmd {
	return func() tea.Msg {
		return stateMsg(<-m.states)
	}
}

func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if isQuit(msg) {
			return m, tea.Quit
		}
		return m.handleKey(msg.String()), nil

	case frameMsg:
		m.frame = progress.Frame(msg)
		return m, m.waitForFrame()

	case stateMsg:
		m.log = append(m.log, progress.AnimationState(msg).String())
		if len(m.log) > logEntries {
			m.log = m.log[len(m.log)-logEntries:]
		}
		return m, m.waitForState()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.bar.Width = min(60, max(20, msg.Width-8))
		return m, nil
	}
	return m, nil
}

func (m WatchModel) handleKey(key string) WatchModel {
	if v, ok := digitValue(key); ok {
		m.ind.SetValueAnimated(v*m.frame.MaxValue/100, 0)
		return m
	}
	switch key {
	case "s":
		m.ind.Spin()
	case "x":
		m.ind.StopSpinning()
	case "+", "=":
		m.ind.SetValue(m.frame.Value + stepValue)
	case "-":
		m.ind.SetValue(m.frame.Value - stepValue)
	case "r":
		m.ind.SetValue(0)
	case "e":
		m.curve = (m.curve + 1) % len(m.curves)
		if c, ok := animation.CurveByName(m.curves[m.curve]); ok {
			m.ind.SetValueInterpolator(c)
		}
	}
	return m
}

// Curve returns the name of the selected value easing.
func (m WatchModel) Curve() string {
	return m.curves[m.curve]
}

func (m WatchModel) View() string {
	f := m.frame
	var b strings.Builder

	b.WriteString(titleStyle.Render("ringview") + "\n\n")
	b.WriteString("  " + renderRing(f) + "\n\n")

	ratio := 0.0
	if f.MaxValue > 0 {
		ratio = min(1, max(0, f.Value/f.MaxValue))
	}
	b.WriteString("  " + m.bar.ViewAs(ratio) + fmt.Sprintf("  %.0f%%\n\n", ratio*100))

	status := f.State.String()
	if f.Mode() != progress.DrawBar {
		status = m.spin.View() + " " + status
	}
	b.WriteString(statusStyle.Render(fmt.Sprintf("  %s  value=%.1f  easing=%s", status, f.Value, m.Curve())) + "\n")
	for _, entry := range m.log {
		b.WriteString(logStyle.Render("    → "+entry) + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("  "+helpText()) + "\n")
	return b.String()
}
